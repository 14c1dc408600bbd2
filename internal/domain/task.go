package domain

import "time"

// DoByLayout is the fixed minute-precision layout for due date strings
// accepted from forms and query parameters: 4-digit year, literal T
// separator, no seconds, no timezone offset.
const DoByLayout = "2006-01-02T15:04"

// MaxNameLength is the soft maximum length for a task name.
const MaxNameLength = 250

// Task represents a task in the domain model.
// This is a pure domain model without database-specific concerns.
// Name is the primary key and doubles as the human-readable title.
type Task struct {
	Name     string
	DoBy     time.Time
	Complete bool
}

// NewTask creates a new Task with the given name and due date.
// Tasks always start incomplete.
func NewTask(name string, doBy time.Time) Task {
	return Task{
		Name: name,
		DoBy: doBy,
	}
}

// IsValid checks if the task has valid data.
func (t Task) IsValid() bool {
	return t.Name != "" && !t.DoBy.IsZero()
}

// FormatDoBy returns the due date in the fixed form layout.
func (t Task) FormatDoBy() string {
	return t.DoBy.Format(DoByLayout)
}

// String returns the task name for display purposes.
func (t Task) String() string {
	return t.Name
}
