package sqlite

import "time"

// Task represents a task row.
// Name is the primary key; insertion order is preserved by the implicit rowid.
type Task struct {
	Name     string
	DoBy     time.Time
	Complete bool
}

// Order selects the sort column for ListTasks.
type Order int

const (
	OrderByDoBy Order = iota
	OrderByName
)

// Column returns the ORDER BY column for the order.
func (o Order) Column() string {
	switch o {
	case OrderByName:
		return "name"
	default:
		return "do_by"
	}
}
