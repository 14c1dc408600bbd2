package validation

import (
	"strings"
	"time"

	"todolist/internal/domain"
	"todolist/internal/errors"
)

// TaskValidator provides validation for Task-related request fields.
// Both the browser surface and the JSON surface go through this validator
// so neither duplicates the rules.
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// GetValidTaskName returns a cleaned task name, or a typed error when the
// field is absent or exceeds the soft maximum length.
func (tv *TaskValidator) GetValidTaskName(field string, name string) (string, error) {
	trimmed := tv.validator.TrimAndValidateString(name)

	if !tv.validator.IsNonEmptyString(trimmed) {
		return "", errors.NewMissingFieldError(field)
	}
	if !tv.validator.IsValidStringLength(trimmed, 1, domain.MaxNameLength) {
		return "", errors.NewInvalidValueError(field, trimmed, "must be at most 250 characters long")
	}

	return trimmed, nil
}

// ParseDoBy parses a due date field. An absent field is a missing field
// error; anything not matching the fixed layout is an invalid date error.
func (tv *TaskValidator) ParseDoBy(field string, value string) (time.Time, error) {
	trimmed := tv.validator.TrimAndValidateString(value)
	if trimmed == "" {
		return time.Time{}, errors.NewMissingFieldError(field)
	}

	doBy, err := tv.validator.ParseDoByString(trimmed)
	if err != nil {
		return time.Time{}, errors.NewInvalidDateError(trimmed, domain.DoByLayout)
	}
	return doBy, nil
}

// ParseCompletionFlag parses a completion field that must be "true" or
// "false", case-insensitive.
func (tv *TaskValidator) ParseCompletionFlag(field string, value string) (bool, error) {
	trimmed := tv.validator.TrimAndValidateString(value)
	if trimmed == "" {
		return false, errors.NewMissingFieldError(field)
	}
	if !tv.validator.IsTrueOrFalse(trimmed) {
		return false, errors.NewInvalidValueError(field, trimmed, `must be "true" or "false"`)
	}

	return strings.EqualFold(trimmed, "true"), nil
}
