package validation

import (
	"strings"
	"time"

	"todolist/internal/domain"
)

// Validator provides common validation utilities
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string length is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := len(strings.TrimSpace(s))
	return length >= min && length <= max
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// ParseDoByString parses a due date string in the fixed minute-precision
// layout. The result is a naive local timestamp.
func (v *Validator) ParseDoByString(s string) (time.Time, error) {
	return time.ParseInLocation(domain.DoByLayout, s, time.Local)
}

// IsTrueOrFalse checks if a string is "true" or "false", case-insensitive
func (v *Validator) IsTrueOrFalse(s string) bool {
	switch strings.ToLower(s) {
	case "true", "false":
		return true
	default:
		return false
	}
}
