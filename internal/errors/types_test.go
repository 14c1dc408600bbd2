package errors

import (
	"errors"
	"testing"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		name      string
		errorType ErrorType
		expected  string
	}{
		{"Validation", ErrorTypeValidation, "validation"},
		{"NotFound", ErrorTypeNotFound, "not_found"},
		{"DuplicateKey", ErrorTypeDuplicateKey, "duplicate_key"},
		{"InvalidDate", ErrorTypeInvalidDate, "invalid_date"},
		{"MissingField", ErrorTypeMissingField, "missing_field"},
		{"InvalidValue", ErrorTypeInvalidValue, "invalid_value"},
		{"Database", ErrorTypeDatabase, "database"},
		{"Unknown", ErrorType(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.errorType.String()
			if result != tt.expected {
				t.Errorf("ErrorType.String() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestErrorType_Kind(t *testing.T) {
	tests := []struct {
		name      string
		errorType ErrorType
		expected  string
	}{
		{"NotFound", ErrorTypeNotFound, "NotFound"},
		{"DuplicateKey", ErrorTypeDuplicateKey, "DuplicateKey"},
		{"InvalidDate", ErrorTypeInvalidDate, "InvalidDate"},
		{"MissingField", ErrorTypeMissingField, "MissingField"},
		{"InvalidValue", ErrorTypeInvalidValue, "InvalidValue"},
		{"Database", ErrorTypeDatabase, "StoreFailure"},
		{"Unknown", ErrorType(999), "StoreFailure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.errorType.Kind()
			if result != tt.expected {
				t.Errorf("ErrorType.Kind() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestAppError_Error(t *testing.T) {
	withoutCause := &AppError{Type: ErrorTypeNotFound, Message: "task not found: x"}
	if withoutCause.Error() != "not_found: task not found: x" {
		t.Errorf("AppError.Error() = %v", withoutCause.Error())
	}

	cause := errors.New("unique constraint failed")
	withCause := &AppError{Type: ErrorTypeDatabase, Message: "insert task", Cause: cause}
	expected := "database: insert task (caused by: unique constraint failed)"
	if withCause.Error() != expected {
		t.Errorf("AppError.Error() = %v, want %v", withCause.Error(), expected)
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &AppError{Type: ErrorTypeDatabase, Message: "wrapper", Cause: cause}

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is should find the cause through Unwrap")
	}
}
