package bookmarks

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrFolderNotFound = errors.New("folder not found")
)

// ValidationError names the required field that was empty.
type ValidationError struct {
	Operation string
	Field     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s is required", e.Operation, e.Field)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func newValidationError(operation, field string) *ValidationError {
	return &ValidationError{Operation: operation, Field: field}
}
