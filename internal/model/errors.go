package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// ID errors
	ErrMissingID = errors.New("record has no id")

	// Input errors
	ErrNotANumber = errors.New("value is not a whole number")
)

// ValidationError is an input error caught before any request is sent.
// Field names the offending form field or flag, when there is one.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for the given field
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
