package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseInt coerces a form or flag value to an integer before it is sent.
// Blank input is an error for the named field.
func ParseInt(field, value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, NewValidationError(field, "is required")
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &ValidationError{Field: field, Message: fmt.Sprintf("%q: %s", value, ErrNotANumber)}
	}
	return n, nil
}

// ParseOptionalInt is ParseInt for fields where blank means zero, the way the
// ship configuration quantities behave
func ParseOptionalInt(field, value string) (int, error) {
	if strings.TrimSpace(value) == "" {
		return 0, nil
	}
	return ParseInt(field, value)
}

// ParseID validates a record id taken from a path, flag or argument
func ParseID(value string) (ID, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "0" {
		return "", NewValidationError("id", "is required")
	}
	return ID(value), nil
}
