package main

import (
	"errors"
	"fmt"
)

// ErrNotFound signals an index or identity that no longer exists.
// Callers treat it as a no-op.
var ErrNotFound = errors.New("not found")

// ValidationError rejects input before any state is mutated. Its message
// is user-facing.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
