package domain

import (
	"errors"
	"strings"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	// ErrConflict marks a write that lost to a concurrent one (deadlock,
	// serialization failure, lock timeout). Retrying may succeed.
	ErrConflict = errors.New("conflict")
)

// FieldError is one rejected field of a word payload. Field is the JSON path
// ("definitions[1].examples[0].source"); empty for whole-payload problems.
type FieldError struct {
	Field   string
	Message string
}

// String renders the issue as "path: message", or just the message when it
// concerns the payload as a whole.
func (e FieldError) String() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationError is a rejected word payload with every offending field.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.String()
	}
	return "validation: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationErrors creates a ValidationError from the given field issues.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
