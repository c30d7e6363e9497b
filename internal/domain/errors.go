// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity or request fails validation.
	// The more specific errors below wrap it, so errors.Is(err, ErrValidation)
	// matches every validation failure.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = fmt.Errorf("%w: invalid ID", ErrValidation)

	// ErrInvalidFormat is returned when a request payload is not in the expected format.
	ErrInvalidFormat = fmt.Errorf("%w: invalid format", ErrValidation)

	// ErrEmptyTitle is returned when a task title is empty or whitespace-only.
	ErrEmptyTitle = fmt.Errorf("%w: title cannot be empty", ErrValidation)
)

// ValidationError describes a validation failure for a single field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped sentinel to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for the given field. A nil err
// defaults to ErrValidation so the result always classifies as a validation failure.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
