package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by a KeyValueStore for an absent key.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized means the bearer token is invalid or expired.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidJoinCode means no student has the presented join code.
	ErrInvalidJoinCode = errors.New("invalid join code")
	// ErrUnavailable means the backend is unreachable or failed with 5xx.
	ErrUnavailable = errors.New("service temporarily unavailable, please try again")
)

// ValidationError is a form-level error attached to one field.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ServerError carries a message the backend wants shown to the user verbatim.
type ServerError struct {
	Status  int
	Message string
	// Kind is ErrUnauthorized or ErrInvalidJoinCode when the response maps to one.
	Kind error
}

func (e *ServerError) Error() string {
	return e.Message
}

// Unwrap lets errors.Is match the sentinel kind.
func (e *ServerError) Unwrap() error {
	return e.Kind
}
