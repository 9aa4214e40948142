package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	ErrEventNotFound    = errors.New("event not found")
	ErrBindingNotFound  = errors.New("display binding not found")
	ErrNotFound         = errors.New("not found")
	ErrInvalidTimezone  = errors.New("timezone identifier does not resolve")
	ErrPermissionDenied = errors.New("notification surface denied the operation")
)

// ValidationError reports malformed user input. The operation is aborted and
// no state changes.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

// NewValidationError records a single field level validation failure.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// UnresolvedUserError is returned by the summary renderer when a user
// reference cannot be resolved to a display name. The roster itself stays
// valid; only the rendering fails.
type UnresolvedUserError struct {
	UserID string
	Err    error
}

func (e *UnresolvedUserError) Error() string {
	return fmt.Sprintf("unresolved user %s: %v", e.UserID, e.Err)
}

func (e *UnresolvedUserError) Unwrap() error { return e.Err }
