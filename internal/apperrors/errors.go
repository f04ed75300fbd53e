// Package apperrors defines the error taxonomy shared by the reconciliation
// engine and its HTTP layer.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a member or cooperative cannot be resolved.
	ErrNotFound = errors.New("not found")

	// ErrConcurrencyConflict is returned when a settlement loses a race
	// against a concurrent settlement for the same member. The caller may
	// safely retry the whole operation.
	ErrConcurrencyConflict = errors.New("concurrent settlement in progress, retry")
)

// ValidationError reports a malformed or out-of-range request. It is
// surfaced verbatim to the caller and never retried automatically.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidation creates a ValidationError with the given message.
func NewValidation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// InvariantViolation reports a data-integrity state that must never occur
// under correct operation, such as two open payments for one member. It is
// logged and alerted, never silently corrected.
type InvariantViolation struct {
	Op      string
	Details string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation in %s: %s", e.Op, e.Details)
}

// NewInvariant creates an InvariantViolation for the given operation.
func NewInvariant(op, format string, args ...any) error {
	return &InvariantViolation{Op: op, Details: fmt.Sprintf(format, args...)}
}

// IsInvariant reports whether err is an InvariantViolation.
func IsInvariant(err error) bool {
	var iv *InvariantViolation
	return errors.As(err, &iv)
}
