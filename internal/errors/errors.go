// Package errors provides consistent error types for CareBell.
// It defines two main categories: ValidationError (fixable by the family
// member editing the schedule) and SystemError (storage or network issues).
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common conditions.
var (
	ErrEmptySchedule   = errors.New("schedule is empty")
	ErrEventNotFound   = errors.New("event not found")
	ErrBlockOutOfRange = errors.New("block index out of range")
	ErrEventActive     = errors.New("an event override is active")
	ErrSystemEvent     = errors.New("system events cannot be modified")
)

// ValidationError represents a schedule or event field that failed validation.
// Position is the 1-based block number, or 0 when the error is not tied to
// a particular block.
type ValidationError struct {
	Position int    // 1-based block number (0 = whole document)
	Field    string // The field that caused the error (optional)
	Message  string // What is wrong
}

func (e *ValidationError) Error() string {
	if e.Position > 0 {
		return fmt.Sprintf("block %d: %s", e.Position, e.Message)
	}
	return e.Message
}

// NewValidationError creates a new ValidationError.
func NewValidationError(position int, field, message string) *ValidationError {
	return &ValidationError{
		Position: position,
		Field:    field,
		Message:  message,
	}
}

// SystemError represents a system-level error that the user cannot directly fix.
// Examples: database failure, webhook delivery failure.
type SystemError struct {
	Message string // What happened
	Cause   error  // The underlying error
	Op      string // The operation that failed (optional)
}

func (e *SystemError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s during %s", e.Message, e.Op)
	}
	return e.Message
}

func (e *SystemError) Unwrap() error {
	return e.Cause
}

// NewSystemError creates a new SystemError.
func NewSystemError(message string, cause error) *SystemError {
	return &SystemError{
		Message: message,
		Cause:   cause,
	}
}

// NewSystemErrorWithOp creates a new SystemError with operation context.
func NewSystemErrorWithOp(op, message string, cause error) *SystemError {
	return &SystemError{
		Message: message,
		Cause:   cause,
		Op:      op,
	}
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsSystemError checks if an error is a SystemError.
func IsSystemError(err error) bool {
	var se *SystemError
	return errors.As(err, &se)
}

// AsValidationError extracts a ValidationError from an error chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// AsSystemError extracts a SystemError from an error chain.
func AsSystemError(err error) (*SystemError, bool) {
	var se *SystemError
	ok := errors.As(err, &se)
	return se, ok
}

// Is reports whether any error in err's chain matches target.
// Re-exported from the standard errors package for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted additional context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
