// Package errors provides structured error types for the mindmap engine's
// outer surfaces (CLI, pipeline).
//
// The core packages return plain sentinel errors; this package wraps them
// with machine-readable codes so callers can react programmatically:
//
//	err := errors.Wrap(errors.ErrCodeCircularReference, cause, "move %s", id)
//	if errors.Is(err, errors.ErrCodeCircularReference) {
//	    // snap back silently
//	}
//
// Structural-validity codes (circular reference, degenerate input) mark
// synchronous rejections with no partial mutation. Geometric difficulties
// are never errors at all - they travel as layout warnings.
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the engine's failure categories.
const (
	// Structural rejections - the tree is left byte-for-byte unchanged.
	ErrCodeCircularReference Code = "CIRCULAR_REFERENCE"
	ErrCodeDegenerateInput   Code = "DEGENERATE_INPUT"

	// Input validation
	ErrCodeInvalidOrientation Code = "INVALID_ORIENTATION"
	ErrCodeInvalidConfig      Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat      Code = "INVALID_FORMAT"

	// Resources
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err carries the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns ErrCodeInternal for errors that are not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}
