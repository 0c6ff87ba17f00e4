// Package errors provides structured error types for gridkit.
//
// The layout engine itself favours silent no-ops over errors (a drag on a
// deleted component simply does nothing), so this package is used at the
// edges: palette lookups, page decoding, persistence and the HTTP API.
//
// # Error Codes
//
//   - INVALID_*: input validation failures (page documents, ids, requests)
//   - UNKNOWN_TYPE: a palette type the registry does not know
//   - NOT_FOUND / SESSION_*: missing pages and editing sessions
//   - STORE_*: persistence backend failures
//   - INTERNAL_ERROR: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownType, "unknown component type %q", typ)
//	if errors.Is(err, errors.ErrCodeUnknownType) {
//	    // surface to the palette, do not retry
//	}
//
//	err = errors.Wrap(errors.ErrCodeStore, cause, "save page %s", id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes.
const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidPage   Code = "INVALID_PAGE"
	ErrCodeInvalidID     Code = "INVALID_ID"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeUnknownType   Code = "UNKNOWN_TYPE"

	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodeSessionNotFound  Code = "SESSION_NOT_FOUND"
	ErrCodeSessionExpired   Code = "SESSION_EXPIRED"
	ErrCodeGestureActive    Code = "GESTURE_ACTIVE"
	ErrCodeStore            Code = "STORE_ERROR"
	ErrCodeUnsupportedStore Code = "UNSUPPORTED_STORE"

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

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
