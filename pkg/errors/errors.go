// Package errors provides structured error types for placegraph.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the engine, the document store and the CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (bad matrices, bad names, bad config)
//   - NOT_FOUND: Unknown entity identity
//   - IN_USE, CYCLE, DUPLICATE_*: Graph consistency violations
//   - INTERNAL: Unexpected internal errors
//
// The placement engine maps its error taxonomy onto these codes:
//
//	InvalidTransformError  -> ErrCodeInvalidTransform
//	UnsupportedObjectError -> ErrCodeUnsupportedObject
//	InUseError             -> ErrCodeInUse
//	CycleError             -> ErrCodeCycle
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidTransform, "bottom row is %v", row)
//	if errors.Is(err, errors.ErrCodeInvalidTransform) {
//	    // Reject the edit
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidTransform Code = "INVALID_TRANSFORM"
	ErrCodeInvalidName      Code = "INVALID_NAME"
	ErrCodeInvalidGlobalID  Code = "INVALID_GLOBAL_ID"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"

	// Resource errors
	ErrCodeNotFound          Code = "NOT_FOUND"
	ErrCodeUnsupportedObject Code = "UNSUPPORTED_OBJECT"

	// Graph consistency errors
	ErrCodeInUse             Code = "IN_USE"
	ErrCodeCycle             Code = "CYCLE"
	ErrCodeDuplicateRelation Code = "DUPLICATE_RELATION"
	ErrCodeOrphan            Code = "ORPHAN"
	ErrCodeDangling          Code = "DANGLING_REFERENCE"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
// It unwraps the error chain looking for an *Error with a matching code,
// so a CYCLE error wrapped by fmt.Errorf or by another coded error is still found.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
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

// IsFatal reports whether err belongs to the part of the placement error
// taxonomy that must abort an edit. UnsupportedObject and InUse are recovered
// locally by the engine and are never fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	switch GetCode(err) {
	case ErrCodeUnsupportedObject, ErrCodeInUse:
		return false
	}
	return true
}
