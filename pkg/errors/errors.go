// Package errors provides structured error types for gridtower.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the generator, packer and CLI
//   - Machine-readable error codes the orchestrator can branch on
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Packing failures use a small taxonomy:
//   - CONFIGURATION_ERROR: a grid can never fit the canvas, even alone at its
//     minimum size. Not retried.
//   - PACKING_EXHAUSTED: a grid found no free position within the attempt
//     budget at its current size. Recovered inside the packer by shrinking.
//   - BATCH_FAILURE: the batch as a whole could not be packed. The orchestrator
//     regenerates with tighter bounds until its own attempt ceiling.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeConfiguration, "grid %s exceeds canvas", name)
//	if errors.Is(err, errors.ErrCodeBatchFailure) {
//	    // regenerate with smaller bounds
//	}
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
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeInvalidPalette Code = "INVALID_PALETTE"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidPath    Code = "INVALID_PATH"

	// Packing errors
	ErrCodeConfiguration    Code = "CONFIGURATION_ERROR"
	ErrCodePackingExhausted Code = "PACKING_EXHAUSTED"
	ErrCodeBatchFailure     Code = "BATCH_FAILURE"

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

// Is reports whether err has the given error code.
// Only the outermost *Error in the chain is consulted, so a batch failure
// wrapping an exhausted placement reports BATCH_FAILURE, not both.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// Has reports whether any *Error in the chain of err carries code.
func Has(err error, code Code) bool {
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
