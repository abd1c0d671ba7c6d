// Package errors provides structured error types for monlayout.
//
// This package defines error codes and types that enable:
//   - Consistent error reporting from the CLI
//   - A fixed mapping from error class to process exit status
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes are grouped by the stage that produces them:
//   - INVALID_*: Input or configuration validation failures
//   - MULTIPLE_PRIMARY, NO_VALID_ARGUMENTS, REFUSE_BLACKOUT: fatal layout validation
//   - PROBE_FAILED, EXECUTION_FAILED: external command failures
//   - INTERNAL_ERROR: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMultiplePrimary, "%d monitors marked primary", n)
//	if errors.Is(err, errors.ErrCodeMultiplePrimary) {
//	    os.Exit(errors.ExitCode(err))
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeProbe, origErr, "run %s", binary)
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
	ErrCodeInvalidDirective Code = "INVALID_DIRECTIVE"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInvalidOutput    Code = "INVALID_OUTPUT"

	// Layout validation errors (fatal, abort before any command runs)
	ErrCodeMonitorNotFound  Code = "MONITOR_NOT_FOUND"
	ErrCodeMultiplePrimary  Code = "MULTIPLE_PRIMARY"
	ErrCodeNoValidArguments Code = "NO_VALID_ARGUMENTS"
	ErrCodeRefuseBlackout   Code = "REFUSE_BLACKOUT"

	// External command errors
	ErrCodeProbe     Code = "PROBE_FAILED"
	ErrCodeExecution Code = "EXECUTION_FAILED"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Process exit statuses.
const (
	ExitOK              = 0
	ExitFailure         = 1
	ExitNoValidArgs     = 2
	ExitRefuseBlackout  = 3
	ExitMultiplePrimary = 4
	ExitExecution       = 5
	ExitInterrupted     = 130
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
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// ExitCode maps an error to the process exit status.
// A nil error maps to ExitOK. The outermost *Error in the chain decides.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch GetCode(err) {
	case ErrCodeNoValidArguments:
		return ExitNoValidArgs
	case ErrCodeRefuseBlackout:
		return ExitRefuseBlackout
	case ErrCodeMultiplePrimary:
		return ExitMultiplePrimary
	case ErrCodeExecution:
		return ExitExecution
	}
	return ExitFailure
}
