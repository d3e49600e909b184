// Package errors provides structured, code-carrying errors for toolbars.
// Codes are stable strings so tests and callers can match on them without
// depending on message text.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Manifest errors
	ErrManifestLoad  ErrorCode = "MANIFEST_LOAD"
	ErrManifestParse ErrorCode = "MANIFEST_PARSE"
	ErrManifestWatch ErrorCode = "MANIFEST_WATCH"

	// Registry build signals. These are reported through a warning sink
	// and never abort a build.
	ErrMissingTarget ErrorCode = "MISSING_TARGET"
	ErrItemConflict  ErrorCode = "ITEM_CONFLICT"

	// Output errors
	ErrOutputFormat ErrorCode = "OUTPUT_FORMAT"
	ErrOutputWrite  ErrorCode = "OUTPUT_WRITE"
)

// ToolbarsError represents a structured error with code and details
type ToolbarsError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ToolbarsError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ToolbarsError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ToolbarsError) Is(target error) bool {
	var targetErr *ToolbarsError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ToolbarsError with the given code and message
func New(code ErrorCode, message string) *ToolbarsError {
	return &ToolbarsError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ToolbarsError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ToolbarsError {
	return &ToolbarsError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ToolbarsError
func Wrap(err error, code ErrorCode, message string) *ToolbarsError {
	if err == nil {
		return nil
	}
	return &ToolbarsError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ToolbarsError {
	if err == nil {
		return nil
	}
	return &ToolbarsError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ToolbarsError) WithDetail(key string, value interface{}) *ToolbarsError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *ToolbarsError) WithDetails(details map[string]interface{}) *ToolbarsError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var tbErr *ToolbarsError
	if errors.As(err, &tbErr) {
		return tbErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ToolbarsError
func GetErrorCode(err error) ErrorCode {
	var tbErr *ToolbarsError
	if errors.As(err, &tbErr) {
		return tbErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ToolbarsError
func GetErrorDetails(err error) map[string]interface{} {
	var tbErr *ToolbarsError
	if errors.As(err, &tbErr) {
		return tbErr.Details
	}
	return nil
}
