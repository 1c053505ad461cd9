// Package errors provides structured error types for themefont.
//
// Codes give the CLI and the admin HTTP surface a stable, machine-readable
// classification of failures, while the message stays human-readable:
//
//   - INVALID_*: bad input (family names, config values)
//   - NO_FONT_LIST: neither the remote nor the local catalog is available
//   - STORAGE_ERROR: settings backend or cache file failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFamily, "font family cannot be empty")
//	if errors.Is(err, errors.ErrCodeInvalidFamily) {
//	    // Handle validation error
//	}
//
//	err := errors.Wrap(errors.ErrCodeStorage, origErr, "save settings for %s", family)
package errors

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFamily Code = "INVALID_FAMILY"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Missing catalog
	ErrCodeNoFontList Code = "NO_FONT_LIST"

	// Infrastructure errors
	ErrCodeStorage Code = "STORAGE_ERROR"
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

// ValidateFamily rejects font family names that cannot be turned into a
// cache file name under the fonts directory.
func ValidateFamily(family string) error {
	if strings.TrimSpace(family) == "" {
		return New(ErrCodeInvalidFamily, "font family cannot be empty")
	}
	if len(family) > 128 {
		return New(ErrCodeInvalidFamily, "font family too long (max 128 characters)")
	}
	for _, r := range family {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidFamily, "font family contains invalid control characters")
		}
	}
	if strings.ContainsAny(family, `/\`) || strings.Contains(family, "..") {
		return New(ErrCodeInvalidFamily, "font family contains path characters: %q", family)
	}
	return nil
}
