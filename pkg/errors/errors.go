// Package errors provides structured error types for the release cache.
//
// Every error that can reach a caller carries:
//   - A machine-readable [Code] used to dispatch at the response boundary
//   - The message returned to the caller and the HTTP status to use
//   - Log lines written as one block when the error is reported
//   - An optional correlation key shown to the caller for support requests
//
// # Error Codes
//
//   - INVALID_INPUT: the caller sent something malformed (400)
//   - NOT_REGISTERED: the repository is not on the allow-list (403)
//   - UPSTREAM_DATA: GitHub answered with data we cannot use (500)
//   - UPDATE_CHECKING: a refresh failed and no cached data exists (500/404)
//   - INTERNAL_ERROR: configuration or internal state is broken (500)
//
// Internal kinds never disclose details to the caller. Their constructors
// generate a random key that appears in both the response and the log.
//
// # Usage
//
//	err := errors.InvalidInput("The repo slug shall be a string.", "got %T", v)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Internal(cause, "could not read registry %s", path)
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the different error kinds.
const (
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeNotRegistered  Code = "NOT_REGISTERED"
	ErrCodeUpstreamData   Code = "UPSTREAM_DATA"
	ErrCodeUpdateChecking Code = "UPDATE_CHECKING"
	ErrCodeInternal       Code = "INTERNAL_ERROR"
)

// genericMessage is returned to callers for internal kinds.
const genericMessage = "An internal error occurred. Mention the following error key when requesting support: %s"

// Error is a structured error with a code, response data and optional cause.
type Error struct {
	Code     Code     // Machine-readable error code
	Message  string   // Message returned to the caller
	Status   int      // HTTP status returned to the caller
	LogLines []string // Lines logged as one block
	Key      string   // Correlation key, empty for client-facing kinds
	Cause    error    // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	detail := e.Message
	if len(e.LogLines) > 0 {
		detail = strings.Join(e.LogLines, "; ")
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, detail, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, detail)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewKey returns a fresh correlation key.
func NewKey() string {
	return uuid.NewString()
}

// InvalidInput reports a malformed request. The message is shown to the caller.
func InvalidInput(message, logFormat string, args ...any) *Error {
	return &Error{
		Code:     ErrCodeInvalidInput,
		Message:  message,
		Status:   http.StatusBadRequest,
		LogLines: []string{fmt.Sprintf(logFormat, args...)},
	}
}

// NotRegistered reports a well-formed slug that is not on the allow-list.
func NotRegistered(slug string) *Error {
	msg := fmt.Sprintf("Unregistered repository '%s' in request.", slug)
	return &Error{
		Code:     ErrCodeNotRegistered,
		Message:  msg,
		Status:   http.StatusForbidden,
		LogLines: []string{msg},
	}
}

// Internal reports broken internal state or environment. The caller only sees
// a generic message and the generated key.
func Internal(cause error, logFormat string, args ...any) *Error {
	return keyed(ErrCodeInternal, http.StatusInternalServerError, cause, logFormat, args...)
}

// UpstreamData reports unusable data received from GitHub.
func UpstreamData(cause error, logFormat string, args ...any) *Error {
	return keyed(ErrCodeUpstreamData, http.StatusInternalServerError, cause, logFormat, args...)
}

// UpdateChecking reports a refresh that failed with no cached data to fall
// back on. status is usually 500; 404 is passed through for unknown repos.
func UpdateChecking(status int, message string, cause error, logLines ...string) *Error {
	key := NewKey()
	if message == "" {
		message = fmt.Sprintf(genericMessage, key)
	}
	lines := make([]string, 0, len(logLines))
	for _, l := range logLines {
		lines = append(lines, fmt.Sprintf("Error key %s: %s", key, l))
	}
	return &Error{
		Code:     ErrCodeUpdateChecking,
		Message:  message,
		Status:   status,
		LogLines: lines,
		Key:      key,
		Cause:    cause,
	}
}

func keyed(code Code, status int, cause error, logFormat string, args ...any) *Error {
	key := NewKey()
	return &Error{
		Code:     code,
		Message:  fmt.Sprintf(genericMessage, key),
		Status:   status,
		LogLines: []string{fmt.Sprintf("Error key %s: %s", key, fmt.Sprintf(logFormat, args...))},
		Key:      key,
		Cause:    cause,
	}
}

// Unexpected converts an error of unknown origin into a generic 500 with a
// fresh key. *Error values are returned unchanged.
func Unexpected(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return keyed(ErrCodeInternal, http.StatusInternalServerError, err,
		"An unexpected error of %T occurred", err)
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

// StatusCode returns the HTTP status for err, 500 when err is not an *Error.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Status != 0 {
		return e.Status
	}
	return http.StatusInternalServerError
}

// UserMessage returns the message meant for the caller.
// For errors that are not *Error, a generic message is returned so that
// internal details never leak.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "An unexpected error occurred."
}
