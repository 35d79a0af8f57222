// Package errors provides unified error handling for the eventsource
// toolkit. It implements structured error types with error codes and
// retryable detection.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Common Error Constructors ---

// ConnectionFailed creates a new AppError for a transport-level failure.
func ConnectionFailed(url string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeConnectionFailed, Message: fmt.Sprintf("Unable to read the event stream at %s.", url),
		Retryable: true, Cause: cause,
		Details: map[string]any{"url": url},
	}
}

// BadStatus creates a new AppError for a non-success HTTP status.
func BadStatus(status int) *AppError {
	return &AppError{
		Code: ErrCodeBadStatus, Message: fmt.Sprintf("The event stream endpoint answered with status %d.", status),
		Retryable: true,
		Details:   map[string]any{"status": status},
	}
}

// BadContentType creates a new AppError for a response that is not an
// event stream.
func BadContentType(contentType string) *AppError {
	return &AppError{
		Code: ErrCodeBadContentType, Message: fmt.Sprintf("Expected Content-Type text/event-stream, got %q.", contentType),
		Retryable: true,
		Details:   map[string]any{"content_type": contentType},
	}
}

// HeartbeatTimeout creates a new AppError for a stalled connection.
func HeartbeatTimeout(window time.Duration) *AppError {
	return &AppError{
		Code: ErrCodeHeartbeatTimeout, Message: fmt.Sprintf("No bytes received within the %s heartbeat window.", window),
		Retryable: true,
		Details:   map[string]any{"window": window.String()},
	}
}

// InvalidConfig creates a new AppError for an invalid configuration value.
func InvalidConfig(field, reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidConfig, Message: fmt.Sprintf("Invalid configuration for %s: %s.", field, reason),
		Retryable: false,
		Details:   map[string]any{"field": field},
	}
}

// --- Inspection helpers ---

// AsAppError extracts an *AppError from err's chain, or nil.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// CodeOf returns the error code of err, or the empty code when err is
// not an AppError.
func CodeOf(err error) ErrorCode {
	if appErr := AsAppError(err); appErr != nil {
		return appErr.Code
	}
	return ""
}

// IsRetryable reports whether err is a retryable AppError.
func IsRetryable(err error) bool {
	if appErr := AsAppError(err); appErr != nil {
		return appErr.Retryable
	}
	return false
}
