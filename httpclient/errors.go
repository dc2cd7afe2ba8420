package httpclient

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a failed request.
type ErrorCode string

const (
	// ErrCodeTimeout is a request or connection timeout.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeConnection is a connection-level failure (refused, DNS).
	ErrCodeConnection ErrorCode = "connection"
	// ErrCodeAuth is a 401 or 403 response.
	ErrCodeAuth ErrorCode = "auth"
	// ErrCodeNotFound is a 404 response.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeRateLimit is a 429 response.
	ErrCodeRateLimit ErrorCode = "rate_limit"
	// ErrCodeValidation is any other 4xx, or a malformed request.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeServer is a 5xx response.
	ErrCodeServer ErrorCode = "server"
)

// Error is a classified HTTP client error. The raw response body is
// kept so callers can surface the engine's own diagnostic.
type Error struct {
	// StatusCode is 0 for connection-level errors.
	StatusCode int
	Code       ErrorCode
	Message    string
	Retryable  bool
	Body       []byte
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewTimeoutError wraps a timeout as a retryable Error.
func NewTimeoutError(err error) *Error {
	return &Error{Code: ErrCodeTimeout, Message: err.Error(), Retryable: true, Err: err}
}

// NewConnectionError wraps a connection failure as a retryable Error.
func NewConnectionError(err error) *Error {
	return &Error{Code: ErrCodeConnection, Message: err.Error(), Retryable: true, Err: err}
}

// NewValidationError creates a non-retryable client-side error.
func NewValidationError(msg string) *Error {
	return &Error{Code: ErrCodeValidation, Message: msg, Retryable: false}
}

// NewServerError creates a retryable error for a 5xx response.
func NewServerError(statusCode int, body []byte) *Error {
	return &Error{
		StatusCode: statusCode,
		Code:       ErrCodeServer,
		Message:    fmt.Sprintf("HTTP %d", statusCode),
		Retryable:  true,
		Body:       body,
	}
}

// ClassifyStatusCode converts an HTTP status into a typed error, nil
// for 2xx. Rate limits and 5xx are retryable; the rest are not.
func ClassifyStatusCode(statusCode int, body []byte) *Error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}
	if statusCode >= 500 {
		return NewServerError(statusCode, body)
	}

	e := &Error{
		StatusCode: statusCode,
		Message:    fmt.Sprintf("HTTP %d", statusCode),
		Body:       body,
	}
	switch {
	case statusCode == 401 || statusCode == 403:
		e.Code = ErrCodeAuth
	case statusCode == 404:
		e.Code = ErrCodeNotFound
	case statusCode == 429:
		e.Code = ErrCodeRateLimit
		e.Retryable = true
	default:
		e.Code = ErrCodeValidation
	}
	return e
}

// IsRetryable reports whether err is a retryable client error.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}
