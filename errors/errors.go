// Package errors provides unified error handling for the render engine.
// It implements structured error types with error codes, HTTP status
// mapping, and retryable detection, so callers can distinguish template
// configuration problems from remote-engine failures and timeouts.
package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
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
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Common Error Constructors ---

// Configuration creates an AppError for a required node role that could
// not be resolved in a template. These are never retried: the template
// itself needs fixing.
func Configuration(role, reason string) *AppError {
	return &AppError{
		Code: ErrCodeConfiguration, Message: reason,
		HTTPStatus: http.StatusUnprocessableEntity, Retryable: false,
		Details: map[string]any{"role": role},
	}
}

// Submission creates an AppError for a graph the engine rejected at
// submission time. The remote detail text is appended for diagnosability.
func Submission(service, detail string) *AppError {
	msg := fmt.Sprintf("%s rejected the workflow submission", service)
	if detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, detail)
	}
	return &AppError{
		Code: ErrCodeSubmission, Message: msg,
		HTTPStatus: http.StatusBadGateway, Retryable: false,
		Details: map[string]any{"service": service},
	}
}

// Processing creates an AppError for a job-level error the engine
// reported after accepting the submission.
func Processing(message string) *AppError {
	return &AppError{
		Code: ErrCodeProcessing, Message: message,
		HTTPStatus: http.StatusBadGateway, Retryable: true,
	}
}

// Timeout creates an AppError for an operation that produced no terminal
// signal within its bound.
func Timeout(operation string) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: fmt.Sprintf("%s did not complete within the configured timeout", operation),
		HTTPStatus: http.StatusGatewayTimeout, Retryable: true,
		Details: map[string]any{"operation": operation},
	}
}

// Upload creates an AppError for a failed asset upload.
func Upload(asset string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeUpload, Message: fmt.Sprintf("failed to upload %s", asset),
		HTTPStatus: http.StatusBadGateway, Retryable: false,
		Details: map[string]any{"asset": asset}, Cause: cause,
	}
}

// Extraction creates an AppError for a completed job with no usable
// image artifact.
func Extraction(message string) *AppError {
	return &AppError{
		Code: ErrCodeExtraction, Message: message,
		HTTPStatus: http.StatusBadGateway, Retryable: false,
	}
}

// ServiceUnavailable creates an AppError for a service that is temporarily unavailable.
func ServiceUnavailable(service string) *AppError {
	return &AppError{
		Code: ErrCodeServiceUnavailable, Message: fmt.Sprintf("The %s is temporarily unavailable. Please try again.", service),
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true,
		Details: map[string]any{"service": service},
	}
}

// ConnectionFailed creates an AppError for a failed connection to a service.
func ConnectionFailed(service string) *AppError {
	return &AppError{
		Code: ErrCodeConnectionFailed, Message: fmt.Sprintf("Unable to connect to %s. Please verify the service is running.", service),
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true,
		Details: map[string]any{"service": service},
	}
}

// InvalidInput creates an AppError for invalid invocation parameters.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Retryable: false, Details: details,
	}
}

// Validation creates an AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// MissingField creates an AppError for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("Missing required field: %s", field),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"field": field},
	}
}

// NotFound creates an AppError for a resource that was not found.
func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound, Retryable: false, Details: details,
	}
}

// Internal creates an AppError for an unexpected internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred. Please try again or contact support.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}
