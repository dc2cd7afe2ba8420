package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Template/configuration errors (fatal, never retried)
const (
	// ErrCodeConfiguration indicates a required node role could not be
	// resolved in the template. Operators fix the template; retrying the
	// same invocation cannot succeed.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
	// ErrCodeInvalidInput indicates the invocation parameters are invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Remote execution errors
const (
	// ErrCodeSubmission indicates the engine rejected the graph at
	// submission time (non-2xx on submit).
	ErrCodeSubmission ErrorCode = "SUBMISSION_FAILED"
	// ErrCodeProcessing indicates the engine accepted the job but
	// reported a job-level error during execution.
	ErrCodeProcessing ErrorCode = "PROCESSING_FAILED"
	// ErrCodeTimeout indicates no terminal signal arrived within the
	// polling bound.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeUpload indicates an asset upload to the engine failed.
	ErrCodeUpload ErrorCode = "UPLOAD_FAILED"
	// ErrCodeExtraction indicates a completed job produced no usable
	// image artifact.
	ErrCodeExtraction ErrorCode = "EXTRACTION_FAILED"
)

// Connection/availability errors (retryable)
const (
	// ErrCodeServiceUnavailable indicates the engine is temporarily unavailable.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrCodeConnectionFailed indicates a failed connection to the engine.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeServiceUnavailable: true,
	ErrCodeConnectionFailed:   true,
	ErrCodeTimeout:            true,
	ErrCodeProcessing:         true,
	ErrCodeUpload:             false,
	ErrCodeSubmission:         false,
	ErrCodeConfiguration:      false,
	ErrCodeExtraction:         false,
	ErrCodeInternal:           false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
