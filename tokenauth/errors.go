package tokenauth

import "fmt"

// ErrorCode represents a credential validation error code
type ErrorCode string

const (
	ErrMissingToken     ErrorCode = "MISSING_TOKEN"
	ErrMalformed        ErrorCode = "MALFORMED"
	ErrInvalidSignature ErrorCode = "INVALID_SIGNATURE"
	ErrExpired          ErrorCode = "EXPIRED"
	ErrRevoked          ErrorCode = "REVOKED"
	ErrStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
	ErrConfigError      ErrorCode = "CONFIG_ERROR"
)

// ValidationError represents a credential validation error with a code and message.
// Codes and messages are for logs and internal callers only; HTTP and gRPC
// responses always carry a generic body so a caller cannot distinguish a forged
// credential from an expired one.
type ValidationError struct {
	Code     ErrorCode
	Message  string
	Internal error
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the error unwrapping interface
func (e *ValidationError) Unwrap() error {
	return e.Internal
}

// NewValidationError creates a new validation error
func NewValidationError(code ErrorCode, message string, internal error) *ValidationError {
	return &ValidationError{
		Code:     code,
		Message:  message,
		Internal: internal,
	}
}

// errorCode extracts the error code from a validation error
func errorCode(err error) string {
	if valErr, ok := err.(*ValidationError); ok {
		return string(valErr.Code)
	}
	return "UNKNOWN"
}
