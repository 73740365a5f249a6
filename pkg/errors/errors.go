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
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Manifest errors
	ErrManifestLoad    ErrorCode = "MANIFEST_LOAD"
	ErrManifestInvalid ErrorCode = "MANIFEST_INVALID"

	// Splat errors
	ErrSetup          ErrorCode = "SETUP"
	ErrMissingSubtree ErrorCode = "MISSING_SUBTREE"
	ErrMissingField   ErrorCode = "MISSING_FIELD"
	ErrIO             ErrorCode = "IO"
	ErrEncoding       ErrorCode = "ENCODING"
)

// SplatError represents a structured error with code and details
type SplatError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SplatError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SplatError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SplatError) Is(target error) bool {
	var targetErr *SplatError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SplatError with the given code and message
func New(code ErrorCode, message string) *SplatError {
	return &SplatError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SplatError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SplatError {
	return &SplatError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SplatError
func Wrap(err error, code ErrorCode, message string) *SplatError {
	if err == nil {
		return nil
	}
	return &SplatError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SplatError {
	if err == nil {
		return nil
	}
	return &SplatError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// IOf wraps a failed filesystem operation between src and dst.
func IOf(err error, src, dst, format string, args ...interface{}) *SplatError {
	if err == nil {
		return nil
	}
	return Wrapf(err, ErrIO, format, args...).
		WithDetail("src", src).
		WithDetail("dst", dst)
}

// WithDetail adds a detail to the error
func (e *SplatError) WithDetail(key string, value interface{}) *SplatError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *SplatError) WithDetails(details map[string]interface{}) *SplatError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code. Joined errors
// are searched as well.
func IsErrorCode(err error, code ErrorCode) bool {
	return errors.Is(err, &SplatError{Code: code})
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SplatError
func GetErrorCode(err error) ErrorCode {
	var splatErr *SplatError
	if errors.As(err, &splatErr) {
		return splatErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a SplatError
func GetErrorDetails(err error) map[string]interface{} {
	var splatErr *SplatError
	if errors.As(err, &splatErr) {
		return splatErr.Details
	}
	return nil
}

// Join combines errors, dropping nils. It returns nil if every error is nil.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
