// Package errors defines common error types for the stencil relaxation engine.
package errors

import (
	"errors"
	"fmt"
)

// Error codes for the application.
const (
	CodeUnknown             = "UNKNOWN_ERROR"
	CodeAllocationFailed    = "ALLOCATION_FAILED"
	CodeDimensionMismatch   = "DIMENSION_MISMATCH"
	CodeOutOfBounds         = "OUT_OF_BOUNDS"
	CodeCommunicationFailed = "COMMUNICATION_FAILED"
	CodeConfigError         = "CONFIG_ERROR"
	CodeInvalidInput        = "INVALID_INPUT"
)

// AppError represents an application error with a code and message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target by code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError.
func New(code string, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError.
func Wrap(code string, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error instances, one per fatal kind the engine can raise.
var (
	ErrAllocationFailed    = New(CodeAllocationFailed, "aligned grid allocation failed")
	ErrDimensionMismatch   = New(CodeDimensionMismatch, "grid dimensions do not match")
	ErrOutOfBounds         = New(CodeOutOfBounds, "region exceeds grid bounds")
	ErrCommunicationFailed = New(CodeCommunicationFailed, "message-passing operation failed")
	ErrConfigError         = New(CodeConfigError, "configuration error")
	ErrInvalidInput        = New(CodeInvalidInput, "invalid input")
)

// IsAllocationFailed checks if the error is an allocation failure.
func IsAllocationFailed(err error) bool {
	return errors.Is(err, ErrAllocationFailed)
}

// IsDimensionMismatch checks if the error is a dimension mismatch.
func IsDimensionMismatch(err error) bool {
	return errors.Is(err, ErrDimensionMismatch)
}

// IsOutOfBounds checks if the error is an out-of-bounds violation.
func IsOutOfBounds(err error) bool {
	return errors.Is(err, ErrOutOfBounds)
}

// IsCommunicationFailed checks if the error is a communication failure.
func IsCommunicationFailed(err error) bool {
	return errors.Is(err, ErrCommunicationFailed)
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetErrorMessage extracts the error message from an error.
func GetErrorMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// ErrorInfo maps short kind names to their error codes.
var ErrorInfo = map[string]string{
	"AllocationFailed":    CodeAllocationFailed,
	"DimensionMismatch":   CodeDimensionMismatch,
	"OutOfBounds":         CodeOutOfBounds,
	"CommunicationFailed": CodeCommunicationFailed,
	"ConfigError":         CodeConfigError,
	"InvalidInput":        CodeInvalidInput,
}
