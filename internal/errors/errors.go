package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for the client core. Reconciliation never returns these for
// malformed payloads (bad data degrades to absent values); they mark failures
// at the config and transport boundaries.
var (
	ErrNotFound         = newError(ErrCodeNotFound, "resource not found")
	ErrValidation       = newError(ErrCodeValidation, "validation error")
	ErrInvalidOperation = newError(ErrCodeInvalidOperation, "invalid operation")
	ErrHTTPClient       = newError(ErrCodeHTTPClient, "http client error")
	ErrRateLimited      = newError(ErrCodeRateLimited, "rate limited")
	ErrSystem           = newError(ErrCodeSystemError, "system error")
)

const (
	ErrCodeNotFound         = "not_found"
	ErrCodeValidation       = "validation_error"
	ErrCodeInvalidOperation = "invalid_operation"
	ErrCodeHTTPClient       = "http_client_error"
	ErrCodeRateLimited      = "rate_limited"
	ErrCodeSystemError      = "system_error"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

func newError(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidOperation checks if an error is an invalid operation error
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

// IsHTTPClient checks if an error is an http client error
func IsHTTPClient(err error) bool {
	return errors.Is(err, ErrHTTPClient)
}

// IsRateLimited checks if an error is a rate limited error
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}
