package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrInvalidTerms          = errors.New("invalid loan terms")
	ErrCalculationNotFound   = errors.New("calculation not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrTokenRevoked          = errors.New("token is no longer valid")
	ErrInvalidAuthHeader     = errors.New("invalid authorization header format")
	ErrSessionNotFound       = errors.New("session not found")
	ErrInvalidHistoryLimit   = errors.New("invalid history limit")
	ErrInvalidCalculationRef = errors.New("invalid calculation id")
)

// InvalidTermsError reports the loan term that failed validation.
// It is raised before any computation starts.
type InvalidTermsError struct {
	Field  string
	Reason string
}

func (e *InvalidTermsError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidTermsError) Unwrap() error {
	return ErrInvalidTerms
}

// NewInvalidTermsError creates a new invalid terms error for field
func NewInvalidTermsError(field, reason string) *InvalidTermsError {
	return &InvalidTermsError{
		Field:  field,
		Reason: reason,
	}
}

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeInvalidTerms          = "INVALID_TERMS"
	ErrCodeCalculationNotFound   = "CALCULATION_NOT_FOUND"
	ErrCodeInvalidCalculationRef = "INVALID_CALCULATION_ID"
	ErrCodeInvalidHistoryLimit   = "INVALID_HISTORY_LIMIT"
	ErrCodeDatabaseError         = "DATABASE_ERROR"
	ErrCodeCacheError            = "CACHE_ERROR"
	ErrCodeUnauthorized          = "UNAUTHORIZED"
)

// Wrap common errors with business context
func WrapCalculationNotFound(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeCalculationNotFound,
		fmt.Sprintf("Calculation with ID %s not found", id),
		ErrCalculationNotFound,
	)
}

func WrapInvalidCalculationID(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidCalculationRef,
		fmt.Sprintf("Calculation ID %q is not a valid identifier", id),
		ErrInvalidCalculationRef,
	)
}

func WrapInvalidHistoryLimit(limit, max int) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidHistoryLimit,
		fmt.Sprintf("History limit %d must be between 1 and %d", limit, max),
		ErrInvalidHistoryLimit,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}

func WrapUnauthorized(reason error) *BusinessError {
	return NewBusinessError(
		ErrCodeUnauthorized,
		"authentication required",
		reason,
	)
}

// Code returns the business error code carried by err, or "" when err
// has none. An InvalidTermsError maps to ErrCodeInvalidTerms.
func Code(err error) string {
	var termsErr *InvalidTermsError
	if errors.As(err, &termsErr) {
		return ErrCodeInvalidTerms
	}

	var businessErr *BusinessError
	if errors.As(err, &businessErr) {
		return businessErr.Code
	}

	return ""
}
