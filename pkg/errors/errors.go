package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrPartnerNotFound  = errors.New("partner not found")
	ErrScoringFailed    = errors.New("credit score computation failed")
	ErrInvalidRiskLevel = errors.New("invalid risk level")
	ErrMissingUser      = errors.New("missing user identifier")
)

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
	ErrCodePartnerNotFound  = "PARTNER_NOT_FOUND"
	ErrCodeScoringFailed    = "SCORING_FAILED"
	ErrCodeInvalidRiskLevel = "INVALID_RISK_LEVEL"
	ErrCodeMissingUser      = "MISSING_USER"
	ErrCodeDatabaseError    = "DATABASE_ERROR"
	ErrCodeCacheError       = "CACHE_ERROR"
)

// Wrap common errors with business context
func WrapPartnerNotFound(partnerID string) *BusinessError {
	return NewBusinessError(
		ErrCodePartnerNotFound,
		fmt.Sprintf("Partner with ID %s not found", partnerID),
		ErrPartnerNotFound,
	)
}

func WrapScoringFailed(partnerID string, err error) *BusinessError {
	return NewBusinessError(
		ErrCodeScoringFailed,
		fmt.Sprintf("Could not compute credit score for partner %s", partnerID),
		errors.Join(ErrScoringFailed, err),
	)
}

func WrapInvalidRiskLevel(level string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidRiskLevel,
		fmt.Sprintf("Unknown risk level %q", level),
		ErrInvalidRiskLevel,
	)
}

func WrapMissingUser() *BusinessError {
	return NewBusinessError(
		ErrCodeMissingUser,
		"Request is missing the user identifier",
		ErrMissingUser,
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
		"cache operation failed",
		err,
	)
}
