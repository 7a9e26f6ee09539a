package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrProfileCorrupted = errors.New("persisted profile could not be parsed")
	ErrInvalidPIN       = errors.New("invalid pin")
	ErrNoTransaction    = errors.New("no transaction in progress")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrLimitExceeded    = errors.New("amount exceeds available limit")
	ErrCategoryRequired = errors.New("spend category required")
	ErrNoOfferSelected  = errors.New("no offer selected")
	ErrConsentRequired  = errors.New("consent required before disbursal")
	ErrInvalidState     = errors.New("action not valid in current transaction state")
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
	ErrCodeProfileNotFound  = "PROFILE_NOT_FOUND"
	ErrCodeProfileCorrupted = "PROFILE_CORRUPTED"
	ErrCodeInvalidPIN       = "INVALID_PIN"
	ErrCodeNoTransaction    = "NO_TRANSACTION"
	ErrCodeInvalidAmount    = "INVALID_AMOUNT"
	ErrCodeLimitExceeded    = "LIMIT_EXCEEDED"
	ErrCodeCategoryRequired = "CATEGORY_REQUIRED"
	ErrCodeNoOfferSelected  = "NO_OFFER_SELECTED"
	ErrCodeConsentRequired  = "CONSENT_REQUIRED"
	ErrCodeInvalidState     = "INVALID_STATE"
	ErrCodeDatabaseError    = "DATABASE_ERROR"
	ErrCodeCacheError       = "CACHE_ERROR"
)

// Wrap common errors with business context

func WrapProfileNotFound() *BusinessError {
	return NewBusinessError(
		ErrCodeProfileNotFound,
		"No stored profile; onboarding required",
		ErrProfileNotFound,
	)
}

func WrapProfileCorrupted(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeProfileCorrupted,
		"Stored profile was unreadable and has been discarded",
		errors.Join(ErrProfileCorrupted, err),
	)
}

func WrapInvalidPIN() *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidPIN,
		"PIN does not match",
		ErrInvalidPIN,
	)
}

func WrapNoTransaction() *BusinessError {
	return NewBusinessError(
		ErrCodeNoTransaction,
		"Start a transaction before calling flow actions",
		ErrNoTransaction,
	)
}

// WrapBlockedTransition maps a state machine refusal onto the matching
// business error, keyed by the machine's blocked reason string.
func WrapBlockedTransition(reason string) *BusinessError {
	switch reason {
	case "invalid_amount":
		return NewBusinessError(ErrCodeInvalidAmount, "Enter an amount greater than zero", ErrInvalidAmount)
	case "limit_exceeded":
		return NewBusinessError(ErrCodeLimitExceeded, "Amount exceeds the available limit on this line", ErrLimitExceeded)
	case "category_required":
		return NewBusinessError(ErrCodeCategoryRequired, "Pick a spend category first", ErrCategoryRequired)
	case "no_offer_selected":
		return NewBusinessError(ErrCodeNoOfferSelected, "Select an offer from the list", ErrNoOfferSelected)
	case "consent_required":
		return NewBusinessError(ErrCodeConsentRequired, "Accept the key fact statement to continue", ErrConsentRequired)
	default:
		return NewBusinessError(ErrCodeInvalidState, "That action is not available right now", ErrInvalidState)
	}
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
		"profile store operation failed",
		err,
	)
}
