package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an error so transports can map it to a status
// code without string matching.
type ErrorKind string

const (
	KindValidation      ErrorKind = "validation"
	KindNotFound        ErrorKind = "not_found"
	KindBusinessRule    ErrorKind = "business_rule"
	KindExternalService ErrorKind = "external_service"
)

// Error is a structured domain error: a kind, a stable machine-readable
// code, a human message and an optional detail map.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
	Details map[string]interface{}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WithDetail attaches a detail entry and returns the error for chaining.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewValidationError creates a validation error
func NewValidationError(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

// NewNotFoundError creates a not-found error
func NewNotFoundError(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

// NewBusinessRuleError creates a business-rule violation error
func NewBusinessRuleError(code, message string) *Error {
	return &Error{Kind: KindBusinessRule, Code: code, Message: message}
}

// NewExternalServiceError creates an external-service error
func NewExternalServiceError(code, message string) *Error {
	return &Error{Kind: KindExternalService, Code: code, Message: message}
}

// KindOf returns the kind of a domain error, or an empty kind for
// errors that did not originate in the domain.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// CodeOf returns the stable code of a domain error, or empty.
func CodeOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Stable validation / business-rule codes
const (
	CodeInvalidCoordinates      = "INVALID_COORDINATES"
	CodeInvalidRadius           = "INVALID_RADIUS"
	CodeInvalidPage             = "INVALID_PAGE"
	CodeInvalidTimeFilter       = "INVALID_TIME_FILTER"
	CodeInvalidDealPricing      = "INVALID_DEAL_PRICING"
	CodeInvalidTimeRange        = "INVALID_TIME_RANGE"
	CodeInvalidMaxRedemptions   = "INVALID_MAX_REDEMPTIONS"
	CodeAgeVerificationRequired = "AGE_VERIFICATION_REQUIRED"
	CodeDiscountLimitExceeded   = "DISCOUNT_LIMIT_EXCEEDED"
	CodeHappyHourRestricted     = "HAPPY_HOUR_MARKETING_RESTRICTED"
	CodeRedemptionExhausted     = "REDEMPTION_EXHAUSTED"
)

// Sentinel errors for common not-found cases
var (
	ErrDealNotFound  = NewNotFoundError("DEAL_NOT_FOUND", "deal not found")
	ErrVenueNotFound = NewNotFoundError("VENUE_NOT_FOUND", "venue not found")
)
