package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden       ErrorCode = "FORBIDDEN"
	ErrCodeBadRequest      ErrorCode = "BAD_REQUEST"
	ErrCodeConflict        ErrorCode = "CONFLICT"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation      ErrorCode = "VALIDATION_ERROR"
	ErrCodePricingLookup   ErrorCode = "PRICING_LOOKUP_FAILED"
	ErrCodeStateTransition ErrorCode = "STATE_TRANSITION"
	ErrCodePersistence     ErrorCode = "PERSISTENCE_ERROR"
)

// AppError is the error carried across service boundaries. Fields hold the
// per-field messages of a validation failure; it is nil for other codes.
type AppError struct {
	Code       ErrorCode
	Message    string
	Fields     map[string]string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

// Validation builds a per-field validation error. The map is surfaced inline
// to the client; it never collapses into a generic alert.
func Validation(fields map[string]string) *AppError {
	return &AppError{
		Code:       ErrCodeValidation,
		Message:    "validation failed",
		Fields:     fields,
		HTTPStatus: codeToHTTPStatus(ErrCodeValidation),
	}
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeBadRequest:
		return http.StatusBadRequest
	case ErrCodeConflict, ErrCodeStateTransition:
		return http.StatusConflict
	case ErrCodeValidation, ErrCodePricingLookup:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeNotFound
}

func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeValidation
}

func IsStateTransition(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeStateTransition
}

func IsPricingLookup(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodePricingLookup
}

var (
	ErrMissionNotFound  = New(ErrCodeNotFound, "mission not found")
	ErrTrackingNotFound = New(ErrCodeNotFound, "tracking record not found")
	ErrTemplateNotFound = New(ErrCodeNotFound, "mission template not found")
	ErrUserNotFound     = New(ErrCodeNotFound, "user not found")
	ErrNoPricingRule    = New(ErrCodePricingLookup, "no pricing rule found")
	ErrUnauthorized     = New(ErrCodeUnauthorized, "authorization required")
	ErrForbidden        = New(ErrCodeForbidden, "insufficient permissions")
)
