package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorsMapToUnprocessableEntity(t *testing.T) {
	// Both construction paths must agree on the status.
	byFields := Validation(map[string]string{"title": "title is required"})
	byCode := New(ErrCodeValidation, "validation failed")

	assert.Equal(t, http.StatusUnprocessableEntity, byFields.HTTPStatus)
	assert.Equal(t, http.StatusUnprocessableEntity, byCode.HTTPStatus)
}

func TestCodeToHTTPStatus(t *testing.T) {
	cases := map[ErrorCode]int{
		ErrCodeNotFound:        http.StatusNotFound,
		ErrCodeUnauthorized:    http.StatusUnauthorized,
		ErrCodeForbidden:       http.StatusForbidden,
		ErrCodeBadRequest:      http.StatusBadRequest,
		ErrCodeConflict:        http.StatusConflict,
		ErrCodeStateTransition: http.StatusConflict,
		ErrCodeValidation:      http.StatusUnprocessableEntity,
		ErrCodePricingLookup:   http.StatusUnprocessableEntity,
		ErrCodeInternal:        http.StatusInternalServerError,
		ErrCodePersistence:     http.StatusInternalServerError,
	}

	for code, want := range cases {
		assert.Equal(t, want, codeToHTTPStatus(code), string(code))
	}
}

func TestWrapKeepsCauseChain(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, ErrCodePersistence, "could not load mission")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
}
