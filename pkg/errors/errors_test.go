package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_SentinelMatching(t *testing.T) {
	err := NotFound("cart", "abc")

	assert.True(t, Is(err, ErrNotFound))
	assert.False(t, Is(err, ErrConflict))

	var appErr *AppError
	assert.True(t, As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestAppError_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("get cart: %w", NotFound("cart", "abc"))

	assert.True(t, Is(err, ErrNotFound))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{InvalidInput("bad"), http.StatusBadRequest},
		{Unauthorized("who"), http.StatusUnauthorized},
		{Conflict("busy"), http.StatusConflict},
		{PaymentFailed("declined"), http.StatusUnprocessableEntity},
		{PaymentUnavailable("no gateway"), http.StatusServiceUnavailable},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, HTTPStatus(tt.err), tt.err.Error())
	}
}

func TestPaymentErrors_AreDistinct(t *testing.T) {
	failed := PaymentFailed("declined")
	unavailable := PaymentUnavailable("no gateway")

	assert.False(t, Is(failed, ErrPaymentUnavailable))
	assert.False(t, Is(unavailable, ErrPaymentFailed))
}
