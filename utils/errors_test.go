package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusPerKind(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{ValidationError("bad input"), http.StatusBadRequest},
		{AuthorizationError("no"), http.StatusForbidden},
		{NotFoundError("missing"), http.StatusNotFound},
		{StateConflictError("too late"), http.StatusBadRequest},
		{UpstreamError(errors.New("db down")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.code, HTTPStatus(tc.err), tc.err.Error())
	}
}

func TestHTTPStatusUnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("checkout: %w", NotFoundError("order not found"))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(wrapped))
}

func TestUpstreamErrorKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := UpstreamError(cause)
	assert.ErrorIs(t, err, cause)
}
