package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetErrorStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidationError("limit", "must be <= 100"), http.StatusBadRequest},
		{"malformed id", ErrMalformedID, http.StatusBadRequest},
		{"not found", ErrNotFound, http.StatusNotFound},
		{"duplicate email", ErrDuplicateEmail, http.StatusBadRequest},
		{"invalid credentials", ErrInvalidCredentials, http.StatusUnauthorized},
		{"store unavailable", ErrStoreUnavailable, http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("product: %w", ErrNotFound), http.StatusNotFound},
		{"unknown", errors.New("socket closed"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetErrorStatusCode(tt.err))
		})
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "limit: must be <= 100", Message(NewValidationError("limit", "must be <= 100")))
	assert.Equal(t, "Invalid id", Message(fmt.Errorf("lookup: %w", ErrMalformedID)))
	assert.Equal(t, "Internal server error", Message(errors.New("connection reset by peer")))
}
