package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/bookwise/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"duplicate email", models.ErrDuplicateEmail, http.StatusBadRequest},
		{"invalid credentials", models.ErrInvalidCredentials, http.StatusBadRequest},
		{"unauthorized", models.ErrUnauthorized, http.StatusUnauthorized},
		{"invalid token", models.ErrInvalidToken, http.StatusUnauthorized},
		{"forbidden", models.ErrForbidden, http.StatusUnauthorized},
		{"protected user", models.ErrProtectedUser, http.StatusUnauthorized},
		{"user not found", models.ErrUserNotFound, http.StatusNotFound},
		{"book not found", models.ErrBookNotFound, http.StatusNotFound},
		{"unavailable", models.ErrUnavailable, http.StatusServiceUnavailable},
		{"unexpected", errors.New("dial tcp: connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedStatus, statusForError(tt.err))
		})
	}
}

func TestMessageForError(t *testing.T) {
	// Clients match these strings verbatim, casing included
	tests := []struct {
		name            string
		err             error
		expectedMessage string
	}{
		{"duplicate email", models.ErrDuplicateEmail, "Email already exists"},
		{"invalid credentials", models.ErrInvalidCredentials, "Invalid email or password"},
		{"unauthorized", models.ErrUnauthorized, "Not Authorized"},
		{"invalid token", models.ErrInvalidToken, "Not Authorized"},
		{"forbidden", models.ErrForbidden, "You are not authorized"},
		{"protected user", models.ErrProtectedUser, "Master Admin cannot be modified"},
		{"user not found", models.ErrUserNotFound, "User not found"},
		{"book not found", models.ErrBookNotFound, "Book not found"},
		{"unavailable", models.ErrUnavailable, "Service temporarily unavailable"},
		{"unexpected errors stay generic", errors.New("dial tcp: connection refused"), "Something went wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedMessage, messageForError(tt.err))
		})
	}

	t.Run("wrapped errors map the same", func(t *testing.T) {
		wrapped := errors.Join(models.ErrProtectedUser)
		assert.Equal(t, "Master Admin cannot be modified", messageForError(wrapped))
	})
}
