package handlers

import (
	"errors"
	"net/http"

	"github.com/bookwise/backend/internal/models"
	"go.uber.org/zap"
)

// statusForError maps a domain error to an HTTP status code
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrDuplicateEmail),
		errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrUnauthorized),
		errors.Is(err, models.ErrInvalidToken),
		errors.Is(err, models.ErrForbidden),
		errors.Is(err, models.ErrProtectedUser):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrBookNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// messageForError is the client-facing text for a domain error. The
// frontend matches these strings verbatim, casing included, so they are
// fixed here at the boundary rather than taken from the error values.
func messageForError(err error) string {
	switch {
	case errors.Is(err, models.ErrDuplicateEmail):
		return "Email already exists"
	case errors.Is(err, models.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, models.ErrUnauthorized),
		errors.Is(err, models.ErrInvalidToken):
		return "Not Authorized"
	case errors.Is(err, models.ErrForbidden):
		return "You are not authorized"
	case errors.Is(err, models.ErrProtectedUser):
		return "Master Admin cannot be modified"
	case errors.Is(err, models.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, models.ErrBookNotFound):
		return "Book not found"
	case errors.Is(err, models.ErrUnavailable):
		return "Service temporarily unavailable"
	default:
		return "Something went wrong"
	}
}

// RespondDomainError renders a domain error as a status code and message.
// Unexpected errors become a generic 500 so internals never leak.
func (h *BaseHandler) RespondDomainError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		h.Logger.Error("unexpected error", zap.Error(err))
	}

	h.RespondError(w, status, messageForError(err))
}
