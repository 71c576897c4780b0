package models

import "errors"

// Domain errors shared between repositories, services and handlers.
// Handlers map them to HTTP status codes in a single place.
var (
	// ErrDuplicateEmail is raised by the user store when the unique email
	// constraint is violated on insert.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so responses never reveal which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthorized means the request carried no usable token.
	ErrUnauthorized = errors.New("authentication required")

	// ErrInvalidToken means the token was present but malformed, signed
	// with the wrong key or with the wrong algorithm.
	ErrInvalidToken = errors.New("invalid token")

	// ErrForbidden means the token was valid but the role is insufficient.
	ErrForbidden = errors.New("you are not authorized")

	// ErrProtectedUser guards the master admin account from role changes.
	ErrProtectedUser = errors.New("master admin cannot be modified")

	ErrUserNotFound = errors.New("user not found")
	ErrBookNotFound = errors.New("book not found")

	// ErrUnavailable is surfaced when the store did not answer within the
	// per-call deadline; callers may retry.
	ErrUnavailable = errors.New("service temporarily unavailable")
)
