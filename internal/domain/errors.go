package domain

import (
	"errors"
	"net/http"
)

// Error taxonomy. Every failure surfaced to a client maps onto exactly one of
// these sentinels; the HTTP layer translates them into the response envelope
// in a single place. Services and repositories wrap them with context via
// fmt.Errorf("...: %w", err).
var (
	// ErrInvalidToken covers every authentication-layer failure: bad
	// signature, malformed payload, expiry, wrong token type, revoked token.
	// Callers are never told which one it was.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrInvalidCredentials is returned on login with a wrong email/password
	// combination.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUserNotFound means a valid token referenced a user that no longer
	// exists. Maps to 401, never 404.
	ErrUserNotFound = errors.New("user not found")

	// ErrInsufficientRole means the caller's role ranks below the required
	// minimum.
	ErrInsufficientRole = errors.New("insufficient role")

	// ErrTenantAccess means the caller attempted to act outside its tenant.
	ErrTenantAccess = errors.New("access to this tenant's data is not allowed")

	// ErrNotFound means the requested entity does not exist (or is invisible
	// to the caller's tenant).
	ErrNotFound = errors.New("resource not found")

	// ErrConflict means a uniqueness constraint was violated.
	ErrConflict = errors.New("resource already exists")

	// ErrForeignKey means a referenced entity does not exist.
	ErrForeignKey = errors.New("referenced resource does not exist")

	// ErrValidation means the input was malformed.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidTransition means a document status change violated the
	// processing state machine.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ErrorCode returns the machine-stable code string for an error, for use in
// the response envelope.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidToken):
		return "INVALID_TOKEN"
	case errors.Is(err, ErrInvalidCredentials):
		return "INVALID_CREDENTIALS"
	case errors.Is(err, ErrUserNotFound):
		return "USER_NOT_FOUND"
	case errors.Is(err, ErrInsufficientRole):
		return "INSUFFICIENT_ROLE"
	case errors.Is(err, ErrTenantAccess):
		return "TENANT_ACCESS_DENIED"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrConflict):
		return "CONFLICT"
	case errors.Is(err, ErrForeignKey):
		return "FOREIGN_KEY_VIOLATION"
	case errors.Is(err, ErrInvalidTransition):
		return "INVALID_TRANSITION"
	case errors.Is(err, ErrValidation):
		return "VALIDATION_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

// HTTPStatus returns the status code an error translates to. Anything
// outside the taxonomy is a 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUserNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInsufficientRole),
		errors.Is(err, ErrTenantAccess):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict),
		errors.Is(err, ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrForeignKey):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
