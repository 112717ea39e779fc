package domain

import "errors"

var (
	ErrValidation      = errors.New("validation failed")
	ErrTooManyAttempts = errors.New("too many failed login attempts")

	// Authentication and authorization.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access forbidden")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username already taken")

	// Token verification. All three map to the same client-visible outcome;
	// the distinction only feeds logs and metrics.
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
	ErrTokenMalformed = errors.New("token malformed")

	// Catalogue.
	ErrMovieNotFound    = errors.New("movie not found")
	ErrMovieExists      = errors.New("movie already exists")
	ErrDirectorNotFound = errors.New("director not found")
	ErrDirectorExists   = errors.New("director already exists")
	ErrUnknownDirector  = errors.New("director_id does not reference an existing director")
)

// ValidationError carries a client-facing message for input that failed
// validation. It matches ErrValidation under errors.Is.
type ValidationError struct {
	Msg string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// IsTokenError reports whether err is one of the token verification failures.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenInvalid) ||
		errors.Is(err, ErrTokenMalformed)
}
