package ports

import (
	"context"
	"time"

	"github.com/cinevault/movies-api/internal/core/domain"
)

// PasswordHasher hashes and verifies passwords. Verify returns (false, nil)
// on a mismatch; an error means the stored hash could not be evaluated.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Verify(ctx context.Context, plaintext, hash string) (bool, error)
}

// TokenIssuer signs session tokens for authenticated users.
type TokenIssuer interface {
	Issue(user *domain.User) (token string, expiresAt time.Time, err error)
}

// TokenVerifier checks a bearer token and returns the claims it carries.
// Failures are domain.ErrTokenExpired, domain.ErrTokenInvalid or
// domain.ErrTokenMalformed.
type TokenVerifier interface {
	Verify(token string) (*domain.Claims, error)
}
