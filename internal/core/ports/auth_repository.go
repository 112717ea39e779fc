package ports

import (
	"context"

	"github.com/cinevault/movies-api/internal/core/domain"
)

// UserRepository is the credential store. Implementations receive usernames
// already normalized by the service and must report a unique violation as
// domain.ErrUserExists and a miss as domain.ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
