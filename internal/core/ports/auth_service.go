package ports

import (
	"context"
	"time"

	"github.com/cinevault/movies-api/internal/core/domain"
)

// RegisterInput carries a registration request. Role is optional; AdminKey
// is only consulted when Role asks for elevation.
type RegisterInput struct {
	Username string
	Password string
	Role     string
	AdminKey string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}
