package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cinevault/movies-api/internal/core/domain"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// Create inserts the user and fills in the generated id and creation time.
// A taken username yields domain.ErrUserExists.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	query := r.store.rebind(
		`INSERT INTO users (username, password_hash, role, created_at)
		 VALUES (?, ?, ?, ?)
		 RETURNING id`)

	created := *user
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}
	err := r.store.db.QueryRowContext(ctx, query, user.Username, user.PasswordHash, user.Role, created.CreatedAt).
		Scan(&created.ID)
	if err != nil {
		if r.store.dialect.IsUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &created, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	query := r.store.rebind(
		`SELECT id, username, password_hash, role, created_at
		 FROM users
		 WHERE username = ?`)

	var u domain.User
	err := r.store.db.QueryRowContext(ctx, query, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &u, nil
}
