package ports

import (
	"context"

	"github.com/cinevault/movies-api/internal/core/domain"
)

// MovieRepository persists movies. Missing rows are domain.ErrMovieNotFound,
// unique violations domain.ErrMovieExists and dangling director references
// domain.ErrUnknownDirector.
type MovieRepository interface {
	List(ctx context.Context, page domain.Page) ([]*domain.Movie, int64, error)
	FindByID(ctx context.Context, id int64) (*domain.Movie, error)
	Create(ctx context.Context, m *domain.Movie) (*domain.Movie, error)
	Update(ctx context.Context, id int64, patch domain.MoviePatch) (*domain.Movie, error)
	Delete(ctx context.Context, id int64) error
}

// DirectorRepository persists directors.
type DirectorRepository interface {
	List(ctx context.Context, page domain.Page) ([]*domain.Director, int64, error)
	FindByID(ctx context.Context, id int64) (*domain.Director, error)
	Create(ctx context.Context, d *domain.Director) (*domain.Director, error)
	Update(ctx context.Context, id int64, patch domain.DirectorPatch) (*domain.Director, error)
	Delete(ctx context.Context, id int64) error
}
