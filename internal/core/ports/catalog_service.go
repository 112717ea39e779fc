package ports

import (
	"context"

	"github.com/cinevault/movies-api/internal/core/domain"
)

// ListResult is a page of items with the total count across all pages.
type ListResult[T any] struct {
	Items      []T
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

type MovieService interface {
	ListMovies(ctx context.Context, page domain.Page) (*ListResult[*domain.Movie], error)
	GetMovie(ctx context.Context, id int64) (*domain.Movie, error)
	CreateMovie(ctx context.Context, m domain.Movie) (*domain.Movie, error)
	UpdateMovie(ctx context.Context, id int64, patch domain.MoviePatch) (*domain.Movie, error)
	DeleteMovie(ctx context.Context, id int64) error
}

type DirectorService interface {
	ListDirectors(ctx context.Context, page domain.Page) (*ListResult[*domain.Director], error)
	GetDirector(ctx context.Context, id int64) (*domain.Director, error)
	CreateDirector(ctx context.Context, d domain.Director) (*domain.Director, error)
	UpdateDirector(ctx context.Context, id int64, patch domain.DirectorPatch) (*domain.Director, error)
	DeleteDirector(ctx context.Context, id int64) error
}
