package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinevault/movies-api/internal/core/domain"
	"github.com/cinevault/movies-api/internal/core/ports"
)

// firstFilmYear is the earliest year accepted for a movie.
const firstFilmYear = 1878

type MovieService struct {
	repo ports.MovieRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewMovieService(repo ports.MovieRepository, log zerolog.Logger) *MovieService {
	return &MovieService{repo: repo, log: log, now: time.Now}
}

func (s *MovieService) ListMovies(ctx context.Context, page domain.Page) (*ports.ListResult[*domain.Movie], error) {
	page = page.Normalize()
	items, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return &ports.ListResult[*domain.Movie]{
		Items:      items,
		Total:      total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages(total),
	}, nil
}

func (s *MovieService) GetMovie(ctx context.Context, id int64) (*domain.Movie, error) {
	if id <= 0 {
		return nil, domain.ErrMovieNotFound
	}
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapUnlessDomain("get movie", err)
	}
	return found, nil
}

func (s *MovieService) CreateMovie(ctx context.Context, m domain.Movie) (*domain.Movie, error) {
	m.Title = strings.TrimSpace(m.Title)
	if m.Title == "" {
		return nil, domain.NewValidationError("title is required")
	}
	if err := s.checkYear(m.Year); err != nil {
		return nil, err
	}
	if m.DirectorID != nil && *m.DirectorID <= 0 {
		return nil, domain.NewValidationError("director_id must be a positive integer")
	}

	created, err := s.repo.Create(ctx, &m)
	if err != nil {
		return nil, wrapUnlessDomain("create movie", err)
	}

	s.log.Info().Int64("movie_id", created.ID).Str("title", created.Title).Msg("movie created")
	return created, nil
}

func (s *MovieService) UpdateMovie(ctx context.Context, id int64, patch domain.MoviePatch) (*domain.Movie, error) {
	if id <= 0 {
		return nil, domain.ErrMovieNotFound
	}
	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		if t == "" {
			return nil, domain.NewValidationError("title must not be empty")
		}
		patch.Title = &t
	}
	if patch.Year != nil {
		if err := s.checkYear(*patch.Year); err != nil {
			return nil, err
		}
	}
	if patch.DirectorID != nil && *patch.DirectorID <= 0 {
		return nil, domain.NewValidationError("director_id must be a positive integer")
	}

	if patch.IsEmpty() {
		return s.GetMovie(ctx, id)
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, wrapUnlessDomain("update movie", err)
	}

	s.log.Info().Int64("movie_id", id).Msg("movie updated")
	return updated, nil
}

func (s *MovieService) DeleteMovie(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrMovieNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return wrapUnlessDomain("delete movie", err)
	}
	s.log.Info().Int64("movie_id", id).Msg("movie deleted")
	return nil
}

func (s *MovieService) checkYear(year int) error {
	latest := s.now().Year() + 10
	if year < firstFilmYear || year > latest {
		return domain.NewValidationError(fmt.Sprintf("year must be between %d and %d", firstFilmYear, latest))
	}
	return nil
}

var domainErrors = []error{
	domain.ErrMovieNotFound,
	domain.ErrMovieExists,
	domain.ErrDirectorNotFound,
	domain.ErrDirectorExists,
	domain.ErrUnknownDirector,
	domain.ErrValidation,
}

// wrapUnlessDomain adds op context to infrastructure failures and passes
// known domain errors through untouched.
func wrapUnlessDomain(op string, err error) error {
	for _, known := range domainErrors {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
