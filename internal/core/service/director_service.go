package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinevault/movies-api/internal/core/domain"
	"github.com/cinevault/movies-api/internal/core/ports"
)

// earliestBirthYear bounds birth_year from below.
const earliestBirthYear = 1800

type DirectorService struct {
	repo ports.DirectorRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewDirectorService(repo ports.DirectorRepository, log zerolog.Logger) *DirectorService {
	return &DirectorService{repo: repo, log: log, now: time.Now}
}

func (s *DirectorService) ListDirectors(ctx context.Context, page domain.Page) (*ports.ListResult[*domain.Director], error) {
	page = page.Normalize()
	items, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list directors: %w", err)
	}
	return &ports.ListResult[*domain.Director]{
		Items:      items,
		Total:      total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages(total),
	}, nil
}

func (s *DirectorService) GetDirector(ctx context.Context, id int64) (*domain.Director, error) {
	if id <= 0 {
		return nil, domain.ErrDirectorNotFound
	}
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapUnlessDomain("get director", err)
	}
	return found, nil
}

func (s *DirectorService) CreateDirector(ctx context.Context, d domain.Director) (*domain.Director, error) {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return nil, domain.NewValidationError("name is required")
	}
	if d.BirthYear != nil {
		if err := s.checkBirthYear(*d.BirthYear); err != nil {
			return nil, err
		}
	}

	created, err := s.repo.Create(ctx, &d)
	if err != nil {
		return nil, wrapUnlessDomain("create director", err)
	}

	s.log.Info().Int64("director_id", created.ID).Str("name", created.Name).Msg("director created")
	return created, nil
}

func (s *DirectorService) UpdateDirector(ctx context.Context, id int64, patch domain.DirectorPatch) (*domain.Director, error) {
	if id <= 0 {
		return nil, domain.ErrDirectorNotFound
	}
	if patch.Name != nil {
		n := strings.TrimSpace(*patch.Name)
		if n == "" {
			return nil, domain.NewValidationError("name must not be empty")
		}
		patch.Name = &n
	}
	if patch.BirthYear != nil {
		if err := s.checkBirthYear(*patch.BirthYear); err != nil {
			return nil, err
		}
	}

	if patch.IsEmpty() {
		return s.GetDirector(ctx, id)
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, wrapUnlessDomain("update director", err)
	}

	s.log.Info().Int64("director_id", id).Msg("director updated")
	return updated, nil
}

// DeleteDirector removes the director; linked movies keep existing with
// director_id cleared by the store.
func (s *DirectorService) DeleteDirector(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrDirectorNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return wrapUnlessDomain("delete director", err)
	}
	s.log.Info().Int64("director_id", id).Msg("director deleted")
	return nil
}

func (s *DirectorService) checkBirthYear(year int) error {
	latest := s.now().Year()
	if year < earliestBirthYear || year > latest {
		return domain.NewValidationError(fmt.Sprintf("birth_year must be between %d and %d", earliestBirthYear, latest))
	}
	return nil
}
