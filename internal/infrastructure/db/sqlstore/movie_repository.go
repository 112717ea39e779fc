package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cinevault/movies-api/internal/core/domain"
)

const movieColumns = `id, title, year, director_id`

type MovieRepository struct {
	store *Store
}

func NewMovieRepository(store *Store) *MovieRepository {
	return &MovieRepository{store: store}
}

// List returns one page of movies ordered by id and the total row count.
func (r *MovieRepository) List(ctx context.Context, page domain.Page) ([]*domain.Movie, int64, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	var total int64
	if err := r.store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := r.store.rebind(`SELECT ` + movieColumns + ` FROM movies ORDER BY id LIMIT ? OFFSET ?`)
	rows, err := r.store.db.QueryContext(ctx, query, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	movies := make([]*domain.Movie, 0, page.Limit)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return movies, total, nil
}

func (r *MovieRepository) FindByID(ctx context.Context, id int64) (*domain.Movie, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	query := r.store.rebind(`SELECT ` + movieColumns + ` FROM movies WHERE id = ?`)
	m, err := scanMovie(r.store.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, r.mapErr(err)
	}
	return m, nil
}

func (r *MovieRepository) Create(ctx context.Context, movie *domain.Movie) (*domain.Movie, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	query := r.store.rebind(
		`INSERT INTO movies (title, year, director_id)
		 VALUES (?, ?, ?)
		 RETURNING ` + movieColumns)
	m, err := scanMovie(r.store.db.QueryRowContext(ctx, query, movie.Title, movie.Year, movie.DirectorID))
	if err != nil {
		return nil, r.mapErr(err)
	}
	return m, nil
}

// Update applies the non-nil patch fields in a single statement; fields left
// nil keep their stored value.
func (r *MovieRepository) Update(ctx context.Context, id int64, patch domain.MoviePatch) (*domain.Movie, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	query := r.store.rebind(
		`UPDATE movies
		 SET title = COALESCE(?, title),
		     year = COALESCE(?, year),
		     director_id = COALESCE(?, director_id)
		 WHERE id = ?
		 RETURNING ` + movieColumns)
	m, err := scanMovie(r.store.db.QueryRowContext(ctx, query, patch.Title, patch.Year, patch.DirectorID, id))
	if err != nil {
		return nil, r.mapErr(err)
	}
	return m, nil
}

func (r *MovieRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	res, err := r.store.db.ExecContext(ctx, r.store.rebind(`DELETE FROM movies WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return domain.ErrMovieNotFound
	}
	return nil
}

func (r *MovieRepository) mapErr(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.ErrMovieNotFound
	case r.store.dialect.IsUniqueViolation(err):
		return domain.ErrMovieExists
	case r.store.dialect.IsForeignKeyViolation(err):
		return domain.ErrUnknownDirector
	default:
		return fmt.Errorf("db error: %w", err)
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(row rowScanner) (*domain.Movie, error) {
	var (
		m        domain.Movie
		director sql.NullInt64
	)
	if err := row.Scan(&m.ID, &m.Title, &m.Year, &director); err != nil {
		return nil, err
	}
	if director.Valid {
		id := director.Int64
		m.DirectorID = &id
	}
	return &m, nil
}
