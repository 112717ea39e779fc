package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cinevault/movies-api/internal/core/domain"
)

const directorColumns = `id, name, birth_year`

type DirectorRepository struct {
	store *Store
}

func NewDirectorRepository(store *Store) *DirectorRepository {
	return &DirectorRepository{store: store}
}

func (r *DirectorRepository) List(ctx context.Context, page domain.Page) ([]*domain.Director, int64, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	var total int64
	if err := r.store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM directors`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := r.store.rebind(`SELECT ` + directorColumns + ` FROM directors ORDER BY id LIMIT ? OFFSET ?`)
	rows, err := r.store.db.QueryContext(ctx, query, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	directors := make([]*domain.Director, 0, page.Limit)
	for rows.Next() {
		d, err := scanDirector(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		directors = append(directors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return directors, total, nil
}

func (r *DirectorRepository) FindByID(ctx context.Context, id int64) (*domain.Director, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	query := r.store.rebind(`SELECT ` + directorColumns + ` FROM directors WHERE id = ?`)
	d, err := scanDirector(r.store.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, r.mapErr(err)
	}
	return d, nil
}

func (r *DirectorRepository) Create(ctx context.Context, director *domain.Director) (*domain.Director, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	query := r.store.rebind(
		`INSERT INTO directors (name, birth_year)
		 VALUES (?, ?)
		 RETURNING ` + directorColumns)
	d, err := scanDirector(r.store.db.QueryRowContext(ctx, query, director.Name, director.BirthYear))
	if err != nil {
		return nil, r.mapErr(err)
	}
	return d, nil
}

func (r *DirectorRepository) Update(ctx context.Context, id int64, patch domain.DirectorPatch) (*domain.Director, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	query := r.store.rebind(
		`UPDATE directors
		 SET name = COALESCE(?, name),
		     birth_year = COALESCE(?, birth_year)
		 WHERE id = ?
		 RETURNING ` + directorColumns)
	d, err := scanDirector(r.store.db.QueryRowContext(ctx, query, patch.Name, patch.BirthYear, id))
	if err != nil {
		return nil, r.mapErr(err)
	}
	return d, nil
}

// Delete removes the director. Movies pointing at it keep existing with a
// NULL director_id.
func (r *DirectorRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	res, err := r.store.db.ExecContext(ctx, r.store.rebind(`DELETE FROM directors WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return domain.ErrDirectorNotFound
	}
	return nil
}

func (r *DirectorRepository) mapErr(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.ErrDirectorNotFound
	case r.store.dialect.IsUniqueViolation(err):
		return domain.ErrDirectorExists
	default:
		return fmt.Errorf("db error: %w", err)
	}
}

func scanDirector(row rowScanner) (*domain.Director, error) {
	var (
		d    domain.Director
		born sql.NullInt32
	)
	if err := row.Scan(&d.ID, &d.Name, &born); err != nil {
		return nil, err
	}
	if born.Valid {
		y := int(born.Int32)
		d.BirthYear = &y
	}
	return &d, nil
}
