package sqlstore

import (
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// Dialect hides the differences between the supported SQL engines.
// Queries are written once with "?" placeholders and rebound per dialect.
type Dialect interface {
	Name() string
	DriverName() string
	GooseDialect() string
	Rebind(query string) string
	IsUniqueViolation(err error) bool
	IsForeignKeyViolation(err error) bool
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DialectFor returns the dialect registered under name.
func DialectFor(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case DriverSQLite:
		return SQLite{}, nil
	case DriverPostgres:
		return Postgres{}, nil
	default:
		return nil, errors.New("unsupported database driver: " + name)
	}
}

// SQLite talks to github.com/mattn/go-sqlite3.
type SQLite struct{}

func (SQLite) Name() string               { return DriverSQLite }
func (SQLite) DriverName() string         { return "sqlite3" }
func (SQLite) GooseDialect() string       { return "sqlite3" }
func (SQLite) Rebind(query string) string { return query }

func (SQLite) IsUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
			se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

func (SQLite) IsForeignKeyViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}

// Postgres talks to PostgreSQL through the pgx stdlib driver.
type Postgres struct{}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func (Postgres) Name() string         { return DriverPostgres }
func (Postgres) DriverName() string   { return "pgx" }
func (Postgres) GooseDialect() string { return "postgres" }

// Rebind rewrites "?" placeholders into PostgreSQL's positional "$n" form.
func (Postgres) Rebind(query string) string {
	n := strings.Count(query, "?")
	if n == 0 {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + n*2)
	arg := 0
	for _, r := range query {
		if r != '?' {
			b.WriteRune(r)
			continue
		}
		arg++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(arg))
	}
	return b.String()
}

func (Postgres) IsUniqueViolation(err error) bool {
	return pgCode(err) == pgUniqueViolation
}

func (Postgres) IsForeignKeyViolation(err error) bool {
	return pgCode(err) == pgForeignKeyViolation
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
