package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/garrettladley/moodly/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// DBTX is the subset of pgxpool.Pool the repositories use. pgx.Tx satisfies it too.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func New(db DBTX) *repository.Repository {
	return &repository.Repository{
		Users:   &userRepo{db: db},
		Moods:   &moodRepo{db: db},
		Journal: &journalRepo{db: db},
		Goals:   &goalRepo{db: db},
	}
}

// asDuplicate maps unique violations to *repository.DuplicateError using the
// constraint name (users_email_key -> email).
func asDuplicate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}

	field := strings.TrimSuffix(pgErr.ConstraintName, "_key")
	if i := strings.Index(field, "_"); i >= 0 {
		field = field[i+1:]
	}
	if field == "" {
		field = "record"
	}
	return &repository.DuplicateError{Field: field}
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}
