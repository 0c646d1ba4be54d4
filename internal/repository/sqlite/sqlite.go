package sqlite

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/garrettladley/moodly/internal/repository"
	"github.com/mattn/go-sqlite3"
)

// New returns a Repository backed by an already migrated SQLite database.
func New(db *sql.DB) *repository.Repository {
	return &repository.Repository{
		Users:   &userRepo{db: db},
		Moods:   &moodRepo{db: db},
		Journal: &journalRepo{db: db},
		Goals:   &goalRepo{db: db},
	}
}

// asDuplicate converts a unique constraint failure into a *repository.DuplicateError.
// SQLite reports the column as "UNIQUE constraint failed: table.column".
func asDuplicate(err error) error {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.ExtendedCode != sqlite3.ErrConstraintUnique {
		return err
	}

	field := "record"
	msg := sqliteErr.Error()
	if i := strings.LastIndex(msg, "."); i >= 0 && i < len(msg)-1 {
		field = msg[i+1:]
	}
	return &repository.DuplicateError{Field: field}
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}
