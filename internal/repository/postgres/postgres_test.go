package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/garrettladley/moodly/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestAsDuplicate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		wantField string
	}{
		{name: "email", err: &pgconn.PgError{Code: uniqueViolation, ConstraintName: "users_email_key"}, wantField: "email"},
		{name: "username wrapped", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: uniqueViolation, ConstraintName: "users_username_key"}), wantField: "username"},
		{name: "unnamed", err: &pgconn.PgError{Code: uniqueViolation}, wantField: "record"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var dup *repository.DuplicateError
			if !errors.As(asDuplicate(tt.err), &dup) {
				t.Fatalf("asDuplicate(%v) is not a DuplicateError", tt.err)
			}
			if dup.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", dup.Field, tt.wantField)
			}
		})
	}
}

func TestAsDuplicatePassesOtherErrors(t *testing.T) {
	t.Parallel()

	fk := &pgconn.PgError{Code: "23503"}
	if got := asDuplicate(fk); got != error(fk) {
		t.Errorf("asDuplicate(foreign key violation) = %v, want it unchanged", got)
	}
	if got := asDuplicate(nil); got != nil {
		t.Errorf("asDuplicate(nil) = %v, want nil", got)
	}
}

func TestNotFound(t *testing.T) {
	t.Parallel()

	if !errors.Is(notFound(pgx.ErrNoRows), repository.ErrNotFound) {
		t.Error("notFound(pgx.ErrNoRows) is not ErrNotFound")
	}
}
