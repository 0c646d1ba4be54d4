package migrations_test

import (
	"database/sql"
	"testing"
	"testing/fstest"

	"github.com/garrettladley/moodly/internal/migrations"
	"github.com/google/go-cmp/cmp"
	_ "github.com/mattn/go-sqlite3"
)

func TestApplyIsIdempotent(t *testing.T) {
	t.Parallel()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	first, err := migrations.Apply(t.Context(), db)
	if err != nil {
		t.Fatalf("first Apply() error = %v", err)
	}
	if len(first) == 0 {
		t.Fatal("first Apply() applied nothing")
	}

	second, err := migrations.Apply(t.Context(), db)
	if err != nil {
		t.Fatalf("second Apply() error = %v", err)
	}
	if len(second) != 0 {
		t.Errorf("second Apply() re-applied %v", second)
	}

	for _, table := range []string{"users", "mood_entries", "journal_entries", "goals"} {
		var name string
		err := db.QueryRowContext(t.Context(), "SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestNames(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"sql/000002_b.sql": {},
		"sql/000001_a.sql": {},
		"sql/README.md":    {},
	}

	got, err := migrations.Names(fsys, "sql")
	if err != nil {
		t.Fatalf("Names() error = %v", err)
	}
	if diff := cmp.Diff([]string{"000001_a.sql", "000002_b.sql"}, got); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestStatements(t *testing.T) {
	t.Parallel()

	got := migrations.Statements("CREATE TABLE a (x INT);\n\n  ;CREATE INDEX i ON a (x);\n")
	want := []string{"CREATE TABLE a (x INT)", "CREATE INDEX i ON a (x)"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Statements() mismatch (-want +got):\n%s", diff)
	}
}
