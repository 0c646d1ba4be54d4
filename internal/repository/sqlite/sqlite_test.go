package sqlite_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/garrettladley/moodly/internal/migrations"
	"github.com/garrettladley/moodly/internal/mood"
	"github.com/garrettladley/moodly/internal/repository"
	"github.com/garrettladley/moodly/internal/repository/sqlite"
	"github.com/google/go-cmp/cmp"
	_ "github.com/mattn/go-sqlite3"
)

var base = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

func newRepo(t *testing.T) *repository.Repository {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if _, err := migrations.Apply(t.Context(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return sqlite.New(db)
}

func createUser(t *testing.T, repo *repository.Repository, name string) *repository.User {
	t.Helper()

	u := &repository.User{Username: name, Email: name + "@example.com", PasswordHash: "hash", CreatedAt: base}
	if err := repo.Users.Create(t.Context(), u); err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return u
}

func TestUsers(t *testing.T) {
	t.Parallel()

	repo := newRepo(t)
	alice := createUser(t, repo, "alice")
	if alice.ID == 0 {
		t.Fatal("Create() did not assign an id")
	}

	byName, err := repo.Users.GetByLogin(t.Context(), "alice")
	if err != nil {
		t.Fatalf("GetByLogin(username) error = %v", err)
	}
	byEmail, err := repo.Users.GetByLogin(t.Context(), "alice@example.com")
	if err != nil {
		t.Fatalf("GetByLogin(email) error = %v", err)
	}
	if diff := cmp.Diff(byName, byEmail); diff != "" {
		t.Errorf("lookups disagree (-username +email):\n%s", diff)
	}
	if diff := cmp.Diff(alice, byName); diff != "" {
		t.Errorf("stored user mismatch (-want +got):\n%s", diff)
	}

	if _, err := repo.Users.Get(t.Context(), 999); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestUsersDuplicate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		user      repository.User
		wantField string
	}{
		{name: "username", user: repository.User{Username: "alice", Email: "other@example.com"}, wantField: "username"},
		{name: "email", user: repository.User{Username: "other", Email: "alice@example.com"}, wantField: "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := newRepo(t)
			createUser(t, repo, "alice")

			u := tt.user
			u.PasswordHash = "hash"
			u.CreatedAt = base
			err := repo.Users.Create(t.Context(), &u)

			var dup *repository.DuplicateError
			if !errors.As(err, &dup) {
				t.Fatalf("Create() error = %v, want *DuplicateError", err)
			}
			if dup.Field != tt.wantField {
				t.Errorf("DuplicateError.Field = %q, want %q", dup.Field, tt.wantField)
			}
			if !errors.Is(err, repository.ErrDuplicate) {
				t.Error("errors.Is(err, ErrDuplicate) = false")
			}
		})
	}
}

func TestMoods(t *testing.T) {
	t.Parallel()

	repo := newRepo(t)
	alice := createUser(t, repo, "alice")
	bob := createUser(t, repo, "bob")

	for i := range 5 {
		e := &mood.Entry{Mood: i + 1, Energy: 5, Anxiety: 5, SleepHours: 7.5, Notes: "note", Insight: "insight", CreatedAt: base.AddDate(0, 0, i)}
		if err := repo.Moods.Create(t.Context(), alice.ID, e); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	if err := repo.Moods.Create(t.Context(), bob.ID, &mood.Entry{Mood: 9, Energy: 9, Anxiety: 1, CreatedAt: base}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	latest, err := repo.Moods.List(t.Context(), alice.ID, 2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []mood.Entry{
		{ID: 5, Mood: 5, Energy: 5, Anxiety: 5, SleepHours: 7.5, Notes: "note", Insight: "insight", CreatedAt: base.AddDate(0, 0, 4)},
		{ID: 4, Mood: 4, Energy: 5, Anxiety: 5, SleepHours: 7.5, Notes: "note", Insight: "insight", CreatedAt: base.AddDate(0, 0, 3)},
	}
	if diff := cmp.Diff(want, latest); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}

	since, err := repo.Moods.ListSince(t.Context(), alice.ID, base.AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("ListSince() error = %v", err)
	}
	if len(since) != 3 {
		t.Errorf("ListSince() returned %d entries, want 3", len(since))
	}

	all, err := repo.Moods.All(t.Context(), bob.ID)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 1 || all[0].Mood != 9 {
		t.Errorf("All(bob) = %+v, want bob's single entry", all)
	}
}

func TestJournal(t *testing.T) {
	t.Parallel()

	repo := newRepo(t)
	alice := createUser(t, repo, "alice")

	score := 6
	withTags := &repository.JournalEntry{UserID: alice.ID, Title: "Monday", Content: "ok", Tags: []string{"work", "sleep"}, MoodScore: &score, CreatedAt: base}
	noTags := &repository.JournalEntry{UserID: alice.ID, Title: "Tuesday", Content: "fine", CreatedAt: base.Add(time.Hour)}
	for _, e := range []*repository.JournalEntry{withTags, noTags} {
		if err := repo.Journal.Create(t.Context(), e); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	got, err := repo.Journal.List(t.Context(), alice.ID, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	noTags.Tags = []string{}
	want := []repository.JournalEntry{*noTags, *withTags}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}

	n, err := repo.Journal.CountSince(t.Context(), alice.ID, base.Add(time.Minute))
	if err != nil {
		t.Fatalf("CountSince() error = %v", err)
	}
	if n != 1 {
		t.Errorf("CountSince() = %d, want 1", n)
	}
}

func TestGoals(t *testing.T) {
	t.Parallel()

	repo := newRepo(t)
	alice := createUser(t, repo, "alice")
	bob := createUser(t, repo, "bob")

	target := base.AddDate(0, 1, 0)
	g := &repository.Goal{
		UserID: alice.ID, Title: "Walk daily", Category: "health", Priority: "high",
		TargetDate: &target, CreatedAt: base, UpdatedAt: base,
	}
	if err := repo.Goals.Create(t.Context(), g); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Goals.Create(t.Context(), &repository.Goal{UserID: alice.ID, Title: "Read", Category: "personal", Priority: "low", CreatedAt: base, UpdatedAt: base}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := repo.Goals.Get(t.Context(), bob.ID, g.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Get(other user) error = %v, want ErrNotFound", err)
	}
	if _, err := repo.Goals.SetProgress(t.Context(), bob.ID, g.ID, 50, false, base); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("SetProgress(other user) error = %v, want ErrNotFound", err)
	}

	later := base.Add(time.Hour)
	updated, err := repo.Goals.SetProgress(t.Context(), alice.ID, g.ID, 100, true, later)
	if err != nil {
		t.Fatalf("SetProgress() error = %v", err)
	}
	want := *g
	want.Progress = 100
	want.Completed = true
	want.UpdatedAt = later
	if diff := cmp.Diff(&want, updated); diff != "" {
		t.Errorf("SetProgress() mismatch (-want +got):\n%s", diff)
	}

	counts, err := repo.Goals.Counts(t.Context(), alice.ID)
	if err != nil {
		t.Fatalf("Counts() error = %v", err)
	}
	if diff := cmp.Diff(repository.GoalCounts{Total: 2, Completed: 1}, counts); diff != "" {
		t.Errorf("Counts() mismatch (-want +got):\n%s", diff)
	}

	list, err := repo.Goals.List(t.Context(), alice.ID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 || list[0].Completed {
		t.Errorf("List() = %+v, want open goals first", list)
	}
}
