package repository

import (
	"context"
	"errors"
	"time"

	"github.com/garrettladley/moodly/internal/mood"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// DuplicateError reports which unique column rejected a write.
// errors.Is(err, ErrDuplicate) holds for every DuplicateError.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return "duplicate " + e.Field
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

type Repository struct {
	Users   UserRepository
	Moods   MoodRepository
	Journal JournalRepository
	Goals   GoalRepository
}

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// PageSize clamps a caller supplied limit to [1, MaxPageSize], defaulting to DefaultPageSize.
func PageSize(limit int) int {
	switch {
	case limit <= 0:
		return DefaultPageSize
	case limit > MaxPageSize:
		return MaxPageSize
	default:
		return limit
	}
}

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type UserRepository interface {
	// Create inserts u and fills in ID. A taken username or email returns a
	// *DuplicateError naming the column.
	Create(ctx context.Context, u *User) error
	Get(ctx context.Context, id int64) (*User, error)
	// GetByLogin matches either the username or the email.
	GetByLogin(ctx context.Context, login string) (*User, error)
}

type MoodRepository interface {
	Create(ctx context.Context, userID int64, e *mood.Entry) error
	// List returns the newest entries first.
	List(ctx context.Context, userID int64, limit int) ([]mood.Entry, error)
	ListSince(ctx context.Context, userID int64, since time.Time) ([]mood.Entry, error)
	All(ctx context.Context, userID int64) ([]mood.Entry, error)
}

type JournalEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	MoodScore *int      `json:"mood_score,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type JournalRepository interface {
	Create(ctx context.Context, e *JournalEntry) error
	List(ctx context.Context, userID int64, limit int) ([]JournalEntry, error)
	CountSince(ctx context.Context, userID int64, since time.Time) (int, error)
}

type Goal struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"-"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Priority    string     `json:"priority"`
	TargetDate  *time.Time `json:"target_date,omitempty"`
	Progress    int        `json:"progress"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type GoalCounts struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

type GoalRepository interface {
	Create(ctx context.Context, g *Goal) error
	List(ctx context.Context, userID int64) ([]Goal, error)
	// Get returns ErrNotFound for goals owned by other users.
	Get(ctx context.Context, userID int64, id int64) (*Goal, error)
	SetProgress(ctx context.Context, userID int64, id int64, progress int, completed bool, at time.Time) (*Goal, error)
	Counts(ctx context.Context, userID int64) (GoalCounts, error)
}
