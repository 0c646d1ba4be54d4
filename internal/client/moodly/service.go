package moodly

import (
	"context"
	"time"

	"github.com/garrettladley/moodly/internal/breathing"
	"github.com/garrettladley/moodly/internal/mood"
	"github.com/garrettladley/moodly/internal/music"
)

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Login struct {
	User      User      `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type AuthService interface {
	Register(ctx context.Context, username string, email string, password string) (*User, error)
	// Login accepts a username or an email as login.
	Login(ctx context.Context, login string, password string) (*Login, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*User, error)
}

type MoodService interface {
	Log(ctx context.Context, scores mood.Scores) (*mood.Entry, error)
	// List returns entries newest first. limit <= 0 uses the server default.
	List(ctx context.Context, limit int) ([]mood.Entry, error)
	Stats(ctx context.Context) (*mood.Stats, error)
}

type MusicService interface {
	Recommendations(ctx context.Context, req music.Request) (*music.Recommendations, error)
}

type BreathingService interface {
	Exercises(ctx context.Context) ([]breathing.Exercise, error)
	// ForMood returns the server's exercise for mood, falling back to the default.
	ForMood(ctx context.Context, mood string) (*breathing.Exercise, error)
	// Stream follows a server-run exercise until it completes.
	Stream(ctx context.Context, mood string, fn func(breathing.Event) error) error
}
