package storage

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

// Decision is the outcome of a rate limit check.
type Decision struct {
	Allowed bool
	// RetryAfter is how long until the next request could be allowed. Zero when Allowed.
	RetryAfter time.Duration
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

type Session struct {
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionStore maps hashed session tokens to users. Raw tokens are never stored.
type SessionStore interface {
	SetSession(ctx context.Context, tokenHash string, session Session) error

	// GetSession returns ErrNotFound if the session does not exist or has expired.
	GetSession(ctx context.Context, tokenHash string) (Session, error)

	// DeleteSession is a no-op for unknown hashes.
	DeleteSession(ctx context.Context, tokenHash string) error
}

type Backend interface {
	RateLimiter
	SessionStore

	Close() error

	Ping(ctx context.Context) error
}
