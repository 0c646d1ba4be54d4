package session

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidSession = errors.New("invalid or expired session")

// Issued is a freshly created session. Token is only available here.
type Issued struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
}

type Service interface {
	Create(ctx context.Context, userID int64) (*Issued, error)

	// Resolve returns the user id for a raw token, or ErrInvalidSession.
	Resolve(ctx context.Context, token string) (int64, error)

	// Revoke is idempotent.
	Revoke(ctx context.Context, token string) error
}
