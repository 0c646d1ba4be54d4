package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/garrettladley/moodly/internal/storage"
)

const (
	TokenPrefix = "mdy_"
	tokenLength = 32

	DefaultTTL = 7 * 24 * time.Hour
)

type Manager struct {
	store storage.SessionStore
	ttl   time.Duration
	now   func() time.Time
}

var _ Service = (*Manager)(nil)

func NewManager(store storage.SessionStore, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{store: store, ttl: ttl, now: time.Now}
}

func (m *Manager) Create(ctx context.Context, userID int64) (*Issued, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := m.now().UTC()
	s := storage.Session{
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.SetSession(ctx, HashToken(token), s); err != nil {
		return nil, fmt.Errorf("storing session: %w", err)
	}

	return &Issued{Token: token, UserID: userID, ExpiresAt: s.ExpiresAt}, nil
}

func (m *Manager) Resolve(ctx context.Context, token string) (int64, error) {
	if !strings.HasPrefix(token, TokenPrefix) {
		return 0, ErrInvalidSession
	}

	s, err := m.store.GetSession(ctx, HashToken(token))
	if errors.Is(err, storage.ErrNotFound) {
		return 0, ErrInvalidSession
	}
	if err != nil {
		return 0, fmt.Errorf("getting session: %w", err)
	}
	if !m.now().Before(s.ExpiresAt) {
		return 0, ErrInvalidSession
	}
	return s.UserID, nil
}

func (m *Manager) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := m.store.DeleteSession(ctx, HashToken(token)); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func HashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

func generateToken() (string, error) {
	b := make([]byte, tokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating random bytes: %w", err)
	}
	return TokenPrefix + base64.RawURLEncoding.EncodeToString(b), nil
}
