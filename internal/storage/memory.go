package storage

import (
	"context"
	"sync"
	"time"

	"github.com/garrettladley/moodly/internal/schedule"
	"golang.org/x/time/rate"
)

var _ Backend = (*MemoryBackend)(nil)

const defaultCleanupInterval = time.Minute

type MemoryBackend struct {
	limiters  map[string]*rate.Limiter
	limiterMu sync.RWMutex
	rateLimit rate.Limit
	rateBurst int

	sessions   map[string]Session
	sessionsMu sync.RWMutex

	now     func() time.Time
	cleanup *schedule.Task
	once    sync.Once
}

type MemoryOption func(*MemoryBackend)

func WithClock(now func() time.Time) MemoryOption {
	return func(m *MemoryBackend) { m.now = now }
}

// NewMemoryBackend allows ratePerSec requests per key with the given burst.
// Expired sessions are swept every minute until Close.
func NewMemoryBackend(ratePerSec float64, burst int, opts ...MemoryOption) *MemoryBackend {
	m := &MemoryBackend{
		limiters:  make(map[string]*rate.Limiter),
		rateLimit: rate.Limit(ratePerSec),
		rateBurst: burst,
		sessions:  make(map[string]Session),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.cleanup = schedule.Every(context.Background(), defaultCleanupInterval, func(time.Time) {
		m.sweep()
	})
	return m
}

func (m *MemoryBackend) Allow(_ context.Context, key string) (Decision, error) {
	limiter := m.limiter(key)

	r := limiter.ReserveN(m.now(), 1)
	if !r.OK() {
		return Decision{Allowed: false}, nil
	}
	if delay := r.DelayFrom(m.now()); delay > 0 {
		r.CancelAt(m.now())
		return Decision{Allowed: false, RetryAfter: delay}, nil
	}
	return Decision{Allowed: true}, nil
}

func (m *MemoryBackend) limiter(key string) *rate.Limiter {
	m.limiterMu.RLock()
	limiter, exists := m.limiters[key]
	m.limiterMu.RUnlock()
	if exists {
		return limiter
	}

	m.limiterMu.Lock()
	defer m.limiterMu.Unlock()

	if limiter, exists = m.limiters[key]; exists {
		return limiter
	}
	limiter = rate.NewLimiter(m.rateLimit, m.rateBurst)
	m.limiters[key] = limiter
	return limiter
}

func (m *MemoryBackend) SetSession(_ context.Context, tokenHash string, session Session) error {
	m.sessionsMu.Lock()
	m.sessions[tokenHash] = session
	m.sessionsMu.Unlock()
	return nil
}

func (m *MemoryBackend) GetSession(_ context.Context, tokenHash string) (Session, error) {
	m.sessionsMu.RLock()
	s, ok := m.sessions[tokenHash]
	m.sessionsMu.RUnlock()

	if !ok || !m.now().Before(s.ExpiresAt) {
		return Session{}, ErrNotFound
	}
	return s, nil
}

func (m *MemoryBackend) DeleteSession(_ context.Context, tokenHash string) error {
	m.sessionsMu.Lock()
	delete(m.sessions, tokenHash)
	m.sessionsMu.Unlock()
	return nil
}

// Close stops the cleanup task. It is safe to call more than once.
func (m *MemoryBackend) Close() error {
	m.once.Do(m.cleanup.StopAndWait)
	return nil
}

func (m *MemoryBackend) Ping(_ context.Context) error {
	return nil
}

func (m *MemoryBackend) sweep() {
	now := m.now()
	m.sessionsMu.Lock()
	for hash, s := range m.sessions {
		if !now.Before(s.ExpiresAt) {
			delete(m.sessions, hash)
		}
	}
	m.sessionsMu.Unlock()
}
