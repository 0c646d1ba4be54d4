package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

var _ Backend = (*RedisBackend)(nil)

const (
	rateLimitKeyPrefix = "moodly:ratelimit:"
	sessionKeyPrefix   = "moodly:session:"
)

type RedisConfig struct {
	Client *redis.Client
	// Limit requests per Window for each rate limit key.
	Limit  int
	Window time.Duration
}

type RedisBackend struct {
	client     *redis.Client
	rateLimit  int
	rateWindow time.Duration
	now        func() time.Time
}

func NewRedisBackend(cfg RedisConfig) *RedisBackend {
	window := cfg.Window
	if window <= 0 {
		window = time.Second
	}
	return &RedisBackend{
		client:     cfg.Client,
		rateLimit:  cfg.Limit,
		rateWindow: window,
		now:        time.Now,
	}
}

func (r *RedisBackend) Allow(ctx context.Context, key string) (Decision, error) {
	return runRateLimitScript(ctx, r.client, rateLimitKeyPrefix+key, rateLimitParams{
		window: r.rateWindow,
		limit:  r.rateLimit,
	})
}

func (r *RedisBackend) SetSession(ctx context.Context, tokenHash string, session Session) error {
	ttl := session.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}

	data, err := go_json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}

	if err := r.client.Set(ctx, sessionKeyPrefix+tokenHash, data, ttl).Err(); err != nil {
		return fmt.Errorf("setting session: %w", err)
	}
	return nil
}

func (r *RedisBackend) GetSession(ctx context.Context, tokenHash string) (Session, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+tokenHash).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("getting session: %w", err)
	}

	var s Session
	if err := go_json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("unmarshaling session: %w", err)
	}
	return s, nil
}

func (r *RedisBackend) DeleteSession(ctx context.Context, tokenHash string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+tokenHash).Err(); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func (r *RedisBackend) Close() error {
	return r.client.Close()
}

func (r *RedisBackend) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
