package storage

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

//go:embed ratelimit.lua
var rateLimitLua string

var rateLimitScript = redis.NewScript(rateLimitLua)

type rateLimitParams struct {
	window time.Duration // ARGV[1]: window length in milliseconds
	limit  int           // ARGV[2]: max requests allowed in window
}

func (p rateLimitParams) args() []any {
	return []any{
		p.window.Milliseconds(),
		p.limit,
	}
}

func runRateLimitScript(ctx context.Context, client redis.Scripter, key string, params rateLimitParams) (Decision, error) {
	result, err := rateLimitScript.Run(ctx, client,
		[]string{key},
		params.args()...,
	).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("running rate limit script: %w", err)
	}
	return parseRateLimitResult(result)
}

func parseRateLimitResult(result []int64) (Decision, error) {
	if len(result) != 2 {
		return Decision{}, fmt.Errorf("unexpected rate limit script result %v", result)
	}
	if result[0] == 1 {
		return Decision{Allowed: true}, nil
	}
	return Decision{Allowed: false, RetryAfter: time.Duration(result[1]) * time.Millisecond}, nil
}
