package insight

import (
	"context"
	"strings"
	"time"

	"github.com/garrettladley/moodly/internal/mood"
	"github.com/garrettladley/moodly/internal/xslog"
)

// DefaultPrimaryTimeout bounds how long a check-in waits on the primary
// generator before the fallback answers instead.
const DefaultPrimaryTimeout = 8 * time.Second

// Generator turns a check-in into a short supportive message.
type Generator interface {
	Generate(ctx context.Context, scores mood.Scores) (string, error)
}

type withFallback struct {
	primary  Generator
	fallback Generator
	timeout  time.Duration
}

type FallbackOption func(*withFallback)

// WithPrimaryTimeout overrides DefaultPrimaryTimeout. Non-positive values are ignored.
func WithPrimaryTimeout(d time.Duration) FallbackOption {
	return func(g *withFallback) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithFallback returns a Generator that never surfaces primary's failures:
// an error, a timeout or a blank result from primary is logged and replaced
// by fallback's output.
func WithFallback(primary Generator, fallback Generator, opts ...FallbackOption) Generator {
	if primary == nil {
		return fallback
	}
	g := &withFallback{primary: primary, fallback: fallback, timeout: DefaultPrimaryTimeout}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *withFallback) Generate(ctx context.Context, scores mood.Scores) (string, error) {
	pctx, cancel := context.WithTimeout(ctx, g.timeout)
	text, err := g.primary.Generate(pctx, scores)
	cancel()

	switch {
	case err != nil:
		xslog.FromContext(ctx).WarnContext(ctx, "insight generator failed, using fallback", xslog.Error(err))
	case strings.TrimSpace(text) == "":
		xslog.FromContext(ctx).WarnContext(ctx, "insight generator returned nothing, using fallback")
	default:
		return strings.TrimSpace(text), nil
	}
	return g.fallback.Generate(ctx, scores)
}
