package mood

import (
	"context"

	"github.com/garrettladley/moodly/internal/mood"
)

type Service interface {
	// Log stores a check-in with a server timestamp and an attached insight.
	// Insight generation failures never fail the call.
	Log(ctx context.Context, userID int64, scores mood.Scores) (mood.Entry, error)

	// List returns the newest entries first. limit is clamped to the repository page size.
	List(ctx context.Context, userID int64, limit int) ([]mood.Entry, error)

	Stats(ctx context.Context, userID int64) (mood.Stats, error)

	// Insight produces an insight without storing anything.
	Insight(ctx context.Context, scores mood.Scores) string
}
