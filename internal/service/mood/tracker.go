package mood

import (
	"context"
	"fmt"
	"time"

	"github.com/garrettladley/moodly/internal/insight"
	"github.com/garrettladley/moodly/internal/mood"
	"github.com/garrettladley/moodly/internal/repository"
	"github.com/garrettladley/moodly/internal/xslog"
)

type Tracker struct {
	entries  repository.MoodRepository
	insights insight.Generator
	now      func() time.Time
}

var _ Service = (*Tracker)(nil)

type Option func(*Tracker)

func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// NewTracker falls back to rule based insights when insights is nil.
func NewTracker(entries repository.MoodRepository, insights insight.Generator, opts ...Option) *Tracker {
	if insights == nil {
		insights = insight.Rules{}
	}
	t := &Tracker{entries: entries, insights: insights, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tracker) Log(ctx context.Context, userID int64, scores mood.Scores) (mood.Entry, error) {
	entry := scores.Entry(0, t.now().UTC())
	entry.Insight = t.Insight(ctx, scores)

	if err := t.entries.Create(ctx, userID, &entry); err != nil {
		return mood.Entry{}, fmt.Errorf("storing mood entry: %w", err)
	}

	xslog.FromContext(ctx).InfoContext(ctx, "mood logged", xslog.EntryID(entry.ID))
	return entry, nil
}

func (t *Tracker) List(ctx context.Context, userID int64, limit int) ([]mood.Entry, error) {
	entries, err := t.entries.List(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing mood entries: %w", err)
	}
	if entries == nil {
		entries = []mood.Entry{}
	}
	return entries, nil
}

func (t *Tracker) Stats(ctx context.Context, userID int64) (mood.Stats, error) {
	entries, err := t.entries.All(ctx, userID)
	if err != nil {
		return mood.Stats{}, fmt.Errorf("loading mood entries: %w", err)
	}
	return mood.ComputeStats(entries, t.now()), nil
}

func (t *Tracker) Insight(ctx context.Context, scores mood.Scores) string {
	text, err := t.insights.Generate(ctx, scores)
	if err != nil || text == "" {
		if err != nil {
			xslog.FromContext(ctx).WarnContext(ctx, "insight generation failed", xslog.Error(err))
		}
		return insight.Compose(scores)
	}
	return text
}
