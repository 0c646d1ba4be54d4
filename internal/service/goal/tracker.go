package goal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/garrettladley/moodly/internal/repository"
	"github.com/garrettladley/moodly/internal/xslog"
)

type Tracker struct {
	goals repository.GoalRepository
	now   func() time.Time
}

var _ Service = (*Tracker)(nil)

type Option func(*Tracker)

func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

func NewTracker(goals repository.GoalRepository, opts ...Option) *Tracker {
	t := &Tracker{goals: goals, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tracker) Create(ctx context.Context, userID int64, req CreateRequest) (*repository.Goal, error) {
	now := t.now().UTC()
	g := &repository.Goal{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.TargetDate != "" {
		target, err := ParseTargetDate(req.TargetDate)
		if err != nil {
			return nil, fmt.Errorf("parsing target date: %w", err)
		}
		g.TargetDate = &target
	}

	if err := t.goals.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("storing goal: %w", err)
	}
	xslog.FromContext(ctx).InfoContext(ctx, "goal created", xslog.GoalID(g.ID))
	return g, nil
}

func (t *Tracker) List(ctx context.Context, userID int64) ([]repository.Goal, error) {
	goals, err := t.goals.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	if goals == nil {
		goals = []repository.Goal{}
	}
	return goals, nil
}

func (t *Tracker) UpdateProgress(ctx context.Context, userID int64, goalID int64, progress int) (*repository.Goal, error) {
	progress = min(max(progress, 0), CompleteProgress)

	g, err := t.goals.SetProgress(ctx, userID, goalID, progress, progress == CompleteProgress, t.now())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating goal progress: %w", err)
	}
	return g, nil
}

func (t *Tracker) Complete(ctx context.Context, userID int64, goalID int64) (*repository.Goal, error) {
	return t.UpdateProgress(ctx, userID, goalID, CompleteProgress)
}
