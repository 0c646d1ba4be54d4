package goal

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/garrettladley/moodly/internal/repository"
	"github.com/garrettladley/moodly/internal/validator"
)

var ErrGoalNotFound = errors.New("goal not found")

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"

	DefaultCategory = "personal"
	DefaultPriority = PriorityMedium

	CompleteProgress = 100
)

type CreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	// TargetDate is RFC 3339 or a plain YYYY-MM-DD date.
	TargetDate string `json:"target_date,omitempty"`
}

// Normalize trims fields and applies the default category and priority.
func (r CreateRequest) Normalize() CreateRequest {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Category = strings.TrimSpace(r.Category)
	r.Priority = strings.ToLower(strings.TrimSpace(r.Priority))
	r.TargetDate = strings.TrimSpace(r.TargetDate)
	if r.Category == "" {
		r.Category = DefaultCategory
	}
	if r.Priority == "" {
		r.Priority = DefaultPriority
	}
	return r
}

var _ validator.Validator = CreateRequest{}

func (r CreateRequest) Validate() map[string]string {
	f := validator.Fields{}
	f.Required("title", r.Title)
	f.OneOf("priority", r.Priority, PriorityLow, PriorityMedium, PriorityHigh)
	if r.TargetDate != "" {
		_, err := ParseTargetDate(r.TargetDate)
		f.Check(err == nil, "target_date", "target_date must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
	}
	return f.Map()
}

// ParseTargetDate accepts RFC 3339 timestamps and YYYY-MM-DD dates (midnight UTC).
func ParseTargetDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Parse(time.DateOnly, s)
}

type ProgressRequest struct {
	Progress *int `json:"progress"`
}

var _ validator.Validator = ProgressRequest{}

func (r ProgressRequest) Validate() map[string]string {
	f := validator.Fields{}
	f.Check(r.Progress != nil, "progress", "progress is required")
	if r.Progress != nil {
		f.IntRange("progress", *r.Progress, 0, CompleteProgress)
	}
	return f.Map()
}

type Service interface {
	// Create expects a normalized, valid request.
	Create(ctx context.Context, userID int64, req CreateRequest) (*repository.Goal, error)

	// List returns incomplete goals first, newest first within each group.
	List(ctx context.Context, userID int64) ([]repository.Goal, error)

	// UpdateProgress sets progress; reaching 100 completes the goal.
	// Returns ErrGoalNotFound for goals the user does not own.
	UpdateProgress(ctx context.Context, userID int64, goalID int64, progress int) (*repository.Goal, error)

	Complete(ctx context.Context, userID int64, goalID int64) (*repository.Goal, error)
}
