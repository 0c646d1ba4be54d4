package journal

import (
	"context"
	"strings"

	"github.com/garrettladley/moodly/internal/repository"
	"github.com/garrettladley/moodly/internal/validator"
)

type CreateRequest struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	MoodScore *int     `json:"mood_score,omitempty"`
}

var _ validator.Validator = CreateRequest{}

func (r CreateRequest) Validate() map[string]string {
	f := validator.Fields{}
	f.Required("title", r.Title)
	f.Required("content", r.Content)
	if r.MoodScore != nil {
		f.IntRange("mood_score", *r.MoodScore, 1, 10)
	}
	return f.Map()
}

// normalizedTags trims tags and drops blanks and duplicates, keeping order.
func (r CreateRequest) normalizedTags() []string {
	seen := make(map[string]bool, len(r.Tags))
	tags := make([]string, 0, len(r.Tags))
	for _, t := range r.Tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	return tags
}

type Template struct {
	Key         string   `json:"key" yaml:"key"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Prompts     []string `json:"prompts" yaml:"prompts"`
}

type Service interface {
	Create(ctx context.Context, userID int64, req CreateRequest) (*repository.JournalEntry, error)
	List(ctx context.Context, userID int64, limit int) ([]repository.JournalEntry, error)
	Templates() []Template
}
