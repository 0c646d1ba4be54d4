package journal

import (
	"context"
	_ "embed"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/garrettladley/moodly/internal/repository"
	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var templatesYAML []byte

type Journal struct {
	entries   repository.JournalRepository
	templates []Template
	now       func() time.Time
}

var _ Service = (*Journal)(nil)

func New(entries repository.JournalRepository) (*Journal, error) {
	templates, err := ParseTemplates(templatesYAML)
	if err != nil {
		return nil, err
	}
	return &Journal{entries: entries, templates: templates, now: time.Now}, nil
}

func ParseTemplates(data []byte) ([]Template, error) {
	var templates []Template
	if err := yaml.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("parsing journal templates: %w", err)
	}
	for i, t := range templates {
		if t.Key == "" || len(t.Prompts) == 0 {
			return nil, fmt.Errorf("journal template %d: key and prompts are required", i)
		}
	}
	return templates, nil
}

func (j *Journal) Create(ctx context.Context, userID int64, req CreateRequest) (*repository.JournalEntry, error) {
	e := &repository.JournalEntry{
		UserID:    userID,
		Title:     strings.TrimSpace(req.Title),
		Content:   req.Content,
		Tags:      req.normalizedTags(),
		MoodScore: req.MoodScore,
		CreatedAt: j.now().UTC(),
	}
	if err := j.entries.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("storing journal entry: %w", err)
	}
	return e, nil
}

func (j *Journal) List(ctx context.Context, userID int64, limit int) ([]repository.JournalEntry, error) {
	entries, err := j.entries.List(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing journal entries: %w", err)
	}
	if entries == nil {
		entries = []repository.JournalEntry{}
	}
	return entries, nil
}

func (j *Journal) Templates() []Template {
	return slices.Clone(j.templates)
}
