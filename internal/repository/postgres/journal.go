package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/garrettladley/moodly/internal/repository"
	go_json "github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
)

type journalRepo struct {
	db DBTX
}

func (r *journalRepo) Create(ctx context.Context, e *repository.JournalEntry) error {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := go_json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("encoding tags: %w", err)
	}

	return r.db.QueryRow(ctx,
		"INSERT INTO journal_entries (user_id, title, content, tags_json, mood_score, created_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id",
		e.UserID, e.Title, e.Content, string(tagsJSON), e.MoodScore, e.CreatedAt,
	).Scan(&e.ID)
}

func (r *journalRepo) List(ctx context.Context, userID int64, limit int) ([]repository.JournalEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, title, content, tags_json, mood_score, created_at
		FROM journal_entries WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2`,
		userID, repository.PageSize(limit),
	)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (repository.JournalEntry, error) {
		var (
			e        repository.JournalEntry
			tagsJSON string
		)
		if err := row.Scan(&e.ID, &e.UserID, &e.Title, &e.Content, &tagsJSON, &e.MoodScore, &e.CreatedAt); err != nil {
			return e, err
		}
		if err := go_json.Unmarshal([]byte(tagsJSON), &e.Tags); err != nil {
			return e, fmt.Errorf("decoding tags for journal entry %d: %w", e.ID, err)
		}
		return e, nil
	})
}

func (r *journalRepo) CountSince(ctx context.Context, userID int64, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM journal_entries WHERE user_id = $1 AND created_at >= $2",
		userID, since,
	).Scan(&n)
	return n, err
}
