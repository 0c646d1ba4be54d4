package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/garrettladley/moodly/internal/repository"
	go_json "github.com/goccy/go-json"
)

type journalRepo struct {
	db *sql.DB
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

	var moodScore sql.NullInt64
	if e.MoodScore != nil {
		moodScore = sql.NullInt64{Int64: int64(*e.MoodScore), Valid: true}
	}

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO journal_entries (user_id, title, content, tags_json, mood_score, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		e.UserID, e.Title, e.Content, string(tagsJSON), moodScore, e.CreatedAt.UTC(),
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = id
	return nil
}

func (r *journalRepo) List(ctx context.Context, userID int64, limit int) ([]repository.JournalEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, content, tags_json, mood_score, created_at
		FROM journal_entries WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		userID, repository.PageSize(limit),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []repository.JournalEntry
	for rows.Next() {
		var (
			e         repository.JournalEntry
			tagsJSON  string
			moodScore sql.NullInt64
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Content, &tagsJSON, &moodScore, &e.CreatedAt); err != nil {
			return nil, err
		}
		if err := go_json.Unmarshal([]byte(tagsJSON), &e.Tags); err != nil {
			return nil, fmt.Errorf("decoding tags for journal entry %d: %w", e.ID, err)
		}
		if moodScore.Valid {
			v := int(moodScore.Int64)
			e.MoodScore = &v
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *journalRepo) CountSince(ctx context.Context, userID int64, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM journal_entries WHERE user_id = ? AND created_at >= ?",
		userID, since.UTC(),
	).Scan(&n)
	return n, err
}
