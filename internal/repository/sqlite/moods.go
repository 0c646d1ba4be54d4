package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/garrettladley/moodly/internal/mood"
	"github.com/garrettladley/moodly/internal/repository"
)

type moodRepo struct {
	db *sql.DB
}

const moodColumns = "id, mood_score, energy_level, anxiety_level, sleep_hours, notes, ai_insight, created_at"

func (r *moodRepo) Create(ctx context.Context, userID int64, e *mood.Entry) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO mood_entries (user_id, mood_score, energy_level, anxiety_level, sleep_hours, notes, ai_insight, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, e.Mood, e.Energy, e.Anxiety, e.SleepHours, e.Notes, e.Insight, e.CreatedAt.UTC(),
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

func (r *moodRepo) List(ctx context.Context, userID int64, limit int) ([]mood.Entry, error) {
	return r.query(ctx,
		"SELECT "+moodColumns+" FROM mood_entries WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?",
		userID, repository.PageSize(limit),
	)
}

func (r *moodRepo) ListSince(ctx context.Context, userID int64, since time.Time) ([]mood.Entry, error) {
	return r.query(ctx,
		"SELECT "+moodColumns+" FROM mood_entries WHERE user_id = ? AND created_at >= ? ORDER BY created_at DESC, id DESC",
		userID, since.UTC(),
	)
}

func (r *moodRepo) All(ctx context.Context, userID int64) ([]mood.Entry, error) {
	return r.query(ctx,
		"SELECT "+moodColumns+" FROM mood_entries WHERE user_id = ? ORDER BY created_at DESC, id DESC",
		userID,
	)
}

func (r *moodRepo) query(ctx context.Context, query string, args ...any) ([]mood.Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []mood.Entry
	for rows.Next() {
		var e mood.Entry
		if err := rows.Scan(&e.ID, &e.Mood, &e.Energy, &e.Anxiety, &e.SleepHours, &e.Notes, &e.Insight, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
