package postgres

import (
	"context"
	"time"

	"github.com/garrettladley/moodly/internal/mood"
	"github.com/garrettladley/moodly/internal/repository"
	"github.com/jackc/pgx/v5"
)

type moodRepo struct {
	db DBTX
}

const moodColumns = "id, mood_score, energy_level, anxiety_level, sleep_hours, notes, ai_insight, created_at"

func (r *moodRepo) Create(ctx context.Context, userID int64, e *mood.Entry) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO mood_entries (user_id, mood_score, energy_level, anxiety_level, sleep_hours, notes, ai_insight, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		userID, e.Mood, e.Energy, e.Anxiety, e.SleepHours, e.Notes, e.Insight, e.CreatedAt,
	).Scan(&e.ID)
}

func (r *moodRepo) List(ctx context.Context, userID int64, limit int) ([]mood.Entry, error) {
	return r.query(ctx,
		"SELECT "+moodColumns+" FROM mood_entries WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2",
		userID, repository.PageSize(limit),
	)
}

func (r *moodRepo) ListSince(ctx context.Context, userID int64, since time.Time) ([]mood.Entry, error) {
	return r.query(ctx,
		"SELECT "+moodColumns+" FROM mood_entries WHERE user_id = $1 AND created_at >= $2 ORDER BY created_at DESC, id DESC",
		userID, since,
	)
}

func (r *moodRepo) All(ctx context.Context, userID int64) ([]mood.Entry, error) {
	return r.query(ctx,
		"SELECT "+moodColumns+" FROM mood_entries WHERE user_id = $1 ORDER BY created_at DESC, id DESC",
		userID,
	)
}

func (r *moodRepo) query(ctx context.Context, query string, args ...any) ([]mood.Entry, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (mood.Entry, error) {
		var e mood.Entry
		err := row.Scan(&e.ID, &e.Mood, &e.Energy, &e.Anxiety, &e.SleepHours, &e.Notes, &e.Insight, &e.CreatedAt)
		return e, err
	})
}
