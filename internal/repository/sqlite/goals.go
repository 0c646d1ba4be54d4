package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/garrettladley/moodly/internal/repository"
)

type goalRepo struct {
	db *sql.DB
}

const goalColumns = "id, user_id, title, description, category, priority, target_date, progress, completed, created_at, updated_at"

func (r *goalRepo) Create(ctx context.Context, g *repository.Goal) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO goals (user_id, title, description, category, priority, target_date, progress, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.UserID, g.Title, g.Description, g.Category, g.Priority, nullTime(g.TargetDate),
		g.Progress, g.Completed, g.CreatedAt.UTC(), g.UpdatedAt.UTC(),
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = id
	return nil
}

func (r *goalRepo) List(ctx context.Context, userID int64) ([]repository.Goal, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+goalColumns+" FROM goals WHERE user_id = ? ORDER BY completed ASC, created_at DESC, id DESC",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var goals []repository.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *g)
	}
	return goals, rows.Err()
}

func (r *goalRepo) Get(ctx context.Context, userID int64, id int64) (*repository.Goal, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+goalColumns+" FROM goals WHERE id = ? AND user_id = ?", id, userID)
	g, err := scanGoal(row)
	if err != nil {
		return nil, notFound(err)
	}
	return g, nil
}

func (r *goalRepo) SetProgress(ctx context.Context, userID int64, id int64, progress int, completed bool, at time.Time) (*repository.Goal, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE goals SET progress = ?, completed = ?, updated_at = ? WHERE id = ? AND user_id = ?",
		progress, completed, at.UTC(), id, userID,
	)
	if err != nil {
		return nil, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, repository.ErrNotFound
	}
	return r.Get(ctx, userID, id)
}

func (r *goalRepo) Counts(ctx context.Context, userID int64) (repository.GoalCounts, error) {
	var c repository.GoalCounts
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(completed), 0) FROM goals WHERE user_id = ?",
		userID,
	).Scan(&c.Total, &c.Completed)
	return c, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGoal(s scanner) (*repository.Goal, error) {
	var (
		g          repository.Goal
		targetDate sql.NullTime
	)
	err := s.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.Category, &g.Priority,
		&targetDate, &g.Progress, &g.Completed, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if targetDate.Valid {
		t := targetDate.Time
		g.TargetDate = &t
	}
	return &g, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
