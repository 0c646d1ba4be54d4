package postgres

import (
	"context"
	"time"

	"github.com/garrettladley/moodly/internal/repository"
	"github.com/jackc/pgx/v5"
)

type goalRepo struct {
	db DBTX
}

const goalColumns = "id, user_id, title, description, category, priority, target_date, progress, completed, created_at, updated_at"

func (r *goalRepo) Create(ctx context.Context, g *repository.Goal) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO goals (user_id, title, description, category, priority, target_date, progress, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		g.UserID, g.Title, g.Description, g.Category, g.Priority, g.TargetDate,
		g.Progress, g.Completed, g.CreatedAt, g.UpdatedAt,
	).Scan(&g.ID)
}

func (r *goalRepo) List(ctx context.Context, userID int64) ([]repository.Goal, error) {
	rows, err := r.db.Query(ctx,
		"SELECT "+goalColumns+" FROM goals WHERE user_id = $1 ORDER BY completed ASC, created_at DESC, id DESC",
		userID,
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (repository.Goal, error) {
		g, err := scanGoal(row)
		if err != nil {
			return repository.Goal{}, err
		}
		return *g, nil
	})
}

func (r *goalRepo) Get(ctx context.Context, userID int64, id int64) (*repository.Goal, error) {
	row := r.db.QueryRow(ctx, "SELECT "+goalColumns+" FROM goals WHERE id = $1 AND user_id = $2", id, userID)
	g, err := scanGoal(row)
	if err != nil {
		return nil, notFound(err)
	}
	return g, nil
}

func (r *goalRepo) SetProgress(ctx context.Context, userID int64, id int64, progress int, completed bool, at time.Time) (*repository.Goal, error) {
	row := r.db.QueryRow(ctx,
		"UPDATE goals SET progress = $1, completed = $2, updated_at = $3 WHERE id = $4 AND user_id = $5 RETURNING "+goalColumns,
		progress, completed, at, id, userID,
	)
	g, err := scanGoal(row)
	if err != nil {
		return nil, notFound(err)
	}
	return g, nil
}

func (r *goalRepo) Counts(ctx context.Context, userID int64) (repository.GoalCounts, error) {
	var c repository.GoalCounts
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*), COUNT(*) FILTER (WHERE completed) FROM goals WHERE user_id = $1",
		userID,
	).Scan(&c.Total, &c.Completed)
	return c, err
}

func scanGoal(row pgx.Row) (*repository.Goal, error) {
	var g repository.Goal
	err := row.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.Category, &g.Priority,
		&g.TargetDate, &g.Progress, &g.Completed, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}
