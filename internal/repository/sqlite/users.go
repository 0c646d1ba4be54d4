package sqlite

import (
	"context"
	"database/sql"

	"github.com/garrettladley/moodly/internal/repository"
)

type userRepo struct {
	db *sql.DB
}

const userColumns = "id, username, email, password_hash, created_at"

func (r *userRepo) Create(ctx context.Context, u *repository.User) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, created_at) VALUES (?, ?, ?, ?)",
		u.Username, u.Email, u.PasswordHash, u.CreatedAt.UTC(),
	)
	if err != nil {
		return asDuplicate(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

func (r *userRepo) Get(ctx context.Context, id int64) (*repository.User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return scanUser(row)
}

func (r *userRepo) GetByLogin(ctx context.Context, login string) (*repository.User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = ? OR email = ? ORDER BY id LIMIT 1",
		login, login,
	)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*repository.User, error) {
	var u repository.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}
