package postgres

import (
	"context"

	"github.com/garrettladley/moodly/internal/repository"
)

type userRepo struct {
	db DBTX
}

const userColumns = "id, username, email, password_hash, created_at"

func (r *userRepo) Create(ctx context.Context, u *repository.User) error {
	err := r.db.QueryRow(ctx,
		"INSERT INTO users (username, email, password_hash, created_at) VALUES ($1, $2, $3, $4) RETURNING id",
		u.Username, u.Email, u.PasswordHash, u.CreatedAt,
	).Scan(&u.ID)
	return asDuplicate(err)
}

func (r *userRepo) Get(ctx context.Context, id int64) (*repository.User, error) {
	var u repository.User
	err := r.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *userRepo) GetByLogin(ctx context.Context, login string) (*repository.User, error) {
	var u repository.User
	err := r.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1 OR email = $1 ORDER BY id LIMIT 1", login).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}
