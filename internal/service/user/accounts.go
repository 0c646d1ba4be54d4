package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/garrettladley/moodly/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type Accounts struct {
	users repository.UserRepository
	cost  int
	now   func() time.Time
	// dummyHash is compared against when the login is unknown so both paths cost a bcrypt run.
	dummyHash []byte
}

var _ Service = (*Accounts)(nil)

type Option func(*Accounts)

// WithCost sets the bcrypt cost. Tests use bcrypt.MinCost.
func WithCost(cost int) Option {
	return func(a *Accounts) { a.cost = cost }
}

func NewAccounts(users repository.UserRepository, opts ...Option) *Accounts {
	a := &Accounts{
		users: users,
		cost:  bcrypt.DefaultCost,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("moodly-dummy-password"), a.cost)
	return a
}

func (a *Accounts) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), a.cost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &repository.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    a.now().UTC(),
	}
	if err := a.users.Create(ctx, u); err != nil {
		var dup *repository.DuplicateError
		if errors.As(err, &dup) {
			if dup.Field == "email" {
				return nil, ErrEmailTaken
			}
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return toUser(u), nil
}

func (a *Accounts) Authenticate(ctx context.Context, login string, password string) (*User, error) {
	login = strings.TrimSpace(login)
	if strings.Contains(login, "@") {
		login = strings.ToLower(login)
	}

	u, err := a.users.GetByLogin(ctx, login)
	if errors.Is(err, repository.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(a.dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return toUser(u), nil
}

func (a *Accounts) Get(ctx context.Context, id int64) (*User, error) {
	u, err := a.users.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return toUser(u), nil
}

func toUser(u *repository.User) *User {
	return &User{ID: u.ID, Username: u.Username, Email: u.Email}
}
