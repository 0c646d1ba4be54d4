package user

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/garrettladley/moodly/internal/validator"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

const (
	MinPasswordLength = 6
	// bcrypt only hashes the first 72 bytes and rejects anything longer.
	MaxPasswordBytes = 72
)

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize trims the username and trims and lower-cases the email.
func (r RegisterRequest) Normalize() RegisterRequest {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return r
}

var _ validator.Validator = RegisterRequest{}

func (r RegisterRequest) Validate() map[string]string {
	f := validator.Fields{}
	f.Required("username", r.Username)
	f.Required("email", r.Email)
	f.Required("password", r.Password)
	if r.Username != "" {
		f.Check(!strings.Contains(r.Username, "@"), "username", "username must not contain @")
	}
	if r.Email != "" {
		addr, err := mail.ParseAddress(r.Email)
		f.Check(err == nil && addr.Address == r.Email, "email", "email is invalid")
	}
	if r.Password != "" {
		f.Check(len(r.Password) >= MinPasswordLength, "password", "password must be at least 6 characters")
		f.Check(len(r.Password) <= MaxPasswordBytes, "password", "password must be at most 72 bytes")
	}
	return f.Map()
}

type LoginRequest struct {
	// Username accepts either the username or the email.
	Username string `json:"username"`
	Password string `json:"password"`
}

var _ validator.Validator = LoginRequest{}

func (r LoginRequest) Validate() map[string]string {
	f := validator.Fields{}
	f.Required("username", r.Username)
	f.Required("password", r.Password)
	return f.Map()
}

type Service interface {
	// Register creates an account. req must already be normalized and valid.
	// Returns ErrUsernameTaken or ErrEmailTaken on conflicts.
	Register(ctx context.Context, req RegisterRequest) (*User, error)

	// Authenticate checks a password against the account matching login
	// (username or email). Returns ErrInvalidCredentials on any mismatch.
	Authenticate(ctx context.Context, login string, password string) (*User, error)

	// Get returns ErrUserNotFound for unknown ids.
	Get(ctx context.Context, id int64) (*User, error)
}
