package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/garrettladley/moodly/internal/service/session"
	"github.com/garrettladley/moodly/internal/service/user"
	"github.com/garrettladley/moodly/internal/xcontext"
	"github.com/garrettladley/moodly/internal/xerrors"
	"github.com/garrettladley/moodly/internal/xhttp"
	"github.com/garrettladley/moodly/internal/xslog"
)

type Auth struct {
	users    user.Service
	sessions session.Service
	// secure marks the session cookie Secure, set outside development.
	secure bool
}

func NewAuth(users user.Service, sessions session.Service, secure bool) *Auth {
	return &Auth{users: users, sessions: sessions, secure: secure}
}

type registerResponse struct {
	Message string     `json:"message"`
	User    *user.User `json:"user"`
}

type loginResponse struct {
	Message   string     `json:"message"`
	User      *user.User `json:"user"`
	Token     string     `json:"token"`
	ExpiresAt string     `json:"expires_at"`
}

type meResponse struct {
	User *user.User `json:"user"`
}

// HandleRegister handles POST /api/auth/register requests.
func (h *Auth) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := decode(w, r, user.RegisterRequest.Normalize)
	if !ok {
		return
	}

	u, err := h.users.Register(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUsernameTaken), errors.Is(err, user.ErrEmailTaken):
			xerrors.WriteError(ctx, w, xerrors.Conflict(xerrors.WithMessage(err.Error())))
		default:
			xerrors.WriteError(ctx, w, xerrors.Internal(xerrors.WithMessage("failed to register user"), xerrors.WithCause(err)))
		}
		return
	}

	xslog.FromContext(ctx).InfoContext(ctx, "user registered", xslog.UserGroup(u.ID, u.Username))
	xhttp.WriteCreated(w, registerResponse{Message: "user registered successfully", User: u})
}

// HandleLogin handles POST /api/auth/login requests.
func (h *Auth) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := decode[user.LoginRequest](w, r, nil)
	if !ok {
		return
	}

	u, err := h.users.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			xerrors.WriteError(ctx, w, xerrors.Unauthorized(xerrors.WithMessage("invalid credentials")))
			return
		}
		xerrors.WriteError(ctx, w, xerrors.Internal(xerrors.WithMessage("login failed"), xerrors.WithCause(err)))
		return
	}

	issued, err := h.sessions.Create(ctx, u.ID)
	if err != nil {
		xerrors.WriteError(ctx, w, xerrors.Internal(xerrors.WithMessage("failed to create session"), xerrors.WithCause(err)))
		return
	}

	xhttp.SetSessionCookie(w, issued.Token, issued.ExpiresAt, h.secure)
	xslog.FromContext(ctx).InfoContext(ctx, "user logged in", xslog.UserGroup(u.ID, u.Username))
	xhttp.WriteOK(w, loginResponse{
		Message:   "login successful",
		User:      u,
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// HandleLogout handles POST /api/auth/logout requests. It succeeds without a session.
func (h *Auth) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.sessions.Revoke(ctx, xhttp.GetSessionToken(r)); err != nil {
		xerrors.WriteError(ctx, w, xerrors.Internal(xerrors.WithMessage("logout failed"), xerrors.WithCause(err)))
		return
	}

	xhttp.ClearSessionCookie(w, h.secure)
	xhttp.WriteNoContent(w)
}

// HandleMe handles GET /api/auth/me requests.
func (h *Auth) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := requireUser(ctx, w)
	if !ok {
		return
	}

	u, err := h.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// session outlived its account
			if token, ok := xcontext.GetSessionToken(ctx); ok {
				_ = h.sessions.Revoke(ctx, token)
			}
			xerrors.WriteError(ctx, w, xerrors.Unauthorized(xerrors.WithMessage("not authenticated")))
			return
		}
		xerrors.WriteError(ctx, w, xerrors.Internal(xerrors.WithMessage("failed to load user"), xerrors.WithCause(err)))
		return
	}

	xhttp.WriteOK(w, meResponse{User: u})
}
