package middleware

import (
	"errors"
	"net/http"

	"github.com/garrettladley/moodly/internal/service/session"
	"github.com/garrettladley/moodly/internal/xcontext"
	"github.com/garrettladley/moodly/internal/xerrors"
	"github.com/garrettladley/moodly/internal/xhttp"
	"github.com/garrettladley/moodly/internal/xslog"
)

// RequireSession resolves the bearer token or session cookie and stores the
// user id and raw token in the request context.
func RequireSession(sessions session.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token := xhttp.GetSessionToken(r)
			if token == "" {
				xerrors.WriteError(ctx, w, xerrors.Unauthorized(xerrors.WithMessage("missing session token")))
				return
			}

			userID, err := sessions.Resolve(ctx, token)
			if err != nil {
				if errors.Is(err, session.ErrInvalidSession) {
					xerrors.WriteError(ctx, w, xerrors.Unauthorized(xerrors.WithMessage("invalid or expired session")))
					return
				}
				xerrors.WriteError(ctx, w, xerrors.Internal(xerrors.WithMessage("session lookup failed"), xerrors.WithCause(err)))
				return
			}

			ctx = xcontext.SetUserID(ctx, userID)
			ctx = xcontext.SetSessionToken(ctx, token)
			ctx = xslog.WithAttrs(ctx, xslog.UserID(userID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
