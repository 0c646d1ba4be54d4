package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/garrettladley/moodly/internal/validator"
	"github.com/garrettladley/moodly/internal/xcontext"
	"github.com/garrettladley/moodly/internal/xerrors"
	"github.com/garrettladley/moodly/internal/xhttp"
)

type messageResponse struct {
	Message string `json:"message"`
}

// decode reads a JSON body into v and validates it, writing the error response on failure.
func decode[T validator.Validator](w http.ResponseWriter, r *http.Request, normalize func(T) T) (T, bool) {
	var v T
	if err := xhttp.DecodeJSON(w, r, &v); err != nil {
		xerrors.WriteError(r.Context(), w, xerrors.BadRequest(xerrors.WithMessage("invalid JSON body"), xerrors.WithCause(err)))
		return v, false
	}
	if normalize != nil {
		v = normalize(v)
	}
	if verr := validator.Validate(v); verr != nil {
		xerrors.WriteError(r.Context(), w, verr)
		return v, false
	}
	return v, true
}

// requireUser returns the session user. RequireSession guarantees it on protected routes.
func requireUser(ctx context.Context, w http.ResponseWriter) (int64, bool) {
	userID, ok := xcontext.GetUserID(ctx)
	if !ok {
		xerrors.WriteError(ctx, w, xerrors.Unauthorized(xerrors.WithMessage("authentication required")))
		return 0, false
	}
	return userID, true
}

// queryInt parses an optional non-negative integer query parameter.
func queryInt(r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
