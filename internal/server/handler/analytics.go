package handler

import (
	"net/http"

	"github.com/garrettladley/moodly/internal/service/analytics"
	"github.com/garrettladley/moodly/internal/xerrors"
	"github.com/garrettladley/moodly/internal/xhttp"
)

type Analytics struct {
	service analytics.Service
}

func NewAnalytics(service analytics.Service) *Analytics {
	return &Analytics{service: service}
}

// HandleReport handles GET /api/analytics requests.
// Query params: days (default 30, max 365)
func (h *Analytics) HandleReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(ctx, w)
	if !ok {
		return
	}

	days, ok := queryInt(r, "days")
	if !ok {
		xerrors.WriteError(ctx, w, xerrors.BadRequest(xerrors.WithMessage("invalid days parameter (expected non-negative integer)")))
		return
	}

	report, err := h.service.Report(ctx, userID, days)
	if err != nil {
		xerrors.WriteError(ctx, w, xerrors.Internal(xerrors.WithMessage("failed to build analytics"), xerrors.WithCause(err)))
		return
	}

	xhttp.WriteOK(w, report)
}
