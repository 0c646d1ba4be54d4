package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/garrettladley/moodly/internal/version"
	"github.com/garrettladley/moodly/internal/xhttp"
	"github.com/garrettladley/moodly/internal/xslog"
	"golang.org/x/sync/errgroup"
)

const healthTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type Health struct {
	deps      map[string]Pinger
	aiEnabled bool
}

// NewHealth reports unhealthy when any named dependency fails to ping.
func NewHealth(deps map[string]Pinger, aiEnabled bool) *Health {
	return &Health{deps: deps, aiEnabled: aiEnabled}
}

type healthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	AIEnabled bool              `json:"ai_enabled"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HandleHealth handles GET /api/health requests.
func (h *Health) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	names := make([]string, 0, len(h.deps))
	for name := range h.deps {
		names = append(names, name)
	}
	errs := make([]error, len(names))

	var g errgroup.Group
	for i, name := range names {
		g.Go(func() error {
			errs[i] = h.deps[name].Ping(ctx)
			return nil
		})
	}
	_ = g.Wait()

	resp := healthResponse{
		Status:    "healthy",
		Version:   version.Get(),
		AIEnabled: h.aiEnabled,
		Checks:    make(map[string]string, len(names)),
	}
	status := http.StatusOK
	for i, name := range names {
		if errs[i] != nil {
			xslog.FromContext(ctx).WarnContext(ctx, "health check failed", xslog.Source(name), xslog.Error(errs[i]))
			resp.Checks[name] = "unavailable"
			resp.Status = "unhealthy"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	xhttp.WriteJSON(w, status, resp)
}
