package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/garrettladley/moodly/internal/breathing"
	"github.com/garrettladley/moodly/internal/xcontext"
	"github.com/garrettladley/moodly/internal/xerrors"
	"github.com/garrettladley/moodly/internal/xhttp"
	"github.com/garrettladley/moodly/internal/xslog"
)

const streamBuffer = 32

type Breathing struct {
	catalog      *breathing.Catalog
	tickInterval time.Duration
}

// NewBreathing serves the catalog and runs streamed sessions at tickInterval
// (breathing.DefaultTickInterval when zero).
func NewBreathing(catalog *breathing.Catalog, tickInterval time.Duration) *Breathing {
	if tickInterval <= 0 {
		tickInterval = breathing.DefaultTickInterval
	}
	return &Breathing{catalog: catalog, tickInterval: tickInterval}
}

type exercisesResponse struct {
	Exercises []breathing.Exercise `json:"exercises"`
}

type exerciseResponse struct {
	Exercise breathing.Exercise `json:"exercise"`
	Pattern  string             `json:"pattern"`
}

// HandleExercises handles GET /api/breathing/exercises requests.
func (h *Breathing) HandleExercises(w http.ResponseWriter, _ *http.Request) {
	xhttp.WriteOK(w, exercisesResponse{Exercises: h.catalog.All()})
}

// HandleExercise handles GET /api/breathing/exercises/{mood} requests.
// Unknown moods get the default exercise.
func (h *Breathing) HandleExercise(w http.ResponseWriter, r *http.Request) {
	ex := h.catalog.ForMood(r.PathValue("mood"))
	xhttp.WriteOK(w, exerciseResponse{Exercise: ex, Pattern: ex.Pattern()})
}

// HandleStream handles GET /api/breathing/stream requests.
// Query params: mood (optional, selects the exercise)
//
// Each runner event is written as an SSE event named after its type. The
// stream ends after "completed", on client disconnect, or on server shutdown.
func (h *Breathing) HandleStream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ex := h.catalog.ForMood(r.URL.Query().Get("mood"))
	logger := xslog.FromContext(ctx).With(xslog.Exercise(ex.Key))

	runner := breathing.NewRunner(breathing.WithTickInterval(h.tickInterval))
	defer runner.Close()
	events := runner.Subscribe(streamBuffer)

	if err := runner.Start(ctx, ex); err != nil {
		xerrors.WriteError(ctx, w, xerrors.Internal(xerrors.WithMessage("failed to start exercise"), xerrors.WithCause(err)))
		return
	}

	xhttp.SetHeaderContentTypeEventStream(w)
	w.WriteHeader(http.StatusOK)
	logger.InfoContext(ctx, "breathing stream started")

	for {
		select {
		case <-ctx.Done():
			if xcontext.IsShutdownInProgress(ctx) {
				_ = xhttp.WriteSSEEvent(w, "shutdown", map[string]string{"reason": "server-restart"})
				logger.InfoContext(ctx, "breathing stream closed for shutdown", timerAttr(runner.State()))
				return
			}
			logger.InfoContext(ctx, "breathing stream closed by client", timerAttr(runner.State()))
			return

		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := xhttp.WriteSSEEvent(w, string(ev.Type), ev); err != nil {
				logger.WarnContext(ctx, "failed to write breathing event", xslog.Error(err))
				return
			}
			if ev.Type == breathing.EventCompleted {
				logger.InfoContext(ctx, "breathing stream completed", timerAttr(ev.State))
				return
			}
		}
	}
}

func timerAttr(st breathing.State) slog.Attr {
	return xslog.TimerGroup(st.Phase.String(), st.Cycle, st.Elapsed, st.Progress)
}
