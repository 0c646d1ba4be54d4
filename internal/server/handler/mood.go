package handler

import (
	"net/http"

	"github.com/garrettladley/moodly/internal/mood"
	moodsvc "github.com/garrettladley/moodly/internal/service/mood"
	"github.com/garrettladley/moodly/internal/xerrors"
	"github.com/garrettladley/moodly/internal/xhttp"
)

type Moods struct {
	tracker moodsvc.Service
}

func NewMoods(tracker moodsvc.Service) *Moods {
	return &Moods{tracker: tracker}
}

type moodCreatedResponse struct {
	Message string     `json:"message"`
	Entry   mood.Entry `json:"entry"`
}

type moodListResponse struct {
	Moods []mood.Entry `json:"moods"`
}

type insightResponse struct {
	Insight string `json:"insight"`
}

// HandleCreate handles POST /api/moods requests.
func (h *Moods) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(ctx, w)
	if !ok {
		return
	}

	scores, ok := decode[mood.Scores](w, r, nil)
	if !ok {
		return
	}

	entry, err := h.tracker.Log(ctx, userID, scores)
	if err != nil {
		xerrors.WriteError(ctx, w, xerrors.Internal(xerrors.WithMessage("failed to save mood entry"), xerrors.WithCause(err)))
		return
	}

	xhttp.WriteCreated(w, moodCreatedResponse{Message: "mood entry created successfully", Entry: entry})
}

// HandleList handles GET /api/moods requests.
// Query params: limit (default 50, max 200)
func (h *Moods) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(ctx, w)
	if !ok {
		return
	}

	limit, ok := queryInt(r, "limit")
	if !ok {
		xerrors.WriteError(ctx, w, xerrors.BadRequest(xerrors.WithMessage("invalid limit parameter (expected non-negative integer)")))
		return
	}

	entries, err := h.tracker.List(ctx, userID, limit)
	if err != nil {
		xerrors.WriteError(ctx, w, xerrors.Internal(xerrors.WithMessage("failed to fetch mood entries"), xerrors.WithCause(err)))
		return
	}

	xhttp.WriteOK(w, moodListResponse{Moods: entries})
}

// HandleStats handles GET /api/moods/stats requests.
func (h *Moods) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(ctx, w)
	if !ok {
		return
	}

	stats, err := h.tracker.Stats(ctx, userID)
	if err != nil {
		xerrors.WriteError(ctx, w, xerrors.Internal(xerrors.WithMessage("failed to compute mood stats"), xerrors.WithCause(err)))
		return
	}

	xhttp.WriteOK(w, stats)
}

// HandleInsight handles POST /api/insights requests. Nothing is stored.
func (h *Moods) HandleInsight(w http.ResponseWriter, r *http.Request) {
	scores, ok := decode[mood.Scores](w, r, nil)
	if !ok {
		return
	}

	xhttp.WriteOK(w, insightResponse{Insight: h.tracker.Insight(r.Context(), scores)})
}
