package handler

import (
	"errors"
	"net/http"

	"github.com/garrettladley/moodly/internal/repository"
	"github.com/garrettladley/moodly/internal/service/goal"
	"github.com/garrettladley/moodly/internal/xerrors"
	"github.com/garrettladley/moodly/internal/xhttp"
)

type Goals struct {
	service goal.Service
}

func NewGoals(service goal.Service) *Goals {
	return &Goals{service: service}
}

type goalResponse struct {
	Message string           `json:"message,omitempty"`
	Goal    *repository.Goal `json:"goal"`
}

type goalListResponse struct {
	Goals []repository.Goal `json:"goals"`
}

// HandleCreate handles POST /api/goals requests.
func (h *Goals) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(ctx, w)
	if !ok {
		return
	}

	req, ok := decode(w, r, goal.CreateRequest.Normalize)
	if !ok {
		return
	}

	g, err := h.service.Create(ctx, userID, req)
	if err != nil {
		xerrors.WriteError(ctx, w, xerrors.Internal(xerrors.WithMessage("failed to save goal"), xerrors.WithCause(err)))
		return
	}

	xhttp.WriteCreated(w, goalResponse{Message: "goal created successfully", Goal: g})
}

// HandleList handles GET /api/goals requests.
func (h *Goals) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(ctx, w)
	if !ok {
		return
	}

	goals, err := h.service.List(ctx, userID)
	if err != nil {
		xerrors.WriteError(ctx, w, xerrors.Internal(xerrors.WithMessage("failed to fetch goals"), xerrors.WithCause(err)))
		return
	}

	xhttp.WriteOK(w, goalListResponse{Goals: goals})
}

// HandleProgress handles PATCH /api/goals/{id}/progress requests.
func (h *Goals) HandleProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(ctx, w)
	if !ok {
		return
	}

	goalID, ok := pathID(r, "id")
	if !ok {
		xerrors.WriteError(ctx, w, xerrors.BadRequest(xerrors.WithMessage("invalid goal id")))
		return
	}

	req, ok := decode[goal.ProgressRequest](w, r, nil)
	if !ok {
		return
	}

	g, err := h.service.UpdateProgress(ctx, userID, goalID, *req.Progress)
	h.writeGoal(w, r, g, err)
}

// HandleComplete handles POST /api/goals/{id}/complete requests.
func (h *Goals) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(ctx, w)
	if !ok {
		return
	}

	goalID, ok := pathID(r, "id")
	if !ok {
		xerrors.WriteError(ctx, w, xerrors.BadRequest(xerrors.WithMessage("invalid goal id")))
		return
	}

	g, err := h.service.Complete(ctx, userID, goalID)
	h.writeGoal(w, r, g, err)
}

func (h *Goals) writeGoal(w http.ResponseWriter, r *http.Request, g *repository.Goal, err error) {
	ctx := r.Context()
	switch {
	case errors.Is(err, goal.ErrGoalNotFound):
		xerrors.WriteError(ctx, w, xerrors.NotFound(xerrors.WithMessage("goal not found")))
	case err != nil:
		xerrors.WriteError(ctx, w, xerrors.Internal(xerrors.WithMessage("failed to update goal"), xerrors.WithCause(err)))
	default:
		xhttp.WriteOK(w, goalResponse{Goal: g})
	}
}
