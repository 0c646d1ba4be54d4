package handler

import (
	"net/http"

	"github.com/garrettladley/moodly/internal/repository"
	"github.com/garrettladley/moodly/internal/service/journal"
	"github.com/garrettladley/moodly/internal/xerrors"
	"github.com/garrettladley/moodly/internal/xhttp"
)

type Journal struct {
	service journal.Service
}

func NewJournal(service journal.Service) *Journal {
	return &Journal{service: service}
}

type journalCreatedResponse struct {
	Message string                   `json:"message"`
	Entry   *repository.JournalEntry `json:"entry"`
}

type journalListResponse struct {
	Entries []repository.JournalEntry `json:"entries"`
}

type templatesResponse struct {
	Templates []journal.Template `json:"templates"`
}

// HandleCreate handles POST /api/journal requests.
func (h *Journal) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(ctx, w)
	if !ok {
		return
	}

	req, ok := decode[journal.CreateRequest](w, r, nil)
	if !ok {
		return
	}

	entry, err := h.service.Create(ctx, userID, req)
	if err != nil {
		xerrors.WriteError(ctx, w, xerrors.Internal(xerrors.WithMessage("failed to save journal entry"), xerrors.WithCause(err)))
		return
	}

	xhttp.WriteCreated(w, journalCreatedResponse{Message: "journal entry created successfully", Entry: entry})
}

// HandleList handles GET /api/journal requests.
// Query params: limit (default 50, max 200)
func (h *Journal) HandleList(w http.ResponseWriter, r *http.Request) {
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

	entries, err := h.service.List(ctx, userID, limit)
	if err != nil {
		xerrors.WriteError(ctx, w, xerrors.Internal(xerrors.WithMessage("failed to fetch journal entries"), xerrors.WithCause(err)))
		return
	}

	xhttp.WriteOK(w, journalListResponse{Entries: entries})
}

// HandleTemplates handles GET /api/journal/templates requests.
func (h *Journal) HandleTemplates(w http.ResponseWriter, _ *http.Request) {
	xhttp.WriteOK(w, templatesResponse{Templates: h.service.Templates()})
}
