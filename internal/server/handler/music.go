package handler

import (
	"context"
	"net/http"

	"github.com/garrettladley/moodly/internal/music"
	"github.com/garrettladley/moodly/internal/xerrors"
	"github.com/garrettladley/moodly/internal/xhttp"
)

type Recommender interface {
	Recommend(ctx context.Context, req music.Request) (music.Recommendations, error)
}

type Music struct {
	recommender Recommender
}

func NewMusic(recommender Recommender) *Music {
	return &Music{recommender: recommender}
}

type recommendationsResponse struct {
	Recommendations music.Recommendations `json:"recommendations"`
}

// HandleRecommendations handles POST /api/music/recommendations requests.
func (h *Music) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := decode[music.Request](w, r, nil)
	if !ok {
		return
	}

	recs, err := h.recommender.Recommend(ctx, req)
	if err != nil {
		xerrors.WriteError(ctx, w, xerrors.Internal(xerrors.WithMessage("failed to build recommendations"), xerrors.WithCause(err)))
		return
	}

	xhttp.WriteOK(w, recommendationsResponse{Recommendations: recs})
}
