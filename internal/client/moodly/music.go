package moodly

import (
	"context"
	"net/http"

	"github.com/garrettladley/moodly/internal/music"
)

type musicService struct {
	client *Client
}

func (s *musicService) Recommendations(ctx context.Context, req music.Request) (*music.Recommendations, error) {
	const route = "/api/music/recommendations"

	var resp struct {
		Recommendations music.Recommendations `json:"recommendations"`
	}
	if err := s.client.do(ctx, http.MethodPost, route, nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Recommendations, nil
}
