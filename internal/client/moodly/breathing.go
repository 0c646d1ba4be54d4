package moodly

import (
	"context"
	"net/http"
	"net/url"

	"github.com/garrettladley/moodly/internal/breathing"
)

type breathingService struct {
	client *Client
}

func (s *breathingService) Exercises(ctx context.Context) ([]breathing.Exercise, error) {
	const route = "/api/breathing/exercises"

	var resp struct {
		Exercises []breathing.Exercise `json:"exercises"`
	}
	if err := s.client.do(ctx, http.MethodGet, route, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Exercises, nil
}

func (s *breathingService) ForMood(ctx context.Context, mood string) (*breathing.Exercise, error) {
	route := "/api/breathing/exercises/" + url.PathEscape(mood)

	var resp struct {
		Exercise breathing.Exercise `json:"exercise"`
	}
	if err := s.client.do(ctx, http.MethodGet, route, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Exercise, nil
}
