package moodly

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/garrettladley/moodly/internal/mood"
)

type moodService struct {
	client *Client
}

func (s *moodService) Log(ctx context.Context, scores mood.Scores) (*mood.Entry, error) {
	const route = "/api/moods"

	var resp struct {
		Entry mood.Entry `json:"entry"`
	}
	if err := s.client.do(ctx, http.MethodPost, route, nil, scores, &resp); err != nil {
		return nil, err
	}
	return &resp.Entry, nil
}

func (s *moodService) List(ctx context.Context, limit int) ([]mood.Entry, error) {
	const route = "/api/moods"

	var query url.Values
	if limit > 0 {
		query = url.Values{"limit": {strconv.Itoa(limit)}}
	}

	var resp struct {
		Moods []mood.Entry `json:"moods"`
	}
	if err := s.client.do(ctx, http.MethodGet, route, query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Moods, nil
}

func (s *moodService) Stats(ctx context.Context) (*mood.Stats, error) {
	const route = "/api/moods/stats"

	var stats mood.Stats
	if err := s.client.do(ctx, http.MethodGet, route, nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
