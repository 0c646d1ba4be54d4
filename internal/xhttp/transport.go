package xhttp

import (
	"fmt"
	"net/http"

	"github.com/garrettladley/moodly/internal/version"
)

type moodlyTransport struct {
	base http.RoundTripper
}

var _ http.RoundTripper = (*moodlyTransport)(nil)

func (t *moodlyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", "moodly/"+version.Get())
	req.Header.Set(version.Header, version.Get())
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform round trip: %w", err)
	}
	return resp, nil
}

// NewTransport returns an http.RoundTripper with standard moodly headers.
func NewTransport() http.RoundTripper {
	return &moodlyTransport{base: http.DefaultTransport}
}
