// Package moodly is the HTTP client for the moodly API.
package moodly

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	go_json "github.com/goccy/go-json"
	"golang.org/x/oauth2"

	"github.com/garrettladley/moodly/internal/xhttp"
	"github.com/garrettladley/moodly/internal/xslog"
)

const defaultTimeout = 15 * time.Second

type Client struct {
	Auth      AuthService
	Moods     MoodService
	Music     MusicService
	Breathing BreathingService

	baseURL    string
	httpClient *http.Client

	// streamClient has no overall timeout; streams are bounded by their context
	streamClient *http.Client
	logger       *slog.Logger
}

func New(baseURL string, opts ...Option) *Client {
	cfg := &clientConfig{
		logger:  slog.Default(),
		timeout: defaultTimeout,
		base:    xhttp.NewTransport(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	transport := &bearerTransport{base: cfg.base, tokenSource: cfg.tokenSource}

	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Transport: transport, Timeout: cfg.timeout},
		streamClient: &http.Client{Transport: transport},
		logger:       cfg.logger,
	}

	c.Auth = &authService{client: c}
	c.Moods = &moodService{client: c}
	c.Music = &musicService{client: c}
	c.Breathing = &breathingService{client: c}

	return c
}

type clientConfig struct {
	tokenSource oauth2.TokenSource
	logger      *slog.Logger
	timeout     time.Duration
	base        http.RoundTripper
}

type Option func(*clientConfig)

// WithTokenSource authenticates every request with the source's bearer token.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(cfg *clientConfig) { cfg.tokenSource = ts }
}

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *clientConfig) { cfg.logger = logger }
}

func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) { cfg.timeout = d }
}

func WithTransport(rt http.RoundTripper) Option {
	return func(cfg *clientConfig) { cfg.base = rt }
}

func (c *Client) do(ctx context.Context, method string, path string, query url.Values, body any, result any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		buf, err := go_json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set(xhttp.ContentType, "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		apiErr := parseAPIError(resp)
		c.logger.DebugContext(ctx, "api request failed",
			slog.String("method", method),
			slog.String("path", path),
			xslog.HTTPStatus(resp.StatusCode),
		)
		return apiErr
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}
		if err := go_json.Unmarshal(raw, result); err != nil {
			return fmt.Errorf("decoding response: %w\nbody: %s", err, string(raw))
		}
	}

	return nil
}

type bearerTransport struct {
	base        http.RoundTripper
	tokenSource oauth2.TokenSource
}

var _ http.RoundTripper = (*bearerTransport)(nil)

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.tokenSource != nil {
		token, err := t.tokenSource.Token()
		if err != nil {
			return nil, fmt.Errorf("getting token: %w", err)
		}
		req = req.Clone(req.Context())
		xhttp.SetRequestHeaderBearerToken(req, token.AccessToken)
	}
	return t.base.RoundTrip(req)
}
