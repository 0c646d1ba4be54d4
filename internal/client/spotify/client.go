package spotify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/garrettladley/moodly/internal/xhttp"
	go_json "github.com/goccy/go-json"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	DefaultBaseURL  = "https://api.spotify.com/v1"
	DefaultTokenURL = "https://accounts.spotify.com/api/token"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type clientConfig struct {
	baseURL  string
	tokenURL string
	timeout  time.Duration
}

type Option func(*clientConfig)

func WithBaseURL(u string) Option {
	return func(cfg *clientConfig) { cfg.baseURL = u }
}

func WithTokenURL(u string) Option {
	return func(cfg *clientConfig) { cfg.tokenURL = u }
}

func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) { cfg.timeout = d }
}

// New returns a client authenticated with the client credentials grant.
// Tokens are fetched lazily and cached until they expire.
func New(clientID string, clientSecret string, opts ...Option) *Client {
	cfg := &clientConfig{
		baseURL:  DefaultBaseURL,
		tokenURL: DefaultTokenURL,
		timeout:  10 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	creds := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     cfg.tokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	base := xhttp.NewHTTPClient(xhttp.WithTimeout(cfg.timeout))
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, base)

	transport := &spotifyTransport{
		base:        xhttp.NewTransport(),
		tokenSource: creds.TokenSource(tokenCtx),
	}

	return &Client{
		baseURL:    cfg.baseURL,
		httpClient: &http.Client{Transport: transport, Timeout: cfg.timeout},
	}
}

func (c *Client) do(ctx context.Context, method string, path string, query url.Values, result any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return parseAPIError(resp)
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}
		if err := go_json.NewDecoder(bytes.NewReader(body)).Decode(result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

type spotifyTransport struct {
	base        http.RoundTripper
	tokenSource oauth2.TokenSource
}

var _ http.RoundTripper = (*spotifyTransport)(nil)

func (t *spotifyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.tokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("getting token: %w", err)
	}

	req = req.Clone(req.Context())
	token.SetAuthHeader(req)
	req.Header.Set("Accept", "application/json")

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("round trip: %w", err)
	}
	return resp, nil
}
