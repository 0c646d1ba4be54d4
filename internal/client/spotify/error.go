package spotify

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	go_json "github.com/goccy/go-json"
)

type APIError struct {
	StatusCode int
	Message    string
	// RetryAfter is set on 429 responses.
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	return fmt.Sprintf("spotify api: %d %s", e.StatusCode, e.Message)
}

func parseAPIError(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    resp.Status,
		RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiErr
	}

	var errResp struct {
		Error struct {
			Status  int    `json:"status"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := go_json.Unmarshal(body, &errResp); err != nil {
		if len(body) > 0 {
			apiErr.Message = string(body)
		}
		return apiErr
	}

	if errResp.Error.Message != "" {
		apiErr.Message = errResp.Error.Message
	}
	return apiErr
}

func parseRetryAfter(s string) time.Duration {
	if s == "" {
		return 0
	}
	secs, err := strconv.Atoi(s)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
