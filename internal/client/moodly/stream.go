package moodly

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/moodly/internal/breathing"
	"github.com/garrettladley/moodly/internal/xhttp"
	"github.com/garrettladley/moodly/internal/xslog"
)

// ErrServerShutdown is returned by Stream when the server ends the stream
// because it is restarting.
var ErrServerShutdown = errors.New("server is shutting down")

// ErrStreamEnded is returned by Stream when the connection closes before the
// exercise completes.
var ErrStreamEnded = errors.New("breathing stream ended early")

type sseEvent struct {
	Type string
	Data []byte
}

// Stream runs the server-side exercise for mood and calls fn for every
// update. It returns nil once the completed event has been handled, or the
// first error from fn.
func (s *breathingService) Stream(ctx context.Context, mood string, fn func(breathing.Event) error) error {
	const route = "/api/breathing/stream"

	u := s.client.baseURL + route + "?" + url.Values{"mood": {mood}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set(xhttp.CacheControl, "no-cache")

	resp, err := s.client.streamClient.Do(req)
	if err != nil {
		return fmt.Errorf("connecting: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return parseAPIError(resp)
	}

	s.client.logger.InfoContext(ctx, "breathing stream connected", xslog.Exercise(mood))

	scanner := bufio.NewScanner(resp.Body)
	var current sseEvent

	for scanner.Scan() {
		line := scanner.Text()

		if line == "" {
			// a blank line terminates an event
			if current.Type != "" && len(current.Data) > 0 {
				done, err := s.handle(ctx, current, fn)
				if done || err != nil {
					return err
				}
			}
			current = sseEvent{}
			continue
		}

		if typ, found := strings.CutPrefix(line, "event:"); found {
			current.Type = strings.TrimSpace(typ)
		} else if data, found := strings.CutPrefix(line, "data:"); found {
			current.Data = []byte(strings.TrimSpace(data))
		}
	}

	if err := scanner.Err(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("reading stream: %w", err)
	}
	return ErrStreamEnded
}

// handle reports done once the stream has nothing more to deliver.
func (s *breathingService) handle(ctx context.Context, ev sseEvent, fn func(breathing.Event) error) (bool, error) {
	if ev.Type == "shutdown" {
		return true, ErrServerShutdown
	}

	var event breathing.Event
	if err := go_json.Unmarshal(ev.Data, &event); err != nil {
		s.client.logger.WarnContext(ctx, "failed to parse breathing event",
			xslog.Error(err),
			slog.String("type", ev.Type),
		)
		return false, nil
	}

	if err := fn(event); err != nil {
		return true, err
	}
	return event.Type == breathing.EventCompleted, nil
}
