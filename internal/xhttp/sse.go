package xhttp

import (
	"fmt"
	"net/http"
	"time"

	go_json "github.com/goccy/go-json"
)

const sseWriteTimeout = 10 * time.Second

// WriteSSEEvent writes a single named server-sent event and flushes it.
func WriteSSEEvent(w http.ResponseWriter, event string, data any) error {
	payload, err := go_json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event, err)
	}

	rc := http.NewResponseController(w)
	_ = rc.SetWriteDeadline(time.Now().Add(sseWriteTimeout))

	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return fmt.Errorf("failed to write %s event: %w", event, err)
	}
	if err := rc.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s event: %w", event, err)
	}
	return nil
}
