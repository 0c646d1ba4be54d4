package xerrors

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

func TestAs(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk full")
	wrapped := fmt.Errorf("saving entry: %w", Internal(WithCause(cause)))

	got := As(wrapped)
	if got == nil {
		t.Fatal("As() = nil, want *Error")
	}
	if got.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want %d", got.StatusCode, http.StatusInternalServerError)
	}
	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is(wrapped, cause) = false, want true")
	}
	if As(cause) != nil {
		t.Error("As(plain error) != nil")
	}
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		err            error
		wantStatus     int
		wantBody       errorResponse
		wantRetryAfter string
	}{
		{
			name:       "conflict with message",
			err:        Conflict(WithMessage("username already exists")),
			wantStatus: http.StatusConflict,
			wantBody:   errorResponse{Message: "username already exists"},
		},
		{
			name:       "validation fields",
			err:        Validation(map[string]string{"email": "invalid email format"}),
			wantStatus: http.StatusBadRequest,
			wantBody: errorResponse{
				Message: "validation failed",
				Fields:  map[string]string{"email": "invalid email format"},
			},
		},
		{
			name:       "plain error becomes internal",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   errorResponse{Message: "internal server error"},
		},
		{
			name:           "rate limited",
			err:            TooManyRequests(WithRetryAfter(2*time.Second), WithReason("ip_rate_limit")),
			wantStatus:     http.StatusTooManyRequests,
			wantBody:       errorResponse{Message: "too many requests"},
			wantRetryAfter: "2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			WriteError(t.Context(), rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Retry-After"); got != tt.wantRetryAfter {
				t.Errorf("Retry-After = %q, want %q", got, tt.wantRetryAfter)
			}

			var got errorResponse
			if err := go_json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if diff := cmp.Diff(tt.wantBody, got); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
