package server_test

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/garrettladley/moodly/internal/breathing"
	"github.com/garrettladley/moodly/internal/db"
	"github.com/garrettladley/moodly/internal/insight"
	"github.com/garrettladley/moodly/internal/music"
	"github.com/garrettladley/moodly/internal/server"
	"github.com/garrettladley/moodly/internal/server/handler"
	"github.com/garrettladley/moodly/internal/service/analytics"
	"github.com/garrettladley/moodly/internal/service/goal"
	"github.com/garrettladley/moodly/internal/service/journal"
	moodsvc "github.com/garrettladley/moodly/internal/service/mood"
	"github.com/garrettladley/moodly/internal/service/session"
	"github.com/garrettladley/moodly/internal/service/user"
	"github.com/garrettladley/moodly/internal/storage"
	"github.com/garrettladley/moodly/internal/xcontext"
	"github.com/garrettladley/moodly/internal/xhttp"
	go_json "github.com/goccy/go-json"
	"go.uber.org/goleak"
	"golang.org/x/crypto/bcrypt"
)

type harness struct {
	t      *testing.T
	router http.Handler
}

func newHarness(t *testing.T, rateLimit float64, burst int) *harness {
	t.Helper()
	return newLoggedHarness(t, rateLimit, burst, slog.New(slog.DiscardHandler))
}

func newLoggedHarness(t *testing.T, rateLimit float64, burst int, logger *slog.Logger) *harness {
	t.Helper()

	store, err := db.Open(t.Context(), db.Config{Path: ":memory:"})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	backend := storage.NewMemoryBackend(rateLimit, burst)
	t.Cleanup(func() { _ = backend.Close() })

	catalog, err := breathing.DefaultCatalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	journalService, err := journal.New(store.Journal)
	if err != nil {
		t.Fatalf("journal: %v", err)
	}
	sessions := session.NewManager(backend, time.Hour)

	router := server.NewRouter(logger, server.Handlers{
		Health:    handler.NewHealth(map[string]handler.Pinger{"database": store, "storage": backend}, false),
		Auth:      handler.NewAuth(user.NewAccounts(store.Users, user.WithCost(bcrypt.MinCost)), sessions, false),
		Moods:     handler.NewMoods(moodsvc.NewTracker(store.Moods, insight.Rules{})),
		Journal:   handler.NewJournal(journalService),
		Goals:     handler.NewGoals(goal.NewTracker(store.Goals)),
		Analytics: handler.NewAnalytics(analytics.New(store.Repository)),
		Music:     handler.NewMusic(music.NewService(nil, music.DefaultCurated())),
		Breathing: handler.NewBreathing(catalog, 5*time.Millisecond),

		Sessions:       sessions,
		Limiter:        backend,
		AllowedOrigins: []string{"http://localhost:5173"},
	})
	return &harness{t: t, router: router}
}

func (h *harness) do(method, path, token string, body any) *httptest.ResponseRecorder {
	h.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := go_json.NewEncoder(&buf).Encode(body); err != nil {
			h.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequestWithContext(h.t.Context(), method, path, &buf)
	req.RemoteAddr = "203.0.113.7:4321"
	if token != "" {
		xhttp.SetRequestHeaderBearerToken(req, token)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := go_json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func (h *harness) signup(username string) string {
	h.t.Helper()

	rec := h.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username, "email": username + "@example.com", "password": "hunter22",
	})
	if rec.Code != http.StatusCreated {
		h.t.Fatalf("register status = %d, body %s", rec.Code, rec.Body)
	}

	rec = h.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username, "password": "hunter22",
	})
	if rec.Code != http.StatusOK {
		h.t.Fatalf("login status = %d, body %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Header().Get("Set-Cookie"), xhttp.SessionCookieName) {
		h.t.Errorf("login did not set %s cookie", xhttp.SessionCookieName)
	}
	return decodeBody[struct {
		Token string `json:"token"`
	}](h.t, rec).Token
}

func TestHealth(t *testing.T) {
	t.Parallel()

	h := newHarness(t, 100, 100)
	rec := h.do(http.MethodGet, "/api/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	got := decodeBody[map[string]any](t, rec)
	if got["status"] != "healthy" {
		t.Errorf("status field = %v, want healthy", got["status"])
	}
}

func TestRegisterErrors(t *testing.T) {
	t.Parallel()

	h := newHarness(t, 100, 100)
	h.signup("alice")

	tests := []struct {
		name       string
		body       map[string]string
		wantStatus int
	}{
		{
			name:       "missing fields",
			body:       map[string]string{"username": "bob"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "short password",
			body:       map[string]string{"username": "bob", "email": "bob@example.com", "password": "abc"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "password over 72 bytes",
			body:       map[string]string{"username": "bob", "email": "bob@example.com", "password": strings.Repeat("p", 80)},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "username containing @",
			body:       map[string]string{"username": "Bob@Home", "email": "bob@example.com", "password": "hunter22"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "username taken",
			body:       map[string]string{"username": "alice", "email": "x@example.com", "password": "hunter22"},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "email taken case insensitive",
			body:       map[string]string{"username": "carol", "email": "ALICE@example.com", "password": "hunter22"},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := h.do(http.MethodPost, "/api/auth/register", "", tt.body)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body)
			}
		})
	}
}

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()

	h := newHarness(t, 100, 100)

	if rec := h.do(http.MethodGet, "/api/auth/me", "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("me without token status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if rec := h.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "nobody", "password": "hunter22"}); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	token := h.signup("alice")
	rec := h.do(http.MethodGet, "/api/auth/me", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("me status = %d, body %s", rec.Code, rec.Body)
	}
	me := decodeBody[struct {
		User user.User `json:"user"`
	}](t, rec)
	if me.User.Username != "alice" {
		t.Errorf("me username = %q, want alice", me.User.Username)
	}

	if rec := h.do(http.MethodPost, "/api/auth/logout", token, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("logout status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if rec := h.do(http.MethodGet, "/api/auth/me", token, nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("me after logout status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestMoodFlow(t *testing.T) {
	t.Parallel()

	h := newHarness(t, 100, 100)
	token := h.signup("alice")

	bad := h.do(http.MethodPost, "/api/moods", token, map[string]any{"mood_score": 11, "energy_level": 5, "anxiety_level": 5})
	if bad.Code != http.StatusBadRequest {
		t.Fatalf("invalid mood status = %d, want %d", bad.Code, http.StatusBadRequest)
	}
	fields := decodeBody[struct {
		Fields map[string]string `json:"fields"`
	}](t, bad).Fields
	if fields["mood_score"] == "" {
		t.Errorf("fields = %v, want mood_score error", fields)
	}

	rec := h.do(http.MethodPost, "/api/moods", token, map[string]any{
		"mood_score": 9, "energy_level": 8, "anxiety_level": 2, "sleep_hours": 8, "notes": "grateful",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create mood status = %d, body %s", rec.Code, rec.Body)
	}
	created := decodeBody[struct {
		Entry struct {
			ID      int64  `json:"id"`
			Insight string `json:"ai_insight"`
		} `json:"entry"`
	}](t, rec).Entry
	if created.ID == 0 || created.Insight == "" {
		t.Errorf("created entry = %+v, want id and insight", created)
	}

	rec = h.do(http.MethodGet, "/api/moods?limit=10", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	if n := len(decodeBody[struct {
		Moods []any `json:"moods"`
	}](t, rec).Moods); n != 1 {
		t.Errorf("listed %d moods, want 1", n)
	}

	if rec := h.do(http.MethodGet, "/api/moods?limit=abc", token, nil); rec.Code != http.StatusBadRequest {
		t.Errorf("bad limit status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	rec = h.do(http.MethodGet, "/api/moods/stats", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats status = %d", rec.Code)
	}
	stats := decodeBody[map[string]any](t, rec)
	if stats["total_entries"] != float64(1) || stats["average_mood"] != float64(9) {
		t.Errorf("stats = %v", stats)
	}

	if rec := h.do(http.MethodGet, "/api/analytics?days=7", token, nil); rec.Code != http.StatusOK {
		t.Errorf("analytics status = %d, body %s", rec.Code, rec.Body)
	}
}

func TestGoalsAreScopedToOwner(t *testing.T) {
	t.Parallel()

	h := newHarness(t, 100, 100)
	alice := h.signup("alice")
	bob := h.signup("bob")

	rec := h.do(http.MethodPost, "/api/goals", alice, map[string]string{"title": "Sleep by 11"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create goal status = %d, body %s", rec.Code, rec.Body)
	}
	g := decodeBody[struct {
		Goal struct {
			ID       int64  `json:"id"`
			Priority string `json:"priority"`
			Category string `json:"category"`
		} `json:"goal"`
	}](t, rec).Goal
	if g.Priority != "medium" || g.Category != "personal" {
		t.Errorf("goal defaults = %+v", g)
	}

	path := "/api/goals/" + itoa(g.ID)
	if rec := h.do(http.MethodPost, path+"/complete", bob, nil); rec.Code != http.StatusNotFound {
		t.Errorf("other user complete status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if rec := h.do(http.MethodPatch, path+"/progress", alice, map[string]int{"progress": 120}); rec.Code != http.StatusBadRequest {
		t.Errorf("progress 120 status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	rec = h.do(http.MethodPatch, path+"/progress", alice, map[string]int{"progress": 100})
	if rec.Code != http.StatusOK {
		t.Fatalf("progress status = %d, body %s", rec.Code, rec.Body)
	}
	done := decodeBody[struct {
		Goal struct {
			Completed bool `json:"completed"`
		} `json:"goal"`
	}](t, rec).Goal
	if !done.Completed {
		t.Error("progress 100 did not complete the goal")
	}
}

func TestJournal(t *testing.T) {
	t.Parallel()

	h := newHarness(t, 100, 100)
	token := h.signup("alice")

	if rec := h.do(http.MethodPost, "/api/journal", token, map[string]string{"title": "only title"}); rec.Code != http.StatusBadRequest {
		t.Errorf("missing content status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	rec := h.do(http.MethodPost, "/api/journal", token, map[string]any{"title": "t", "content": "c", "tags": []string{"calm"}})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body)
	}
	rec = h.do(http.MethodGet, "/api/journal/templates", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("templates status = %d", rec.Code)
	}
	if n := len(decodeBody[struct {
		Templates []any `json:"templates"`
	}](t, rec).Templates); n != 5 {
		t.Errorf("got %d templates, want 5", n)
	}
}

func TestMusicFallbackOnly(t *testing.T) {
	t.Parallel()

	h := newHarness(t, 100, 100)
	rec := h.do(http.MethodPost, "/api/music/recommendations", "", map[string]int{
		"mood_score": 5, "energy_level": 5, "anxiety_level": 8,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	got := decodeBody[struct {
		Recommendations music.Recommendations `json:"recommendations"`
	}](t, rec).Recommendations
	if got.Hybrid || got.Fallback != nil {
		t.Errorf("hybrid = %t, fallback = %v, want curated only", got.Hybrid, got.Fallback)
	}
	if got.Primary.MoodCategory != music.CategoryCalm || got.Primary.Source != music.SourceFallback {
		t.Errorf("primary = %s/%s, want calm/fallback", got.Primary.MoodCategory, got.Primary.Source)
	}
}

func TestAuthRoutesAreRateLimited(t *testing.T) {
	t.Parallel()

	h := newHarness(t, 0.001, 2)
	body := map[string]string{"username": "x", "password": "y"}
	for range 2 {
		if rec := h.do(http.MethodPost, "/api/auth/login", "", body); rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	}

	rec := h.do(http.MethodPost, "/api/auth/login", "", body)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}
}

func TestBreathingStream(t *testing.T) {
	t.Parallel()

	h := newHarness(t, 100, 100)
	srv := httptest.NewServer(h.router)
	t.Cleanup(srv.Close)

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, srv.URL+"/api/breathing/stream?mood=energetic", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("stream request: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if ct := resp.Header.Get(xhttp.ContentType); ct != "text/event-stream" {
		t.Fatalf("Content-Type = %q, want text/event-stream", ct)
	}

	var events []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		if name, ok := strings.CutPrefix(scanner.Text(), "event: "); ok {
			events = append(events, name)
		}
	}

	if len(events) < 2 {
		t.Fatalf("events = %v, want a full session", events)
	}
	if last := events[len(events)-1]; last != string(breathing.EventCompleted) {
		t.Errorf("last event = %q, want %q", last, breathing.EventCompleted)
	}
}

// verifyNoLeaks fails t if goroutines started during the test outlive its
// cleanups. Tests using it must not run in parallel.
func verifyNoLeaks(t *testing.T) {
	t.Helper()
	ignore := goleak.IgnoreCurrent()
	t.Cleanup(func() { goleak.VerifyNone(t, ignore) })
}

// serveStream runs the router behind a real listener. done is closed once the
// handler for the request has returned.
func serveStream(t *testing.T, h *harness, base context.Context) (srv *httptest.Server, done <-chan struct{}) {
	t.Helper()

	finished := make(chan struct{})
	srv = httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer close(finished)
		h.router.ServeHTTP(w, r)
	}))
	if base != nil {
		srv.Config.BaseContext = func(net.Listener) context.Context { return base }
	}
	srv.Start()
	t.Cleanup(srv.Close)
	return srv, finished
}

type sseEvent struct {
	name string
	data string
}

// readEvents collects events from body until it ends. afterFirst runs once,
// right after the first event has been read.
func readEvents(body io.Reader, afterFirst func()) []sseEvent {
	var (
		events  []sseEvent
		current sseEvent
	)
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := scanner.Text()
		if name, ok := strings.CutPrefix(line, "event: "); ok {
			current.name = name
			continue
		}
		if data, ok := strings.CutPrefix(line, "data: "); ok {
			current.data = data
			continue
		}
		if line != "" || current.name == "" {
			continue
		}
		events = append(events, current)
		current = sseEvent{}
		if len(events) == 1 && afterFirst != nil {
			afterFirst()
		}
	}
	return events
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream handler did not return")
	}
}

func TestBreathingStreamClientDisconnect(t *testing.T) {
	verifyNoLeaks(t)

	var logs bytes.Buffer
	h := newLoggedHarness(t, 100, 100, slog.New(slog.NewJSONHandler(&logs, nil)))
	srv, done := serveStream(t, h, nil)

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/breathing/stream?mood=stressed", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("stream request: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	events := readEvents(resp.Body, cancel)
	waitDone(t, done)

	if len(events) == 0 || events[0].name != string(breathing.EventStarted) {
		t.Fatalf("events = %v, want the stream to open with %q", events, breathing.EventStarted)
	}
	for _, ev := range events {
		if ev.name == string(breathing.EventCompleted) || ev.name == "shutdown" {
			t.Errorf("client saw %q after disconnecting", ev.name)
		}
	}
	// A write can race the disconnect notice; either way the handler stops.
	out := logs.String()
	if !strings.Contains(out, "breathing stream closed by client") && !strings.Contains(out, "failed to write breathing event") {
		t.Errorf("logs = %s, want a client disconnect record", out)
	}
	if strings.Contains(out, "closed for shutdown") {
		t.Errorf("client disconnect logged as shutdown: %s", out)
	}
}

func TestBreathingStreamServerShutdown(t *testing.T) {
	verifyNoLeaks(t)

	var logs bytes.Buffer
	h := newLoggedHarness(t, 100, 100, slog.New(slog.NewJSONHandler(&logs, nil)))
	coordinator := server.NewShutdownCoordinator(0)
	srv, done := serveStream(t, h, coordinator.BaseContext())

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, srv.URL+"/api/breathing/stream?mood=stressed", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("stream request: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	events := readEvents(resp.Body, coordinator.InitiateShutdown)
	waitDone(t, done)

	if len(events) < 2 {
		t.Fatalf("events = %v, want at least started and shutdown", events)
	}
	last := events[len(events)-1]
	if last.name != "shutdown" {
		t.Fatalf("last event = %q, want shutdown", last.name)
	}
	if last.data != `{"reason":"server-restart"}` {
		t.Errorf("shutdown data = %s", last.data)
	}
	if !xcontext.IsShutdownInProgress(coordinator.BaseContext()) {
		t.Error("base context not marked as shutting down")
	}
	if out := logs.String(); !strings.Contains(out, "breathing stream closed for shutdown") {
		t.Errorf("logs = %s, want a shutdown record", out)
	}
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
