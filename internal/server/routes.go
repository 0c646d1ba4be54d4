package server

import (
	"log/slog"
	"net/http"

	"github.com/garrettladley/moodly/internal/server/handler"
	servermw "github.com/garrettladley/moodly/internal/server/middleware"
	"github.com/garrettladley/moodly/internal/service/session"
	"github.com/garrettladley/moodly/internal/storage"
	"github.com/garrettladley/moodly/internal/xhttp/middleware"
)

// Handlers groups everything the router needs. All fields are required.
type Handlers struct {
	Health    *handler.Health
	Auth      *handler.Auth
	Moods     *handler.Moods
	Journal   *handler.Journal
	Goals     *handler.Goals
	Analytics *handler.Analytics
	Music     *handler.Music
	Breathing *handler.Breathing

	Sessions session.Service
	Limiter  storage.RateLimiter

	AllowedOrigins []string
}

// NewRouter wires every route and the shared middleware chain.
func NewRouter(logger *slog.Logger, h Handlers) http.Handler {
	mux := http.NewServeMux()

	// public, IP rate limited
	public := http.NewServeMux()
	public.HandleFunc("POST /api/auth/register", h.Auth.HandleRegister)
	public.HandleFunc("POST /api/auth/login", h.Auth.HandleLogin)
	public.HandleFunc("POST /api/auth/logout", h.Auth.HandleLogout)
	public.HandleFunc("POST /api/insights", h.Moods.HandleInsight)
	public.HandleFunc("POST /api/music/recommendations", h.Music.HandleRecommendations)
	publicWrapped := middleware.Chain(public,
		servermw.RateLimitByIP(h.Limiter),
	)
	mux.Handle("/api/auth/register", publicWrapped)
	mux.Handle("/api/auth/login", publicWrapped)
	mux.Handle("/api/auth/logout", publicWrapped)
	mux.Handle("/api/insights", publicWrapped)
	mux.Handle("/api/music/", publicWrapped)

	// public, unlimited
	mux.HandleFunc("GET /api/health", h.Health.HandleHealth)
	mux.HandleFunc("GET /api/journal/templates", h.Journal.HandleTemplates)
	mux.HandleFunc("GET /api/breathing/exercises", h.Breathing.HandleExercises)
	mux.HandleFunc("GET /api/breathing/exercises/{mood}", h.Breathing.HandleExercise)
	mux.HandleFunc("GET /api/breathing/stream", h.Breathing.HandleStream)

	// session required, per-user rate limited
	authed := http.NewServeMux()
	authed.HandleFunc("GET /api/auth/me", h.Auth.HandleMe)
	authed.HandleFunc("GET /api/moods", h.Moods.HandleList)
	authed.HandleFunc("POST /api/moods", h.Moods.HandleCreate)
	authed.HandleFunc("GET /api/moods/stats", h.Moods.HandleStats)
	authed.HandleFunc("GET /api/journal", h.Journal.HandleList)
	authed.HandleFunc("POST /api/journal", h.Journal.HandleCreate)
	authed.HandleFunc("GET /api/goals", h.Goals.HandleList)
	authed.HandleFunc("POST /api/goals", h.Goals.HandleCreate)
	authed.HandleFunc("PATCH /api/goals/{id}/progress", h.Goals.HandleProgress)
	authed.HandleFunc("POST /api/goals/{id}/complete", h.Goals.HandleComplete)
	authed.HandleFunc("GET /api/analytics", h.Analytics.HandleReport)
	authedWrapped := middleware.Chain(authed,
		servermw.RequireSession(h.Sessions),
		servermw.RateLimitByUser(h.Limiter),
	)
	mux.Handle("/api/auth/me", authedWrapped)
	mux.Handle("/api/moods", authedWrapped)
	mux.Handle("/api/moods/", authedWrapped)
	mux.Handle("/api/journal", authedWrapped)
	mux.Handle("/api/goals", authedWrapped)
	mux.Handle("/api/goals/", authedWrapped)
	mux.Handle("/api/analytics", authedWrapped)

	return middleware.Chain(mux,
		middleware.Recovery,
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Logging,
		middleware.ShutdownContext,
		middleware.SecurityHeaders,
		middleware.CORS(h.AllowedOrigins),
		middleware.VersionCheck,
		middleware.Gzip(),
	)
}
