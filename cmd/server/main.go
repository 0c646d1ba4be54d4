package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/garrettladley/moodly/internal/breathing"
	"github.com/garrettladley/moodly/internal/client/spotify"
	"github.com/garrettladley/moodly/internal/db"
	"github.com/garrettladley/moodly/internal/insight"
	"github.com/garrettladley/moodly/internal/music"
	xredis "github.com/garrettladley/moodly/internal/redis"
	"github.com/garrettladley/moodly/internal/server"
	"github.com/garrettladley/moodly/internal/server/handler"
	"github.com/garrettladley/moodly/internal/service/analytics"
	"github.com/garrettladley/moodly/internal/service/goal"
	"github.com/garrettladley/moodly/internal/service/journal"
	moodsvc "github.com/garrettladley/moodly/internal/service/mood"
	"github.com/garrettladley/moodly/internal/service/session"
	"github.com/garrettladley/moodly/internal/service/user"
	"github.com/garrettladley/moodly/internal/storage"
	"github.com/garrettladley/moodly/internal/xslog"
	"github.com/joho/godotenv"
)

const (
	keyPort        = "port"
	keyGracePeriod = "grace_period"

	sseShutdownGracePeriod = 2 * time.Second
)

func main() {
	_ = godotenv.Load()

	logger := xslog.NewLoggerFromEnv(os.Stdout)
	slog.SetDefault(logger)

	ctx := context.Background()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", xslog.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := server.ReadConfig()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	ctx = xslog.WithLogger(ctx, logger)

	store, err := db.Open(ctx, db.Config{URL: cfg.Database.URL, Path: cfg.Database.Path})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.ErrorContext(ctx, "failed to close database", xslog.Error(err))
		}
	}()

	backend, err := initBackend(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize storage backend: %w", err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.ErrorContext(ctx, "failed to close backend", xslog.Error(err))
		}
	}()

	catalog, err := breathing.DefaultCatalog()
	if err != nil {
		return fmt.Errorf("failed to load breathing catalog: %w", err)
	}

	insights, err := initInsights(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize insights: %w", err)
	}

	// Services
	userService := user.NewAccounts(store.Users)
	sessionService := session.NewManager(backend, cfg.SessionTTL)
	moodService := moodsvc.NewTracker(store.Moods, insights)
	journalService, err := journal.New(store.Journal)
	if err != nil {
		return fmt.Errorf("failed to load journal templates: %w", err)
	}
	goalService := goal.NewTracker(store.Goals)
	analyticsService := analytics.New(store.Repository)
	musicService := music.NewService(initMusicProvider(ctx, cfg, logger), music.DefaultCurated())

	router := server.NewRouter(logger, server.Handlers{
		Health: handler.NewHealth(map[string]handler.Pinger{
			"database": store,
			"storage":  backend,
		}, cfg.Gemini.APIKey != ""),
		Auth:      handler.NewAuth(userService, sessionService, cfg.Env.IsProduction()),
		Moods:     handler.NewMoods(moodService),
		Journal:   handler.NewJournal(journalService),
		Goals:     handler.NewGoals(goalService),
		Analytics: handler.NewAnalytics(analyticsService),
		Music:     handler.NewMusic(musicService),
		Breathing: handler.NewBreathing(catalog, breathing.DefaultTickInterval),

		Sessions:       sessionService,
		Limiter:        backend,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	shutdownCoordinator := server.NewShutdownCoordinator(sseShutdownGracePeriod)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      0, // disabled for SSE; WriteSSEEvent sets per-event deadlines
		IdleTimeout:       60 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return shutdownCoordinator.BaseContext()
		},
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "starting server",
			xslog.Version(),
			xslog.Driver(store.Driver()),
			slog.String(keyPort, cfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-done:
		logger.InfoContext(ctx, "shutdown signal received, initiating graceful shutdown")
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	// cancel request contexts and give breathing streams time to say goodbye
	shutdownCoordinator.InitiateShutdown()
	logger.InfoContext(ctx, "stream grace period complete, shutting down server",
		slog.Duration(keyGracePeriod, sseShutdownGracePeriod))

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.InfoContext(ctx, "server stopped")
	return nil
}

func initBackend(ctx context.Context, cfg server.Config, logger *slog.Logger) (storage.Backend, error) {
	if cfg.Redis.URL == "" {
		logger.InfoContext(ctx, "initializing in-memory backend")
		return storage.NewMemoryBackend(cfg.RateLimit.Limit, cfg.RateLimit.Burst), nil
	}

	logger.InfoContext(ctx, "initializing Redis backend")
	client, err := xredis.New(ctx, xredis.Config{URL: cfg.Redis.URL})
	if err != nil {
		return nil, err
	}
	return storage.NewRedisBackend(storage.RedisConfig{
		Client: client,
		Limit:  max(cfg.RateLimit.Burst, int(cfg.RateLimit.Limit)),
		Window: time.Second,
	}), nil
}

func initInsights(ctx context.Context, cfg server.Config, logger *slog.Logger) (insight.Generator, error) {
	if cfg.Gemini.APIKey == "" {
		logger.InfoContext(ctx, "GEMINI_API_KEY not set, using rule-based insights")
		return insight.Rules{}, nil
	}

	gemini, err := insight.NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "initializing Gemini insights", xslog.Model(cfg.Gemini.Model))
	return insight.WithFallback(gemini, insight.Rules{}), nil
}

func initMusicProvider(ctx context.Context, cfg server.Config, logger *slog.Logger) music.Provider {
	if !cfg.Spotify.Enabled() {
		logger.InfoContext(ctx, "Spotify credentials not set, using curated playlists only")
		return nil
	}
	logger.InfoContext(ctx, "initializing Spotify provider")
	return music.NewSpotify(spotify.New(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret))
}
