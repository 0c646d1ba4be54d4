package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/garrettladley/moodly/internal/authstore"
	"github.com/garrettladley/moodly/internal/client/moodly"
	"github.com/garrettladley/moodly/internal/config"
	"github.com/garrettladley/moodly/internal/paths"
	"github.com/garrettladley/moodly/internal/xslog"
)

var (
	errNotLoggedIn    = errors.New("not logged in, run `moodly login` first")
	errSessionExpired = errors.New("your session has expired, run `moodly login` again")
)

// app is what every networked command needs: config, a file logger and the
// local session store.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	store  *authstore.Store
	out    io.Writer
	in     io.Reader

	closeLog func() error
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	logger, closeLog, err := openLogger()
	if err != nil {
		return nil, err
	}

	storePath, err := paths.Auth()
	if err != nil {
		_ = closeLog()
		return nil, err
	}
	store, err := authstore.Open(storePath)
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		out:      cmd.OutOrStdout(),
		in:       cmd.InOrStdin(),
		closeLog: closeLog,
	}, nil
}

func (a *app) Close() {
	_ = a.store.Close()
	_ = a.closeLog()
}

// withApp adapts fn to a cobra RunE that owns an app for its duration.
func withApp(fn func(ctx context.Context, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(cmd.Context(), a, args)
	}
}

func (a *app) anonClient() *moodly.Client {
	return moodly.New(a.cfg.ServerURL, moodly.WithLogger(a.logger))
}

// authedClient fails early when there is no usable stored session.
func (a *app) authedClient() (*moodly.Client, error) {
	if _, err := a.store.Load(); err != nil {
		switch {
		case errors.Is(err, authstore.ErrNoSession):
			return nil, errNotLoggedIn
		case errors.Is(err, authstore.ErrSessionEnded):
			_ = a.store.Clear()
			return nil, errSessionExpired
		default:
			return nil, err
		}
	}
	return moodly.New(a.cfg.ServerURL, moodly.WithTokenSource(a.store), moodly.WithLogger(a.logger)), nil
}

// checkAuth forgets the stored session when the server no longer accepts it.
func (a *app) checkAuth(err error) error {
	if !moodly.IsUnauthorized(err) {
		return err
	}
	if clearErr := a.store.Clear(); clearErr != nil {
		a.logger.Warn("failed to clear rejected session", xslog.Error(clearErr))
	}
	return errSessionExpired
}

// openLogger writes JSON logs to the moodly log file so the terminal stays clean.
func openLogger() (*slog.Logger, func() error, error) {
	if _, err := paths.EnsureDir(); err != nil {
		return nil, nil, err
	}
	logPath, err := paths.Log()
	if err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return xslog.NewLoggerFromEnv(f), f.Close, nil
}
