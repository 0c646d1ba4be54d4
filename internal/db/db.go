package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/garrettladley/moodly/internal/migrations"
	pgmigrations "github.com/garrettladley/moodly/internal/migrations/postgres"
	"github.com/garrettladley/moodly/internal/repository"
	"github.com/garrettladley/moodly/internal/repository/postgres"
	"github.com/garrettladley/moodly/internal/repository/sqlite"
	"github.com/garrettladley/moodly/internal/xslog"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Store is a migrated database and the repositories on top of it.
type Store struct {
	*repository.Repository

	driver string
	ping   func(ctx context.Context) error
	close  func() error
}

func (s *Store) Driver() string                 { return s.driver }
func (s *Store) Ping(ctx context.Context) error { return s.ping(ctx) }
func (s *Store) Close() error                   { return s.close() }

type Config struct {
	// URL selects Postgres when set.
	URL string
	// Path is the SQLite file used when URL is empty.
	Path string
}

// Open connects to Postgres or SQLite and applies pending migrations.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	logger := xslog.FromContext(ctx)

	if cfg.URL != "" {
		pool, err := OpenPostgres(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		logger.InfoContext(ctx, "database ready", xslog.Driver(DriverPostgres))
		return &Store{
			Repository: postgres.New(pool),
			driver:     DriverPostgres,
			ping:       pool.Ping,
			close: func() error {
				pool.Close()
				return nil
			},
		}, nil
	}

	sqlDB, err := OpenSQLite(ctx, cfg.Path)
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "database ready", xslog.Driver(DriverSQLite), slog.String("path", cfg.Path))
	return &Store{
		Repository: sqlite.New(sqlDB),
		driver:     DriverSQLite,
		ping:       sqlDB.PingContext,
		close:      sqlDB.Close,
	}, nil
}

// OpenSQLite opens (creating if needed) the database at path and migrates it.
// ":memory:" is accepted and pinned to a single connection.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	sqlDB, err := ConnectSQLite(path)
	if err != nil {
		return nil, err
	}

	applied, err := migrations.Apply(ctx, sqlDB)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	logApplied(ctx, applied)
	return sqlDB, nil
}

// ConnectSQLite opens the database at path without migrating it.
func ConnectSQLite(path string) (*sql.DB, error) {
	memory := path == ":memory:"
	if !memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	dsn := path + "?_foreign_keys=on&_busy_timeout=5000"
	if !memory {
		dsn += "&_journal_mode=WAL"
	}

	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	if memory {
		sqlDB.SetMaxOpenConns(1)
	}
	return sqlDB, nil
}

func OpenPostgres(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := ConnectPostgres(ctx, url)
	if err != nil {
		return nil, err
	}

	applied, err := pgmigrations.Apply(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	logApplied(ctx, applied)
	return pool, nil
}

// ConnectPostgres creates a pool and checks that the server is reachable.
func ConnectPostgres(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}

func logApplied(ctx context.Context, applied []string) {
	if len(applied) == 0 {
		return
	}
	xslog.FromContext(ctx).InfoContext(ctx, "applied migrations",
		xslog.Count(len(applied)),
		slog.Any("migrations", applied))
}
