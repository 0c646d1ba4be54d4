package main

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/garrettladley/moodly/internal/db"
	"github.com/garrettladley/moodly/internal/migrations"
	pgmigrations "github.com/garrettladley/moodly/internal/migrations/postgres"
	"github.com/garrettladley/moodly/internal/xslog"
)

func migrateCmd() *cobra.Command {
	var (
		path        string
		databaseURL string
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Long:  "Applies the embedded migrations to Postgres when --database-url is set, otherwise to the SQLite file at --path.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := xslog.WithLogger(cmd.Context(), xslog.NewLoggerFromEnv(os.Stderr))

			var (
				applied []string
				err     error
			)
			if databaseURL != "" {
				pool, openErr := db.ConnectPostgres(ctx, databaseURL)
				if openErr != nil {
					return openErr
				}
				defer pool.Close()
				applied, err = pgmigrations.Apply(ctx, pool)
			} else {
				sqlDB, openErr := db.ConnectSQLite(path)
				if openErr != nil {
					return openErr
				}
				defer func() { _ = sqlDB.Close() }()
				applied, err = migrations.Apply(ctx, sqlDB)
			}
			if err != nil {
				return fmt.Errorf("migrations: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(applied) == 0 {
				_, _ = fmt.Fprintln(out, "Database is up to date")
				return nil
			}
			for _, name := range applied {
				_, _ = fmt.Fprintf(out, "applied %s\n", name)
			}
			_, _ = fmt.Fprintf(out, "Migrations applied successfully (%d)\n", len(applied))
			return nil
		},
	}

	defaults, _ := env.ParseAs[dbEnv]()
	cmd.Flags().StringVar(&path, "path", defaults.Path, "SQLite database file")
	cmd.Flags().StringVar(&databaseURL, "database-url", defaults.URL, "Postgres connection URL")

	return cmd
}

// dbEnv mirrors the server's database settings so flags default to them.
type dbEnv struct {
	URL  string `env:"DATABASE_URL"`
	Path string `env:"DB_PATH" envDefault:"moodly.db"`
}
