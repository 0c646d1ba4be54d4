package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

const (
	sqliteMigrationsDir   = "internal/migrations/sql"
	postgresMigrationsDir = "internal/migrations/postgres/sql"
)

func newMigrationCmd() *cobra.Command {
	var postgres bool

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a new migration file",
		Long:  "Creates the next numbered SQLite migration, or a Postgres one with --postgres. Run from the repository root.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.ReplaceAll(strings.TrimSpace(args[0]), " ", "_")

			dir := sqliteMigrationsDir
			if postgres {
				dir = postgresMigrationsDir
			}

			entries, err := os.ReadDir(dir)
			if err != nil {
				return fmt.Errorf("failed to read migrations directory: %w", err)
			}

			filename := filepath.Join(dir, fmt.Sprintf("%06d_%s.sql", nextMigrationNum(entries), name))
			if _, err := os.Stat(filename); err == nil {
				return fmt.Errorf("migration file already exists: %s", filename)
			}

			content := fmt.Sprintf("-- Migration: %s\n\n", name)
			if err := os.WriteFile(filename, []byte(content), 0o600); err != nil {
				return fmt.Errorf("failed to create migration file: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created migration: %s\n", filename)
			return nil
		},
	}

	cmd.Flags().BoolVar(&postgres, "postgres", false, "create a Postgres migration")

	return cmd
}

func nextMigrationNum(entries []os.DirEntry) int {
	var highest int
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		prefix, _, _ := strings.Cut(entry.Name(), "_")
		var num int
		if _, err := fmt.Sscanf(prefix, "%d", &num); err != nil {
			continue
		}
		highest = max(highest, num)
	}
	return highest + 1
}
