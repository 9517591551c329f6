package store

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jmoiron/sqlx"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies every embedded migration that has not been recorded in
// schema_migrations, in file name order, each in its own transaction.
func (s *PostgresStore) Migrate(ctx context.Context) ([]string, error) {
	if _, err := s.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`); err != nil {
		return nil, fmt.Errorf("error creating schema_migrations: %w", err)
	}

	names, err := fs.Glob(migrationsFS, "migrations/*.sql")

	if err != nil {
		return nil, fmt.Errorf("error listing migrations: %w", err)
	}

	sort.Strings(names)

	var applied []string

	for _, name := range names {
		var exists bool

		if err := s.DB.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, name); err != nil {
			return applied, fmt.Errorf("error checking migration %s: %w", name, err)
		}

		if exists {
			continue
		}

		body, err := migrationsFS.ReadFile(name)

		if err != nil {
			return applied, fmt.Errorf("error reading migration %s: %w", name, err)
		}

		err = s.withTx(ctx, func(tx *sqlx.Tx) error {
			if _, err := tx.ExecContext(ctx, string(body)); err != nil {
				return fmt.Errorf("error applying migration %s: %w", name, err)
			}

			if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, name); err != nil {
				return fmt.Errorf("error recording migration %s: %w", name, err)
			}

			return nil
		})

		if err != nil {
			return applied, err
		}

		applied = append(applied, name)
	}

	return applied, nil
}
