package main

import (
	"context"

	"github.com/spf13/cobra"
)

func MigrateCommand(ctx context.Context, envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := setup(*envFile, "")

			if err != nil {
				return err
			}

			defer d.close()

			applied, err := d.store.Migrate(ctx)

			if err != nil {
				return err
			}

			if len(applied) == 0 {
				d.logger.Info("migrate", "status", "schema is up to date")
				return nil
			}

			for _, name := range applied {
				d.logger.Info("migrate", "status", "applied", "file", name)
			}

			return nil
		},
	}
}
