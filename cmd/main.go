package main

import (
	"context"
	"fmt"
	"os"

	"github.com/oseayemenre/upepo/internal/config"
	"github.com/oseayemenre/upepo/internal/logger"
	"github.com/oseayemenre/upepo/internal/store"
	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	var envFile string

	cmd := &cobra.Command{
		Use:           "upepo",
		Short:         "monthly book club: reading plans, discussions and live sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file read before the environment")

	cmd.AddCommand(
		HTTPCommand(ctx, &envFile),
		MigrateCommand(ctx, &envFile),
		SeedCommand(ctx, &envFile),
		UsersCommand(ctx, &envFile),
	)

	return cmd.Execute()
}

type deps struct {
	config *config.Config
	logger *logger.ZapLogger
	store  *store.PostgresStore
}

// setup loads config, builds the logger and connects to postgres. env
// overrides ENV when non-empty.
func setup(envFile string, env string) (*deps, error) {
	cfg, err := config.Load(envFile)

	if err != nil {
		return nil, err
	}

	if env != "" {
		cfg.Env = env
	}

	log, err := logger.NewZapLogger(cfg.Env, cfg.LogLevel)

	if err != nil {
		return nil, err
	}

	db, err := store.NewPostgresStore(cfg.DBConn)

	if err != nil {
		return nil, err
	}

	return &deps{config: cfg, logger: log, store: db}, nil
}

func (d *deps) close() {
	d.store.Close()
	d.logger.Sync()
}
