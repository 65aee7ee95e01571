package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	corecfg "github.com/voltline/renewable-ts/internal/core/config"
	"github.com/voltline/renewable-ts/internal/core/storage/postgres"
	"github.com/voltline/renewable-ts/internal/migrations"
)

// rootOptions holds global flags and the config resolved from them.
type rootOptions struct {
	configPath string
	cfg        *corecfg.Config
}

func execute() int {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("Command failed", "error", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "renewables",
		Short:         "Renewable production time-series service",
		Long:          "Ingests production readings from CSV files into PostgreSQL and serves period aggregations over HTTP.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Text logger first so config errors are logged the same way.
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

			cfg, err := corecfg.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			opts.cfg = cfg

			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: cfg.Logging.SlogLevel(),
			})))
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to YAML configuration file")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newSeedCmd(opts))
	cmd.AddCommand(newMigrateCmd(opts))

	return cmd
}

// openDatabase connects, applies migrations per database.auto_migrate, and
// checks the required tables exist.
func openDatabase(ctx context.Context, cfg *corecfg.Config) (*postgres.Adapter, error) {
	dbAdapter, err := postgres.NewAdapter(
		cfg.Database.DSN,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := migrations.RunMigrations(dbAdapter.DB(), cfg.Database.AutoMigrate); err != nil {
		dbAdapter.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	if err := dbAdapter.ValidateSchema(ctx); err != nil {
		dbAdapter.Close()
		return nil, err
	}

	return dbAdapter, nil
}
