package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/voltline/renewable-ts/internal/core/storage/postgres"
	"github.com/voltline/renewable-ts/internal/ingestion"
	"github.com/voltline/renewable-ts/internal/projection"
	"github.com/voltline/renewable-ts/internal/server"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate, seed the configured file, and serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func runServe(parent context.Context, opts *rootOptions) error {
	cfg := opts.cfg

	// Signal handler cancels ctx, which stops the HTTP server.
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Storage + migrations
	dbAdapter, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer dbAdapter.Close()

	// 2. Startup seed
	if cfg.Seed.Active() {
		seeder := ingestion.NewSeeder(postgres.NewSeedAdapter(dbAdapter.DB(), cfg.Seed.BatchSize), cfg.Seed.BatchSize)
		if _, err := seeder.SeedFile(ctx, cfg.Seed.File); err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}
	} else {
		slog.Info("Startup seeding skipped", "enabled", cfg.Seed.Enabled, "file", cfg.Seed.File)
	}

	// 3. Query API
	querySvc := projection.NewService(postgres.NewQueryAdapter(dbAdapter.DB()), cfg.Query.HistoryLimit)

	// 4. Server
	srv := server.New(
		fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		dbAdapter,
		cfg.Server.Mode,
		cfg.Server.RequestTimeout,
	)
	querySvc.RegisterRoutes(srv.Engine)

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}

	slog.Info("Shutdown complete")
	return nil
}
