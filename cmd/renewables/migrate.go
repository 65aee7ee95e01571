package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/voltline/renewable-ts/internal/core/storage/postgres"
	"github.com/voltline/renewable-ts/internal/migrations"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withDB(opts, func(a *postgres.Adapter) error {
				return migrations.RunMigrations(a.DB(), true)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Revert every migration, dropping all data",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withDB(opts, func(a *postgres.Adapter) error {
				return migrations.Down(a.DB())
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withDB(opts, func(a *postgres.Adapter) error {
				version, dirty, err := migrations.Version(a.DB())
				if err != nil {
					return err
				}
				fmt.Fprintf(os.Stdout, "version %d (dirty: %t)\n", version, dirty)
				return nil
			})
		},
	})

	return cmd
}

// withDB opens a pool without migrating or validating the schema.
func withDB(opts *rootOptions, fn func(*postgres.Adapter) error) error {
	a, err := postgres.NewAdapter(opts.cfg.Database.DSN, opts.cfg.Database.MaxOpenConns, opts.cfg.Database.MaxIdleConns)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer a.Close()
	return fn(a)
}
