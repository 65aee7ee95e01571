package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/voltline/renewable-ts/internal/core/storage/postgres"
	"github.com/voltline/renewable-ts/internal/ingestion"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed [file]",
		Short: "Ingest a CSV file once; later runs for the same file are no-ops",
		Long:  "Ingest a CSV file. Without an argument the configured seed.file (or SEED_FILE) is used.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.cfg.Seed.File
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no seed file: pass one or set seed.file")
			}

			dbAdapter, err := openDatabase(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			defer dbAdapter.Close()

			seeder := ingestion.NewSeeder(postgres.NewSeedAdapter(dbAdapter.DB(), opts.cfg.Seed.BatchSize), opts.cfg.Seed.BatchSize)
			report, err := seeder.SeedFile(cmd.Context(), path)
			if err != nil {
				return err
			}

			if report.AlreadyIngested {
				fmt.Fprintf(os.Stdout, "%s already ingested\n", report.Source)
				return nil
			}
			fmt.Fprintf(os.Stdout, "Seeded database with %d records from %s (%d skipped)\n",
				report.Inserted, report.Source, report.Skipped)
			return nil
		},
	}
}
