package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/quorumlabs/rollcall/internal/config"
	"github.com/quorumlabs/rollcall/internal/corpus"
	"github.com/quorumlabs/rollcall/internal/directory"
	"github.com/quorumlabs/rollcall/internal/export"
	"github.com/quorumlabs/rollcall/internal/extract"
	"github.com/quorumlabs/rollcall/internal/observe"
	"github.com/quorumlabs/rollcall/internal/phonetic"
)

func newDirectoryCommand(cctx *commandContext) *cobra.Command {
	var (
		jsonOut    string
		csvOut     string
		reportOut  string
		rosterPath string
		persist    bool
	)

	cmd := &cobra.Command{
		Use:   "directory <corpus-dir>",
		Short: "Build the speaker directory from a transcript corpus",
		Long: `Directory runs the extraction pipeline and folds the resulting clusters
into speaker directory records: one entry per person, with a primary role,
surface-form variants, and affiliations. Records can be exported with
--json and --csv, rendered as a markdown report with --report, and written
to PostgreSQL with --persist (requires directory.postgres_dsn in the
configuration).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			if persist && cfg.Directory.PostgresDSN == "" {
				return fmt.Errorf("rollcall: --persist requires directory.postgres_dsn to be configured")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			shutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{
				ServiceName:    "rollcall",
				ServiceVersion: version,
			})
			if err != nil {
				return fmt.Errorf("rollcall: init telemetry: %w", err)
			}
			defer func() { _ = shutdown(context.Background()) }()

			docs, err := corpus.NewLoader().Load(args[0])
			if err != nil {
				return err
			}

			pipeline, err := cfg.BuildPipeline(extract.WithMetrics(observe.DefaultMetrics()))
			if err != nil {
				return err
			}
			res, err := pipeline.Run(ctx, docs)
			if err != nil {
				return err
			}

			records := directory.Build(res.Clusters)

			if rosterPath != "" {
				roster, rosterErr := config.LoadWordList(rosterPath)
				if rosterErr != nil {
					return rosterErr
				}
				directory.CrossReference(records, roster, phonetic.New())
			}

			if jsonOut != "" {
				if err := writeFile(jsonOut, func(f *os.File) error {
					return export.WriteRecordsJSON(f, records)
				}); err != nil {
					return err
				}
			}
			if csvOut != "" {
				if err := writeFile(csvOut, func(f *os.File) error {
					return export.WriteRecordsCSV(f, records)
				}); err != nil {
					return err
				}
			}
			if reportOut != "" {
				if err := writeFile(reportOut, func(f *os.File) error {
					return directory.WriteReport(f, records, res.Review)
				}); err != nil {
					return err
				}
			}
			if persist {
				if err := persistRecords(ctx, cfg.Directory.PostgresDSN, records); err != nil {
					return err
				}
			}

			printDirectorySummary(cmd, records)
			return nil
		},
	}

	cmd.Flags().StringVar(&jsonOut, "json", "", "Write records as JSON to this file")
	cmd.Flags().StringVar(&csvOut, "csv", "", "Write records as CSV to this file")
	cmd.Flags().StringVar(&reportOut, "report", "", "Write the markdown review report to this file")
	cmd.Flags().StringVar(&rosterPath, "roster", "", "Cross-reference records against this roster file (one name per line)")
	cmd.Flags().BoolVar(&persist, "persist", false, "Upsert records into PostgreSQL")

	return cmd
}

// persistRecords upserts all records into the configured PostgreSQL store.
func persistRecords(ctx context.Context, dsn string, records []directory.Record) error {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("rollcall: connect postgres: %w", err)
	}
	defer pool.Close()

	store := directory.NewPostgresStore(pool)
	if err := store.Migrate(ctx); err != nil {
		return err
	}
	for i := range records {
		if err := store.Upsert(ctx, &records[i]); err != nil {
			return err
		}
	}
	return nil
}

// printDirectorySummary renders role counts and the top records.
func printDirectorySummary(cmd *cobra.Command, records []directory.Record) {
	out := cmd.OutOrStdout()

	rows := make([][]string, 0, len(records))
	for i, r := range records {
		if i >= 20 {
			break
		}
		rows = append(rows, []string{
			r.Name,
			string(r.PrimaryRole),
			string(r.Tier),
			strconv.Itoa(r.Frequency),
		})
	}
	fmt.Fprintf(out, "%d directory entries\n", len(records))
	fmt.Fprintln(out, renderTable(
		[]string{"Name", "Role", "Tier", "Mentions"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
	))
}
