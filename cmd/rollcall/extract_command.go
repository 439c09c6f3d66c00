package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quorumlabs/rollcall/internal/corpus"
	"github.com/quorumlabs/rollcall/internal/directory"
	"github.com/quorumlabs/rollcall/internal/export"
	"github.com/quorumlabs/rollcall/internal/extract"
	"github.com/quorumlabs/rollcall/internal/observe"
)

func newExtractCommand(cctx *commandContext) *cobra.Command {
	var (
		jsonOut   string
		csvOut    string
		reportOut string
		top       int
	)

	cmd := &cobra.Command{
		Use:   "extract <corpus-dir>",
		Short: "Run the extraction pipeline over a transcript corpus",
		Long: `Extract scans every transcript under the given directory, runs the
candidate pipeline, and prints a run summary. Entity and cluster output can
be exported with --json and --csv; --report writes the markdown review
report.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
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

			metrics := observe.DefaultMetrics()
			if cfg.Diagnostics.ListenAddr != "" {
				stopDiag := startDiagnostics(cfg.Diagnostics.ListenAddr, metrics)
				defer stopDiag()
			}

			docs, err := corpus.NewLoader().Load(args[0])
			if err != nil {
				return err
			}

			pipeline, err := cfg.BuildPipeline(extract.WithMetrics(metrics))
			if err != nil {
				return err
			}

			res, err := pipeline.Run(ctx, docs)
			if err != nil {
				return err
			}

			if jsonOut != "" {
				if err := writeFile(jsonOut, func(f *os.File) error {
					return export.WriteResultJSON(f, res)
				}); err != nil {
					return err
				}
			}
			if csvOut != "" {
				if err := writeFile(csvOut, func(f *os.File) error {
					return export.WriteEntitiesCSV(f, res.Entities)
				}); err != nil {
					return err
				}
			}
			if reportOut != "" {
				records := directory.Build(res.Clusters)
				if err := writeFile(reportOut, func(f *os.File) error {
					return directory.WriteReport(f, records, res.Review)
				}); err != nil {
					return err
				}
			}

			printRunSummary(cmd, res, top)
			return nil
		},
	}

	cmd.Flags().StringVar(&jsonOut, "json", "", "Write the full result as JSON to this file")
	cmd.Flags().StringVar(&csvOut, "csv", "", "Write entities as CSV to this file")
	cmd.Flags().StringVar(&reportOut, "report", "", "Write the markdown review report to this file")
	cmd.Flags().IntVar(&top, "top", 20, "Number of entities shown in the summary table")

	return cmd
}

// writeFile creates path and hands it to write, closing on the way out.
func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("rollcall: create %q: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("rollcall: close %q: %w", path, err)
	}
	return nil
}

// printRunSummary renders the stage counts and the top entities.
func printRunSummary(cmd *cobra.Command, res *extract.Result, top int) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, renderTable(
		[]string{"Stage", "Count"},
		[][]string{
			{"Documents", strconv.Itoa(res.Stats.Documents)},
			{"Skipped", strconv.Itoa(len(res.Skipped))},
			{"Candidates", strconv.Itoa(res.Stats.Filter.In)},
			{"Stoplisted", strconv.Itoa(res.Stats.Filter.Stoplisted)},
			{"Invalid", strconv.Itoa(res.Stats.Filter.Invalid)},
			{"Empty after normalize", strconv.Itoa(res.Stats.NormalizedEmpty)},
			{"Below minimum", strconv.Itoa(res.Stats.BelowMinimum)},
			{"Entities", strconv.Itoa(res.Stats.Entities)},
			{"Clusters", strconv.Itoa(res.Stats.Clusters)},
			{"Review pairs", strconv.Itoa(len(res.Review))},
		},
		[]columnAlignment{alignLeft, alignRight},
	))

	n := top
	if n > len(res.Entities) {
		n = len(res.Entities)
	}
	if n <= 0 {
		return
	}
	rows := make([][]string, 0, n)
	for _, e := range res.Entities[:n] {
		rows = append(rows, []string{
			e.NormalizedForm,
			string(e.Tier),
			strconv.Itoa(e.Frequency),
			strconv.Itoa(e.DocumentCount),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Name", "Tier", "Mentions", "Documents"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
	))
}
