package cmd

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/ptlab/ptsim/internal/adapters/render/summary"
	"github.com/ptlab/ptsim/internal/application"
	"github.com/spf13/cobra"
)

func newBatchCmd(app *app) *cobra.Command {
	var (
		asJSON      bool
		progress    bool
		workers     int
		metricsFile string
	)

	cmd := &cobra.Command{
		Use:   "batch <trace>...",
		Short: "Synthesize simulations for many traces in parallel",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			batch := application.BatchCommand{
				SourcePaths: args,
				OutputDir:   app.config.OutputDir,
				Workers:     app.config.Workers,
			}
			if cmd.Flags().Changed("workers") {
				batch.Workers = workers
			}

			var results []application.Result
			if progress {
				err := runBatchProgress(cmd.Context(), cmd.ErrOrStderr(), len(args), func(ctx context.Context, traceDone func(bool)) error {
					batch.OnResult = func(result application.Result) {
						traceDone(result.Failed())
					}
					results = app.service.ProcessBatch(ctx, batch)
					return nil
				})
				if err != nil {
					return err
				}
			} else {
				results = app.service.ProcessBatch(cmd.Context(), batch)
			}

			if metricsFile != "" {
				if err := prometheus.WriteToTextfile(metricsFile, app.registry); err != nil {
					return fmt.Errorf("write metrics file: %w", err)
				}
			}

			if err := writeResultsOutput(cmd, app, results, summary.RenderOptions{}, asJSON); err != nil {
				return err
			}
			return application.BatchError(results)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	cmd.Flags().BoolVar(&progress, "progress", false, "Show a spinner while traces are processed")
	cmd.Flags().IntVar(&workers, "workers", 0, "Maximum traces processed concurrently (default from config)")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics in text format to this file")

	return cmd
}
