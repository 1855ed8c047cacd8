package cmd

import (
	"github.com/ptlab/ptsim/internal/adapters/render/summary"
	"github.com/ptlab/ptsim/internal/application"
	"github.com/spf13/cobra"
)

func newParseCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "parse <trace>...",
		Short: "Parse traces into .ptExp expression files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]application.Result, 0, len(args))
			var failures []application.Result
			for _, path := range args {
				result, err := app.service.ExportExpressions(cmd.Context(), application.ProcessCommand{
					SourcePath: path,
					OutputDir:  app.config.OutputDir,
				})
				results = append(results, result)
				if err != nil {
					failures = append(failures, result)
				}
			}

			if err := writeResultsOutput(cmd, app, results, summary.RenderOptions{}, asJSON); err != nil {
				return err
			}
			return application.BatchError(failures)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")

	return cmd
}
