package cmd

import (
	"github.com/ptlab/ptsim/internal/adapters/render/summary"
	"github.com/ptlab/ptsim/internal/application"
	"github.com/spf13/cobra"
)

func newSimulateCmd(app *app) *cobra.Command {
	var (
		asJSON        bool
		showExchanges bool
		maxExchanges  int
	)

	cmd := &cobra.Command{
		Use:   "simulate <trace>",
		Short: "Synthesize a .ptSim simulation file from one trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.service.ProcessFile(cmd.Context(), application.ProcessCommand{
				SourcePath: args[0],
				OutputDir:  app.config.OutputDir,
			})
			if err != nil {
				return err
			}

			return writeResultsOutput(cmd, app, []application.Result{result}, summary.RenderOptions{
				ShowExchanges: showExchanges,
				MaxExchanges:  maxExchanges,
			}, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&showExchanges, "exchanges", false, "List request/response exchanges per channel")
	cmd.Flags().IntVar(&maxExchanges, "max-exchanges", 0, "Cap listed exchanges per channel (0 = all)")

	return cmd
}
