package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ptlab/ptsim/internal/adapters/render/summary"
	"github.com/ptlab/ptsim/internal/domain"
	"github.com/ptlab/ptsim/internal/expression"
	"github.com/spf13/cobra"
)

func newInspectCmd(app *app) *cobra.Command {
	var (
		asJSON        bool
		showExchanges bool
		maxExchanges  int
	)

	cmd := &cobra.Command{
		Use:   "inspect <file.ptSim|file.ptExp>",
		Short: "Show the contents of a simulation file or the simulation an exchange file yields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				file domain.SimulationFile
				err  error
			)
			if strings.EqualFold(filepath.Ext(args[0]), expression.ExchangeExt) {
				file, err = app.service.SimulateExpressions(cmd.Context(), args[0])
			} else {
				file, err = app.service.LoadSimulation(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, file)
			}

			rendered, err := app.simulationRender(file, summary.RenderOptions{
				ShowExchanges: showExchanges,
				MaxExchanges:  maxExchanges,
			})
			if err != nil {
				return fmt.Errorf("render simulation: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the simulation as JSON")
	cmd.Flags().BoolVar(&showExchanges, "exchanges", false, "List request/response exchanges per channel")
	cmd.Flags().IntVar(&maxExchanges, "max-exchanges", 0, "Cap listed exchanges per channel (0 = all)")

	return cmd
}
