package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/ptlab/ptsim/internal/adapters/render/summary"
	"github.com/ptlab/ptsim/internal/application"
	"github.com/spf13/cobra"
)

func writeResultsOutput(cmd *cobra.Command, app *app, results []application.Result, opts summary.RenderOptions, asJSON bool) error {
	if asJSON {
		return writeJSON(cmd, results)
	}

	rendered, err := app.resultsRenderer(results, opts)
	if err != nil {
		return fmt.Errorf("render results: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func writeJSON(cmd *cobra.Command, value any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
