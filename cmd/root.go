package cmd

import (
	"github.com/ptlab/ptsim/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	cfg := viper.New()
	app := &app{}

	rootCmd := &cobra.Command{
		Use:           "ptsim",
		Short:         "PassThru trace parser and simulation synthesizer",
		Long:          "ptsim parses J2534 PassThru shim traces into typed expressions (.ptExp) and synthesizes replayable simulation channels (.ptSim) from them.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.wire(cfg, cmd.ErrOrStderr())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("output-dir", "", "Directory for .ptExp and .ptSim artifacts")
	flags.String("format", "", "Simulation file encoding (toml or yaml)")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	_ = cfg.BindPFlag(config.OutputDirKey, flags.Lookup("output-dir"))
	_ = cfg.BindPFlag(config.SimulationFormatKey, flags.Lookup("format"))
	_ = cfg.BindPFlag(config.LogLevelKey, flags.Lookup("log-level"))

	rootCmd.AddCommand(
		newVersionCmd(),
		newParseCmd(app),
		newSimulateCmd(app),
		newBatchCmd(app),
		newInspectCmd(app),
	)

	return rootCmd
}
