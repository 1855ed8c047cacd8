package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	promadapter "github.com/ptlab/ptsim/internal/adapters/metrics/prom"
	"github.com/ptlab/ptsim/internal/adapters/render/summary"
	"github.com/ptlab/ptsim/internal/adapters/repo/simfile"
	sourcefile "github.com/ptlab/ptsim/internal/adapters/source/file"
	storefile "github.com/ptlab/ptsim/internal/adapters/store/file"
	"github.com/ptlab/ptsim/internal/application"
	"github.com/ptlab/ptsim/internal/config"
	"github.com/ptlab/ptsim/internal/domain"
	"github.com/spf13/viper"
)

type app struct {
	service          *application.Service
	config           config.Config
	registry         *prometheus.Registry
	resultsRenderer  func([]application.Result, summary.RenderOptions) (string, error)
	simulationRender func(domain.SimulationFile, summary.RenderOptions) (string, error)
}

func (a *app) wire(cfg *viper.Viper, logOutput io.Writer) error {
	loaded, err := config.Load(cfg)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	format, err := simfile.ParseFormat(loaded.SimulationFormat)
	if err != nil {
		return err
	}

	simulations, err := simfile.NewRepository(format)
	if err != nil {
		return fmt.Errorf("wire simulation repository: %w", err)
	}

	registry := prometheus.NewRegistry()
	recorder, err := promadapter.NewRecorder(registry)
	if err != nil {
		return fmt.Errorf("wire metrics: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{Level: loaded.LogLevel}))

	a.config = loaded
	a.registry = registry
	a.service = application.NewService(
		sourcefile.NewSource(),
		storefile.NewStore(),
		simulations,
		application.WithMetrics(recorder),
		application.WithLogger(logger),
	)
	a.resultsRenderer = summary.RenderResults
	a.simulationRender = summary.RenderSimulation

	return nil
}
