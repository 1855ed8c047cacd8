package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ptlab/ptsim/internal/correlate"
	"github.com/ptlab/ptsim/internal/domain"
	"github.com/ptlab/ptsim/internal/expression"
	"github.com/ptlab/ptsim/internal/ports"
	"github.com/ptlab/ptsim/internal/synth"
)

type Service struct {
	source      ports.LogSource
	expressions ports.ExpressionStore
	simulations ports.SimulationRepository
	metrics     ports.Metrics
	clock       ports.Clock
	ids         ports.IDGenerator
	logger      *slog.Logger
}

type Option func(*Service)

func WithMetrics(metrics ports.Metrics) Option {
	return func(s *Service) {
		if metrics != nil {
			s.metrics = metrics
		}
	}
}

func WithClock(clock ports.Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func WithIDGenerator(ids ports.IDGenerator) Option {
	return func(s *Service) {
		if ids != nil {
			s.ids = ids
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewService(source ports.LogSource, expressions ports.ExpressionStore, simulations ports.SimulationRepository, opts ...Option) *Service {
	s := &Service{
		source:      source,
		expressions: expressions,
		simulations: simulations,
		metrics:     ports.NopMetrics{},
		clock:       ports.SystemClock{},
		ids:         ports.UUIDGenerator{},
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ParseFile reads one trace and builds its expression set.
func (s *Service) ParseFile(ctx context.Context, path string) (ParseResult, error) {
	source, err := s.source.Read(ctx, path)
	if err != nil {
		return ParseResult{}, fmt.Errorf("read source log: %w", err)
	}

	set, diagnostics := expression.Parse(source.Name, source.Text)
	s.warnDiagnostics(ctx, source.Path, diagnostics)

	return ParseResult{Source: source, Set: set, Diagnostics: diagnostics}, nil
}

// ExportExpressions parses a trace and writes only its .ptExp exchange file.
func (s *Service) ExportExpressions(ctx context.Context, cmd ProcessCommand) (Result, error) {
	started := s.clock.Now()
	result := Result{SourcePath: cmd.SourcePath}

	parsed, err := s.ParseFile(ctx, cmd.SourcePath)
	if err != nil {
		return s.fail(result, started, err)
	}
	result.Expressions = parsed.Set.Len()
	result.Commands = parsed.Set.CountByCommand()
	result.Diagnostics = parsed.Diagnostics

	result.ExpressionPath, err = s.expressions.Save(ctx, cmd.OutputDir, parsed.Source.Name, parsed.Set)
	if err != nil {
		return s.fail(result, started, fmt.Errorf("save expressions: %w", err))
	}

	return s.succeed(result, started), nil
}

// ProcessFile runs the whole pipeline for one trace and writes both the
// expression exchange file and the simulation file.
func (s *Service) ProcessFile(ctx context.Context, cmd ProcessCommand) (Result, error) {
	started := s.clock.Now()
	result := Result{SourcePath: cmd.SourcePath, RunID: cmd.RunID}
	if result.RunID == "" {
		result.RunID = s.ids.NewID()
	}

	parsed, err := s.ParseFile(ctx, cmd.SourcePath)
	if err != nil {
		return s.fail(result, started, err)
	}

	lifetimes := correlate.Lifetimes(parsed.Set)
	channels := synth.Channels(parsed.Set, lifetimes)
	parsed.Diagnostics.Orphans = correlate.Orphans(lifetimes)
	if orphans := parsed.Diagnostics.Orphans; len(orphans) > 0 {
		s.logger.WarnContext(ctx, "message expressions outside any channel lifetime",
			"source", parsed.Source.Path, "count", len(orphans), "first_index", orphans[0])
	}

	result.Expressions = parsed.Set.Len()
	result.Commands = parsed.Set.CountByCommand()
	result.Lifetimes = lifetimes
	result.Channels = channels
	result.Diagnostics = parsed.Diagnostics

	result.ExpressionPath, err = s.expressions.Save(ctx, cmd.OutputDir, parsed.Source.Name, parsed.Set)
	if err != nil {
		return s.fail(result, started, fmt.Errorf("save expressions: %w", err))
	}

	simulation := domain.SimulationFile{
		Source:       parsed.Source.Name,
		SourceDigest: parsed.Source.Digest,
		RunID:        result.RunID,
		GeneratedAt:  s.clock.Now(),
		Channels:     channels,
	}
	result.SimulationPath, err = s.simulations.Save(ctx, cmd.OutputDir, parsed.Source.Name, simulation)
	if err != nil {
		return s.fail(result, started, fmt.Errorf("save simulation: %w", err))
	}

	s.logger.InfoContext(ctx, "simulation synthesized",
		"source", parsed.Source.Path,
		"expressions", result.Expressions,
		"channels", len(channels),
		"simulation", result.SimulationPath)

	return s.succeed(result, started), nil
}

func (s *Service) LoadSimulation(ctx context.Context, path string) (domain.SimulationFile, error) {
	file, err := s.simulations.Load(ctx, path)
	if err != nil {
		return domain.SimulationFile{}, fmt.Errorf("load simulation: %w", err)
	}
	return file, nil
}

func (s *Service) LoadExpressions(ctx context.Context, path string) (domain.ExpressionSet, error) {
	set, err := s.expressions.Load(ctx, path)
	if err != nil {
		return domain.ExpressionSet{}, fmt.Errorf("load expressions: %w", err)
	}
	return set, nil
}

// SimulateExpressions reloads a .ptExp file and synthesizes its channels in
// memory. Nothing is written.
func (s *Service) SimulateExpressions(ctx context.Context, path string) (domain.SimulationFile, error) {
	set, err := s.LoadExpressions(ctx, path)
	if err != nil {
		return domain.SimulationFile{}, err
	}

	return domain.SimulationFile{
		Source:      set.Source(),
		GeneratedAt: s.clock.Now(),
		Channels:    synth.Channels(set, correlate.Lifetimes(set)),
	}, nil
}

func (s *Service) warnDiagnostics(ctx context.Context, source string, diagnostics domain.Diagnostics) {
	if n := len(diagnostics.Unclassified); n > 0 {
		s.logger.WarnContext(ctx, "unresolvable call headings",
			"source", source, "count", n, "first_index", diagnostics.Unclassified[0])
	}
	for _, miss := range diagnostics.FieldMisses {
		s.logger.WarnContext(ctx, "unparsable field left out",
			"source", source, "index", miss.Index, "field", string(miss.Field), "raw", miss.Raw)
	}
}

func (s *Service) fail(result Result, started time.Time, err error) (Result, error) {
	result.Err = err
	result.Error = err.Error()
	result.Duration = s.clock.Now().Sub(started)
	s.metrics.ObserveFile(ports.FileOutcome{Failed: true, Duration: result.Duration})
	s.logger.Error("pipeline failed", "source", result.SourcePath, "error", err)
	return result, err
}

func (s *Service) succeed(result Result, started time.Time) Result {
	result.Duration = s.clock.Now().Sub(started)
	s.metrics.ObserveFile(ports.FileOutcome{
		Commands:    result.Commands,
		Lifetimes:   len(result.Lifetimes),
		Orphans:     len(result.Diagnostics.Orphans),
		FieldMisses: len(result.Diagnostics.FieldMisses),
		Duration:    result.Duration,
	})
	return result
}
