package application

import (
	"time"

	"github.com/ptlab/ptsim/internal/domain"
)

type ParseResult struct {
	Source      domain.SourceLog
	Set         domain.ExpressionSet
	Diagnostics domain.Diagnostics
}

type Result struct {
	SourcePath     string                     `json:"source_path"`
	ExpressionPath string                     `json:"expression_path,omitempty"`
	SimulationPath string                     `json:"simulation_path,omitempty"`
	RunID          string                     `json:"run_id,omitempty"`
	Expressions    int                        `json:"expressions"`
	Commands       map[domain.CommandType]int `json:"commands,omitempty"`
	Lifetimes      []domain.ChannelLifetime   `json:"lifetimes,omitempty"`
	Channels       []domain.SimulationChannel `json:"channels,omitempty"`
	Diagnostics    domain.Diagnostics         `json:"diagnostics"`
	Duration       time.Duration              `json:"duration_ns"`
	Error          string                     `json:"error,omitempty"`
	Err            error                      `json:"-"`
}

func (r Result) Failed() bool {
	return r.Err != nil
}

func (r Result) Unclassified() int {
	return len(r.Diagnostics.Unclassified)
}

func (r Result) Orphans() int {
	return len(r.Diagnostics.Orphans)
}
