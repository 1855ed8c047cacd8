package ports

import (
	"time"

	"github.com/ptlab/ptsim/internal/domain"
)

type FileOutcome struct {
	Failed      bool
	Commands    map[domain.CommandType]int
	Lifetimes   int
	Orphans     int
	FieldMisses int
	Duration    time.Duration
}

type Metrics interface {
	ObserveFile(outcome FileOutcome)
}

type NopMetrics struct{}

func (NopMetrics) ObserveFile(FileOutcome) {}
