// Package prom records pipeline metrics with the Prometheus client.
package prom

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/ptlab/ptsim/internal/ports"
)

const namespace = "ptsim"

// Recorder implements ports.Metrics.
type Recorder struct {
	files        *prometheus.CounterVec
	expressions  *prometheus.CounterVec
	lifetimes    prometheus.Counter
	orphans      prometheus.Counter
	fieldMisses  prometheus.Counter
	fileDuration prometheus.Histogram
}

var _ ports.Metrics = (*Recorder)(nil)

func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		files: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "pipeline",
				Name:      "files_total",
				Help:      "Trace files processed, by outcome",
			},
			[]string{"status"},
		),
		expressions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "pipeline",
				Name:      "expressions_total",
				Help:      "Expressions built, by command type",
			},
			[]string{"command"},
		),
		lifetimes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "lifetimes_total",
			Help:      "Channel lifetimes correlated",
		}),
		orphans: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "orphan_expressions_total",
			Help:      "Message expressions attached to the orphan lifetime",
		}),
		fieldMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "field_misses_total",
			Help:      "Fields present in the trace but not parsable",
		}),
		fileDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "file_duration_seconds",
			Help:      "Wall time of one file's pipeline",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	if reg == nil {
		return r, nil
	}

	for _, c := range []prometheus.Collector{r.files, r.expressions, r.lifetimes, r.orphans, r.fieldMisses, r.fileDuration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register pipeline metric: %w", err)
		}
	}

	return r, nil
}

func (r *Recorder) ObserveFile(outcome ports.FileOutcome) {
	status := "ok"
	if outcome.Failed {
		status = "failed"
	}
	r.files.WithLabelValues(status).Inc()

	for command, count := range outcome.Commands {
		r.expressions.WithLabelValues(string(command)).Add(float64(count))
	}
	r.lifetimes.Add(float64(outcome.Lifetimes))
	r.orphans.Add(float64(outcome.Orphans))
	r.fieldMisses.Add(float64(outcome.FieldMisses))
	r.fileDuration.Observe(outcome.Duration.Seconds())
}
