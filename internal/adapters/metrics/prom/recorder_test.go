package prom

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/ptlab/ptsim/internal/domain"
	"github.com/ptlab/ptsim/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderObserveFile(t *testing.T) {
	reg := prometheus.NewRegistry()
	recorder, err := NewRecorder(reg)
	require.NoError(t, err)

	recorder.ObserveFile(ports.FileOutcome{
		Commands: map[domain.CommandType]int{
			domain.CommandWriteMessages: 3,
			domain.CommandReadMessages:  4,
		},
		Lifetimes:   2,
		Orphans:     1,
		FieldMisses: 5,
		Duration:    250 * time.Millisecond,
	})
	recorder.ObserveFile(ports.FileOutcome{Failed: true})

	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.files.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.files.WithLabelValues("failed")))
	assert.Equal(t, 3.0, testutil.ToFloat64(recorder.expressions.WithLabelValues(string(domain.CommandWriteMessages))))
	assert.Equal(t, 4.0, testutil.ToFloat64(recorder.expressions.WithLabelValues(string(domain.CommandReadMessages))))
	assert.Equal(t, 2.0, testutil.ToFloat64(recorder.lifetimes))
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.orphans))
	assert.Equal(t, 5.0, testutil.ToFloat64(recorder.fieldMisses))
	assert.Equal(t, 1, testutil.CollectAndCount(recorder.fileDuration))
}

func TestNewRecorderWithoutRegistry(t *testing.T) {
	recorder, err := NewRecorder(nil)
	require.NoError(t, err)

	recorder.ObserveFile(ports.FileOutcome{})
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.files.WithLabelValues("ok")))
}

func TestNewRecorderRejectsDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewRecorder(reg)
	require.NoError(t, err)

	_, err = NewRecorder(reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "register pipeline metric")
}
