// Package metrics exports frame telemetry to Prometheus.
package metrics

import (
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"sparse-grids/internal/sparse"
)

const (
	errTypeLabel = "error_type"
	levelLabel   = "level"
)

var (
	frameDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sparse_frame_duration_seconds",
		Help:    "The time to commit and compose one frame.",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
	})

	committedCells = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sparse_committed_cells_total",
		Help: "The number of cells written by stroke commits.",
	})

	seededCells = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sparse_seeded_cells_total",
		Help: "The number of cells written by seed passes.",
	})

	nodeAllocations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sparse_node_allocations_total",
		Help: "The number of hierarchy nodes allocated.",
	}, []string{
		levelLabel,
	})

	frameErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sparse_frame_errors_total",
		Help: "The errors that caused a frame to be skipped.",
	}, []string{
		errTypeLabel,
	})
)

// Recorder forwards frame telemetry to the process-wide Prometheus registry.
type Recorder struct{}

func (Recorder) ObserveFrame(d time.Duration) {
	frameDuration.Observe(d.Seconds())
}

func (Recorder) AddCommitted(n int) {
	if n > 0 {
		committedCells.Add(float64(n))
	}
}

func (Recorder) AddSeeded(n int) {
	if n > 0 {
		seededCells.Add(float64(n))
	}
}

func (Recorder) NodeAllocated(level sparse.Level) {
	nodeAllocations.
		With(prometheus.Labels{levelLabel: level.String()}).
		Inc()
}

func (Recorder) FrameError(err error) {
	frameErrors.
		With(prometheus.Labels{errTypeLabel: errors.Type(err)}).
		Inc()
}
