package frame

import (
	"time"

	"sparse-grids/internal/sparse"
)

// Recorder receives frame telemetry.
type Recorder interface {
	ObserveFrame(d time.Duration)
	AddCommitted(n int)
	AddSeeded(n int)
	NodeAllocated(level sparse.Level)
	FrameError(err error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveFrame(time.Duration) {}
func (nopRecorder) AddCommitted(int)           {}
func (nopRecorder) AddSeeded(int)              {}
func (nopRecorder) NodeAllocated(sparse.Level) {}
func (nopRecorder) FrameError(error)           {}
