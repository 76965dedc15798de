package shape

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"sparse-grids/internal/core"
)

// Spin animates the seed rotation. Every Start advances a phase t by a fixed
// step and eases the angle from its current value to sin(t).
type Spin struct {
	phase    float64
	step     float64
	duration float32
	angle    float64
	tween    *gween.Tween
}

// NewSpin returns a Spin at angle zero. step is the phase advance per Start
// and duration the easing time in seconds.
func NewSpin(step float64, duration float32) *Spin {
	if duration <= 0 {
		duration = 1
	}
	return &Spin{step: step, duration: duration}
}

// Start begins easing toward the next angle. Starting while a tween is running
// retargets from the current angle.
func (s *Spin) Start() {
	s.phase += s.step
	s.tween = gween.New(float32(s.angle), float32(math.Sin(s.phase)), s.duration, ease.InOutSine)
}

// Running reports whether a tween is in progress.
func (s *Spin) Running() bool { return s.tween != nil }

// Update advances the tween by dt seconds and returns the current angle.
func (s *Spin) Update(dt float32) float64 {
	if s.tween == nil {
		return s.angle
	}
	v, done := s.tween.Update(dt)
	s.angle = float64(v)
	if done {
		s.tween = nil
	}
	return s.angle
}

// Set stops any running tween and jumps to angle.
func (s *Spin) Set(angle float64) {
	s.tween = nil
	s.angle = angle
}

// Angle returns the current rotation in radians.
func (s *Spin) Angle() float64 { return s.angle }

// Transform returns the rigid transform for the current angle, pivoting on
// the grid centre.
func (s *Spin) Transform() core.RigidTransform {
	tf := core.Identity()
	tf.Angle = s.angle
	return tf
}
