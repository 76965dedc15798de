package core

import "time"

// FixedStep gates work to a steady rate independent of the frame rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given rate per
// second. The first call to ShouldStep always fires.
func NewFixedStep(perSecond int) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetRate(perSecond)
	fs.accumulator = fs.step
	return fs
}

// SetRate changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetRate(perSecond int) {
	if perSecond <= 0 {
		perSecond = 60
	}
	f.step = time.Second / time.Duration(perSecond)
}

// ShouldStep reports whether enough time has accumulated for one more tick.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		if f.accumulator > f.step {
			// Drop backlog after a stall instead of firing repeatedly.
			f.accumulator = 0
		}
		return true
	}
	return false
}
