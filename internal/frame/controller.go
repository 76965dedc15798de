// Package frame orchestrates one visualisation frame: stroke accumulation,
// commit into the activation field, and composition of the gapped output
// image from ancestor activity.
package frame

import (
	"strconv"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"

	"sparse-grids/internal/core"
	"sparse-grids/internal/field"
	"sparse-grids/internal/parallel"
	"sparse-grids/internal/shape"
	"sparse-grids/internal/sparse"
)

// Parameter keys exposed to the HUD.
const (
	ParamStrokeRadius = "stroke_radius"
	ParamStrokeAmount = "stroke_amount"
)

// Controller owns the activation field and the output image.
type Controller struct {
	cfg   Config
	rec   Recorder
	field *field.Field
	image *core.FloatGrid
	pred  core.Predicate
	spin  *shape.Spin

	paused bool
	frames uint64
	last   time.Duration
}

// New builds a controller and runs the initial reset. rec may be nil.
func New(cfg Config, rec Recorder) (*Controller, error) {
	if rec == nil {
		rec = nopRecorder{}
	}
	pred, err := shape.Lookup(cfg.Shape, nil)
	if err != nil {
		return nil, err
	}
	f, err := field.New(cfg.Field, rec.NodeAllocated)
	if err != nil {
		return nil, err
	}
	size := sparse.ImageSize(cfg.Field.Size)
	c := &Controller{
		cfg:   cfg,
		rec:   rec,
		field: f,
		image: core.NewFloatGrid(size, size),
		pred:  pred,
		spin:  shape.NewSpin(cfg.SpinStep, cfg.SpinSeconds),
	}
	c.Reset()
	return c, nil
}

// Name returns the canvas identifier.
func (c *Controller) Name() string { return "sparse-grids" }

// Size reports the output image dimensions.
func (c *Controller) Size() core.Size {
	return core.Size{W: c.image.W, H: c.image.H}
}

// Image exposes the output brightness buffer.
func (c *Controller) Image() *core.FloatGrid { return c.image }

// Field exposes the activation field.
func (c *Controller) Field() *field.Field { return c.field }

// Frames returns the number of completed Step calls.
func (c *Controller) Frames() uint64 { return c.frames }

// Paused reports whether pointer strokes are ignored.
func (c *Controller) Paused() bool { return c.paused }

// TogglePause switches stroke accumulation off or back on. Commit and
// composition keep running.
func (c *Controller) TogglePause() { c.paused = !c.paused }

// Reset clears the hierarchy, repaints the background and reseeds when
// configured to.
func (c *Controller) Reset() {
	c.field.Reset()
	c.image.Fill(c.cfg.Background)
	if c.cfg.SeedOnReset {
		if err := c.Seed(); err != nil {
			c.rec.FrameError(err)
			logs.Warn(errors.New("seeding after reset failed").Wrap(err))
		}
	}
}

// Seed runs one seed pass with the current rotation.
func (c *Controller) Seed() error {
	n, err := c.field.SeedFromShape(c.pred, c.spin.Transform())
	c.rec.AddSeeded(n)
	if err != nil {
		return errors.New("seed pass failed").
			WithType(errors.Type(err)).
			WithTag("shape", c.cfg.Shape).
			WithTag("seeded", n).
			Wrap(err)
	}
	logs.WithTag("shape", c.cfg.Shape).
		WithTag("angle", c.spin.Angle()).
		WithTag("seeded", n).
		Debug("seed pass done")
	return nil
}

// SetSeedAngle fixes the rotation used by the next seed pass and cancels a
// running reseed animation.
func (c *Controller) SetSeedAngle(angle float64) { c.spin.Set(angle) }

// Reseed starts an animated seed: every following frame seeds with the
// easing rotation until it settles.
func (c *Controller) Reseed() { c.spin.Start() }

// Step runs one frame. A failed commit or seed skips composition for this
// frame; the error is logged and returned, keeping the cause's type, so
// drivers can count it.
func (c *Controller) Step(in core.Input) error {
	start := time.Now()
	c.frames++

	if err := c.step(in); err != nil {
		c.rec.FrameError(err)
		err = errors.New("frame skipped").
			WithType(errors.Type(err)).
			WithTag("frame", c.frames).
			Wrap(err)
		logs.Warn(err)
		return err
	}

	c.last = time.Since(start)
	c.rec.ObserveFrame(c.last)
	return nil
}

// step commits the stroke even when the seed pass fails; the first failure
// is returned and composition is skipped.
func (c *Controller) step(in core.Input) error {
	var seedErr error
	if c.spin.Running() {
		c.spin.Update(c.cfg.Tick)
		seedErr = c.Seed()
	}

	if in.Pressed && !c.paused {
		c.field.AccumulateStroke(in.Cursor, c.cfg.StrokeRadius, c.cfg.StrokeAmount)
	}

	committed, err := c.field.CommitStroke()
	c.rec.AddCommitted(committed)
	if seedErr != nil {
		return seedErr
	}
	if err != nil {
		return err
	}
	return c.Compose()
}

// Compose writes 1 - depth/4 for every cell at its scattered image position,
// where depth counts the outer and inner ancestors visible through the
// depth-hint slot.
func (c *Controller) Compose() error {
	n := c.field.Size()
	hint := c.field.DepthHint()
	img := c.image
	return parallel.Rows(n, c.cfg.Field.Workers, func(lo, hi int) error {
		for j := lo; j < hi; j++ {
			y := sparse.Scatter(j)
			for i := 0; i < n; i++ {
				depth := 0
				if hint.IsLevelActive(sparse.LevelOuter, i, j) {
					depth++
				}
				if hint.IsLevelActive(sparse.LevelInner, i, j) {
					depth++
				}
				img.Set(sparse.Scatter(i), y, 1-float32(depth)/4)
			}
		}
		return nil
	})
}

// Parameters reports hierarchy occupancy and the stroke settings.
func (c *Controller) Parameters() core.ParameterSnapshot {
	st := c.field.Hierarchy().Stats()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Hierarchy",
			Params: []core.Parameter{
				int64Param("outer", "Outer blocks", st.Outer),
				int64Param("inner", "Inner blocks", st.Inner),
				int64Param("dense", "Dense blocks", st.Dense),
				int64Param("leaves", "Leaves", st.Leaves),
				int64Param("occupied", "Occupied", st.Occupied[sparse.SlotActive]),
			},
		},
		{
			Name: "Stroke",
			Params: []core.Parameter{
				floatParam(ParamStrokeRadius, "Radius", c.cfg.StrokeRadius),
				floatParam(ParamStrokeAmount, "Amount", c.cfg.StrokeAmount),
			},
		},
		{
			Name: "Frame",
			Params: []core.Parameter{
				int64Param("frames", "Frames", int64(c.frames)),
				floatParam("frame_ms", "Frame ms", float64(c.last.Microseconds())/1000),
				floatParam("angle", "Seed angle", c.spin.Angle()),
			},
		},
	}}
}

// ParameterControls lists the HUD-adjustable settings.
func (c *Controller) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: ParamStrokeRadius, Label: "Radius", Step: 0.005, Min: 0.005, Max: 0.25},
		{Key: ParamStrokeAmount, Label: "Amount", Step: 0.05, Min: 0.05, Max: 2},
	}
}

// SetFloatParameter updates a stroke setting, clamped to its control range.
func (c *Controller) SetFloatParameter(key string, value float64) bool {
	for _, ctrl := range c.ParameterControls() {
		if ctrl.Key != key {
			continue
		}
		value = ctrl.Clamp(value)
		switch key {
		case ParamStrokeRadius:
			c.cfg.StrokeRadius = value
		case ParamStrokeAmount:
			c.cfg.StrokeAmount = value
		}
		return true
	}
	return false
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
