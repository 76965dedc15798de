package frame

import (
	"strconv"

	"sparse-grids/internal/field"
)

// Config controls stroke behaviour, seeding and composition.
type Config struct {
	Field field.Config

	// StrokeRadius is the brush radius in normalized grid units.
	StrokeRadius float64
	// StrokeAmount is the heat added per frame under a held press.
	StrokeAmount float64
	// Background is the brightness of pixels no cell scatters onto.
	Background float32

	// Shape names the registered seed predicate.
	Shape string
	// SeedOnReset runs a seed pass whenever the controller is reset.
	SeedOnReset bool
	// SpinStep is the phase advance of each animated reseed.
	SpinStep float64
	// SpinSeconds is the easing time of an animated reseed.
	SpinSeconds float32
	// Tick is the simulated time per frame in seconds.
	Tick float32
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Field:        field.DefaultConfig(),
		StrokeRadius: 0.03,
		StrokeAmount: 0.3,
		Background:   0.05,
		Shape:        "logo",
		SeedOnReset:  true,
		SpinStep:     0.5,
		SpinSeconds:  0.75,
		Tick:         1.0 / 60,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	c.Field = field.FromMap(cfg)
	if v, ok := cfg["stroke_radius"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.StrokeRadius = parsed
		}
	}
	if v, ok := cfg["stroke_amount"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.StrokeAmount = parsed
		}
	}
	if v, ok := cfg["background"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed >= 0 && parsed <= 1 {
			c.Background = float32(parsed)
		}
	}
	if v, ok := cfg["shape"]; ok && v != "" {
		c.Shape = v
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.SeedOnReset = parsed
		}
	}
	if v, ok := cfg["spin_step"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.SpinStep = parsed
		}
	}
	if v, ok := cfg["spin_seconds"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed > 0 {
			c.SpinSeconds = float32(parsed)
		}
	}
	if v, ok := cfg["tps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Tick = 1 / float32(parsed)
		}
	}
	return c
}
