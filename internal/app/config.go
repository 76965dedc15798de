// Package app holds the process configuration and, in GUI builds, adapts the
// frame controller to an ebiten window.
package app

import (
	"reflect"
	"strconv"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"

	"sparse-grids/internal/frame"
	"sparse-grids/internal/sparse"
)

// ErrTypeInvalidConfig marks a rejected command-line or environment setting.
const ErrTypeInvalidConfig = "invalid_config"

// Keeps the cli package able to read the field names when the binary is
// obfuscated.
var _ = reflect.TypeOf(Config{})

// Config is the process configuration shared by the GUI and headless
// binaries. It is loaded by the go-tooling cli package from flags and
// SPARSE_* environment variables.
type Config struct {
	Size         int     `cli:""        env:"SPARSE_SIZE"          help:"Grid side length in cells, a multiple of 64."`
	Scale        int     `cli:""        env:"SPARSE_SCALE"         help:"Window pixels per image pixel."`
	TPS          int     `cli:""        env:"SPARSE_TPS"           help:"Frames per second."`
	StrokeRadius float64 `cli:""        env:"SPARSE_STROKE_RADIUS" help:"Brush radius in normalized grid units."`
	StrokeAmount float64 `cli:""        env:"SPARSE_STROKE_AMOUNT" help:"Heat added per frame under a held press."`
	Background   float64 `cli:""        env:"SPARSE_BACKGROUND"    help:"Brightness of gap pixels (0..1)."`
	NodeBudget   int64   `cli:""        env:"SPARSE_NODE_BUDGET"   help:"Maximum lazily allocated hierarchy nodes, 0 for unlimited."`
	Shape        string  `cli:""        env:"SPARSE_SHAPE"         help:"Seed shape (logo|disk|ring|empty|full)."`
	Seed         bool    `cli:""        env:"SPARSE_SEED"          help:"Seed the grid from the shape at startup and on reset."`
	Workers      int     `cli:""        env:"SPARSE_WORKERS"       help:"Worker goroutines for full-grid passes, 0 for one per CPU."`
	HUDWidth     int     `cli:",hidden" env:"SPARSE_HUD_WIDTH"     help:"Width of the parameter panel in pixels, 0 to hide it."`
	LogLevel     string  `cli:""        env:"SPARSE_LOG_LEVEL"     help:"Log level (debug|info|warning|error)."`
	LogIndent    bool    `cli:""        env:"SPARSE_LOG_INDENT"    help:"Indent logs."`
	MetricsAddr  string  `cli:""        env:"SPARSE_METRICS_ADDR"  help:"Admin listening address for /metrics, empty to disable."`
	SnapshotDir  string  `cli:""        env:"SPARSE_SNAPSHOT_DIR"  help:"Directory PNG snapshots are written to."`
	Help         bool    `cli:""        env:"-"                    help:"Show help."`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	fc := frame.DefaultConfig()
	return Config{
		Size:         fc.Field.Size,
		Scale:        1,
		TPS:          60,
		StrokeRadius: fc.StrokeRadius,
		StrokeAmount: fc.StrokeAmount,
		Background:   float64(fc.Background),
		Shape:        fc.Shape,
		Seed:         fc.SeedOnReset,
		HUDWidth:     240,
		LogLevel:     logs.InfoLevel.String(),
		SnapshotDir:  "snapshots",
	}
}

// Validate rejects settings the frame controller cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Size <= 0 || c.Size%sparse.OuterSpan != 0:
		return invalid("size", strconv.Itoa(c.Size))
	case c.Scale <= 0:
		return invalid("scale", strconv.Itoa(c.Scale))
	case c.TPS <= 0:
		return invalid("tps", strconv.Itoa(c.TPS))
	case c.StrokeRadius <= 0:
		return invalid("stroke-radius", strconv.FormatFloat(c.StrokeRadius, 'f', -1, 64))
	case c.Background < 0 || c.Background > 1:
		return invalid("background", strconv.FormatFloat(c.Background, 'f', -1, 64))
	case c.NodeBudget < 0:
		return invalid("node-budget", strconv.FormatInt(c.NodeBudget, 10))
	case c.Workers < 0:
		return invalid("workers", strconv.Itoa(c.Workers))
	}
	return nil
}

func invalid(key, value string) error {
	return errors.New("invalid configuration value").
		WithType(ErrTypeInvalidConfig).
		WithTag("key", key).
		WithTag("value", value)
}

// ToMap renders the simulation settings as the key/value pairs understood by
// frame.FromMap.
func (c Config) ToMap() map[string]string {
	return map[string]string{
		"n":             strconv.Itoa(c.Size),
		"node_budget":   strconv.FormatInt(c.NodeBudget, 10),
		"workers":       strconv.Itoa(c.Workers),
		"stroke_radius": strconv.FormatFloat(c.StrokeRadius, 'f', -1, 64),
		"stroke_amount": strconv.FormatFloat(c.StrokeAmount, 'f', -1, 64),
		"background":    strconv.FormatFloat(c.Background, 'f', -1, 64),
		"shape":         c.Shape,
		"seed":          strconv.FormatBool(c.Seed),
		"tps":           strconv.Itoa(c.TPS),
	}
}

// Frame returns the frame controller configuration.
func (c Config) Frame() frame.Config {
	return frame.FromMap(c.ToMap())
}
