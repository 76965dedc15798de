package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"sort"
	"sync"
	"syscall"
	"time"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/google/uuid"
	"github.com/segmentio/encoding/json"

	"sparse-grids/internal/core"
	"sparse-grids/internal/field"
	"sparse-grids/internal/frame"
	"sparse-grids/internal/render"
	"sparse-grids/internal/sparse"
)

var _ = reflect.TypeOf(config{})

type config struct {
	Size         int     `cli:"" env:"SPARSE_SIZE"          help:"Grid side length in cells, a multiple of 64."`
	Angles       int     `cli:"" env:"SPARSE_ANGLES"        help:"Number of seed rotations spread over a full turn."`
	Frames       int     `cli:"" env:"SPARSE_FRAMES"        help:"Frames of scripted stroke per rotation."`
	Shape        string  `cli:"" env:"SPARSE_SHAPE"         help:"Seed shape (logo|disk|ring|empty|full)."`
	StrokeRadius float64 `cli:"" env:"SPARSE_STROKE_RADIUS" help:"Brush radius in normalized grid units."`
	StrokeAmount float64 `cli:"" env:"SPARSE_STROKE_AMOUNT" help:"Heat added per frame under the scripted press."`
	NodeBudget   int64   `cli:"" env:"SPARSE_NODE_BUDGET"   help:"Maximum lazily allocated hierarchy nodes per render, 0 for unlimited."`
	Workers      int     `cli:"" env:"SPARSE_WORKERS"       help:"Renders running at once."`
	OutDir       string  `cli:"" env:"SPARSE_OUT_DIR"       help:"Directory for PNGs and stats.json."`
	LogLevel     string  `cli:"" env:"SPARSE_LOG_LEVEL"     help:"Log level (debug|info|warning|error)."`
	LogIndent    bool    `cli:"" env:"SPARSE_LOG_INDENT"    help:"Indent logs."`
	Help         bool    `cli:"" env:"-"                    help:"Show help."`
}

func defaultConfig() config {
	fc := frame.DefaultConfig()
	return config{
		Size:         fc.Field.Size,
		Angles:       12,
		Frames:       90,
		Shape:        fc.Shape,
		StrokeRadius: fc.StrokeRadius,
		StrokeAmount: fc.StrokeAmount,
		Workers:      runtime.NumCPU(),
		OutDir:       "snapshots",
		LogLevel:     logs.InfoLevel.String(),
	}
}

type job struct {
	index int
	angle float64
}

type result struct {
	Angle     float64      `json:"angle"`
	Image     string       `json:"image"`
	Frames    int          `json:"frames"`
	Skipped   int          `json:"skipped_frames"`
	Stats     sparse.Stats `json:"stats"`
	ElapsedMS float64      `json:"elapsed_ms"`
	Error     string       `json:"error,omitempty"`

	index int
}

type summary struct {
	RunID   string   `json:"run_id"`
	Size    int      `json:"size"`
	Shape   string   `json:"shape"`
	Elapsed string   `json:"elapsed"`
	Results []result `json:"results"`
}

func main() {
	conf := defaultConfig()

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Renders a scripted stroke over rotated seeds without a window.").
		Options(&conf)
	cli.Load()

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}
	errors.Encoder = json.Marshal

	runID := uuid.NewString()
	sum, err := run(ctx, conf, runID)
	if err != nil {
		logs.Fatal(errors.New("snapshot run failed").
			WithTag("run_id", runID).
			Wrap(err))
	}

	logs.WithTag("run_id", runID).
		WithTag("renders", len(sum.Results)).
		WithTag("elapsed", sum.Elapsed).
		WithTag("out_dir", conf.OutDir).
		Info("snapshot run done")
}

func validate(conf config) error {
	var key string
	var value any
	switch {
	case conf.Size <= 0 || conf.Size%sparse.OuterSpan != 0:
		key, value = "size", conf.Size
	case conf.Angles <= 0:
		key, value = "angles", conf.Angles
	case conf.Frames <= 0:
		key, value = "frames", conf.Frames
	case conf.StrokeRadius <= 0:
		key, value = "stroke-radius", conf.StrokeRadius
	case conf.NodeBudget < 0:
		key, value = "node-budget", conf.NodeBudget
	default:
		return nil
	}
	return errors.New("invalid configuration value").
		WithType("invalid_config").
		WithTag("key", key).
		WithTag("value", value)
}

// run renders one image per seed angle on a pool of workers and writes the
// PNGs and a stats.json summary to conf.OutDir.
func run(ctx context.Context, conf config, runID string) (summary, error) {
	if err := validate(conf); err != nil {
		return summary{}, err
	}
	if err := os.MkdirAll(conf.OutDir, 0o755); err != nil {
		return summary{}, errors.New("creating output directory failed").
			WithTag("dir", conf.OutDir).
			Wrap(err)
	}

	workers := max(conf.Workers, 1)
	logs.WithTag("run_id", runID).
		WithTag("angles", conf.Angles).
		WithTag("frames", conf.Frames).
		WithTag("workers", workers).
		Info("starting snapshot run")

	jobs := make(chan job)
	results := make(chan result)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results <- renderAngle(conf, j)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for k := 0; k < conf.Angles; k++ {
			select {
			case jobs <- job{index: k, angle: 2 * math.Pi * float64(k) / float64(conf.Angles)}:
			case <-ctx.Done():
				return
			}
		}
	}()

	start := time.Now()
	sum := summary{RunID: runID, Size: conf.Size, Shape: conf.Shape}
	for res := range results {
		logs.WithTag("run_id", runID).
			WithTag("angle", res.Angle).
			WithTag("skipped", res.Skipped).
			WithTag("inner", res.Stats.Inner).
			Debug("render done")
		sum.Results = append(sum.Results, res)
	}
	sort.Slice(sum.Results, func(i, j int) bool { return sum.Results[i].index < sum.Results[j].index })
	sum.Elapsed = time.Since(start).Round(time.Millisecond).String()

	if err := ctx.Err(); err != nil {
		return sum, err
	}
	return sum, writeSummary(filepath.Join(conf.OutDir, "stats.json"), sum)
}

// renderAngle seeds a fresh controller at one angle, replays the scripted stroke
// and saves the final image.
func renderAngle(conf config, j job) result {
	start := time.Now()
	res := result{Angle: j.angle, Frames: conf.Frames, index: j.index}

	fc := frame.DefaultConfig()
	fc.Field = field.Config{Size: conf.Size, NodeBudget: conf.NodeBudget, Workers: 1}
	fc.Shape = conf.Shape
	fc.SeedOnReset = false
	fc.StrokeRadius = conf.StrokeRadius
	fc.StrokeAmount = conf.StrokeAmount

	ctrl, err := frame.New(fc, nil)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	ctrl.SetSeedAngle(j.angle)
	if err := ctrl.Seed(); err != nil {
		res.Error = err.Error()
	}
	for f := 0; f < conf.Frames; f++ {
		in := core.Input{Pressed: true, Cursor: strokePath(f, conf.Frames)}
		if err := ctrl.Step(in); err != nil {
			res.Skipped++
		}
	}
	// A final compose covers runs whose last frames were skipped.
	if err := ctrl.Compose(); err != nil && res.Error == "" {
		res.Error = err.Error()
	}

	res.Image = fmt.Sprintf("angle-%03d.png", j.index)
	if err := render.SavePNG(filepath.Join(conf.OutDir, res.Image), ctrl.Image(), render.White); err != nil && res.Error == "" {
		res.Error = err.Error()
	}
	res.Stats = ctrl.Field().Hierarchy().Stats()
	res.ElapsedMS = float64(time.Since(start).Microseconds()) / 1000
	return res
}

// strokePath sweeps the pointer along a shallow S from the top-left to the
// bottom-right quarter of the grid.
func strokePath(f, frames int) core.Point {
	t := 0.0
	if frames > 1 {
		t = float64(f) / float64(frames-1)
	}
	return core.Point{
		X: 0.15 + 0.7*t,
		Y: 0.2 + 0.6*t + 0.08*math.Sin(2*math.Pi*t),
	}
}

func writeSummary(path string, sum summary) error {
	b, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		return errors.New("encoding stats failed").Wrap(err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return errors.New("writing stats failed").
			WithTag("path", path).
			Wrap(err)
	}
	return nil
}
