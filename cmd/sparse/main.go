//go:build ebiten

package main

import (
	"context"
	"os"
	"syscall"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/segmentio/encoding/json"

	"sparse-grids/internal/app"
	"sparse-grids/internal/frame"
	"sparse-grids/internal/metrics"
)

func main() {
	conf := app.DefaultConfig()

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Opens the sparse grid visualiser.").
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

	if err := conf.Validate(); err != nil {
		logs.Fatal(err)
	}

	runID := uuid.NewString()
	ctrl, err := frame.New(conf.Frame(), metrics.Recorder{})
	if err != nil {
		logs.Fatal(errors.New("creating frame controller failed").
			WithTag("run_id", runID).
			Wrap(err))
	}

	go metrics.Serve(ctx, conf.MetricsAddr)

	size := ctrl.Size()
	logs.WithTag("run_id", runID).
		WithTag("size", conf.Size).
		WithTag("image", size.W).
		WithTag("shape", conf.Shape).
		WithTag("log_level", conf.LogLevel).
		Info("starting sparse grid visualiser")

	ebiten.SetWindowTitle("sparse-grids")
	ebiten.SetTPS(conf.TPS)
	ebiten.SetWindowSize(size.W*conf.Scale+max(conf.HUDWidth, 0), size.H*conf.Scale)

	game := app.New(ctx, ctrl, conf, runID)
	if err := ebiten.RunGame(game); err != nil {
		logs.Fatal(errors.New("window loop failed").
			WithTag("run_id", runID).
			Wrap(err))
	}

	logs.WithTag("run_id", runID).
		WithTag("frames", ctrl.Frames()).
		Info("stopping sparse grid visualiser")
}
