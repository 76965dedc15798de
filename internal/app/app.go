//go:build ebiten

package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"sparse-grids/internal/core"
	"sparse-grids/internal/frame"
	"sparse-grids/internal/render"
	"sparse-grids/internal/ui"
)

// hudRefreshRate is how often per second the HUD re-reads the hierarchy.
const hudRefreshRate = 6

// Game adapts a frame controller to the ebiten.Game interface.
type Game struct {
	ctx     context.Context
	ctrl    *frame.Controller
	painter *render.GridPainter
	hud     *ui.HUD
	hudGate *core.FixedStep

	scale       int
	hudWidth    int
	snapshotDir string
	runID       string
	snapshots   int
}

// New constructs a Game driving ctrl. The game terminates when ctx is done.
func New(ctx context.Context, ctrl *frame.Controller, cfg Config, runID string) *Game {
	size := ctrl.Size()
	hudWidth := max(cfg.HUDWidth, 0)
	g := &Game{
		ctx:         ctx,
		ctrl:        ctrl,
		painter:     render.NewGridPainter(size.W, size.H, render.White),
		hudGate:     core.NewFixedStep(hudRefreshRate),
		scale:       max(cfg.Scale, 1),
		hudWidth:    hudWidth,
		snapshotDir: cfg.SnapshotDir,
		runID:       runID,
	}
	if hudWidth > 0 {
		g.hud = ui.NewHUD(ctrl, hudWidth)
	}
	return g
}

// Update handles keys, polls the pointer and advances one frame.
func (g *Game) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.ctrl.TogglePause()
		logs.WithTag("paused", g.ctrl.Paused()).Info("stroke input toggled")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.ctrl.Reseed()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.ctrl.Reset()
		logs.WithTag("frame", g.ctrl.Frames()).Info("grid cleared")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.snapshot()
	}

	size := g.ctrl.Size()
	if g.hud != nil {
		g.hud.Update(size.W * g.scale)
	}

	// Skipped frames are already logged and counted by the controller.
	_ = g.ctrl.Step(g.input(size))

	if g.hud != nil && g.hudGate.ShouldStep() {
		g.hud.Refresh()
	}
	return nil
}

// input converts the window cursor into normalized grid coordinates. Presses
// over the HUD panel are ignored.
func (g *Game) input(size core.Size) core.Input {
	mx, my := ebiten.CursorPosition()
	w := float64(size.W * g.scale)
	h := float64(size.H * g.scale)
	in := core.Input{Cursor: core.Point{X: float64(mx) / w, Y: float64(my) / h}}
	inside := mx >= 0 && my >= 0 && float64(mx) < w && float64(my) < h
	in.Pressed = inside && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	return in
}

func (g *Game) snapshot() {
	g.snapshots++
	name := fmt.Sprintf("sparse-%s-%04d.png", g.runID, g.snapshots)
	path := filepath.Join(g.snapshotDir, name)
	if err := render.SavePNG(path, g.ctrl.Image(), render.White); err != nil {
		logs.Warn(errors.New("snapshot skipped").Wrap(err))
		return
	}
	logs.WithTag("path", path).
		WithTag("frame", g.ctrl.Frames()).
		Info("snapshot written")
}

// Draw renders the output image and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.ctrl.Image(), g.scale)
	if g.hud != nil {
		size := g.ctrl.Size()
		g.hud.Draw(screen, size.W*g.scale, size.H*g.scale)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.ctrl.Size()
	return s.W*g.scale + g.hudWidth, s.H * g.scale
}
