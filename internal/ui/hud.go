//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"sparse-grids/internal/core"
)

// HUD renders the parameter panel to the right of the grid view.
type HUD struct {
	canvas     core.Canvas
	width      int
	panel      *ebiten.Image
	lastHeight int
	face       text.Face
	title      string

	snapshot core.ParameterSnapshot
	lines    []string
	controls []controlState
	shown    map[string]bool
	setter   core.FloatParameterSetter
	offsetX  int

	pixel *ebiten.Image
}

type controlState struct {
	control  core.ParameterControl
	value    float64
	text     string
	hasValue bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// NewHUD constructs a HUD for the canvas. A non-positive width disables it.
func NewHUD(canvas core.Canvas, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{
		canvas: canvas,
		width:  width,
		face:   text.NewGoXFace(basicfont.Face7x13),
		title:  strings.ToUpper(canvas.Name()),
		shown:  map[string]bool{},
	}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if provider, ok := canvas.(core.ParameterControlsProvider); ok {
		for _, ctrl := range provider.ParameterControls() {
			h.controls = append(h.controls, controlState{control: ctrl, text: "--"})
			h.shown[ctrl.Key] = true
		}
		h.layoutControls()
	}
	if setter, ok := canvas.(core.FloatParameterSetter); ok {
		h.setter = setter
	}
	return h
}

// Refresh pulls a new parameter snapshot from the canvas.
func (h *HUD) Refresh() {
	if h == nil {
		return
	}
	provider, ok := h.canvas.(core.ParameterProvider)
	if !ok {
		h.snapshot = core.ParameterSnapshot{}
		h.lines = nil
		return
	}
	h.snapshot = provider.Parameters()
	h.lines = parameterLines(h.snapshot, h.shown)
	for i := range h.controls {
		state := &h.controls[i]
		p, ok := h.snapshot.Lookup(state.control.Key)
		if !ok {
			state.hasValue = false
			state.text = "--"
			continue
		}
		v, err := strconv.ParseFloat(p.Value, 64)
		if err != nil {
			state.hasValue = false
			state.text = "--"
			continue
		}
		state.value = v
		state.text = formatFloat(state.control, v)
		state.hasValue = true
	}
}

// Update handles clicks on the +/- buttons. panelOffsetX is the window x
// where the panel starts.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil || len(h.controls) == 0 || h.setter == nil {
		return
	}
	h.offsetX = panelOffsetX
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.offsetX {
		return
	}
	px := mx - h.offsetX
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		switch {
		case pointInRect(px, my, state.minusRect):
			h.apply(state, -1)
			return
		case pointInRect(px, my, state.plusRect):
			h.apply(state, 1)
			return
		}
	}
}

func (h *HUD) apply(state *controlState, direction int) {
	target, ok := adjust(state.control, state.value, direction)
	if !ok {
		return
	}
	if h.setter.SetFloatParameter(state.control.Key, target) {
		state.value = target
		state.text = formatFloat(state.control, target)
	}
}

// Draw paints the panel at offsetX, matching the grid view height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	h.drawText(h.title, panelPadding, panelPadding, titleColor)
	for i := range h.controls {
		h.drawControl(&h.controls[i])
	}
	y := controlsTop + len(h.controls)*lineHeight + panelPadding
	for _, line := range h.lines {
		h.drawText(line, panelPadding, y, infoColor)
		y += infoLineHeight
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawControl(state *controlState) {
	labelY := state.top + (lineHeight-infoLineHeight)/2
	h.drawText(state.control.Label, panelPadding, labelY, labelColor)

	valueColor := labelColor
	if !state.hasValue {
		valueColor = infoColor
	}
	w, _ := text.Measure(state.text, h.face, 0)
	h.drawText(state.text, state.minusRect.Min.X-buttonGap-int(w), labelY, valueColor)

	_, canDec := adjust(state.control, state.value, -1)
	_, canInc := adjust(state.control, state.value, 1)
	h.drawButton(state.minusRect, "-", state.hasValue && canDec)
	h.drawButton(state.plusRect, "+", state.hasValue && canInc)
}

func (h *HUD) drawText(s string, x, y int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(h.panel, s, h.face, op)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	w, ht := text.Measure(label, h.face, 0)
	x := rect.Min.X + (rect.Dx()-int(w))/2
	y := rect.Min.Y + (rect.Dy()-int(ht))/2
	h.drawText(label, x, y, fg)
}

func (h *HUD) layoutControls() {
	if h.width <= 0 {
		return
	}
	for i := range h.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plus := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = top
		h.controls[i].minusRect = minus
		h.controls[i].plusRect = plus
	}
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return image.Pt(x, y).In(rect)
}

var (
	titleColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	infoColor  = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

const (
	panelPadding   = 12
	lineHeight     = 36
	infoLineHeight = 16
	buttonSize     = 24
	buttonGap      = 6
	controlsTop    = panelPadding + 28
)
