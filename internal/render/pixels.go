// Package render turns brightness grids into RGBA pixels.
package render

import (
	"github.com/gogpu/gg"

	"sparse-grids/internal/core"
)

// Tint colours brightness: a cell of brightness v is drawn as v*Tint with
// full alpha.
type Tint struct {
	R, G, B float64
}

// White draws brightness as plain grey.
var White = Tint{R: 1, G: 1, B: 1}

// fillGray writes every grid value into pm as an opaque tinted grey. Values
// outside [0,1] saturate.
func fillGray(pm *gg.Pixmap, g *core.FloatGrid, tint Tint) {
	if pm.Width() != g.W || pm.Height() != g.H {
		return
	}
	values := g.Values()
	for y := 0; y < g.H; y++ {
		row := y * g.W
		for x := 0; x < g.W; x++ {
			v := float64(values[row+x])
			pm.SetPixel(x, y, gg.RGB(v*tint.R, v*tint.G, v*tint.B))
		}
	}
}

// Rasterize returns a new pixmap holding g.
func Rasterize(g *core.FloatGrid, tint Tint) *gg.Pixmap {
	pm := gg.NewPixmap(g.W, g.H)
	fillGray(pm, g, tint)
	return pm
}
