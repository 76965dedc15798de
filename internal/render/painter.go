//go:build ebiten

package render

import (
	"github.com/gogpu/gg"
	"github.com/hajimehoshi/ebiten/v2"

	"sparse-grids/internal/core"
)

// GridPainter keeps one ebiten image in sync with a brightness grid.
type GridPainter struct {
	w, h int
	tint Tint
	pm   *gg.Pixmap
	img  *ebiten.Image
}

// NewGridPainter allocates a painter for a w*h grid.
func NewGridPainter(w, h int, tint Tint) *GridPainter {
	return &GridPainter{
		w:    w,
		h:    h,
		tint: tint,
		pm:   gg.NewPixmap(w, h),
		img:  ebiten.NewImage(w, h),
	}
}

// Blit uploads g and draws it onto dst scaled by scale.
func (gp *GridPainter) Blit(dst *ebiten.Image, g *core.FloatGrid, scale int) {
	if g.W != gp.w || g.H != gp.h {
		return
	}
	fillGray(gp.pm, g, gp.tint)
	gp.img.WritePixels(gp.pm.Data())

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
