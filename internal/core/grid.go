package core

// FloatGrid stores a 2D grid of float32 values in row-major order.
type FloatGrid struct {
	W, H int
	data []float32
}

// NewFloatGrid allocates a zeroed grid with the given dimensions.
func NewFloatGrid(w, h int) *FloatGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &FloatGrid{W: w, H: h, data: make([]float32, w*h)}
}

// Values exposes the backing slice so callers can read/write values directly.
func (g *FloatGrid) Values() []float32 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *FloatGrid) Index(x, y int) int { return y*g.W + x }

// At returns the value stored at (x, y).
func (g *FloatGrid) At(x, y int) float32 { return g.data[y*g.W+x] }

// Set stores v at (x, y).
func (g *FloatGrid) Set(x, y int, v float32) { g.data[y*g.W+x] = v }

// Fill sets every value to v.
func (g *FloatGrid) Fill(v float32) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Clear fills the grid with zeros.
func (g *FloatGrid) Clear() {
	clear(g.data)
}
