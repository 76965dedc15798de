package core

// Size describes the dimensions of a grid.
type Size struct {
	W int
	H int
}

// Point is a position in normalized grid space, nominally [0,1]².
type Point struct {
	X, Y float64
}

// Input is the per-frame snapshot supplied by the windowing layer.
type Input struct {
	Pressed bool
	Cursor  Point
}

// Canvas defines the contract the GUI and headless drivers run against.
type Canvas interface {
	Name() string
	Size() Size
	Reset()
	Step(in Input) error
	Image() *FloatGrid
}

// Region classifies a point against a seed shape.
type Region uint8

const (
	// Inside marks points covered by the shape.
	Inside Region = iota
	// Outside marks points not covered by the shape.
	Outside
)

// Predicate classifies a normalized point against a shape.
type Predicate func(p Point) Region

// ShapeFactory constructs a Predicate using an optional configuration map.
type ShapeFactory func(cfg map[string]string) Predicate

var shapes = map[string]ShapeFactory{}

// RegisterShape adds a shape factory under the provided name.
func RegisterShape(name string, f ShapeFactory) {
	if name == "" || f == nil {
		return
	}
	shapes[name] = f
}

// Shapes exposes the registry of available seed shapes.
func Shapes() map[string]ShapeFactory {
	return shapes
}
