package core

import "math"

// RigidTransform rotates a point about Pivot by Angle radians and then shifts
// it by Translate.
type RigidTransform struct {
	Angle     float64
	Pivot     Point
	Translate Point
}

// Identity returns a transform that leaves points unchanged.
func Identity() RigidTransform {
	return RigidTransform{Pivot: Point{X: 0.5, Y: 0.5}}
}

// Apply maps p through the transform.
func (t RigidTransform) Apply(p Point) Point {
	s, c := math.Sincos(t.Angle)
	dx, dy := p.X-t.Pivot.X, p.Y-t.Pivot.Y
	return Point{
		X: c*dx - s*dy + t.Pivot.X + t.Translate.X,
		Y: s*dx + c*dy + t.Pivot.Y + t.Translate.Y,
	}
}
