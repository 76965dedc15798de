package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRigidTransformIdentity(t *testing.T) {
	p := Point{X: 0.2, Y: 0.9}
	got := Identity().Apply(p)
	require.InDelta(t, p.X, got.X, 1e-12)
	require.InDelta(t, p.Y, got.Y, 1e-12)
}

func TestRigidTransformRotatesAboutPivot(t *testing.T) {
	tf := Identity()
	tf.Angle = math.Pi / 2

	got := tf.Apply(Point{X: 1, Y: 0.5})
	require.InDelta(t, 0.5, got.X, 1e-12)
	require.InDelta(t, 1.0, got.Y, 1e-12)

	// The pivot is a fixed point of any rotation.
	require.InDelta(t, 0.5, tf.Apply(Point{X: 0.5, Y: 0.5}).X, 1e-12)

	tf.Translate = Point{X: 0.1, Y: -0.1}
	got = tf.Apply(Point{X: 0.5, Y: 0.5})
	require.InDelta(t, 0.6, got.X, 1e-12)
	require.InDelta(t, 0.4, got.Y, 1e-12)
}
