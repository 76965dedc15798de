package shape

import (
	"math"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/stretchr/testify/require"

	"sparse-grids/internal/core"
)

func TestLogoRegions(t *testing.T) {
	cases := []struct {
		name string
		p    core.Point
		want core.Region
	}{
		{"corner beyond rim", core.Point{X: 0.01, Y: 0.01}, core.Inside},
		{"ring band", core.Point{X: 0.5, Y: 0.5 + 0.5*logoScale}, core.Outside},
		{"low eye", core.Point{X: 0.5, Y: 0.5 - 0.25*logoScale}, core.Outside},
		{"high eye", core.Point{X: 0.5, Y: 0.5 + 0.25*logoScale}, core.Inside},
		{"low lobe", core.Point{X: 0.5 + 0.15*logoScale, Y: 0.5 - 0.25*logoScale}, core.Inside},
		{"high lobe", core.Point{X: 0.5 - 0.15*logoScale, Y: 0.5 + 0.25*logoScale}, core.Outside},
		{"left face", core.Point{X: 0.5 - 0.4*logoScale, Y: 0.5}, core.Outside},
		{"right face", core.Point{X: 0.5 + 0.4*logoScale, Y: 0.5}, core.Inside},
	}
	for _, c := range cases {
		require.Equal(t, c.want, Logo(c.p), c.name)
	}
}

func TestDiskAndRing(t *testing.T) {
	disk := Disk(0.3)
	require.Equal(t, core.Inside, disk(core.Point{X: 0.5, Y: 0.5}))
	require.Equal(t, core.Outside, disk(core.Point{X: 0.05, Y: 0.5}))

	ring := Ring(0.2, 0.3)
	require.Equal(t, core.Inside, ring(core.Point{X: 0.5, Y: 0.5}))
	require.Equal(t, core.Outside, ring(core.Point{X: 0.75, Y: 0.5}))
	require.Equal(t, core.Inside, ring(core.Point{X: 0.95, Y: 0.5}))

	require.Equal(t, core.Inside, Empty(core.Point{}))
	require.Equal(t, core.Outside, Full(core.Point{}))
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"logo", "disk", "ring", "empty", "full"} {
		pred, err := Lookup(name, nil)
		require.NoError(t, err, name)
		require.NotNil(t, pred, name)
	}

	disk, err := Lookup("disk", map[string]string{"radius": "0.1"})
	require.NoError(t, err)
	require.Equal(t, core.Outside, disk(core.Point{X: 0.5, Y: 0.65}))

	_, err = Lookup("teapot", nil)
	require.True(t, errors.IsType(err, ErrTypeUnknownShape))
}

func TestSpinEasesToSinOfPhase(t *testing.T) {
	s := NewSpin(1, 0.5)
	require.False(t, s.Running())
	require.Zero(t, s.Update(0.1))

	s.Start()
	require.True(t, s.Running())
	mid := s.Update(0.25)
	require.Greater(t, mid, 0.0)
	require.Less(t, mid, math.Sin(1))

	end := s.Update(1)
	require.False(t, s.Running())
	require.InDelta(t, math.Sin(1), end, 1e-6)
	require.InDelta(t, end, s.Transform().Angle, 0)

	s.Start()
	s.Update(10)
	require.InDelta(t, math.Sin(2), s.Angle(), 1e-6)
}

func TestSpinSet(t *testing.T) {
	s := NewSpin(1, 0.5)
	s.Start()
	s.Set(-0.3)
	require.False(t, s.Running())
	require.Equal(t, -0.3, s.Angle())
	require.Equal(t, -0.3, s.Update(0.1))
}
