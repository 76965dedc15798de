package ui

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sparse-grids/internal/core"
)

func TestAdjustStaysInBounds(t *testing.T) {
	ctrl := core.ParameterControl{Key: "r", Step: 0.005, Min: 0.005, Max: 0.25}

	v, ok := adjust(ctrl, 0.03, 1)
	require.True(t, ok)
	require.InDelta(t, 0.035, v, 1e-12)

	v, ok = adjust(ctrl, 0.005, -1)
	require.False(t, ok)
	require.Equal(t, 0.005, v)

	v, ok = adjust(ctrl, 0.248, 1)
	require.True(t, ok)
	require.Equal(t, 0.25, v)

	_, ok = adjust(ctrl, 0.1, 0)
	require.False(t, ok)
}

func TestAdjustDefaultStep(t *testing.T) {
	v, ok := adjust(core.ParameterControl{Min: 0, Max: 1}, 0.5, -1)
	require.True(t, ok)
	require.InDelta(t, 0.45, v, 1e-12)
}

func TestFormatFloat(t *testing.T) {
	require.Equal(t, "0.030", formatFloat(core.ParameterControl{Step: 0.005}, 0.03))
	require.Equal(t, "0.30", formatFloat(core.ParameterControl{Step: 0.05}, 0.3))
	require.Equal(t, "1.5", formatFloat(core.ParameterControl{Step: 0.5}, 1.5))
	require.Equal(t, "0.0001", formatFloat(core.ParameterControl{Step: 0.0001}, 0.0001))
}

func TestParameterLines(t *testing.T) {
	snap := core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{Name: "Hierarchy", Params: []core.Parameter{
			{Key: "outer", Label: "Outer blocks", Value: "3"},
		}},
		{Name: "Stroke", Params: []core.Parameter{
			{Key: "stroke_radius", Label: "Radius", Value: "0.03"},
		}},
	}}
	lines := parameterLines(snap, map[string]bool{"stroke_radius": true})
	require.Equal(t, []string{"Hierarchy", "  Outer blocks: 3"}, lines)
}
