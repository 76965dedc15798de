// Package ui draws the parameter panel next to the grid view.
package ui

import (
	"math"
	"strconv"

	"sparse-grids/internal/core"
)

const defaultStep = 0.05

// adjust moves value one step in direction within the control's bounds. It
// reports false when the value would not change.
func adjust(ctrl core.ParameterControl, value float64, direction int) (float64, bool) {
	if direction == 0 {
		return value, false
	}
	step := ctrl.Step
	if step <= 0 {
		step = defaultStep
	}
	target := ctrl.Clamp(value + float64(direction)*step)
	if math.Abs(target-value) < 1e-9 {
		return value, false
	}
	return target, true
}

// formatFloat picks a precision fine enough to show one step.
func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = defaultStep
	}
	var precision int
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	default:
		precision = 1
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

// parameterLines flattens a snapshot into "Label: value" rows under group
// headers, skipping the keys already shown as controls.
func parameterLines(snap core.ParameterSnapshot, skip map[string]bool) []string {
	var lines []string
	for _, g := range snap.Groups {
		header := false
		for _, p := range g.Params {
			if skip[p.Key] {
				continue
			}
			if !header {
				lines = append(lines, g.Name)
				header = true
			}
			lines = append(lines, "  "+p.Label+": "+p.Value)
		}
	}
	return lines
}
