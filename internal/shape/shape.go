// Package shape provides seed predicates and the rotation used when seeding
// the activation field.
package shape

import (
	"strconv"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/gogpu/gg"

	"sparse-grids/internal/core"
)

// ErrTypeUnknownShape marks a lookup of an unregistered shape name.
const ErrTypeUnknownShape = "unknown_shape"

// circle is a disc in normalized coordinates.
type circle struct {
	cx, cy, r float64
}

// contains uses the SDF coverage, which crosses one half exactly on the rim.
func (c circle) contains(p core.Point) bool {
	return gg.SDFFilledCircleCoverage(p.X, p.Y, c.cx, c.cy, c.r) >= 0.5
}

// logoScale shrinks the emblem so its outer ring clears the grid edge.
const logoScale = 1 / 1.11

var (
	logoRim      = circle{0.5, 0.5, 0.52}
	logoFace     = circle{0.5, 0.5, 0.495}
	logoEyeLow   = circle{0.5, 0.25, 0.08}
	logoEyeHigh  = circle{0.5, 0.75, 0.08}
	logoLobeLow  = circle{0.5, 0.25, 0.25}
	logoLobeHigh = circle{0.5, 0.75, 0.25}
)

// Logo classifies points against a two-lobed emblem inside a ring. The first
// matching rule decides, from the outside in.
func Logo(p core.Point) core.Region {
	q := core.Point{
		X: (p.X-0.5)/logoScale + 0.5,
		Y: (p.Y-0.5)/logoScale + 0.5,
	}
	switch {
	case !logoRim.contains(q):
		return core.Inside
	case !logoFace.contains(q):
		return core.Outside
	case logoEyeLow.contains(q):
		return core.Outside
	case logoEyeHigh.contains(q):
		return core.Inside
	case logoLobeLow.contains(q):
		return core.Inside
	case logoLobeHigh.contains(q):
		return core.Outside
	case q.X < 0.5:
		return core.Outside
	default:
		return core.Inside
	}
}

// Disk returns a predicate that treats everything beyond radius of the grid
// centre as outside.
func Disk(radius float64) core.Predicate {
	c := circle{0.5, 0.5, radius}
	return func(p core.Point) core.Region {
		if c.contains(p) {
			return core.Inside
		}
		return core.Outside
	}
}

// Ring returns a predicate whose outside region is the annulus between inner
// and outer radii around the grid centre.
func Ring(inner, outer float64) core.Predicate {
	in := circle{0.5, 0.5, inner}
	out := circle{0.5, 0.5, outer}
	return func(p core.Point) core.Region {
		if out.contains(p) && !in.contains(p) {
			return core.Outside
		}
		return core.Inside
	}
}

// Empty seeds nothing.
func Empty(core.Point) core.Region { return core.Inside }

// Full seeds every cell.
func Full(core.Point) core.Region { return core.Outside }

// Lookup resolves a registered shape by name.
func Lookup(name string, cfg map[string]string) (core.Predicate, error) {
	factory, ok := core.Shapes()[name]
	if !ok {
		return nil, errors.New("unknown seed shape").
			WithType(ErrTypeUnknownShape).
			WithTag("shape", name)
	}
	return factory(cfg), nil
}

func floatOr(cfg map[string]string, key string, def float64) float64 {
	if cfg == nil {
		return def
	}
	v, ok := cfg[key]
	if !ok {
		return def
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}

func init() {
	core.RegisterShape("logo", func(map[string]string) core.Predicate { return Logo })
	core.RegisterShape("disk", func(cfg map[string]string) core.Predicate {
		return Disk(floatOr(cfg, "radius", 0.35))
	})
	core.RegisterShape("ring", func(cfg map[string]string) core.Predicate {
		inner := floatOr(cfg, "inner", 0.25)
		outer := floatOr(cfg, "outer", 0.4)
		if outer < inner {
			outer = inner
		}
		return Ring(inner, outer)
	})
	core.RegisterShape("empty", func(map[string]string) core.Predicate { return Empty })
	core.RegisterShape("full", func(map[string]string) core.Predicate { return Full })
}
