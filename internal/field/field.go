// Package field holds the leaf-level activation state of the sparse grid and
// the transient stroke heat that feeds it.
package field

import (
	"math"
	"sync/atomic"

	"github.com/aukilabs/go-tooling/pkg/errors"

	"sparse-grids/internal/core"
	"sparse-grids/internal/parallel"
	"sparse-grids/internal/sparse"
)

// ErrTypeInvalidPredicate marks a seed pass started without a shape.
const ErrTypeInvalidPredicate = "invalid_predicate"

// seedValue is written into the active slot for seeded cells.
const seedValue = 1

// Field stores the committed activation values, the renderer's depth-hint
// slot and the stroke heat buffer over one hierarchy.
type Field struct {
	n       int
	workers int

	tree   *sparse.Hierarchy
	active sparse.View
	hint   sparse.View

	heat    *core.FloatGrid
	pending bool
}

// New allocates a field. onAllocate, when non-nil, observes every new
// hierarchy node.
func New(cfg Config, onAllocate func(sparse.Level)) (*Field, error) {
	tree, err := sparse.New(sparse.Config{
		Size:       cfg.Size,
		NodeBudget: cfg.NodeBudget,
		OnAllocate: onAllocate,
	})
	if err != nil {
		return nil, err
	}
	return &Field{
		n:       cfg.Size,
		workers: parallel.Workers(cfg.Workers),
		tree:    tree,
		active:  tree.View(sparse.SlotActive),
		hint:    tree.View(sparse.SlotDepthHint),
		heat:    core.NewFloatGrid(cfg.Size, cfg.Size),
	}, nil
}

// Size returns the grid side length in cells.
func (f *Field) Size() int { return f.n }

// Hierarchy exposes the occupancy tree.
func (f *Field) Hierarchy() *sparse.Hierarchy { return f.tree }

// Active exposes the committed occupancy slot.
func (f *Field) Active() sparse.View { return f.active }

// DepthHint exposes the slot the renderer queries for ancestor activity.
func (f *Field) DepthHint() sparse.View { return f.hint }

// Heat exposes the stroke heat buffer, indexed (i, j) as (x, y).
func (f *Field) Heat() *core.FloatGrid { return f.heat }

// Pending reports whether heat was accumulated since the last commit.
func (f *Field) Pending() bool { return f.pending }

// Reset drops the whole hierarchy and any pending heat.
func (f *Field) Reset() {
	f.tree.Reset()
	f.heat.Clear()
	f.pending = false
}

// AccumulateStroke adds amount to the heat of every cell whose normalized
// position (i/N, j/N) lies strictly within radius of center. Heat is not
// clamped, so repeated calls keep growing it.
func (f *Field) AccumulateStroke(center core.Point, radius, amount float64) {
	if radius <= 0 {
		return
	}
	n := float64(f.n)
	loI, hiI := f.cellSpan(center.X, radius)
	loJ, hiJ := f.cellSpan(center.Y, radius)
	r2 := radius * radius
	for j := loJ; j <= hiJ; j++ {
		dy := float64(j)/n - center.Y
		for i := loI; i <= hiI; i++ {
			dx := float64(i)/n - center.X
			if dx*dx+dy*dy >= r2 {
				continue
			}
			idx := f.heat.Index(i, j)
			f.heat.Values()[idx] += float32(amount)
			f.pending = true
		}
	}
}

// cellSpan returns the inclusive cell range along one axis that can fall
// within radius of c.
func (f *Field) cellSpan(c, radius float64) (int, int) {
	n := float64(f.n)
	lo := int(math.Floor((c - radius) * n))
	hi := int(math.Ceil((c + radius) * n))
	return max(lo, 0), min(hi, f.n-1)
}

// CommitStroke overwrites the active value of every cell holding positive
// heat with that heat, activates the cell in the hierarchy and clears the
// heat. It returns the number of cells written. Cells whose activation fails
// still have their heat cleared; the first failure is returned after the pass.
func (f *Field) CommitStroke() (int, error) {
	if !f.pending {
		return 0, nil
	}
	f.pending = false

	var committed atomic.Int64
	heat := f.heat.Values()
	err := parallel.Rows(f.n, f.workers, func(lo, hi int) error {
		var first error
		var local int64
		for j := lo; j < hi; j++ {
			row := j * f.n
			for i := 0; i < f.n; i++ {
				h := heat[row+i]
				if h <= 0 {
					continue
				}
				heat[row+i] = 0
				if err := f.active.Set(i, j, h); err != nil {
					if first == nil {
						first = err
					}
					continue
				}
				local++
			}
		}
		committed.Add(local)
		return first
	})
	return int(committed.Load()), err
}

// SeedFromShape activates every cell whose transformed normalized position
// the predicate classifies as outside the shape. It returns the number of
// cells seeded.
func (f *Field) SeedFromShape(pred core.Predicate, tf core.RigidTransform) (int, error) {
	if pred == nil {
		return 0, errors.New("seed predicate is nil").
			WithType(ErrTypeInvalidPredicate)
	}

	var seeded atomic.Int64
	n := float64(f.n)
	err := parallel.Rows(f.n, f.workers, func(lo, hi int) error {
		var local int64
		for j := lo; j < hi; j++ {
			for i := 0; i < f.n; i++ {
				p := tf.Apply(core.Point{X: float64(i) / n, Y: float64(j) / n})
				if pred(p) != core.Outside {
					continue
				}
				if err := f.active.Set(i, j, seedValue); err != nil {
					seeded.Add(local)
					return err
				}
				local++
			}
		}
		seeded.Add(local)
		return nil
	})
	return int(seeded.Load()), err
}
