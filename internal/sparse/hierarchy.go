package sparse

import (
	"fmt"
	"math/bits"
	"sync/atomic"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

// Span of each level in cells per axis.
const (
	OuterSpan = 64
	InnerSpan = 16
	DenseSpan = 4
	LeafSpan  = 1
)

// branch is the number of children per axis at every level.
const branch = 4

const (
	innerPerOuter  = branch * branch
	densePerInner  = branch * branch
	leavesPerDense = DenseSpan * DenseSpan
	cellsPerInner  = InnerSpan * InnerSpan
	maskWords      = cellsPerInner / 64
)

// Level identifies a depth in the hierarchy.
type Level int

const (
	LevelOuter Level = iota
	LevelInner
	LevelDense
	LevelLeaf
)

// Levels is the number of hierarchy levels.
const Levels = 4

// Span returns the level granularity in cells per axis.
func (l Level) Span() int {
	switch l {
	case LevelOuter:
		return OuterSpan
	case LevelInner:
		return InnerSpan
	case LevelDense:
		return DenseSpan
	case LevelLeaf:
		return LeafSpan
	default:
		panic(fmt.Sprintf("sparse: invalid level %d", int(l)))
	}
}

func (l Level) String() string {
	switch l {
	case LevelOuter:
		return "outer"
	case LevelInner:
		return "inner"
	case LevelDense:
		return "dense"
	case LevelLeaf:
		return "leaf"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Slot selects one of the per-leaf value arrays.
type Slot int

const (
	// SlotActive holds committed occupancy written by strokes and seeding.
	SlotActive Slot = iota
	// SlotDepthHint is queried by the renderer and is never written by the
	// stroke or seed paths.
	SlotDepthHint
	slotCount
)

func (s Slot) String() string {
	switch s {
	case SlotActive:
		return "active"
	case SlotDepthHint:
		return "depth_hint"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

// Config controls the hierarchy dimensions and allocation limits.
type Config struct {
	// Size is the grid side length in cells. Must be a positive multiple of
	// OuterSpan.
	Size int
	// NodeBudget caps the number of lazily allocated nodes (outer plus inner).
	// Zero means unlimited.
	NodeBudget int64
	// OnAllocate, when set, is called once for every newly published node.
	OnAllocate func(Level)
}

// DefaultConfig returns a 512×512 grid without an allocation limit.
func DefaultConfig() Config {
	return Config{Size: 512}
}

// outerBlock is a 64×64 region holding up to 4×4 inner blocks.
type outerBlock struct {
	inner [innerPerOuter]atomic.Pointer[innerBlock]
}

// innerBlock is a 16×16 region. Its 4×4 dense blocks and their 4×4 leaves are
// stored inline; leaf storage is ordered dense block first, then leaf.
type innerBlock struct {
	occupied [slotCount][maskWords]atomic.Uint64
	values   [slotCount][cellsPerInner]float32
}

// Hierarchy is the sparse four-level occupancy tree.
type Hierarchy struct {
	n            int
	outerPerAxis int
	budget       int64
	onAllocate   func(Level)

	outer []atomic.Pointer[outerBlock]

	reserved   atomic.Int64
	outerCount atomic.Int64
	innerCount atomic.Int64
}

// New builds an empty hierarchy.
func New(cfg Config) (*Hierarchy, error) {
	if cfg.Size <= 0 || cfg.Size%OuterSpan != 0 {
		return nil, errors.New("grid size must be a positive multiple of the outer block span").
			WithType(ErrTypeInvalidSize).
			WithTag("size", cfg.Size).
			WithTag("span", OuterSpan)
	}
	if cfg.NodeBudget < 0 {
		cfg.NodeBudget = 0
	}
	per := cfg.Size / OuterSpan
	return &Hierarchy{
		n:            cfg.Size,
		outerPerAxis: per,
		budget:       cfg.NodeBudget,
		onAllocate:   cfg.OnAllocate,
		outer:        make([]atomic.Pointer[outerBlock], per*per),
	}, nil
}

// Size returns the grid side length in cells.
func (h *Hierarchy) Size() int { return h.n }

// Contains reports whether (i, j) addresses a cell of the grid.
func (h *Hierarchy) Contains(i, j int) bool {
	return i >= 0 && j >= 0 && i < h.n && j < h.n
}

// ActivateCell activates (i, j) through SlotActive.
func (h *Hierarchy) ActivateCell(i, j int) error {
	return h.activate(SlotActive, i, j)
}

// IsLevelActive reports whether the ancestor of (i, j) at the given level
// exists. Levels below LevelInner exist exactly when their inner block does.
// It never allocates. Out-of-range coordinates panic.
func (h *Hierarchy) IsLevelActive(level Level, i, j int) bool {
	h.mustContain(i, j)
	ob := h.outer[h.outerIndex(i, j)].Load()
	if level == LevelOuter {
		return ob != nil
	}
	if level < LevelOuter || level > LevelLeaf {
		panic(fmt.Sprintf("sparse: invalid level %d", int(level)))
	}
	if ob == nil {
		return false
	}
	return ob.inner[innerIndex(i, j)].Load() != nil
}

// AncestorDepth counts how many of the outer and inner ancestors of (i, j)
// exist. The result is 0, 1 or 2.
func (h *Hierarchy) AncestorDepth(i, j int) int {
	h.mustContain(i, j)
	ob := h.outer[h.outerIndex(i, j)].Load()
	if ob == nil {
		return 0
	}
	if ob.inner[innerIndex(i, j)].Load() == nil {
		return 1
	}
	return 2
}

// Reset drops every node. It must not run concurrently with other calls.
func (h *Hierarchy) Reset() {
	for i := range h.outer {
		h.outer[i].Store(nil)
	}
	h.reserved.Store(0)
	h.outerCount.Store(0)
	h.innerCount.Store(0)
}

// View returns an accessor bound to one slot.
func (h *Hierarchy) View(s Slot) View {
	if s < 0 || s >= slotCount {
		panic(fmt.Sprintf("sparse: invalid slot %d", int(s)))
	}
	return View{h: h, slot: s}
}

// Stats summarises the allocated topology.
type Stats struct {
	Outer    int64            `json:"outer"`
	Inner    int64            `json:"inner"`
	Dense    int64            `json:"dense"`
	Leaves   int64            `json:"leaves"`
	Occupied [slotCount]int64 `json:"occupied"`
}

// Stats walks the allocated nodes and counts them per level along with the
// occupied leaves of every slot.
func (h *Hierarchy) Stats() Stats {
	var st Stats
	for i := range h.outer {
		ob := h.outer[i].Load()
		if ob == nil {
			continue
		}
		st.Outer++
		for k := range ob.inner {
			ib := ob.inner[k].Load()
			if ib == nil {
				continue
			}
			st.Inner++
			for s := Slot(0); s < slotCount; s++ {
				for w := range ib.occupied[s] {
					st.Occupied[s] += int64(bits.OnesCount64(ib.occupied[s][w].Load()))
				}
			}
		}
	}
	st.Dense = st.Inner * densePerInner
	st.Leaves = st.Inner * cellsPerInner
	return st
}

// Allocated returns the live outer and inner node counts without walking the
// tree.
func (h *Hierarchy) Allocated() (outer, inner int64) {
	return h.outerCount.Load(), h.innerCount.Load()
}

func (h *Hierarchy) activate(s Slot, i, j int) error {
	ib, err := h.ensure(i, j)
	if err != nil {
		return err
	}
	idx := leafIndex(i, j)
	ib.occupied[s][idx/64].Or(1 << (idx % 64))
	return nil
}

// ensure returns the inner block containing (i, j), allocating the outer and
// inner nodes on the way down when they are absent.
func (h *Hierarchy) ensure(i, j int) (*innerBlock, error) {
	if !h.Contains(i, j) {
		return nil, outOfRange(h.n, i, j)
	}
	slot := &h.outer[h.outerIndex(i, j)]
	ob := slot.Load()
	if ob == nil {
		var err error
		if ob, err = insertIfAbsent(h, slot, LevelOuter, &h.outerCount); err != nil {
			return nil, err
		}
	}
	islot := &ob.inner[innerIndex(i, j)]
	ib := islot.Load()
	if ib == nil {
		var err error
		if ib, err = insertIfAbsent(h, islot, LevelInner, &h.innerCount); err != nil {
			return nil, err
		}
	}
	return ib, nil
}

// insertIfAbsent publishes a fresh node into slot unless another caller got
// there first, in which case the winner is returned and the reservation is
// handed back.
func insertIfAbsent[T any](h *Hierarchy, slot *atomic.Pointer[T], level Level, count *atomic.Int64) (*T, error) {
	if h.budget > 0 && h.reserved.Add(1) > h.budget {
		h.reserved.Add(-1)
		if cur := slot.Load(); cur != nil {
			return cur, nil
		}
		return nil, budgetExhausted(level, h.budget)
	}
	node := new(T)
	if slot.CompareAndSwap(nil, node) {
		count.Add(1)
		if h.onAllocate != nil {
			h.onAllocate(level)
		}
		return node, nil
	}
	if h.budget > 0 {
		h.reserved.Add(-1)
	}
	return slot.Load(), nil
}

func (h *Hierarchy) mustContain(i, j int) {
	if !h.Contains(i, j) {
		panic(outOfRange(h.n, i, j))
	}
}

func (h *Hierarchy) outerIndex(i, j int) int {
	return (i/OuterSpan)*h.outerPerAxis + j/OuterSpan
}

func (h *Hierarchy) lookup(i, j int) *innerBlock {
	ob := h.outer[h.outerIndex(i, j)].Load()
	if ob == nil {
		return nil
	}
	return ob.inner[innerIndex(i, j)].Load()
}

func innerIndex(i, j int) int {
	return ((i%OuterSpan)/InnerSpan)*branch + (j%OuterSpan)/InnerSpan
}

// leafIndex locates (i, j) inside its inner block: dense block index first,
// then the leaf within that dense block.
func leafIndex(i, j int) int {
	li, lj := i%InnerSpan, j%InnerSpan
	dense := (li/DenseSpan)*branch + lj/DenseSpan
	leaf := (li%DenseSpan)*DenseSpan + lj%DenseSpan
	return dense*leavesPerDense + leaf
}
