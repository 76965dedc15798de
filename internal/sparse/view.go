package sparse

// View is a slot-bound accessor over a Hierarchy. Views over different slots
// share nodes but not leaf values or occupancy bits.
type View struct {
	h    *Hierarchy
	slot Slot
}

// Slot returns the slot the view reads and writes.
func (v View) Slot() Slot { return v.slot }

// Hierarchy returns the underlying tree.
func (v View) Hierarchy() *Hierarchy { return v.h }

// Activate ensures the path to (i, j) exists and marks the leaf occupied in
// this slot. Calling it again for the same cell has no further effect.
func (v View) Activate(i, j int) error {
	return v.h.activate(v.slot, i, j)
}

// Set activates (i, j) and overwrites its value in this slot.
func (v View) Set(i, j int, value float32) error {
	ib, err := v.h.ensure(i, j)
	if err != nil {
		return err
	}
	idx := leafIndex(i, j)
	ib.values[v.slot][idx] = value
	ib.occupied[v.slot][idx/64].Or(1 << (idx % 64))
	return nil
}

// Value returns the stored value at (i, j), or zero when the cell's inner
// block was never allocated.
func (v View) Value(i, j int) float32 {
	v.h.mustContain(i, j)
	ib := v.h.lookup(i, j)
	if ib == nil {
		return 0
	}
	return ib.values[v.slot][leafIndex(i, j)]
}

// Occupied reports whether (i, j) was activated through this slot.
func (v View) Occupied(i, j int) bool {
	v.h.mustContain(i, j)
	ib := v.h.lookup(i, j)
	if ib == nil {
		return false
	}
	idx := leafIndex(i, j)
	return ib.occupied[v.slot][idx/64].Load()&(1<<(idx%64)) != 0
}

// IsLevelActive reports ancestor existence for (i, j). Topology is shared, so
// the answer does not depend on the slot.
func (v View) IsLevelActive(level Level, i, j int) bool {
	return v.h.IsLevelActive(level, i, j)
}

// AncestorDepth counts the existing outer and inner ancestors of (i, j).
func (v View) AncestorDepth(i, j int) int {
	return v.h.AncestorDepth(i, j)
}
