// Package sparse implements a four-level occupancy hierarchy over a square
// grid.
//
// The tree branches 64→16→4→1 cells per axis. The two upper levels (outer
// 64×64 blocks and inner 16×16 blocks) are allocated lazily the first time a
// cell beneath them is activated. The two lower levels (4×4 dense blocks and
// single-cell leaves) live inside their inner block and exist exactly when it
// does. The hierarchy only grows; Reset is the single way to shrink it.
//
// Leaves carry one value per Slot. Slots share the topology, so a cell
// activated through one slot makes its ancestors visible through every other
// slot while the per-slot values and occupancy bits stay independent.
//
// Node allocation is an atomic insert-if-absent, so concurrent activations of
// cells under the same block converge on one node and readers never observe a
// partially built node.
package sparse
