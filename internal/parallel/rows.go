// Package parallel splits full-grid passes into row bands.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Workers normalises a requested worker count, defaulting to the CPU count.
func Workers(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// Rows calls fn over [0, n) split into at most workers contiguous bands and
// returns the first error reported by any band. Every band runs to
// completion; bands never overlap.
func Rows(n, workers int, fn func(lo, hi int) error) error {
	if n <= 0 {
		return nil
	}
	workers = Workers(workers)
	if workers == 1 || n == 1 {
		return fn(0, n)
	}
	if workers > n {
		workers = n
	}
	band := (n + workers - 1) / workers

	var g errgroup.Group
	for lo := 0; lo < n; lo += band {
		hi := min(lo+band, n)
		g.Go(func() error { return fn(lo, hi) })
	}
	return g.Wait()
}
