package sparse

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
)

const (
	// ErrTypeOutOfRange marks coordinates outside the grid.
	ErrTypeOutOfRange = "out_of_range"
	// ErrTypeNodeBudget marks an allocation refused because the lazy node
	// budget is spent.
	ErrTypeNodeBudget = "node_budget_exhausted"
	// ErrTypeInvalidSize marks a grid size that is not a positive multiple of
	// the outer block size.
	ErrTypeInvalidSize = "invalid_size"
)

func outOfRange(n, i, j int) error {
	return errors.New("cell outside grid").
		WithType(ErrTypeOutOfRange).
		WithTag("i", i).
		WithTag("j", j).
		WithTag("size", n)
}

func budgetExhausted(level Level, budget int64) error {
	return errors.New("hierarchy node budget exhausted").
		WithType(ErrTypeNodeBudget).
		WithTag("level", level.String()).
		WithTag("budget", budget)
}
