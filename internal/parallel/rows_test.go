package parallel

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRowsCoversRangeOnce(t *testing.T) {
	for _, workers := range []int{0, 1, 3, 8, 100} {
		var mu sync.Mutex
		hits := make([]int, 37)
		err := Rows(len(hits), workers, func(lo, hi int) error {
			mu.Lock()
			defer mu.Unlock()
			for i := lo; i < hi; i++ {
				hits[i]++
			}
			return nil
		})
		require.NoError(t, err)
		for i, h := range hits {
			require.Equal(t, 1, h, "row %d workers %d", i, workers)
		}
	}
}

func TestRowsReportsError(t *testing.T) {
	boom := errors.New("boom")
	err := Rows(10, 4, func(lo, hi int) error {
		if lo == 0 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
}

func TestRowsEmpty(t *testing.T) {
	called := false
	require.NoError(t, Rows(0, 4, func(int, int) error {
		called = true
		return nil
	}))
	require.False(t, called)
}
