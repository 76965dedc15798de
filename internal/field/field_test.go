package field

import (
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/stretchr/testify/require"

	"sparse-grids/internal/core"
	"sparse-grids/internal/sparse"
)

func newField(t *testing.T, cfg Config) *Field {
	t.Helper()
	f, err := New(cfg, nil)
	require.NoError(t, err)
	return f
}

func TestAccumulateStrokeRadius(t *testing.T) {
	f := newField(t, DefaultConfig())
	center := core.Point{X: 0.1, Y: 0.1}
	f.AccumulateStroke(center, 0.03, 0.3)

	n := float64(f.Size())
	heat := f.Heat()
	touched := 0
	for j := 0; j < f.Size(); j++ {
		for i := 0; i < f.Size(); i++ {
			dx := float64(i)/n - center.X
			dy := float64(j)/n - center.Y
			inside := dx*dx+dy*dy < 0.03*0.03
			if inside {
				touched++
				require.Equal(t, float32(0.3), heat.At(i, j), "cell (%d,%d)", i, j)
			} else {
				require.Zero(t, heat.At(i, j), "cell (%d,%d)", i, j)
			}
		}
	}
	require.Positive(t, touched)
	require.True(t, f.Pending())
}

func TestAccumulateStrokeIsUnbounded(t *testing.T) {
	f := newField(t, DefaultConfig())
	for k := 0; k < 3; k++ {
		f.AccumulateStroke(core.Point{X: 0.5, Y: 0.5}, 0.01, 0.3)
	}
	require.InDelta(t, 0.9, f.Heat().At(256, 256), 1e-6)
}

func TestAccumulateStrokeClipsAtEdges(t *testing.T) {
	f := newField(t, Config{Size: 64})
	f.AccumulateStroke(core.Point{X: 0, Y: 0}, 0.05, 1)
	f.AccumulateStroke(core.Point{X: 1.2, Y: -3}, 0.05, 1)
	require.Equal(t, float32(1), f.Heat().At(0, 0))
	require.Zero(t, f.Heat().At(63, 63))

	f.AccumulateStroke(core.Point{X: 0.5, Y: 0.5}, 0, 1)
	require.Zero(t, f.Heat().At(32, 32))
}

func TestCommitStrokeOverwritesAndClears(t *testing.T) {
	f := newField(t, DefaultConfig())
	require.NoError(t, f.Active().Set(51, 51, 0.7))

	f.Heat().Set(51, 51, 0.3)
	f.Heat().Set(400, 10, 2.5)
	f.pending = true

	n, err := f.CommitStroke()
	require.NoError(t, err)
	require.Equal(t, 2, n)

	require.Equal(t, float32(0.3), f.Active().Value(51, 51), "commit overwrites, never adds")
	require.Equal(t, float32(2.5), f.Active().Value(400, 10))
	require.Zero(t, f.Heat().At(51, 51))
	require.Zero(t, f.Heat().At(400, 10))
	require.True(t, f.Hierarchy().IsLevelActive(sparse.LevelInner, 400, 10))
	require.False(t, f.Pending())

	n, err = f.CommitStroke()
	require.NoError(t, err)
	require.Zero(t, n, "second commit has nothing pending")
}

func TestStrokeFramesDoNotLeak(t *testing.T) {
	f := newField(t, DefaultConfig())
	for frame := 0; frame < 3; frame++ {
		f.AccumulateStroke(core.Point{X: 0.1, Y: 0.1}, 0.03, 0.3)
		_, err := f.CommitStroke()
		require.NoError(t, err)

		require.Equal(t, float32(0.3), f.Active().Value(51, 51), "frame %d", frame)
		for _, v := range f.Heat().Values() {
			require.Zero(t, v)
		}
	}
	require.Zero(t, f.DepthHint().Value(51, 51))
}

func TestCommitIgnoresNonPositiveHeat(t *testing.T) {
	f := newField(t, Config{Size: 64})
	f.AccumulateStroke(core.Point{X: 0.5, Y: 0.5}, 0.1, -1)
	n, err := f.CommitStroke()
	require.NoError(t, err)
	require.Zero(t, n)
	require.Equal(t, sparse.Stats{}, f.Hierarchy().Stats())
}

func TestCommitReportsBudgetExhaustion(t *testing.T) {
	f := newField(t, Config{Size: 128, NodeBudget: 2, Workers: 1})
	f.Heat().Set(0, 0, 1)
	f.Heat().Set(100, 100, 1)
	f.pending = true

	n, err := f.CommitStroke()
	require.Error(t, err)
	require.True(t, errors.IsType(err, sparse.ErrTypeNodeBudget))
	require.Equal(t, 1, n)
	require.Zero(t, f.Heat().At(100, 100), "failed cells do not keep their heat")
}

func TestSeedAlwaysOutsideFillsHierarchy(t *testing.T) {
	f := newField(t, DefaultConfig())
	outside := func(core.Point) core.Region { return core.Outside }

	n, err := f.SeedFromShape(outside, core.Identity())
	require.NoError(t, err)
	require.Equal(t, 512*512, n)

	st := f.Hierarchy().Stats()
	require.Equal(t, int64(8*8), st.Outer)
	require.Equal(t, int64(32*32), st.Inner)
	require.Equal(t, int64(512*512), st.Occupied[sparse.SlotActive])
	for j := 0; j < 512; j += sparse.InnerSpan {
		for i := 0; i < 512; i += sparse.InnerSpan {
			require.True(t, f.Hierarchy().IsLevelActive(sparse.LevelOuter, i, j))
			require.True(t, f.Hierarchy().IsLevelActive(sparse.LevelInner, i, j))
		}
	}
	require.Equal(t, float32(1), f.Active().Value(511, 511))
}

func TestSeedUsesTransformedPosition(t *testing.T) {
	f := newField(t, Config{Size: 128})
	leftHalf := func(p core.Point) core.Region {
		if p.X < 0.5 {
			return core.Outside
		}
		return core.Inside
	}
	tf := core.Identity()
	tf.Translate = core.Point{X: 0.25}

	n, err := f.SeedFromShape(leftHalf, tf)
	require.NoError(t, err)
	require.Equal(t, 32*128, n)
	require.True(t, f.Active().Occupied(0, 0))
	require.False(t, f.Active().Occupied(32, 0))
	require.False(t, f.Hierarchy().IsLevelActive(sparse.LevelOuter, 64, 0))
}

func TestSeedRejectsNilPredicate(t *testing.T) {
	f := newField(t, Config{Size: 64})
	_, err := f.SeedFromShape(nil, core.Identity())
	require.True(t, errors.IsType(err, ErrTypeInvalidPredicate))
}

func TestResetClearsEverything(t *testing.T) {
	f := newField(t, Config{Size: 64})
	require.NoError(t, f.Hierarchy().ActivateCell(3, 3))
	f.AccumulateStroke(core.Point{X: 0.5, Y: 0.5}, 0.1, 1)

	f.Reset()
	require.False(t, f.Pending())
	require.Equal(t, sparse.Stats{}, f.Hierarchy().Stats())
	for _, v := range f.Heat().Values() {
		require.Zero(t, v)
	}
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{"n": "256", "node_budget": "12", "workers": "3"})
	require.Equal(t, Config{Size: 256, NodeBudget: 12, Workers: 3}, c)

	c = FromMap(map[string]string{"n": "100", "node_budget": "-1", "workers": "x"})
	require.Equal(t, DefaultConfig(), c)

	require.Equal(t, DefaultConfig(), FromMap(nil))
}
