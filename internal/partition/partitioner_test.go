package partition

import (
	"math/rand"
	"testing"

	"github.com/froemosen/focuspartitioner/internal/config"
	"github.com/froemosen/focuspartitioner/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() config.Config {
	cfg := config.Default()
	cfg.NumberOfFocuses = 2
	cfg.NeighborCount = 3
	cfg.MaxComfortableLoadFactor = 1000 // effectively no cap, to isolate the assignment logic
	cfg.Seed = 42
	return cfg
}

func TestLoadRejectsEmptyDataset(t *testing.T) {
	p := New(baseConfig())
	err := p.Load(nil)
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestRandomizeRejectsEmptyDataset(t *testing.T) {
	p := New(baseConfig())
	_, err := p.Randomize()
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestLoadNormalizesToOrigin(t *testing.T) {
	p := New(baseConfig())
	err := p.Load([]geometry.Position{{X: 5, Y: 5}, {X: 10, Y: 20}, {X: -3, Y: 7}})
	require.NoError(t, err)

	bbox := p.BoundingBox()
	assert.Equal(t, 0.0, bbox.Left)
	assert.Equal(t, 0.0, bbox.Top)
}

func TestLoadSingleDegeneratePoint(t *testing.T) {
	p := New(baseConfig())
	err := p.Load([]geometry.Position{{X: 3, Y: 3}})
	require.NoError(t, err)

	ok, err := p.Randomize()
	require.NoError(t, err)
	_ = ok
	assert.NotNil(t, p.Best())
}

func TestRandomizePartitionsEveryPlayerExactlyOnce(t *testing.T) {
	p := New(baseConfig())
	positions := []geometry.Position{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1},
		{X: 20, Y: 20}, {X: 21, Y: 20}, {X: 20, Y: 21},
	}
	require.NoError(t, p.Load(positions))

	for i := 0; i < 20; i++ {
		_, err := p.Randomize()
		require.NoError(t, err)
	}

	best := p.Best()
	require.NotNil(t, best)

	seen := make(map[int]int)
	for f := 0; f < best.NumberOfFocuses(); f++ {
		for _, idx := range best.SortedOwnPlayers(f) {
			seen[idx]++
		}
	}
	assert.Len(t, seen, len(positions))
	for idx, count := range seen {
		assert.Equal(t, 1, count, "player %d owned by %d focuses", idx, count)
	}
}

func TestRandomizeRejectsOverCapacity(t *testing.T) {
	cfg := baseConfig()
	cfg.MaxComfortableLoadFactor = 0.0001
	p := New(cfg)
	positions := make([]geometry.Position, 50)
	for i := range positions {
		positions[i] = geometry.Position{X: float64(i), Y: 0}
	}
	require.NoError(t, p.Load(positions))

	improved, err := p.Randomize()
	require.NoError(t, err)
	assert.False(t, improved)

	_, failures, _ := p.Counts()
	assert.Equal(t, 1, failures)
}

// fixedStrategy places every focus on the same point.
type fixedStrategy geometry.Position

func (s fixedStrategy) PlaceOne(_ *geometry.BoundingBox, _ []geometry.Position, _ *rand.Rand) geometry.Position {
	return geometry.Position(s)
}

func TestRandomizeTieBreakLowestFocusIndex(t *testing.T) {
	p := New(baseConfig())
	require.NoError(t, p.Load([]geometry.Position{{X: 0, Y: 0}, {X: 10, Y: 0}}))

	// Both focuses land on (5, 0), so every player is equidistant from
	// them; strict less-than assignment keeps the first focus scanned.
	p.strategy = fixedStrategy{X: 5, Y: 0}

	improved, err := p.Randomize()
	require.NoError(t, err)
	require.True(t, improved)

	best := p.Best()
	assert.Equal(t, []int{0, 1}, best.SortedOwnPlayers(0))
	assert.Empty(t, best.SortedOwnPlayers(1))
}

func TestCloneSharesImmutableState(t *testing.T) {
	p := New(baseConfig())
	require.NoError(t, p.Load([]geometry.Position{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}))

	clone := p.Clone()
	assert.Same(t, p.index, clone.index)
	assert.Same(t, p.neighbors, clone.neighbors)

	_, err := clone.Randomize()
	require.NoError(t, err)

	runs, _, _ := p.Counts()
	cloneRuns, _, _ := clone.Counts()
	assert.Equal(t, 0, runs)
	assert.Equal(t, 1, cloneRuns)
}
