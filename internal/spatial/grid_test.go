package spatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertOutOfBounds(t *testing.T) {
	g := New[int](2, 16, 16)
	_, err := g.Insert(0, -1, 0)
	var oob *OutOfBoundsError
	require.ErrorAs(t, err, &oob)
}

func TestInsertAndUpdate(t *testing.T) {
	g := New[int](2, 16, 16)
	res, err := g.Insert(1, 5, 5)
	require.NoError(t, err)
	assert.Equal(t, Inserted, res)

	res, err = g.Insert(1, 6, 6)
	require.NoError(t, err)
	assert.Equal(t, Updated, res)
	assert.Equal(t, 1, g.Len())
}

func TestRemove(t *testing.T) {
	g := New[int](2, 16, 16)
	_, _ = g.Insert(1, 5, 5)
	assert.True(t, g.Remove(1))
	assert.False(t, g.Remove(1))
	assert.Equal(t, 0, g.Len())
}

// TestQueryCircleCoverage checks the no-false-negatives/no-false-positives
// property: ModeCircle must match exactly the brute-force circle membership.
func TestQueryCircleCoverage(t *testing.T) {
	g := New[int](3, 64, 64)
	points := map[int][2]float64{
		0: {10, 10},
		1: {12, 11},
		2: {40, 40},
		3: {10.5, 9.5},
		4: {0, 0},
	}
	for k, p := range points {
		_, err := g.Insert(k, p[0], p[1])
		require.NoError(t, err)
	}

	cx, cy, r := 10.0, 10.0, 3.0
	got := g.Query(cx, cy, r, ModeCircle)

	want := map[int]bool{}
	for k, p := range points {
		dx, dy := p[0]-cx, p[1]-cy
		if math.Sqrt(dx*dx+dy*dy) <= r {
			want[k] = true
		}
	}

	gotSet := map[int]bool{}
	for _, k := range got {
		gotSet[k] = true
	}
	assert.Equal(t, want, gotSet)
}

func TestQueryByCountOrdersByDistanceThenSeq(t *testing.T) {
	g := New[int](4, 128, 128)
	_, _ = g.Insert(0, 10, 10)
	_, _ = g.Insert(1, 11, 10)
	_, _ = g.Insert(2, 12, 10)
	_, _ = g.Insert(3, 9, 10)

	got := g.QueryByCount(10, 10, 2)
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0])
	// Keys 1 and 3 are both at distance 1; key 1 was inserted first.
	assert.Equal(t, 1, got[1])
}

func TestQueryByCountFewerThanK(t *testing.T) {
	g := New[int](4, 128, 128)
	_, _ = g.Insert(0, 10, 10)
	_, _ = g.Insert(1, 11, 10)

	got := g.QueryByCount(10, 10, 10)
	assert.Len(t, got, 2)
}

func TestQueryByCountZero(t *testing.T) {
	g := New[int](4, 128, 128)
	_, _ = g.Insert(0, 10, 10)
	assert.Nil(t, g.QueryByCount(10, 10, 0))
}
