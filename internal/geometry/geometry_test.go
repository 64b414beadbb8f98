package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	a := Position{X: 0, Y: 0}
	b := Position{X: 3, Y: 4}
	assert.Equal(t, 25.0, DistanceSquared(a, b))
	assert.Equal(t, 5.0, Distance(a, b))
}

func TestOrientation(t *testing.T) {
	a := Position{X: 0, Y: 0}
	b := Position{X: 1, Y: 0}

	ccw := Position{X: 1, Y: 1}
	cw := Position{X: 1, Y: -1}
	collinear := Position{X: 2, Y: 0}

	assert.Greater(t, Orientation(a, b, ccw), 0.0)
	assert.Less(t, Orientation(a, b, cw), 0.0)
	assert.Equal(t, 0.0, Orientation(a, b, collinear))
}

func TestBoundingBoxMonotonicity(t *testing.T) {
	box := NewBoundingBox()
	points := []Position{{X: 5, Y: 5}, {X: -2, Y: 10}, {X: 8, Y: -3}, {X: 0, Y: 0}}

	for _, p := range points {
		box.AddPosition(p)
	}
	for _, p := range points {
		assert.LessOrEqual(t, box.Left, p.X)
		assert.GreaterOrEqual(t, box.Right, p.X)
		assert.LessOrEqual(t, box.Top, p.Y)
		assert.GreaterOrEqual(t, box.Bottom, p.Y)
	}
	assert.Equal(t, 10.0, box.Width())
	assert.Equal(t, 13.0, box.Height())
}

func TestBoundingBoxEmpty(t *testing.T) {
	box := NewBoundingBox()
	assert.True(t, box.Empty())
	assert.Equal(t, 0.0, box.Width())
	assert.Equal(t, 0.0, box.Height())
	assert.True(t, math.IsInf(box.Left, 1))
}
