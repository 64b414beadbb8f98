// Package geometry provides the 2D primitives shared by the spatial index,
// the hull builder and the partitioning engine.
package geometry

import "math"

// Position is a point in 2D space.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceSquared returns the squared Euclidean distance between a and b.
// Squared distance is used everywhere comparisons matter, to avoid the
// sqrt on every candidate.
func DistanceSquared(a, b Position) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Position) float64 {
	return math.Sqrt(DistanceSquared(a, b))
}

// Orientation returns the cross product (b-a) x (c-a), whose sign is
// positive for a counter-clockwise turn, negative for clockwise, zero
// when a, b, c are collinear.
func Orientation(a, b, c Position) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// BoundingBox accumulates the extents of a point stream. The zero value
// is an empty box ready to accept points via Add.
type BoundingBox struct {
	Left, Right, Top, Bottom float64
	hasPoint                 bool
}

// NewBoundingBox returns an empty bounding box.
func NewBoundingBox() *BoundingBox {
	return &BoundingBox{
		Left:   math.Inf(1),
		Right:  math.Inf(-1),
		Top:    math.Inf(1),
		Bottom: math.Inf(-1),
	}
}

// Add extends the box to cover (x, y).
func (b *BoundingBox) Add(x, y float64) {
	if !b.hasPoint {
		b.Left, b.Right = x, x
		b.Top, b.Bottom = y, y
		b.hasPoint = true
		return
	}
	if x < b.Left {
		b.Left = x
	}
	if x > b.Right {
		b.Right = x
	}
	if y < b.Top {
		b.Top = y
	}
	if y > b.Bottom {
		b.Bottom = y
	}
}

// AddPosition is a convenience wrapper around Add.
func (b *BoundingBox) AddPosition(p Position) {
	b.Add(p.X, p.Y)
}

// Width returns right-left, or 0 for an empty box.
func (b *BoundingBox) Width() float64 {
	if !b.hasPoint {
		return 0
	}
	return b.Right - b.Left
}

// Height returns bottom-top, or 0 for an empty box.
func (b *BoundingBox) Height() float64 {
	if !b.hasPoint {
		return 0
	}
	return b.Bottom - b.Top
}

// Empty reports whether any point has been added yet.
func (b *BoundingBox) Empty() bool {
	return !b.hasPoint
}
