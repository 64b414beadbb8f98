package partition

import (
	"math/rand"

	"github.com/froemosen/focuspartitioner/internal/geometry"
)

// PlacementStrategy picks one focus position per call. Implementations
// must be pure functions of their arguments plus rng, so two focuses
// sampled independently within the same trial may legitimately land on
// the same point.
type PlacementStrategy interface {
	PlaceOne(bbox *geometry.BoundingBox, positions []geometry.Position, rng *rand.Rand) geometry.Position
}

// PlayerPositionsStrategy picks a uniform-random element of positions.
type PlayerPositionsStrategy struct{}

func (PlayerPositionsStrategy) PlaceOne(_ *geometry.BoundingBox, positions []geometry.Position, rng *rand.Rand) geometry.Position {
	return positions[rng.Intn(len(positions))]
}

// BoundingBoxStrategy picks a uniform-random point within the
// normalized bounding box's width/height.
type BoundingBoxStrategy struct{}

func (BoundingBoxStrategy) PlaceOne(bbox *geometry.BoundingBox, _ []geometry.Position, rng *rand.Rand) geometry.Position {
	w, h := bbox.Width(), bbox.Height()
	x, y := 0.0, 0.0
	if w > 0 {
		x = rng.Float64() * w
	}
	if h > 0 {
		y = rng.Float64() * h
	}
	return geometry.Position{X: x, Y: y}
}
