// Package neighbors precomputes, once per loaded dataset, the K nearest
// players for every player, so the partitioning engine never re-queries
// the spatial index during a trial.
package neighbors

import (
	"github.com/froemosen/focuspartitioner/internal/geometry"
	"github.com/froemosen/focuspartitioner/internal/spatial"
)

// List is a flat, cache-dense buffer of per-player neighbor indices:
// player i's K neighbors live at List.Buf[i*K : i*K+List.Counts[i]].
// Counts[i] is usually K, but can be smaller for tiny datasets.
type List struct {
	K      int
	Buf    []int32
	Counts []int32
}

// Build runs QueryByCount(pos[i], k) for every player and packs the
// results into a single contiguous buffer.
func Build(positions []geometry.Position, index *spatial.GridSpatialIndex[int], k int) *List {
	n := len(positions)
	l := &List{
		K:      k,
		Buf:    make([]int32, n*k),
		Counts: make([]int32, n),
	}
	for i, p := range positions {
		found := index.QueryByCount(p.X, p.Y, k)
		l.Counts[i] = int32(len(found))
		base := i * k
		for j, playerIdx := range found {
			l.Buf[base+j] = int32(playerIdx)
		}
	}
	return l
}

// Of returns player i's neighbor indices, in ascending-distance order.
func (l *List) Of(i int) []int32 {
	base := i * l.K
	return l.Buf[base : base+int(l.Counts[i])]
}
