package partition

import (
	"sort"

	"github.com/bits-and-blooms/bitset"
	"github.com/froemosen/focuspartitioner/internal/geometry"
	"github.com/froemosen/focuspartitioner/internal/hull"
)

// Snapshot is the immutable-after-finalize result of one randomized
// trial: focuses, per-focus own/external-interest sets, their hulls,
// load factors, and the trial's acceptance outcome.
type Snapshot struct {
	Focuses []geometry.Position

	LoadFactor                     []float64
	NumberOfForwards               int
	IsWithinComfortableLFThreshold bool

	// Seq is a creation-order tiebreaker, stamped by the caller
	// (internal/service, for concurrent trial reduction) on every
	// improving candidate and consulted when two candidate snapshots tie
	// on NumberOfForwards. Zero when unused.
	Seq int64

	ownPlayers       []*bitset.BitSet
	externalInterest []*bitset.BitSet
	innerHullB       []hull.Builder
	outerHullB       []hull.Builder
	innerHull        [][]geometry.Position
	outerHull        [][]geometry.Position

	finalized bool
}

func newSnapshot(numFocuses, numPlayers int, hullFactory func() hull.Builder) *Snapshot {
	s := &Snapshot{
		Focuses:          make([]geometry.Position, numFocuses),
		LoadFactor:       make([]float64, numFocuses),
		ownPlayers:       make([]*bitset.BitSet, numFocuses),
		externalInterest: make([]*bitset.BitSet, numFocuses),
		innerHullB:       make([]hull.Builder, numFocuses),
		outerHullB:       make([]hull.Builder, numFocuses),
	}
	for i := 0; i < numFocuses; i++ {
		s.ownPlayers[i] = bitset.New(uint(numPlayers))
		s.externalInterest[i] = bitset.New(uint(numPlayers))
		s.innerHullB[i] = hullFactory()
		s.outerHullB[i] = hullFactory()
	}
	return s
}

// finalize computes and freezes the per-focus hull vertex lists. Once
// finalized, the accumulators are no longer needed.
func (s *Snapshot) finalize() {
	s.innerHull = make([][]geometry.Position, len(s.Focuses))
	s.outerHull = make([][]geometry.Position, len(s.Focuses))
	for i := range s.Focuses {
		s.innerHull[i] = s.innerHullB[i].Hull()
		s.outerHull[i] = s.outerHullB[i].Hull()
	}
	s.innerHullB = nil
	s.outerHullB = nil
	s.finalized = true
}

// OwnPlayers returns the set of player indices whose nearest focus is i.
func (s *Snapshot) OwnPlayers(i int) *bitset.BitSet {
	return s.ownPlayers[i]
}

// ExternalInterest returns the set of player indices not owned by focus
// i but needed by it for state forwarding.
func (s *Snapshot) ExternalInterest(i int) *bitset.BitSet {
	return s.externalInterest[i]
}

// InnerHull returns the convex hull of focus i's own players. Empty
// when the focus owns fewer than 3 non-collinear players.
func (s *Snapshot) InnerHull(i int) []geometry.Position {
	return s.innerHull[i]
}

// OuterHull returns the convex hull of focus i's own players union its
// external interest set.
func (s *Snapshot) OuterHull(i int) []geometry.Position {
	return s.outerHull[i]
}

// NumberOfFocuses returns F.
func (s *Snapshot) NumberOfFocuses() int {
	return len(s.Focuses)
}

// SortedOwnPlayers returns focus i's own players as an ascending slice,
// useful for deterministic test assertions and JSON reports.
func (s *Snapshot) SortedOwnPlayers(i int) []int {
	return sortedIndices(s.ownPlayers[i])
}

// SortedExternalInterest returns focus i's external-interest set as an
// ascending slice.
func (s *Snapshot) SortedExternalInterest(i int) []int {
	return sortedIndices(s.externalInterest[i])
}

func sortedIndices(b *bitset.BitSet) []int {
	out := make([]int, 0, b.Count())
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		out = append(out, int(i))
	}
	sort.Ints(out)
	return out
}
