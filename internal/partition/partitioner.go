// Package partition implements the randomized trial loop: place F
// focuses, assign players to their nearest focus, derive each focus's
// external-interest set from the precomputed neighbor lists, score the
// result against the load-factor cap, and keep the best snapshot seen.
package partition

import (
	"math"
	"math/rand"
	"time"

	"github.com/froemosen/focuspartitioner/internal/config"
	"github.com/froemosen/focuspartitioner/internal/geometry"
	"github.com/froemosen/focuspartitioner/internal/hull"
	"github.com/froemosen/focuspartitioner/internal/metrics"
	"github.com/froemosen/focuspartitioner/internal/neighbors"
	"github.com/froemosen/focuspartitioner/internal/spatial"
)

// Partitioner owns one loaded dataset — positions, bounding box, spatial
// index, and precomputed neighbor lists — plus the best snapshot found
// across every Randomize() call so far.
type Partitioner struct {
	cfg         config.Config
	strategy    PlacementStrategy
	hullFactory func() hull.Builder
	rng         *rand.Rand

	positions []geometry.Position
	bbox      *geometry.BoundingBox
	index     *spatial.GridSpatialIndex[int]
	neighbors *neighbors.List

	best             *Snapshot
	numberOfRuns     int
	numberOfFailures int
	totalElapsedTime time.Duration
}

// New builds a Partitioner from cfg. No dataset is loaded yet; call
// Load before Randomize.
func New(cfg config.Config) *Partitioner {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	p := &Partitioner{
		cfg:         cfg,
		hullFactory: hull.NewMonotoneChain,
		rng:         rand.New(rand.NewSource(seed)),
	}
	switch cfg.Strategy {
	case config.BoundingBox:
		p.strategy = BoundingBoxStrategy{}
	default:
		p.strategy = PlayerPositionsStrategy{}
	}
	p.resetBest()
	return p
}

// SetHullFactory overrides the default monotone-chain hull builder,
// honoring the pluggability the hull package's Builder interface exists
// for.
func (p *Partitioner) SetHullFactory(f func() hull.Builder) {
	p.hullFactory = f
}

func (p *Partitioner) resetBest() {
	p.best = &Snapshot{NumberOfForwards: math.MaxInt}
}

// Load normalizes positions (translating so the minimum x and y become
// zero), rebuilds the spatial index, and precomputes each player's K
// nearest neighbors. It resets the best snapshot and counters.
func (p *Partitioner) Load(positions []geometry.Position) error {
	if len(positions) == 0 {
		return ErrEmptyDataset
	}

	raw := geometry.NewBoundingBox()
	for _, pos := range positions {
		raw.AddPosition(pos)
	}

	normalized := make([]geometry.Position, len(positions))
	for i, pos := range positions {
		normalized[i] = geometry.Position{X: pos.X - raw.Left, Y: pos.Y - raw.Top}
	}

	bbox := geometry.NewBoundingBox()
	for _, pos := range normalized {
		bbox.AddPosition(pos)
	}

	// The index board is half-open, [0, width); one unit of slack keeps
	// the extreme points (x = width, y = height) inside it.
	boardWidth := bbox.Width() + 1
	boardHeight := bbox.Height() + 1

	index := spatial.New[int](p.cfg.CellSizeExponent, boardWidth, boardHeight)
	for i, pos := range normalized {
		if _, err := index.Insert(i, pos.X, pos.Y); err != nil {
			return err
		}
	}

	neighborStart := time.Now()
	neighborList := neighbors.Build(normalized, index, p.cfg.NeighborCount)
	metrics.NeighborBuildDuration.Observe(time.Since(neighborStart).Seconds())

	p.positions = normalized
	p.bbox = bbox
	p.index = index
	p.neighbors = neighborList
	p.numberOfRuns = 0
	p.numberOfFailures = 0
	p.totalElapsedTime = 0
	p.resetBest()

	metrics.DatasetSize.Set(float64(len(normalized)))

	return nil
}

// Randomize runs one trial: place focuses, assign players, derive
// external interest, check the load cap, and update the best snapshot
// on improvement. The bool result is the acceptance outcome the caller
// uses to decide whether to redraw / recompute reported metrics.
func (p *Partitioner) Randomize() (bool, error) {
	if len(p.positions) == 0 {
		return false, ErrEmptyDataset
	}

	start := time.Now()
	snap := newSnapshot(p.cfg.NumberOfFocuses, len(p.positions), p.hullFactory)

	for i := range snap.Focuses {
		snap.Focuses[i] = p.strategy.PlaceOne(p.bbox, p.positions, p.rng)
	}

	for playerIdx, pos := range p.positions {
		bestFocus := 0
		bestDist := geometry.DistanceSquared(pos, snap.Focuses[0])
		for f := 1; f < len(snap.Focuses); f++ {
			d := geometry.DistanceSquared(pos, snap.Focuses[f])
			if d < bestDist {
				bestDist = d
				bestFocus = f
			}
		}
		snap.ownPlayers[bestFocus].Set(uint(playerIdx))
		snap.innerHullB[bestFocus].AddPoint(pos.X, pos.Y)
		snap.outerHullB[bestFocus].AddPoint(pos.X, pos.Y)
	}

	for f := range snap.Focuses {
		own := snap.ownPlayers[f]
		ext := snap.externalInterest[f]
		for pi, ok := own.NextSet(0); ok; pi, ok = own.NextSet(pi + 1) {
			for _, n32 := range p.neighbors.Of(int(pi)) {
				n := uint(n32)
				if own.Test(n) || ext.Test(n) {
					continue
				}
				ext.Set(n)
				np := p.positions[n]
				snap.outerHullB[f].AddPoint(np.X, np.Y)
			}
		}
	}

	withinCap := true
	for f := range snap.Focuses {
		ownCount := snap.ownPlayers[f].Count()
		extCount := snap.externalInterest[f].Count()
		microsPerSecond := p.cfg.SendFreqHz * (float64(ownCount)*p.cfg.ProcMineMicros + float64(extCount)*p.cfg.ProcOtherMicros)
		loadFactor := 100 * microsPerSecond / 1_000_000
		snap.LoadFactor[f] = loadFactor
		metrics.LoadFactor.Observe(loadFactor)
		if loadFactor > p.cfg.MaxComfortableLoadFactor {
			withinCap = false
		}
	}
	snap.IsWithinComfortableLFThreshold = withinCap

	p.numberOfRuns++
	metrics.RunsTotal.Inc()
	elapsed := time.Since(start)
	p.totalElapsedTime += elapsed
	metrics.TrialDuration.Observe(elapsed.Seconds())

	if !withinCap {
		p.numberOfFailures++
		metrics.FailuresTotal.Inc()
		return false, nil
	}

	total := 0
	for f := range snap.Focuses {
		total += int(snap.externalInterest[f].Count())
	}
	snap.NumberOfForwards = total
	snap.finalize()

	if total < p.best.NumberOfForwards {
		p.best = snap
		metrics.ImprovementsTotal.Inc()
		metrics.BestForwards.Set(float64(total))
		return true, nil
	}
	return false, nil
}

// Best returns the best snapshot found so far, or nil if no trial has
// been accepted since the last Load.
func (p *Partitioner) Best() *Snapshot {
	if !p.best.finalized {
		return nil
	}
	return p.best
}

// Counts returns the run/failure counters and total wall-clock time
// spent inside Randomize since the last Load.
func (p *Partitioner) Counts() (runs, failures int, elapsed time.Duration) {
	return p.numberOfRuns, p.numberOfFailures, p.totalElapsedTime
}

// Positions returns the normalized positions currently loaded. The
// returned slice must not be mutated by the caller.
func (p *Partitioner) Positions() []geometry.Position {
	return p.positions
}

// BoundingBox returns the normalized bounding box of the loaded
// dataset, or nil if nothing is loaded.
func (p *Partitioner) BoundingBox() *geometry.BoundingBox {
	return p.bbox
}

// NeighborsOf returns player i's precomputed K nearest neighbor
// indices.
func (p *Partitioner) NeighborsOf(i int) []int32 {
	return p.neighbors.Of(i)
}

// Config returns the partitioner's configuration.
func (p *Partitioner) Config() config.Config {
	return p.cfg
}

// Clone returns a new Partitioner sharing this one's positions, bounding
// box, spatial index, and neighbor lists — all read-only once built
// (§5) — but with its own RNG stream and its own best snapshot and
// counters, ready to drive an independent sequence of trials. Used by
// internal/service's concurrent runner to give each worker a private
// candidate-snapshot builder without rebuilding the shared dataset.
func (p *Partitioner) Clone() *Partitioner {
	clone := &Partitioner{
		cfg:         p.cfg,
		strategy:    p.strategy,
		hullFactory: p.hullFactory,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano() + rand.Int63())),
		positions:   p.positions,
		bbox:        p.bbox,
		index:       p.index,
		neighbors:   p.neighbors,
	}
	clone.resetBest()
	return clone
}

// AdoptBest replaces the partitioner's best snapshot with one produced
// elsewhere (a worker clone's result, reduced by the caller). It does
// not touch run/failure counters, which remain local bookkeeping for
// whichever Partitioner actually executed the trials.
func (p *Partitioner) AdoptBest(snap *Snapshot) {
	p.best = snap
}
