// Package spatial implements the uniform bucket grid used to answer
// k-nearest-neighbor and radius queries over a static snapshot of points.
//
// Cells are square with a power-of-two side (1<<exponent), which lets cell
// indexing use an arithmetic right shift instead of a division — valid
// because callers are required to normalize coordinates to be
// non-negative before inserting (see internal/partition).
package spatial

import (
	"fmt"
	"math"
	"sort"
)

// QueryMode controls how Query filters the candidates gathered from the
// cells touched by a radius query.
type QueryMode int

const (
	// ModeRaw returns every candidate in the touched cells, unfiltered.
	ModeRaw QueryMode = iota
	// ModeCircle filters candidates by Euclidean distance <= r.
	ModeCircle
	// ModeSquare filters candidates by |dx| <= r && |dy| <= r.
	ModeSquare
)

// InsertResult reports whether Insert created a new entry or relocated an
// existing one.
type InsertResult int

const (
	// Inserted means a brand new entry was created for the key.
	Inserted InsertResult = iota
	// Updated means the key already had an entry; it was left in place
	// or moved to a different cell.
	Updated
)

// OutOfBoundsError is returned by Insert when (x, y) falls outside
// [0, width) x [0, height).
type OutOfBoundsError struct {
	X, Y float64
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("spatial: point (%g, %g) is out of bounds", e.X, e.Y)
}

type entry[K comparable] struct {
	x, y float64
	cell int
	seq  int
}

// GridSpatialIndex is a fixed-size uniform bucket grid keyed by a
// comparable handle K (player index, in this repository's usage).
//
// Each cell holds a set of keys; a side map from key to entry gives O(1)
// lookup for Insert/Remove, matching the teacher's cell-map/player-map
// pairing but generalized from a 3D player-ID grid to a 2D grid over an
// arbitrary comparable key, with explicit power-of-two cell sizing and
// ring-expansion k-NN.
type GridSpatialIndex[K comparable] struct {
	exponent                    uint
	cellSize                    float64
	width, height               float64
	widthInCells, heightInCells int
	totalCells                  int

	cells   []map[K]struct{}
	entries map[K]*entry[K]
	nextSeq int
}

// New builds an index covering [0, width) x [0, height), with cells of
// side 2^exponent.
func New[K comparable](exponent uint, width, height float64) *GridSpatialIndex[K] {
	cellSize := float64(uint64(1) << exponent)
	widthInCells := int(math.Ceil(width / cellSize))
	heightInCells := int(math.Ceil(height / cellSize))
	if widthInCells < 1 {
		widthInCells = 1
	}
	if heightInCells < 1 {
		heightInCells = 1
	}
	total := widthInCells * heightInCells

	return &GridSpatialIndex[K]{
		exponent:      exponent,
		cellSize:      cellSize,
		width:         width,
		height:        height,
		widthInCells:  widthInCells,
		heightInCells: heightInCells,
		totalCells:    total,
		cells:         make([]map[K]struct{}, total),
		entries:       make(map[K]*entry[K], 64),
	}
}

func (g *GridSpatialIndex[K]) colRow(x, y float64) (int, int) {
	col := int(int64(math.Floor(x)) >> g.exponent)
	row := int(int64(math.Floor(y)) >> g.exponent)
	return col, row
}

func (g *GridSpatialIndex[K]) cellIndex(col, row int) int {
	return row*g.widthInCells + col
}

func (g *GridSpatialIndex[K]) inBounds(x, y float64) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *GridSpatialIndex[K]) bucket(idx int) map[K]struct{} {
	if g.cells[idx] == nil {
		g.cells[idx] = make(map[K]struct{})
	}
	return g.cells[idx]
}

// Insert places key at (x, y), creating a new entry or relocating an
// existing one to the cell that now covers (x, y).
func (g *GridSpatialIndex[K]) Insert(key K, x, y float64) (InsertResult, error) {
	if !g.inBounds(x, y) {
		return 0, &OutOfBoundsError{X: x, Y: y}
	}
	col, row := g.colRow(x, y)
	idx := g.cellIndex(col, row)
	if idx < 0 || idx >= g.totalCells {
		return 0, &OutOfBoundsError{X: x, Y: y}
	}

	if e, ok := g.entries[key]; ok {
		e.x, e.y = x, y
		if e.cell == idx {
			return Updated, nil
		}
		if old := g.cells[e.cell]; old != nil {
			delete(old, key)
		}
		e.cell = idx
		g.bucket(idx)[key] = struct{}{}
		return Updated, nil
	}

	e := &entry[K]{x: x, y: y, cell: idx, seq: g.nextSeq}
	g.nextSeq++
	g.entries[key] = e
	g.bucket(idx)[key] = struct{}{}
	return Inserted, nil
}

// Remove drops key from the index. Reports whether anything was removed.
func (g *GridSpatialIndex[K]) Remove(key K) bool {
	e, ok := g.entries[key]
	if !ok {
		return false
	}
	if bucket := g.cells[e.cell]; bucket != nil {
		delete(bucket, key)
	}
	delete(g.entries, key)
	return true
}

// Len returns the number of entries currently indexed.
func (g *GridSpatialIndex[K]) Len() int {
	return len(g.entries)
}

// Query returns the keys of every entry touched by the axis-aligned
// square [x-r, x+r] x [y-r, y+r] (clipped to the board), filtered
// according to mode. Result order is unspecified.
func (g *GridSpatialIndex[K]) Query(x, y, r float64, mode QueryMode) []K {
	minX, maxX := x-r, x+r
	minY, maxY := y-r, y+r
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > g.width {
		maxX = g.width
	}
	if maxY > g.height {
		maxY = g.height
	}
	if minX > maxX || minY > maxY {
		return nil
	}

	colMin, rowMin := g.colRow(minX, minY)
	colMax, rowMax := g.colRow(maxX, maxY)
	colMin, rowMin = clampNonNeg(colMin), clampNonNeg(rowMin)
	colMax = clampMax(colMax, g.widthInCells-1)
	rowMax = clampMax(rowMax, g.heightInCells-1)

	var out []K
	for row := rowMin; row <= rowMax; row++ {
		for col := colMin; col <= colMax; col++ {
			for key := range g.cells[g.cellIndex(col, row)] {
				e := g.entries[key]
				switch mode {
				case ModeCircle:
					dx, dy := e.x-x, e.y-y
					if dx*dx+dy*dy > r*r {
						continue
					}
				case ModeSquare:
					if math.Abs(e.x-x) > r || math.Abs(e.y-y) > r {
						continue
					}
				}
				out = append(out, key)
			}
		}
	}
	return out
}

type candidate[K comparable] struct {
	key    K
	distSq float64
	seq    int
}

// QueryByCount returns the k keys nearest to (x, y), ordered by squared
// distance ascending and tie-broken by insertion order. Fewer than k
// keys are returned if the grid holds fewer than k entries reachable
// from (x, y).
func (g *GridSpatialIndex[K]) QueryByCount(x, y float64, k int) []K {
	if k <= 0 {
		return nil
	}
	cx, cy := g.colRow(x, y)

	seen := make(map[K]struct{})
	var candidates []candidate[K]

	for level := 1; ; level++ {
		visited := 0
		g.forEachCellAtLevel(cx, cy, level, func(col, row int) {
			visited++
			for key := range g.cells[g.cellIndex(col, row)] {
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}
				e := g.entries[key]
				dx, dy := e.x-x, e.y-y
				candidates = append(candidates, candidate[K]{key: key, distSq: dx*dx + dy*dy, seq: e.seq})
			}
		})
		if visited == 0 {
			break
		}
		if len(candidates) >= k {
			break
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].distSq != candidates[j].distSq {
			return candidates[i].distSq < candidates[j].distSq
		}
		return candidates[i].seq < candidates[j].seq
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}
	out := make([]K, len(candidates))
	for i, c := range candidates {
		out[i] = c.key
	}
	return out
}

// forEachCellAtLevel visits every in-bounds cell of the square ring at
// the given level (level 1 is the single center cell), clipped to the
// grid extent. Level L centered on (cx, cy) is every cell (c, r) with
// max(|c-cx|, |r-cy|) == L-1.
func (g *GridSpatialIndex[K]) forEachCellAtLevel(cx, cy, level int, fn func(col, row int)) {
	if level == 1 {
		if g.validCell(cx, cy) {
			fn(cx, cy)
		}
		return
	}
	half := level - 1
	colMin, colMax := cx-half, cx+half
	rowMin, rowMax := cy-half, cy+half

	for col := colMin; col <= colMax; col++ {
		if g.validCell(col, rowMin) {
			fn(col, rowMin)
		}
		if rowMax != rowMin && g.validCell(col, rowMax) {
			fn(col, rowMax)
		}
	}
	for row := rowMin + 1; row <= rowMax-1; row++ {
		if g.validCell(colMin, row) {
			fn(colMin, row)
		}
		if colMax != colMin && g.validCell(colMax, row) {
			fn(colMax, row)
		}
	}
}

func (g *GridSpatialIndex[K]) validCell(col, row int) bool {
	return col >= 0 && col < g.widthInCells && row >= 0 && row < g.heightInCells
}

func clampNonNeg(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func clampMax(v, max int) int {
	if v > max {
		return max
	}
	return v
}
