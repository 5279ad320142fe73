package occupancy

import (
	"bytes"
	"math"

	"github.com/katalvlaran/driftpath/grid"
)

// wallMark flags a wall cell in Snapshot.counts.
const wallMark = math.MaxUint8

// Snapshot is the occupancy of the grid at one tick. It is immutable once
// built and answers membership queries in O(1).
type Snapshot struct {
	// Tick is the tick this snapshot was built for. Under ModeModular it is
	// the canonical tick in [0, P), shared by every t ≡ Tick (mod P).
	Tick int
	// Obstacles is the layout at Tick, in the same order as the grid's
	// tick-0 layout. Callers must not modify it.
	Obstacles []grid.Obstacle

	g      *grid.Grid
	counts []uint8 // row-major; obstacle count per cell, wallMark on walls
}

// newSnapshot builds the count grid for obs at tick.
// Complexity: O(W×H + len(obs)).
func newSnapshot(g *grid.Grid, tick int, obs []grid.Obstacle) *Snapshot {
	counts := make([]uint8, g.Area())
	for i := range counts {
		if g.IsWall(g.Coordinate(i)) {
			counts[i] = wallMark
		}
	}
	for _, o := range obs {
		idx := g.Index(o.Pos)
		if counts[idx] < wallMark-1 {
			counts[idx]++
		}
	}

	return &Snapshot{Tick: tick, Obstacles: obs, g: g, counts: counts}
}

// Blocked reports whether p is unavailable at this tick: outside the grid,
// a wall, or holding at least one obstacle.
func (s *Snapshot) Blocked(p grid.Position) bool {
	if !s.g.InBounds(p) {
		return true
	}

	return s.counts[s.g.Index(p)] != 0
}

// Count returns the number of obstacles on p; walls and out-of-bounds
// cells report 0.
func (s *Snapshot) Count(p grid.Position) int {
	if !s.g.InBounds(p) {
		return 0
	}
	c := s.counts[s.g.Index(p)]
	if c == wallMark {
		return 0
	}

	return int(c)
}

// Equal reports whether s and other block exactly the same cells with the
// same obstacle multiplicity. Tick is not compared.
func (s *Snapshot) Equal(other *Snapshot) bool {
	if s == other {
		return true
	}
	if other == nil || s.g.Width != other.g.Width || s.g.Height != other.g.Height {
		return false
	}

	return bytes.Equal(s.counts, other.counts)
}

// Render draws the snapshot in the grid text format: '#' for walls, '.' for
// free cells, the heading symbol for a lone obstacle and the count for
// stacked ones ('*' beyond nine).
func (s *Snapshot) Render() string {
	w, h := s.g.Width, s.g.Height
	cells := make([]byte, w*h)
	for i, c := range s.counts {
		switch {
		case c == wallMark:
			cells[i] = grid.WallRune
		case c == 0:
			cells[i] = grid.OpenRune
		case c > 9:
			cells[i] = '*'
		default:
			cells[i] = '0' + c
		}
	}
	for _, o := range s.Obstacles {
		idx := s.g.Index(o.Pos)
		if s.counts[idx] == 1 {
			cells[idx] = byte(o.Dir.Rune())
		}
	}

	var buf bytes.Buffer
	buf.Grow(len(cells) + h)
	for y := 0; y < h; y++ {
		buf.Write(cells[y*w : (y+1)*w])
		buf.WriteByte('\n')
	}

	return buf.String()
}
