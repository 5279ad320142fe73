// Package grid provides the static model of a walled field crossed by
// drifting obstacles: dimensions, the entrance and exit gaps, and the
// tick-0 obstacle layout.
//
// Cells on the outer border are walls except for the two gaps; everything
// else is the interior, which is where obstacles live.
package grid

import (
	"fmt"
	"strings"
)

// New constructs a Grid from explicit dimensions, gap positions and an
// obstacle layout. It deep-copies obstacles to keep the Grid immutable.
//
// Returns ErrTooSmall if the walls leave no interior, ErrNoEntrance or
// ErrNoExit if a gap does not sit on the inner span of its border row, and
// ErrObstacleOnBorder if an obstacle lies outside the interior.
// Complexity: O(len(obstacles)).
func New(width, height int, entrance, exit Position, obstacles []Obstacle) (*Grid, error) {
	if width < 3 || height < 3 {
		return nil, ErrTooSmall
	}
	if entrance.Y != 0 || entrance.X < 1 || entrance.X > width-2 {
		return nil, fmt.Errorf("%w: entrance at %v", ErrNoEntrance, entrance)
	}
	if exit.Y != height-1 || exit.X < 1 || exit.X > width-2 {
		return nil, fmt.Errorf("%w: exit at %v", ErrNoExit, exit)
	}
	g := &Grid{
		Width:     width,
		Height:    height,
		Entrance:  entrance,
		Exit:      exit,
		Obstacles: make([]Obstacle, len(obstacles)),
	}
	copy(g.Obstacles, obstacles)
	for _, o := range g.Obstacles {
		if !g.InInterior(o.Pos) {
			return nil, fmt.Errorf("%w: %s obstacle at %v", ErrObstacleOnBorder, o.Dir, o.Pos)
		}
	}

	return g, nil
}

// InteriorWidth is the number of columns between the side walls.
func (g *Grid) InteriorWidth() int { return g.Width - 2 }

// InteriorHeight is the number of rows between the top and bottom walls.
func (g *Grid) InteriorHeight() int { return g.Height - 2 }

// Area is the total number of cells, walls included.
func (g *Grid) Area() int { return g.Width * g.Height }

// InBounds reports whether p lies within the grid rectangle.
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// InInterior reports whether p is strictly inside the walls.
func (g *Grid) InInterior(p Position) bool {
	return p.X >= 1 && p.X <= g.Width-2 && p.Y >= 1 && p.Y <= g.Height-2
}

// Traversable reports whether the agent may ever stand on p: the interior
// plus the entrance and exit gaps.
func (g *Grid) Traversable(p Position) bool {
	return g.InInterior(p) || p == g.Entrance || p == g.Exit
}

// IsWall reports whether p is a border cell other than a gap.
func (g *Grid) IsWall(p Position) bool {
	return g.InBounds(p) && !g.Traversable(p)
}

// Index maps p to a row-major index: Y*Width + X.
// Complexity: O(1).
func (g *Grid) Index(p Position) int {
	return p.Y*g.Width + p.X
}

// Coordinate converts a row-major index back to a Position.
// Complexity: O(1).
func (g *Grid) Coordinate(idx int) Position {
	return Position{X: idx % g.Width, Y: idx / g.Width}
}

// String renders the tick-0 layout in the same text format Parse reads.
// When several obstacles share a cell the last one listed wins.
func (g *Grid) String() string {
	cells := make([]rune, g.Area())
	for i := range cells {
		if g.IsWall(g.Coordinate(i)) {
			cells[i] = '#'
		} else {
			cells[i] = '.'
		}
	}
	for _, o := range g.Obstacles {
		cells[g.Index(o.Pos)] = o.Dir.Rune()
	}

	var sb strings.Builder
	sb.Grow(g.Area() + g.Height)
	for y := 0; y < g.Height; y++ {
		sb.WriteString(string(cells[y*g.Width : (y+1)*g.Width]))
		sb.WriteByte('\n')
	}

	return sb.String()
}
