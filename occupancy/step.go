package occupancy

import "github.com/katalvlaran/driftpath/grid"

// Step returns the obstacle layout one tick after obs. Each obstacle moves
// one cell along its heading; one that would land on a wall reappears on the
// first interior cell of the opposite side. obs is not modified.
// Complexity: O(len(obs)).
func Step(g *grid.Grid, obs []grid.Obstacle) []grid.Obstacle {
	next := make([]grid.Obstacle, len(obs))
	for i, o := range obs {
		p := o.Pos.Add(o.Dir.Offset())
		switch {
		case p.X <= 0:
			p.X = g.Width - 2
		case p.X >= g.Width-1:
			p.X = 1
		}
		switch {
		case p.Y <= 0:
			p.Y = g.Height - 2
		case p.Y >= g.Height-1:
			p.Y = 1
		}
		next[i] = grid.Obstacle{Pos: p, Dir: o.Dir}
	}

	return next
}

// Period returns lcm(interior width, interior height): the number of ticks
// after which every obstacle is back on its starting cell.
func Period(g *grid.Grid) int {
	w, h := g.InteriorWidth(), g.InteriorHeight()

	return w / gcd(w, h) * h
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}
