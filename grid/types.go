package grid

// Position is a cell coordinate: X is the column, Y the row, both 0-based.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p shifted by d.
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// Manhattan returns |a.X-b.X| + |a.Y-b.Y|, the minimum number of orthogonal
// moves between a and b on an empty grid.
func Manhattan(a, b Position) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}

	return dx + dy
}

// Direction is the fixed heading of an obstacle.
type Direction uint8

const (
	// North moves toward row 0.
	North Direction = iota
	// South moves toward the last row.
	South
	// East moves toward the last column.
	East
	// West moves toward column 0.
	West
)

// offsets is indexed by Direction.
var offsets = [...]Position{
	North: {X: 0, Y: -1},
	South: {X: 0, Y: 1},
	East:  {X: 1, Y: 0},
	West:  {X: -1, Y: 0},
}

// runes is indexed by Direction; the same symbols are used by the parser.
var runes = [...]rune{
	North: '^',
	South: 'v',
	East:  '>',
	West:  '<',
}

// Offset returns the one-cell displacement for d.
func (d Direction) Offset() Position { return offsets[d] }

// Rune returns the text symbol for d.
func (d Direction) Rune() rune { return runes[d] }

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	}

	return "unknown"
}

// DirectionFromRune maps '^', 'v', '>' and '<' to their Direction.
func DirectionFromRune(r rune) (Direction, bool) {
	for d, s := range runes {
		if s == r {
			return Direction(d), true
		}
	}

	return 0, false
}

// Obstacle is a drifting blocker: a position plus a fixed heading.
type Obstacle struct {
	Pos Position
	Dir Direction
}

// Grid is a walled rectangle with one gap in the first row (Entrance) and
// one gap in the last row (Exit). Width and Height include the walls.
// Obstacles holds the tick-0 layout; it is never mutated after parsing.
type Grid struct {
	Width, Height int
	Entrance      Position
	Exit          Position
	Obstacles     []Obstacle
}
