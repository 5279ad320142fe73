package grid

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Cell symbols of the text format.
const (
	WallRune = '#'
	OpenRune = '.'
)

// Parse reads a grid in text form from r, one line per row.
// See ParseLines for the accepted format and errors.
func Parse(r io.Reader) (*Grid, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("grid: read input: %w", err)
	}

	return ParseLines(lines)
}

// ParseFile opens path and parses its contents.
func ParseFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("grid: open %s: %w", path, err)
	}
	defer f.Close()

	return Parse(f)
}

// ParseLines builds a Grid from text rows where '#' is wall, '.' is open
// and '^', 'v', '<', '>' are obstacles heading north, south, west and east.
// The first and last rows must be wall except for exactly one '.' each
// (entrance and exit); the side columns must be wall.
//
// Validation order:
//  1. Trailing blank lines and carriage returns are dropped.
//  2. Every character must belong to the alphabet (*MalformedGridError).
//  3. Rows must be non-empty (ErrEmptyGrid) and of equal length (ErrNonRectangular).
//  4. Border and interior structure (ErrNoEntrance, ErrNoExit, ErrMultipleGaps,
//     ErrBorderGap, ErrObstacleOnBorder, ErrInteriorWall, ErrTooSmall).
//
// Complexity: O(W×H).
func ParseLines(lines []string) (*Grid, error) {
	rows := make([][]rune, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []rune(strings.TrimRight(l, "\r")))
	}
	for len(rows) > 0 && len(rows[len(rows)-1]) == 0 {
		rows = rows[:len(rows)-1]
	}

	// 1) Alphabet first so that a stray character is always reported as such.
	for y, row := range rows {
		for x, c := range row {
			if c == WallRune || c == OpenRune {
				continue
			}
			if _, ok := DirectionFromRune(c); !ok {
				return nil, &MalformedGridError{Char: c, Row: y, Col: x}
			}
		}
	}

	// 2) Shape.
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(rows), len(rows[0])
	for _, row := range rows {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	if w < 3 || h < 3 {
		return nil, ErrTooSmall
	}

	// 3) Gaps in the first and last rows.
	entrance, err := findGap(rows[0], 0)
	if err != nil {
		if err == errNoGap {
			return nil, ErrNoEntrance
		}
		return nil, err
	}
	exit, err := findGap(rows[h-1], h-1)
	if err != nil {
		if err == errNoGap {
			return nil, ErrNoExit
		}
		return nil, err
	}

	// 4) Side walls and interior.
	var obstacles []Obstacle
	for y := 1; y < h-1; y++ {
		for x := 0; x < w; x++ {
			c := rows[y][x]
			side := x == 0 || x == w-1
			switch {
			case c == OpenRune && side:
				return nil, fmt.Errorf("%w: row %d, column %d", ErrBorderGap, y, x)
			case c == WallRune && !side:
				return nil, fmt.Errorf("%w: row %d, column %d", ErrInteriorWall, y, x)
			case c == OpenRune || c == WallRune:
				continue
			}
			if side {
				return nil, fmt.Errorf("%w: row %d, column %d", ErrObstacleOnBorder, y, x)
			}
			d, _ := DirectionFromRune(c)
			obstacles = append(obstacles, Obstacle{Pos: Position{X: x, Y: y}, Dir: d})
		}
	}

	return New(w, h, entrance, exit, obstacles)
}

// errNoGap is internal; callers translate it to ErrNoEntrance or ErrNoExit.
var errNoGap = fmt.Errorf("grid: no gap")

// findGap locates the single '.' in a top or bottom border row.
func findGap(row []rune, y int) (Position, error) {
	gap := Position{X: -1, Y: y}
	for x, c := range row {
		switch c {
		case OpenRune:
			if gap.X >= 0 {
				return Position{}, fmt.Errorf("%w: row %d, columns %d and %d", ErrMultipleGaps, y, gap.X, x)
			}
			gap.X = x
		case WallRune:
		default:
			return Position{}, fmt.Errorf("%w: row %d, column %d", ErrObstacleOnBorder, y, x)
		}
	}
	if gap.X < 0 {
		return Position{}, errNoGap
	}

	return gap, nil
}
