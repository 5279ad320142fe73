package grid

import (
	"errors"
	"fmt"
)

// Sentinel errors for grid construction and parsing.
var (
	// ErrEmptyGrid indicates the input has no rows or no columns.
	ErrEmptyGrid = errors.New("grid: input must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("grid: all rows must have the same length")
	// ErrTooSmall indicates the walls leave no interior cell.
	ErrTooSmall = errors.New("grid: interior must be at least 1x1")
	// ErrNoEntrance indicates the first row has no open cell.
	ErrNoEntrance = errors.New("grid: no entrance in the first row")
	// ErrNoExit indicates the last row has no open cell.
	ErrNoExit = errors.New("grid: no exit in the last row")
	// ErrMultipleGaps indicates the first or last row has more than one open cell.
	ErrMultipleGaps = errors.New("grid: border row has more than one open cell")
	// ErrBorderGap indicates an open cell on the left or right border.
	ErrBorderGap = errors.New("grid: side border must be solid wall")
	// ErrInteriorWall indicates a '#' inside the walls; interior cells are open or drifting.
	ErrInteriorWall = errors.New("grid: wall inside the interior")
	// ErrObstacleOnBorder indicates an obstacle placed on a border cell.
	ErrObstacleOnBorder = errors.New("grid: obstacle on border cell")
	// ErrMalformedGrid is wrapped by every *MalformedGridError.
	ErrMalformedGrid = errors.New("grid: malformed grid")
)

// MalformedGridError reports a character outside the grid alphabet
// ('#', '.', '^', 'v', '<', '>') together with its location.
type MalformedGridError struct {
	Char rune // offending character
	Row  int  // 0-based row of Char
	Col  int  // 0-based column of Char
}

// Error implements error.
func (e *MalformedGridError) Error() string {
	return fmt.Sprintf("grid: unexpected character %q at row %d, column %d", e.Char, e.Row, e.Col)
}

// Unwrap lets errors.Is match ErrMalformedGrid.
func (e *MalformedGridError) Unwrap() error { return ErrMalformedGrid }
