package waypoint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/driftpath/grid"
	"github.com/katalvlaran/driftpath/waypoint"
)

var (
	entrance = grid.Position{X: 1, Y: 0}
	exit     = grid.Position{X: 6, Y: 5}
	middle   = grid.Position{X: 3, Y: 2}
)

func testGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.New(8, 6, entrance, exit, nil)
	require.NoError(t, err)

	return g
}

// TestAdvance_RoundTrip walks the full state sequence and checks that
// out-of-order arrivals are ignored.
func TestAdvance_RoundTrip(t *testing.T) {
	a := waypoint.New(waypoint.RoundTrip, testGrid(t))
	s := a.Initial()
	require.Equal(t, waypoint.AwaitingFirstArrival, s)

	// The entrance does not count before the exit is reached.
	s = a.Advance(s, entrance)
	assert.Equal(t, waypoint.AwaitingFirstArrival, s)
	s = a.Advance(s, middle)
	assert.Equal(t, waypoint.AwaitingFirstArrival, s)

	s = a.Advance(s, exit)
	assert.Equal(t, waypoint.AwaitingReturn, s)
	// Lingering on the exit does not skip the return leg.
	s = a.Advance(s, exit)
	assert.Equal(t, waypoint.AwaitingReturn, s)

	s = a.Advance(s, entrance)
	assert.Equal(t, waypoint.AwaitingFinalArrival, s)
	s = a.Advance(s, entrance)
	assert.Equal(t, waypoint.AwaitingFinalArrival, s)
	assert.False(t, a.Satisfied(s))

	s = a.Advance(s, exit)
	assert.Equal(t, waypoint.Satisfied, s)
	assert.True(t, a.Satisfied(s))

	// Satisfied is terminal.
	for _, p := range []grid.Position{entrance, exit, middle} {
		assert.Equal(t, waypoint.Satisfied, a.Advance(s, p))
	}
}

func TestAdvance_Direct(t *testing.T) {
	a := waypoint.New(waypoint.Direct, testGrid(t))
	s := a.Initial()
	assert.Equal(t, s, a.Advance(s, entrance))
	assert.Equal(t, s, a.Advance(s, middle))
	assert.Equal(t, waypoint.Satisfied, a.Advance(s, exit))
}

// TestAdvance_NeverRegresses checks monotonicity over every (state, cell) pair.
func TestAdvance_NeverRegresses(t *testing.T) {
	g := testGrid(t)
	for _, v := range waypoint.Variants {
		a := waypoint.New(v, g)
		for s := waypoint.State(0); int(s) < waypoint.NumStates; s++ {
			for y := 0; y < g.Height; y++ {
				for x := 0; x < g.Width; x++ {
					next := a.Advance(s, grid.Position{X: x, Y: y})
					if next < s || next > s+1 {
						t.Fatalf("%s: Advance(%s, (%d,%d)) = %s", v, s, x, y, next)
					}
				}
			}
		}
	}
}

// TestRemaining checks the heuristic at each stage of a round trip.
func TestRemaining(t *testing.T) {
	g := testGrid(t)
	a := waypoint.New(waypoint.RoundTrip, g)
	span := grid.Manhattan(entrance, exit) // 10

	assert.Equal(t, 3*span, a.Remaining(waypoint.AwaitingFirstArrival, entrance))
	assert.Equal(t, 2*span, a.Remaining(waypoint.AwaitingReturn, exit))
	assert.Equal(t, span, a.Remaining(waypoint.AwaitingFinalArrival, entrance))
	assert.Equal(t, 0, a.Remaining(waypoint.Satisfied, middle))
	assert.Equal(t, 6+2*span, a.Remaining(waypoint.AwaitingFirstArrival, middle))
	assert.Equal(t, 4+span, a.Remaining(waypoint.AwaitingReturn, middle))

	d := waypoint.New(waypoint.Direct, g)
	assert.Equal(t, span, d.Remaining(d.Initial(), entrance))
}

func TestTarget(t *testing.T) {
	a := waypoint.New(waypoint.RoundTrip, testGrid(t))
	p, ok := a.Target(waypoint.AwaitingReturn)
	assert.True(t, ok)
	assert.Equal(t, entrance, p)
	p, ok = a.Target(waypoint.AwaitingFirstArrival)
	assert.True(t, ok)
	assert.Equal(t, exit, p)
	_, ok = a.Target(waypoint.Satisfied)
	assert.False(t, ok)
}

func TestParseVariant(t *testing.T) {
	for _, v := range waypoint.Variants {
		got, err := waypoint.ParseVariant(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
	_, err := waypoint.ParseVariant("both")
	assert.ErrorIs(t, err, waypoint.ErrBadVariant)
	assert.Equal(t, 1, waypoint.Direct.Legs())
	assert.Equal(t, 3, waypoint.RoundTrip.Legs())
}
