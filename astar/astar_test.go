// Package astar_test contains unit tests for the time-expanded A* search.
// They cover the reference basin in both cache modes, route validity,
// waiting, and every failure mode.
package astar_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/driftpath/astar"
	"github.com/katalvlaran/driftpath/grid"
	"github.com/katalvlaran/driftpath/occupancy"
	"github.com/katalvlaran/driftpath/waypoint"
)

const basin = `#.######
#>>.<^<#
#.<..<<#
#>v.><>#
#<^v^^>#
######.#
`

// column is one cell wide; its single obstacle moves north through the
// entrance's path, so the agent has to hold back for two ticks.
const column = `#.#
#^#
#.#
#.#
#.#
`

// boxed has a one-cell interior held forever by an obstacle that wraps onto
// itself, so the exit can never be reached.
const boxed = `#.#
#>#
#.#
`

func mustParse(t testing.TB, s string) *grid.Grid {
	t.Helper()
	g, err := grid.Parse(strings.NewReader(s))
	require.NoError(t, err)

	return g
}

// ------------------------------------------------------------------------
// 1. Reference answers.
// ------------------------------------------------------------------------

type SearchSuite struct {
	suite.Suite
	basin *grid.Grid
}

func (s *SearchSuite) SetupTest() {
	s.basin = mustParse(s.T(), basin)
}

func (s *SearchSuite) TestBasin_BothModes() {
	cases := []struct {
		variant waypoint.Variant
		want    int
	}{
		{waypoint.Direct, 18},
		{waypoint.RoundTrip, 54},
	}
	for _, mode := range []occupancy.Mode{occupancy.ModeModular, occupancy.ModeRaw} {
		for _, tc := range cases {
			res, err := astar.Search(context.Background(), s.basin,
				astar.WithVariant(tc.variant),
				astar.WithCacheMode(mode),
			)
			s.Require().NoError(err, "%s/%s", tc.variant, mode)
			s.Equal(tc.want, res.Ticks, "%s/%s", tc.variant, mode)
			s.Equal(tc.variant, res.Variant)
			s.Nil(res.Path)
			s.Positive(res.Expanded)
			s.GreaterOrEqual(res.Generated, res.Expanded)
		}
	}
}

func (s *SearchSuite) TestBasin_PruningKeepsAnswer() {
	for v, want := range map[waypoint.Variant]int{waypoint.Direct: 18, waypoint.RoundTrip: 54} {
		res, err := astar.Search(context.Background(), s.basin,
			astar.WithVariant(v),
			astar.WithPeriodicPruning(),
		)
		s.Require().NoError(err)
		s.Equal(want, res.Ticks, v.String())
	}
}

func (s *SearchSuite) TestBasin_ModularCacheStaysWithinPeriod() {
	res, err := astar.Search(context.Background(), s.basin, astar.WithVariant(waypoint.RoundTrip))
	s.Require().NoError(err)
	s.LessOrEqual(res.Snapshots, occupancy.Period(s.basin))

	raw, err := astar.Search(context.Background(), s.basin,
		astar.WithVariant(waypoint.RoundTrip),
		astar.WithCacheMode(occupancy.ModeRaw),
	)
	s.Require().NoError(err)
	s.Greater(raw.Snapshots, occupancy.Period(s.basin))
}

func (s *SearchSuite) TestBasin_SharedCache() {
	c := occupancy.NewCache(s.basin)
	d, err := astar.Search(context.Background(), s.basin, astar.WithCache(c))
	s.Require().NoError(err)
	r, err := astar.Search(context.Background(), s.basin,
		astar.WithCache(c),
		astar.WithVariant(waypoint.RoundTrip),
	)
	s.Require().NoError(err)
	s.Equal(18, d.Ticks)
	s.Equal(54, r.Ticks)
	s.Equal(c.Len(), r.Snapshots)
}

func (s *SearchSuite) TestBasin_RoundTripNeverCheaper() {
	d, err := astar.Search(context.Background(), s.basin)
	s.Require().NoError(err)
	r, err := astar.Search(context.Background(), s.basin, astar.WithVariant(waypoint.RoundTrip))
	s.Require().NoError(err)
	s.GreaterOrEqual(r.Ticks, d.Ticks)
	s.GreaterOrEqual(d.Ticks, grid.Manhattan(s.basin.Entrance, s.basin.Exit))
}

func (s *SearchSuite) TestBasin_Path() {
	for _, v := range waypoint.Variants {
		res, err := astar.Search(context.Background(), s.basin,
			astar.WithVariant(v),
			astar.WithReturnPath(),
		)
		s.Require().NoError(err)
		checkRoute(s.T(), s.basin, res)
	}
}

func (s *SearchSuite) TestLogger() {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	_, err := astar.Search(context.Background(), s.basin, astar.WithLogger(logger))
	s.Require().NoError(err)
	out := buf.String()
	s.Contains(out, `"msg":"search_start"`)
	s.Contains(out, `"msg":"search_done"`)
	s.Contains(out, `"ticks":18`)
	s.Contains(out, `"variant":"direct"`)
}

func TestSearchSuite(t *testing.T) {
	suite.Run(t, new(SearchSuite))
}

// checkRoute verifies that res.Path is a legal walk: it starts on the
// entrance, ends on the exit, moves at most one cell per tick, stays on
// traversable cells and never shares a cell with an obstacle.
func checkRoute(t *testing.T, g *grid.Grid, res *astar.Result) {
	t.Helper()
	require.Len(t, res.Path, res.Ticks+1)
	assert.Equal(t, g.Entrance, res.Path[0])
	assert.Equal(t, g.Exit, res.Path[len(res.Path)-1])

	cache := occupancy.NewCache(g)
	auto := waypoint.New(res.Variant, g)
	state := auto.Initial()
	for tick := 1; tick < len(res.Path); tick++ {
		prev, cur := res.Path[tick-1], res.Path[tick]
		assert.LessOrEqual(t, grid.Manhattan(prev, cur), 1, "tick %d jumps %v -> %v", tick, prev, cur)
		assert.True(t, g.Traversable(cur), "tick %d: %v not traversable", tick, cur)
		assert.False(t, cache.Blocked(tick, cur), "tick %d: %v blocked", tick, cur)
		state = auto.Advance(state, cur)
		if tick < len(res.Path)-1 {
			assert.False(t, auto.Satisfied(state), "route satisfied early at tick %d", tick)
		}
	}
	assert.True(t, auto.Satisfied(state))
}

// ------------------------------------------------------------------------
// 2. Waiting.
// ------------------------------------------------------------------------

func TestSearch_WaitIsRequired(t *testing.T) {
	g := mustParse(t, column)
	span := grid.Manhattan(g.Entrance, g.Exit)

	d, err := astar.Search(context.Background(), g, astar.WithReturnPath())
	require.NoError(t, err)
	assert.Equal(t, 6, d.Ticks)
	assert.Greater(t, d.Ticks, span)
	checkRoute(t, g, d)

	r, err := astar.Search(context.Background(), g,
		astar.WithVariant(waypoint.RoundTrip),
		astar.WithReturnPath(),
	)
	require.NoError(t, err)
	assert.Equal(t, 18, r.Ticks)
	checkRoute(t, g, r)
}

func TestSearch_ObstacleFreeIsManhattan(t *testing.T) {
	g, err := grid.New(7, 5, grid.Position{X: 1, Y: 0}, grid.Position{X: 5, Y: 4}, nil)
	require.NoError(t, err)
	span := grid.Manhattan(g.Entrance, g.Exit)

	d, err := astar.Search(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, span, d.Ticks)

	r, err := astar.Search(context.Background(), g, astar.WithVariant(waypoint.RoundTrip))
	require.NoError(t, err)
	assert.Equal(t, 3*span, r.Ticks)
}

// ------------------------------------------------------------------------
// 3. Failure modes.
// ------------------------------------------------------------------------

func TestSearch_NilGrid(t *testing.T) {
	_, err := astar.Search(context.Background(), nil)
	assert.ErrorIs(t, err, astar.ErrNilGrid)
}

func TestSearch_CacheMismatch(t *testing.T) {
	a := mustParse(t, basin)
	b := mustParse(t, basin)
	_, err := astar.Search(context.Background(), a, astar.WithCache(occupancy.NewCache(b)))
	assert.ErrorIs(t, err, astar.ErrCacheMismatch)
}

func TestSearch_Exhausted(t *testing.T) {
	g := mustParse(t, boxed)
	_, err := astar.Search(context.Background(), g, astar.WithPeriodicPruning())
	assert.ErrorIs(t, err, astar.ErrSearchExhausted)
}

func TestSearch_UnsolvableHitsDefaultLimit(t *testing.T) {
	g := mustParse(t, boxed)
	_, err := astar.Search(context.Background(), g)
	require.ErrorIs(t, err, astar.ErrExpansionLimit)
	assert.False(t, errors.Is(err, astar.ErrSearchExhausted))
}

func TestSearch_ExpansionLimit(t *testing.T) {
	g := mustParse(t, basin)
	_, err := astar.Search(context.Background(), g, astar.WithMaxExpansions(1))
	assert.ErrorIs(t, err, astar.ErrExpansionLimit)
}

func TestSearch_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := astar.Search(ctx, mustParse(t, basin))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOptions_Panics(t *testing.T) {
	assert.PanicsWithValue(t, waypoint.ErrBadVariant.Error(), func() {
		astar.WithVariant(waypoint.Variant(7))(&astar.Options{})
	})
	assert.PanicsWithValue(t, astar.ErrBadMaxExpansions.Error(), func() {
		astar.WithMaxExpansions(-1)(&astar.Options{})
	})
}

func TestDefaultOptions(t *testing.T) {
	o := astar.DefaultOptions()
	assert.Equal(t, waypoint.Direct, o.Variant)
	assert.Equal(t, occupancy.ModeModular, o.CacheMode)
	assert.NotNil(t, o.Logger)
	astar.WithLogger(nil)(&o)
	assert.NotNil(t, o.Logger)

	g := mustParse(t, basin)
	assert.Equal(t, g.Area()*12*waypoint.NumStates*4, astar.DefaultExpansionLimit(g))
}
