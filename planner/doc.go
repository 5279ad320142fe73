// Package planner solves one grid for several route variants at once.
//
// Each requested variant runs astar.Search in its own goroutine under an
// errgroup, and every search builds its own occupancy cache, so no state is
// shared between goroutines. A run is tagged with a random UUID that appears
// in the returned Report and on every log line of the run.
//
// When both the direct and the round-trip variant are solved, the report is
// checked for monotonic goal cost: a round trip can never finish before the
// direct crossing. A violation is returned as ErrInconsistentCosts.
//
// Errors:
//
//   - astar.ErrNilGrid:     nil grid.
//   - ErrUnknownVariant:    a variant outside waypoint.Variants was requested.
//   - ErrInconsistentCosts: round trip finished earlier than direct.
//   - Any error of astar.Search, wrapped with the run ID.
package planner
