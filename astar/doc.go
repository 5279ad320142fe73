// Package astar finds the minimum number of ticks an agent needs to cross a
// grid of drifting obstacles, using A* over a time-expanded state space.
//
// Overview:
//
//   - A search node is (position, tick, waypoint state). Every expansion
//     advances the tick by exactly one; the five candidate actions are
//     wait, north, south, east and west.
//   - A neighbor is valid iff it is traversable (interior or one of the two
//     gaps) and free in the occupancy snapshot of the next tick. Snapshots
//     come from an occupancy.Cache owned by the search.
//   - Nodes are ordered by f = g + h, where g is the tick and h is the
//     waypoint automaton's Remaining bound (Manhattan distance to the next
//     waypoint plus one entrance-exit span per leg not yet begun). h never
//     overestimates, so the first goal node popped is optimal.
//
// When to use:
//
//   - Direct variant: shortest entrance → exit crossing.
//   - RoundTrip variant: entrance → exit → entrance → exit.
//
// Key features:
//
//   - Functional options (WithVariant, WithReturnPath, WithMaxExpansions,
//     WithPeriodicPruning, WithCacheMode, WithCache, WithLogger).
//   - ReturnPath: keeps predecessor links and returns the route, one cell per
//     tick. Off by default since only the tick count is usually needed.
//   - PeriodicPruning: a node repeating the (cell, tick mod period, state) of
//     an expanded node is dropped. Such a node always has the larger f, so the
//     earlier one is popped first and the answer is unchanged.
//   - A defensive expansion cap turns a runaway search into ErrExpansionLimit
//     instead of an endless loop.
//   - Prometheus counters/histograms and an OpenTelemetry span per search.
//
// Performance and complexity:
//
//   - Time:  O(E log E) for E generated nodes; each node is pushed at most
//     once because its g always equals its tick.
//   - Space: O(E) for the best-cost map and the heap, plus the snapshot cache
//     (bounded by the period under occupancy.ModeModular).
//
// Error handling (sentinel errors):
//
//   - ErrNilGrid:          nil *grid.Grid.
//   - ErrCacheMismatch:    WithCache supplied a cache built for another grid.
//   - ErrSearchExhausted:  the frontier emptied before the route was satisfied.
//     Solvable inputs never produce it; treat it as an invariant violation.
//   - ErrExpansionLimit:   the expansion cap was reached.
//   - ErrBadMaxExpansions: (panic) WithMaxExpansions was given a negative value.
//   - Context errors are returned wrapped when ctx is cancelled.
//
// Thread safety:
//
//   - Search is safe to call concurrently as long as each call owns its cache.
//     Do not share one WithCache cache between concurrent searches.
package astar
