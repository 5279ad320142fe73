// Package occupancy models how drifting obstacles fill a grid over time.
//
// What:
//
//   - Step advances every obstacle by one tick, wrapping at the walls to the
//     opposite interior edge.
//   - Snapshot is the blocked-cell count grid for one tick: obstacles plus
//     the static border walls, with the entrance and exit left open.
//   - Cache materializes snapshots on demand and memoizes them, so a search
//     that revisits a tick from many positions pays for it once.
//
// Periodicity:
//
//	Every obstacle returns to its start after a multiple of the interior
//	extent along its axis, so the whole field repeats with period
//	P = lcm(interior width, interior height). Cache can key snapshots by
//	t mod P (ModeModular, the default, memory bounded by P) or by raw t
//	(ModeRaw, memory grows with the deepest tick queried). Both return
//	identical occupancy for any t.
//
// Complexity:
//
//   - Step:              O(N) for N obstacles.
//   - Cache.Snapshot(t): O(1) when cached, otherwise O((t-k)·(N + W·H))
//     where k is the last cached key.
//
// Thread safety:
//
//	Cache is not safe for concurrent use; snapshot t+1 is derived from
//	snapshot t, so construction is inherently sequential. Give every
//	concurrent search its own Cache. Snapshots themselves are read-only
//	once returned and may be shared freely.
package occupancy
