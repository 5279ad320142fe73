// Package driftpath plans minimum-time routes for a single agent crossing a
// walled grid full of drifting obstacles.
//
// 🚀 What is driftpath?
//
//	A small, dependency-light toolkit that brings together:
//		• Grid model & parser: walls, one entrance gap, one exit gap, headings
//		• Occupancy: the per-tick drift rule with wrap-around, snapshot caching
//		• Waypoints: direct crossing or entrance → exit → entrance → exit
//		• Search: time-expanded A* where waiting is a legal move
//		• Planner: concurrent variants per grid, run IDs, metrics & spans
//		• Surfaces: `driftpath` CLI and an HTTP server
//
// ✨ How it works
//
//   - Obstacles move one cell per tick and wrap to the far interior edge,
//     so the whole layout repeats every lcm(interior width, interior height)
//     ticks. Snapshots are cached by phase, never recomputed.
//   - A search node is (cell, tick, waypoint state); each step costs one
//     tick and the heuristic never overestimates, so the first goal popped
//     is optimal.
//
// Under the hood:
//
//	grid/            Position, Direction, Obstacle, Grid + text parser
//	occupancy/       Step, Period, Snapshot, Cache
//	waypoint/        Variant, State, Automaton (Remaining heuristic)
//	astar/           Search with functional options, metrics, tracing
//	planner/         concurrent multi-variant runs, JSON Summary
//	config/          YAML configuration with validation
//	server/          gin HTTP surface (/v1/solve, /v1/health, /metrics)
//	cmd/driftpath/   cobra CLI (solve, frame, serve, config, version)
//
// Quick ASCII example (tick 0):
//
//	#.######
//	#>>.<^<#
//	#.<..<<#
//	#>v.><>#
//	#<^v^^>#
//	######.#
//
// crosses in 18 ticks directly and in 54 ticks as a round trip.
//
//	go install github.com/katalvlaran/driftpath/cmd/driftpath@latest
package driftpath
