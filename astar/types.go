package astar

import (
	"errors"
	"log/slog"

	"github.com/katalvlaran/driftpath/grid"
	"github.com/katalvlaran/driftpath/occupancy"
	"github.com/katalvlaran/driftpath/waypoint"
)

// Sentinel errors returned by Search.
var (
	// ErrNilGrid indicates that a nil *grid.Grid was passed to Search.
	ErrNilGrid = errors.New("astar: grid is nil")

	// ErrCacheMismatch indicates that WithCache supplied a cache built for a
	// different grid.
	ErrCacheMismatch = errors.New("astar: cache belongs to another grid")

	// ErrSearchExhausted indicates the frontier emptied before any node
	// satisfied the route. The domain guarantees solvability, so this is an
	// invariant violation rather than a "no route" answer.
	ErrSearchExhausted = errors.New("astar: search exhausted without reaching the goal")

	// ErrExpansionLimit indicates the defensive expansion cap was reached.
	ErrExpansionLimit = errors.New("astar: expansion limit reached")

	// ErrBadMaxExpansions indicates WithMaxExpansions was given a negative value.
	ErrBadMaxExpansions = errors.New("astar: MaxExpansions must be non-negative")
)

// expansionFactor scales the default cap beyond one full pass over every
// (cell, phase of the period, waypoint state) combination.
const expansionFactor = 4

// Options configures a search.
//
// Variant         – which waypoints must be visited (default waypoint.Direct).
// ReturnPath      – if true, Result.Path holds the route.
// MaxExpansions   – cap on expanded nodes; 0 selects DefaultExpansionLimit.
// PeriodicPruning – skip a node whose (cell, tick mod period, state) was
// already expanded at an earlier tick. The state space becomes finite, so an
// unsolvable grid ends in ErrSearchExhausted instead of the expansion cap.
// CacheMode       – keying of the private occupancy cache (ignored with Cache).
// Cache           – optional caller-owned cache; must be built for the same grid.
// Logger          – structured logger; defaults to a discarding logger.
type Options struct {
	Variant         waypoint.Variant
	ReturnPath      bool
	MaxExpansions   int
	PeriodicPruning bool
	CacheMode       occupancy.Mode
	Cache           *occupancy.Cache
	Logger          *slog.Logger
}

// Option represents a functional option for configuring Search.
type Option func(*Options)

// WithVariant selects the route variant. Panics with waypoint.ErrBadVariant
// for unknown values.
func WithVariant(v waypoint.Variant) Option {
	return func(o *Options) {
		if v != waypoint.Direct && v != waypoint.RoundTrip {
			panic(waypoint.ErrBadVariant.Error())
		}
		o.Variant = v
	}
}

// WithReturnPath enables predecessor tracking so Result.Path is filled.
func WithReturnPath() Option {
	return func(o *Options) {
		o.ReturnPath = true
	}
}

// WithMaxExpansions caps the number of expanded nodes. Zero restores the
// grid-derived default. Panics with ErrBadMaxExpansions if n < 0.
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic(ErrBadMaxExpansions.Error())
		}
		o.MaxExpansions = n
	}
}

// WithPeriodicPruning enables pruning of nodes that repeat an expanded
// (cell, tick mod period, state) combination.
func WithPeriodicPruning() Option {
	return func(o *Options) {
		o.PeriodicPruning = true
	}
}

// WithCacheMode selects how the search's private snapshot cache is keyed.
func WithCacheMode(m occupancy.Mode) Option {
	return func(o *Options) {
		o.CacheMode = m
	}
}

// WithCache makes the search use c instead of building its own cache.
// c must not be used by another search at the same time.
func WithCache(c *occupancy.Cache) Option {
	return func(o *Options) {
		o.Cache = c
	}
}

// WithLogger routes search logs to l. A nil l is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// DefaultOptions returns an Options struct initialized with defaults:
// Direct variant, no path, grid-derived expansion cap, modular cache,
// discarding logger.
func DefaultOptions() Options {
	return Options{
		Variant:         waypoint.Direct,
		ReturnPath:      false,
		MaxExpansions:   0,
		PeriodicPruning: false,
		CacheMode:       occupancy.ModeModular,
		Logger:          slog.New(slog.DiscardHandler),
	}
}

// DefaultExpansionLimit is area × period × waypoint states × a small factor.
// An optimal route never revisits a (cell, tick mod period, state) triple,
// so a correct search on a solvable grid stays well below it.
func DefaultExpansionLimit(g *grid.Grid) int {
	return g.Area() * occupancy.Period(g) * waypoint.NumStates * expansionFactor
}

// Result is the outcome of a successful search.
type Result struct {
	// Variant is the route variant that was solved.
	Variant waypoint.Variant
	// Ticks is the minimum number of ticks to satisfy the route.
	Ticks int
	// Expanded counts nodes popped and expanded.
	Expanded int
	// Generated counts nodes pushed onto the frontier, including the start.
	Generated int
	// Snapshots is the size of the occupancy cache when the search ended.
	Snapshots int
	// Path holds the agent's cell at every tick 0..Ticks when ReturnPath was
	// set; nil otherwise.
	Path []grid.Position
}
