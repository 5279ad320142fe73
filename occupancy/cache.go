package occupancy

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/driftpath/grid"
)

// Sentinel errors for occupancy configuration.
var (
	// ErrBadMode indicates an unknown cache Mode.
	ErrBadMode = errors.New("occupancy: unknown cache mode")
	// ErrNegativeTick indicates a snapshot request for t < 0.
	ErrNegativeTick = errors.New("occupancy: tick must be non-negative")
)

// Mode selects how the Cache keys its snapshots.
type Mode int

const (
	// ModeModular keys snapshots by t mod P; at most P snapshots are kept.
	ModeModular Mode = iota
	// ModeRaw keys snapshots by t; memory grows with the largest tick queried.
	ModeRaw
)

// String implements fmt.Stringer; the names match ParseMode.
func (m Mode) String() string {
	switch m {
	case ModeModular:
		return "modular"
	case ModeRaw:
		return "raw"
	}

	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps "modular" or "raw" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "modular", "":
		return ModeModular, nil
	case "raw":
		return ModeRaw, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrBadMode, s)
}

// Option configures a Cache.
type Option func(*Cache)

// WithMode sets the keying strategy. Panics with ErrBadMode for values other
// than ModeModular and ModeRaw.
func WithMode(m Mode) Option {
	return func(c *Cache) {
		if m != ModeModular && m != ModeRaw {
			panic(ErrBadMode.Error())
		}
		c.mode = m
	}
}

// Cache lazily materializes and memoizes one Snapshot per tick. It is
// append-only: a snapshot, once built, is returned by every later request
// for the same key. Not safe for concurrent use.
type Cache struct {
	g      *grid.Grid
	mode   Mode
	period int
	snaps  []*Snapshot // snaps[k] is the snapshot for key k
}

// NewCache returns a Cache seeded with the grid's tick-0 layout.
// Complexity: O(W×H + N).
func NewCache(g *grid.Grid, opts ...Option) *Cache {
	c := &Cache{
		g:      g,
		mode:   ModeModular,
		period: Period(g),
	}
	for _, opt := range opts {
		opt(c)
	}
	capacity := c.period
	if c.mode == ModeRaw {
		capacity = 0
	}
	c.snaps = make([]*Snapshot, 1, capacity+1)
	c.snaps[0] = newSnapshot(g, 0, g.Obstacles)

	return c
}

// Snapshot returns the occupancy at tick t. Missing snapshots between the
// last cached key and t's key are built in order, each from its predecessor.
// Panics with ErrNegativeTick if t < 0.
func (c *Cache) Snapshot(t int) *Snapshot {
	if t < 0 {
		panic(ErrNegativeTick.Error())
	}
	key := t
	if c.mode == ModeModular {
		key = t % c.period
	}
	for len(c.snaps) <= key {
		last := c.snaps[len(c.snaps)-1]
		c.snaps = append(c.snaps, newSnapshot(c.g, len(c.snaps), Step(c.g, last.Obstacles)))
	}

	return c.snaps[key]
}

// Blocked is shorthand for c.Snapshot(t).Blocked(p).
func (c *Cache) Blocked(t int, p grid.Position) bool {
	return c.Snapshot(t).Blocked(p)
}

// Len returns the number of snapshots currently held.
func (c *Cache) Len() int { return len(c.snaps) }

// Period returns lcm(interior width, interior height) for the cached grid.
func (c *Cache) Period() int { return c.period }

// Mode returns the keying strategy.
func (c *Cache) Mode() Mode { return c.mode }

// Grid returns the grid this cache was built for.
func (c *Cache) Grid() *grid.Grid { return c.g }
