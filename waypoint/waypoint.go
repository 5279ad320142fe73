// Package waypoint tracks progress through the ordered sub-goals of a route.
//
// A Direct route is satisfied on the first arrival at the exit. A RoundTrip
// route must reach the exit, come back to the entrance, and reach the exit
// again, in that order:
//
//	AwaitingFirstArrival --exit--> AwaitingReturn --entrance--> AwaitingFinalArrival --exit--> Satisfied
//
// Direct routes start in AwaitingFinalArrival, so both variants share one
// transition table. States only ever advance.
package waypoint

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/driftpath/grid"
)

// ErrBadVariant indicates an unknown variant name.
var ErrBadVariant = errors.New("waypoint: unknown variant")

// Variant selects which sub-goals a route must satisfy.
type Variant uint8

const (
	// Direct: entrance to exit once.
	Direct Variant = iota
	// RoundTrip: entrance to exit, back to entrance, and to exit again.
	RoundTrip
)

// Variants lists every Variant in declaration order.
var Variants = []Variant{Direct, RoundTrip}

// String implements fmt.Stringer; the names match ParseVariant.
func (v Variant) String() string {
	switch v {
	case Direct:
		return "direct"
	case RoundTrip:
		return "round-trip"
	}

	return fmt.Sprintf("Variant(%d)", uint8(v))
}

// ParseVariant maps "direct" or "round-trip" to a Variant.
func ParseVariant(s string) (Variant, error) {
	for _, v := range Variants {
		if v.String() == s {
			return v, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrBadVariant, s)
}

// Legs is the number of directed traversals the variant requires.
func (v Variant) Legs() int {
	if v == RoundTrip {
		return 3
	}

	return 1
}

// State is the progress of one route.
type State uint8

const (
	// AwaitingFirstArrival: the exit has not been reached yet.
	AwaitingFirstArrival State = iota
	// AwaitingReturn: the exit was reached; heading back to the entrance.
	AwaitingReturn
	// AwaitingFinalArrival: on the last leg toward the exit.
	AwaitingFinalArrival
	// Satisfied: every sub-goal is met.
	Satisfied
)

// NumStates is the number of distinct States.
const NumStates = int(Satisfied) + 1

func (s State) String() string {
	switch s {
	case AwaitingFirstArrival:
		return "awaiting-first-arrival"
	case AwaitingReturn:
		return "awaiting-return"
	case AwaitingFinalArrival:
		return "awaiting-final-arrival"
	case Satisfied:
		return "satisfied"
	}

	return fmt.Sprintf("State(%d)", uint8(s))
}

// Automaton advances State as the agent enters cells.
type Automaton struct {
	variant  Variant
	entrance grid.Position
	exit     grid.Position
	legSpan  int // Manhattan(entrance, exit)
}

// New returns the automaton for variant on g.
func New(v Variant, g *grid.Grid) Automaton {
	return Automaton{
		variant:  v,
		entrance: g.Entrance,
		exit:     g.Exit,
		legSpan:  grid.Manhattan(g.Entrance, g.Exit),
	}
}

// Variant returns the configured variant.
func (a Automaton) Variant() Variant { return a.variant }

// Initial is the state at tick 0.
func (a Automaton) Initial() State {
	if a.variant == Direct {
		return AwaitingFinalArrival
	}

	return AwaitingFirstArrival
}

// Advance returns the state after entering p while in s. Only three
// transitions exist; every other (state, cell) pair leaves s unchanged.
func (a Automaton) Advance(s State, p grid.Position) State {
	switch {
	case s == AwaitingFirstArrival && p == a.exit:
		return AwaitingReturn
	case s == AwaitingReturn && p == a.entrance:
		return AwaitingFinalArrival
	case s == AwaitingFinalArrival && p == a.exit:
		return Satisfied
	}

	return s
}

// Satisfied reports whether s completes the route.
func (a Automaton) Satisfied(s State) bool { return s == Satisfied }

// Target returns the next waypoint to reach from s; ok is false once
// the route is satisfied.
func (a Automaton) Target(s State) (p grid.Position, ok bool) {
	switch s {
	case AwaitingFirstArrival, AwaitingFinalArrival:
		return a.exit, true
	case AwaitingReturn:
		return a.entrance, true
	}

	return grid.Position{}, false
}

// Remaining is a lower bound on the ticks still needed from p in state s:
// the Manhattan distance to the next waypoint plus one entrance-exit span
// for every leg not yet begun. Each move costs one tick and Manhattan
// distance ignores obstacles, so the bound never overestimates.
func (a Automaton) Remaining(s State, p grid.Position) int {
	target, ok := a.Target(s)
	if !ok {
		return 0
	}
	pending := 0
	switch s {
	case AwaitingFirstArrival:
		pending = 2
	case AwaitingReturn:
		pending = 1
	}

	return grid.Manhattan(p, target) + pending*a.legSpan
}
