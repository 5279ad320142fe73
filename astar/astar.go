package astar

import (
	"container/heap"
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/driftpath/grid"
	"github.com/katalvlaran/driftpath/occupancy"
	"github.com/katalvlaran/driftpath/waypoint"
)

// ctxCheckInterval is how many expansions pass between ctx.Err() checks.
const ctxCheckInterval = 1 << 10

// actions are the five per-tick moves: wait, north, south, east, west.
var actions = [...]grid.Position{
	{X: 0, Y: 0},
	grid.North.Offset(),
	grid.South.Offset(),
	grid.East.Offset(),
	grid.West.Offset(),
}

// Search returns the minimum tick count at which the agent, starting on the
// entrance at tick 0, has satisfied the configured route variant on g.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGrid).
//  2. A cache supplied through WithCache must belong to g (ErrCacheMismatch).
//
// Failure modes:
//
//   - ErrSearchExhausted: no satisfying node is reachable.
//   - ErrExpansionLimit:  the cap (WithMaxExpansions or DefaultExpansionLimit) was hit.
//   - ctx.Err() wrapped:  ctx was cancelled; checked every 1024 expansions.
//
// Complexity:
//
//   - Time:  O(E log E) for E generated nodes.
//   - Space: O(E) plus the snapshot cache.
func Search(ctx context.Context, g *grid.Grid, opts ...Option) (*Result, error) {
	// 1) Build Options
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	variant := cfg.Variant.String()

	// 2) Validate inputs
	if g == nil {
		searchTotal.WithLabelValues(variant, resultInvalid).Inc()
		return nil, ErrNilGrid
	}
	cache := cfg.Cache
	if cache == nil {
		cache = occupancy.NewCache(g, occupancy.WithMode(cfg.CacheMode))
	} else if cache.Grid() != g {
		searchTotal.WithLabelValues(variant, resultInvalid).Inc()
		return nil, ErrCacheMismatch
	}
	limit := cfg.MaxExpansions
	if limit == 0 {
		limit = DefaultExpansionLimit(g)
	}

	ctx, span := tracer.Start(ctx, "astar.Search",
		trace.WithAttributes(
			attribute.String("variant", variant),
			attribute.Int("grid_width", g.Width),
			attribute.Int("grid_height", g.Height),
			attribute.Int("obstacles", len(g.Obstacles)),
			attribute.Int("period", cache.Period()),
			attribute.Int("max_expansions", limit),
		),
	)
	defer span.End()

	logger := cfg.Logger.With(slog.String("variant", variant))
	logger.Debug("search_start",
		slog.Int("width", g.Width),
		slog.Int("height", g.Height),
		slog.Int("obstacles", len(g.Obstacles)),
		slog.Int("period", cache.Period()),
		slog.String("cache_mode", cache.Mode().String()),
		slog.Int("max_expansions", limit),
	)
	startTime := time.Now()

	// 3) Run
	r := &runner{
		g:     g,
		auto:  waypoint.New(cfg.Variant, g),
		cache: cache,
		limit: limit,
		best:  make(map[nodeKey]int, g.Area()),
		pq:    make(nodePQ, 0, g.Area()),
	}
	if cfg.ReturnPath {
		r.prev = make(map[nodeKey]nodeKey, g.Area())
	}
	if cfg.PeriodicPruning {
		r.period = cache.Period()
		r.closed = make(map[nodeKey]struct{}, g.Area())
	}
	r.init()
	goal, err := r.process(ctx)

	// 4) Record outcome
	duration := time.Since(startTime)
	outcome := classify(err)
	searchTotal.WithLabelValues(variant, outcome).Inc()
	searchDuration.WithLabelValues(variant).Observe(duration.Seconds())
	searchExpanded.WithLabelValues(variant).Observe(float64(r.expanded))
	span.SetAttributes(
		attribute.Int("expanded", r.expanded),
		attribute.Int("generated", r.generated),
		attribute.Int("snapshots", cache.Len()),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		logger.Warn("search_failed",
			slog.String("error", err.Error()),
			slog.String("result", outcome),
			slog.Int("expanded", r.expanded),
			slog.Duration("duration", duration),
		)
		return nil, err
	}

	res := &Result{
		Variant:   cfg.Variant,
		Ticks:     goal.tick,
		Expanded:  r.expanded,
		Generated: r.generated,
		Snapshots: cache.Len(),
	}
	if r.prev != nil {
		res.Path = r.path(goal)
	}
	span.SetAttributes(attribute.Int("ticks", res.Ticks))
	span.SetStatus(codes.Ok, "route found")
	logger.Info("search_done",
		slog.Int("ticks", res.Ticks),
		slog.Int("expanded", res.Expanded),
		slog.Int("generated", res.Generated),
		slog.Int("snapshots", res.Snapshots),
		slog.Duration("duration", duration),
	)

	return res, nil
}

// nodeKey identifies a search node; it is the deduplication key for the
// best-cost map.
type nodeKey struct {
	pos   grid.Position
	tick  int
	state waypoint.State
}

// runner holds the mutable state for a single search.
type runner struct {
	g     *grid.Grid
	auto  waypoint.Automaton
	cache *occupancy.Cache
	limit int

	best map[nodeKey]int     // best known g per node
	prev map[nodeKey]nodeKey // predecessor links; nil unless ReturnPath
	pq   nodePQ

	period int                  // occupancy period; set only with PeriodicPruning
	closed map[nodeKey]struct{} // expanded nodes with tick reduced mod period

	seq       uint64 // insertion counter for stable tie-breaking
	expanded  int
	generated int
}

// init pushes the start node: entrance, tick 0, initial waypoint state.
func (r *runner) init() {
	heap.Init(&r.pq)
	start := nodeKey{pos: r.g.Entrance, tick: 0, state: r.auto.Initial()}
	r.best[start] = 0
	r.push(start, 0)
}

// push records key on the frontier with cost g.
func (r *runner) push(key nodeKey, g int) {
	heap.Push(&r.pq, &nodeItem{
		key: key,
		g:   g,
		f:   g + r.auto.Remaining(key.state, key.pos),
		seq: r.seq,
	})
	r.seq++
	r.generated++
}

// process pops nodes in f order until a satisfied exit node appears.
func (r *runner) process(ctx context.Context) (nodeKey, error) {
	for r.pq.Len() > 0 {
		if r.expanded%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nodeKey{}, fmt.Errorf("astar: search interrupted after %d expansions: %w", r.expanded, err)
			}
		}

		// 1) Pop the lowest-f item; skip entries superseded by a cheaper push.
		item := heap.Pop(&r.pq).(*nodeItem)
		cur := item.key
		if item.g != r.best[cur] {
			continue
		}

		// 2) Goal test on pop keeps the answer optimal.
		if cur.pos == r.g.Exit && r.auto.Satisfied(cur.state) {
			return cur, nil
		}

		// 3) A node repeating an expanded phase can reach nothing new.
		if r.closed != nil {
			phase := nodeKey{pos: cur.pos, tick: cur.tick % r.period, state: cur.state}
			if _, seen := r.closed[phase]; seen {
				continue
			}
			r.closed[phase] = struct{}{}
		}

		// 4) Defensive cap.
		if r.expanded >= r.limit {
			return nodeKey{}, fmt.Errorf("%w: %d expansions, frontier %d", ErrExpansionLimit, r.expanded, r.pq.Len())
		}
		r.expanded++

		r.relax(cur, item.g)
	}

	return nodeKey{}, ErrSearchExhausted
}

// relax generates the successors of cur at tick cur.tick+1.
func (r *runner) relax(cur nodeKey, g int) {
	next := cur.tick + 1
	snap := r.cache.Snapshot(next)
	ng := g + 1
	for _, d := range actions {
		p := cur.pos.Add(d)
		if !r.g.Traversable(p) || snap.Blocked(p) {
			continue
		}
		key := nodeKey{pos: p, tick: next, state: r.auto.Advance(cur.state, p)}
		if old, ok := r.best[key]; ok && old <= ng {
			continue
		}
		r.best[key] = ng
		if r.prev != nil {
			r.prev[key] = cur
		}
		r.push(key, ng)
	}
}

// path walks predecessor links back from goal; index i is the cell at tick i.
func (r *runner) path(goal nodeKey) []grid.Position {
	out := make([]grid.Position, goal.tick+1)
	for at := goal; ; at = r.prev[at] {
		out[at.tick] = at.pos
		if at.tick == 0 {
			break
		}
	}

	return out
}

// nodeItem is a frontier entry.
type nodeItem struct {
	key nodeKey
	g   int    // ticks from the start; equals key.tick
	f   int    // g + heuristic
	seq uint64 // push order
}

// nodePQ is a min-heap of *nodeItem ordered by f, then by larger g (deeper
// nodes first), then by push order.
type nodePQ []*nodeItem

// Len returns the number of items in the heap.
func (pq nodePQ) Len() int { return len(pq) }

// Less orders by f ascending; ties prefer deeper nodes, then older pushes.
func (pq nodePQ) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.g != b.g {
		return a.g > b.g
	}

	return a.seq < b.seq
}

// Swap swaps two elements in the heap.
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap. x must be *nodeItem.
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

// Pop removes and returns the last element; heap.Pop moves the minimum there first.
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
