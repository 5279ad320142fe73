package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/driftpath/astar"
	"github.com/katalvlaran/driftpath/grid"
	"github.com/katalvlaran/driftpath/waypoint"
)

var (
	// ErrUnknownVariant indicates a variant outside waypoint.Variants.
	ErrUnknownVariant = errors.New("planner: unknown variant")

	// ErrInconsistentCosts indicates the round trip was solved in fewer ticks
	// than the direct crossing of the same grid.
	ErrInconsistentCosts = errors.New("planner: round trip cheaper than direct route")
)

var tracer = otel.Tracer("driftpath.planner")

// Planner runs searches for several variants of one grid concurrently.
type Planner struct {
	logger *slog.Logger
	search []astar.Option
}

// Option configures a Planner.
type Option func(*Planner)

// WithLogger sets the logger for run-level events. Each search inherits it
// with run_id attached. A nil l is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(p *Planner) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithSearchOptions appends options passed to every astar.Search of a run.
// WithVariant, WithLogger and WithCache are overridden per search.
func WithSearchOptions(opts ...astar.Option) Option {
	return func(p *Planner) {
		p.search = append(p.search, opts...)
	}
}

// New returns a Planner with a discarding logger and default search options.
func New(opts ...Option) *Planner {
	p := &Planner{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Report is the outcome of one Solve call.
type Report struct {
	// RunID identifies the run in logs and traces.
	RunID uuid.UUID
	// Grid is the solved grid.
	Grid *grid.Grid
	// Results holds one search result per requested variant.
	Results map[waypoint.Variant]*astar.Result
	// Elapsed is the wall time of the whole run.
	Elapsed time.Duration
}

// Variants returns the solved variants in waypoint.Variants order.
func (r *Report) Variants() []waypoint.Variant {
	out := make([]waypoint.Variant, 0, len(r.Results))
	for _, v := range waypoint.Variants {
		if _, ok := r.Results[v]; ok {
			out = append(out, v)
		}
	}

	return out
}

// Solve searches g once per variant. With no variants every variant in
// waypoint.Variants is solved; duplicates are solved once.
//
// The first failing search cancels the others and its error is returned
// wrapped with the run ID. When the finished results violate monotonic goal
// cost, Solve returns the complete report together with ErrInconsistentCosts.
func (p *Planner) Solve(ctx context.Context, g *grid.Grid, variants ...waypoint.Variant) (*Report, error) {
	if g == nil {
		return nil, astar.ErrNilGrid
	}
	if len(variants) == 0 {
		variants = waypoint.Variants
	}
	todo := make([]waypoint.Variant, 0, len(variants))
	for _, v := range variants {
		if !slices.Contains(waypoint.Variants, v) {
			return nil, fmt.Errorf("%w: %d", ErrUnknownVariant, v)
		}
		if !slices.Contains(todo, v) {
			todo = append(todo, v)
		}
	}

	runID := uuid.New()
	logger := p.logger.With(slog.String("run_id", runID.String()))
	ctx, span := tracer.Start(ctx, "planner.Solve",
		trace.WithAttributes(
			attribute.String("run_id", runID.String()),
			attribute.Int("variants", len(todo)),
		),
	)
	defer span.End()

	logger.Info("run_start",
		slog.Int("variants", len(todo)),
		slog.Int("width", g.Width),
		slog.Int("height", g.Height),
	)
	start := time.Now()

	results := make([]*astar.Result, len(todo))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, v := range todo {
		opts := make([]astar.Option, 0, len(p.search)+3)
		opts = append(opts, p.search...)
		opts = append(opts,
			astar.WithVariant(v),
			astar.WithCache(nil),
			astar.WithLogger(logger),
		)
		eg.Go(func() error {
			res, err := astar.Search(egCtx, g, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", v, err)
			}
			results[i] = res

			return nil
		})
	}
	err := eg.Wait()
	elapsed := time.Since(start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		logger.Error("run_failed",
			slog.String("error", err.Error()),
			slog.Duration("elapsed", elapsed),
		)
		return nil, fmt.Errorf("planner: run %s: %w", runID, err)
	}

	report := &Report{
		RunID:   runID,
		Grid:    g,
		Results: make(map[waypoint.Variant]*astar.Result, len(todo)),
		Elapsed: elapsed,
	}
	for i, v := range todo {
		report.Results[v] = results[i]
		span.SetAttributes(attribute.Int("ticks."+v.String(), results[i].Ticks))
	}
	if err := checkCosts(report.Results); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "inconsistent costs")
		logger.Error("run_inconsistent", slog.String("error", err.Error()))
		return report, err
	}

	span.SetStatus(codes.Ok, "solved")
	logger.Info("run_done", slog.Duration("elapsed", elapsed))

	return report, nil
}

// checkCosts enforces that visiting more waypoints never takes fewer ticks.
func checkCosts(results map[waypoint.Variant]*astar.Result) error {
	d, okD := results[waypoint.Direct]
	r, okR := results[waypoint.RoundTrip]
	if !okD || !okR {
		return nil
	}
	if r.Ticks < d.Ticks {
		return fmt.Errorf("%w: round trip %d < direct %d", ErrInconsistentCosts, r.Ticks, d.Ticks)
	}

	return nil
}
