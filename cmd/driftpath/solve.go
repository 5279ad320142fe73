package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/driftpath/grid"
	"github.com/katalvlaran/driftpath/occupancy"
	"github.com/katalvlaran/driftpath/planner"
)

type solveFlags struct {
	file          string
	variant       string
	cacheMode     string
	maxExpansions int
	prune         bool
	asJSON        bool
	showRoute     bool
}

func newSolveCmd(a *app) *cobra.Command {
	var f solveFlags
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Print the minimum number of ticks to cross a grid",
		Long: `Solve reads a grid (from --file or standard input) and prints the
minimum tick count for the direct crossing, the round trip, or both.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSolve(cmd, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.file, "file", "f", "", "grid file; standard input when empty or -")
	fl.StringVar(&f.variant, "variant", "", "direct, round-trip or both (overrides config)")
	fl.StringVar(&f.cacheMode, "cache-mode", "", "snapshot cache keying: modular or raw (overrides config)")
	fl.IntVar(&f.maxExpansions, "max-expansions", 0, "expansion cap per search; 0 derives it from the grid")
	fl.BoolVar(&f.prune, "prune", false, "drop nodes that repeat an expanded phase of the obstacle cycle")
	fl.BoolVar(&f.asJSON, "json", false, "print the report as JSON")
	fl.BoolVar(&f.showRoute, "show-route", false, "print every frame of each route")

	return cmd
}

func (a *app) runSolve(cmd *cobra.Command, f solveFlags) error {
	g, err := a.readGrid(f.file)
	if err != nil {
		return err
	}

	sc := a.cfg.Search
	fl := cmd.Flags()
	if fl.Changed("variant") {
		sc.Variant = f.variant
	}
	if fl.Changed("cache-mode") {
		sc.CacheMode = f.cacheMode
	}
	if fl.Changed("max-expansions") {
		sc.MaxExpansions = f.maxExpansions
	}
	if f.prune {
		sc.PeriodicPruning = true
	}
	if f.showRoute {
		sc.ReturnPath = true
	}
	variants, err := sc.Variants()
	if err != nil {
		return err
	}
	opts, err := sc.Options()
	if err != nil {
		return err
	}

	p := planner.New(
		planner.WithLogger(a.logger),
		planner.WithSearchOptions(opts...),
	)
	rep, err := p.Solve(cmd.Context(), g, variants...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if f.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rep.Summary())
	}
	sum := rep.Summary()
	fmt.Fprintf(out, "grid %dx%d, %d obstacles, period %d\n", sum.Width, sum.Height, sum.Obstacles, sum.Period)
	for _, r := range sum.Results {
		fmt.Fprintf(out, "%s: %d\n", r.Variant, r.Ticks)
	}
	if f.showRoute {
		for _, r := range sum.Results {
			printRoute(out, g, r)
		}
	}

	return nil
}

// printRoute prints one frame per tick with the agent drawn as 'E'.
func printRoute(w io.Writer, g *grid.Grid, r planner.VariantResult) {
	cache := occupancy.NewCache(g)
	fmt.Fprintf(w, "\n== %s ==\n", r.Variant)
	for tick, p := range r.Path {
		fmt.Fprintf(w, "tick %d\n%s", tick, overlay(cache.Snapshot(tick).Render(), g.Width, p, 'E'))
	}
}
