package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/driftpath/occupancy"
)

func newFrameCmd(a *app) *cobra.Command {
	var (
		file string
		tick int
		mode string
	)
	cmd := &cobra.Command{
		Use:   "frame",
		Short: "Render the obstacle layout at a tick",
		Long: `Frame prints the grid as it looks at --tick. A cell holding one
obstacle shows its arrow, a cell holding several shows their count.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if tick < 0 {
				return fmt.Errorf("%w: %d", occupancy.ErrNegativeTick, tick)
			}
			m, err := occupancy.ParseMode(mode)
			if err != nil {
				return err
			}
			g, err := a.readGrid(file)
			if err != nil {
				return err
			}
			cache := occupancy.NewCache(g, occupancy.WithMode(m))
			snap := cache.Snapshot(tick)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "tick %d (phase %d of %d)\n", tick, tick%cache.Period(), cache.Period())
			fmt.Fprint(out, snap.Render())

			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&file, "file", "f", "", "grid file; standard input when empty or -")
	fl.IntVarP(&tick, "tick", "t", 0, "tick to render")
	fl.StringVar(&mode, "cache-mode", "modular", "snapshot cache keying: modular or raw")

	return cmd
}
