package planner

import (
	"github.com/katalvlaran/driftpath/grid"
	"github.com/katalvlaran/driftpath/occupancy"
)

// Summary is the JSON view of a Report shared by the CLI and the server.
type Summary struct {
	RunID     string          `json:"run_id"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	Obstacles int             `json:"obstacles"`
	Period    int             `json:"period"`
	ElapsedMS float64         `json:"elapsed_ms"`
	Results   []VariantResult `json:"results"`
}

// VariantResult is one solved variant.
type VariantResult struct {
	Variant   string          `json:"variant"`
	Ticks     int             `json:"ticks"`
	Expanded  int             `json:"expanded"`
	Generated int             `json:"generated"`
	Snapshots int             `json:"snapshots"`
	Path      []grid.Position `json:"path,omitempty"`
}

// Summary flattens r in waypoint.Variants order.
func (r *Report) Summary() Summary {
	s := Summary{
		RunID:     r.RunID.String(),
		Width:     r.Grid.Width,
		Height:    r.Grid.Height,
		Obstacles: len(r.Grid.Obstacles),
		Period:    occupancy.Period(r.Grid),
		ElapsedMS: float64(r.Elapsed.Microseconds()) / 1000,
	}
	for _, v := range r.Variants() {
		res := r.Results[v]
		s.Results = append(s.Results, VariantResult{
			Variant:   v.String(),
			Ticks:     res.Ticks,
			Expanded:  res.Expanded,
			Generated: res.Generated,
			Snapshots: res.Snapshots,
			Path:      res.Path,
		})
	}

	return s
}
