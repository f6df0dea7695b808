package warpage

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds per-grid summary statistics, computed over the full cleaned
// grid. Interior zeros are included: they are potentially real measurements,
// and only border padding was treated as noise by the cleaner.
type Summary struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"` // population standard deviation
	Range float64 `json:"range"`
	Rows  int     `json:"rows"`
	Cols  int     `json:"cols"`
}

// Defined reports whether the summary came from a non-empty grid.
func (s Summary) Defined() bool {
	return s.Rows > 0 && s.Cols > 0
}

// ComputeSummary derives summary statistics for a cleaned grid. An empty
// grid yields the undefined sentinel summary (NaN values, 0×0 shape) so
// batch aggregation can skip it instead of erroring.
func ComputeSummary(g *Grid) Summary {
	if g.IsEmpty() {
		nan := math.NaN()
		return Summary{Min: nan, Max: nan, Mean: nan, Std: nan, Range: nan}
	}

	min := floats.Min(g.Values)
	max := floats.Max(g.Values)
	return Summary{
		Min:   min,
		Max:   max,
		Mean:  stat.Mean(g.Values, nil),
		Std:   stat.PopStdDev(g.Values, nil),
		Range: max - min,
		Rows:  g.Rows,
		Cols:  g.Cols,
	}
}
