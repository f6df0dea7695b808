package warpage

import (
	"math"

	"github.com/pemtron-data/warpage.report/internal/config"
)

// Cleaner removes sensor artifacts and non-measured padding from parsed
// grids. Every method is a pure function of its input and the cleaner's
// configuration; inputs are never mutated.
//
// Nullification and border trimming are deliberately separate steps:
// sentinels are instrument fault codes, while border zeros are non-measured
// area, and collapsing the two would overreach on intent.
type Cleaner struct {
	Sentinels   []float64
	Tolerance   float64
	RowFraction float64
	ColFraction float64
}

// NewCleaner builds a Cleaner from a validated configuration.
func NewCleaner(cfg *config.Analysis) *Cleaner {
	return &Cleaner{
		Sentinels:   append([]float64(nil), cfg.ArtifactSentinels...),
		Tolerance:   cfg.ArtifactTolerance,
		RowFraction: cfg.RowFraction,
		ColFraction: cfg.ColFraction,
	}
}

// Clean runs the full cleaning sequence: artifact nullification, border
// zero-padding trim, then the optional centered crop.
func (c *Cleaner) Clean(g *Grid) *Grid {
	out := c.NullifyArtifacts(g)
	out = TrimZeroBorder(out)
	return ExtractCenter(out, c.RowFraction, c.ColFraction)
}

// NullifyArtifacts replaces every value matching a configured sentinel with
// 0. A tolerance of 0 requires exact equality.
func (c *Cleaner) NullifyArtifacts(g *Grid) *Grid {
	if g.IsEmpty() || len(c.Sentinels) == 0 {
		return g.Clone()
	}

	out := g.Clone()
	for i, v := range out.Values {
		for _, s := range c.Sentinels {
			if c.matches(v, s) {
				out.Values[i] = 0
				break
			}
		}
	}
	return out
}

func (c *Cleaner) matches(v, sentinel float64) bool {
	if c.Tolerance == 0 {
		return v == sentinel
	}
	return math.Abs(v-sentinel) <= c.Tolerance
}

// TrimZeroBorder removes leading and trailing rows and columns whose every
// element is exactly 0, repeating until no such border row or column
// remains. Trimming a row can expose an all-zero column and vice versa, so
// the bounds shrink to a fixpoint; the operation is idempotent. Interior
// all-zero rows and columns are kept: only a contiguous border is padding.
// An all-zero grid trims to the empty grid.
func TrimZeroBorder(g *Grid) *Grid {
	if g.IsEmpty() {
		return &Grid{}
	}

	r0, r1 := 0, g.Rows // half-open row bounds
	c0, c1 := 0, g.Cols // half-open column bounds

	changed := true
	for changed && r0 < r1 && c0 < c1 {
		changed = false
		for r0 < r1 && rowAllZero(g, r0, c0, c1) {
			r0++
			changed = true
		}
		for r1 > r0 && rowAllZero(g, r1-1, c0, c1) {
			r1--
			changed = true
		}
		for c0 < c1 && r0 < r1 && colAllZero(g, c0, r0, r1) {
			c0++
			changed = true
		}
		for c1 > c0 && r0 < r1 && colAllZero(g, c1-1, r0, r1) {
			c1--
			changed = true
		}
	}

	if r0 >= r1 || c0 >= c1 {
		return &Grid{}
	}
	return g.SubGrid(r0, c0, r1-r0, c1-c0)
}

func rowAllZero(g *Grid, r, c0, c1 int) bool {
	for c := c0; c < c1; c++ {
		if g.At(r, c) != 0 {
			return false
		}
	}
	return true
}

func colAllZero(g *Grid, c, r0, r1 int) bool {
	for r := r0; r < r1; r++ {
		if g.At(r, c) != 0 {
			return false
		}
	}
	return true
}

// ExtractCenter keeps a symmetric centered sub-grid of
// round(rows*rowFrac) × round(cols*colFrac) cells. Fractions of 1 return the
// input unchanged, exactly. A requested size larger than the grid clamps to
// the full extent; rounding never drops below one row or column.
func ExtractCenter(g *Grid, rowFrac, colFrac float64) *Grid {
	if rowFrac == 1 && colFrac == 1 {
		return g
	}
	if g.IsEmpty() {
		return &Grid{}
	}

	nr := clampDim(int(math.Round(float64(g.Rows)*rowFrac)), g.Rows)
	nc := clampDim(int(math.Round(float64(g.Cols)*colFrac)), g.Cols)
	if nr == g.Rows && nc == g.Cols {
		return g
	}

	r0 := (g.Rows - nr) / 2
	c0 := (g.Cols - nc) / 2
	return g.SubGrid(r0, c0, nr, nc)
}

func clampDim(n, max int) int {
	if n < 1 {
		return 1
	}
	if n > max {
		return max
	}
	return n
}
