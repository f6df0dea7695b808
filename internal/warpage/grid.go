package warpage

import "fmt"

// Grid is a rectangular surface-measurement grid in row-major order.
// The zero value is the empty grid.
type Grid struct {
	Rows   int
	Cols   int
	Values []float64 // len == Rows*Cols
}

// NewGrid allocates a zeroed grid of the given shape.
func NewGrid(rows, cols int) *Grid {
	if rows <= 0 || cols <= 0 {
		return &Grid{}
	}
	return &Grid{Rows: rows, Cols: cols, Values: make([]float64, rows*cols)}
}

// GridFromRows builds a grid from per-row slices. Every row must have the
// same length.
func GridFromRows(rows [][]float64) (*Grid, error) {
	if len(rows) == 0 {
		return &Grid{}, nil
	}
	cols := len(rows[0])
	if cols == 0 {
		return nil, fmt.Errorf("row 1 has no columns")
	}
	g := NewGrid(len(rows), cols)
	for r, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d columns, expected %d", r+1, len(row), cols)
		}
		copy(g.Values[r*cols:(r+1)*cols], row)
	}
	return g, nil
}

// IsEmpty reports whether the grid has no cells.
func (g *Grid) IsEmpty() bool {
	return g == nil || g.Rows == 0 || g.Cols == 0
}

// At returns the value at row r, column c.
func (g *Grid) At(r, c int) float64 {
	return g.Values[r*g.Cols+c]
}

// Set assigns the value at row r, column c.
func (g *Grid) Set(r, c int, v float64) {
	g.Values[r*g.Cols+c] = v
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	if g.IsEmpty() {
		return &Grid{}
	}
	out := NewGrid(g.Rows, g.Cols)
	copy(out.Values, g.Values)
	return out
}

// SubGrid copies the rows×cols region starting at (r0, c0) into a new grid.
// An empty region yields the empty grid.
func (g *Grid) SubGrid(r0, c0, rows, cols int) *Grid {
	if rows <= 0 || cols <= 0 {
		return &Grid{}
	}
	out := NewGrid(rows, cols)
	for r := 0; r < rows; r++ {
		src := (r0+r)*g.Cols + c0
		copy(out.Values[r*cols:(r+1)*cols], g.Values[src:src+cols])
	}
	return out
}

// Shape returns the grid dimensions as (rows, cols).
func (g *Grid) Shape() (int, int) {
	if g.IsEmpty() {
		return 0, 0
	}
	return g.Rows, g.Cols
}
