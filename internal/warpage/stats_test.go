package warpage

import (
	"math"
	"testing"
)

func TestComputeSummary(t *testing.T) {
	g := mustGrid(t, [][]float64{{1, 2}, {3, 4}})

	s := ComputeSummary(g)

	if !s.Defined() {
		t.Fatal("expected defined summary for non-empty grid")
	}
	if s.Min != 1 || s.Max != 4 {
		t.Errorf("expected min 1 max 4, got %v/%v", s.Min, s.Max)
	}
	if s.Mean != 2.5 {
		t.Errorf("expected mean 2.5, got %v", s.Mean)
	}
	if s.Range != 3 {
		t.Errorf("expected range 3, got %v", s.Range)
	}
	// Population std of {1,2,3,4} is sqrt(1.25).
	if math.Abs(s.Std-math.Sqrt(1.25)) > 1e-12 {
		t.Errorf("expected population std %v, got %v", math.Sqrt(1.25), s.Std)
	}
	if s.Rows != 2 || s.Cols != 2 {
		t.Errorf("expected shape 2x2, got %dx%d", s.Rows, s.Cols)
	}
}

func TestComputeSummary_InteriorZerosCount(t *testing.T) {
	// Interior zeros are potentially meaningful measurements and must be
	// part of the statistics.
	g := mustGrid(t, [][]float64{{2, 0, 2}})

	s := ComputeSummary(g)
	if s.Min != 0 {
		t.Errorf("interior zero should set min to 0, got %v", s.Min)
	}
	if math.Abs(s.Mean-4.0/3.0) > 1e-12 {
		t.Errorf("expected mean 4/3, got %v", s.Mean)
	}
}

func TestComputeSummary_Empty(t *testing.T) {
	s := ComputeSummary(&Grid{})

	if s.Defined() {
		t.Error("empty grid must yield an undefined summary")
	}
	if !math.IsNaN(s.Min) || !math.IsNaN(s.Mean) {
		t.Error("undefined summary carries NaN values")
	}
}

func TestComputeSummary_SingleCell(t *testing.T) {
	s := ComputeSummary(mustGrid(t, [][]float64{{-7.5}}))

	if s.Min != -7.5 || s.Max != -7.5 || s.Range != 0 || s.Std != 0 {
		t.Errorf("unexpected single-cell summary: %+v", s)
	}
}
