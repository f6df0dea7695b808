// Package render produces visual artifacts from an analysis session: PNG
// heatmaps of cleaned grids and the multi-page PDF report. Everything here
// consumes a Session read-only.
package render

import (
	"bytes"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/pemtron-data/warpage.report/internal/warpage"
)

// Heatmap dimensions. Landscape suits the wide boards the measurement rig
// produces.
const (
	heatmapWidth  = 8 * vg.Inch
	heatmapHeight = 6 * vg.Inch
	paletteColors = 255
)

// gridXYZ adapts a warpage.Grid to plotter.GridXYZ. Rows are flipped so the
// first file row renders at the top, matching the measurement orientation.
type gridXYZ struct {
	g *warpage.Grid
}

func (d gridXYZ) Dims() (int, int) { return d.g.Cols, d.g.Rows }
func (d gridXYZ) X(c int) float64  { return float64(c) }
func (d gridXYZ) Y(r int) float64  { return float64(r) }
func (d gridXYZ) Z(c, r int) float64 {
	return d.g.At(d.g.Rows-1-r, c)
}

// HeatmapPNG renders one file's cleaned grid as a PNG heatmap. The color
// scale is pinned to the session-wide range so every heatmap in a batch is
// directly comparable.
func HeatmapPNG(rec *warpage.FileRecord, cr warpage.ColorRange) ([]byte, error) {
	if rec == nil || rec.Cleaned == nil || rec.Cleaned.IsEmpty() {
		return nil, fmt.Errorf("no cleaned grid to render")
	}

	vmin, vmax := cr.VMin, cr.VMax
	if vmax <= vmin {
		// Degenerate range (uniform batch); widen so the color map stays valid.
		vmax = vmin + 1
	}

	cm := moreland.SmoothBlueRed()
	cm.SetMin(vmin)
	cm.SetMax(vmax)

	hm := plotter.NewHeatMap(gridXYZ{g: rec.Cleaned}, cm.Palette(paletteColors))
	hm.Min = vmin
	hm.Max = vmax

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s  (%s)", rec.Label, rec.Name)
	p.X.Label.Text = "Column"
	p.Y.Label.Text = "Row"
	p.Add(hm)

	wt, err := p.WriterTo(heatmapWidth, heatmapHeight, "png")
	if err != nil {
		return nil, fmt.Errorf("render heatmap for %s: %w", rec.Label, err)
	}

	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write heatmap for %s: %w", rec.Label, err)
	}
	return buf.Bytes(), nil
}
