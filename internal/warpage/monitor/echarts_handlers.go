package monitor

import (
	"bytes"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/pemtron-data/warpage.report/internal/httputil"
	"github.com/pemtron-data/warpage.report/internal/warpage"
)

// Diverging blue-white-red ramp shared by the interactive charts, sampled
// from the same cool-warm map the PNG renderer uses so both surfaces read
// the same way.
var chartRampColors = []string{
	"#3b4cc0", "#5977e3", "#7b9ff9", "#9ebeff", "#c0d4f5",
	"#dddcdc", "#f2cbb7", "#f7ac8e", "#ee8468", "#d65244", "#b40426",
}

// newHeatmapChart builds one echarts heatmap for a surviving file, pinned to
// the given color range and downsampled by stride to stay within maxPoints.
func newHeatmapChart(rec *warpage.FileRecord, cr warpage.ColorRange, maxPoints int, width, height string) *charts.HeatMap {
	g := rec.Cleaned

	stride := 1
	for (g.Rows/stride+1)*(g.Cols/stride+1) > maxPoints {
		stride++
	}

	var xLabels, yLabels []string
	for c := 0; c < g.Cols; c += stride {
		xLabels = append(xLabels, strconv.Itoa(c))
	}
	for row := g.Rows - 1; row >= 0; row -= stride {
		// Reversed so the first file row appears at the top of the chart.
		yLabels = append(yLabels, strconv.Itoa(row))
	}

	data := make([]opts.HeatMapData, 0, len(xLabels)*len(yLabels))
	for yi, row := 0, g.Rows-1; row >= 0; yi, row = yi+1, row-stride {
		for xi, col := 0, 0; col < g.Cols; xi, col = xi+1, col+stride {
			data = append(data, opts.HeatMapData{Value: [3]interface{}{xi, yi, g.At(row, col)}})
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Warpage Heatmap", Theme: "dark", Width: width, Height: height}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Surface %s", rec.Label),
			Subtitle: fmt.Sprintf("%s/%s grid=%dx%d stride=%d", rec.Folder, rec.Name, g.Rows, g.Cols, stride),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: xLabels, Name: "Column"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: yLabels, Name: "Row"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(cr.VMin),
			Max:        float32(cr.VMax),
			InRange:    &opts.VisualMapInRange{Color: chartRampColors},
		}),
	)
	hm.AddSeries("warpage", data)
	return hm
}

// handleHeatmapChart renders an interactive heatmap (HTML) for one file using
// go-echarts. The visual map is pinned to the session color range so charts
// from the same batch are directly comparable. Query params:
//
//	label (required) - display label of the file, e.g. "01"
//	max_points (optional; default 20000) to reduce payload size
func (ws *WebServer) handleHeatmapChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	sess := ws.sessionOr404(w)
	if sess == nil {
		return
	}

	label := r.URL.Query().Get("label")
	if label == "" {
		httputil.BadRequest(w, "missing 'label' parameter")
		return
	}
	rec := sess.FileByLabel(label)
	if rec == nil || rec.Cleaned == nil {
		httputil.NotFound(w, fmt.Sprintf("no file with label '%s'", label))
		return
	}

	maxPoints := 20000
	if mp := r.URL.Query().Get("max_points"); mp != "" {
		if v, err := strconv.Atoi(mp); err == nil && v > 100 && v <= 200000 {
			maxPoints = v
		}
	}

	hm := newHeatmapChart(rec, sess.Range, maxPoints, "1000px", "800px")

	var buf bytes.Buffer
	if err := hm.Render(&buf); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// handleCompareChart renders the side-by-side comparison: one heatmap per
// surviving file on a single page, every visual map pinned to the session
// color range so the surfaces are directly comparable. Each chart is
// downsampled harder than the single-file view to keep the page light.
func (ws *WebServer) handleCompareChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	sess := ws.sessionOr404(w)
	if sess == nil {
		return
	}
	if len(sess.Files) == 0 {
		httputil.NotFound(w, "session has no surviving files")
		return
	}

	page := components.NewPage()
	page.PageTitle = "Warpage Comparison"
	for _, rec := range sess.Files {
		page.AddCharts(newHeatmapChart(rec, sess.Range, 5000, "460px", "420px"))
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// handleStatsChart renders a bar chart comparing per-file statistics across
// the whole session: min, max, and mean per display label.
func (ws *WebServer) handleStatsChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	sess := ws.sessionOr404(w)
	if sess == nil {
		return
	}
	if len(sess.Files) == 0 {
		httputil.NotFound(w, "session has no surviving files")
		return
	}

	x := make([]string, 0, len(sess.Files))
	minSeries := make([]opts.BarData, 0, len(sess.Files))
	maxSeries := make([]opts.BarData, 0, len(sess.Files))
	meanSeries := make([]opts.BarData, 0, len(sess.Files))
	for _, rec := range sess.Files {
		x = append(x, rec.Label)
		minSeries = append(minSeries, opts.BarData{Value: round4(rec.Stats.Min)})
		maxSeries = append(maxSeries, opts.BarData{Value: round4(rec.Stats.Max)})
		meanSeries = append(meanSeries, opts.BarData{Value: round4(rec.Stats.Mean)})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Warpage Statistics", Theme: "dark", Width: "100%", Height: "720px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Surface Statistics",
			Subtitle: fmt.Sprintf("session=%s files=%d scale=[%.4f, %.4f]", sess.ID, len(sess.Files), sess.Range.VMin, sess.Range.VMax),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(x).
		AddSeries("min", minSeries).
		AddSeries("max", maxSeries).
		AddSeries("mean", meanSeries)

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
