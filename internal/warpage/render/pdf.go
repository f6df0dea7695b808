package render

import (
	"bytes"
	"fmt"

	"codeberg.org/go-pdf/fpdf"

	"github.com/pemtron-data/warpage.report/internal/warpage"
)

// ReportPDF renders the full analysis report: a summary page with per-file
// statistics, the side-by-side comparison of all surfaces, then one heatmap
// page per surviving file. All heatmaps share the session color range.
func ReportPDF(sess *warpage.Session) ([]byte, error) {
	if sess == nil {
		return nil, fmt.Errorf("nil session")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Warpage Analysis Report", false)

	// Render each heatmap once; comparison and per-file pages reuse the
	// registered image.
	opt := fpdf.ImageOptions{ImageType: "PNG"}
	for _, rec := range sess.Files {
		png, err := HeatmapPNG(rec, sess.Range)
		if err != nil {
			return nil, err
		}
		pdf.RegisterImageOptionsReader("heatmap-"+rec.Label, opt, bytes.NewReader(png))
	}

	writeSummaryPage(pdf, sess)
	writeComparisonPages(pdf, sess)

	for _, rec := range sess.Files {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 10, fmt.Sprintf("Surface %s  -  %s/%s", rec.Label, rec.Folder, rec.Name),
			"", 1, "L", false, 0, "")

		pdf.ImageOptions("heatmap-"+rec.Label, 30, 25, 200, 0, false, opt, 0, "")

		pdf.SetY(180)
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf(
			"min %.4f    max %.4f    mean %.4f    std %.4f    range %.4f    grid %dx%d",
			rec.Stats.Min, rec.Stats.Max, rec.Stats.Mean, rec.Stats.Std, rec.Stats.Range,
			rec.Stats.Rows, rec.Stats.Cols),
			"", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummaryPage(pdf *fpdf.Fpdf, sess *warpage.Session) {
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Warpage Analysis Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Session %s, created %s", sess.ID,
		sess.CreatedAt.Format("2006-01-02 15:04:05 MST")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Color scale: [%.4f, %.4f]", sess.Range.VMin, sess.Range.VMax),
		"", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Files: %d discovered, %d processed, %d skipped, %d failed",
		sess.Summary.Discovered, sess.Summary.Processed, sess.Summary.Skipped, sess.Summary.Failed),
		"", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Statistics table.
	pdf.SetFont("Helvetica", "B", 10)
	headers := []string{"Label", "File", "Min", "Max", "Mean", "Std", "Range", "Grid"}
	widths := []float64{15, 90, 28, 28, 28, 28, 28, 25}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, rec := range sess.Files {
		cells := []string{
			rec.Label,
			rec.Folder + "/" + rec.Name,
			fmt.Sprintf("%.4f", rec.Stats.Min),
			fmt.Sprintf("%.4f", rec.Stats.Max),
			fmt.Sprintf("%.4f", rec.Stats.Mean),
			fmt.Sprintf("%.4f", rec.Stats.Std),
			fmt.Sprintf("%.4f", rec.Stats.Range),
			fmt.Sprintf("%dx%d", rec.Stats.Rows, rec.Stats.Cols),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, c, "", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(sess.Summary.Failures) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 7, "Failures", "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for _, f := range sess.Summary.Failures {
			pdf.CellFormat(0, 6, fmt.Sprintf("%s: %s", f.Path, f.Reason), "", 1, "L", false, 0, "")
		}
	}
}

// writeComparisonPages lays all surface heatmaps out in a grid on shared
// pages so they can be compared at a glance on one color scale. Eight
// surfaces fit per page; larger sessions continue on further pages.
func writeComparisonPages(pdf *fpdf.Fpdf, sess *warpage.Session) {
	const (
		perRow  = 4
		perPage = 8
		imgW    = 66.0
		imgH    = 49.5 // imgW * 3/4, the heatmap aspect ratio
		left    = 12.0
		top     = 32.0
		gapX    = 4.0
		gapY    = 16.0
	)

	opt := fpdf.ImageOptions{ImageType: "PNG"}
	for i, rec := range sess.Files {
		slot := i % perPage
		if slot == 0 {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "B", 14)
			pdf.CellFormat(0, 10, fmt.Sprintf("Surface Comparison  -  shared scale [%.4f, %.4f]",
				sess.Range.VMin, sess.Range.VMax), "", 1, "L", false, 0, "")
		}

		x := left + float64(slot%perRow)*(imgW+gapX)
		y := top + float64(slot/perRow)*(imgH+gapY)

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetXY(x, y-6)
		pdf.CellFormat(imgW, 5, fmt.Sprintf("%s  %s", rec.Label, rec.Name), "", 0, "C", false, 0, "")

		pdf.ImageOptions("heatmap-"+rec.Label, x, y, imgW, 0, false, opt, 0, "")
	}
}
