package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/pemtron-data/warpage.report/internal/config"
	"github.com/pemtron-data/warpage.report/internal/fsutil"
	"github.com/pemtron-data/warpage.report/internal/security"
	"github.com/pemtron-data/warpage.report/internal/warpage"
	"github.com/pemtron-data/warpage.report/internal/warpage/render"
)

// runAnalyze performs a one-shot batch analysis, prints the summary tables,
// and writes the PDF report.
func runAnalyze(cfg *config.Analysis, decoder warpage.BinaryDecoder) error {
	analyzer, err := warpage.NewAnalyzer(cfg, warpage.WithDecoder(decoder))
	if err != nil {
		return err
	}

	sess, err := analyzer.Run()
	if err != nil {
		return err
	}

	printSummary(os.Stdout, sess)

	out, err := render.ReportPDF(sess)
	if err != nil {
		return err
	}

	fs := fsutil.OSFileSystem{}
	if err := fs.MkdirAll(cfg.ReportDir, 0755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	reportPath := filepath.Join(cfg.ReportDir, security.SanitizeFilename(cfg.OutputFilename))
	if err := security.ValidatePathWithinDirectory(reportPath, cfg.ReportDir); err != nil {
		return err
	}
	if err := fs.WriteFile(reportPath, out, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	fmt.Printf("\nReport written to %s (%d files, color scale [%.4f, %.4f])\n",
		reportPath, len(sess.Files), sess.Range.VMin, sess.Range.VMax)
	return nil
}

// printSummary writes the per-file statistics table and any failures.
func printSummary(w io.Writer, sess *warpage.Session) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LABEL\tFILE\tMIN\tMAX\tMEAN\tSTD\tRANGE\tGRID")
	for _, rec := range sess.Files {
		fmt.Fprintf(tw, "%s\t%s/%s\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%dx%d\n",
			rec.Label, rec.Folder, rec.Name,
			rec.Stats.Min, rec.Stats.Max, rec.Stats.Mean, rec.Stats.Std, rec.Stats.Range,
			rec.Stats.Rows, rec.Stats.Cols)
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%d discovered, %d processed, %d skipped, %d failed\n",
		sess.Summary.Discovered, sess.Summary.Processed, sess.Summary.Skipped, sess.Summary.Failed)
	for _, f := range sess.Summary.Failures {
		fmt.Fprintf(w, "  failed %s: %s\n", f.Path, f.Reason)
	}
}
