// Command warpage analyzes surface measurement grids exported by the
// inspection instrument: it discovers measurement files under a base path,
// cleans and summarises each grid, and produces a PDF report with per-file
// heatmaps on a shared color scale.
//
// Run a one-shot analysis:
//
//	warpage -base /data/measurements -folders 30,60 -output report.pdf
//
// Or serve the interactive monitor:
//
//	warpage -base /data/measurements -folders 30,60 -serve -listen :8082
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/pemtron-data/warpage.report/internal/config"
	"github.com/pemtron-data/warpage.report/internal/warpage"
	"github.com/pemtron-data/warpage.report/internal/warpage/monitor"
)

var (
	configPath  = flag.String("config", "", "Path to a JSON configuration file")
	basePath    = flag.String("base", "", "Base path containing measurement folders")
	folders     = flag.String("folders", "", "Comma-separated folder names to analyze (in order)")
	fileType    = flag.String("type", "", "File type selector: original, corrected, or binary")
	vminFlag    = flag.String("vmin", "", "Explicit lower color-scale bound (default: derived from data)")
	vmaxFlag    = flag.String("vmax", "", "Explicit upper color-scale bound (default: derived from data)")
	rowFraction = flag.Float64("row-fraction", 0, "Fraction of rows to keep in the center crop (0 = configured default)")
	colFraction = flag.Float64("col-fraction", 0, "Fraction of columns to keep in the center crop (0 = configured default)")
	reportDir   = flag.String("report-dir", "", "Directory for generated reports")
	output      = flag.String("output", "", "Report filename")
	converter   = flag.String("converter", "", "External converter command for binary files")
	serve       = flag.Bool("serve", false, "Run the HTTP monitor instead of a one-shot analysis")
	listen      = flag.String("listen", ":8082", "HTTP listen address for -serve")
)

func main() {
	flag.Parse()

	cfg, err := buildConfig()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	var decoder warpage.BinaryDecoder
	if *converter != "" {
		decoder = warpage.NewConverterDecoder(*converter)
	}

	if *serve {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		ws := monitor.NewWebServer(monitor.WebServerConfig{
			Address: *listen,
			Config:  cfg,
			Decoder: decoder,
		})
		if err := ws.Start(ctx); err != nil {
			log.Fatalf("monitor error: %v", err)
		}
		return
	}

	if err := runAnalyze(cfg, decoder); err != nil {
		log.Fatalf("analysis failed: %v", err)
	}
}

// buildConfig layers flag overrides on top of the configuration file (or the
// defaults when no file is given). Validation happens when the Analyzer is
// constructed.
func buildConfig() (*config.Analysis, error) {
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if *basePath != "" {
		cfg.BasePath = *basePath
	}
	if *folders != "" {
		cfg.Folders = nil
		for _, f := range strings.Split(*folders, ",") {
			if f = strings.TrimSpace(f); f != "" {
				cfg.Folders = append(cfg.Folders, f)
			}
		}
	}
	if *fileType != "" {
		cfg.FileType = *fileType
	}
	if *rowFraction > 0 {
		cfg.RowFraction = *rowFraction
	}
	if *colFraction > 0 {
		cfg.ColFraction = *colFraction
	}
	if *reportDir != "" {
		cfg.ReportDir = *reportDir
	}
	if *output != "" {
		cfg.OutputFilename = *output
	}

	var err error
	if cfg.VMin, err = parseBound(*vminFlag, cfg.VMin); err != nil {
		return nil, err
	}
	if cfg.VMax, err = parseBound(*vmaxFlag, cfg.VMax); err != nil {
		return nil, err
	}

	return cfg, nil
}

// parseBound parses an optional float flag, keeping the existing value when
// the flag is unset.
func parseBound(s string, existing *float64) (*float64, error) {
	if s == "" {
		return existing, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
