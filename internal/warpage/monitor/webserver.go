// Package monitor provides the HTTP interface for running analyses and
// inspecting results: JSON endpoints for batch runs and session state, chart
// endpoints for visual inspection, and PDF export.
package monitor

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/pemtron-data/warpage.report/internal/config"
	"github.com/pemtron-data/warpage.report/internal/fsutil"
	"github.com/pemtron-data/warpage.report/internal/httputil"
	"github.com/pemtron-data/warpage.report/internal/monitoring"
	"github.com/pemtron-data/warpage.report/internal/warpage"
)

//go:embed status.html
var statusHTML embed.FS

// WebServer handles the HTTP interface for the warpage analyzer. Analyses
// run on demand via the API; the most recent session is kept in memory and
// replaced wholesale by each run.
type WebServer struct {
	address string
	cfg     *config.Analysis
	fs      fsutil.FileSystem
	decoder warpage.BinaryDecoder
	server  *http.Server

	startTime time.Time
	session   atomic.Pointer[warpage.Session]
}

// WebServerConfig contains configuration options for the web server.
type WebServerConfig struct {
	Address string
	Config  *config.Analysis
	// FS defaults to the OS filesystem.
	FS fsutil.FileSystem
	// Decoder is required only when Config selects the binary file type.
	Decoder warpage.BinaryDecoder
}

// NewWebServer creates a new web server with the provided configuration.
func NewWebServer(c WebServerConfig) *WebServer {
	ws := &WebServer{
		address:   c.Address,
		cfg:       c.Config,
		fs:        c.FS,
		decoder:   c.Decoder,
		startTime: time.Now(),
	}
	if ws.fs == nil {
		ws.fs = fsutil.OSFileSystem{}
	}

	ws.server = &http.Server{
		Addr:    ws.address,
		Handler: ws.setupRoutes(),
	}

	return ws
}

// Start begins the HTTP server in a goroutine and handles graceful shutdown
// when the context is cancelled.
func (ws *WebServer) Start(ctx context.Context) error {
	go func() {
		monitoring.Logf("monitor: starting HTTP server on %s", ws.address)
		if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			monitoring.Logf("monitor: server error: %v", err)
		}
	}()

	<-ctx.Done()
	monitoring.Logf("monitor: shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := ws.server.Shutdown(shutdownCtx); err != nil {
		monitoring.Logf("monitor: shutdown error: %v", err)
		if err := ws.server.Close(); err != nil {
			monitoring.Logf("monitor: force close error: %v", err)
		}
	}

	return nil
}

// Close shuts down the web server immediately.
func (ws *WebServer) Close() error {
	if ws.server != nil {
		return ws.server.Close()
	}
	return nil
}

// LastSession returns the most recent session, or nil when no analysis has
// run yet.
func (ws *WebServer) LastSession() *warpage.Session {
	return ws.session.Load()
}

// setupRoutes configures the HTTP routes and handlers.
func (ws *WebServer) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", ws.handleHealth)
	mux.HandleFunc("/", ws.handleStatus)
	mux.HandleFunc("/api/folders", ws.handleFolders)
	mux.HandleFunc("/api/analyze", ws.handleAnalyze)
	mux.HandleFunc("/api/session", ws.handleSession)
	mux.HandleFunc("/api/heatmap.png", ws.handleHeatmapPNG)
	mux.HandleFunc("/api/chart/heatmap", ws.handleHeatmapChart)
	mux.HandleFunc("/api/chart/compare", ws.handleCompareChart)
	mux.HandleFunc("/api/chart/stats", ws.handleStatsChart)
	mux.HandleFunc("/api/export/pdf", ws.handleExportPDF)

	return mux
}

// handleHealth handles the health check endpoint.
func (ws *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status": "ok", "service": "warpage", "timestamp": "%s"}`,
		time.Now().UTC().Format(time.RFC3339))
}

// handleStatus handles the main status page endpoint.
func (ws *WebServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html")

	tmpl, err := template.ParseFS(statusHTML, "status.html")
	if err != nil {
		http.Error(w, "Error loading template: "+err.Error(), http.StatusInternalServerError)
		return
	}

	data := struct {
		HTTPAddress string
		BasePath    string
		FileType    string
		Folders     []string
		Uptime      string
		Session     *warpage.Session
	}{
		HTTPAddress: ws.address,
		BasePath:    ws.cfg.BasePath,
		FileType:    ws.cfg.FileType,
		Folders:     ws.cfg.Folders,
		Uptime:      time.Since(ws.startTime).Round(time.Second).String(),
		Session:     ws.session.Load(),
	}

	if err := tmpl.Execute(w, data); err != nil {
		http.Error(w, "Error executing template: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// sessionOr404 loads the last session or writes a 404 and returns nil.
func (ws *WebServer) sessionOr404(w http.ResponseWriter) *warpage.Session {
	sess := ws.session.Load()
	if sess == nil {
		httputil.NotFound(w, "no analysis has run yet")
	}
	return sess
}
