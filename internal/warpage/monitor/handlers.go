package monitor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/pemtron-data/warpage.report/internal/httputil"
	"github.com/pemtron-data/warpage.report/internal/security"
	"github.com/pemtron-data/warpage.report/internal/warpage"
	"github.com/pemtron-data/warpage.report/internal/warpage/render"
)

// maxAnalyzeBody caps the request body for analyze overrides.
const maxAnalyzeBody = 1 << 20

// folderInfo describes one subdirectory of the base path for the folder
// picker.
type folderInfo struct {
	Name          string `json:"name"`
	HasCandidates bool   `json:"has_candidates"`
	Selected      bool   `json:"selected"`
}

// handleFolders lists subdirectories of the configured base path and whether
// each contains files matching the configured type.
func (ws *WebServer) handleFolders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	entries, err := ws.fs.ReadDir(ws.cfg.BasePath)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("list base path: %v", err))
		return
	}

	selected := make(map[string]bool, len(ws.cfg.Folders))
	for _, f := range ws.cfg.Folders {
		selected[f] = true
	}

	var folders []folderInfo
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(ws.cfg.BasePath, e.Name())
		folders = append(folders, folderInfo{
			Name:          e.Name(),
			HasCandidates: warpage.FolderHasCandidates(ws.fs, dir, 3),
			Selected:      selected[e.Name()],
		})
	}

	httputil.WriteJSONOK(w, folders)
}

// handleAnalyze runs a batch analysis. The request body may carry a JSON
// configuration that overrides the server's; an empty body runs with the
// configured defaults. The resulting session replaces the previous one.
func (ws *WebServer) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}

	cfg := ws.cfg.Clone()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxAnalyzeBody))
	if err != nil {
		httputil.BadRequest(w, fmt.Sprintf("read body: %v", err))
		return
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, cfg); err != nil {
			httputil.BadRequest(w, fmt.Sprintf("parse config: %v", err))
			return
		}
	}

	analyzer, err := warpage.NewAnalyzer(cfg,
		warpage.WithFileSystem(ws.fs),
		warpage.WithDecoder(ws.decoder),
	)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	sess, err := analyzer.Run()
	if err != nil {
		var nf *warpage.NoFilesFoundError
		var nd *warpage.NoDataError
		switch {
		case errors.As(err, &nf):
			httputil.NotFound(w, err.Error())
		case errors.As(err, &nd):
			httputil.WriteJSONError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			httputil.InternalServerError(w, err.Error())
		}
		return
	}

	ws.session.Store(sess)
	httputil.WriteJSONOK(w, sess)
}

// handleSession returns the most recent session.
func (ws *WebServer) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	sess := ws.sessionOr404(w)
	if sess == nil {
		return
	}
	httputil.WriteJSONOK(w, sess)
}

// handleHeatmapPNG renders one file's heatmap as a static PNG. Query params:
//
//	label (required) - display label of the file, e.g. "01"
func (ws *WebServer) handleHeatmapPNG(w http.ResponseWriter, r *http.Request) {
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
	if rec == nil {
		httputil.NotFound(w, fmt.Sprintf("no file with label '%s'", label))
		return
	}

	png, err := render.HeatmapPNG(rec, sess.Range)
	if err != nil {
		httputil.InternalServerError(w, err.Error())
		return
	}
	httputil.WritePNG(w, png)
}

// handleExportPDF renders the full session report as a PDF download.
func (ws *WebServer) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	sess := ws.sessionOr404(w)
	if sess == nil {
		return
	}

	out, err := render.ReportPDF(sess)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("render report: %v", err))
		return
	}

	filename := security.SanitizeFilename(
		fmt.Sprintf("warpage-report-%s.pdf", sess.CreatedAt.Format("20060102_150405")))
	httputil.WritePDF(w, filename, out)
}
