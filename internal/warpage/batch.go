package warpage

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pemtron-data/warpage.report/internal/config"
	"github.com/pemtron-data/warpage.report/internal/fsutil"
	"github.com/pemtron-data/warpage.report/internal/monitoring"
)

// Analyzer drives the full pipeline for one batch: discovery, parsing,
// cleaning, statistics, label assignment, and color-range resolution. It is
// the only component aware of the whole batch. Every Run constructs a fresh
// Session; an Analyzer holds no mutable state between runs and is safe to
// reuse.
type Analyzer struct {
	fs      fsutil.FileSystem
	cfg     *config.Analysis
	decoder BinaryDecoder
	cleaner *Cleaner
	sel     FileType
}

// AnalyzerOption customises Analyzer construction.
type AnalyzerOption func(*Analyzer)

// WithFileSystem replaces the default OS filesystem, mainly for tests.
func WithFileSystem(fs fsutil.FileSystem) AnalyzerOption {
	return func(a *Analyzer) { a.fs = fs }
}

// WithDecoder installs the binary decoder used for the binary file type.
func WithDecoder(d BinaryDecoder) AnalyzerOption {
	return func(a *Analyzer) { a.decoder = d }
}

// NewAnalyzer validates the configuration and builds an Analyzer. Selecting
// the binary file type requires a decoder.
func NewAnalyzer(cfg *config.Analysis, opts ...AnalyzerOption) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sel, err := ParseFileType(cfg.FileType)
	if err != nil {
		return nil, err
	}

	a := &Analyzer{
		fs:      fsutil.OSFileSystem{},
		cfg:     cfg,
		cleaner: NewCleaner(cfg),
		sel:     sel,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.sel == FileTypeBinary && a.decoder == nil {
		return nil, fmt.Errorf("binary file type selected but no decoder configured")
	}

	return a, nil
}

// Run executes one batch and returns its Session. Per-file read and parse
// failures are recorded in the run summary and the batch continues; files
// whose cleaned grid is empty are counted as skipped. Batch-level failures
// (NoFilesFoundError when discovery matches nothing, NoDataError when zero
// files survive) are returned to the caller.
func (a *Analyzer) Run() (*Session, error) {
	candidates, err := DiscoverFiles(a.fs, a.cfg.BasePath, a.cfg.Folders, a.sel)
	if err != nil {
		return nil, err
	}

	summary := RunSummary{Discovered: len(candidates)}
	var files []*FileRecord

	for _, cand := range candidates {
		rec, err := a.processFile(cand)
		if err != nil {
			monitoring.Logf("batch: %v", err)
			summary.Failed++
			summary.Failures = append(summary.Failures, FileFailure{Path: cand.Path, Reason: err.Error()})
			continue
		}
		if rec == nil {
			monitoring.Logf("batch: %s is empty after cleaning, skipping", cand.Path)
			summary.Skipped++
			continue
		}

		rec.Label = fmt.Sprintf("%02d", len(files)+1)
		files = append(files, rec)
		summary.Processed++
	}

	summaries := make([]Summary, len(files))
	for i, f := range files {
		summaries[i] = f.Stats
	}

	cr, err := ResolveColorRange(summaries, a.cfg.VMin, a.cfg.VMax)
	if err != nil {
		return nil, err
	}

	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Config:    a.cfg.Clone(),
		Files:     files,
		Range:     cr,
		Summary:   summary,
	}, nil
}

// processFile parses, cleans, and summarises one candidate. It returns
// (nil, nil) when the cleaned grid is empty, meaning the file is skipped
// rather than failed.
func (a *Analyzer) processFile(cand Candidate) (*FileRecord, error) {
	data, err := a.fs.ReadFile(cand.Path)
	if err != nil {
		return nil, &FileReadError{Path: cand.Path, Err: err}
	}

	var raw *Grid
	if cand.Type == FileTypeBinary {
		raw, err = ParseBinaryGrid(cand.Path, data, a.decoder)
	} else {
		raw, err = ParseTextGrid(cand.Path, data)
	}
	if err != nil {
		return nil, err
	}

	cleaned := a.cleaner.Clean(raw)
	if cleaned.IsEmpty() {
		return nil, nil
	}

	var size int64
	if info, err := a.fs.Stat(cand.Path); err == nil {
		size = info.Size()
	}

	return &FileRecord{
		Path:      cand.Path,
		Folder:    cand.Folder,
		Name:      cand.Name,
		SizeBytes: size,
		Raw:       raw,
		Cleaned:   cleaned,
		Stats:     ComputeSummary(cleaned),
	}, nil
}
