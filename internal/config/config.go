// Package config defines the analysis configuration surface and its
// validation rules. The same JSON schema is accepted from a config file and
// from the /api/analyze endpoint, so one document drives both the CLI and
// the web interface.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileType selector values recognised by the discovery stage.
const (
	FileTypeOriginal  = "original"
	FileTypeCorrected = "corrected"
	FileTypeBinary    = "binary"
)

// DefaultSentinels are the instrument fault codes nullified by the cleaner.
// These are not physical measurements; the instrument emits them for
// unmeasurable cells.
var DefaultSentinels = []float64{-4000, 9999, -9999, 99999, -99999}

// DefaultTolerance is the numeric-equality tolerance for sentinel matching.
// Zero means exact equality.
const DefaultTolerance = 1e-6

// Analysis holds every recognised analysis option. Optional bounds are
// pointers so "absent" and "zero" stay distinct; fields omitted from a JSON
// document keep their defaults, so partial configs are safe.
type Analysis struct {
	// BasePath is the root under which measurement folders live.
	BasePath string `json:"base_path"`

	// Folders are processed in the order given here, never in filesystem
	// iteration order. Required.
	Folders []string `json:"folders"`

	// FileType selects which naming convention to discover:
	// original, corrected, or binary.
	FileType string `json:"file_type_selector"`

	// VMin/VMax override the auto-resolved color range when set.
	VMin *float64 `json:"vmin,omitempty"`
	VMax *float64 `json:"vmax,omitempty"`

	// RowFraction/ColFraction select a centered sub-grid. Both must be in
	// (0, 1]; 1 keeps the full grid.
	RowFraction float64 `json:"row_fraction"`
	ColFraction float64 `json:"col_fraction"`

	// ArtifactSentinels are the values nullified by the cleaner.
	ArtifactSentinels []float64 `json:"artifact_sentinels"`

	// ArtifactTolerance is the equality tolerance for sentinel matching;
	// 0 requires exact equality.
	ArtifactTolerance float64 `json:"artifact_tolerance"`

	// ReportDir and OutputFilename control PDF export placement.
	ReportDir      string `json:"report_dir"`
	OutputFilename string `json:"output_filename"`
}

// Default returns an Analysis with the documented default values. Folders is
// left empty and must be supplied by the caller before Validate passes.
func Default() *Analysis {
	return &Analysis{
		BasePath:          "./data",
		FileType:          FileTypeOriginal,
		RowFraction:       1,
		ColFraction:       1,
		ArtifactSentinels: append([]float64(nil), DefaultSentinels...),
		ArtifactTolerance: DefaultTolerance,
		ReportDir:         "report",
		OutputFilename:    "warpage_analysis.pdf",
	}
}

// Load reads an Analysis from a JSON file, layered over Default. The path
// must have a .json extension and be under the size cap.
func Load(path string) (*Analysis, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks every recognised option at construction time so the
// pipeline never has to re-check at point of use.
func (c *Analysis) Validate() error {
	if c.BasePath == "" {
		return fmt.Errorf("base_path must not be empty")
	}
	if len(c.Folders) == 0 {
		return fmt.Errorf("folders must list at least one folder")
	}
	for i, f := range c.Folders {
		if f == "" {
			return fmt.Errorf("folders[%d] must not be empty", i)
		}
	}

	switch c.FileType {
	case FileTypeOriginal, FileTypeCorrected, FileTypeBinary:
	default:
		return fmt.Errorf("file_type_selector must be one of original, corrected, binary; got %q", c.FileType)
	}

	if c.RowFraction <= 0 || c.RowFraction > 1 {
		return fmt.Errorf("row_fraction must be in (0, 1], got %v", c.RowFraction)
	}
	if c.ColFraction <= 0 || c.ColFraction > 1 {
		return fmt.Errorf("col_fraction must be in (0, 1], got %v", c.ColFraction)
	}

	if c.ArtifactTolerance < 0 {
		return fmt.Errorf("artifact_tolerance must not be negative, got %v", c.ArtifactTolerance)
	}

	if c.VMin != nil && c.VMax != nil && *c.VMin > *c.VMax {
		return fmt.Errorf("vmin (%v) must not exceed vmax (%v)", *c.VMin, *c.VMax)
	}

	return nil
}

// Clone returns a deep copy so per-request mutations never leak into the
// shared defaults.
func (c *Analysis) Clone() *Analysis {
	out := *c
	out.Folders = append([]string(nil), c.Folders...)
	out.ArtifactSentinels = append([]float64(nil), c.ArtifactSentinels...)
	if c.VMin != nil {
		v := *c.VMin
		out.VMin = &v
	}
	if c.VMax != nil {
		v := *c.VMax
		out.VMax = &v
	}
	return &out
}
