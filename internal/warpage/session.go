package warpage

import (
	"time"

	"github.com/pemtron-data/warpage.report/internal/config"
)

// FileRecord is one surviving measurement file in a batch. Records are owned
// exclusively by the Session that created them and are immutable once their
// statistics are computed.
type FileRecord struct {
	// Label is the sequence-assigned display identifier ("01", "02", ...),
	// independent of the filename and assigned in discovery order.
	Label     string  `json:"display_label"`
	Path      string  `json:"path"`
	Folder    string  `json:"folder"`
	Name      string  `json:"name"`
	SizeBytes int64   `json:"size_bytes"`
	Stats     Summary `json:"stats"`

	// Raw is the grid as parsed; Cleaned is what statistics and rendering
	// consume. Neither is serialised.
	Raw     *Grid `json:"-"`
	Cleaned *Grid `json:"-"`
}

// FileFailure records one file that failed parsing or reading. The batch
// continues past these.
type FileFailure struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// RunSummary aggregates per-file outcomes for user-visible reporting: a run
// with partial failures still produces a session plus these counts.
type RunSummary struct {
	Discovered int           `json:"discovered"`
	Processed  int           `json:"processed"`
	Skipped    int           `json:"skipped"`
	Failed     int           `json:"failed"`
	Failures   []FileFailure `json:"failures,omitempty"`
}

// Session is the root aggregate of one batch run: the ordered surviving
// FileRecords, the resolved ColorRange, and the configuration that produced
// them. A Session is created per run and never mutated afterwards; rendering
// and export consume it read-only.
type Session struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Config    *config.Analysis `json:"config"`
	Files     []*FileRecord    `json:"files"`
	Range     ColorRange       `json:"color_range"`
	Summary   RunSummary       `json:"summary"`
}

// FileByLabel returns the record with the given display label, or nil.
func (s *Session) FileByLabel(label string) *FileRecord {
	for _, f := range s.Files {
		if f.Label == label {
			return f
		}
	}
	return nil
}
