package warpage

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pemtron-data/warpage.report/internal/fsutil"
	"github.com/pemtron-data/warpage.report/internal/monitoring"
)

// FileType is the closed set of measurement file variants. The variant is
// resolved once at discovery time from the filename convention and carried
// on the candidate, never re-derived downstream.
type FileType int

const (
	// FileTypeOriginal is a raw instrument dump ("...@_ORI.txt").
	FileTypeOriginal FileType = iota
	// FileTypeCorrected is a post-corrected text grid (".txt" without the
	// original marker).
	FileTypeCorrected
	// FileTypeBinary is the proprietary binary format (".bin"), decoded by
	// an external converter.
	FileTypeBinary
)

// Filename conventions produced by the instrument.
const (
	originalSuffix = "@_ORI.txt"
	textSuffix     = ".txt"
	binarySuffix   = ".bin"
)

func (t FileType) String() string {
	switch t {
	case FileTypeOriginal:
		return "original"
	case FileTypeCorrected:
		return "corrected"
	case FileTypeBinary:
		return "binary"
	default:
		return fmt.Sprintf("FileType(%d)", int(t))
	}
}

// ParseFileType converts a selector string into a FileType.
func ParseFileType(s string) (FileType, error) {
	switch s {
	case "original":
		return FileTypeOriginal, nil
	case "corrected":
		return FileTypeCorrected, nil
	case "binary":
		return FileTypeBinary, nil
	default:
		return 0, fmt.Errorf("unknown file type selector %q (want original, corrected, or binary)", s)
	}
}

// ClassifyFile maps a filename onto its FileType. The second return is false
// for files that match no convention.
func ClassifyFile(name string) (FileType, bool) {
	switch {
	case strings.HasSuffix(name, originalSuffix):
		return FileTypeOriginal, true
	case strings.HasSuffix(name, textSuffix):
		return FileTypeCorrected, true
	case strings.HasSuffix(name, binarySuffix):
		return FileTypeBinary, true
	default:
		return 0, false
	}
}

// Candidate is one discovered measurement file.
type Candidate struct {
	Path   string
	Folder string
	Name   string
	Type   FileType
}

// DiscoverFiles enumerates candidate files of the selected type. Folders are
// visited in the order given (not filesystem iteration order) and filenames
// are sorted lexicographically within each folder, so display labels assigned
// downstream are reproducible. A folder with no matches, or one that cannot
// be listed, contributes nothing; zero matches across all folders is a
// NoFilesFoundError.
func DiscoverFiles(fsys fsutil.FileSystem, basePath string, folders []string, sel FileType) ([]Candidate, error) {
	var out []Candidate
	roots := make([]string, 0, len(folders))

	for _, folder := range folders {
		dir := filepath.Join(basePath, folder)
		roots = append(roots, dir)

		entries, err := fsys.ReadDir(dir)
		if err != nil {
			monitoring.Logf("discover: cannot list %s: %v", dir, err)
			continue
		}

		names := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if t, ok := ClassifyFile(e.Name()); ok && t == sel {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)

		for _, name := range names {
			out = append(out, Candidate{
				Path:   filepath.Join(dir, name),
				Folder: folder,
				Name:   name,
				Type:   sel,
			})
		}
	}

	if len(out) == 0 {
		return nil, &NoFilesFoundError{Selector: sel, Roots: roots}
	}
	return out, nil
}

// FolderHasCandidates reports whether the directory tree rooted at dir
// contains any classifiable measurement file, descending at most maxDepth
// levels. Used by the web interface to offer selectable folders.
func FolderHasCandidates(fsys fsutil.FileSystem, dir string, maxDepth int) bool {
	if maxDepth < 0 {
		return false
	}
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e.IsDir() {
			if strings.HasPrefix(e.Name(), ".") {
				continue
			}
			if FolderHasCandidates(fsys, filepath.Join(dir, e.Name()), maxDepth-1) {
				return true
			}
			continue
		}
		if _, ok := ClassifyFile(e.Name()); ok {
			return true
		}
	}
	return false
}
