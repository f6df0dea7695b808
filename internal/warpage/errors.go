package warpage

import (
	"fmt"
	"strings"
)

// NoFilesFoundError reports that discovery matched nothing for the selected
// file type across every searched folder. Fatal for the run.
type NoFilesFoundError struct {
	Selector FileType
	Roots    []string
}

func (e *NoFilesFoundError) Error() string {
	return fmt.Sprintf("no %s files found under %s", e.Selector, strings.Join(e.Roots, ", "))
}

// MalformedGridError reports a file whose contents failed to parse into a
// rectangular numeric grid. Row is 1-based; 0 means the defect is not tied
// to a specific row. Recovered locally: the file is skipped, the run
// continues.
type MalformedGridError struct {
	Path   string
	Row    int
	Reason string
}

func (e *MalformedGridError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("malformed grid in %s at row %d: %s", e.Path, e.Row, e.Reason)
	}
	return fmt.Sprintf("malformed grid in %s: %s", e.Path, e.Reason)
}

// FileReadError reports an I/O failure opening or reading a measurement
// file. Recovered locally, same as MalformedGridError.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// NoDataError reports that the batch yielded zero files with usable
// statistics, so there is nothing to scale or render. Fatal for the run.
type NoDataError struct {
	Reason string
}

func (e *NoDataError) Error() string {
	return "no usable measurement data: " + e.Reason
}
