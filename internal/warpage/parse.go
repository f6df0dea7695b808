package warpage

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTextGrid converts the plain-text grid format into a Grid: one row per
// line, columns separated by arbitrary whitespace, real-number tokens. All
// rows must have the same column count. path is used only for error
// reporting. An all-whitespace file parses to the empty grid, which the
// batch treats as a skip.
func ParseTextGrid(path string, data []byte) (*Grid, error) {
	text := strings.TrimSpace(string(data))
	if text == "" {
		return &Grid{}, nil
	}

	lines := strings.Split(text, "\n")
	cols := 0
	values := make([]float64, 0, len(lines)*16)

	for i, line := range lines {
		fields := strings.Fields(line)
		if i == 0 {
			cols = len(fields)
		} else if len(fields) != cols {
			return nil, &MalformedGridError{
				Path:   path,
				Row:    i + 1,
				Reason: fmt.Sprintf("expected %d columns, got %d", cols, len(fields)),
			}
		}

		for _, tok := range fields {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, &MalformedGridError{
					Path:   path,
					Row:    i + 1,
					Reason: fmt.Sprintf("invalid number %q", tok),
				}
			}
			values = append(values, v)
		}
	}

	return &Grid{Rows: len(lines), Cols: cols, Values: values}, nil
}

// ParseBinaryGrid feeds raw binary content through the external decoder and
// normalises the result into the same Grid representation as text parsing.
// No semantic transformation happens here; decoder failures and jagged
// output surface as MalformedGridError for this file only.
func ParseBinaryGrid(path string, data []byte, dec BinaryDecoder) (*Grid, error) {
	if dec == nil {
		return nil, &MalformedGridError{Path: path, Reason: "no binary decoder configured"}
	}

	rows, err := dec.Decode(data)
	if err != nil {
		return nil, &MalformedGridError{Path: path, Reason: fmt.Sprintf("decoder: %v", err)}
	}

	g, err := GridFromRows(rows)
	if err != nil {
		return nil, &MalformedGridError{Path: path, Reason: err.Error()}
	}
	return g, nil
}
