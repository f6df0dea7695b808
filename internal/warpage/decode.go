package warpage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// BinaryDecoder turns the proprietary binary grid format into per-row value
// slices. The pipeline never depends on the format internals; decoding is
// delegated to whatever implements this interface.
type BinaryDecoder interface {
	Decode(data []byte) ([][]float64, error)
}

// ConverterDecoder decodes binary grids by shelling out to the vendor
// converter tool, which writes the text grid format to stdout. The input is
// staged in a temporary file appended to Args.
type ConverterDecoder struct {
	Command string
	Args    []string
	// Timeout bounds one converter invocation. Zero means DefaultConverterTimeout.
	Timeout time.Duration
}

// DefaultConverterTimeout bounds a single converter run so a wedged tool
// cannot stall the whole batch.
const DefaultConverterTimeout = 30 * time.Second

// NewConverterDecoder returns a decoder invoking the named converter command.
func NewConverterDecoder(command string, args ...string) *ConverterDecoder {
	return &ConverterDecoder{Command: command, Args: args}
}

// Decode runs the converter on the given bytes and parses its stdout.
func (d *ConverterDecoder) Decode(data []byte) ([][]float64, error) {
	if d.Command == "" {
		return nil, fmt.Errorf("converter command not configured")
	}

	tmp, err := os.CreateTemp("", "warpage-*.bin")
	if err != nil {
		return nil, fmt.Errorf("failed to stage binary input: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to stage binary input: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to stage binary input: %w", err)
	}

	timeout := d.Timeout
	if timeout == 0 {
		timeout = DefaultConverterTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	args := append(append([]string{}, d.Args...), tmpName)
	cmd := exec.CommandContext(ctx, d.Command, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("converter timed out after %s", timeout)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("converter failed: %v: %s", err, msg)
		}
		return nil, fmt.Errorf("converter failed: %w", err)
	}

	return parseConverterOutput(stdout.String())
}

// parseConverterOutput tokenises the converter's text output into rows.
// Rectangularity is checked by the caller during normalisation.
func parseConverterOutput(text string) ([][]float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	lines := strings.Split(text, "\n")
	rows := make([][]float64, 0, len(lines))
	for i, line := range lines {
		fields := strings.Fields(line)
		row := make([]float64, 0, len(fields))
		for _, tok := range fields {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, fmt.Errorf("converter output row %d: invalid number %q", i+1, tok)
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
