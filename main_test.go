package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pemtron-data/warpage.report/internal/config"
	"github.com/pemtron-data/warpage.report/internal/warpage"
)

func TestParseBound(t *testing.T) {
	existing := 3.5

	got, err := parseBound("", &existing)
	if err != nil {
		t.Fatal(err)
	}
	if got != &existing {
		t.Error("empty flag should keep the existing bound")
	}

	got, err = parseBound("-12.5", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || *got != -12.5 {
		t.Errorf("got %v, want -12.5", got)
	}

	if _, err := parseBound("abc", nil); err == nil {
		t.Error("expected error for non-numeric bound")
	}
}

func TestPrintSummary(t *testing.T) {
	g, err := warpage.GridFromRows([][]float64{{1, 2}, {3, 4}})
	if err != nil {
		t.Fatal(err)
	}
	sess := &warpage.Session{
		ID:        "s1",
		CreatedAt: time.Now(),
		Config:    config.Default(),
		Files: []*warpage.FileRecord{{
			Label:   "01",
			Folder:  "30",
			Name:    "a@_ORI.txt",
			Cleaned: g,
			Stats:   warpage.ComputeSummary(g),
		}},
		Range: warpage.ColorRange{VMin: 1, VMax: 4},
		Summary: warpage.RunSummary{
			Discovered: 2, Processed: 1, Failed: 1,
			Failures: []warpage.FileFailure{{Path: "/data/30/bad.txt", Reason: "malformed grid"}},
		},
	}

	var buf bytes.Buffer
	printSummary(&buf, sess)
	out := buf.String()

	for _, want := range []string{"01", "30/a@_ORI.txt", "2.5000", "1 processed", "malformed grid"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
