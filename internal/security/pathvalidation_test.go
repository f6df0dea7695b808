package security

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidatePathWithinDirectory(t *testing.T) {
	dir := t.TempDir()

	if err := ValidatePathWithinDirectory(filepath.Join(dir, "report.pdf"), dir); err != nil {
		t.Errorf("path inside directory rejected: %v", err)
	}
	if err := ValidatePathWithinDirectory(filepath.Join(dir, "sub", "report.pdf"), dir); err != nil {
		t.Errorf("nested path rejected: %v", err)
	}
	if err := ValidatePathWithinDirectory(filepath.Join(dir, "..", "escape.pdf"), dir); err == nil {
		t.Error("expected traversal to be rejected")
	}
	if err := ValidatePathWithinDirectory("/etc/passwd", dir); err == nil {
		t.Error("expected absolute escape to be rejected")
	}
}

func TestValidatePathWithinDirectory_Symlink(t *testing.T) {
	base := t.TempDir()
	outside := t.TempDir()

	link := filepath.Join(base, "link")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	if err := ValidatePathWithinDirectory(filepath.Join(link, "report.pdf"), base); err == nil {
		t.Error("expected symlinked escape to be rejected")
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", "unknown"},
		{"report.pdf", "report.pdf"},
		{"warpage analysis (final).pdf", "warpage_analysis_final_.pdf"},
		{"../../etc/passwd", "etc_passwd"},
		{"___", "unknown"},
	}
	for _, tc := range cases {
		if got := SanitizeFilename(tc.in); got != tc.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
