package warpage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pemtron-data/warpage.report/internal/config"
	"github.com/pemtron-data/warpage.report/internal/fsutil"
)

func batchConfig(folders ...string) *config.Analysis {
	cfg := config.Default()
	cfg.BasePath = "/data"
	cfg.Folders = folders
	return cfg
}

func newTestAnalyzer(t *testing.T, cfg *config.Analysis, mfs fsutil.FileSystem, opts ...AnalyzerOption) *Analyzer {
	t.Helper()
	opts = append([]AnalyzerOption{WithFileSystem(mfs)}, opts...)
	a, err := NewAnalyzer(cfg, opts...)
	require.NoError(t, err)
	return a
}

func TestRun_SurvivorAndSkip(t *testing.T) {
	// Two files: one real grid, one all-zero that trims to empty.
	mfs := fsutil.NewMemoryFileSystem()
	require.NoError(t, mfs.WriteFile("/data/30/a@_ORI.txt", []byte("1 2\n3 4\n"), 0644))
	require.NoError(t, mfs.WriteFile("/data/30/b@_ORI.txt", []byte("0 0\n0 0\n"), 0644))

	a := newTestAnalyzer(t, batchConfig("30"), mfs)
	sess, err := a.Run()
	require.NoError(t, err)

	require.Len(t, sess.Files, 1)
	rec := sess.Files[0]
	assert.Equal(t, "01", rec.Label)
	assert.Equal(t, 1.0, rec.Stats.Min)
	assert.Equal(t, 4.0, rec.Stats.Max)
	assert.Equal(t, 2.5, rec.Stats.Mean)
	assert.Equal(t, 3.0, rec.Stats.Range)

	assert.Equal(t, 2, sess.Summary.Discovered)
	assert.Equal(t, 1, sess.Summary.Processed)
	assert.Equal(t, 1, sess.Summary.Skipped)
	assert.Equal(t, 0, sess.Summary.Failed)

	assert.NotEmpty(t, sess.ID)
	assert.False(t, sess.CreatedAt.IsZero())
}

func TestRun_SentinelHandling(t *testing.T) {
	// Border sentinels become padding and are trimmed; the interior
	// sentinel stays as a zero and lowers the minimum.
	mfs := fsutil.NewMemoryFileSystem()
	require.NoError(t, mfs.WriteFile("/data/30/a@_ORI.txt",
		[]byte("-4000 0 0\n0 5 6\n0 -4000 7\n"), 0644))

	a := newTestAnalyzer(t, batchConfig("30"), mfs)
	sess, err := a.Run()
	require.NoError(t, err)

	require.Len(t, sess.Files, 1)
	rec := sess.Files[0]
	assert.Equal(t, 2, rec.Cleaned.Rows)
	assert.Equal(t, 2, rec.Cleaned.Cols)
	assert.Equal(t, 0.0, rec.Stats.Min, "interior nullified cell must count as 0")
	assert.Equal(t, 7.0, rec.Stats.Max)
}

func TestRun_NoFilesFound(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	require.NoError(t, mfs.MkdirAll("/data/30", 0755))

	a := newTestAnalyzer(t, batchConfig("30"), mfs)
	_, err := a.Run()

	var nf *NoFilesFoundError
	require.True(t, errors.As(err, &nf), "got %v", err)
	assert.Contains(t, nf.Error(), "30")
}

func TestRun_MalformedFileIsLocal(t *testing.T) {
	// A ragged third row fails one file; the sibling still survives.
	mfs := fsutil.NewMemoryFileSystem()
	require.NoError(t, mfs.WriteFile("/data/30/bad@_ORI.txt", []byte("1 2 3\n4 5 6\n7 8\n"), 0644))
	require.NoError(t, mfs.WriteFile("/data/30/good@_ORI.txt", []byte("1 2\n3 4\n"), 0644))

	a := newTestAnalyzer(t, batchConfig("30"), mfs)
	sess, err := a.Run()
	require.NoError(t, err)

	require.Len(t, sess.Files, 1)
	assert.Equal(t, "good@_ORI.txt", sess.Files[0].Name)
	assert.Equal(t, "01", sess.Files[0].Label)

	assert.Equal(t, 1, sess.Summary.Failed)
	require.Len(t, sess.Summary.Failures, 1)
	assert.Contains(t, sess.Summary.Failures[0].Reason, "row 3")
}

// failReadFS makes ReadFile fail for one path while delegating everything
// else, simulating an I/O error mid-batch.
type failReadFS struct {
	fsutil.FileSystem
	failPath string
}

func (f failReadFS) ReadFile(name string) ([]byte, error) {
	if name == f.failPath {
		return nil, errors.New("input/output error")
	}
	return f.FileSystem.ReadFile(name)
}

func TestRun_ReadFailureIsLocal(t *testing.T) {
	// An unreadable file is recorded as a failure; the sibling survives and
	// the batch completes.
	mfs := fsutil.NewMemoryFileSystem()
	require.NoError(t, mfs.WriteFile("/data/30/broken@_ORI.txt", []byte("1 2\n3 4\n"), 0644))
	require.NoError(t, mfs.WriteFile("/data/30/good@_ORI.txt", []byte("1 2\n3 4\n"), 0644))

	fs := failReadFS{FileSystem: mfs, failPath: "/data/30/broken@_ORI.txt"}
	a := newTestAnalyzer(t, batchConfig("30"), fs)
	sess, err := a.Run()
	require.NoError(t, err)

	require.Len(t, sess.Files, 1)
	assert.Equal(t, "good@_ORI.txt", sess.Files[0].Name)
	assert.Equal(t, "01", sess.Files[0].Label)

	assert.Equal(t, 2, sess.Summary.Discovered)
	assert.Equal(t, 1, sess.Summary.Failed)
	require.Len(t, sess.Summary.Failures, 1)
	assert.Equal(t, "/data/30/broken@_ORI.txt", sess.Summary.Failures[0].Path)
	assert.Contains(t, sess.Summary.Failures[0].Reason, "/data/30/broken@_ORI.txt")
	assert.Contains(t, sess.Summary.Failures[0].Reason, "input/output error")
}

func TestRun_NoDataWhenAllEmpty(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	require.NoError(t, mfs.WriteFile("/data/30/a@_ORI.txt", []byte("0 0\n0 0\n"), 0644))

	a := newTestAnalyzer(t, batchConfig("30"), mfs)
	_, err := a.Run()

	var noData *NoDataError
	require.True(t, errors.As(err, &noData), "got %v", err)
}

func TestRun_LabelsFollowDiscoveryOrder(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	// Folder order 60 then 30; names sort within each folder.
	require.NoError(t, mfs.WriteFile("/data/60/b@_ORI.txt", []byte("1\n"), 0644))
	require.NoError(t, mfs.WriteFile("/data/60/a@_ORI.txt", []byte("2\n"), 0644))
	require.NoError(t, mfs.WriteFile("/data/30/c@_ORI.txt", []byte("3\n"), 0644))

	a := newTestAnalyzer(t, batchConfig("60", "30"), mfs)
	sess, err := a.Run()
	require.NoError(t, err)

	require.Len(t, sess.Files, 3)
	wantOrder := []string{"a@_ORI.txt", "b@_ORI.txt", "c@_ORI.txt"}
	for i, rec := range sess.Files {
		assert.Equal(t, fmt.Sprintf("%02d", i+1), rec.Label)
		assert.Equal(t, wantOrder[i], rec.Name)
	}
}

func TestRun_ColorRangeCoversEveryFile(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	require.NoError(t, mfs.WriteFile("/data/30/a@_ORI.txt", []byte("-5 1\n2 3\n"), 0644))
	require.NoError(t, mfs.WriteFile("/data/30/b@_ORI.txt", []byte("4 9\n6 7\n"), 0644))

	a := newTestAnalyzer(t, batchConfig("30"), mfs)
	sess, err := a.Run()
	require.NoError(t, err)

	assert.Equal(t, -5.0, sess.Range.VMin)
	assert.Equal(t, 9.0, sess.Range.VMax)
	for _, rec := range sess.Files {
		assert.LessOrEqual(t, sess.Range.VMin, rec.Stats.Min, "vmin must cover %s", rec.Label)
		assert.GreaterOrEqual(t, sess.Range.VMax, rec.Stats.Max, "vmax must cover %s", rec.Label)
	}
}

func TestRun_ExplicitOverrides(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	require.NoError(t, mfs.WriteFile("/data/30/a@_ORI.txt", []byte("1 2\n3 4\n"), 0644))

	cfg := batchConfig("30")
	vmin, vmax := -100.0, 100.0
	cfg.VMin = &vmin
	cfg.VMax = &vmax

	a := newTestAnalyzer(t, cfg, mfs)
	sess, err := a.Run()
	require.NoError(t, err)

	assert.Equal(t, -100.0, sess.Range.VMin)
	assert.Equal(t, 100.0, sess.Range.VMax)
}

func TestRun_BinaryViaDecoder(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	require.NoError(t, mfs.WriteFile("/data/30/scan.bin", []byte{0x01, 0x02}, 0644))

	cfg := batchConfig("30")
	cfg.FileType = config.FileTypeBinary

	dec := &fakeDecoder{rows: [][]float64{{1, 2}, {3, 4}}}
	a := newTestAnalyzer(t, cfg, mfs, WithDecoder(dec))
	sess, err := a.Run()
	require.NoError(t, err)

	require.Len(t, sess.Files, 1)
	assert.Equal(t, 2.5, sess.Files[0].Stats.Mean)
}

func TestNewAnalyzer_BinaryRequiresDecoder(t *testing.T) {
	cfg := batchConfig("30")
	cfg.FileType = config.FileTypeBinary

	_, err := NewAnalyzer(cfg, WithFileSystem(fsutil.NewMemoryFileSystem()))
	require.Error(t, err)
}

func TestNewAnalyzer_RejectsInvalidConfig(t *testing.T) {
	cfg := batchConfig() // no folders
	_, err := NewAnalyzer(cfg, WithFileSystem(fsutil.NewMemoryFileSystem()))
	require.Error(t, err)
}

func TestRun_SessionConfigIsSnapshot(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	require.NoError(t, mfs.WriteFile("/data/30/a@_ORI.txt", []byte("1\n"), 0644))

	cfg := batchConfig("30")
	a := newTestAnalyzer(t, cfg, mfs)
	sess, err := a.Run()
	require.NoError(t, err)

	cfg.Folders[0] = "mutated"
	assert.Equal(t, "30", sess.Config.Folders[0], "session must own a config snapshot")
}
