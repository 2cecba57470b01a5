package engine

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbeaumont/dircomp/pkg/filter"
	"github.com/mbeaumont/dircomp/pkg/logging"
	"github.com/mbeaumont/dircomp/pkg/models"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
}

func newEngine(t *testing.T, left, right string, cfg filter.Config, workers int) *Engine {
	t.Helper()
	f, err := filter.New(cfg)
	require.NoError(t, err)
	return New(Options{
		RunID:     "test-run",
		LeftRoot:  left,
		RightRoot: right,
		Filter:    f,
		Workers:   workers,
		Logger:    logging.Nop(),
	})
}

func TestRunBasicScenario(t *testing.T) {
	left := t.TempDir()
	right := t.TempDir()
	writeTree(t, left, map[string]string{
		"a.txt": "1\n2\n3\n",
		"b.txt": "x\n",
	})
	writeTree(t, right, map[string]string{
		"a.txt": "1\n2\n4\n",
		"c.txt": "x\n",
	})

	report, err := newEngine(t, left, right, filter.Config{}, 2).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"b.txt"}, report.OnlyLeft)
	assert.Equal(t, []string{"c.txt"}, report.OnlyRight)
	require.Len(t, report.Files, 1)

	res := report.Files[0]
	assert.Equal(t, "a.txt", res.RelativePath)
	require.Equal(t, models.StatusDifferent, res.Status)
	require.Len(t, res.Lines, 3)
	assert.Equal(t, models.OpEqual, res.Lines[0].Op)
	assert.Equal(t, models.OpEqual, res.Lines[1].Op)
	assert.Equal(t, models.OpReplaced, res.Lines[2].Op)
	assert.Equal(t, "3", res.Lines[2].OldContent)
	assert.Equal(t, "4", res.Lines[2].NewContent)
	assert.Equal(t, 3, res.Lines[2].LeftLine)

	assert.Equal(t, 1, report.Stats.Different)
	assert.Equal(t, 0, report.Stats.Identical)
	assert.False(t, report.TreesIdentical())
}

func TestRunIdenticalTrees(t *testing.T) {
	left := t.TempDir()
	right := t.TempDir()
	files := map[string]string{
		"a.txt":       "same\n",
		"sub/b.txt":   "also same\n",
		"sub/c/d.txt": "deep\n",
	}
	writeTree(t, left, files)
	writeTree(t, right, files)

	report, err := newEngine(t, left, right, filter.Config{}, 4).Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, report.OnlyLeft)
	assert.Empty(t, report.OnlyRight)
	assert.Equal(t, 3, report.Stats.Identical)
	assert.Equal(t, 0, report.Stats.Different)
	assert.True(t, report.TreesIdentical())
	for _, f := range report.Files {
		assert.Equal(t, models.StatusIdentical, f.Status)
		assert.Empty(t, f.Lines)
	}
}

func TestRunIgnoreFilesExcludesFromAllPartitions(t *testing.T) {
	left := t.TempDir()
	right := t.TempDir()
	writeTree(t, left, map[string]string{"run.log": "left\n", "a.txt": "x\n"})
	writeTree(t, right, map[string]string{"run.log": "right\n", "a.txt": "x\n"})

	report, err := newEngine(t, left, right,
		filter.Config{IgnoreFilePatterns: []string{"*.log"}}, 1).
		Run(context.Background())
	require.NoError(t, err)

	// run.log never appears anywhere, despite existing on both sides
	assert.Empty(t, report.OnlyLeft)
	assert.Empty(t, report.OnlyRight)
	require.Len(t, report.Files, 1)
	assert.Equal(t, "a.txt", report.Files[0].RelativePath)
}

func TestRunMissingRootIsFatal(t *testing.T) {
	right := t.TempDir()
	writeTree(t, right, map[string]string{"a.txt": "x\n"})

	report, err := newEngine(t, filepath.Join(t.TempDir(), "nope"), right, filter.Config{}, 1).
		Run(context.Background())
	require.Error(t, err)
	assert.Nil(t, report, "no partial report on scan failure")
}

func TestRunBinaryFileDoesNotAbort(t *testing.T) {
	left := t.TempDir()
	right := t.TempDir()
	writeTree(t, left, map[string]string{"a.txt": "ok\n"})
	writeTree(t, right, map[string]string{"a.txt": "ok\n"})
	require.NoError(t, os.WriteFile(filepath.Join(left, "blob.bin"), []byte{0, 1, 2}, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(right, "blob.bin"), []byte{0, 1, 3}, 0644))

	report, err := newEngine(t, left, right, filter.Config{}, 2).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Files, 2)
	assert.Equal(t, models.StatusIdentical, report.Files[0].Status)       // a.txt
	assert.Equal(t, models.StatusUnreadableBinary, report.Files[1].Status) // blob.bin
	assert.Equal(t, 1, report.Stats.Unreadable)
	assert.Equal(t, 1, report.Stats.Identical)
}

func TestRunResultsDeterministicallyOrdered(t *testing.T) {
	left := t.TempDir()
	right := t.TempDir()
	files := make(map[string]string)
	for _, name := range []string{"z.txt", "a.txt", "m/n.txt", "b.txt", "m/a.txt"} {
		files[name] = "content\n"
	}
	writeTree(t, left, files)
	writeTree(t, right, files)

	report, err := newEngine(t, left, right, filter.Config{}, 8).Run(context.Background())
	require.NoError(t, err)

	expected := []string{"a.txt", "b.txt", "m/a.txt", "m/n.txt", "z.txt"}
	require.Len(t, report.Files, len(expected))
	for i, rel := range expected {
		assert.Equal(t, rel, report.Files[i].RelativePath)
	}
}

func TestRunProgressCallback(t *testing.T) {
	left := t.TempDir()
	right := t.TempDir()
	files := map[string]string{"a.txt": "x\n", "b.txt": "y\n", "c.txt": "z\n"}
	writeTree(t, left, files)
	writeTree(t, right, files)

	var calls atomic.Int32
	f, err := filter.New(filter.Config{})
	require.NoError(t, err)

	eng := New(Options{
		RunID:     "progress-run",
		LeftRoot:  left,
		RightRoot: right,
		Filter:    f,
		Workers:   2,
		Logger:    logging.Nop(),
		OnProgress: func(completed, total int) {
			calls.Add(1)
			assert.Equal(t, 3, total)
		},
	})

	_, err = eng.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestRunCancelled(t *testing.T) {
	left := t.TempDir()
	right := t.TempDir()
	writeTree(t, left, map[string]string{"a.txt": "x\n"})
	writeTree(t, right, map[string]string{"a.txt": "x\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newEngine(t, left, right, filter.Config{}, 1).Run(ctx)
	require.Error(t, err)
}
