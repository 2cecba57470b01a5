package diff

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbeaumont/dircomp/pkg/logging"
	"github.com/mbeaumont/dircomp/pkg/models"
)

func writePair(t *testing.T, left, right []byte) (string, string) {
	t.Helper()
	dir := t.TempDir()
	leftPath := filepath.Join(dir, "left.txt")
	rightPath := filepath.Join(dir, "right.txt")
	require.NoError(t, os.WriteFile(leftPath, left, 0644))
	require.NoError(t, os.WriteFile(rightPath, right, 0644))
	return leftPath, rightPath
}

func TestCompareFilesIdentical(t *testing.T) {
	leftPath, rightPath := writePair(t, []byte("1\n2\n3\n"), []byte("1\n2\n3\n"))

	d := NewDiffer(0, 0, logging.Nop())
	res := d.CompareFiles(leftPath, rightPath, "a.txt")

	assert.Equal(t, models.StatusIdentical, res.Status)
	assert.Empty(t, res.Lines, "identical files carry no edit script")
	assert.False(t, res.NewlineDiffers)
}

func TestCompareFilesDifferent(t *testing.T) {
	leftPath, rightPath := writePair(t, []byte("1\n2\n3\n"), []byte("1\n2\n4\n"))

	d := NewDiffer(0, 0, logging.Nop())
	res := d.CompareFiles(leftPath, rightPath, "a.txt")

	require.Equal(t, models.StatusDifferent, res.Status)
	require.Len(t, res.Lines, 3)
	assert.Equal(t, models.OpEqual, res.Lines[0].Op)
	assert.Equal(t, models.OpEqual, res.Lines[1].Op)
	assert.Equal(t, models.OpReplaced, res.Lines[2].Op)
	assert.Equal(t, "3", res.Lines[2].OldContent)
	assert.Equal(t, "4", res.Lines[2].NewContent)
	assert.Equal(t, 3, res.Lines[2].LeftLine)
	assert.Equal(t, 3, res.Lines[2].RightLine)
}

func TestCompareFilesEmptyFiles(t *testing.T) {
	leftPath, rightPath := writePair(t, nil, nil)

	d := NewDiffer(0, 0, logging.Nop())
	res := d.CompareFiles(leftPath, rightPath, "empty.txt")

	assert.Equal(t, models.StatusIdentical, res.Status)
}

func TestCompareFilesTrailingNewlineOnly(t *testing.T) {
	leftPath, rightPath := writePair(t, []byte("a\nb\n"), []byte("a\nb"))

	d := NewDiffer(0, 0, logging.Nop())
	res := d.CompareFiles(leftPath, rightPath, "nl.txt")

	// The logical line sequences match; the only evidence is metadata,
	// never a phantom empty diff line.
	assert.Equal(t, models.StatusDifferent, res.Status)
	assert.True(t, res.NewlineDiffers)
	for _, line := range res.Lines {
		assert.Equal(t, models.OpEqual, line.Op)
	}
}

func TestCompareFilesBinary(t *testing.T) {
	leftPath, rightPath := writePair(t, []byte{0x00, 0x01, 0x02}, []byte("text\n"))

	d := NewDiffer(0, 0, logging.Nop())
	res := d.CompareFiles(leftPath, rightPath, "blob.bin")

	assert.Equal(t, models.StatusUnreadableBinary, res.Status)
	assert.Empty(t, res.Lines)
}

func TestCompareFilesMissingFile(t *testing.T) {
	leftPath, _ := writePair(t, []byte("x\n"), []byte("x\n"))

	d := NewDiffer(0, 0, logging.Nop())
	res := d.CompareFiles(leftPath, filepath.Join(t.TempDir(), "gone.txt"), "gone.txt")

	assert.Equal(t, models.StatusUnreadableBinary, res.Status)
	assert.NotEmpty(t, res.Error)
}

func TestCompareFilesSizeCap(t *testing.T) {
	big := make([]byte, 2048)
	for i := range big {
		big[i] = 'a'
	}
	other := append([]byte(nil), big...)
	other[2047] = 'b'

	t.Run("identical oversized", func(t *testing.T) {
		leftPath, rightPath := writePair(t, big, big)
		d := NewDiffer(1024, 0, logging.Nop())
		res := d.CompareFiles(leftPath, rightPath, "big.txt")

		assert.Equal(t, models.StatusIdentical, res.Status)
		assert.True(t, res.DiffTruncated)
		assert.Empty(t, res.Lines)
	})

	t.Run("different oversized", func(t *testing.T) {
		leftPath, rightPath := writePair(t, big, other)
		d := NewDiffer(1024, 0, logging.Nop())
		res := d.CompareFiles(leftPath, rightPath, "big.txt")

		assert.Equal(t, models.StatusDifferent, res.Status)
		assert.True(t, res.DiffTruncated)
		assert.Empty(t, res.Lines)
	})
}

func TestCompareFilesLineCap(t *testing.T) {
	leftPath, rightPath := writePair(t,
		[]byte("1\n2\n3\n4\n5\n"),
		[]byte("1\n2\n3\n4\nX\n"),
	)

	d := NewDiffer(0, 3, logging.Nop())
	res := d.CompareFiles(leftPath, rightPath, "capped.txt")

	assert.Equal(t, models.StatusDifferent, res.Status)
	assert.True(t, res.DiffTruncated)
	assert.Empty(t, res.Lines)
}
