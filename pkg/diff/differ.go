package diff

import (
	"bytes"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/mbeaumont/dircomp/pkg/models"
)

// Guard rails against pathological memory use in the quadratic table
const (
	// DefaultMaxFileSize is the largest file diffed line by line (bytes)
	DefaultMaxFileSize = 8 << 20
	// DefaultMaxLines is the largest per-side line count diffed
	DefaultMaxLines = 10000
)

// Differ compares file pairs line by line. Per-file failures become
// result statuses, never errors: one bad file must not lose the rest of
// the comparison.
type Differ struct {
	maxFileSize int64
	maxLines    int
	log         zerolog.Logger
}

// NewDiffer creates a differ. Non-positive caps fall back to defaults.
func NewDiffer(maxFileSize int64, maxLines int, log zerolog.Logger) *Differ {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	return &Differ{
		maxFileSize: maxFileSize,
		maxLines:    maxLines,
		log:         log,
	}
}

// Lines computes the edit script between two line sequences.
func (d *Differ) Lines(left, right []string) []models.DiffLine {
	return EditScript(left, right)
}

// CompareFiles reads both files and produces the comparison result for
// one common relative path. Undecodable content yields
// StatusUnreadableBinary; pairs exceeding the size or line caps get a
// byte-equality verdict with DiffTruncated set and no edit script.
func (d *Differ) CompareFiles(leftPath, rightPath, relPath string) models.FileComparisonResult {
	res := models.FileComparisonResult{RelativePath: relPath}

	leftInfo, err := os.Stat(leftPath)
	if err != nil {
		return d.unreadable(res, err)
	}
	rightInfo, err := os.Stat(rightPath)
	if err != nil {
		return d.unreadable(res, err)
	}

	if leftInfo.Size() > d.maxFileSize || rightInfo.Size() > d.maxFileSize {
		return d.compareOversized(res, leftPath, rightPath)
	}

	leftData, err := os.ReadFile(leftPath)
	if err != nil {
		return d.unreadable(res, err)
	}
	rightData, err := os.ReadFile(rightPath)
	if err != nil {
		return d.unreadable(res, err)
	}

	if IsBinary(leftData) || IsBinary(rightData) {
		res.Status = models.StatusUnreadableBinary
		res.Error = "binary or undecodable content"
		return res
	}

	if bytes.Equal(leftData, rightData) {
		res.Status = models.StatusIdentical
		return res
	}

	leftLines, leftNL := SplitLines(leftData)
	rightLines, rightNL := SplitLines(rightData)
	res.NewlineDiffers = leftNL != rightNL

	if len(leftLines) > d.maxLines || len(rightLines) > d.maxLines {
		d.log.Debug().Str("path", relPath).
			Int("left_lines", len(leftLines)).Int("right_lines", len(rightLines)).
			Msg("line cap exceeded, skipping line diff")
		res.Status = models.StatusDifferent
		res.DiffTruncated = true
		return res
	}

	res.Lines = EditScript(leftLines, rightLines)
	res.Status = models.StatusDifferent
	return res
}

// compareOversized settles a pair too large to diff with a streaming
// byte comparison.
func (d *Differ) compareOversized(res models.FileComparisonResult, leftPath, rightPath string) models.FileComparisonResult {
	same, err := sameBytes(leftPath, rightPath)
	if err != nil {
		return d.unreadable(res, err)
	}

	res.DiffTruncated = true
	if same {
		res.Status = models.StatusIdentical
	} else {
		res.Status = models.StatusDifferent
	}
	return res
}

func (d *Differ) unreadable(res models.FileComparisonResult, err error) models.FileComparisonResult {
	d.log.Debug().Err(err).Str("path", res.RelativePath).Msg("file pair not comparable")
	res.Status = models.StatusUnreadableBinary
	res.Error = err.Error()
	return res
}

// sameBytes compares two files chunk by chunk without loading them fully.
func sameBytes(pathA, pathB string) (bool, error) {
	infoA, err := os.Stat(pathA)
	if err != nil {
		return false, err
	}
	infoB, err := os.Stat(pathB)
	if err != nil {
		return false, err
	}
	if infoA.Size() != infoB.Size() {
		return false, nil
	}

	fa, err := os.Open(pathA)
	if err != nil {
		return false, err
	}
	defer fa.Close()

	fb, err := os.Open(pathB)
	if err != nil {
		return false, err
	}
	defer fb.Close()

	bufA := make([]byte, 64*1024)
	bufB := make([]byte, 64*1024)
	for {
		na, errA := io.ReadFull(fa, bufA)
		nb, errB := io.ReadFull(fb, bufB)
		if na != nb || !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false, nil
		}
		if errA == io.EOF || errA == io.ErrUnexpectedEOF {
			return errB == io.EOF || errB == io.ErrUnexpectedEOF, nil
		}
		if errA != nil {
			return false, errA
		}
		if errB != nil {
			return false, errB
		}
	}
}
