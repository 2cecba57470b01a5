package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/mbeaumont/dircomp/pkg/models"
)

// diffContext is the number of equal lines shown around each change
const diffContext = 3

// WriteReportFile writes the detailed report to a file. Format can be
// "human" or "json".
func WriteReportFile(report *models.Report, path, format string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	if format == "json" {
		encoder := json.NewEncoder(file)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	}
	return WriteReport(report, file)
}

// WriteReport renders the human-readable detailed report: only-left and
// only-right sections followed by unified-style per-file line diffs.
// Replaced pairs additionally get an intra-line change markup line.
func WriteReport(report *models.Report, w io.Writer) error {
	r := &reportWriter{w: w, dmp: diffmatchpatch.New()}
	return r.write(report)
}

type reportWriter struct {
	w   io.Writer
	dmp *diffmatchpatch.DiffMatchPatch
	err error
}

func (r *reportWriter) printf(format string, args ...interface{}) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

func (r *reportWriter) write(report *models.Report) error {
	rule := strings.Repeat("=", 70)
	thin := strings.Repeat("-", 70)

	r.printf("%s\n", rule)
	r.printf("DIRECTORY COMPARISON REPORT\n")
	r.printf("%s\n", rule)
	r.printf("Left:      %s\n", report.LeftRoot)
	r.printf("Right:     %s\n", report.RightRoot)
	r.printf("Generated: %s\n", time.Now().Format(time.RFC3339))
	r.printf("Run ID:    %s\n", report.RunID)
	r.printf("%s\n\n", rule)

	if len(report.OnlyLeft) > 0 {
		r.printf("FILES ONLY IN LEFT TREE (%d):\n%s\n", len(report.OnlyLeft), thin)
		for _, path := range report.OnlyLeft {
			r.printf("  %s\n", path)
		}
		r.printf("\n")
	}

	if len(report.OnlyRight) > 0 {
		r.printf("FILES ONLY IN RIGHT TREE (%d):\n%s\n", len(report.OnlyRight), thin)
		for _, path := range report.OnlyRight {
			r.printf("  %s\n", path)
		}
		r.printf("\n")
	}

	different := report.DifferentFiles()
	if len(different) > 0 {
		r.printf("FILES WITH CONTENT DIFFERENCES (%d):\n%s\n", len(different), thin)
		for _, res := range different {
			r.writeFileDiff(res)
		}
	}

	var unreadable []models.FileComparisonResult
	for _, res := range report.Files {
		if res.Status == models.StatusUnreadableBinary {
			unreadable = append(unreadable, res)
		}
	}
	if len(unreadable) > 0 {
		r.printf("FILE PAIRS NOT COMPARED (%d):\n%s\n", len(unreadable), thin)
		for _, res := range unreadable {
			r.printf("  %s", res.RelativePath)
			if res.Error != "" {
				r.printf(" (%s)", res.Error)
			}
			r.printf("\n")
		}
		r.printf("\n")
	}

	return r.err
}

func (r *reportWriter) writeFileDiff(res models.FileComparisonResult) {
	r.printf("\n--- left/%s\n", res.RelativePath)
	r.printf("+++ right/%s\n", res.RelativePath)

	if res.DiffTruncated {
		r.printf("  (diff omitted: file exceeds size or line limits)\n")
		return
	}
	if res.NewlineDiffers {
		r.printf("  (trailing newline differs)\n")
	}

	for _, h := range hunks(res.Lines, diffContext) {
		r.writeHunk(h)
	}
}

func (r *reportWriter) writeHunk(lines []models.DiffLine) {
	leftStart, rightStart := 0, 0
	leftCount, rightCount := 0, 0
	for _, line := range lines {
		if line.LeftLine > 0 {
			if leftStart == 0 {
				leftStart = line.LeftLine
			}
			leftCount++
		}
		if line.RightLine > 0 {
			if rightStart == 0 {
				rightStart = line.RightLine
			}
			rightCount++
		}
	}

	r.printf("@@ -%d,%d +%d,%d @@\n", leftStart, leftCount, rightStart, rightCount)
	for _, line := range lines {
		switch line.Op {
		case models.OpEqual:
			r.printf(" %s\n", line.Content)
		case models.OpDeleted:
			r.printf("-%s\n", line.Content)
		case models.OpInserted:
			r.printf("+%s\n", line.Content)
		case models.OpReplaced:
			r.printf("-%s\n", line.OldContent)
			r.printf("+%s\n", line.NewContent)
			r.printf("~%s\n", r.inlineMarkup(line.OldContent, line.NewContent))
		}
	}
}

// inlineMarkup highlights the character-level changes inside a replaced
// pair using wdiff-style [-removed-]{+added+} markers.
func (r *reportWriter) inlineMarkup(old, new string) string {
	diffs := r.dmp.DiffMain(old, new, false)
	diffs = r.dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			b.WriteString(d.Text)
		case diffmatchpatch.DiffDelete:
			b.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffInsert:
			b.WriteString("{+" + d.Text + "+}")
		}
	}
	return b.String()
}

// hunks groups an edit script into unified-diff hunks: each change with
// up to context equal lines around it, overlapping ranges merged.
func hunks(lines []models.DiffLine, context int) [][]models.DiffLine {
	var changed []int
	for i, line := range lines {
		if line.Op != models.OpEqual {
			changed = append(changed, i)
		}
	}
	if len(changed) == 0 {
		return nil
	}

	clamp := func(start, end int) []models.DiffLine {
		if start < 0 {
			start = 0
		}
		if end > len(lines)-1 {
			end = len(lines) - 1
		}
		return lines[start : end+1]
	}

	var out [][]models.DiffLine
	start := changed[0] - context
	end := changed[0] + context
	for _, idx := range changed[1:] {
		if idx-context <= end+1 {
			if idx+context > end {
				end = idx + context
			}
			continue
		}
		out = append(out, clamp(start, end))
		start = idx - context
		end = idx + context
	}
	return append(out, clamp(start, end))
}
