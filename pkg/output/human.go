package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/mbeaumont/dircomp/pkg/models"
)

// HumanFormatter prints a colorized console summary after the run
type HumanFormatter struct {
	writer io.Writer

	heading *color.Color
	notice  *color.Color
	warn    *color.Color
	good    *color.Color
}

// NewHumanFormatter creates a human-readable formatter. Colors are
// disabled when useColor is false (non-TTY output, --no-color).
func NewHumanFormatter(w io.Writer, useColor bool) *HumanFormatter {
	f := &HumanFormatter{
		writer:  w,
		heading: color.New(color.FgCyan),
		notice:  color.New(color.FgYellow),
		warn:    color.New(color.FgRed),
		good:    color.New(color.FgGreen),
	}
	if !useColor {
		for _, c := range []*color.Color{f.heading, f.notice, f.warn, f.good} {
			c.DisableColor()
		}
	}
	return f
}

// Start announces the comparison phase
func (f *HumanFormatter) Start(totalFiles int) {
	f.heading.Fprintf(f.writer, "Comparing %d common files...\n", totalFiles)
}

// FileCompared is a no-op for the plain human formatter
func (f *HumanFormatter) FileCompared(completed, total int) {}

// Complete prints the run summary
func (f *HumanFormatter) Complete(report *models.Report) error {
	rule := strings.Repeat("=", 70)

	fmt.Fprintf(f.writer, "\n%s\n", rule)
	f.good.Fprintln(f.writer, "Comparison completed")
	fmt.Fprintln(f.writer, rule)

	fmt.Fprintf(f.writer, "Left:  %s (%d files)\n", report.LeftRoot, report.Stats.LeftFilesScanned)
	fmt.Fprintf(f.writer, "Right: %s (%d files)\n", report.RightRoot, report.Stats.RightFilesScanned)
	fmt.Fprintf(f.writer, "Duration: %s\n\n", report.Duration.Round(time.Millisecond))

	if report.Stats.OnlyLeft > 0 {
		f.notice.Fprintf(f.writer, "%d files found only in the left tree\n", report.Stats.OnlyLeft)
	}
	if report.Stats.OnlyRight > 0 {
		f.notice.Fprintf(f.writer, "%d files found only in the right tree\n", report.Stats.OnlyRight)
	}
	if report.Stats.Different > 0 {
		f.warn.Fprintf(f.writer, "%d files with content differences\n", report.Stats.Different)
	}
	if report.Stats.Unreadable > 0 {
		f.warn.Fprintf(f.writer, "%d file pairs could not be compared\n", report.Stats.Unreadable)
	}
	if report.Stats.Identical > 0 {
		fmt.Fprintf(f.writer, "%d identical files\n", report.Stats.Identical)
	}

	if report.TreesIdentical() {
		f.good.Fprintln(f.writer, "Trees are identical!")
	}

	fmt.Fprintln(f.writer, rule)
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}
