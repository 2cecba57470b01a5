package output

import (
	"io"

	"github.com/cheggaaa/pb/v3"

	"github.com/mbeaumont/dircomp/pkg/models"
)

// ProgressFormatter wraps the human formatter with a progress bar over
// the common-file comparison phase.
type ProgressFormatter struct {
	human    *HumanFormatter
	writer   io.Writer
	bar      *pb.ProgressBar
	finished bool
}

// NewProgressFormatter creates a progress-bar formatter writing to w.
func NewProgressFormatter(w io.Writer, useColor bool) *ProgressFormatter {
	return &ProgressFormatter{
		human:  NewHumanFormatter(w, useColor),
		writer: w,
	}
}

// Start begins the progress bar
func (f *ProgressFormatter) Start(totalFiles int) {
	if totalFiles == 0 {
		return
	}
	f.bar = pb.New(totalFiles)
	f.bar.SetWriter(f.writer)
	f.bar.Set(pb.Bytes, false)
	f.bar.Start()
}

// FileCompared advances the bar; pb is safe for concurrent increments
func (f *ProgressFormatter) FileCompared(completed, total int) {
	if f.bar != nil {
		f.bar.Increment()
	}
}

// StopBar halts the progress bar so nothing else writing to the
// terminal interleaves with its redraws. Safe to call more than once.
func (f *ProgressFormatter) StopBar() {
	if f.bar != nil && !f.finished {
		f.bar.Finish()
		f.finished = true
	}
}

// Complete finishes the bar and prints the summary
func (f *ProgressFormatter) Complete(report *models.Report) error {
	f.StopBar()
	return f.human.Complete(report)
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}
