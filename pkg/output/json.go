package output

import (
	"encoding/json"
	"io"

	"github.com/mbeaumont/dircomp/pkg/models"
)

// JSONFormatter emits the full report as indented JSON. Progress output
// is suppressed so stdout stays machine-readable.
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a JSON formatter writing to w.
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// Start is a no-op
func (f *JSONFormatter) Start(totalFiles int) {}

// FileCompared is a no-op
func (f *JSONFormatter) FileCompared(completed, total int) {}

// Complete encodes the report
func (f *JSONFormatter) Complete(report *models.Report) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
