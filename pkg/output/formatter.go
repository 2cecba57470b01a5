package output

import (
	"github.com/mbeaumont/dircomp/pkg/models"
)

// Formatter defines the interface for console output during and after a
// comparison run. Implementations include human-readable, progress-bar
// and JSON formatters.
type Formatter interface {
	// Start is called once the number of common files is known
	Start(totalFiles int)

	// FileCompared reports completion of one per-file comparison; it
	// may be called from multiple goroutines
	FileCompared(completed, total int)

	// Complete finalizes output and displays the run summary
	Complete(report *models.Report) error

	// Name returns the formatter name
	Name() string
}
