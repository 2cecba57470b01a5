package models

import (
	"time"
)

// Report represents the results of one comparison run.
// It is assembled once by the engine and read-only afterwards.
type Report struct {
	// Run details
	RunID     string `json:"run_id"`
	LeftRoot  string `json:"left_root"`
	RightRoot string `json:"right_root"`

	// Timing
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`

	// OnlyLeft and OnlyRight list paths present in a single tree,
	// sorted lexicographically
	OnlyLeft  []string `json:"only_left"`
	OnlyRight []string `json:"only_right"`

	// Files holds one result per common path, sorted by relative path
	Files []FileComparisonResult `json:"files"`

	// Statistics
	Stats Statistics `json:"stats"`
}

// Statistics holds comparison run metrics
type Statistics struct {
	// Files admitted per tree
	LeftFilesScanned  int `json:"left_files_scanned"`
	RightFilesScanned int `json:"right_files_scanned"`

	// Partition sizes
	OnlyLeft  int `json:"only_left"`
	OnlyRight int `json:"only_right"`
	Common    int `json:"common"`

	// Per-file outcomes among common paths
	Identical  int `json:"identical"`
	Different  int `json:"different"`
	Unreadable int `json:"unreadable"`
}

// TreesIdentical reports whether the run found no differences at all.
func (r *Report) TreesIdentical() bool {
	return r.Stats.OnlyLeft == 0 &&
		r.Stats.OnlyRight == 0 &&
		r.Stats.Different == 0 &&
		r.Stats.Unreadable == 0
}

// DifferentFiles returns the results whose status is StatusDifferent,
// preserving report order.
func (r *Report) DifferentFiles() []FileComparisonResult {
	var out []FileComparisonResult
	for _, f := range r.Files {
		if f.Status == StatusDifferent {
			out = append(out, f)
		}
	}
	return out
}
