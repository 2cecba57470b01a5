package models

// DiffOp identifies the kind of edit a DiffLine represents
type DiffOp string

const (
	// OpEqual indicates the line is present on both sides
	OpEqual DiffOp = "equal"
	// OpInserted indicates the line exists only on the right side
	OpInserted DiffOp = "inserted"
	// OpDeleted indicates the line exists only on the left side
	OpDeleted DiffOp = "deleted"
	// OpReplaced indicates a left line paired with a differing right line
	OpReplaced DiffOp = "replaced"
)

// DiffLine is one entry of a line-level edit script.
// Line numbers are 1-based; a zero line number means the line has no
// counterpart on that side (inserts have no left number, deletes no right).
type DiffLine struct {
	Op DiffOp `json:"op"`

	// LeftLine is the 1-based line number on the left side (0 if absent)
	LeftLine int `json:"left_line,omitempty"`

	// RightLine is the 1-based line number on the right side (0 if absent)
	RightLine int `json:"right_line,omitempty"`

	// Content holds the line text for equal, inserted and deleted entries
	Content string `json:"content,omitempty"`

	// OldContent and NewContent hold both sides of a replaced entry
	OldContent string `json:"old_content,omitempty"`
	NewContent string `json:"new_content,omitempty"`
}

// FileStatus categorizes the outcome of comparing one relative path
type FileStatus string

const (
	// StatusIdentical indicates both files have the same content
	StatusIdentical FileStatus = "identical"
	// StatusDifferent indicates the files differ in content
	StatusDifferent FileStatus = "different"
	// StatusOnlyLeft indicates the file exists only in the left tree
	StatusOnlyLeft FileStatus = "only_left"
	// StatusOnlyRight indicates the file exists only in the right tree
	StatusOnlyRight FileStatus = "only_right"
	// StatusUnreadableBinary indicates the pair could not be compared as text
	StatusUnreadableBinary FileStatus = "unreadable_binary"
)

// FileComparisonResult is the outcome of comparing one common path.
// Lines is empty unless Status is StatusDifferent.
type FileComparisonResult struct {
	RelativePath string     `json:"relative_path"`
	Status       FileStatus `json:"status"`
	Lines        []DiffLine `json:"lines,omitempty"`

	// NewlineDiffers is set when the files disagree only about the
	// presence of a trailing newline; the edit script never carries a
	// phantom empty line for it.
	NewlineDiffers bool `json:"newline_differs,omitempty"`

	// DiffTruncated is set when the pair exceeded the size or line caps
	// and only a byte-equality verdict was produced.
	DiffTruncated bool `json:"diff_truncated,omitempty"`

	// Error describes a per-file read failure, if any
	Error string `json:"error,omitempty"`
}
