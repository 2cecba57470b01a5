package diff

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// binarySniffLen bounds how far we look for NUL bytes
const binarySniffLen = 8000

// SplitLines splits file content into logical lines on '\n' boundaries.
// A trailing newline at end-of-file does not produce a spurious empty
// final line; its presence is returned separately so a mismatch can be
// reported as metadata instead of a phantom diff line. Empty content is
// treated as zero lines with proper termination.
func SplitLines(data []byte) (lines []string, trailingNewline bool) {
	if len(data) == 0 {
		return nil, true
	}

	trailingNewline = data[len(data)-1] == '\n'
	lines = strings.Split(string(data), "\n")
	if trailingNewline {
		lines = lines[:len(lines)-1]
	}
	return lines, trailingNewline
}

// IsBinary reports whether content cannot be treated as text: a NUL byte
// near the start, or invalid UTF-8 anywhere.
func IsBinary(data []byte) bool {
	sniff := data
	if len(sniff) > binarySniffLen {
		sniff = sniff[:binarySniffLen]
	}
	if bytes.IndexByte(sniff, 0) >= 0 {
		return true
	}
	return !utf8.Valid(data)
}
