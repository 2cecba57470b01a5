package models

import (
	"sort"
	"time"
)

// FileMeta holds basic metadata about a scanned file.
// It is informational only; comparison decisions are made on content.
type FileMeta struct {
	// Size in bytes
	Size int64 `json:"size"`

	// ModTime is the last modification time
	ModTime time.Time `json:"mod_time"`
}

// FileSet maps relative paths to file metadata for one scanned tree.
// Paths are normalized to forward slashes and are unique within a scan.
// A FileSet is built once by the scanner and treated as immutable afterwards.
type FileSet struct {
	root  string
	files map[string]FileMeta
}

// NewFileSet creates an empty file set for the given root directory.
func NewFileSet(root string) *FileSet {
	return &FileSet{
		root:  root,
		files: make(map[string]FileMeta),
	}
}

// Root returns the absolute root path the set was scanned from.
func (s *FileSet) Root() string {
	return s.root
}

// Add records a file under its relative path.
func (s *FileSet) Add(relPath string, meta FileMeta) {
	s.files[relPath] = meta
}

// Contains reports whether the set holds the given relative path.
func (s *FileSet) Contains(relPath string) bool {
	_, ok := s.files[relPath]
	return ok
}

// Meta returns the metadata recorded for a relative path.
func (s *FileSet) Meta(relPath string) (FileMeta, bool) {
	meta, ok := s.files[relPath]
	return meta, ok
}

// Len returns the number of files in the set.
func (s *FileSet) Len() int {
	return len(s.files)
}

// Paths returns all relative paths in lexicographic order.
func (s *FileSet) Paths() []string {
	paths := make([]string, 0, len(s.files))
	for p := range s.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
