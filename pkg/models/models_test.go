package models

import (
	"testing"
	"time"
)

func TestFileSetPathsSorted(t *testing.T) {
	set := NewFileSet("/tmp/left")
	for _, p := range []string{"src/z.go", "a.txt", "src/a.go", "README.md"} {
		set.Add(p, FileMeta{Size: 1, ModTime: time.Now()})
	}

	paths := set.Paths()
	if len(paths) != 4 {
		t.Fatalf("expected 4 paths, got %d", len(paths))
	}
	for i := 1; i < len(paths); i++ {
		if paths[i-1] >= paths[i] {
			t.Errorf("paths not sorted: %q before %q", paths[i-1], paths[i])
		}
	}
}

func TestFileSetLookup(t *testing.T) {
	set := NewFileSet("/tmp/left")
	set.Add("a.txt", FileMeta{Size: 42})

	if !set.Contains("a.txt") {
		t.Error("expected set to contain a.txt")
	}
	if set.Contains("b.txt") {
		t.Error("did not expect set to contain b.txt")
	}

	meta, ok := set.Meta("a.txt")
	if !ok || meta.Size != 42 {
		t.Errorf("unexpected metadata: %+v, ok=%v", meta, ok)
	}
}

func TestTreesIdentical(t *testing.T) {
	tests := []struct {
		name     string
		stats    Statistics
		expected bool
	}{
		{"clean run", Statistics{Common: 3, Identical: 3}, true},
		{"only left", Statistics{OnlyLeft: 1}, false},
		{"only right", Statistics{OnlyRight: 1}, false},
		{"content diff", Statistics{Common: 2, Identical: 1, Different: 1}, false},
		{"unreadable", Statistics{Common: 1, Unreadable: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Report{Stats: tt.stats}
			if got := r.TreesIdentical(); got != tt.expected {
				t.Errorf("TreesIdentical() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDifferentFiles(t *testing.T) {
	r := &Report{
		Files: []FileComparisonResult{
			{RelativePath: "a.txt", Status: StatusIdentical},
			{RelativePath: "b.txt", Status: StatusDifferent},
			{RelativePath: "c.txt", Status: StatusUnreadableBinary},
			{RelativePath: "d.txt", Status: StatusDifferent},
		},
	}

	diff := r.DifferentFiles()
	if len(diff) != 2 {
		t.Fatalf("expected 2 different files, got %d", len(diff))
	}
	if diff[0].RelativePath != "b.txt" || diff[1].RelativePath != "d.txt" {
		t.Errorf("unexpected order: %s, %s", diff[0].RelativePath, diff[1].RelativePath)
	}
}
