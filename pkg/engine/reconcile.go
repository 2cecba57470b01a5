package engine

import (
	"github.com/mbeaumont/dircomp/pkg/models"
)

// Partition is the three-way split of two path sets. The three slices
// are disjoint, cover exactly the union of both sets, and are sorted
// lexicographically so downstream output is deterministic.
type Partition struct {
	OnlyLeft  []string
	OnlyRight []string
	Common    []string
}

// Reconcile computes the partition of the two file sets. Pure function,
// no I/O.
func Reconcile(left, right *models.FileSet) Partition {
	var p Partition

	for _, path := range left.Paths() {
		if right.Contains(path) {
			p.Common = append(p.Common, path)
		} else {
			p.OnlyLeft = append(p.OnlyLeft, path)
		}
	}
	for _, path := range right.Paths() {
		if !left.Contains(path) {
			p.OnlyRight = append(p.OnlyRight, path)
		}
	}

	return p
}
