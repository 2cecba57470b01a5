package diff

import (
	"github.com/mbeaumont/dircomp/pkg/models"
)

// EditScript computes the minimal line-level edit script transforming
// left into right, derived from the longest common subsequence under
// exact string equality per line. The DP table is filled in a fixed scan
// order and ties prefer matching the earliest common lines, so the
// output is deterministic. At each alignment point a run of left-only
// lines followed by a run of right-only lines is paired positionally
// into Replaced entries, with any excess reported as Deleted or
// Inserted. Line numbers are 1-based per side.
func EditScript(left, right []string) []models.DiffLine {
	// Trim the common prefix and suffix so the quadratic table only
	// covers the changed region.
	prefix := 0
	for prefix < len(left) && prefix < len(right) && left[prefix] == right[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(left)-prefix && suffix < len(right)-prefix &&
		left[len(left)-1-suffix] == right[len(right)-1-suffix] {
		suffix++
	}

	script := make([]models.DiffLine, 0, max(len(left), len(right)))
	for i := 0; i < prefix; i++ {
		script = append(script, models.DiffLine{
			Op:        models.OpEqual,
			LeftLine:  i + 1,
			RightLine: i + 1,
			Content:   left[i],
		})
	}

	mid := newAligner(left[prefix:len(left)-suffix], right[prefix:len(right)-suffix], prefix)
	script = mid.run(script)

	for i := 0; i < suffix; i++ {
		script = append(script, models.DiffLine{
			Op:        models.OpEqual,
			LeftLine:  len(left) - suffix + i + 1,
			RightLine: len(right) - suffix + i + 1,
			Content:   left[len(left)-suffix+i],
		})
	}
	return script
}

// aligner walks the LCS table for the trimmed middle section
type aligner struct {
	left, right []string
	offset      int // number of trimmed prefix lines
	table       []int32
	cols        int

	pendingDel []models.DiffLine
	pendingIns []models.DiffLine
}

func newAligner(left, right []string, offset int) *aligner {
	a := &aligner{
		left:   left,
		right:  right,
		offset: offset,
		cols:   len(right) + 1,
	}
	a.fill()
	return a
}

// fill computes lcs(i,j) = length of the LCS of left[i:] and right[j:]
func (a *aligner) fill() {
	n, m := len(a.left), len(a.right)
	a.table = make([]int32, (n+1)*(m+1))
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a.left[i] == a.right[j] {
				a.table[i*a.cols+j] = a.table[(i+1)*a.cols+j+1] + 1
			} else if a.table[(i+1)*a.cols+j] >= a.table[i*a.cols+j+1] {
				a.table[i*a.cols+j] = a.table[(i+1)*a.cols+j]
			} else {
				a.table[i*a.cols+j] = a.table[i*a.cols+j+1]
			}
		}
	}
}

func (a *aligner) run(script []models.DiffLine) []models.DiffLine {
	n, m := len(a.left), len(a.right)
	i, j := 0, 0
	for i < n || j < m {
		switch {
		case i < n && j < m && a.left[i] == a.right[j]:
			script = a.flush(script)
			script = append(script, models.DiffLine{
				Op:        models.OpEqual,
				LeftLine:  a.offset + i + 1,
				RightLine: a.offset + j + 1,
				Content:   a.left[i],
			})
			i++
			j++

		case i < n && (j >= m || a.table[(i+1)*a.cols+j] >= a.table[i*a.cols+j+1]):
			a.pendingDel = append(a.pendingDel, models.DiffLine{
				Op:       models.OpDeleted,
				LeftLine: a.offset + i + 1,
				Content:  a.left[i],
			})
			i++

		default:
			a.pendingIns = append(a.pendingIns, models.DiffLine{
				Op:        models.OpInserted,
				RightLine: a.offset + j + 1,
				Content:   a.right[j],
			})
			j++
		}
	}
	return a.flush(script)
}

// flush pairs the buffered delete and insert runs into Replaced entries
// for overlapping positions, then appends the excess unchanged.
func (a *aligner) flush(script []models.DiffLine) []models.DiffLine {
	paired := len(a.pendingDel)
	if len(a.pendingIns) < paired {
		paired = len(a.pendingIns)
	}

	for k := 0; k < paired; k++ {
		script = append(script, models.DiffLine{
			Op:         models.OpReplaced,
			LeftLine:   a.pendingDel[k].LeftLine,
			RightLine:  a.pendingIns[k].RightLine,
			OldContent: a.pendingDel[k].Content,
			NewContent: a.pendingIns[k].Content,
		})
	}
	script = append(script, a.pendingDel[paired:]...)
	script = append(script, a.pendingIns[paired:]...)

	a.pendingDel = a.pendingDel[:0]
	a.pendingIns = a.pendingIns[:0]
	return script
}
