package cluster

import (
	"fmt"
	"sync"
)

// DataError reports a clustering result that is absent or inconsistent.
type DataError struct {
	Reason string
}

func (e *DataError) Error() string {
	return "cluster data: " + e.Reason
}

func dataErrorf(format string, args ...interface{}) *DataError {
	return &DataError{Reason: fmt.Sprintf(format, args...)}
}

// Info owns an immutable clustering result.
//
// The merge map, the leader set and the tree are computed on first access
// and cached for the lifetime of the Info. A new Info is required to
// recompute them. Info is safe for concurrent use.
type Info struct {
	linkage    []Merge
	assignment []int
	threshold  float64

	mergeOnce sync.Once
	mergeMap  MergeMap
	mergeErr  error

	leadersOnce sync.Once
	leaders     *Leaders
	leadersErr  error

	treeOnce sync.Once
	tree     *Tree
	treeErr  error
}

// New creates an Info from a linkage table, a flat-cluster assignment (one
// label per leaf) and the threshold the tree was cut at. The slices are
// copied.
func New(linkage []Merge, assignment []int, threshold float64) *Info {
	return &Info{
		linkage:    append([]Merge(nil), linkage...),
		assignment: append([]int(nil), assignment...),
		threshold:  threshold,
	}
}

// Linkage returns a copy of the linkage table.
func (c *Info) Linkage() []Merge {
	return append([]Merge(nil), c.linkage...)
}

// Assignment returns a copy of the flat-cluster assignment.
func (c *Info) Assignment() []int {
	return append([]int(nil), c.assignment...)
}

// Threshold returns the cut threshold.
func (c *Info) Threshold() float64 {
	return c.threshold
}

// NumLeaves returns the number of leaves implied by the linkage table.
func (c *Info) NumLeaves() int {
	return len(c.linkage) + 1
}

// validateLinkage checks that every row references ids that already exist
// and that no id is merged twice.
func validateLinkage(linkage []Merge) error {
	if len(linkage) == 0 {
		return dataErrorf("linkage table is empty")
	}
	n := len(linkage) + 1
	used := make(map[int]int, 2*len(linkage))
	for k, m := range linkage {
		if m.A == m.B {
			return dataErrorf("row %d merges id %d with itself", k, m.A)
		}
		limit := n + k
		for _, child := range []int{m.A, m.B} {
			if child < 0 || child >= limit {
				return dataErrorf("row %d references id %d, valid ids at this row are 0..%d", k, child, limit-1)
			}
			if prev, ok := used[child]; ok {
				return dataErrorf("id %d is merged twice (rows %d and %d)", child, prev, k)
			}
			used[child] = k
		}
	}
	return nil
}
