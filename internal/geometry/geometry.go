// Package geometry validates and normalizes flattened dendrogram link
// geometry, and lays out geometry for a linkage table when none is supplied.
//
// The geometry record uses the classic dendrogram dictionary field names
// (icoord, dcoord, color_list, ivl, leaves, leaves_color_list) so output of
// existing dendrogram producers can be fed in unchanged.
package geometry

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Geometry is the flattened rendering of a dendrogram: one bracket per merge
// plus per-leaf display data. A nil field means the field is absent.
type Geometry struct {
	ICoord     [][]float64 `json:"icoord" yaml:"icoord"`
	DCoord     [][]float64 `json:"dcoord" yaml:"dcoord"`
	ColorList  []string    `json:"color_list" yaml:"color_list"`
	LeafLabels []string    `json:"ivl" yaml:"ivl"`
	Leaves     []int       `json:"leaves" yaml:"leaves"`
	LeafColors []string    `json:"leaves_color_list" yaml:"leaves_color_list"`
}

// Field names, in the order they are reported when missing.
const (
	FieldICoord     = "icoord"
	FieldDCoord     = "dcoord"
	FieldColorList  = "color_list"
	FieldLeafLabels = "ivl"
	FieldLeaves     = "leaves"
	FieldLeafColors = "leaves_color_list"
)

// MalformedError reports geometry that cannot be ingested. Missing lists
// every absent required field; Detail describes shape problems.
type MalformedError struct {
	Missing []string
	Detail  string
}

func (e *MalformedError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("malformed geometry: missing fields %s", strings.Join(e.Missing, ", "))
	}
	return "malformed geometry: " + e.Detail
}

func malformedf(format string, args ...interface{}) *MalformedError {
	return &MalformedError{Detail: fmt.Sprintf(format, args...)}
}

// Normalized is validated geometry ready for reconstruction.
type Normalized struct {
	X          [][4]float64
	Y          [][4]float64
	LinkColors []string
	LeafLabels []string
	Leaves     []int
	LeafColors []string

	// LeafPositions are the x-positions of the leaves, sorted; the i-th
	// position belongs to the i-th leaf in display order.
	LeafPositions []float64

	digits int
}

// NumLinks returns the number of merge brackets.
func (n *Normalized) NumLinks() int {
	return len(n.X)
}

// Key snaps a coordinate to this geometry's registry grid.
func (n *Normalized) Key(x, y float64) Key {
	return Snap(x, y, n.digits)
}

// Domains returns the x and y extents over all brackets.
func (n *Normalized) Domains() (xDomain, yDomain [2]float64) {
	if len(n.X) == 0 {
		for i, x := range n.LeafPositions {
			if i == 0 || x < xDomain[0] {
				xDomain[0] = x
			}
			if i == 0 || x > xDomain[1] {
				xDomain[1] = x
			}
		}
		return xDomain, yDomain
	}
	xDomain = [2]float64{math.Inf(1), math.Inf(-1)}
	yDomain = [2]float64{math.Inf(1), math.Inf(-1)}
	for i := range n.X {
		for j := 0; j < 4; j++ {
			xDomain[0] = math.Min(xDomain[0], n.X[i][j])
			xDomain[1] = math.Max(xDomain[1], n.X[i][j])
			yDomain[0] = math.Min(yDomain[0], n.Y[i][j])
			yDomain[1] = math.Max(yDomain[1], n.Y[i][j])
		}
	}
	return xDomain, yDomain
}

// Ingest validates g and converts it to normalized form, snapping registry
// keys to the given number of decimal digits (DefaultSnapDigits when
// negative).
func Ingest(g *Geometry, digits int) (*Normalized, error) {
	if g == nil {
		g = &Geometry{}
	}
	if digits < 0 {
		digits = DefaultSnapDigits
	}

	var missing []string
	if g.ICoord == nil {
		missing = append(missing, FieldICoord)
	}
	if g.DCoord == nil {
		missing = append(missing, FieldDCoord)
	}
	if g.ColorList == nil {
		missing = append(missing, FieldColorList)
	}
	if g.LeafLabels == nil {
		missing = append(missing, FieldLeafLabels)
	}
	if g.Leaves == nil {
		missing = append(missing, FieldLeaves)
	}
	if g.LeafColors == nil {
		missing = append(missing, FieldLeafColors)
	}
	if len(missing) > 0 {
		return nil, &MalformedError{Missing: missing}
	}

	links := len(g.ICoord)
	if len(g.DCoord) != links || len(g.ColorList) != links {
		return nil, malformedf("per-link fields disagree: %d %s, %d %s, %d %s",
			len(g.ICoord), FieldICoord, len(g.DCoord), FieldDCoord, len(g.ColorList), FieldColorList)
	}
	leaves := len(g.Leaves)
	if len(g.LeafLabels) != leaves || len(g.LeafColors) != leaves {
		return nil, malformedf("per-leaf fields disagree: %d %s, %d %s, %d %s",
			len(g.LeafLabels), FieldLeafLabels, len(g.Leaves), FieldLeaves, len(g.LeafColors), FieldLeafColors)
	}

	n := &Normalized{
		X:          make([][4]float64, links),
		Y:          make([][4]float64, links),
		LinkColors: append([]string(nil), g.ColorList...),
		LeafLabels: append([]string(nil), g.LeafLabels...),
		Leaves:     append([]int(nil), g.Leaves...),
		LeafColors: append([]string(nil), g.LeafColors...),
		digits:     digits,
	}
	for i := 0; i < links; i++ {
		if len(g.ICoord[i]) != 4 || len(g.DCoord[i]) != 4 {
			return nil, malformedf("link %d: coordinates must be quadruples, got %d x and %d y values",
				i, len(g.ICoord[i]), len(g.DCoord[i]))
		}
		for j := 0; j < 4; j++ {
			x, y := g.ICoord[i][j], g.DCoord[i][j]
			if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
				return nil, malformedf("link %d: non-finite coordinate (%v, %v)", i, x, y)
			}
			n.X[i][j] = x
			n.Y[i][j] = y
		}
	}

	n.LeafPositions = n.baselinePositions()
	if len(n.LeafPositions) != leaves {
		return nil, malformedf("derived %d leaf positions from the baseline but %s lists %d leaves",
			len(n.LeafPositions), FieldLeaves, leaves)
	}
	return n, nil
}

// baselinePositions returns the sorted set of x-values that touch y = 0.
// Midpoints of zero-height merges also sit on the baseline; they are merge
// nodes, not leaves, and are left out.
func (n *Normalized) baselinePositions() []float64 {
	zero := n.Key(0, 0).Y
	mergeMids := make(map[Key]bool)
	for i := range n.X {
		if n.Key(0, n.Y[i][2]).Y == zero {
			mergeMids[n.Key((n.X[i][1]+n.X[i][2])/2, 0)] = true
		}
	}

	seen := make(map[Key]bool)
	var positions []float64
	for i := range n.X {
		for j := 0; j < 4; j++ {
			k := n.Key(n.X[i][j], n.Y[i][j])
			if k.Y != zero || mergeMids[k] || seen[k] {
				continue
			}
			seen[k] = true
			positions = append(positions, n.X[i][j])
		}
	}
	sort.Float64s(positions)
	return positions
}
