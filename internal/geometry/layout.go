package geometry

import (
	"fmt"
	"strconv"

	"github.com/matsen/dendro/internal/cluster"
)

// SortCriteria decides which child of a merge is drawn on the left.
type SortCriteria string

const (
	SortDistance SortCriteria = "distance"
	SortCount    SortCriteria = "count"
)

// ValidSortCriteria lists the supported sort criteria.
var ValidSortCriteria = []string{string(SortDistance), string(SortCount)}

// TruncateMode limits how much of the tree is drawn. Collapsed subtrees
// are drawn as leaves carrying their merge id.
type TruncateMode string

const (
	TruncateNone TruncateMode = ""
	// TruncateLastP shows only the last P merged clusters as leaves.
	TruncateLastP TruncateMode = "lastp"
	// TruncateLevel shows at most P levels below the root.
	TruncateLevel TruncateMode = "level"
)

// ValidTruncateModes lists the supported truncation modes.
var ValidTruncateModes = []string{string(TruncateLastP), string(TruncateLevel)}

// Leaf spacing of the layout: leaf i sits at x = LeafOffset + LeafSpacing*i.
const (
	LeafOffset  = 5.0
	LeafSpacing = 10.0
)

// LayoutOptions configures Layout.
type LayoutOptions struct {
	Sort       SortCriteria
	Descending bool

	// Truncate and P collapse the lower part of the tree. For lastp, P is
	// the number of leaves shown (clamped to 2..N, 0 disables); for level,
	// merges more than P levels below the root are collapsed.
	Truncate TruncateMode
	P        int

	// ColorThreshold colors every maximal subtree merged below it with its
	// own palette key. Zero uses the clustering threshold; if that is not
	// positive either, 0.7 times the largest merge distance is used.
	ColorThreshold float64

	AboveThresholdColor string
	Palette             []string

	// LinkColor overrides the color key of the link drawing merge id. An
	// empty result keeps the threshold color. Leaves take the color of the
	// link above them.
	LinkColor func(id int) string

	// LeafLabel names an observation leaf; nil uses the decimal leaf id.
	// Collapsed subtrees are labelled with their size, e.g. "(12)".
	LeafLabel func(id int) string
}

// DefaultPalette is the color-key cycle for subtrees below the threshold.
var DefaultPalette = []string{"C1", "C2", "C3", "C4", "C5", "C6", "C7", "C8", "C9"}

// DefaultAboveThresholdColor is the color key for links above the threshold.
const DefaultAboveThresholdColor = "C0"

// DefaultLayoutOptions returns distance-ascending layout with the default palette.
func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{
		Sort:                SortDistance,
		AboveThresholdColor: DefaultAboveThresholdColor,
		Palette:             append([]string(nil), DefaultPalette...),
	}
}

// ValidateSort checks that criteria is a supported sort criteria.
func ValidateSort(criteria string) error {
	switch SortCriteria(criteria) {
	case "", SortDistance, SortCount:
		return nil
	default:
		return fmt.Errorf("invalid sort criteria %q: must be distance or count", criteria)
	}
}

// ValidateTruncate checks the truncation mode and its parameter.
func ValidateTruncate(mode string, p int) error {
	switch TruncateMode(mode) {
	case TruncateNone, TruncateLastP, TruncateLevel:
	default:
		return fmt.Errorf("invalid truncate mode %q: must be lastp or level", mode)
	}
	if p < 0 {
		return fmt.Errorf("invalid truncate p %d: must be non-negative", p)
	}
	return nil
}

// Layout computes dendrogram geometry for the clustering in info. Links are
// emitted in post-order, so both children of a merge always precede it.
func Layout(info *cluster.Info, opts LayoutOptions) (*Geometry, error) {
	if err := ValidateSort(string(opts.Sort)); err != nil {
		return nil, err
	}
	if err := ValidateTruncate(string(opts.Truncate), opts.P); err != nil {
		return nil, err
	}
	tree, err := info.Tree()
	if err != nil {
		return nil, err
	}

	if opts.AboveThresholdColor == "" {
		opts.AboveThresholdColor = DefaultAboveThresholdColor
	}
	if len(opts.Palette) == 0 {
		opts.Palette = DefaultPalette
	}
	if opts.LeafLabel == nil {
		opts.LeafLabel = strconv.Itoa
	}

	threshold := opts.ColorThreshold
	if threshold <= 0 {
		threshold = info.Threshold()
	}
	if threshold <= 0 {
		var maxDist float64
		for _, m := range info.Linkage() {
			if m.Distance > maxDist {
				maxDist = m.Distance
			}
		}
		threshold = 0.7 * maxDist
	}

	n := info.NumLeaves()
	s := &layoutState{
		tree:      tree,
		opts:      opts,
		threshold: threshold,
		numLeaves: n,
		lastP:     n,
		geo: &Geometry{
			ICoord:     make([][]float64, 0, n-1),
			DCoord:     make([][]float64, 0, n-1),
			ColorList:  make([]string, 0, n-1),
			LeafLabels: make([]string, 0, n),
			Leaves:     make([]int, 0, n),
			LeafColors: make([]string, 0, n),
		},
	}
	if opts.Truncate == TruncateLastP && opts.P > 0 {
		s.lastP = min(max(opts.P, 2), n)
	}
	s.visit(tree.Root, 0, "", opts.AboveThresholdColor)
	return s.geo, nil
}

type layoutState struct {
	tree      *cluster.Tree
	opts      LayoutOptions
	threshold float64
	numLeaves int
	lastP     int
	geo       *Geometry
	colorIdx  int
}

// collapsed reports whether the merge id at depth below the root is drawn
// as a leaf.
func (s *layoutState) collapsed(id, depth int) bool {
	if id < s.numLeaves || id == s.tree.Root {
		return false
	}
	switch s.opts.Truncate {
	case TruncateLastP:
		return id < 2*s.numLeaves-s.lastP
	case TruncateLevel:
		return depth > s.opts.P
	default:
		return false
	}
}

// visit lays out the subtree at id and returns the position of its node.
// color is the palette key of the enclosing below-threshold subtree, or ""
// when the parent sits above the threshold; above is the color of the link
// over id.
func (s *layoutState) visit(id, depth int, color, above string) (x, y float64) {
	node := s.tree.Nodes[id]
	if node.IsLeaf() || s.collapsed(id, depth) {
		x = LeafOffset + LeafSpacing*float64(len(s.geo.Leaves))
		s.geo.Leaves = append(s.geo.Leaves, id)
		s.geo.LeafLabels = append(s.geo.LeafLabels, s.leafLabel(node))
		s.geo.LeafColors = append(s.geo.LeafColors, above)
		return x, 0
	}

	if color == "" && node.Distance < s.threshold {
		color = s.opts.Palette[s.colorIdx%len(s.opts.Palette)]
		s.colorIdx++
	}
	link := s.colorOrAbove(color)
	if s.opts.LinkColor != nil {
		if c := s.opts.LinkColor(id); c != "" {
			link = c
		}
	}

	left, right := s.order(node)
	xl, yl := s.visit(left, depth+1, color, link)
	xr, yr := s.visit(right, depth+1, color, link)

	s.geo.ICoord = append(s.geo.ICoord, []float64{xl, xl, xr, xr})
	s.geo.DCoord = append(s.geo.DCoord, []float64{yl, node.Distance, node.Distance, yr})
	s.geo.ColorList = append(s.geo.ColorList, link)
	return (xl + xr) / 2, node.Distance
}

func (s *layoutState) leafLabel(node cluster.TreeNode) string {
	if node.IsLeaf() {
		return s.opts.LeafLabel(node.ID)
	}
	return fmt.Sprintf("(%d)", node.Count)
}

func (s *layoutState) colorOrAbove(color string) string {
	if color == "" {
		return s.opts.AboveThresholdColor
	}
	return color
}
// order returns the children of node as (left, right). Ties keep linkage order.
func (s *layoutState) order(node cluster.TreeNode) (int, int) {
	a, b := s.tree.Nodes[node.Left], s.tree.Nodes[node.Right]
	var ka, kb float64
	switch s.opts.Sort {
	case SortCount:
		ka, kb = float64(a.Count), float64(b.Count)
	default:
		ka, kb = a.Distance, b.Distance
	}
	swap := kb < ka
	if s.opts.Descending {
		swap = kb > ka
	}
	if swap {
		return node.Right, node.Left
	}
	return node.Left, node.Right
}
