// Package dendro reconstructs an annotated dendrogram from flattened link
// geometry and a clustering result.
//
// The geometry carries no identifiers: each merge is recovered by matching
// the feet of its bracket against nodes registered earlier in the same pass,
// then named through the clustering's merge map and classified against the
// flat-cluster cut. The resulting Dendrogram is a plain bundle of nodes,
// links and axis labels that any chart back end can consume.
package dendro

import "slices"

// NodeType classifies a node relative to the flat-cluster cut.
type NodeType string

const (
	// NodeLeaf is an observation (or a displayed collapsed subtree).
	NodeLeaf NodeType = "leaf"
	// NodeSubcluster is a merge strictly below a cluster leader.
	NodeSubcluster NodeType = "subcluster"
	// NodeCluster is the leader of one flat cluster.
	NodeCluster NodeType = "cluster"
	// NodeSupercluster is a merge above the cut.
	NodeSupercluster NodeType = "supercluster"
)

// NodeTypes lists every node type, bottom of the tree first.
var NodeTypes = []NodeType{NodeLeaf, NodeSubcluster, NodeCluster, NodeSupercluster}

// Valid reports whether t is one of NodeTypes.
func (t NodeType) Valid() bool {
	return slices.Contains(NodeTypes, t)
}

// Node is a visual node of the dendrogram.
type Node struct {
	X         float64           `json:"x"`
	Y         float64           `json:"y"`
	Type      NodeType          `json:"type"`
	ID        int               `json:"id"`
	ClusterID *int              `json:"cluster_id"`
	EdgeColor string            `json:"edgecolor"`
	Label     string            `json:"label"`
	HoverText map[string]string `json:"hovertext"`

	FillColor  string  `json:"fillcolor"`
	Radius     float64 `json:"radius"`
	Opacity    float64 `json:"opacity"`
	LabelSize  float64 `json:"labelsize"`
	LabelColor string  `json:"labelcolor"`
}

func (n Node) clone() Node {
	if n.ClusterID != nil {
		c := *n.ClusterID
		n.ClusterID = &c
	}
	if n.HoverText != nil {
		h := make(map[string]string, len(n.HoverText))
		for k, v := range n.HoverText {
			h[k] = v
		}
		n.HoverText = h
	}
	return n
}

func cloneNodes(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.clone()
	}
	return out
}

// Link is one bracket of the dendrogram. ID, ChildrenID and ClusterID are
// only set when nodes were computed.
type Link struct {
	X         [4]float64 `json:"x"`
	Y         [4]float64 `json:"y"`
	FillColor string     `json:"fillcolor"`

	ID         *int    `json:"id"`
	ChildrenID *[2]int `json:"children_id"`
	ClusterID  *int    `json:"cluster_id"`

	StrokeWidth   float64   `json:"strokewidth"`
	StrokeDash    []float64 `json:"strokedash"`
	StrokeOpacity float64   `json:"strokeopacity"`
}

// AxisLabel is a tick label on the leaf axis.
type AxisLabel struct {
	X          float64 `json:"x"`
	Label      string  `json:"label"`
	LabelAngle float64 `json:"labelAngle"`
}

// Dendrogram is the assembled output handed to renderers.
type Dendrogram struct {
	AxisLabels    []AxisLabel `json:"axis_labels"`
	Links         []Link      `json:"links"`
	Nodes         []Node      `json:"nodes"`
	ComputedNodes bool        `json:"computed_nodes"`
	XDomain       [2]float64  `json:"x_domain"`
	YDomain       [2]float64  `json:"y_domain"`
}

// IsEmpty returns true if the dendrogram has nothing to draw.
func (d *Dendrogram) IsEmpty() bool {
	return len(d.Links) == 0 && len(d.AxisLabels) == 0
}

// CheckNodes returns ErrNodesNotComputed when nodes are requested but were
// not computed when the dendrogram was generated.
func (d *Dendrogram) CheckNodes(show bool) error {
	if show && !d.ComputedNodes {
		return ErrNodesNotComputed
	}
	return nil
}

// CountByType returns how many nodes of each type the dendrogram holds.
func (d *Dendrogram) CountByType() map[NodeType]int {
	counts := make(map[NodeType]int, len(NodeTypes))
	for _, n := range d.Nodes {
		counts[n.Type]++
	}
	return counts
}
