// Package viz renders dendrograms as JSON, Cytoscape elements or a
// self-contained HTML page.
package viz

// GraphData is the dendrogram as a parent-child graph.
type GraphData struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is one dendrogram node placed at its chart position.
type Node struct {
	ID    string  `json:"id"`
	Type  string  `json:"type"` // leaf, subcluster, cluster or supercluster
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`

	ClusterID *int              `json:"clusterId,omitempty"`
	Color     string            `json:"color"`
	Fill      string            `json:"fill"`
	Radius    float64           `json:"radius"`
	Hover     map[string]string `json:"hover,omitempty"`

	// Number of children (0 for displayed leaves)
	ChildCount int `json:"childCount"`
}

// Edge joins a merge node to one of its children.
type Edge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Color  string  `json:"color"`
	Height float64 `json:"height"`
}

// IsEmpty returns true if the graph has no nodes.
func (g *GraphData) IsEmpty() bool {
	return len(g.Nodes) == 0
}
