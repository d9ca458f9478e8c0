package viz

import (
	"fmt"
	"strconv"

	"github.com/matsen/dendro/internal/dendro"
)

// BuildGraph converts a dendrogram with computed nodes into a parent-child
// graph. Edges come from the child ids carried by each link.
func BuildGraph(d *dendro.Dendrogram) (*GraphData, error) {
	if d == nil {
		return nil, fmt.Errorf("dendrogram cannot be nil")
	}
	if err := d.CheckNodes(true); err != nil {
		return nil, err
	}

	known := make(map[int]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		known[n.ID] = true
	}

	edges, childCounts, err := buildEdges(d.Links, known)
	if err != nil {
		return nil, err
	}

	return &GraphData{
		Nodes: buildNodes(d.Nodes, childCounts),
		Edges: edges,
	}, nil
}

// buildEdges emits two edges per link, parent to left child then parent to
// right child, and counts children per parent.
func buildEdges(links []dendro.Link, known map[int]bool) ([]Edge, map[int]int, error) {
	edges := make([]Edge, 0, 2*len(links))
	childCounts := make(map[int]int, len(links))

	for i, l := range links {
		if l.ID == nil || l.ChildrenID == nil {
			return nil, nil, fmt.Errorf("link %d has no merge identity", i)
		}
		parent := *l.ID
		for _, child := range l.ChildrenID {
			if !known[child] {
				return nil, nil, fmt.Errorf("data integrity error: link %d references missing node %d", i, child)
			}
			edges = append(edges, Edge{
				Source: nodeID(parent),
				Target: nodeID(child),
				Color:  l.FillColor,
				Height: l.Y[1],
			})
			childCounts[parent]++
		}
	}
	return edges, childCounts, nil
}

func buildNodes(nodes []dendro.Node, childCounts map[int]int) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, newGraphNode(n, childCounts[n.ID]))
	}
	return out
}

func newGraphNode(n dendro.Node, childCount int) Node {
	return Node{
		ID:         nodeID(n.ID),
		Type:       string(n.Type),
		Label:      n.Label,
		X:          n.X,
		Y:          n.Y,
		ClusterID:  n.ClusterID,
		Color:      n.EdgeColor,
		Fill:       n.FillColor,
		Radius:     n.Radius,
		Hover:      n.HoverText,
		ChildCount: childCount,
	}
}

func nodeID(id int) string {
	return strconv.Itoa(id)
}
