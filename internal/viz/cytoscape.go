package viz

import (
	"encoding/json"
	"fmt"

	"github.com/matsen/dendro/internal/dendro"
)

// CytoscapeElements represents the Cytoscape.js data format.
type CytoscapeElements struct {
	Nodes []CytoscapeNode `json:"nodes"`
	Edges []CytoscapeEdge `json:"edges"`
}

// CytoscapeNode represents a node in Cytoscape.js format. Positions are
// meant for the "preset" layout.
type CytoscapeNode struct {
	Data     Node              `json:"data"`
	Position CytoscapePosition `json:"position"`
}

// CytoscapePosition is a model position in chart units.
type CytoscapePosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CytoscapeEdge represents an edge in Cytoscape.js format.
type CytoscapeEdge struct {
	Data CytoscapeEdgeData `json:"data"`
}

// CytoscapeEdgeData contains the edge data fields.
type CytoscapeEdgeData struct {
	ID     string  `json:"id"`
	Source string  `json:"source"`
	Target string  `json:"target"`
	Color  string  `json:"color"`
	Height float64 `json:"height"`
}

// ToCytoscape converts a dendrogram with computed nodes to Cytoscape.js
// elements.
func ToCytoscape(d *dendro.Dendrogram) (*CytoscapeElements, error) {
	g, err := BuildGraph(d)
	if err != nil {
		return nil, err
	}
	return g.ToCytoscapeElements(), nil
}

// ToCytoscapeElements converts GraphData to Cytoscape.js elements. The y
// axis is flipped so the root sits at the top of the canvas.
func (g *GraphData) ToCytoscapeElements() *CytoscapeElements {
	elements := &CytoscapeElements{
		Nodes: make([]CytoscapeNode, 0, len(g.Nodes)),
		Edges: make([]CytoscapeEdge, 0, len(g.Edges)),
	}

	for _, n := range g.Nodes {
		elements.Nodes = append(elements.Nodes, CytoscapeNode{
			Data:     n,
			Position: CytoscapePosition{X: n.X, Y: -n.Y},
		})
	}

	for i, e := range g.Edges {
		elements.Edges = append(elements.Edges, CytoscapeEdge{
			Data: CytoscapeEdgeData{
				ID:     edgeID(e.Source, e.Target, i),
				Source: e.Source,
				Target: e.Target,
				Color:  e.Color,
				Height: e.Height,
			},
		})
	}
	return elements
}

// ToCytoscapeJSON converts GraphData to Cytoscape.js JSON format.
func (g *GraphData) ToCytoscapeJSON() (string, error) {
	jsonBytes, err := json.Marshal(g.ToCytoscapeElements())
	if err != nil {
		return "", fmt.Errorf("marshaling Cytoscape elements to JSON: %w", err)
	}
	return string(jsonBytes), nil
}

// edgeID generates a unique edge ID for the current visualization session.
// IDs are based on slice position and are not stable across different builds.
func edgeID(source, target string, index int) string {
	return fmt.Sprintf("%s-%s-%d", source, target, index)
}
