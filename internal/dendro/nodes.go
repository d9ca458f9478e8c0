package dendro

import (
	"fmt"

	"github.com/matsen/dendro/internal/cluster"
	"github.com/matsen/dendro/internal/geometry"
	"go.uber.org/zap"
)

// Nodes reconstructs the visual nodes from the current geometry.
//
// Leaves are emitted first in left-to-right order, then one node per link
// in emission order. label and hover are invoked exactly once per node on
// the first successful call; nil callbacks yield a blank label and empty
// hover text. Later calls return copies of the memoized result and ignore
// their arguments.
func (b *Builder) Nodes(label LabelFunc, hover HoverFunc) ([]Node, error) {
	if b.nodes != nil {
		return cloneNodes(b.nodes), nil
	}
	if b.geo == nil {
		return nil, ErrNoGeometry
	}
	if b.info == nil {
		return nil, &cluster.DataError{Reason: "no clustering data to identify nodes with"}
	}

	nodes, merges, err := b.reconstruct(label, hover)
	if err != nil {
		return nil, err
	}
	b.nodes = nodes
	b.merges = merges

	counts := make(map[NodeType]int, len(NodeTypes))
	for _, n := range nodes {
		counts[n.Type]++
	}
	fields := make([]zap.Field, 0, len(NodeTypes)+1)
	fields = append(fields, zap.Int("nodes", len(nodes)))
	for _, t := range NodeTypes {
		fields = append(fields, zap.Int(string(t), counts[t]))
		if counts[t] > 0 {
			b.recorder.AddNodes(string(t), counts[t])
		}
	}
	b.logger.Debug("nodes computed", fields...)

	return cloneNodes(nodes), nil
}

// reconstruct walks leaves then links, matching each bracket's feet against
// the registry of nodes placed so far.
func (b *Builder) reconstruct(label LabelFunc, hover HoverFunc) ([]Node, []mergeRecord, error) {
	mergeMap, err := b.info.MergeMap()
	if err != nil {
		return nil, nil, err
	}
	leaders, err := b.info.Leaders()
	if err != nil {
		return nil, nil, err
	}

	g := b.geo
	numLeaves := b.info.NumLeaves()
	nodes := make([]Node, 0, len(g.Leaves)+g.NumLinks())
	merges := make([]mergeRecord, 0, g.NumLinks())
	registry := make(map[geometry.Key]int, cap(nodes))
	produced := make(map[int]int, g.NumLinks())
	consumed := make(map[int]int, cap(nodes))

	enrich := func(n *Node) {
		if label != nil {
			n.Label = label(b.info, n)
		}
		if hover != nil {
			n.HoverText = hover(b.info, n)
		}
		if n.HoverText == nil {
			n.HoverText = map[string]string{}
		}
	}

	for i, x := range g.LeafPositions {
		id := g.Leaves[i]
		color, err := b.color(g.LeafColors[i], "leaf", i)
		if err != nil {
			return nil, nil, err
		}

		n := b.newNode(x, 0, id, color)
		n.Radius = b.style.LeafRadius
		switch c, ok := leaders.Cluster(id); {
		case ok:
			n.Type = NodeCluster
			n.ClusterID = &c
		case id >= numLeaves && leaders.Above(id):
			n.Type = NodeSupercluster
		default:
			n.Type = NodeLeaf
		}

		enrich(&n)
		registry[g.Key(x, 0)] = len(nodes)
		nodes = append(nodes, n)
	}

	for i := range g.X {
		xs, ys := g.X[i], g.Y[i]

		li, ok := registry[g.Key(xs[0], ys[0])]
		if !ok {
			return nil, nil, &OrderViolationError{Merge: i, Side: "left", X: xs[0], Y: ys[0]}
		}
		ri, ok := registry[g.Key(xs[3], ys[3])]
		if !ok {
			return nil, nil, &OrderViolationError{Merge: i, Side: "right", X: xs[3], Y: ys[3]}
		}
		left, right := nodes[li].ID, nodes[ri].ID

		id, ok := mergeMap.Lookup(left, right)
		if !ok {
			return nil, nil, &IdentityMismatchError{Merge: i, Left: left, Right: right}
		}

		x, y := (xs[1]+xs[2])/2, ys[2]
		key := g.Key(x, y)
		if existing, taken := registry[key]; taken {
			return nil, nil, &CoordinateCollisionError{Merge: i, X: x, Y: y, Existing: nodes[existing].ID}
		}
		if prev, dup := produced[id]; dup {
			return nil, nil, &IdentityMismatchError{Merge: i, Left: left, Right: right,
				Reason: fmt.Sprintf("merge %d was already drawn by link %d", id, prev)}
		}
		for _, child := range [2]int{left, right} {
			if prev, used := consumed[child]; used {
				return nil, nil, &IdentityMismatchError{Merge: i, Left: left, Right: right,
					Reason: fmt.Sprintf("node %d was already joined by link %d", child, prev)}
			}
		}

		color, err := b.color(g.LinkColors[i], "link", i)
		if err != nil {
			return nil, nil, err
		}

		n := b.newNode(x, y, id, color)
		switch c, ok := leaders.Cluster(id); {
		case ok:
			n.Type = NodeCluster
			n.ClusterID = &c
		case leaders.Above(id):
			n.Type = NodeSupercluster
		default:
			n.Type = NodeSubcluster
			n.FillColor = b.style.NeutralFill
		}

		enrich(&n)
		registry[key] = len(nodes)
		produced[id] = i
		consumed[left] = i
		consumed[right] = i

		rec := mergeRecord{id: id, children: [2]int{left, right}}
		if n.ClusterID != nil {
			c := *n.ClusterID
			rec.clusterID = &c
		}
		merges = append(merges, rec)
		nodes = append(nodes, n)
	}

	return nodes, merges, nil
}

func (b *Builder) newNode(x, y float64, id int, color string) Node {
	return Node{
		X:          x,
		Y:          y,
		ID:         id,
		EdgeColor:  color,
		FillColor:  color,
		Radius:     b.style.NodeRadius,
		Opacity:    b.style.Opacity,
		LabelSize:  b.style.LabelSize,
		LabelColor: b.style.LabelColor,
	}
}
