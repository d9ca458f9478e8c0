package cluster

import "sort"

// Leader is the topmost node whose leaves all belong to one flat cluster.
type Leader struct {
	ID      int
	Cluster int
}

// Leaders is the leader set of a clustering, ordered by cluster label.
type Leaders struct {
	list  []Leader
	byID  map[int]int
	mixed map[int]bool
}

// All returns the leaders ordered by cluster label.
func (l *Leaders) All() []Leader {
	return append([]Leader(nil), l.list...)
}

// IDs returns the leader node ids ordered by cluster label.
func (l *Leaders) IDs() []int {
	ids := make([]int, len(l.list))
	for i, ld := range l.list {
		ids[i] = ld.ID
	}
	return ids
}

// Len returns the number of leaders, which equals the number of flat clusters.
func (l *Leaders) Len() int {
	return len(l.list)
}

// Cluster returns the cluster label of a leader node.
func (l *Leaders) Cluster(id int) (int, bool) {
	c, ok := l.byID[id]
	return c, ok
}

// Above reports whether the node's leaves span more than one flat cluster,
// i.e. the node sits above the cut.
func (l *Leaders) Above(id int) bool {
	return l.mixed[id]
}

// Leaders returns the cached leader set. A node is a leader when its leaves
// carry a single cluster label and it is either the root or its parent's
// leaves carry more than one label.
func (c *Info) Leaders() (*Leaders, error) {
	c.leadersOnce.Do(func() {
		c.leaders, c.leadersErr = c.computeLeaders()
	})
	return c.leaders, c.leadersErr
}

func (c *Info) computeLeaders() (*Leaders, error) {
	tree, err := c.Tree()
	if err != nil {
		return nil, err
	}
	n := c.NumLeaves()
	if len(c.assignment) != n {
		return nil, dataErrorf("flat cluster assignment has %d labels, linkage implies %d leaves", len(c.assignment), n)
	}

	label := make([]int, len(tree.Nodes))
	mixed := make(map[int]bool)
	copy(label, c.assignment)
	for k := range c.linkage {
		id := n + k
		node := tree.Nodes[id]
		if mixed[node.Left] || mixed[node.Right] || label[node.Left] != label[node.Right] {
			mixed[id] = true
			continue
		}
		label[id] = label[node.Left]
	}

	byID := make(map[int]int)
	owner := make(map[int]int)
	add := func(id int) error {
		cl := label[id]
		if prev, ok := owner[cl]; ok {
			return dataErrorf("flat cluster %d is split between nodes %d and %d; the assignment is not a cut of this tree", cl, prev, id)
		}
		owner[cl] = id
		byID[id] = cl
		return nil
	}

	if !mixed[tree.Root] {
		if err := add(tree.Root); err != nil {
			return nil, err
		}
	}
	for k := range c.linkage {
		id := n + k
		if !mixed[id] {
			continue
		}
		node := tree.Nodes[id]
		for _, child := range []int{node.Left, node.Right} {
			if mixed[child] {
				continue
			}
			if err := add(child); err != nil {
				return nil, err
			}
		}
	}

	list := make([]Leader, 0, len(byID))
	for id, cl := range byID {
		list = append(list, Leader{ID: id, Cluster: cl})
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Cluster < list[j].Cluster
	})

	return &Leaders{list: list, byID: byID, mixed: mixed}, nil
}
