package cluster

// TreeNode is one node of the merge tree. Leaves have Left and Right set to -1.
type TreeNode struct {
	ID       int
	Left     int
	Right    int
	Distance float64
	Count    int
}

// IsLeaf reports whether the node is an original observation.
func (n TreeNode) IsLeaf() bool {
	return n.Left < 0
}

// Tree is the merge tree indexed by id (0..2N-2).
type Tree struct {
	Nodes []TreeNode
	Root  int
}

// Node returns the node with the given id.
func (t *Tree) Node(id int) (TreeNode, bool) {
	if id < 0 || id >= len(t.Nodes) {
		return TreeNode{}, false
	}
	return t.Nodes[id], true
}

// Count returns the number of leaves under id, or 0 for an unknown id.
func (t *Tree) Count(id int) int {
	n, ok := t.Node(id)
	if !ok {
		return 0
	}
	return n.Count
}

// Leaves returns the leaf ids under id in pre-order (left subtree first).
func (t *Tree) Leaves(id int) []int {
	if _, ok := t.Node(id); !ok {
		return nil
	}
	var leaves []int
	stack := []int{id}
	for len(stack) > 0 {
		cur := t.Nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]
		if cur.IsLeaf() {
			leaves = append(leaves, cur.ID)
			continue
		}
		stack = append(stack, cur.Right, cur.Left)
	}
	return leaves
}

// Tree returns the cached merge tree. Member counts are recomputed from the
// structure rather than trusted from the linkage count column.
func (c *Info) Tree() (*Tree, error) {
	c.treeOnce.Do(func() {
		if err := validateLinkage(c.linkage); err != nil {
			c.treeErr = err
			return
		}
		n := c.NumLeaves()
		nodes := make([]TreeNode, 2*n-1)
		for i := 0; i < n; i++ {
			nodes[i] = TreeNode{ID: i, Left: -1, Right: -1, Count: 1}
		}
		for k, m := range c.linkage {
			id := n + k
			nodes[id] = TreeNode{
				ID:       id,
				Left:     m.A,
				Right:    m.B,
				Distance: m.Distance,
				Count:    nodes[m.A].Count + nodes[m.B].Count,
			}
		}
		c.tree = &Tree{Nodes: nodes, Root: 2*n - 2}
	})
	return c.tree, c.treeErr
}
