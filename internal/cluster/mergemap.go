package cluster

// Pair is an unordered pair of child ids.
type Pair struct {
	Lo int
	Hi int
}

// MakePair normalizes two ids into a Pair; MakePair(a, b) == MakePair(b, a).
func MakePair(a, b int) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{Lo: a, Hi: b}
}

// MergeMap maps an unordered child pair to the id of the merge joining them.
type MergeMap map[Pair]int

// Lookup returns the merged id for children a and b in either order.
func (m MergeMap) Lookup(a, b int) (int, bool) {
	id, ok := m[MakePair(a, b)]
	return id, ok
}

// MergeMap returns the cached merge map, building it on first call by
// zipping the linkage child pairs with the ids N..2N-2.
func (c *Info) MergeMap() (MergeMap, error) {
	c.mergeOnce.Do(func() {
		if err := validateLinkage(c.linkage); err != nil {
			c.mergeErr = err
			return
		}
		n := c.NumLeaves()
		mm := make(MergeMap, len(c.linkage))
		for k, m := range c.linkage {
			mm[MakePair(m.A, m.B)] = n + k
		}
		c.mergeMap = mm
	})
	return c.mergeMap, c.mergeErr
}
