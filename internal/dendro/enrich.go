package dendro

import (
	"strconv"
	"strings"
	"sync"

	"github.com/matsen/dendro/internal/cluster"
)

// LabelFunc computes the text label of a node. It is called exactly once per
// node, in emission order, and must not mutate info.
type LabelFunc func(info *cluster.Info, n *Node) string

// HoverFunc computes the hover payload of a node. Same contract as LabelFunc.
type HoverFunc func(info *cluster.Info, n *Node) map[string]string

// CountLabels labels every node with the number of observations below it.
func CountLabels(info *cluster.Info, n *Node) string {
	tree, err := info.Tree()
	if err != nil {
		return ""
	}
	return strconv.Itoa(tree.Count(n.ID))
}

// ClusterIDLabels labels cluster nodes with their flat-cluster id.
func ClusterIDLabels(_ *cluster.Info, n *Node) string {
	if n.Type != NodeCluster || n.ClusterID == nil {
		return ""
	}
	return strconv.Itoa(*n.ClusterID)
}

// DefaultSummaryFormat is the label format of ClusterSummaryLabels.
const DefaultSummaryFormat = "Cluster {cluster} ({cluster_size} data points)"

// ClusterSummaryLabels labels only the first node encountered for each flat
// cluster; all other nodes get a blank label. A node belongs to the cluster
// of its first leaf. format may use {cluster}, {cluster_size} and {id}.
//
// The returned function is stateful: use a fresh one per dendrogram.
func ClusterSummaryLabels(format string) LabelFunc {
	if format == "" {
		format = DefaultSummaryFormat
	}

	var (
		once   sync.Once
		tree   *cluster.Tree
		member = make(map[int]int)
		size   = make(map[int]int)
		seen   = make(map[int]bool)
	)

	return func(info *cluster.Info, n *Node) string {
		once.Do(func() {
			t, err := info.Tree()
			if err != nil {
				return
			}
			tree = t
			leaders, err := info.Leaders()
			if err != nil {
				return
			}
			for _, l := range leaders.All() {
				leaves := t.Leaves(l.ID)
				size[l.Cluster] = len(leaves)
				for _, leaf := range leaves {
					member[leaf] = l.Cluster
				}
			}
		})
		if tree == nil {
			return " "
		}

		leaves := tree.Leaves(n.ID)
		if len(leaves) == 0 {
			return " "
		}
		cl, ok := member[leaves[0]]
		if !ok || seen[cl] {
			return " "
		}
		seen[cl] = true

		return strings.NewReplacer(
			"{cluster}", strconv.Itoa(cl),
			"{cluster_size}", strconv.Itoa(size[cl]),
			"{id}", strconv.Itoa(n.ID),
		).Replace(format)
	}
}

// SummaryHover reports id, type, height, member count and cluster.
func SummaryHover(info *cluster.Info, n *Node) map[string]string {
	h := map[string]string{
		"id":     strconv.Itoa(n.ID),
		"type":   string(n.Type),
		"height": strconv.FormatFloat(n.Y, 'g', -1, 64),
	}
	if tree, err := info.Tree(); err == nil {
		h["members"] = strconv.Itoa(tree.Count(n.ID))
	}
	if n.ClusterID != nil {
		h["cluster"] = strconv.Itoa(*n.ClusterID)
	}
	return h
}
