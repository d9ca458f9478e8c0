package main

import (
	"fmt"

	"github.com/matsen/dendro/internal/dendro"
	"github.com/matsen/dendro/internal/storage"
	"github.com/spf13/cobra"
)

// DefaultNodeLimit caps the nodes command output.
const DefaultNodeLimit = 1000

var (
	nodesTypes     []string
	nodesCluster   int
	nodesMinHeight float64
	nodesMaxHeight float64
	nodesLabel     string
	nodesID        int
	nodesLimit     int
)

func init() {
	nodesCmd.Flags().StringSliceVar(&nodesTypes, "type", nil, "Node types: leaf, subcluster, cluster, supercluster (repeatable)")
	nodesCmd.Flags().IntVar(&nodesCluster, "cluster", 0, "Only nodes of this flat cluster")
	nodesCmd.Flags().Float64Var(&nodesMinHeight, "min-height", 0, "Minimum node height")
	nodesCmd.Flags().Float64Var(&nodesMaxHeight, "max-height", 0, "Maximum node height")
	nodesCmd.Flags().StringVar(&nodesLabel, "label", "", "Full-text search over node labels")
	nodesCmd.Flags().IntVar(&nodesID, "id", 0, "Show the node with this merge id")
	nodesCmd.Flags().IntVarP(&nodesLimit, "limit", "n", DefaultNodeLimit, "Maximum results")
	rootCmd.AddCommand(nodesCmd)
}

var nodesCmd = &cobra.Command{
	Use:   "nodes <input>",
	Short: "Query the reconstructed dendrogram nodes",
	Long: `Reconstruct the dendrogram nodes and query them.

Nodes are loaded into an in-memory SQLite index; filters combine with AND.

Examples:
  dendro nodes clusters.yml --type cluster
  dendro nodes clusters.yml --min-height 1.5 --type subcluster --type supercluster
  dendro nodes clusters.yml --label "Cluster 2"
  dendro nodes clusters.yml --id 7`,
	Args: cobra.ExactArgs(1),
	RunE: runNodes,
}

func runNodes(cmd *cobra.Command, args []string) error {
	filters, err := nodeFilters(cmd)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	cfg := mustLoadConfig()
	doc := mustReadDocument(args[0])

	d, err := buildDendrogram(cfg, doc, dendro.GenerateOptions{
		ComputeNodes: true,
		Label:        labelFunc(cfg.Render.Labels, cfg.Render.SummaryFormat),
		Hover:        dendro.SummaryHover,
	})
	if err != nil {
		exitForError("building dendrogram", err)
	}

	db, err := storage.OpenDB(storage.MemoryPath)
	if err != nil {
		exitWithError(ExitError, "opening node index: %v", err)
	}
	defer db.Close()

	if _, err := db.IndexNodes(d.Nodes); err != nil {
		exitWithError(ExitError, "indexing nodes: %v", err)
	}

	var nodes []dendro.Node
	if cmd.Flags().Changed("id") {
		n, err := db.GetByID(nodesID)
		if err != nil {
			exitWithError(ExitError, "looking up node: %v", err)
		}
		if n == nil {
			exitWithError(ExitError, "node %d not found", nodesID)
		}
		nodes = []dendro.Node{*n}
	} else {
		nodes, err = db.QueryNodes(filters, nodesLimit)
		if err != nil {
			exitWithError(ExitError, "querying nodes: %v", err)
		}
	}

	if humanOutput {
		printNodesHuman(nodes)
		return nil
	}
	if nodes == nil {
		nodes = []dendro.Node{}
	}
	return outputJSON(nodes)
}

// nodeFilters builds the query filters from the flags the user set.
func nodeFilters(cmd *cobra.Command) (storage.NodeFilters, error) {
	var filters storage.NodeFilters
	for _, t := range nodesTypes {
		nt := dendro.NodeType(t)
		if !nt.Valid() {
			return filters, fmt.Errorf("invalid node type %q: must be leaf, subcluster, cluster, or supercluster", t)
		}
		filters.Types = append(filters.Types, nt)
	}

	flags := cmd.Flags()
	if flags.Changed("cluster") {
		filters.ClusterID = &nodesCluster
	}
	if flags.Changed("min-height") {
		filters.MinHeight = &nodesMinHeight
	}
	if flags.Changed("max-height") {
		filters.MaxHeight = &nodesMaxHeight
	}
	filters.Label = nodesLabel
	return filters, nil
}

func printNodesHuman(nodes []dendro.Node) {
	if len(nodes) == 0 {
		outputHuman("No nodes found.\n")
		return
	}
	for _, n := range nodes {
		cluster := "-"
		if n.ClusterID != nil {
			cluster = fmt.Sprintf("%d", *n.ClusterID)
		}
		outputHuman("%-5d %-12s cluster=%-3s x=%-8.2f y=%-8.4f %s\n", n.ID, n.Type, cluster, n.X, n.Y, n.Label)
	}
	outputHuman("\n%d nodes\n", len(nodes))
}
