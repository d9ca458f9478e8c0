package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(leadersCmd)
}

var leadersCmd = &cobra.Command{
	Use:   "leaders <input>",
	Short: "List the leader node of every flat cluster",
	Long: `List the leader node of every flat cluster.

A leader is the topmost node whose leaves all carry one cluster label.`,
	Args: cobra.ExactArgs(1),
	RunE: runLeaders,
}

// LeaderResponse is one leader in the leaders output.
type LeaderResponse struct {
	ID      int `json:"id"`
	Cluster int `json:"cluster"`
	Size    int `json:"size"`
}

func runLeaders(cmd *cobra.Command, args []string) error {
	doc := mustReadDocument(args[0])
	info := doc.Info()

	leaders, err := info.Leaders()
	if err != nil {
		exitForError("computing leaders", err)
	}
	tree, err := info.Tree()
	if err != nil {
		exitForError("building tree", err)
	}

	resp := make([]LeaderResponse, 0, leaders.Len())
	for _, l := range leaders.All() {
		resp = append(resp, LeaderResponse{ID: l.ID, Cluster: l.Cluster, Size: tree.Count(l.ID)})
	}

	if humanOutput {
		for _, r := range resp {
			outputHuman("cluster %d: node %d (%d leaves)\n", r.Cluster, r.ID, r.Size)
		}
		return nil
	}
	return outputJSON(resp)
}
