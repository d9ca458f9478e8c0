package main

import (
	"fmt"
	"strings"

	"github.com/matsen/dendro/internal/geometry"
	"github.com/spf13/cobra"
)

func init() {
	addLayoutFlags(layoutCmd)
	rootCmd.AddCommand(layoutCmd)
}

var layoutCmd = &cobra.Command{
	Use:   "layout <input>",
	Short: "Lay out dendrogram geometry for a linkage",
	Long: `Lay out dendrogram geometry (icoord, dcoord, color_list, ivl, leaves,
leaves_color_list) for the linkage in a clustering document.

The result can be embedded back into the document under "dendrogram".
With --truncate, collapsed subtrees appear as leaves labelled with their
size, e.g. "(12)".`,
	Args: cobra.ExactArgs(1),
	RunE: runLayout,
}

func runLayout(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	if err := applyLayoutFlags(cmd, cfg); err != nil {
		exitForError("applying layout flags", err)
	}
	if err := cfg.Validate(); err != nil {
		exitForError("validating config", err)
	}

	doc := mustReadDocument(args[0])
	opts := cfg.LayoutOptions()
	var err error
	if opts.LeafLabel, err = doc.LeafLabel(); err != nil {
		exitForError("reading leaf labels", err)
	}

	geo, err := geometry.Layout(doc.Info(), opts)
	if err != nil {
		exitForError("laying out geometry", err)
	}

	if humanOutput {
		outputHuman("%d links, %d leaves\n", len(geo.ICoord), len(geo.Leaves))
		outputHuman("leaf order: %s\n", strings.Join(geo.LeafLabels, " "))
		for i := range geo.ICoord {
			outputHuman("  %-4s x=%v y=%v\n", geo.ColorList[i], geo.ICoord[i], geo.DCoord[i])
		}
		return nil
	}
	if err := outputJSON(geo); err != nil {
		return fmt.Errorf("writing geometry: %w", err)
	}
	return nil
}
