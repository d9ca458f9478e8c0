package main

import (
	"github.com/matsen/dendro/internal/config"
	"github.com/matsen/dendro/internal/dendro"
	"github.com/matsen/dendro/internal/geometry"
	"github.com/spf13/cobra"
)

// Layout flags, shared by every command that lays out geometry.
var (
	layoutSort       string
	layoutDescending bool
	layoutTruncate   string
	layoutTruncateP  int
)

func addLayoutFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&layoutSort, "sort", "", "Child order: distance or count (default from config)")
	cmd.Flags().BoolVar(&layoutDescending, "descending", false, "Draw the larger child first")
	cmd.Flags().StringVar(&layoutTruncate, "truncate", "", "Collapse the tree: lastp or level")
	cmd.Flags().IntVar(&layoutTruncateP, "truncate-p", 0, "Leaves shown (lastp) or levels shown (level)")
}

// applyLayoutFlags checks the layout flags the user set and copies them
// into cfg.
func applyLayoutFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("sort") {
		if err := geometry.ValidateSort(layoutSort); err != nil {
			return err
		}
		cfg.Layout.Sort = layoutSort
	}
	if flags.Changed("descending") {
		cfg.Layout.Descending = layoutDescending
	}
	if flags.Changed("truncate") {
		cfg.Layout.Truncate = layoutTruncate
	}
	if flags.Changed("truncate-p") {
		cfg.Layout.P = layoutTruncateP
	}
	return geometry.ValidateTruncate(cfg.Layout.Truncate, cfg.Layout.P)
}

// applyRenderFlags checks the render flags the user set and copies them
// into cfg. Orientation and scale are checked against the render
// enumerations so they fail with the render option errors.
func applyRenderFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var check dendro.RenderOptions
	if flags.Changed("orientation") {
		check.Orientation = renderOrientation
		cfg.Render.Orientation = renderOrientation
	}
	if flags.Changed("scale") {
		check.Scale = renderScale
		cfg.Render.Scale = renderScale
	}
	if err := check.Validate(nil); err != nil {
		return err
	}

	if flags.Changed("format") {
		cfg.Render.Format = renderFormat
	}
	if flags.Changed("no-nodes") {
		cfg.Render.ShowNodes = !renderNoNodes
	}
	if flags.Changed("labels") {
		cfg.Render.Labels = renderLabels
	}
	if flags.Changed("hover") {
		cfg.Render.Hover = renderHover
	}
	if flags.Changed("width") {
		cfg.Render.Width = renderWidth
	}
	if flags.Changed("height") {
		cfg.Render.Height = renderHeight
	}
	return nil
}
