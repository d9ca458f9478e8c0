package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/matsen/dendro/internal/config"
	"github.com/matsen/dendro/internal/dendro"
	"github.com/matsen/dendro/internal/storage"
	"github.com/matsen/dendro/internal/viz"
	"github.com/spf13/cobra"
)

var (
	renderFormat      string
	renderOrientation string
	renderScale       string
	renderNoNodes     bool
	renderLabels      string
	renderHover       bool
	renderWidth       float64
	renderHeight      float64
	renderOutput      string
	renderTitle       string
	renderLinkage     string
)

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "", "Output format: json, cytoscape, or html (default from config)")
	renderCmd.Flags().StringVar(&renderOrientation, "orientation", "", "Root position: top, bottom, left, or right")
	renderCmd.Flags().StringVar(&renderScale, "scale", "", "Height axis scale: linear, log, or symlog")
	renderCmd.Flags().BoolVar(&renderNoNodes, "no-nodes", false, "Skip node reconstruction")
	renderCmd.Flags().StringVar(&renderLabels, "labels", "", "Node labels: none, counts, clusters, or summary")
	renderCmd.Flags().BoolVar(&renderHover, "hover", false, "Attach hover text to nodes")
	renderCmd.Flags().Float64Var(&renderWidth, "width", 0, "HTML plot width in pixels")
	renderCmd.Flags().Float64Var(&renderHeight, "height", 0, "HTML plot height in pixels")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file path (default: stdout)")
	renderCmd.Flags().StringVar(&renderTitle, "title", "", "HTML page title")
	renderCmd.Flags().StringVar(&renderLinkage, "linkage", "", "Read the linkage from a JSONL file instead of the document")
	addLayoutFlags(renderCmd)
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render <input>",
	Short: "Render a clustering as dendrogram plot data",
	Long: `Render a clustering document as dendrogram plot data.

The document's precomputed geometry is used when present; otherwise the
geometry is laid out from the linkage. Flags override the render section
of the configuration.

Examples:
  # Dendrogram JSON to stdout
  dendro render clusters.yml

  # Standalone HTML, root on the left, log-scaled heights
  dendro render clusters.yml --format html --orientation left --scale log -o plot.html

  # Cytoscape.js elements with count labels
  dendro render clusters.json --format cytoscape --labels counts

  # Only the last 12 merged clusters
  dendro render clusters.yml --truncate lastp --truncate-p 12`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	if err := applyLayoutFlags(cmd, cfg); err != nil {
		exitForError("applying layout flags", err)
	}
	if err := applyRenderFlags(cmd, cfg); err != nil {
		exitForError("applying render flags", err)
	}
	if err := cfg.Validate(); err != nil {
		exitForError("validating config", err)
	}

	doc := mustReadDocument(args[0])
	if renderLinkage != "" {
		linkage, err := storage.ReadLinkageJSONL(renderLinkage)
		if err != nil {
			exitWithError(ExitDataError, "reading linkage: %v", err)
		}
		doc.Linkage = linkage
	}

	opts := dendro.GenerateOptions{
		ComputeNodes: cfg.Render.ShowNodes,
		Label:        labelFunc(cfg.Render.Labels, cfg.Render.SummaryFormat),
	}
	if cfg.Render.Hover {
		opts.Hover = dendro.SummaryHover
	}

	d, err := buildDendrogram(cfg, doc, opts)
	if err != nil {
		exitForError("building dendrogram", err)
	}

	out, err := renderDendrogram(d, cfg)
	if err != nil {
		exitForError("rendering dendrogram", err)
	}
	return writeOutput(renderOutput, out)
}

// labelFunc maps a label mode to its callback. Unknown modes are rejected
// by config validation.
func labelFunc(mode, summaryFormat string) dendro.LabelFunc {
	switch mode {
	case "counts":
		return dendro.CountLabels
	case "clusters":
		return dendro.ClusterIDLabels
	case "summary":
		return dendro.ClusterSummaryLabels(summaryFormat)
	default:
		return nil
	}
}

// renderDendrogram produces the configured output format.
func renderDendrogram(d *dendro.Dendrogram, cfg *config.Config) ([]byte, error) {
	render := cfg.RenderOptions()
	if err := render.Validate(d); err != nil {
		return nil, err
	}

	switch cfg.Render.Format {
	case "json":
		return viz.ToJSON(d)
	case "cytoscape":
		graph, err := viz.BuildGraph(d)
		if err != nil {
			return nil, err
		}
		s, err := graph.ToCytoscapeJSON()
		return []byte(s), err
	case "html":
		title := renderTitle
		if title == "" {
			title = "Dendrogram"
		}
		html, err := viz.GenerateHTML(d, viz.HTMLOptions{Title: title, Render: render})
		return []byte(html), err
	default:
		return nil, fmt.Errorf("invalid format %q: must be one of %s", cfg.Render.Format, strings.Join(config.ValidFormats, ", "))
	}
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			return err
		}
		if !bytes.HasSuffix(data, []byte("\n")) {
			fmt.Println()
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	if humanOutput {
		outputHuman("Dendrogram written to %s\n", path)
	} else {
		outputJSON(StatusResponse{Status: "written", Path: path})
	}
	return nil
}
