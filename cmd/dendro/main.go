// Package main provides the dendro CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/matsen/dendro/internal/metrics"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at build time via ldflags
var Version = "dev"

// Global flags.
var (
	humanOutput bool
	configPath  string
	verbose     bool
	metricsOut  string
)

// logger and recorder are built once flags are parsed.
var (
	logger   = zap.NewNop()
	recorder = metrics.New()
)

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		// This ensures Cobra errors (like missing required flags) are visible
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		finish()
		os.Exit(ExitError)
	}
	finish()
}

var rootCmd = &cobra.Command{
	Use:   "dendro",
	Short: "Dendrogram geometry to interactive plot data",
	Long: `dendro turns hierarchical clustering results into dendrogram plot data.

Input documents (JSON or YAML) carry a linkage matrix, a flat cluster
assignment and the threshold that produced it, plus optional precomputed
geometry. dendro reconstructs the tree nodes from the geometry, classifies
them as leaf, subcluster, cluster or supercluster, and emits links, nodes
and axis labels ready for plotting.

All commands output JSON by default for scripting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(verbose)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		logger = l
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/dendro/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&metricsOut, "metrics-out", "", "Write Prometheus metrics to this textfile on exit")
	rootCmd.Version = Version
}

// newLogger builds a development logger when verbose, a production one
// otherwise. Both write to stderr.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// finish flushes the logger and writes the metrics textfile if requested.
func finish() {
	_ = logger.Sync()
	if metricsOut == "" {
		return
	}
	if err := recorder.WriteTextfile(metricsOut); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
}
