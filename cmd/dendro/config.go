package main

import (
	"fmt"

	"github.com/matsen/dendro/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long: `Inspect dendro configuration.

The configuration is read from --config, then $DENDRO_CONFIG, then
$XDG_CONFIG_HOME/dendro/config.yml. Keys missing from the file keep their
built-in defaults.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mustLoadConfig()
		if humanOutput {
			data, err := cfg.YAML()
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		}
		return outputJSON(cfg)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.GlobalConfigPath()
		}
		if humanOutput {
			fmt.Println(path)
			return nil
		}
		return outputJSON(StatusResponse{Status: "ok", Path: path})
	},
}
