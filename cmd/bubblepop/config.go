package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubble-pop/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration a game would use after the search order
(--config, ~/.arcade/configs, ./configs, built-in) and the --difficulty
preset are applied. Redirect it to a file to start a custom config.

Examples:
  bubblepop config
  bubblepop config --difficulty easy > ~/.arcade/configs/bubblepop.yaml
  bubblepop config --defaults`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in default file with comments")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagConfigDefaults {
		_, err := os.Stdout.Write(config.GetDefaultYAML())
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
