package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lanerush/internal/config"
)

var flagFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a game would start with: the config file found
by the search order, environment overrides and the difficulty preset.

Search order:
  1. --config <path>
  2. ~/.lanerush/configs/lanerush.yaml (or .toml)
  3. ./configs/lanerush.yaml (or .toml)
  4. Built-in defaults

Examples:
  lanerush config > my-lanerush.yaml
  lanerush config --format toml --difficulty hard`,
	Run: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagFormat, "format", "yaml", "Output format: yaml or toml")
}

func runConfig(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	out, err := config.Encode(cfg, flagFormat)
	if err != nil {
		fail("%v", err)
	}
	if _, err := os.Stdout.Write(out); err != nil {
		fail("%v", err)
	}
}
