// Package cmd provides command-line interface commands for ksa
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/stardevs70/Keynote-Sheets-Automation/internal/ksa/config"
	"github.com/stardevs70/Keynote-Sheets-Automation/internal/log"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ksa",
	Short: "Propagate Google Sheets values into a PowerPoint deck",
	Long: `ksa - Keynote Sheets Automation

Pulls values from a Google Sheets spreadsheet and writes them into named
shapes and table cells of a PowerPoint presentation, preserving the
existing text formatting.

Features:
  • Declarative mapping table (a tab in the spreadsheet itself)
  • One batched fetch per run, per-entry failure isolation
  • Currency/percent/date/word formatting with prefix and suffix
  • Dry-run mode reporting intended changes without touching the file
  • Discovery commands for naming shapes and tables`,
	Example: `  # Preview what would change
  ksa update --dry-run

  # Apply the update
  ksa update

  # List named shapes on slide 2 (for writing the mapping table)
  ksa shapes 2

  # Scaffold a config file
  ksa init`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			log.SetDebugMode(true)
			log.Debug("Debug mode enabled")
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultConfigFile, "Path to configuration file")
}

// configFlag returns the --config value for the invoked command
func configFlag(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return path
}
