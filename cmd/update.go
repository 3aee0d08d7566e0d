package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/stardevs70/Keynote-Sheets-Automation/internal/ksa"
	"github.com/stardevs70/Keynote-Sheets-Automation/internal/log"
)

var (
	updateDryRun       bool
	updatePresentation string
	updateOutput       string
)

var updateCmd = &cobra.Command{
	Use:     "update",
	Aliases: []string{"u"},
	Short:   "Update the presentation from the spreadsheet",
	Long: `Run the full update pipeline once.

This command:
  - Reads the mapping table from the spreadsheet (or config, offline)
  - Fetches all referenced cell values in one batched request
  - Formats each value and writes it into its named shape or table cell
  - Saves the presentation atomically, or reports a diff in dry-run mode

A fatal fetch or save error aborts the run without touching the output
file. Per-entry problems (bad mapping row, missing shape) are reported
and never stop the remaining entries.`,
	Example: `  # Preview without writing anything
  ksa update --dry-run

  # Apply, overwriting the input deck
  ksa update

  # Apply to a copy
  ksa update -p investor_deck.pptx -o investor_deck_updated.pptx`,
	Run: func(cmd *cobra.Command, _ []string) {
		report, err := ksa.RunUpdate(ksa.UpdateOptions{
			ConfigPath:   configFlag(cmd),
			Presentation: updatePresentation,
			Output:       updateOutput,
			DryRun:       updateDryRun,
		})
		if err != nil {
			log.Fatal(err)
		}

		report.Print()
		if report.Failed() > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().BoolVarP(&updateDryRun, "dry-run", "n", false, "Report intended changes without writing the file")
	updateCmd.Flags().StringVarP(&updatePresentation, "presentation", "p", "", "Path to the PowerPoint file (overrides config)")
	updateCmd.Flags().StringVarP(&updateOutput, "output", "o", "", "Output path for the updated presentation (default: overwrite input)")
}
