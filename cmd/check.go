package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stardevs70/Keynote-Sheets-Automation/internal/ksa"
	"github.com/stardevs70/Keynote-Sheets-Automation/internal/ksa/deck"
	"github.com/stardevs70/Keynote-Sheets-Automation/internal/log"
)

var checkPresentation string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the presentation can be opened",
	Long:  `Open the configured presentation and report its slide count.`,
	Example: `  # Check the configured deck
  ksa check

  # Check an explicit file
  ksa check -p investor_deck.pptx`,
	Run: func(cmd *cobra.Command, _ []string) {
		path, err := ksa.ResolveDeckPath(configFlag(cmd), checkPresentation)
		if err != nil {
			log.Fatal(err)
		}
		d, err := deck.Open(path)
		if err != nil {
			log.Fatal(err)
		}
		log.Info("OK: %s (%d slides)", path, d.SlideCount())
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkPresentation, "presentation", "p", "", "Path to the PowerPoint file (overrides config)")
}
