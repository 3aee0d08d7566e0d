package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stardevs70/Keynote-Sheets-Automation/internal/ksa"
	"github.com/stardevs70/Keynote-Sheets-Automation/internal/ksa/deck"
	"github.com/stardevs70/Keynote-Sheets-Automation/internal/log"
)

var shapesPresentation string

var shapesCmd = &cobra.Command{
	Use:   "shapes <slide>",
	Short: "List named objects on a slide",
	Long: `List every object on the given slide with its name, kind and a text
preview. Use the names shown here in the mapping table's Object Name
column.`,
	Example: `  # List objects on slide 2
  ksa shapes 2

  # Against an explicit file
  ksa shapes 2 -p investor_deck.pptx`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		slide, err := parseSlideArg(args[0])
		if err != nil {
			log.Fatal(err)
		}

		path, err := ksa.ResolveDeckPath(configFlag(cmd), shapesPresentation)
		if err != nil {
			log.Fatal(err)
		}
		d, err := deck.Open(path)
		if err != nil {
			log.Fatal(err)
		}

		infos, err := d.ListShapes(slide)
		if err != nil {
			log.Fatal(err)
		}

		log.Info("Objects on slide %d of %s:", slide, path)
		for _, info := range infos {
			switch {
			case info.Kind == "table":
				log.InfoH2("%s (table, %dx%d)", info.Name, info.Rows, info.Cols)
			case info.HasText && info.TextPreview != "":
				log.InfoH2("%s (%s) [text]", info.Name, info.Kind)
				log.InfoH3("Text: %s", info.TextPreview)
			case info.HasText:
				log.InfoH2("%s (%s) [text]", info.Name, info.Kind)
			default:
				log.InfoH2("%s (%s)", info.Name, info.Kind)
			}
		}
	},
}

// parseSlideArg parses a 1-based slide number argument
func parseSlideArg(arg string) (int, error) {
	slide, err := strconv.Atoi(arg)
	if err != nil || slide < 1 {
		return 0, fmt.Errorf("slide must be a positive integer, got %q", arg)
	}
	return slide, nil
}

func init() {
	rootCmd.AddCommand(shapesCmd)

	shapesCmd.Flags().StringVarP(&shapesPresentation, "presentation", "p", "", "Path to the PowerPoint file (overrides config)")
}
