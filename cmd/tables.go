package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stardevs70/Keynote-Sheets-Automation/internal/ksa"
	"github.com/stardevs70/Keynote-Sheets-Automation/internal/ksa/deck"
	"github.com/stardevs70/Keynote-Sheets-Automation/internal/log"
)

var tablesPresentation string

var tablesCmd = &cobra.Command{
	Use:   "tables <slide>",
	Short: "List tables on a slide",
	Long: `List every table on the given slide with its name and dimensions.
Row and column indices in the mapping table are 1-based and must fall
inside the dimensions shown here.`,
	Example: `  # List tables on slide 4
  ksa tables 4`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		slide, err := parseSlideArg(args[0])
		if err != nil {
			log.Fatal(err)
		}

		path, err := ksa.ResolveDeckPath(configFlag(cmd), tablesPresentation)
		if err != nil {
			log.Fatal(err)
		}
		d, err := deck.Open(path)
		if err != nil {
			log.Fatal(err)
		}

		infos, err := d.ListTables(slide)
		if err != nil {
			log.Fatal(err)
		}

		log.Info("Tables on slide %d of %s:", slide, path)
		for _, info := range infos {
			log.InfoH2("%s (%d rows x %d cols)", info.Name, info.Rows, info.Cols)
		}
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)

	tablesCmd.Flags().StringVarP(&tablesPresentation, "presentation", "p", "", "Path to the PowerPoint file (overrides config)")
}
