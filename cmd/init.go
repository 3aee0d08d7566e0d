package cmd

import (
	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/stardevs70/Keynote-Sheets-Automation/internal/ksa/config"
	"github.com/stardevs70/Keynote-Sheets-Automation/internal/ksa/utils"
	"github.com/stardevs70/Keynote-Sheets-Automation/internal/log"
)

var (
	initSpreadsheet  string
	initPresentation string
	initForce        bool
)

var initCmd = &cobra.Command{
	Use:     "init",
	Aliases: []string{"i"},
	Short:   "Create a config file for this deck",
	Long: `Create config.yaml with the spreadsheet and presentation settings.

Values can be provided via flags or entered interactively. The generated
file contains placeholders for credentials: supply a ready OAuth access
token or an API key yourself, ksa does not perform the OAuth flow.`,
	Example: `  # Interactive setup
  ksa init

  # Non-interactive
  ksa init --spreadsheet 1AbCdEf... --presentation investor_deck.pptx`,
	Run: func(cmd *cobra.Command, _ []string) {
		path := configFlag(cmd)
		if utils.FileExists(path) && !initForce {
			log.Fatal("%s already exists, use --force to overwrite", path)
		}

		answers := struct {
			Spreadsheet  string `survey:"spreadsheet"`
			MappingSheet string `survey:"mappingsheet"`
			Presentation string `survey:"presentation"`
		}{
			Spreadsheet:  initSpreadsheet,
			MappingSheet: config.DefaultMappingSheet,
			Presentation: initPresentation,
		}

		var prompts []*survey.Question
		if answers.Spreadsheet == "" {
			prompts = append(prompts, &survey.Question{
				Name:     "spreadsheet",
				Prompt:   &survey.Input{Message: "Google spreadsheet ID:"},
				Validate: survey.Required,
			})
		}
		if answers.Presentation == "" {
			prompts = append(prompts, &survey.Question{
				Name:     "presentation",
				Prompt:   &survey.Input{Message: "Path to the PowerPoint file:"},
				Validate: survey.Required,
			})
		}
		prompts = append(prompts, &survey.Question{
			Name: "mappingsheet",
			Prompt: &survey.Input{
				Message: "Mapping sheet tab name:",
				Default: config.DefaultMappingSheet,
			},
		})

		if err := survey.Ask(prompts, &answers); err != nil {
			log.Fatal(err)
		}

		conf := config.Config{
			Google: config.Google{
				SpreadsheetID: answers.Spreadsheet,
				MappingSheet:  answers.MappingSheet,
			},
			PowerPoint: config.PowerPoint{FilePath: answers.Presentation},
		}
		if err := utils.WriteYamlToFile(path, &conf); err != nil {
			log.Fatal(err)
		}

		log.Info("Wrote %s", path)
		log.InfoH2("Add google.access_token or google.api_key before running 'ksa update'")
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initSpreadsheet, "spreadsheet", "", "Google spreadsheet ID")
	initCmd.Flags().StringVar(&initPresentation, "presentation", "", "Path to the PowerPoint file")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}
