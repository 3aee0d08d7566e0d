package main

import "github.com/stardevs70/Keynote-Sheets-Automation/cmd"

func main() {
	cmd.Execute()
}
