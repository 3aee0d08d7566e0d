package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/stardevs70/Keynote-Sheets-Automation/internal/ksa"
	"github.com/stardevs70/Keynote-Sheets-Automation/internal/log"
)

var watchPresentation string

// watchDebounce coalesces editor save bursts into one re-run
const watchDebounce = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run a dry-run whenever the config or deck changes",
	Long: `Watch the config file and the presentation and re-run the pipeline in
dry-run mode on every change.

Useful while iterating on the deck layout or the mapping table: each save
shows which entries would update and which targets are missing. Nothing is
ever written in watch mode.`,
	Example: `  # Watch with the default config
  ksa watch

  # Watch an explicit deck
  ksa watch -p investor_deck.pptx`,
	Run: func(cmd *cobra.Command, _ []string) {
		configPath := configFlag(cmd)
		deckPath, err := ksa.ResolveDeckPath(configPath, watchPresentation)
		if err != nil {
			log.Fatal(err)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			log.Fatal("failed to create watcher: %v", err)
		}
		defer func() { _ = watcher.Close() }()

		for _, path := range []string{configPath, deckPath} {
			if err := watcher.Add(path); err != nil {
				log.Fatal("failed to watch %s: %v", path, err)
			}
			log.Info("Watching %s", path)
		}

		runOnce := func() {
			report, err := ksa.RunUpdate(ksa.UpdateOptions{
				ConfigPath:   configPath,
				Presentation: watchPresentation,
				DryRun:       true,
			})
			if err != nil {
				log.Error("%v", err)
				return
			}
			report.Print()
		}
		runOnce()

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

		var debounce *time.Timer
		pending := make(chan struct{}, 1)

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				log.DebugH2("change detected: %s", event.Name)
				// Editors replace files on save; re-arm the watch in case
				// the original inode went away.
				_ = watcher.Add(event.Name)
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(watchDebounce, func() {
					select {
					case pending <- struct{}{}:
					default:
					}
				})
			case <-pending:
				runOnce()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Error("watch error: %v", err)
			case <-sigs:
				log.Info("Stopping watch")
				return
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchPresentation, "presentation", "p", "", "Path to the PowerPoint file (overrides config)")
}
