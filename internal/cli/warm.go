package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"ipsum/internal/adapter/cache"
	"ipsum/internal/adapter/wiki"
)

var warmCmd = &cobra.Command{
	Use:   "warm [topic]...",
	Short: "Prefetch articles into the cache",
	Long: `Fetch the given topics and store them in the article cache, so later
generation runs work without waiting on the network.

Example:
  ipsum warm "Go (programming language)" "Plan 9 from Bell Labs" "Unix"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWarm,
}

func init() {
	rootCmd.AddCommand(warmCmd)
}

func runWarm(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	if err := os.MkdirAll(filepath.Dir(cfg.CacheDBPath()), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	store, err := cache.Open(cfg.CacheDBPath(), time.Duration(cfg.Cache.TTLHours)*time.Hour)
	if err != nil {
		return fmt.Errorf("failed to open article cache: %w", err)
	}
	defer store.Close()

	client := wiki.New(cfg.Source.BaseURL, cfg.Source.UserAgent,
		time.Duration(cfg.Source.TimeoutSecs)*time.Second)
	source := cache.NewCachedSource(client, store)

	bar := progressbar.NewOptions(len(args),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]Fetching[reset]"),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)

	fetched := 0
	var failures []string
	for i, topic := range args {
		if _, err := source.Fetch(cmd.Context(), topic); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", topic, err))
		} else {
			fetched++
		}
		bar.Set(i + 1)
	}

	fmt.Printf("\nCached %d of %d articles at %s\n", fetched, len(args), cfg.CacheDBPath())
	if len(failures) > 0 {
		fmt.Println("\nFailures:")
		for _, f := range failures {
			fmt.Printf("  - %s\n", f)
		}
	}
	return nil
}
