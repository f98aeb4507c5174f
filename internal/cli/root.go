package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ipsum/config"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "ipsum",
	Short: "Filler text generator seeded from real articles",
	Long: `ipsum synthesizes plausible filler paragraphs whose vocabulary and
word frequencies derive from a real source text, typically a Wikipedia
article, instead of a fixed Latin corpus.

Example usage:
  ipsum generate -q "Ada Lovelace"          # Seed from a Wikipedia article
  ipsum generate -q report --from-files ./docs
  ipsum serve                               # Run the HTTP API
  ipsum warm "Go" "Plan 9" "Unix"           # Prefetch articles into the cache`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./ipsum.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}
