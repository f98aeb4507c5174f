package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"ipsum/config"
	"ipsum/internal/adapter/cache"
	"ipsum/internal/adapter/corpus"
	"ipsum/internal/adapter/sampler"
	"ipsum/internal/adapter/wiki"
	"ipsum/internal/domain"
	"ipsum/internal/port"
	"ipsum/internal/usecase"
)

var (
	genQuery     string
	genBodyFile  string
	genFromFiles string
	genUnit      string
	genQuantity  int
	genFormat    string
	genSentences []int
	genWords     []int
	genTitle     bool
	genJSON      bool
	genNoCache   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate filler text",
	Long: `Generate filler text seeded from a Wikipedia article, a local text
file, or a supplied body file.

Examples:
  ipsum generate -q "Ada Lovelace" -n 200 --unit words
  ipsum generate -q "Battle of Hastings" -n 4 --format html
  ipsum generate --body-file article.txt -n 3
  ipsum generate -q notes --from-files ./docs --json`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&genQuery, "query", "q", "", "article query")
	generateCmd.Flags().StringVar(&genBodyFile, "body-file", "", "file whose contents seed the vocabulary (skips fetching)")
	generateCmd.Flags().StringVar(&genFromFiles, "from-files", "", "resolve the query against text files under this directory")
	generateCmd.Flags().StringVar(&genUnit, "unit", "", "quantity unit: words or paragraphs (default from config)")
	generateCmd.Flags().IntVarP(&genQuantity, "quantity", "n", 0, "amount of output (default from config)")
	generateCmd.Flags().StringVar(&genFormat, "format", "", "output format: plain or html (default from config)")
	generateCmd.Flags().IntSliceVar(&genSentences, "sentences", nil, "sentences per paragraph as min,max")
	generateCmd.Flags().IntSliceVar(&genWords, "words", nil, "words per sentence as min,max")
	generateCmd.Flags().BoolVar(&genTitle, "title", false, "print the source article title")
	generateCmd.Flags().BoolVar(&genJSON, "json", false, "output as JSON including the frequency model")
	generateCmd.Flags().BoolVar(&genNoCache, "no-cache", false, "bypass the article cache")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	source, closeSource, err := buildSource(cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	req := usecase.Request{
		Query:        genQuery,
		Options:      mergeOptions(cfg),
		IncludeTitle: genTitle || genJSON,
		IncludeModel: genJSON,
	}
	if genBodyFile != "" {
		body, err := os.ReadFile(genBodyFile)
		if err != nil {
			return fmt.Errorf("failed to read body file: %w", err)
		}
		req.Query = ""
		req.Title = genQuery
		req.Body = string(body)
	}

	synth := usecase.NewSynthesizer(source, newRand, limits(cfg))
	result, err := synth.Synthesize(cmd.Context(), req)
	if err != nil {
		var ambiguous *domain.AmbiguousError
		if errors.As(err, &ambiguous) && len(ambiguous.Suggestions) > 0 {
			fmt.Fprintf(os.Stderr, "%q is ambiguous. Suggestions:\n", ambiguous.Query)
			for _, s := range ambiguous.Suggestions {
				fmt.Fprintf(os.Stderr, "  - %s\n", s)
			}
			return fmt.Errorf("ambiguous query")
		}
		return err
	}

	if genJSON {
		output, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(output))
		return nil
	}
	if genTitle && result.Title != "" {
		fmt.Printf("# %s\n\n", result.Title)
	}
	fmt.Println(result.Body)
	return nil
}

// buildSource picks the article source: local corpus when requested,
// otherwise the MediaWiki client, wrapped in the bbolt cache unless
// disabled.
func buildSource(cfg *config.Config) (port.ArticleSource, func(), error) {
	if genFromFiles != "" {
		src := corpus.NewFileSource(genFromFiles, cfg.Corpus.Includes, cfg.Corpus.Excludes)
		return src, func() {}, nil
	}

	client := wiki.New(cfg.Source.BaseURL, cfg.Source.UserAgent,
		time.Duration(cfg.Source.TimeoutSecs)*time.Second)

	if genNoCache || !cfg.Cache.Enabled {
		return client, func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.CacheDBPath()), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	store, err := cache.Open(cfg.CacheDBPath(), time.Duration(cfg.Cache.TTLHours)*time.Hour)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open article cache: %w", err)
	}
	return cache.NewCachedSource(client, store), func() { store.Close() }, nil
}

// mergeOptions layers the generate flags over the configured defaults.
func mergeOptions(cfg *config.Config) domain.Options {
	opts := cfg.Generate.Options()
	if genUnit != "" {
		opts.Unit = domain.Unit(genUnit)
	}
	if genQuantity > 0 {
		opts.Quantity = genQuantity
	}
	if genFormat != "" {
		opts.Format = domain.Format(genFormat)
	}
	if len(genSentences) == 2 {
		opts.SentencesPerParagraph = domain.Bounds{Min: genSentences[0], Max: genSentences[1]}
	}
	if len(genWords) == 2 {
		opts.WordsPerSentence = domain.Bounds{Min: genWords[0], Max: genWords[1]}
	}
	return opts
}

func limits(cfg *config.Config) usecase.Limits {
	return usecase.Limits{
		BodyWords:  cfg.Generate.MinBodyWords,
		Tokens:     cfg.Generate.MinTokens,
		Vocabulary: cfg.Generate.MinVocabulary,
	}
}

func newRand() port.Rand {
	return sampler.NewRand()
}
