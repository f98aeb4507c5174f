package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"ipsum/internal/domain"
)

// Config holds all configuration for the generator.
type Config struct {
	Generate GenerateConfig `yaml:"generate"`
	Source   SourceConfig   `yaml:"source"`
	Cache    CacheConfig    `yaml:"cache"`
	Server   ServerConfig   `yaml:"server"`
	Corpus   CorpusConfig   `yaml:"corpus"`
}

// BoundsConfig is an inclusive min/max range.
type BoundsConfig struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// GenerateConfig holds default generation options and pipeline
// minimums.
type GenerateConfig struct {
	Unit                  string       `yaml:"unit"`   // "words" or "paragraphs"
	Quantity              int          `yaml:"quantity"`
	Format                string       `yaml:"format"` // "plain" or "html"
	SentencesPerParagraph BoundsConfig `yaml:"sentences_per_paragraph"`
	WordsPerSentence      BoundsConfig `yaml:"words_per_sentence"`
	MinBodyWords          int          `yaml:"min_body_words"`
	MinTokens             int          `yaml:"min_tokens"`
	MinVocabulary         int          `yaml:"min_vocabulary"`
}

// SourceConfig holds article source configuration.
type SourceConfig struct {
	BaseURL     string `yaml:"base_url"` // MediaWiki api.php endpoint
	UserAgent   string `yaml:"user_agent"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// CacheConfig holds article cache configuration.
type CacheConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Path     string `yaml:"path"`
	TTLHours int    `yaml:"ttl_hours"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// CorpusConfig holds local file source configuration.
type CorpusConfig struct {
	Root     string   `yaml:"root"`
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Generate: GenerateConfig{
			Unit:                  string(domain.UnitParagraphs),
			Quantity:              3,
			Format:                string(domain.FormatPlain),
			SentencesPerParagraph: BoundsConfig{Min: 4, Max: 8},
			WordsPerSentence:      BoundsConfig{Min: 7, Max: 13},
			MinBodyWords:          50,
			MinTokens:             30,
			MinVocabulary:         20,
		},
		Source: SourceConfig{
			BaseURL:     "https://en.wikipedia.org/w/api.php",
			UserAgent:   "ipsum/1.0 (filler text generator)",
			TimeoutSecs: 15,
		},
		Cache: CacheConfig{
			Enabled:  true,
			Path:     "",
			TTLHours: 24 * 7,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Corpus: CorpusConfig{
			Includes: []string{"**/*.txt", "**/*.md"},
			Excludes: []string{"**/node_modules/**", "**/.git/**"},
		},
	}
}

// Options converts the generation defaults into domain options.
func (g GenerateConfig) Options() domain.Options {
	return domain.Options{
		Unit:                  domain.Unit(g.Unit),
		Quantity:              g.Quantity,
		Format:                domain.Format(g.Format),
		SentencesPerParagraph: domain.Bounds{Min: g.SentencesPerParagraph.Min, Max: g.SentencesPerParagraph.Max},
		WordsPerSentence:      domain.Bounds{Min: g.WordsPerSentence.Min, Max: g.WordsPerSentence.Max},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for
// ipsum.yaml, then .ipsum/config.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "ipsum.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".ipsum", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// CacheDBPath returns the article cache path, defaulting under the
// user cache directory when unset.
func (c *Config) CacheDBPath() string {
	if c.Cache.Path != "" {
		return c.Cache.Path
	}
	base, err := os.UserCacheDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "ipsum", "articles.db")
}
