// Package config loads and validates the henkaiki server configuration.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/first-storm/henkaiki/internal/errors"
)

// Config represents the complete henkaiki configuration.
type Config struct {
	Main     MainConfig     `yaml:"main" json:"main"`
	Articles ArticlesConfig `yaml:"articles" json:"articles"`
	Markdown MarkdownConfig `yaml:"markdown" json:"markdown"`
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
}

// MainConfig configures the article source and the HTTP server.
type MainConfig struct {
	// ArticlesDir is the root directory containing one subdirectory per article.
	ArticlesDir string `yaml:"articles_dir" json:"articles_dir"`

	// MaxCachedArticles is the recency cache capacity. Fixed at startup.
	MaxCachedArticles int `yaml:"max_cached_articles" json:"max_cached_articles"`

	// SampleArticle enables the built-in sample article under id 0.
	SampleArticle bool `yaml:"sample_article" json:"sample_article"`

	// Address is the listen address for the HTTP server.
	Address string `yaml:"address" json:"address"`

	// Port is the listen port for the HTTP server.
	Port int `yaml:"port" json:"port"`

	// RecordCacheStats enables cache hit/miss counters.
	RecordCacheStats bool `yaml:"record_cache_stats" json:"record_cache_stats"`
}

// ArticlesConfig configures listing behavior.
type ArticlesConfig struct {
	// PerPage is the default page size used by the API when the caller
	// supplies a page but no limit.
	PerPage int `yaml:"per_page" json:"per_page"`
}

// MarkdownConfig configures the markdown renderer.
type MarkdownConfig struct {
	// Enabled applies markdown rendering to article bodies.
	// When false bodies are served verbatim.
	Enabled bool `yaml:"enabled" json:"enabled"`

	// Unsafe allows raw HTML in rendered output.
	Unsafe bool `yaml:"unsafe" json:"unsafe"`

	Extensions ExtensionsConfig `yaml:"extensions" json:"extensions"`
}

// ExtensionsConfig toggles individual markdown extensions.
type ExtensionsConfig struct {
	Strikethrough   bool `yaml:"strikethrough" json:"strikethrough"`
	Table           bool `yaml:"table" json:"table"`
	Autolink        bool `yaml:"autolink" json:"autolink"`
	Tasklist        bool `yaml:"tasklist" json:"tasklist"`
	Footnotes       bool `yaml:"footnotes" json:"footnotes"`
	DefinitionLists bool `yaml:"definition_lists" json:"definition_lists"`
}

// LoggingConfig configures process logging.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level" json:"level"`
	// Format selects the handler: "json" or "text".
	Format string `yaml:"format" json:"format"`
}

// NewConfig creates a new Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Main: MainConfig{
			ArticlesDir:       "./articles",
			MaxCachedArticles: 100,
			SampleArticle:     false,
			Address:           "127.0.0.1",
			Port:              8080,
			RecordCacheStats:  false,
		},
		Articles: ArticlesConfig{
			PerPage: 10,
		},
		Markdown: MarkdownConfig{
			Enabled: true,
			Unsafe:  true,
			Extensions: ExtensionsConfig{
				Strikethrough:   true,
				Table:           true,
				Autolink:        true,
				Tasklist:        true,
				Footnotes:       true,
				DefinitionLists: true,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from the given YAML file, layered over
// defaults. An empty path returns pure defaults.
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Newf(errors.ErrCodeConfigNotFound, err, "config file not found: %s", path)
			}
			return nil, errors.Wrap(errors.ErrCodeConfigInvalid, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Newf(errors.ErrCodeConfigInvalid, err, "parsing %s: %v", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
// Env vars take priority over file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("HENKAIKI_ARTICLES_DIR"); v != "" {
		c.Main.ArticlesDir = v
	}
	if v := os.Getenv("HENKAIKI_ADDRESS"); v != "" {
		c.Main.Address = v
	}
	if v := os.Getenv("HENKAIKI_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Main.Port = port
		}
	}
	if v := os.Getenv("HENKAIKI_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Main.ArticlesDir == "" {
		return errors.New(errors.ErrCodeConfigInvalid, "main.articles_dir must not be empty", nil)
	}
	if c.Main.MaxCachedArticles <= 0 {
		return errors.Newf(errors.ErrCodeConfigInvalid, nil,
			"main.max_cached_articles must be positive, got %d", c.Main.MaxCachedArticles)
	}
	if c.Main.Port < 1 || c.Main.Port > 65535 {
		return errors.Newf(errors.ErrCodeConfigInvalid, nil,
			"main.port must be in 1-65535, got %d", c.Main.Port)
	}
	if c.Articles.PerPage <= 0 {
		return errors.Newf(errors.ErrCodeConfigInvalid, nil,
			"articles.per_page must be positive, got %d", c.Articles.PerPage)
	}
	return nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Main.Address, c.Main.Port)
}
