// Package config loads extractor settings from defaults, an optional YAML
// file, a .env file and the process environment, in that order of precedence
// (later wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/event-extractor/internal/eventbrite"
	"github.com/pfrederiksen/event-extractor/internal/transform"
)

// Environment variables read by Load.
const (
	EnvAPIKey   = eventbrite.APIKeyEnv
	EnvBaseURL  = "EVENTBRITE_BASE_URL"
	EnvLogLevel = "LOG_LEVEL"
)

// Output formats
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatBoth = "both"
)

// PlaceWorldwide disables the location filter when used as place_id.
const PlaceWorldwide = "none"

type SearchConfig struct {
	Query      string `yaml:"query"`
	Pages      int    `yaml:"pages"`
	PageSize   int    `yaml:"page_size"`
	PlaceID    string `yaml:"place_id"` // Who's On First ID, or "none"
	OnlineOnly bool   `yaml:"online_only"`
}

type TransformConfig struct {
	SortBy           string `yaml:"sort_by"` // date | title
	FreeFirst        bool   `yaml:"free_first"`
	IncludePast      bool   `yaml:"include_past"`
	IncludeCancelled bool   `yaml:"include_cancelled"`
}

type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // json | csv | both
	HTML   bool   `yaml:"html"`
	ICS    bool   `yaml:"ics"`
	Raw    bool   `yaml:"raw"` // also write unfiltered records
}

type NewsletterConfig struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Intro    string `yaml:"intro"`
	Topic    string `yaml:"topic"`
	Place    string `yaml:"place"`
}

type Config struct {
	APIKey      string        `yaml:"api_key"`
	BaseURL     string        `yaml:"base_url"`
	Timeout     time.Duration `yaml:"timeout"`
	LogLevel    string        `yaml:"log_level"`
	MetricsFile string        `yaml:"metrics_file"` // Prometheus textfile, empty disables

	Search     SearchConfig     `yaml:"search"`
	Transform  TransformConfig  `yaml:"transform"`
	Output     OutputConfig     `yaml:"output"`
	Newsletter NewsletterConfig `yaml:"newsletter"`
}

// Default returns the built-in settings: an "AI" search in New York City,
// three pages of 20, JSON and CSV written to ./output.
func Default() Config {
	return Config{
		BaseURL:  eventbrite.DefaultBaseURL,
		Timeout:  eventbrite.Timeout,
		LogLevel: "info",
		Search: SearchConfig{
			Query:    "AI",
			Pages:    3,
			PageSize: eventbrite.DefaultPageSize,
			PlaceID:  eventbrite.NYCPlaceID,
		},
		Transform: TransformConfig{
			SortBy: string(transform.SortByDate),
		},
		Output: OutputConfig{
			Dir:    "output",
			Format: FormatBoth,
		},
	}
}

// Load builds a Config. path is an optional YAML file; envFile is an optional
// dotenv file whose values never replace variables already set in the
// environment. Either may be empty. A missing envFile is not an error, a
// missing YAML file is.
func Load(path, envFile string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv(EnvAPIKey)); v != "" {
		cfg.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyDefaults fills zero values a partial YAML file may have left behind
func (c *Config) applyDefaults() {
	d := Default()
	if c.BaseURL == "" {
		c.BaseURL = d.BaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Search.Pages <= 0 {
		c.Search.Pages = d.Search.Pages
	}
	if c.Search.PageSize <= 0 {
		c.Search.PageSize = d.Search.PageSize
	}
	if c.Search.PlaceID == "" {
		c.Search.PlaceID = d.Search.PlaceID
	}
	if c.Transform.SortBy == "" {
		c.Transform.SortBy = d.Transform.SortBy
	}
	if c.Output.Dir == "" {
		c.Output.Dir = d.Output.Dir
	}
	if c.Output.Format == "" {
		c.Output.Format = d.Output.Format
	}
}

// Validate checks the values that have a fixed set of choices.
func (c Config) Validate() error {
	switch c.Output.Format {
	case FormatJSON, FormatCSV, FormatBoth:
	default:
		return fmt.Errorf("invalid output format %q (want json, csv or both)", c.Output.Format)
	}
	if _, err := transform.ParseSortKey(c.Transform.SortBy); err != nil {
		return err
	}
	return nil
}

// Place returns the place ID to send to the API; empty means worldwide.
func (s SearchConfig) Place() string {
	if strings.EqualFold(strings.TrimSpace(s.PlaceID), PlaceWorldwide) {
		return ""
	}
	return strings.TrimSpace(s.PlaceID)
}

// WantsJSON reports whether JSON files should be written
func (o OutputConfig) WantsJSON() bool {
	return o.Format == FormatJSON || o.Format == FormatBoth
}

// WantsCSV reports whether CSV files should be written
func (o OutputConfig) WantsCSV() bool {
	return o.Format == FormatCSV || o.Format == FormatBoth
}
