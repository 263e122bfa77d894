// Package config provides configuration loading and management for rules-us-ga.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// EditionDateLayout is the layout of Edition.Date.
const EditionDateLayout = "2006-01-02"

// Config represents the complete rules-us-ga configuration
type Config struct {
	Source   SourceConfig   `yaml:"source"`
	Corpus   CorpusConfig   `yaml:"corpus"`
	Edition  EditionConfig  `yaml:"edition"`
	Limits   LimitsConfig   `yaml:"limits"`
	Checks   ValidateConfig `yaml:"validate"`
	Watch    WatchConfig    `yaml:"watch"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// SourceConfig configures where the Internet Archive OCGA files are read from
type SourceConfig struct {
	// Dir is the directory holding the source title XML files
	Dir string `yaml:"dir"`
	// Pattern is a doublestar glob, relative to Dir, selecting title files
	Pattern string `yaml:"pattern"`
	// Titles restricts conversion to these title numbers (empty = all)
	Titles []int `yaml:"titles"`
}

// CorpusConfig configures the Akoma Ntoso corpus tree
type CorpusConfig struct {
	// Root is the corpus root holding statutes/ and regulations/ (auto-detected from git if empty)
	Root string `yaml:"root"`
}

// EditionConfig describes the published code edition being converted
type EditionConfig struct {
	// Date is the publication date of the source edition (YYYY-MM-DD)
	Date string `yaml:"date"`
	// Publication is the full publication name
	Publication string `yaml:"publication"`
	// ShowAs is the short publication name
	ShowAs string `yaml:"show_as"`
}

// LimitsConfig caps text lengths in generated documents (0 = unlimited)
type LimitsConfig struct {
	SectionText    int `yaml:"section_text"`
	SubsectionText int `yaml:"subsection_text"`
	IntroText      int `yaml:"intro_text"`
	HistoryText    int `yaml:"history_text"`
}

// ValidateConfig configures corpus validation
type ValidateConfig struct {
	// Workers is the number of files checked concurrently
	Workers int `yaml:"workers"`
}

// WatchConfig configures source watching
type WatchConfig struct {
	// DebounceDelay is how long to wait for more changes before converting
	DebounceDelay string `yaml:"debounce_delay"`
}

// MetricsConfig configures the Prometheus endpoint
type MetricsConfig struct {
	// Addr is the listen address for /metrics during watch (empty = disabled)
	Addr string `yaml:"addr"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Dir:     ".",
			Pattern: "gov.ga.ocga.*.title.*.xml",
			Titles:  []int{48, 49},
		},
		Corpus: CorpusConfig{
			Root: "", // Auto-detect
		},
		Edition: EditionConfig{
			Date:        "2018-12-01",
			Publication: "Official Code of Georgia Annotated",
			ShowAs:      "OCGA",
		},
		Limits: LimitsConfig{
			SectionText:    5000,
			SubsectionText: 2000,
			IntroText:      500,
			HistoryText:    1000,
		},
		Checks: ValidateConfig{
			Workers: 4,
		},
		Watch: WatchConfig{
			DebounceDelay: "500ms",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Source.Pattern == "" {
		return fmt.Errorf("source.pattern is required")
	}
	for _, n := range c.Source.Titles {
		if n <= 0 {
			return fmt.Errorf("source.titles: invalid title number %d", n)
		}
	}
	if _, err := c.EditionDate(); err != nil {
		return fmt.Errorf("edition.date: %w", err)
	}
	if c.Limits.SectionText < 0 || c.Limits.SubsectionText < 0 || c.Limits.IntroText < 0 || c.Limits.HistoryText < 0 {
		return fmt.Errorf("limits must not be negative")
	}
	if c.Checks.Workers < 1 {
		return fmt.Errorf("validate.workers must be at least 1")
	}
	if _, err := time.ParseDuration(c.Watch.DebounceDelay); err != nil {
		return fmt.Errorf("watch.debounce_delay: %w", err)
	}
	return nil
}

// EditionDate parses Edition.Date.
func (c *Config) EditionDate() (time.Time, error) {
	return time.Parse(EditionDateLayout, c.Edition.Date)
}

// DebounceDelay returns the watch debounce delay, falling back to 500ms.
func (c *Config) DebounceDelay() time.Duration {
	d, err := time.ParseDuration(c.Watch.DebounceDelay)
	if err != nil || d <= 0 {
		return 500 * time.Millisecond
	}
	return d
}

// WantsTitle reports whether the title number is selected for conversion.
func (c *Config) WantsTitle(n int) bool {
	if len(c.Source.Titles) == 0 {
		return true
	}
	for _, t := range c.Source.Titles {
		if t == n {
			return true
		}
	}
	return false
}

// LoadFromFile loads configuration from a YAML file on top of the defaults
func LoadFromFile(path string) (*Config, error) {
	config := DefaultConfig()
	if err := config.ApplyFile(path); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyFile overlays a YAML config file onto c. See Apply.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return c.Apply(data)
}

// Apply overlays YAML onto c. Only keys present in the document change,
// so an explicit zero (a 0 limit, an empty titles list) overrides earlier
// layers while absent keys keep them. c is left untouched on error.
func (c *Config) Apply(data []byte) error {
	next := *c
	next.Source.Titles = append([]int(nil), c.Source.Titles...)
	if err := yaml.Unmarshal(data, &next); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	*c = next
	return nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
