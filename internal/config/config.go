// Package config provides configuration loading and structs for yomu.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hyperjump/yomu/internal/extract"
	"github.com/hyperjump/yomu/internal/segment"
)

// Output formats accepted by output.format.
const (
	FormatJSON    = "json"
	FormatText    = "text"
	FormatCompact = "compact"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool          `yaml:"debug"`
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Query   QueryConfig   `yaml:"query"`
	Ranking RankingConfig `yaml:"ranking"`
	Segment SegmentConfig `yaml:"segment"`
	Watch   WatchConfig   `yaml:"watch"`
}

// InputConfig says where documents and run requests come from.
type InputConfig struct {
	// Dir is scanned for documents when no request file is given, and
	// relative document paths in a request are resolved against it.
	Dir string `yaml:"dir"`
	// Request is an optional run request JSON file.
	Request    string   `yaml:"request"`
	Extensions []string `yaml:"extensions"`
}

// OutputConfig holds digest output settings. An empty Path writes to stdout.
type OutputConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
}

// QueryConfig holds the persona and job used for directory scans.
type QueryConfig struct {
	Persona string `yaml:"persona"`
	Job     string `yaml:"job"`
}

// RankingConfig holds ranking caps and extraction parallelism.
type RankingConfig struct {
	MaxSections   int `yaml:"max_sections"`
	ExcerptLength int `yaml:"excerpt_length"`
	Workers       int `yaml:"workers"`
}

// SegmentConfig selects the header rules, by name and in evaluation order.
// Empty means all built-in rules.
type SegmentConfig struct {
	HeaderRules []string `yaml:"header_rules"`
}

// WatchConfig holds input directory watch settings.
type WatchConfig struct {
	DebounceMS int   `yaml:"debounce_ms"`
	Recursive  *bool `yaml:"recursive"`
}

// RecursiveOrDefault returns whether to watch recursively; defaults to false when unset.
func (w *WatchConfig) RecursiveOrDefault() bool {
	if w.Recursive != nil {
		return *w.Recursive
	}
	return false
}

// Default returns a config with every default applied, for runs without a config file.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// Load reads and parses the config file at path, applies defaults, validates
// it, and expands paths. Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configDir := filepath.Dir(path)
	cfg.Input.Dir = expandPath(cfg.Input.Dir, configDir)
	if cfg.Input.Request != "" {
		cfg.Input.Request = expandPath(cfg.Input.Request, configDir)
	}
	if cfg.Output.Path != "" {
		cfg.Output.Path = expandPath(cfg.Output.Path, configDir)
	}

	return &cfg, nil
}

// Validate rejects settings that cannot be acted on.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatJSON, FormatText, FormatCompact:
	default:
		return fmt.Errorf("invalid output format %q (want json, text or compact)", c.Output.Format)
	}
	if c.Ranking.MaxSections < 0 || c.Ranking.ExcerptLength < 0 || c.Ranking.Workers < 0 {
		return fmt.Errorf("ranking values must not be negative")
	}
	if c.Watch.DebounceMS < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative")
	}
	supported := extract.SupportedExtensions()
	for _, ext := range c.Input.Extensions {
		if !slices.Contains(supported, ext) {
			return fmt.Errorf("unsupported input extension %q (want one of %s)", ext, strings.Join(supported, ", "))
		}
	}
	if _, err := segment.RulesByName(c.Segment.HeaderRules...); err != nil {
		return fmt.Errorf("segment.header_rules: %w", err)
	}
	return nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
