// Package config loads edimatch configuration from an optional YAML
// file, falling back to defaults when the file is absent.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/harrison/edimatch/internal/batch"
	"github.com/harrison/edimatch/internal/mask"
)

// DefaultPath is where the CLI looks for configuration unless
// overridden with --config.
const DefaultPath = ".edimatch.yaml"

// Config holds the tool's configuration options.
type Config struct {
	// MaxConcurrency bounds parallel pair comparisons in batch mode
	// (0 = one worker per pair).
	MaxConcurrency int `yaml:"max_concurrency"`

	// LogLevel sets logging verbosity (trace, debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// ReportDir is where reports are written when reporting is enabled.
	ReportDir string `yaml:"report_dir"`

	// HistoryDB is the SQLite database batch runs are archived to when
	// history recording is enabled.
	HistoryDB string `yaml:"history_db"`

	// Extensions lists the document file extensions batch mode scans
	// for. Defaults to .txt and .edi.
	Extensions []string `yaml:"extensions"`

	// Naming is the source-to-target filename convention. The default
	// matches the existing file sets and should not be changed for
	// them.
	Naming batch.Convention `yaml:"naming"`

	// MaskRules overrides the masking policy. Empty means the built-in
	// BEG05/DTM02/DTM03 rules.
	MaskRules []mask.Rule `yaml:"mask_rules"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		MaxConcurrency: 0,
		LogLevel:       "info",
		ReportDir:      "reports",
		HistoryDB:      ".edimatch/history.db",
		Extensions:     nil, // fileutil.DefaultExtensions
		Naming:         batch.DefaultConvention(),
		MaskRules:      nil, // mask.DefaultRules
	}
}

// Load reads configuration from path. A missing file returns the
// defaults without error; a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks option values that would otherwise fail deep inside a
// batch run.
func (c *Config) Validate() error {
	if c.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency must be >= 0, got %d", c.MaxConcurrency)
	}
	switch c.LogLevel {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q (valid: trace, debug, info, warn, error)", c.LogLevel)
	}
	if c.Naming.Extension == "" {
		return fmt.Errorf("naming.extension must not be empty")
	}
	for i, r := range c.MaskRules {
		if r.Tag == "" {
			return fmt.Errorf("mask_rules[%d]: tag must not be empty", i)
		}
		if r.Index <= 0 {
			return fmt.Errorf("mask_rules[%d]: index must be >= 1, got %d", i, r.Index)
		}
	}
	return nil
}

// Rules returns the effective masking rules.
func (c *Config) Rules() []mask.Rule {
	if len(c.MaskRules) == 0 {
		return mask.DefaultRules()
	}
	return c.MaskRules
}
