package config

import (
	"runtime"

	"github.com/mbeaumont/dircomp/pkg/diff"
	"github.com/mbeaumont/dircomp/pkg/filter"
)

// Config represents the application configuration
type Config struct {
	Filter      filter.Config     `yaml:"filter"`
	Performance PerformanceConfig `yaml:"performance"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// PerformanceConfig holds performance-related settings
type PerformanceConfig struct {
	// MaxWorkers bounds the per-file comparison pool
	MaxWorkers int `yaml:"max_workers"`

	// MaxFileSize is the largest file diffed line by line, in bytes
	MaxFileSize int64 `yaml:"max_file_size"`

	// MaxDiffLines is the largest per-side line count diffed
	MaxDiffLines int `yaml:"max_diff_lines"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Progress bool   `yaml:"progress"` // Show a progress bar during comparison
	Color    bool   `yaml:"color"`    // Colorize the terminal summary
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Level      string `yaml:"level"` // "debug", "info", "warn", "error"
	File       string `yaml:"file"`  // Log file path (empty = stderr)
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Filter: filter.Config{
			IgnoreDirs: []string{".git"},
		},
		Performance: PerformanceConfig{
			MaxWorkers:   runtime.NumCPU(),
			MaxFileSize:  diff.DefaultMaxFileSize,
			MaxDiffLines: diff.DefaultMaxLines,
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: true,
			Color:    true,
		},
		Logging: LoggingConfig{
			Enabled:    false,
			Level:      "info",
			File:       "",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Performance.MaxWorkers < 1 {
		return &ValidationError{
			Field:   "performance.max_workers",
			Message: "must be at least 1",
		}
	}

	if c.Performance.MaxFileSize < 4096 {
		return &ValidationError{
			Field:   "performance.max_file_size",
			Message: "must be at least 4096 bytes",
		}
	}

	if c.Performance.MaxDiffLines < 64 {
		return &ValidationError{
			Field:   "performance.max_diff_lines",
			Message: "must be at least 64",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	// Filter patterns must compile before any scanning begins
	if _, err := filter.New(c.Filter); err != nil {
		return err
	}

	return nil
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
