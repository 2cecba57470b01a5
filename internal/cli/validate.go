package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/mbeaumont/dircomp/internal/platform"
	"github.com/mbeaumont/dircomp/pkg/config"
	"github.com/mbeaumont/dircomp/pkg/logging"
)

// validateRoots checks that both root paths exist, are directories and
// are not the same directory.
func validateRoots(left, right string) error {
	for _, root := range []string{left, right} {
		if err := platform.ValidatePath(root); err != nil {
			return err
		}

		info, err := os.Stat(root)
		if os.IsNotExist(err) {
			return fmt.Errorf("folder not found: %s", root)
		}
		if err != nil {
			return fmt.Errorf("failed to access path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("path is not a directory: %s", root)
		}
	}

	leftAbs, err := filepath.Abs(left)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	rightAbs, err := filepath.Abs(right)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	if leftAbs == rightAbs {
		return fmt.Errorf("cannot compare a directory with itself: %s", leftAbs)
	}

	return nil
}

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with command-line flags
func applyFlagsToConfig(cfg *config.Config) {
	if len(compareFlags.OnlyExt) > 0 {
		cfg.Filter.OnlyExtensions = compareFlags.OnlyExt
	}
	if len(compareFlags.IgnoreExt) > 0 {
		cfg.Filter.IgnoreExtensions = compareFlags.IgnoreExt
	}
	if len(compareFlags.IgnoreDirs) > 0 {
		cfg.Filter.IgnoreDirs = compareFlags.IgnoreDirs
	}
	if len(compareFlags.IgnoreFiles) > 0 {
		cfg.Filter.IgnoreFilePatterns = compareFlags.IgnoreFiles
	}

	if compareFlags.Workers > 0 {
		cfg.Performance.MaxWorkers = compareFlags.Workers
	}
	if compareFlags.MaxFileSize > 0 {
		cfg.Performance.MaxFileSize = compareFlags.MaxFileSize
	}

	if compareFlags.Format != "" {
		cfg.Output.Format = compareFlags.Format
	}
	if compareFlags.NoProgress {
		cfg.Output.Progress = false
	}
	if globalFlags.Quiet {
		cfg.Output.Progress = false
	}
	if globalFlags.NoColor {
		cfg.Output.Color = false
	}
	if globalFlags.Verbose && !cfg.Logging.Enabled {
		cfg.Logging.Enabled = true
		cfg.Logging.Level = "debug"
	}
}

// newRunLogger builds the run logger from the logging config
func newRunLogger(cfg *config.Config) (zerolog.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.Nop(), nil
	}
	return logging.New(logging.Options{
		Level:      cfg.Logging.Level,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
}
