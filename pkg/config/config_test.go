package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default configuration should validate: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero workers", func(c *Config) { c.Performance.MaxWorkers = 0 }},
		{"tiny file cap", func(c *Config) { c.Performance.MaxFileSize = 100 }},
		{"tiny line cap", func(c *Config) { c.Performance.MaxDiffLines = 1 }},
		{"unknown format", func(c *Config) { c.Output.Format = "xml" }},
		{"unknown log level", func(c *Config) { c.Logging.Level = "trace" }},
		{"bad filter pattern", func(c *Config) {
			c.Filter.IgnoreFilePatterns = []string{"[unclosed"}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Performance.MaxWorkers = 3
	cfg.Filter.IgnoreDirs = []string{".git", "node_modules"}
	cfg.Filter.OnlyExtensions = []string{".go", ".py"}
	cfg.Output.Format = "json"

	if err := SaveToFile(cfg, path); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if loaded.Performance.MaxWorkers != 3 {
		t.Errorf("max_workers = %d, want 3", loaded.Performance.MaxWorkers)
	}
	if len(loaded.Filter.IgnoreDirs) != 2 {
		t.Errorf("ignore_dirs = %v", loaded.Filter.IgnoreDirs)
	}
	if loaded.Output.Format != "json" {
		t.Errorf("format = %q, want json", loaded.Output.Format)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadFromInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("filter: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected parse error")
	}
}
