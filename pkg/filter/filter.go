package filter

import (
	"path"
	"strings"
)

// Config holds the raw inclusion/exclusion rules for a comparison run.
// Extensions may be given with or without the leading dot and are matched
// case-insensitively. Patterns use glob semantics (* and ? within a path
// segment); a pattern containing a slash is matched against the full
// relative path, otherwise against the file's base name.
type Config struct {
	OnlyExtensions     []string `yaml:"only_extensions"`
	IgnoreExtensions   []string `yaml:"ignore_extensions"`
	IgnoreDirs         []string `yaml:"ignore_dirs"`
	IgnoreFilePatterns []string `yaml:"ignore_files"`
}

// ConfigError reports a malformed filter rule. It is surfaced before any
// scanning begins.
type ConfigError struct {
	Field   string
	Value   string
	Message string
}

func (e *ConfigError) Error() string {
	return "invalid filter " + e.Field + " '" + e.Value + "': " + e.Message
}

// Filter decides whether a relative path participates in a comparison.
// It is compiled once per run from a Config and is safe for concurrent use.
type Filter struct {
	only         map[string]struct{}
	ignoreExt    map[string]struct{}
	ignoreDirs   map[string]struct{}
	basePatterns []string
	pathPatterns []string
}

// New validates the configuration and compiles it into a Filter.
func New(cfg Config) (*Filter, error) {
	f := &Filter{
		only:       make(map[string]struct{}),
		ignoreExt:  make(map[string]struct{}),
		ignoreDirs: make(map[string]struct{}),
	}

	for _, ext := range cfg.OnlyExtensions {
		f.only[normalizeExt(ext)] = struct{}{}
	}
	for _, ext := range cfg.IgnoreExtensions {
		f.ignoreExt[normalizeExt(ext)] = struct{}{}
	}
	for _, dir := range cfg.IgnoreDirs {
		if dir == "" {
			continue
		}
		f.ignoreDirs[dir] = struct{}{}
	}

	for _, pattern := range cfg.IgnoreFilePatterns {
		if pattern == "" {
			continue
		}
		normalized := strings.ReplaceAll(pattern, "\\", "/")
		// path.Match only reports syntax errors, independent of the name
		if _, err := path.Match(normalized, "probe"); err != nil {
			return nil, &ConfigError{
				Field:   "ignore_files",
				Value:   pattern,
				Message: "bad glob pattern",
			}
		}
		if strings.Contains(normalized, "/") {
			f.pathPatterns = append(f.pathPatterns, normalized)
		} else {
			f.basePatterns = append(f.basePatterns, normalized)
		}
	}

	return f, nil
}

// IncludeDir reports whether a directory with the given base name may be
// descended into. Exclusion here is pruning: contents of an excluded
// directory never reach the file checks.
func (f *Filter) IncludeDir(baseName string) bool {
	_, ignored := f.ignoreDirs[baseName]
	return !ignored
}

// IncludeFile reports whether a file should be admitted to the comparison.
// relPath must be slash-separated. Checks run in order: ignore patterns,
// then extension policy; an earlier exclusion short-circuits.
func (f *Filter) IncludeFile(relPath, baseName string) bool {
	for _, pattern := range f.basePatterns {
		if ok, _ := path.Match(pattern, baseName); ok {
			return false
		}
	}
	for _, pattern := range f.pathPatterns {
		if ok, _ := path.Match(pattern, relPath); ok {
			return false
		}
	}

	ext := Ext(baseName)

	// A non-empty only-list is an exhaustive allow-list; the ignore
	// list is not consulted in that case.
	if len(f.only) > 0 {
		_, ok := f.only[ext]
		return ok
	}

	_, ignored := f.ignoreExt[ext]
	return !ignored
}

// Ext extracts the lowercase extension from a base name, including the
// dot. A name without a dot, or a dotfile like ".gitignore", yields the
// empty extension, which never matches a non-empty filter entry.
func Ext(baseName string) string {
	idx := strings.LastIndex(baseName, ".")
	if idx <= 0 {
		return ""
	}
	return strings.ToLower(baseName[idx:])
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
