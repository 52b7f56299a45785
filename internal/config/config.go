// Package config holds user settings: which attributes carry class lists,
// which stylesheet languages end statements at line breaks, how custom
// languages map onto known ones, and which files to ignore.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"bennypowers.dev/twls/internal/analysis"
	"bennypowers.dev/twls/internal/collections"
	"bennypowers.dev/twls/internal/log"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// SettingsKey is the settings section the server reads
const SettingsKey = "tailwindCSS"

// ProjectFileNames are the config files looked up in a workspace root, in
// order of precedence
var ProjectFileNames = []string{"twls.yaml", "twls.yml", ".twls.json"}

// ErrUnsupportedFormat is returned for config files that are neither JSON
// nor YAML
var ErrUnsupportedFormat = errors.New("unsupported config format")

// FilesConfig selects the files the server analyzes
type FilesConfig struct {
	// Exclude holds glob patterns of files to skip
	Exclude []string `json:"exclude" yaml:"exclude"`
}

// Config represents the server configuration
type Config struct {
	// ClassAttributes are the attribute names holding class lists.
	// Default: ["class", "className", "ngClass", "class:list"]
	ClassAttributes []string `json:"classAttributes" yaml:"classAttributes"`

	// SemicolonlessLanguages are stylesheet languages whose statements end
	// at line breaks. Default: ["sass", "sugarss", "stylus"]
	SemicolonlessLanguages []string `json:"semicolonlessLanguages" yaml:"semicolonlessLanguages"`

	// IncludeLanguages maps custom language ids onto supported ones,
	// e.g. {"plaintext": "html"}
	IncludeLanguages map[string]string `json:"includeLanguages" yaml:"includeLanguages"`

	Files FilesConfig `json:"files" yaml:"files"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		ClassAttributes:        []string{"class", "className", "ngClass", "class:list"},
		SemicolonlessLanguages: []string{"sass", "sugarss", "stylus"},
		IncludeLanguages:       map[string]string{},
		Files: FilesConfig{
			Exclude: []string{
				"**/.git/**",
				"**/node_modules/**",
				"**/.hg/**",
				"**/.svn/**",
			},
		},
	}
}

// FromSettings reads the tailwindCSS section of LSP settings on top of the
// defaults. Settings without the section yield the defaults.
func FromSettings(settings any) (Config, error) {
	return MergeSettings(Default(), settings)
}

// MergeSettings reads the tailwindCSS section of LSP settings on top of base.
// Fields the section does not name keep their value from base.
func MergeSettings(base Config, settings any) (Config, error) {
	if settings == nil {
		return base, nil
	}

	settingsMap, ok := settings.(map[string]any)
	if !ok {
		return base, fmt.Errorf("settings is not a map")
	}

	section := extractSection(settingsMap)
	if len(section) == 0 {
		return base, nil
	}

	jsonBytes, err := json.Marshal(section)
	if err != nil {
		return base, fmt.Errorf("failed to marshal settings: %w", err)
	}
	config := base.clone()
	if err := json.Unmarshal(jsonBytes, &config); err != nil {
		return base, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	return config, nil
}

// clone copies the slices and map so decoding into the copy leaves c intact
func (c Config) clone() Config {
	c.ClassAttributes = slices.Clone(c.ClassAttributes)
	c.SemicolonlessLanguages = slices.Clone(c.SemicolonlessLanguages)
	c.IncludeLanguages = maps.Clone(c.IncludeLanguages)
	c.Files.Exclude = slices.Clone(c.Files.Exclude)
	return c
}

// extractSection returns the tailwindCSS section of settings. Both nested
// objects and VS Code style dotted keys ("tailwindCSS.files.exclude") are
// understood; dotted keys win.
func extractSection(settings map[string]any) map[string]any {
	section := map[string]any{}
	if nested, ok := settings[SettingsKey].(map[string]any); ok {
		for k, v := range nested {
			section[k] = v
		}
	}

	prefix := SettingsKey + "."
	keys := make([]string, 0, len(settings))
	for k := range settings {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		setPath(section, strings.Split(strings.TrimPrefix(k, prefix), "."), settings[k])
	}
	return section
}

func setPath(m map[string]any, path []string, value any) {
	for _, key := range path[:len(path)-1] {
		next, ok := m[key].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[key] = next
		}
		m = next
	}
	m[path[len(path)-1]] = value
}

// Parse reads a configuration file's contents. format is "json", "jsonc",
// "yaml", or "yml". JSON files are VS Code style settings; YAML files hold
// the fields at the top level.
func Parse(data []byte, format string) (Config, error) {
	switch strings.ToLower(format) {
	case "json", "jsonc":
		var settings map[string]any
		if err := json.Unmarshal(jsonc.ToJSON(data), &settings); err != nil {
			return Default(), fmt.Errorf("failed to parse settings: %w", err)
		}
		return FromSettings(settings)

	case "yaml", "yml":
		config := Default()
		if err := yaml.Unmarshal(data, &config); err != nil {
			return Default(), fmt.Errorf("failed to parse YAML config: %w", err)
		}
		return config, nil
	}
	return Default(), fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// LoadFile reads a configuration file, choosing the format from its
// extension
func LoadFile(path string) (Config, error) {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	switch strings.ToLower(format) {
	case "json", "jsonc", "yaml", "yml":
	default:
		return Default(), fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: user-selected config file
	if err != nil {
		return Default(), fmt.Errorf("failed to read config %s: %w", path, err)
	}

	config, err := Parse(data, format)
	if err != nil {
		return config, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// FindProjectFile returns the path of the first project config file in dir,
// or "" when there is none
func FindProjectFile(dir string) string {
	for _, name := range ProjectFileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// IsExcluded reports whether path matches one of the exclude globs
func (c Config) IsExcluded(path string) bool {
	// doublestar matches forward slashes; leading separators and volume
	// names are not part of any pattern
	normalized := filepath.ToSlash(strings.TrimPrefix(path, filepath.VolumeName(path)))
	normalized = strings.TrimLeft(normalized, "/")

	for _, pattern := range c.Files.Exclude {
		matched, err := doublestar.Match(strings.TrimLeft(pattern, "/"), normalized)
		if err != nil {
			log.Warn("Invalid exclude pattern %q: %v", pattern, err)
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// IsSemicolonless reports whether lang ends statements at line breaks
func (c Config) IsSemicolonless(lang string) bool {
	return c.semicolonless()(lang)
}

func (c Config) semicolonless() func(lang string) bool {
	return collections.NewSet(c.SemicolonlessLanguages...).Has
}

// ResolveLanguage maps a custom language id onto the one it is configured
// to behave as
func (c Config) ResolveLanguage(languageID string) string {
	if mapped, ok := c.IncludeLanguages[languageID]; ok && mapped != "" {
		return mapped
	}
	return languageID
}

// AnalysisConfig returns the settings the scope analyzer uses
func (c Config) AnalysisConfig() analysis.Config {
	return analysis.Config{
		ClassAttributes: slices.Clone(c.ClassAttributes),
		Semicolonless:   c.semicolonless(),
	}
}
