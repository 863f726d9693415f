// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for linediff.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/linediff/internal/diff"
	"github.com/jeranaias/linediff/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete linediff configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Comparison defaults
	Diff DiffConfig `toml:"diff" json:"diff"`

	// Input size ceiling checked before the O(M*N) table is built
	Limits LimitsConfig `toml:"limits" json:"limits"`

	// Presentation
	UI UIConfig `toml:"ui" json:"ui"`

	// File watching
	Watch WatchConfig `toml:"watch" json:"watch"`
}

// DiffConfig holds the default comparison options.
type DiffConfig struct {
	IgnoreWhitespace bool `toml:"ignore_whitespace" json:"ignore_whitespace"`
	IgnoreCase       bool `toml:"ignore_case" json:"ignore_case"`
}

// LimitsConfig bounds the size of a single diff. Zero disables a limit.
type LimitsConfig struct {
	MaxCells int64 `toml:"max_cells" json:"max_cells"`
	MaxBytes int64 `toml:"max_bytes" json:"max_bytes"`
}

// UIConfig controls how diffs are rendered.
type UIConfig struct {
	Color           string `toml:"color" json:"color"`                 // auto, always, never
	Layout          string `toml:"layout" json:"layout"`               // side-by-side, inline
	ContextLines    int    `toml:"context_lines" json:"context_lines"` // -1 shows every line
	Width           int    `toml:"width" json:"width"`                 // 0 detects the terminal width
	TabWidth        int    `toml:"tab_width" json:"tab_width"`
	ShowLineNumbers bool   `toml:"show_line_numbers" json:"show_line_numbers"`
}

// WatchConfig controls the file watcher.
type WatchConfig struct {
	Debounce string `toml:"debounce" json:"debounce"` // Go duration, e.g. "150ms"
}

// Layout names.
const (
	LayoutSideBySide = "side-by-side"
	LayoutInline     = "inline"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1",

		Diff: DiffConfig{
			IgnoreWhitespace: false,
			IgnoreCase:       false,
		},

		Limits: LimitsConfig{
			MaxCells: 25_000_000, // ~100 MB of int32 cells
			MaxBytes: 16 << 20,
		},

		UI: UIConfig{
			Color:           ColorAuto,
			Layout:          LayoutSideBySide,
			ContextLines:    -1,
			Width:           0,
			TabWidth:        4,
			ShowLineNumbers: true,
		},

		Watch: WatchConfig{
			Debounce: "150ms",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the linediff configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".linediff"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// ActivePath returns the file Load would read, or "" when it would fall back
// to defaults.
func ActivePath() string {
	if p := os.Getenv("LINEDIFF_CONFIG"); p != "" {
		return p
	}
	for _, fn := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		p, err := fn()
		if err != nil {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration. LINEDIFF_CONFIG names an explicit file;
// otherwise ~/.linediff/config.toml, then ~/.linediff/config.json, then the
// built-in defaults are used. Environment overrides are applied last.
func Load() (*Config, error) {
	if path := ActivePath(); path != "" {
		return LoadFromPath(path)
	}
	return finish(Default())
}

// LoadFromPath loads configuration from a specific file. Files ending in
// .json are decoded as JSON, everything else as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	var err error
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		err = LoadJSON(cfg, path)
	} else {
		err = LoadTOML(cfg, path)
	}
	if err != nil {
		return nil, err
	}
	return finish(cfg)
}

// LoadTOML decodes a TOML file over cfg. Keys absent from the file keep
// their current values.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON config %s: %w", path, err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("failed to decode JSON config %s: %w", path, err)
	}
	return nil
}

func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes cfg to ~/.linediff/config.toml.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg to path atomically.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# linediff configuration file\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON writes cfg to path atomically as indented JSON.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Limits.MaxCells < 0 {
		errs = append(errs, ValidationError{"limits.max_cells", "must be >= 0 (0 disables the limit)"})
	}
	if c.Limits.MaxBytes < 0 {
		errs = append(errs, ValidationError{"limits.max_bytes", "must be >= 0 (0 disables the limit)"})
	}

	switch c.UI.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs = append(errs, ValidationError{"ui.color",
			fmt.Sprintf("invalid value '%s', must be one of: auto, always, never", c.UI.Color)})
	}
	switch c.UI.Layout {
	case LayoutSideBySide, LayoutInline:
	default:
		errs = append(errs, ValidationError{"ui.layout",
			fmt.Sprintf("invalid value '%s', must be one of: side-by-side, inline", c.UI.Layout)})
	}
	if c.UI.ContextLines < -1 {
		errs = append(errs, ValidationError{"ui.context_lines", "must be >= -1 (-1 shows every line)"})
	}
	if c.UI.Width != 0 && c.UI.Width < 20 {
		errs = append(errs, ValidationError{"ui.width", "must be 0 (auto) or at least 20"})
	}
	if c.UI.TabWidth < 1 || c.UI.TabWidth > 16 {
		errs = append(errs, ValidationError{"ui.tab_width", "must be between 1 and 16"})
	}

	if d, err := time.ParseDuration(c.Watch.Debounce); err != nil {
		errs = append(errs, ValidationError{"watch.debounce", fmt.Sprintf("invalid duration '%s'", c.Watch.Debounce)})
	} else if d < 0 {
		errs = append(errs, ValidationError{"watch.debounce", "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills empty string fields with their defaults.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.UI.Color == "" {
		c.UI.Color = defaults.UI.Color
	}
	if c.UI.Layout == "" {
		c.UI.Layout = defaults.UI.Layout
	}
	if c.UI.TabWidth == 0 {
		c.UI.TabWidth = defaults.UI.TabWidth
	}
	if c.Watch.Debounce == "" {
		c.Watch.Debounce = defaults.Watch.Debounce
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
// Malformed values are ignored.
//
// Supported environment variables:
//   - LINEDIFF_IGNORE_WHITESPACE: "1"/"true" enables whitespace-insensitive comparison
//   - LINEDIFF_IGNORE_CASE: "1"/"true" enables case-insensitive comparison
//   - LINEDIFF_MAX_CELLS: overrides limits.max_cells
//   - LINEDIFF_LAYOUT: overrides ui.layout
//   - LINEDIFF_COLOR: overrides ui.color
//   - NO_COLOR: any non-empty value forces ui.color = never
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("LINEDIFF_IGNORE_WHITESPACE"); v != "" {
		if b, err := ParseBool(v); err == nil {
			c.Diff.IgnoreWhitespace = b
		}
	}
	if v := os.Getenv("LINEDIFF_IGNORE_CASE"); v != "" {
		if b, err := ParseBool(v); err == nil {
			c.Diff.IgnoreCase = b
		}
	}
	if v := os.Getenv("LINEDIFF_MAX_CELLS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Limits.MaxCells = n
		}
	}
	if v := os.Getenv("LINEDIFF_LAYOUT"); v != "" {
		c.UI.Layout = strings.ToLower(v)
	}
	if v := os.Getenv("LINEDIFF_COLOR"); v != "" {
		c.UI.Color = strings.ToLower(v)
	}
	// https://no-color.org/
	if os.Getenv("NO_COLOR") != "" {
		c.UI.Color = ColorNever
	}
}

// ParseBool parses true/false, yes/no, y/n, 1/0 and on/off, ignoring case.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1", "on":
		return true, nil
	case "false", "no", "n", "0", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value: %s", s)
	}
}

// =============================================================================
// ENGINE PROJECTIONS
// =============================================================================

// Options returns the configured comparison options.
func (c *Config) Options() diff.Options {
	return diff.Options{
		IgnoreWhitespace: c.Diff.IgnoreWhitespace,
		IgnoreCase:       c.Diff.IgnoreCase,
	}
}

// SizeLimits returns the configured input size ceiling.
func (c *Config) SizeLimits() diff.Limits {
	return diff.Limits{MaxCells: c.Limits.MaxCells, MaxBytes: c.Limits.MaxBytes}
}

// DebounceDuration returns watch.debounce parsed, or zero when invalid.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// ErrUnknownKey is returned by Get and Set for keys that do not exist.
var ErrUnknownKey = errors.New("unknown config key")

// Get returns a value by dotted key, e.g. "diff.ignore_case".
func (c *Config) Get(key string) (string, error) {
	f, err := c.lookup(key)
	if err != nil {
		return "", err
	}
	return fmt.Sprint(f.Interface()), nil
}

// Set assigns a value by dotted key, converting from its string form. The
// config is not validated; call Validate afterwards.
func (c *Config) Set(key, value string) error {
	f, err := c.lookup(key)
	if err != nil {
		return err
	}

	switch f.Kind() {
	case reflect.String:
		f.SetString(value)
	case reflect.Bool:
		b, err := ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		f.SetBool(b)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(strings.ReplaceAll(value, "_", ""), 10, 64)
		if err != nil {
			return fmt.Errorf("%s: invalid integer value '%s'", key, value)
		}
		f.SetInt(n)
	default:
		return fmt.Errorf("%s: unsupported field type %s", key, f.Kind())
	}
	return nil
}

// Keys returns every settable key in dot notation, sorted.
func Keys() []string {
	var keys []string
	root := reflect.TypeOf(Config{})
	for i := 0; i < root.NumField(); i++ {
		sec := root.Field(i)
		if sec.Type.Kind() != reflect.Struct {
			continue
		}
		prefix := tomlName(sec)
		for j := 0; j < sec.Type.NumField(); j++ {
			keys = append(keys, prefix+"."+tomlName(sec.Type.Field(j)))
		}
	}
	sort.Strings(keys)
	return keys
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(key)), ".")
	if len(parts) != 2 {
		return reflect.Value{}, fmt.Errorf("%w: %s (expected section.name)", ErrUnknownKey, key)
	}

	sec, ok := fieldByTOMLName(reflect.ValueOf(c).Elem(), parts[0])
	if !ok || sec.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	f, ok := fieldByTOMLName(sec, strings.ReplaceAll(parts[1], "-", "_"))
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return f, nil
}

func fieldByTOMLName(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if tomlName(t.Field(i)) == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func tomlName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
	if name == "" {
		return strings.ToLower(f.Name)
	}
	return name
}

// String returns the configuration as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("# failed to encode config: %v\n", err)
	}
	return buf.String()
}
