// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jeranaias/linediff/internal/diff"
)

// isolate points the home directory at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	for _, k := range []string{
		"LINEDIFF_CONFIG", "LINEDIFF_IGNORE_WHITESPACE", "LINEDIFF_IGNORE_CASE",
		"LINEDIFF_MAX_CELLS", "LINEDIFF_LAYOUT", "LINEDIFF_COLOR", "NO_COLOR",
	} {
		t.Setenv(k, "")
	}
	return home
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, diff.Options{}, cfg.Options())
	require.Equal(t, 150*time.Millisecond, cfg.DebounceDuration())
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, "", ActivePath())
}

func TestLoad_TOML(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, ".linediff", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`
[diff]
ignore_case = true

[limits]
max_cells = 1000

[ui]
layout = "inline"
show_line_numbers = false
`), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, path, ActivePath())
	require.True(t, cfg.Diff.IgnoreCase)
	require.False(t, cfg.Diff.IgnoreWhitespace)
	require.Equal(t, diff.Limits{MaxCells: 1000, MaxBytes: Default().Limits.MaxBytes}, cfg.SizeLimits())
	require.Equal(t, LayoutInline, cfg.UI.Layout)
	require.False(t, cfg.UI.ShowLineNumbers)
	// Untouched keys keep their defaults.
	require.Equal(t, ColorAuto, cfg.UI.Color)
	require.Equal(t, -1, cfg.UI.ContextLines)
}

func TestLoad_JSONFallback(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, ".linediff", "config.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`{"diff":{"ignore_whitespace":true}}`), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.Diff.IgnoreWhitespace)
}

func TestLoad_ExplicitPathAndUnknownKeys(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[diff]\nignore_kase = true\n"), 0o644))
	t.Setenv("LINEDIFF_CONFIG", path)

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "diff.ignore_kase")
}

func TestLoad_InvalidValues(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[limits]
max_cells = -5

[ui]
color = "sometimes"
context_lines = -3

[watch]
debounce = "soon"
`), 0o644))

	_, err := LoadFromPath(path)
	require.Error(t, err)

	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs))
	fields := make([]string, len(verrs))
	for i, v := range verrs {
		fields[i] = v.Field
	}
	require.ElementsMatch(t, []string{"limits.max_cells", "ui.color", "ui.context_lines", "watch.debounce"}, fields)
}

func TestApplyEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("LINEDIFF_IGNORE_WHITESPACE", "yes")
	t.Setenv("LINEDIFF_IGNORE_CASE", "1")
	t.Setenv("LINEDIFF_MAX_CELLS", "42")
	t.Setenv("LINEDIFF_LAYOUT", "INLINE")
	t.Setenv("LINEDIFF_COLOR", "always")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, diff.Options{IgnoreWhitespace: true, IgnoreCase: true}, cfg.Options())
	require.Equal(t, int64(42), cfg.Limits.MaxCells)
	require.Equal(t, LayoutInline, cfg.UI.Layout)
	require.Equal(t, ColorAlways, cfg.UI.Color)

	t.Setenv("NO_COLOR", "1")
	t.Setenv("LINEDIFF_MAX_CELLS", "lots")
	cfg, err = Load()
	require.NoError(t, err)
	require.Equal(t, ColorNever, cfg.UI.Color)
	require.Equal(t, Default().Limits.MaxCells, cfg.Limits.MaxCells)
}

func TestGetSet(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Set("diff.ignore_case", "on"))
	require.True(t, cfg.Diff.IgnoreCase)

	require.NoError(t, cfg.Set("limits.max_cells", "1_000_000"))
	require.Equal(t, int64(1_000_000), cfg.Limits.MaxCells)

	require.NoError(t, cfg.Set("ui.layout", "inline"))
	v, err := cfg.Get("ui.layout")
	require.NoError(t, err)
	require.Equal(t, "inline", v)

	require.NoError(t, cfg.Set("UI.Context-Lines", "3"))
	require.Equal(t, 3, cfg.UI.ContextLines)

	require.ErrorIs(t, cfg.Set("ui.nope", "1"), ErrUnknownKey)
	require.ErrorIs(t, cfg.Set("version", "2"), ErrUnknownKey)
	_, err = cfg.Get("diff")
	require.ErrorIs(t, err, ErrUnknownKey)

	require.Error(t, cfg.Set("diff.ignore_case", "maybe"))
	require.Error(t, cfg.Set("ui.width", "wide"))
}

func TestKeys(t *testing.T) {
	keys := Keys()
	require.Contains(t, keys, "diff.ignore_whitespace")
	require.Contains(t, keys, "limits.max_bytes")
	require.Contains(t, keys, "watch.debounce")

	cfg := Default()
	for _, k := range keys {
		_, err := cfg.Get(k)
		require.NoError(t, err, k)
	}
}

func TestSaveTOML_RoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "out", "config.toml")

	cfg := Default()
	cfg.Diff.IgnoreCase = true
	cfg.UI.ContextLines = 2
	cfg.Watch.Debounce = "1s"
	require.NoError(t, SaveTOML(cfg, path))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestSaveJSON_RoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := Default()
	cfg.UI.Layout = LayoutInline
	require.NoError(t, SaveJSON(cfg, path))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"true", "YES", "y", "1", "On"} {
		b, err := ParseBool(s)
		require.NoError(t, err)
		require.True(t, b, s)
	}
	for _, s := range []string{"false", "no", "N", "0", "off"} {
		b, err := ParseBool(s)
		require.NoError(t, err)
		require.False(t, b, s)
	}
	_, err := ParseBool("perhaps")
	require.Error(t, err)
}
