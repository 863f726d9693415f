// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for linediff.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: main configuration structure
//   - DiffConfig: default comparison options
//   - LimitsConfig: input size ceiling for the diff engine
//   - UIConfig: rendering settings
//   - WatchConfig: file watcher settings
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (LINEDIFF_*, NO_COLOR)
//   - The file named by LINEDIFF_CONFIG
//   - ~/.linediff/config.toml
//   - ~/.linediff/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	res, err := diff.DiffChecked(left, right, cfg.Options(), cfg.SizeLimits())
package config
