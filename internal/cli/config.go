// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command implementation for linediff.
//
// Command: config [subcommand]
// Short:   View and modify configuration
//
// Subcommands:
//   show (default)      Display the effective configuration
//   path                Show the configuration file path
//   get <key>           Print one value
//   set <key> <value>   Set a value and save the file
//   init                Write a default config file (--force to overwrite)
//   keys                List every key with its current value
//
// Examples:
//   linediff config
//   linediff config show --json
//   linediff config get ui.layout
//   linediff config set diff.ignore_whitespace true
//   linediff config set limits.max_cells 100_000_000
//   linediff --config ./ci.toml config init
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/jeranaias/linediff/internal/config"
)

// =============================================================================
// HANDLE CONFIG
// =============================================================================

// HandleConfig handles the "config" command.
func HandleConfig(args Args, s Streams) error {
	switch args.Subcommand {
	case "", "show":
		return handleConfigShow(args, s)
	case "path":
		return handleConfigPath(args, s)
	case "get":
		return handleConfigGet(args, s)
	case "set":
		return handleConfigSet(args, s)
	case "init":
		return handleConfigInit(args, s)
	case "keys":
		return handleConfigKeys(args, s)
	default:
		return NewValidationErrorWithExample("config subcommand", args.Subcommand, "unknown subcommand",
			"linediff config [show|path|get|set|init|keys]")
	}
}

// configFilePath is the file config set and init write to: --config, then
// the file Load would read, then ~/.linediff/config.toml.
func configFilePath(args Args) (string, error) {
	if args.ConfigPath != "" {
		return args.ConfigPath, nil
	}
	if p := config.ActivePath(); p != "" {
		return p, nil
	}
	p, err := config.ConfigPathTOML()
	if err != nil {
		return "", &ConfigError{Err: err}
	}
	return p, nil
}

// loadFileOnly reads path over the defaults without environment overrides,
// so saving never persists a transient LINEDIFF_* variable.
func loadFileOnly(path string) (*config.Config, error) {
	cfg := config.Default()
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	var err error
	if isJSONPath(path) {
		err = config.LoadJSON(cfg, path)
	} else {
		err = config.LoadTOML(cfg, path)
	}
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	return cfg, nil
}

func saveFile(cfg *config.Config, path string) error {
	var err error
	if isJSONPath(path) {
		err = config.SaveJSON(cfg, path)
	} else {
		err = config.SaveTOML(cfg, path)
	}
	if err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	return nil
}

func isJSONPath(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".json")
}

// =============================================================================
// SUBCOMMANDS
// =============================================================================

func handleConfigShow(args Args, s Streams) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	path, _ := configFilePath(args)

	switch args.Format {
	case FormatJSON:
		return NewJSONResponse("config show", ConfigData{Path: path, Config: cfg}).Write(s.Out)
	case FormatYAML:
		return NewJSONResponse("config show", ConfigData{Path: path, Config: cfg}).WriteYAML(s.Out)
	}

	theme := themeFor(cfg.UI.Color, s.Out)
	fmt.Fprintf(s.Out, "%s %s\n\n", theme.Title.Render("# linediff configuration"), theme.Help.Render(path))
	fmt.Fprint(s.Out, cfg.String())
	return nil
}

func handleConfigPath(args Args, s Streams) error {
	path, err := configFilePath(args)
	if err != nil {
		return err
	}
	_, statErr := os.Stat(path)
	exists := statErr == nil

	if args.Format == FormatJSON {
		return NewJSONResponse("config path", map[string]interface{}{
			"config_path": path,
			"exists":      exists,
		}).Write(s.Out)
	}

	if exists {
		fmt.Fprintln(s.Out, path)
	} else {
		fmt.Fprintf(s.Out, "%s (not created; run 'linediff config init')\n", path)
	}
	return nil
}

func handleConfigGet(args Args, s Streams) error {
	if args.ConfigKey == "" {
		return ErrMissingArgument("key", "linediff config get ui.layout")
	}

	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	value, err := cfg.Get(args.ConfigKey)
	if err != nil {
		return NewValidationErrorWithExample("key", args.ConfigKey, "unknown key", "linediff config keys")
	}

	if args.Format == FormatJSON {
		return NewJSONResponse("config get", ConfigValueData{Key: args.ConfigKey, Value: value}).Write(s.Out)
	}
	fmt.Fprintln(s.Out, value)
	return nil
}

func handleConfigSet(args Args, s Streams) error {
	if args.ConfigKey == "" || args.ConfigVal == "" {
		return ErrMissingArgument("key and value", "linediff config set ui.layout inline")
	}

	path, err := configFilePath(args)
	if err != nil {
		return err
	}
	cfg, err := loadFileOnly(path)
	if err != nil {
		return err
	}

	if err := cfg.Set(args.ConfigKey, args.ConfigVal); err != nil {
		if errors.Is(err, config.ErrUnknownKey) {
			return NewValidationErrorWithExample("key", args.ConfigKey, "unknown key", "linediff config keys")
		}
		return NewValidationError(args.ConfigKey, args.ConfigVal, err.Error())
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return NewValidationError(args.ConfigKey, args.ConfigVal, err.Error())
	}
	if err := saveFile(cfg, path); err != nil {
		return err
	}

	value, _ := cfg.Get(args.ConfigKey)
	if args.Format == FormatJSON {
		return NewJSONResponse("config set", ConfigValueData{Key: args.ConfigKey, Value: value, Path: path}).Write(s.Out)
	}
	fmt.Fprintf(s.Out, "%s = %s (saved to %s)\n", args.ConfigKey, value, path)
	return nil
}

func handleConfigInit(args Args, s Streams) error {
	path, err := configFilePath(args)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !args.Force {
		return NewCommandError("config", "init", path+" already exists (use --force to overwrite)", nil)
	}
	if err := saveFile(config.Default(), path); err != nil {
		return err
	}

	if args.Format == FormatJSON {
		return NewJSONResponse("config init", map[string]string{"config_path": path}).Write(s.Out)
	}
	fmt.Fprintf(s.Out, "wrote default configuration to %s\n", path)
	return nil
}

func handleConfigKeys(args Args, s Streams) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	keys := config.Keys()
	values := make([]ConfigValueData, 0, len(keys))
	width := 0
	for _, k := range keys {
		v, _ := cfg.Get(k)
		values = append(values, ConfigValueData{Key: k, Value: v})
		width = max(width, len(k))
	}

	if args.Format == FormatJSON {
		return NewJSONResponse("config keys", values).Write(s.Out)
	}
	for _, kv := range values {
		fmt.Fprintf(s.Out, "%-*s  %s\n", width, kv.Key, kv.Value)
	}
	return nil
}
