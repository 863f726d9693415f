// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and execution for linediff.
//
// # Key Types
//
//   - Command: enumeration of the available commands
//   - Args: parsed arguments; zero values defer to the config file
//   - JSONResponse: the envelope written by --json
//
// # Usage
//
//	os.Exit(cli.Main(ctx, os.Args[1:], cli.StdStreams()))
//
// # Commands Overview
//
//   - diff (default): aligned diff of two files or a file and stdin
//   - stats: added/removed/unchanged counts only
//   - view: interactive viewer with live option toggles
//   - watch: re-diff on every file change
//   - config: show, get, set and initialise the config file
//
// Errors carry their exit code through their type: usage errors exit 2,
// config errors 3, missing files 7 and oversize input 9.
package cli
