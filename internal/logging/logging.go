// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging is an opt-in file logger for the long-running modes,
// whose stdout belongs to the terminal.
package logging

import (
	"log"
	"os"
	"sync"
	"time"
)

// EnvLogFile names the file Logf appends to.
const EnvLogFile = "LINEDIFF_LOG_FILE"

var mu sync.Mutex

// now is replaced in tests.
var now = time.Now

// Logf appends one timestamped line to the file named by LINEDIFF_LOG_FILE.
// It is a no-op when the variable is unset or the file cannot be opened.
func Logf(format string, args ...any) {
	path := os.Getenv(EnvLogFile)
	if path == "" {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	log.New(f, now().Format(time.RFC3339)+" ", 0).Printf(format, args...)
}

// Enabled reports whether Logf writes anywhere.
func Enabled() bool {
	return os.Getenv(EnvLogFile) != ""
}
