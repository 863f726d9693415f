// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - Terminal detection for linediff output.
//
// Colour and width decisions are made per writer: output that goes to a
// pipe or file is never coloured under the "auto" mode and never sized to
// the terminal.

package cli

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/jeranaias/linediff/internal/config"
	"github.com/jeranaias/linediff/internal/ui/styles"
)

// =============================================================================
// TTY DETECTION
// =============================================================================

// isTerminal reports whether w is a terminal.
func isTerminal(w any) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// IsStdoutTTY returns true if stdout is a terminal.
func IsStdoutTTY() bool {
	return isTerminal(os.Stdout)
}

// =============================================================================
// TERMINAL WIDTH DETECTION
// =============================================================================

const (
	// DefaultTerminalWidth is the fallback width when detection fails
	DefaultTerminalWidth = 80

	// MinTerminalWidth is the minimum width we'll use
	MinTerminalWidth = 40
)

// terminalWidth returns the width of w, or 0 when w is not a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	return max(width, MinTerminalWidth)
}

// =============================================================================
// COLOR OUTPUT CONTROL
// =============================================================================

// colorEnabled resolves a color mode for w. "auto" colours terminals only,
// and FORCE_COLOR turns it on regardless. NO_COLOR has already been folded
// into the mode by config.ApplyEnvOverrides.
func colorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	return isTerminal(w)
}

// themeFor builds the theme for output written to w.
func themeFor(mode string, w io.Writer) *styles.Theme {
	if !colorEnabled(mode, w) {
		return styles.PlainTheme()
	}
	profile := termenv.NewOutput(w).EnvColorProfile()
	if profile == termenv.Ascii {
		// Forced colour on a pipe: termenv sees no terminal.
		profile = termenv.ANSI256
	}
	return styles.NewTheme(profile, termenv.HasDarkBackground())
}
