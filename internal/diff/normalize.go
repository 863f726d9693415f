// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package diff

import (
	"strings"

	"golang.org/x/text/cases"
)

// Line is one line of an input text.
type Line struct {
	Index int    // 1-based position in the source text
	Raw   string // Original text, used for display
}

// NormalizedLine pairs a line with the key it is compared by.
type NormalizedLine struct {
	Key  string
	Line Line
}

// SplitLines splits text on line feeds. The empty string yields a single
// empty line, and a trailing newline yields a trailing empty line.
func SplitLines(text string) []Line {
	parts := strings.Split(text, "\n")
	lines := make([]Line, len(parts))
	for i, p := range parts {
		lines[i] = Line{Index: i + 1, Raw: p}
	}
	return lines
}

// CountLines returns len(SplitLines(text)) without allocating.
func CountLines(text string) int {
	return strings.Count(text, "\n") + 1
}

// Normalize derives a comparison key for every line. The result has the
// same length and order as lines.
func Normalize(lines []Line, opts Options) []NormalizedLine {
	// cases.Caser is stateful; one per call keeps Normalize safe for
	// concurrent use.
	var fold cases.Caser
	if opts.IgnoreCase {
		fold = cases.Fold()
	}

	out := make([]NormalizedLine, len(lines))
	for i, line := range lines {
		key := line.Raw
		if opts.IgnoreWhitespace {
			key = collapseWhitespace(key)
		}
		if opts.IgnoreCase {
			key = fold.String(key)
		}
		out[i] = NormalizedLine{Key: key, Line: line}
	}
	return out
}

// Keys returns the comparison keys of lines in order.
func Keys(lines []NormalizedLine) []string {
	keys := make([]string, len(lines))
	for i, l := range lines {
		keys[i] = l.Key
	}
	return keys
}

// collapseWhitespace replaces every run of whitespace with one space and
// trims both ends.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
