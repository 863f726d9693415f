// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// suggest.go - "did you mean" hints for mistyped commands.
package cli

import (
	"strings"
)

// validCommands are the names Parse recognises as a first positional.
var validCommands = []string{
	"diff",
	"stats",
	"view",
	"watch",
	"config",
	"version",
	"help",
	"stat", // stats
	"tui",  // view
}

// SuggestCommand returns the command closest to input by edit distance, or
// "" when nothing is close enough or input already names a command.
func SuggestCommand(input string) string {
	input = strings.ToLower(input)
	if len(input) < 2 {
		return ""
	}

	// One edit for names up to three letters, two up to eight, then three.
	// Two edits covers a swapped pair like "veiw".
	limit := 1
	switch {
	case len(input) > 8:
		limit = 3
	case len(input) >= 4:
		limit = 2
	}

	best, bestDist := "", limit+1
	for _, cmd := range validCommands {
		d := editDistance(input, cmd)
		if d == 0 {
			return ""
		}
		if d < bestDist {
			best, bestDist = cmd, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b, computed with
// two rolling rows.
func editDistance(a, b string) int {
	if a == "" {
		return len(b)
	}
	if b == "" {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			sub := prev[j-1]
			if a[i-1] != b[j-1] {
				sub++
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, sub)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
