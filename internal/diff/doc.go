// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package diff computes line-oriented diffs between two texts.
//
// The engine is a four stage pipeline: lines are split and normalized into
// comparison keys, a longest-common-subsequence table is built over the keys,
// the table is walked back into an ordered sequence of equal/added/removed
// records, and the records are counted.
//
// # Key Types
//
//   - Options: comparison switches (ignore whitespace, ignore case)
//   - RecordKind: Equal, Added or Removed
//   - Record: one aligned line with its left and/or right line number
//   - Result: the ordered records plus summary counts
//   - Limits: input size ceiling checked before the O(M*N) table is built
//
// # Usage
//
// Compute a diff:
//
//	res := diff.Diff(oldText, newText, diff.Options{IgnoreWhitespace: true})
//	fmt.Printf("+%d -%d\n", res.Added, res.Removed)
//
// Guard against oversized input first:
//
//	res, err := diff.DiffChecked(oldText, newText, opts, diff.Limits{MaxCells: 25_000_000})
//	if errors.Is(err, diff.ErrInputTooLarge) {
//	    // reject the request
//	}
//
// Diff holds no state between calls and is safe for concurrent use.
package diff
