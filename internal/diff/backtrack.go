// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package diff

// Backtrack walks t from (M, N) back to (0, 0) and returns the aligned
// records in reading order. t must have been built from the keys of left
// and right.
//
// At each step a matching key pair is emitted as Equal. Otherwise the right
// line is emitted as Added when that keeps an LCS of at least the same
// length, else the left line is emitted as Removed. Ties therefore resolve
// to Added, which keeps output stable across runs.
func Backtrack(t *Table, left, right []NormalizedLine) []Record {
	i, j := len(left), len(right)

	// Every step consumes one line from at least one side, and exactly
	// LCSLength steps consume from both.
	out := make([]Record, i+j-t.LCSLength())
	k := len(out)

	for i > 0 || j > 0 {
		k--
		switch {
		case i > 0 && j > 0 && left[i-1].Key == right[j-1].Key:
			out[k] = Record{
				Kind:      Equal,
				Content:   left[i-1].Line.Raw,
				LeftLine:  left[i-1].Line.Index,
				RightLine: right[j-1].Line.Index,
			}
			i--
			j--
		case j > 0 && (i == 0 || t.At(i, j-1) >= t.At(i-1, j)):
			out[k] = Record{
				Kind:      Added,
				Content:   right[j-1].Line.Raw,
				RightLine: right[j-1].Line.Index,
			}
			j--
		default:
			out[k] = Record{
				Kind:     Removed,
				Content:  left[i-1].Line.Raw,
				LeftLine: left[i-1].Line.Index,
			}
			i--
		}
	}
	return out
}
