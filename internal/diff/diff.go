// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package diff computes line-oriented diffs between two texts.
package diff

import "fmt"

// =============================================================================
// RECORD KIND
// =============================================================================

// RecordKind classifies a line in a diff.
type RecordKind int

const (
	// Equal marks a line present on both sides
	Equal RecordKind = iota
	// Added marks a line present only on the right
	Added
	// Removed marks a line present only on the left
	Removed
)

// String returns the string representation of a record kind.
func (k RecordKind) String() string {
	switch k {
	case Equal:
		return "equal"
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Prefix returns the conventional one-character marker for this kind.
func (k RecordKind) Prefix() string {
	switch k {
	case Added:
		return "+"
	case Removed:
		return "-"
	default:
		return " "
	}
}

// MarshalText encodes the kind as its string form.
func (k RecordKind) MarshalText() ([]byte, error) {
	switch k {
	case Equal, Added, Removed:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("unknown record kind %d", int(k))
	}
}

// UnmarshalText decodes a kind from its string form.
func (k *RecordKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "equal":
		*k = Equal
	case "added":
		*k = Added
	case "removed":
		*k = Removed
	default:
		return fmt.Errorf("unknown record kind %q", string(text))
	}
	return nil
}

// MarshalYAML encodes the kind as its string form.
func (k RecordKind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// =============================================================================
// RECORD / RESULT
// =============================================================================

// Record is one aligned line of a diff.
//
// Line numbers are 1-based; zero means the line has no counterpart on that
// side. Equal records carry both numbers and the left line's raw text, Added
// records only RightLine, Removed records only LeftLine.
type Record struct {
	Kind      RecordKind `json:"kind" yaml:"kind"`
	Content   string     `json:"content" yaml:"content"`
	LeftLine  int        `json:"left_line,omitempty" yaml:"left_line,omitempty"`
	RightLine int        `json:"right_line,omitempty" yaml:"right_line,omitempty"`
}

// HasLeft reports whether the record belongs to the left text.
func (r Record) HasLeft() bool { return r.LeftLine > 0 }

// HasRight reports whether the record belongs to the right text.
func (r Record) HasRight() bool { return r.RightLine > 0 }

// Result is the outcome of a single Diff call. It is owned by the caller.
type Result struct {
	Records   []Record `json:"records" yaml:"records"`
	Added     int      `json:"added" yaml:"added"`
	Removed   int      `json:"removed" yaml:"removed"`
	Unchanged int      `json:"unchanged" yaml:"unchanged"`
}

// Stats returns the summary counts of the result.
func (r Result) Stats() Stats {
	return Stats{Added: r.Added, Removed: r.Removed, Unchanged: r.Unchanged}
}

// Identical reports whether the two texts compared equal under the options
// used to produce the result.
func (r Result) Identical() bool {
	return r.Added == 0 && r.Removed == 0
}

// =============================================================================
// OPTIONS
// =============================================================================

// Options controls how lines are compared. The zero value compares lines
// exactly. Display content is never affected.
type Options struct {
	// IgnoreWhitespace collapses whitespace runs to one space and trims
	// both ends before comparison.
	IgnoreWhitespace bool `json:"ignore_whitespace" yaml:"ignore_whitespace"`
	// IgnoreCase case-folds lines before comparison.
	IgnoreCase bool `json:"ignore_case" yaml:"ignore_case"`
}

// =============================================================================
// DIFF
// =============================================================================

// Diff compares left and right line by line and returns the aligned records
// in reading order together with summary counts.
//
// Diff is total: every pair of strings, including empty ones, is valid
// input. Time and memory are O(M*N) in the line counts; callers handling
// untrusted input should use DiffChecked or Limits.Check first.
func Diff(left, right string, opts Options) Result {
	leftLines := Normalize(SplitLines(left), opts)
	rightLines := Normalize(SplitLines(right), opts)

	table := BuildTable(Keys(leftLines), Keys(rightLines))
	records := Backtrack(table, leftLines, rightLines)
	stats := Aggregate(records)

	return Result{
		Records:   records,
		Added:     stats.Added,
		Removed:   stats.Removed,
		Unchanged: stats.Unchanged,
	}
}

// DiffChecked applies limits before running Diff. It returns an error
// wrapping ErrInputTooLarge when the inputs exceed them.
func DiffChecked(left, right string, opts Options, limits Limits) (Result, error) {
	if err := limits.Check(left, right); err != nil {
		return Result{}, err
	}
	return Diff(left, right, opts), nil
}
