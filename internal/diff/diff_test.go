// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package diff

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func kinds(res Result) []RecordKind {
	out := make([]RecordKind, len(res.Records))
	for i, r := range res.Records {
		out[i] = r.Kind
	}
	return out
}

func contents(res Result) []string {
	out := make([]string, len(res.Records))
	for i, r := range res.Records {
		out[i] = r.Content
	}
	return out
}

// requireWellFormed checks the structural invariants every Result must hold.
func requireWellFormed(t *testing.T, left, right string, res Result) {
	t.Helper()

	require.Equal(t, len(res.Records), res.Added+res.Removed+res.Unchanged)

	var leftNums, rightNums []int
	for _, r := range res.Records {
		switch r.Kind {
		case Equal:
			require.True(t, r.HasLeft() && r.HasRight(), "equal record needs both line numbers: %+v", r)
		case Added:
			require.False(t, r.HasLeft(), "added record has left line: %+v", r)
			require.True(t, r.HasRight(), "added record missing right line: %+v", r)
		case Removed:
			require.True(t, r.HasLeft(), "removed record missing left line: %+v", r)
			require.False(t, r.HasRight(), "removed record has right line: %+v", r)
		}
		if r.HasLeft() {
			leftNums = append(leftNums, r.LeftLine)
		}
		if r.HasRight() {
			rightNums = append(rightNums, r.RightLine)
		}
	}

	require.Equal(t, seq(CountLines(left)), leftNums, "left projection")
	require.Equal(t, seq(CountLines(right)), rightNums, "right projection")
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestDiff_Identity(t *testing.T) {
	text := "alpha\nbeta\n\ngamma\n"

	res := Diff(text, text, Options{})

	requireWellFormed(t, text, text, res)
	require.Zero(t, res.Added)
	require.Zero(t, res.Removed)
	require.Equal(t, CountLines(text), res.Unchanged)
	for i, r := range res.Records {
		require.Equal(t, Equal, r.Kind)
		require.Equal(t, i+1, r.LeftLine)
		require.Equal(t, i+1, r.RightLine)
	}
	require.True(t, res.Identical())
}

func TestDiff_EmptyEmpty(t *testing.T) {
	res := Diff("", "", Options{})

	require.Equal(t, []Record{{Kind: Equal, Content: "", LeftLine: 1, RightLine: 1}}, res.Records)
	require.Equal(t, Stats{Unchanged: 1}, res.Stats())
}

func TestDiff_EmptyAgainstText(t *testing.T) {
	res := Diff("", "a\nb", Options{})

	requireWellFormed(t, "", "a\nb", res)
	// The empty side still has one empty line.
	require.Equal(t, []RecordKind{Removed, Added, Added}, kinds(res))
	require.Equal(t, []string{"", "a", "b"}, contents(res))
}

func TestDiff_PureAddition(t *testing.T) {
	res := Diff("a\nb", "a\nx\nb", Options{})

	require.Equal(t, []Record{
		{Kind: Equal, Content: "a", LeftLine: 1, RightLine: 1},
		{Kind: Added, Content: "x", RightLine: 2},
		{Kind: Equal, Content: "b", LeftLine: 2, RightLine: 3},
	}, res.Records)
	require.Equal(t, 1, res.Added)
	require.Equal(t, 0, res.Removed)
}

func TestDiff_PureRemoval(t *testing.T) {
	res := Diff("a\nb\nc", "a\nc", Options{})

	require.Equal(t, []Record{
		{Kind: Equal, Content: "a", LeftLine: 1, RightLine: 1},
		{Kind: Removed, Content: "b", LeftLine: 2},
		{Kind: Equal, Content: "c", LeftLine: 3, RightLine: 2},
	}, res.Records)
	require.Equal(t, Stats{Removed: 1, Unchanged: 2}, res.Stats())
}

func TestDiff_IgnoreCase(t *testing.T) {
	res := Diff("Hello", "hello", Options{IgnoreCase: true})
	require.Equal(t, []Record{{Kind: Equal, Content: "Hello", LeftLine: 1, RightLine: 1}}, res.Records)

	res = Diff("Hello", "hello", Options{})
	require.Equal(t, []Record{
		{Kind: Removed, Content: "Hello", LeftLine: 1},
		{Kind: Added, Content: "hello", RightLine: 1},
	}, res.Records)
}

func TestDiff_IgnoreCase_UnicodeFold(t *testing.T) {
	// Full case folding maps ß to ss, which simple lowering does not.
	res := Diff("STRASSE", "straße", Options{IgnoreCase: true})
	require.Equal(t, []RecordKind{Equal}, kinds(res))
	require.Equal(t, "STRASSE", res.Records[0].Content)
}

func TestDiff_IgnoreWhitespace(t *testing.T) {
	res := Diff("a   b", "a b", Options{IgnoreWhitespace: true})

	require.Equal(t, []Record{{Kind: Equal, Content: "a   b", LeftLine: 1, RightLine: 1}}, res.Records)
}

func TestDiff_IgnoreWhitespace_TrimsAndTabs(t *testing.T) {
	left := "\tfunc main() {\n  return  \n}"
	right := "func  main()\t{\nreturn\n}   "

	res := Diff(left, right, Options{IgnoreWhitespace: true})
	require.Equal(t, []RecordKind{Equal, Equal, Equal}, kinds(res))
	// Display keeps the left side's raw text.
	require.Equal(t, []string{"\tfunc main() {", "  return  ", "}"}, contents(res))

	res = Diff(left, right, Options{})
	require.Zero(t, res.Unchanged)
}

func TestDiff_BothOptions(t *testing.T) {
	res := Diff("  Foo   BAR ", "foo bar", Options{IgnoreWhitespace: true, IgnoreCase: true})
	require.Equal(t, []RecordKind{Equal}, kinds(res))
}

func TestDiff_TieBreakPrefersAdded(t *testing.T) {
	// "a" and "b" can each be the common line; the walk from the end
	// classifies the trailing right line as added first.
	res := Diff("a\nb", "b\na", Options{})

	requireWellFormed(t, "a\nb", "b\na", res)
	require.Equal(t, []Record{
		{Kind: Removed, Content: "a", LeftLine: 1},
		{Kind: Equal, Content: "b", LeftLine: 2, RightLine: 1},
		{Kind: Added, Content: "a", RightLine: 2},
	}, res.Records)
}

func TestDiff_Replacement(t *testing.T) {
	res := Diff("one\ntwo\nthree", "one\n2\nthree", Options{})

	require.Equal(t, []RecordKind{Equal, Removed, Added, Equal}, kinds(res))
	require.Equal(t, []string{"one", "two", "2", "three"}, contents(res))
}

func TestDiff_TrailingNewline(t *testing.T) {
	res := Diff("a\nb", "a\nb\n", Options{})

	requireWellFormed(t, "a\nb", "a\nb\n", res)
	require.Equal(t, []RecordKind{Equal, Equal, Added}, kinds(res))
	require.Equal(t, "", res.Records[2].Content)
	require.Equal(t, 3, res.Records[2].RightLine)
}

func TestDiff_Determinism(t *testing.T) {
	left := "x\na\nb\nc\na\nb\nx"
	right := "a\nx\nb\nx\nc\na\nb"

	first := Diff(left, right, Options{IgnoreCase: true})
	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		again := Diff(left, right, Options{IgnoreCase: true})
		require.Equal(t, first, again)

		againJSON, err := json.Marshal(again)
		require.NoError(t, err)
		require.Equal(t, firstJSON, againJSON)
	}
}

func TestDiff_ConcurrentCalls(t *testing.T) {
	left := "A\nb\nc\nD"
	right := "a\nB\nc\nd\ne"
	want := Diff(left, right, Options{IgnoreCase: true})

	done := make(chan Result, 16)
	for i := 0; i < cap(done); i++ {
		go func() {
			done <- Diff(left, right, Options{IgnoreCase: true})
		}()
	}
	for i := 0; i < cap(done); i++ {
		require.Equal(t, want, <-done)
	}
}

func TestRecordKind_String(t *testing.T) {
	tests := []struct {
		kind     RecordKind
		expected string
		prefix   string
	}{
		{Equal, "equal", " "},
		{Added, "added", "+"},
		{Removed, "removed", "-"},
		{RecordKind(42), "unknown", " "},
	}

	for _, tt := range tests {
		require.Equal(t, tt.expected, tt.kind.String())
		require.Equal(t, tt.prefix, tt.kind.Prefix())
	}
}

func TestRecordKind_JSON(t *testing.T) {
	data, err := json.Marshal(Record{Kind: Added, Content: "x", RightLine: 3})
	require.NoError(t, err)
	require.JSONEq(t, `{"kind":"added","content":"x","right_line":3}`, string(data))

	var r Record
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"removed","content":"y","left_line":2}`), &r))
	require.Equal(t, Record{Kind: Removed, Content: "y", LeftLine: 2}, r)

	require.Error(t, json.Unmarshal([]byte(`{"kind":"moved"}`), &r))
}
