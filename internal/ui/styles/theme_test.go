// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/linediff/internal/diff"
)

func TestPlainTheme_NoEscapes(t *testing.T) {
	theme := PlainTheme()

	require.True(t, theme.Plain())
	for _, kind := range []diff.RecordKind{diff.Equal, diff.Added, diff.Removed} {
		require.Equal(t, "line", theme.Line(kind).Render("line"))
	}
	require.Equal(t, "12", theme.Gutter.Render("12"))
}

func TestColorTheme_EmitsEscapes(t *testing.T) {
	theme := NewTheme(termenv.ANSI256, true)

	require.False(t, theme.Plain())
	out := theme.Added.Render("x")
	require.Contains(t, out, "\x1b[")
	require.Contains(t, out, "x")
	require.NotEqual(t, theme.Added.Render("x"), theme.Removed.Render("x"))
}

func TestThemes_AreIndependent(t *testing.T) {
	color := NewTheme(termenv.TrueColor, false)
	plain := PlainTheme()

	require.Contains(t, color.Removed.Render("y"), "\x1b[")
	require.Equal(t, "y", plain.Removed.Render("y"))
}
