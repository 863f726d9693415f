// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/linediff/internal/diff"
)

// Theme holds the styles used to draw a diff.
type Theme struct {
	IsDark       bool
	ColorProfile termenv.Profile

	renderer *lipgloss.Renderer

	// ==========================================================================
	// LINE STYLES
	// ==========================================================================

	Equal   lipgloss.Style
	Added   lipgloss.Style
	Removed lipgloss.Style
	Blank   lipgloss.Style // filler cell opposite an added/removed line

	// ==========================================================================
	// CHROME
	// ==========================================================================

	Gutter    lipgloss.Style
	Separator lipgloss.Style
	Fold      lipgloss.Style
	Title     lipgloss.Style
	FileName  lipgloss.Style
	Header    lipgloss.Style
	Footer    lipgloss.Style
	Help      lipgloss.Style
	Toggle    lipgloss.Style
	Error     lipgloss.Style

	SummaryAdded   lipgloss.Style
	SummaryRemoved lipgloss.Style
	SummaryMuted   lipgloss.Style
}

// NewTheme builds a theme for the given colour profile. isDark selects the
// dark variant of every adaptive colour.
func NewTheme(profile termenv.Profile, isDark bool) *Theme {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(profile)
	r.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		ColorProfile: profile,
		renderer:     r,
	}
	t.initStyles()
	return t
}

// PlainTheme returns a theme that never emits escape sequences.
func PlainTheme() *Theme {
	return NewTheme(termenv.Ascii, true)
}

// DetectTheme builds a theme from the terminal's capabilities, or a plain
// theme when color is false.
func DetectTheme(color bool) *Theme {
	if !color {
		return PlainTheme()
	}
	return NewTheme(termenv.ColorProfile(), termenv.HasDarkBackground())
}

// Plain reports whether the theme emits no colour.
func (t *Theme) Plain() bool {
	return t.ColorProfile == termenv.Ascii
}

// NewStyle returns a style bound to the theme's renderer.
func (t *Theme) NewStyle() lipgloss.Style {
	return t.renderer.NewStyle()
}

// Line returns the style for a record kind.
func (t *Theme) Line(kind diff.RecordKind) lipgloss.Style {
	switch kind {
	case diff.Added:
		return t.Added
	case diff.Removed:
		return t.Removed
	default:
		return t.Equal
	}
}

func (t *Theme) initStyles() {
	s := t.NewStyle

	t.Equal = s().Foreground(TextPrimary)
	t.Added = s().Foreground(Emerald).Background(EmeraldDeep)
	t.Removed = s().Foreground(Rose).Background(RoseDeep)
	t.Blank = s()

	t.Gutter = s().Foreground(TextMuted)
	t.Separator = s().Foreground(Overlay)
	t.Fold = s().Foreground(TextMuted).Italic(true)

	t.Title = s().Foreground(Purple).Bold(true)
	t.FileName = s().Foreground(Cyan).Bold(true)
	t.Header = s().Background(SurfaceDim).Padding(0, 1)
	t.Footer = s().Foreground(TextMuted).Padding(0, 1)
	t.Help = s().Foreground(TextMuted)
	t.Toggle = s().Foreground(Amber).Bold(true)
	t.Error = s().Foreground(Rose).Bold(true)

	t.SummaryAdded = s().Foreground(Emerald).Bold(true)
	t.SummaryRemoved = s().Foreground(Rose).Bold(true)
	t.SummaryMuted = s().Foreground(TextMuted)
}
