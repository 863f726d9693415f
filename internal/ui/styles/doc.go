// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the colour palette and theme for linediff output.
//
// All colours use Lip Gloss AdaptiveColor so they read well on both light
// and dark terminals. A Theme owns its own lipgloss.Renderer, so plain and
// coloured output can coexist in one process (tests, JSON mode, pipes).
//
// # Usage
//
//	theme := styles.NewTheme(termenv.ANSI256, true)
//	fmt.Println(theme.Added.Render("+ new line"))
//
//	plain := styles.PlainTheme() // no escape sequences at all
package styles
