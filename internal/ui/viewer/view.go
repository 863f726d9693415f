// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package viewer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/linediff/internal/diff"
	"github.com/jeranaias/linediff/internal/render"
	"github.com/jeranaias/linediff/internal/util"
)

// View renders the viewer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderFooter(),
	)
}

// chromeHeight is the number of rows used by the header and footer.
func (m Model) chromeHeight() int {
	return lipgloss.Height(m.renderHeader()) + lipgloss.Height(m.renderFooter())
}

// =============================================================================
// HEADER / FOOTER
// =============================================================================

func (m Model) renderHeader() string {
	t := m.theme
	width := max(1, m.width)
	inner := max(1, width-t.Header.GetHorizontalPadding())

	names := t.Title.Render("linediff") + " " +
		t.FileName.Render(m.cfg.LeftName) + t.Help.Render(" → ") + t.FileName.Render(m.cfg.RightName)

	var status string
	switch {
	case m.loadErr != nil:
		status = t.Error.Render("load failed")
	case m.err != nil:
		status = t.Error.Render("too large")
	case m.shown == 0:
		status = t.Help.Render("computing...")
	default:
		status = render.Summary(m.result.Stats(), t)
	}
	if m.shown != 0 && m.runner.IsStale(m.shown) {
		status += t.Help.Render(" (updating)")
	}

	toggles := strings.Join([]string{
		m.toggle("whitespace", m.opts.IgnoreWhitespace),
		m.toggle("case", m.opts.IgnoreCase),
		m.toggle("fold", m.folded),
		t.Help.Render(m.layout),
	}, " ")

	line1 := names
	if lipgloss.Width(line1) > inner {
		line1 = util.TruncateWidth(m.cfg.LeftName+" → "+m.cfg.RightName, inner)
	}
	line2 := status + "  " + toggles
	if lipgloss.Width(line2) > inner {
		line2 = status
	}
	return t.Header.Width(width).Render(line1 + "\n" + line2)
}

func (m Model) toggle(name string, on bool) string {
	if on {
		return m.theme.Toggle.Render("[x] " + name)
	}
	return m.theme.Help.Render("[ ] " + name)
}

func (m Model) renderFooter() string {
	percent := fmt.Sprintf("%3.f%%", m.viewport.ScrollPercent()*100)
	return m.theme.Footer.Render(m.help.View(m.keys) + "  " + m.theme.Help.Render(percent))
}

// =============================================================================
// BODY
// =============================================================================

// body is the viewport content.
func (m Model) body() string {
	t := m.theme

	if m.loadErr != nil {
		return t.Error.Render("Error: "+m.loadErr.Error()) + "\n" +
			t.Help.Render("Press r to retry.")
	}

	if m.err != nil {
		var sizeErr *diff.SizeError
		if errors.As(m.err, &sizeErr) {
			return t.Error.Render("Error: "+sizeErr.Error()) + "\n" +
				t.Help.Render("Raise max_cells in the config to compare these files.")
		}
		return t.Error.Render("Error: " + m.err.Error())
	}

	if m.shown == 0 {
		return ""
	}
	return render.Text(m.result, m.renderOptions())
}
