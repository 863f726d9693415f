// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jeranaias/linediff/internal/diff"
	"github.com/jeranaias/linediff/internal/ui/styles"
	"github.com/jeranaias/linediff/internal/util"
)

// Layout names accepted by Text.
const (
	LayoutSideBySide = "side-by-side"
	LayoutInline     = "inline"
)

// DefaultWidth is used when Options.Width is not set.
const DefaultWidth = 100

// Options controls text rendering.
type Options struct {
	Layout       string
	Width        int // total columns, DefaultWidth when <= 0
	ContextLines int // -1 shows every line
	TabWidth     int
	LineNumbers  bool
	LeftName     string // column headings, omitted when both are empty
	RightName    string
	Theme        *styles.Theme // PlainTheme when nil
}

// DefaultOptions returns full, uncoloured, side-by-side output.
func DefaultOptions() Options {
	return Options{
		Layout:       LayoutSideBySide,
		Width:        DefaultWidth,
		ContextLines: -1,
		TabWidth:     4,
		LineNumbers:  true,
	}
}

func (o Options) normalized() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.TabWidth <= 0 {
		o.TabWidth = 4
	}
	if o.Theme == nil {
		o.Theme = styles.PlainTheme()
	}
	return o
}

// Text renders res with the configured layout.
func Text(res diff.Result, o Options) string {
	if o.Layout == LayoutInline {
		return Inline(res, o)
	}
	return SideBySide(res, o)
}

// =============================================================================
// SIDE BY SIDE
// =============================================================================

const columnSeparator = " │ "

// SideBySide renders the left text in the left column and the right text in
// the right column. Removed lines appear only on the left, added lines only
// on the right.
func SideBySide(res diff.Result, o Options) string {
	o = o.normalized()
	t := o.Theme

	gw := gutterWidth(res.Records, o.LineNumbers)
	col := sideColumnWidth(o.Width, gw)
	blank := strings.Repeat(" ", cellWidth(gw, col))
	sep := t.Separator.Render(columnSeparator)

	var sb strings.Builder

	if o.LeftName != "" || o.RightName != "" {
		sb.WriteString(t.FileName.Render(util.PadWidth(o.LeftName, cellWidth(gw, col))))
		sb.WriteString(sep)
		sb.WriteString(t.FileName.Render(util.TruncateWidth(o.RightName, cellWidth(gw, col))))
		sb.WriteString("\n")
	}

	for _, p := range pairRows(Fold(res.Records, o.ContextLines)) {
		if p.folded > 0 {
			sb.WriteString(t.Fold.Render(foldText(gw, p.folded)))
			sb.WriteString("\n")
			continue
		}

		if p.left != nil {
			sb.WriteString(o.cell(*p.left, p.left.LeftLine, gw, col, true))
		} else {
			sb.WriteString(t.Blank.Render(blank))
		}
		sb.WriteString(sep)
		if p.right != nil {
			sb.WriteString(o.cell(*p.right, p.right.RightLine, gw, col, false))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// cell renders "<num> <prefix> <content>". Left cells are padded to the full
// column so the separator lines up.
func (o Options) cell(rec diff.Record, num, gw, col int, pad bool) string {
	t := o.Theme

	var sb strings.Builder
	if gw > 0 {
		sb.WriteString(t.Gutter.Render(fmt.Sprintf("%*d", gw, num)))
		sb.WriteString(" ")
	}

	text := util.ExpandTabs(rec.Content, o.TabWidth)
	if pad {
		text = util.PadWidth(text, col)
	} else {
		text = util.TruncateWidth(text, col)
	}
	sb.WriteString(t.Line(rec.Kind).Render(rec.Kind.Prefix() + " " + text))
	return sb.String()
}

// cellWidth is the display width of one side: gutter, prefix and content.
func cellWidth(gw, col int) int {
	w := 2 + col
	if gw > 0 {
		w += gw + 1
	}
	return w
}

func sideColumnWidth(total, gw int) int {
	overhead := 2*cellWidth(gw, 0) + util.StringWidth(columnSeparator)
	return max(1, (total-overhead)/2)
}

// =============================================================================
// INLINE
// =============================================================================

// Inline renders one line per record: left number, right number, marker and
// content.
func Inline(res diff.Result, o Options) string {
	o = o.normalized()
	t := o.Theme

	gw := gutterWidth(res.Records, o.LineNumbers)
	col := o.Width - 2
	if gw > 0 {
		col -= 2 * (gw + 1)
	}
	col = max(1, col)

	var sb strings.Builder

	if o.LeftName != "" || o.RightName != "" {
		sb.WriteString(t.FileName.Render("--- " + o.LeftName))
		sb.WriteString("\n")
		sb.WriteString(t.FileName.Render("+++ " + o.RightName))
		sb.WriteString("\n")
	}

	for _, row := range Fold(res.Records, o.ContextLines) {
		if row.IsFold() {
			sb.WriteString(t.Fold.Render(foldText(2*gw+1, row.Folded)))
			sb.WriteString("\n")
			continue
		}

		rec := row.Record
		if gw > 0 {
			sb.WriteString(t.Gutter.Render(lineNumber(rec.LeftLine, gw) + " " + lineNumber(rec.RightLine, gw)))
			sb.WriteString(" ")
		}
		text := util.TruncateWidth(util.ExpandTabs(rec.Content, o.TabWidth), col)
		sb.WriteString(t.Line(rec.Kind).Render(rec.Kind.Prefix() + " " + text))
		sb.WriteString("\n")
	}

	return sb.String()
}

// =============================================================================
// SUMMARY / HELPERS
// =============================================================================

// Summary renders the counts as "+A -R =U", or a note when nothing differs.
func Summary(s diff.Stats, t *styles.Theme) string {
	if t == nil {
		t = styles.PlainTheme()
	}
	if s.Added == 0 && s.Removed == 0 {
		return t.SummaryMuted.Render(fmt.Sprintf("no differences (%d %s)", s.Unchanged, plural(s.Unchanged, "line", "lines")))
	}
	return t.SummaryAdded.Render(fmt.Sprintf("+%d", s.Added)) + " " +
		t.SummaryRemoved.Render(fmt.Sprintf("-%d", s.Removed)) + " " +
		t.SummaryMuted.Render(fmt.Sprintf("=%d", s.Unchanged))
}

func foldText(indent, n int) string {
	return strings.Repeat(" ", indent) + fmt.Sprintf(" ⋯ %d unchanged %s", n, plural(n, "line", "lines"))
}

func lineNumber(n, width int) string {
	if n <= 0 {
		return strings.Repeat(" ", width)
	}
	return fmt.Sprintf("%*d", width, n)
}

// gutterWidth returns the digits needed for the largest line number, or 0
// when line numbers are off.
func gutterWidth(records []diff.Record, enabled bool) int {
	if !enabled {
		return 0
	}
	hi := 1
	for _, r := range records {
		hi = max(hi, r.LeftLine, r.RightLine)
	}
	return len(strconv.Itoa(hi))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
