// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import "github.com/jeranaias/linediff/internal/diff"

// Row is one display row: either a record or a placeholder for Folded
// hidden unchanged records.
type Row struct {
	Record diff.Record
	Folded int
}

// IsFold reports whether the row stands in for hidden records.
func (r Row) IsFold() bool { return r.Folded > 0 }

// Fold keeps every changed record and the unchanged records within context
// lines of a change. Each hidden run becomes one fold row. A negative
// context keeps everything.
func Fold(records []diff.Record, context int) []Row {
	if context < 0 {
		rows := make([]Row, len(records))
		for i, r := range records {
			rows[i] = Row{Record: r}
		}
		return rows
	}

	keep := make([]bool, len(records))
	for i, r := range records {
		if r.Kind == diff.Equal {
			continue
		}
		lo, hi := max(0, i-context), min(len(records)-1, i+context)
		for k := lo; k <= hi; k++ {
			keep[k] = true
		}
	}

	var rows []Row
	hidden := 0
	for i, r := range records {
		if keep[i] {
			if hidden > 0 {
				rows = append(rows, Row{Folded: hidden})
				hidden = 0
			}
			rows = append(rows, Row{Record: r})
			continue
		}
		hidden++
	}
	if hidden > 0 {
		rows = append(rows, Row{Folded: hidden})
	}
	return rows
}

// pair is one side-by-side row. A nil side is blank.
type pair struct {
	left, right *diff.Record
	folded      int
}

// pairRows lines up each run of changes so the i-th removed line sits next
// to the i-th added line of the same run.
func pairRows(rows []Row) []pair {
	var out []pair
	for i := 0; i < len(rows); {
		row := rows[i]
		if row.IsFold() {
			out = append(out, pair{folded: row.Folded})
			i++
			continue
		}
		if row.Record.Kind == diff.Equal {
			rec := row.Record
			out = append(out, pair{left: &rec, right: &rec})
			i++
			continue
		}

		var removed, added []diff.Record
		for ; i < len(rows) && !rows[i].IsFold() && rows[i].Record.Kind != diff.Equal; i++ {
			if rows[i].Record.Kind == diff.Removed {
				removed = append(removed, rows[i].Record)
			} else {
				added = append(added, rows[i].Record)
			}
		}
		for k := 0; k < max(len(removed), len(added)); k++ {
			var p pair
			if k < len(removed) {
				p.left = &removed[k]
			}
			if k < len(added) {
				p.right = &added[k]
			}
			out = append(out, p)
		}
	}
	return out
}
