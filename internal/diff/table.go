// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package diff

// Table holds longest-common-subsequence lengths for every pair of prefixes
// of two key sequences. Cell (i, j) is the LCS length of the first i left keys
// and the first j right keys.
//
// Cells are stored row-major in one flat buffer of (M+1)*(N+1) entries.
// int32 is enough: a cell never exceeds min(M, N).
type Table struct {
	rows  int
	cols  int
	cells []int32
}

// BuildTable fills the LCS table for leftKeys and rightKeys by exact key
// equality. It runs in O(M*N) time and space.
func BuildTable(leftKeys, rightKeys []string) *Table {
	m, n := len(leftKeys), len(rightKeys)
	cols := n + 1
	t := &Table{
		rows:  m + 1,
		cols:  cols,
		cells: make([]int32, (m+1)*cols),
	}

	// Row 0 and column 0 stay zero.
	for i := 1; i <= m; i++ {
		row := i * cols
		prev := row - cols
		lk := leftKeys[i-1]
		for j := 1; j <= n; j++ {
			if lk == rightKeys[j-1] {
				t.cells[row+j] = t.cells[prev+j-1] + 1
				continue
			}
			up, left := t.cells[prev+j], t.cells[row+j-1]
			if up >= left {
				t.cells[row+j] = up
			} else {
				t.cells[row+j] = left
			}
		}
	}
	return t
}

// At returns cell (i, j).
func (t *Table) At(i, j int) int {
	return int(t.cells[i*t.cols+j])
}

// Rows returns M+1.
func (t *Table) Rows() int { return t.rows }

// Cols returns N+1.
func (t *Table) Cols() int { return t.cols }

// LCSLength returns the length of the longest common subsequence of the
// full sequences.
func (t *Table) LCSLength() int {
	return t.At(t.rows-1, t.cols-1)
}
