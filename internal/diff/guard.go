// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package diff

import (
	"errors"
	"fmt"
	"math"
)

// ErrInputTooLarge is returned when inputs exceed the configured Limits.
var ErrInputTooLarge = errors.New("input too large")

// Limits bounds the work a single diff may do. Zero fields are unlimited.
type Limits struct {
	// MaxCells caps (M+1)*(N+1), the number of LCS table cells.
	MaxCells int64
	// MaxBytes caps the combined byte length of both inputs.
	MaxBytes int64
}

// SizeError describes an input rejected by Limits.
type SizeError struct {
	LeftLines  int
	RightLines int
	Cells      int64 // math.MaxInt64 when the product overflows
	Bytes      int64  // 0 when the read stopped at the limit
	Limit      string // "max_cells" or "max_bytes"
	Max        int64  // value of the exceeded limit
}

func (e *SizeError) Error() string {
	switch e.Limit {
	case "max_bytes":
		if e.Bytes <= 0 {
			return fmt.Sprintf("input too large: exceeds max_bytes (%d)", e.Max)
		}
		return fmt.Sprintf("input too large: %d bytes exceeds max_bytes (%d)", e.Bytes, e.Max)
	default:
		return fmt.Sprintf("input too large: %d x %d lines needs %d table cells, exceeds max_cells",
			e.LeftLines, e.RightLines, e.Cells)
	}
}

func (e *SizeError) Unwrap() error {
	return ErrInputTooLarge
}

// Unlimited reports whether no limit is set.
func (l Limits) Unlimited() bool {
	return l.MaxCells <= 0 && l.MaxBytes <= 0
}

// Check rejects inputs that exceed l without building any table.
func (l Limits) Check(left, right string) error {
	if l.Unlimited() {
		return nil
	}

	m, n := CountLines(left), CountLines(right)
	bytes := int64(len(left)) + int64(len(right))
	cells := TableCells(m, n)

	if l.MaxBytes > 0 && bytes > l.MaxBytes {
		return &SizeError{LeftLines: m, RightLines: n, Cells: cells, Bytes: bytes, Limit: "max_bytes", Max: l.MaxBytes}
	}
	if l.MaxCells > 0 && cells > l.MaxCells {
		return &SizeError{LeftLines: m, RightLines: n, Cells: cells, Bytes: bytes, Limit: "max_cells", Max: l.MaxCells}
	}
	return nil
}

// TableCells returns (m+1)*(n+1), saturating at math.MaxInt64.
func TableCells(m, n int) int64 {
	rows, cols := int64(m)+1, int64(n)+1
	if rows <= 0 || cols <= 0 || rows > math.MaxInt64/cols {
		return math.MaxInt64
	}
	return rows * cols
}
