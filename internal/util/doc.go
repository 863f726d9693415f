// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by linediff packages.
//
// # Key Functions
//
// Display width (East Asian wide characters count as two columns):
//   - TruncateWidth: cut a string to a column budget with an ellipsis
//   - PadWidth: right-pad a string to an exact column width
//   - ExpandTabs: replace tabs with spaces so columns line up
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	cell := util.PadWidth(util.TruncateWidth(util.ExpandTabs(line, 4), 40), 40)
//
//	err := util.AtomicWriteFile(path, data, 0600)
package util
