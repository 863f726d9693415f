// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render turns a diff.Result into something to look at.
//
// Text views:
//   - SideBySide: two line-numbered columns, changes paired up row by row
//   - Inline: one column with both line numbers and a +/- marker
//
// Both can fold long unchanged stretches into a single marker line
// (Options.ContextLines). Folding affects display only.
//
// Machine-readable output:
//   - WriteJSON and WriteYAML encode a Document (file names, options,
//     counts and records).
package render
