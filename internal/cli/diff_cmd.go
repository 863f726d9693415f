// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// diff_cmd.go - The diff and stats commands.
//
// Command: [diff] LEFT RIGHT
// Short:   Print the aligned diff of two files
//
// Command: stats LEFT RIGHT
// Short:   Print only the added/removed/unchanged counts
//
// Examples:
//   linediff old.txt new.txt
//   linediff diff -w --layout inline old.txt new.txt
//   linediff stats --json old.txt new.txt
//   cat new.txt | linediff old.txt -
package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/jeranaias/linediff/internal/config"
	"github.com/jeranaias/linediff/internal/diff"
	"github.com/jeranaias/linediff/internal/render"
)

// =============================================================================
// INPUTS
// =============================================================================

// inputs are the two texts being compared and their display names.
type inputs struct {
	LeftName, RightName string
	Left, Right         string
}

// displayName is how a path argument is shown in output.
func displayName(path string) string {
	if path == StdinName {
		return "(stdin)"
	}
	return path
}

// inputReader reads the two sides. Standard input is read at most once and
// replayed on later reads, so the viewer and watch can reload.
type inputReader struct {
	stdin    io.Reader
	maxBytes int64

	stdinRead bool
	stdinData string
}

func newInputReader(stdin io.Reader, maxBytes int64) *inputReader {
	return &inputReader{stdin: stdin, maxBytes: maxBytes}
}

// Read reads both sides of args.
func (r *inputReader) Read(args Args) (inputs, error) {
	left, err := r.readOne(args.Left)
	if err != nil {
		return inputs{}, err
	}
	right, err := r.readOne(args.Right)
	if err != nil {
		return inputs{}, err
	}
	return inputs{
		LeftName:  displayName(args.Left),
		RightName: displayName(args.Right),
		Left:      left,
		Right:     right,
	}, nil
}

func (r *inputReader) readOne(path string) (string, error) {
	if path == StdinName {
		if !r.stdinRead {
			data, err := r.readAll(r.stdin, path)
			if err != nil {
				return "", err
			}
			r.stdinData, r.stdinRead = data, true
		}
		return r.stdinData, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", NewNotFoundError("file", path)
		}
		return "", NewCommandError("read", path, "cannot open file", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err == nil && info.IsDir() {
		return "", NewValidationError("file", path, "is a directory")
	}
	return r.readAll(f, path)
}

// readAll reads src, stopping one byte past the size limit so oversize
// input is rejected without reading all of it.
func (r *inputReader) readAll(src io.Reader, path string) (string, error) {
	if src == nil {
		return "", nil
	}
	if r.maxBytes > 0 {
		src = io.LimitReader(src, r.maxBytes+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return "", NewCommandError("read", displayName(path), "read failed", err)
	}
	if r.maxBytes > 0 && int64(len(data)) > r.maxBytes {
		// Only the prefix was read, so the full size is unknown.
		return "", &diff.SizeError{Limit: "max_bytes", Max: r.maxBytes}
	}
	return string(data), nil
}

// =============================================================================
// RENDER OPTIONS
// =============================================================================

// renderOptions projects the UI config onto render.Options for output
// written to w.
func renderOptions(cfg *config.Config, in inputs, w io.Writer) render.Options {
	o := render.Options{
		Layout:       cfg.UI.Layout,
		Width:        cfg.UI.Width,
		ContextLines: cfg.UI.ContextLines,
		TabWidth:     cfg.UI.TabWidth,
		LineNumbers:  cfg.UI.ShowLineNumbers,
		LeftName:     in.LeftName,
		RightName:    in.RightName,
		Theme:        themeFor(cfg.UI.Color, w),
	}
	if o.Width <= 0 {
		o.Width = terminalWidth(w)
	}
	if o.Width <= 0 {
		o.Width = render.DefaultWidth
	}
	return o
}

// compare reads both inputs and diffs them under cfg.
func compare(args Args, cfg *config.Config, stdin io.Reader) (inputs, diff.Result, error) {
	in, err := newInputReader(stdin, cfg.Limits.MaxBytes).Read(args)
	if err != nil {
		return inputs{}, diff.Result{}, err
	}
	res, err := diff.DiffChecked(in.Left, in.Right, cfg.Options(), cfg.SizeLimits())
	return in, res, err
}

// exitCodeFor applies --exit-code.
func exitCodeFor(args Args, res diff.Result) int {
	if args.ExitCode && !res.Identical() {
		return ExitDifferent
	}
	return ExitSuccess
}

// =============================================================================
// HANDLERS
// =============================================================================

// HandleDiff handles "linediff [diff] LEFT RIGHT".
func HandleDiff(args Args, cfg *config.Config, s Streams) (int, error) {
	in, res, err := compare(args, cfg, s.In)
	if err != nil {
		return ExitGeneralError, err
	}

	switch args.Format {
	case FormatJSON:
		doc := render.NewDocument(in.LeftName, in.RightName, cfg.Options(), res)
		if err := NewJSONResponse("diff", doc).Write(s.Out); err != nil {
			return ExitGeneralError, err
		}
	case FormatYAML:
		doc := render.NewDocument(in.LeftName, in.RightName, cfg.Options(), res)
		if err := NewJSONResponse("diff", doc).WriteYAML(s.Out); err != nil {
			return ExitGeneralError, err
		}
	default:
		o := renderOptions(cfg, in, s.Out)
		fmt.Fprint(s.Out, render.Text(res, o))
		fmt.Fprintln(s.Out, render.Summary(res.Stats(), o.Theme))
	}

	return exitCodeFor(args, res), nil
}

// HandleStats handles "linediff stats LEFT RIGHT".
func HandleStats(args Args, cfg *config.Config, s Streams) (int, error) {
	in, res, err := compare(args, cfg, s.In)
	if err != nil {
		return ExitGeneralError, err
	}

	data := StatsData{
		Left:      in.LeftName,
		Right:     in.RightName,
		Added:     res.Added,
		Removed:   res.Removed,
		Unchanged: res.Unchanged,
		Identical: res.Identical(),
	}

	switch args.Format {
	case FormatJSON:
		if err := NewJSONResponse("stats", data).Write(s.Out); err != nil {
			return ExitGeneralError, err
		}
	case FormatYAML:
		if err := NewJSONResponse("stats", data).WriteYAML(s.Out); err != nil {
			return ExitGeneralError, err
		}
	default:
		fmt.Fprintln(s.Out, render.Summary(res.Stats(), themeFor(cfg.UI.Color, s.Out)))
	}

	return exitCodeFor(args, res), nil
}
