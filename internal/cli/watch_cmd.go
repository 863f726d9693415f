// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// watch_cmd.go - Re-diff on every change.
//
// Command: watch LEFT RIGHT
// Short:   Print a fresh diff whenever either file changes
//
// With --json each result is one compact envelope per line.
//
// Examples:
//   linediff watch expected.txt actual.txt
//   linediff watch --json -w a.log b.log | jq .data.added
package cli

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/linediff/internal/config"
	"github.com/jeranaias/linediff/internal/logging"
	"github.com/jeranaias/linediff/internal/render"
	"github.com/jeranaias/linediff/internal/runner"
	"github.com/jeranaias/linediff/internal/watch"
)

// HandleWatch handles "linediff watch LEFT RIGHT". It returns when ctx is
// cancelled.
func HandleWatch(ctx context.Context, args Args, cfg *config.Config, s Streams) error {
	if args.Left == StdinName || args.Right == StdinName {
		return NewValidationError("arguments", StdinName, "watch needs two files, not standard input")
	}
	if args.Format == FormatYAML {
		return NewValidationError("format", args.Format, "watch supports text or json")
	}

	reader := newInputReader(s.In, cfg.Limits.MaxBytes)
	if _, err := reader.Read(args); err != nil {
		return err
	}

	w, err := watch.New([]string{args.Left, args.Right}, cfg.DebounceDuration())
	if err != nil {
		return NewCommandError("watch", "start", "cannot watch files", err)
	}
	defer w.Close()

	// The watcher already debounces.
	r := runner.New(0)
	defer r.Close()

	// An editor replacing a file can fail several reads in a row; report
	// at most one per second.
	readErrors := rate.Sometimes{Interval: time.Second}

	submit := func() {
		in, err := reader.Read(args)
		if err != nil {
			// The file may be mid-replace; the next event retries.
			logging.Logf("watch: read failed: %v", err)
			readErrors.Do(func() { printWatchError(args, s, err) })
			return
		}
		r.Submit(runner.Request{
			Left:    in.Left,
			Right:   in.Right,
			Options: cfg.Options(),
			Limits:  cfg.SizeLimits(),
		})
	}
	submit()

	for {
		select {
		case <-ctx.Done():
			return nil

		case _, ok := <-w.Changes():
			if !ok {
				return nil
			}
			submit()

		case o, ok := <-r.Results():
			if !ok {
				return nil
			}
			handleOutcome(r, args, cfg, s, o)

		case err := <-w.Errors():
			printWatchError(args, s, err)
		}
	}
}

// handleOutcome prints o unless a newer request has superseded it.
func handleOutcome(r *runner.Runner, args Args, cfg *config.Config, s Streams, o runner.Outcome) bool {
	if r.IsStale(o.Generation) {
		logging.Logf("watch: dropping generation %d, latest is %d", o.Generation, r.Latest())
		return false
	}
	printOutcome(args, cfg, s, o)
	return true
}

func printOutcome(args Args, cfg *config.Config, s Streams, o runner.Outcome) {
	in := inputs{LeftName: displayName(args.Left), RightName: displayName(args.Right)}

	if args.Format == FormatJSON {
		if o.Err != nil {
			printWatchError(args, s, o.Err)
			return
		}
		doc := render.NewDocument(in.LeftName, in.RightName, o.Request.Options, o.Result)
		_ = NewJSONResponse("watch", doc).WriteCompact(s.Out)
		return
	}

	opts := renderOptions(cfg, in, s.Out)
	t := opts.Theme
	fmt.Fprintf(s.Out, "%s %s\n",
		t.Title.Render(now().Format(time.TimeOnly)),
		t.FileName.Render(in.LeftName+" → "+in.RightName))

	if o.Err != nil {
		fmt.Fprintln(s.Out, t.Error.Render(o.Err.Error()))
		return
	}
	opts.LeftName, opts.RightName = "", ""
	fmt.Fprint(s.Out, render.Text(o.Result, opts))
	fmt.Fprintln(s.Out, render.Summary(o.Result.Stats(), t))
	fmt.Fprintln(s.Out)
}

func printWatchError(args Args, s Streams, err error) {
	if args.Format == FormatJSON {
		resp := NewJSONErrorResponse("watch", err)
		resp.ErrorType = ErrorType(err)
		_ = resp.WriteCompact(s.Out)
		return
	}
	fmt.Fprintf(s.Err, "linediff: %v\n", err)
}
