// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// view_cmd.go - The interactive viewer.
//
// Command: view LEFT RIGHT
// Short:   Scroll through the diff and toggle options live
//
// Keys:
//   w / c       toggle ignore-whitespace / ignore-case
//   l / f       toggle layout / folding of unchanged lines
//   r           reload both files
//   q, C-c      quit
//
// Both files are watched and reloaded on change unless one side is stdin.
package cli

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/linediff/internal/config"
	"github.com/jeranaias/linediff/internal/logging"
	"github.com/jeranaias/linediff/internal/ui/viewer"
	"github.com/jeranaias/linediff/internal/watch"
)

// HandleView handles "linediff view LEFT RIGHT".
func HandleView(ctx context.Context, args Args, cfg *config.Config, s Streams) error {
	if args.Format != "" && args.Format != FormatText {
		return NewValidationError("format", args.Format, "the viewer only supports text")
	}
	if !isTerminal(s.Out) {
		return NewCommandError("view", "start", "stdout is not a terminal; use 'linediff diff' instead", nil)
	}

	reader := newInputReader(s.In, cfg.Limits.MaxBytes)
	usesStdin := args.Left == StdinName || args.Right == StdinName

	// Read once up front so a missing file fails before the screen switches.
	in, err := reader.Read(args)
	if err != nil {
		return err
	}

	vc := viewer.Config{
		LeftName:  in.LeftName,
		RightName: in.RightName,
		Load: func() (string, string, error) {
			in, err := reader.Read(args)
			return in.Left, in.Right, err
		},
		Options:  cfg.Options(),
		Limits:   cfg.SizeLimits(),
		Render:   renderOptions(cfg, in, s.Out),
		Debounce: cfg.DebounceDuration(),
	}

	if !usesStdin {
		w, err := watch.New([]string{args.Left, args.Right}, cfg.DebounceDuration())
		if err != nil {
			logging.Logf("view: watching disabled: %v", err)
		} else {
			defer w.Close()
			vc.Changes = w.Changes()
		}
	}

	model := viewer.New(vc)
	defer model.Close()

	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithOutput(s.Out),
	}
	if usesStdin {
		// Stdin holds the piped text; keys come from the terminal.
		opts = append(opts, tea.WithInputTTY())
	} else if s.In != nil {
		opts = append(opts, tea.WithInput(s.In))
	}

	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return NewCommandError("view", "run", "viewer failed", err)
	}
	return nil
}
