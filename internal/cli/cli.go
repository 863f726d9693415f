// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command parsing and dispatch for linediff.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/jeranaias/linediff/internal/config"
	"github.com/jeranaias/linediff/internal/render"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdDiff Command = iota
	CmdStats
	CmdView
	CmdWatch
	CmdConfig
	CmdVersion
	CmdHelp
)

// String returns the command's name as typed.
func (c Command) String() string {
	switch c {
	case CmdDiff:
		return "diff"
	case CmdStats:
		return "stats"
	case CmdView:
		return "view"
	case CmdWatch:
		return "watch"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// comparesFiles reports whether the command takes LEFT and RIGHT.
func (c Command) comparesFiles() bool {
	return c == CmdDiff || c == CmdStats || c == CmdView || c == CmdWatch
}

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinName is the path argument that reads standard input.
const StdinName = "-"

// Args holds parsed CLI arguments. Zero values mean "use the config".
type Args struct {
	// Global flags
	Format     string // text, json, yaml
	JSON       bool   // Format == json
	Color      string
	ConfigPath string

	// Comparison
	Left             string
	Right            string
	IgnoreWhitespace bool
	IgnoreCase       bool
	MaxCells         int64
	MaxCellsSet      bool

	// Presentation
	Layout       string
	ContextLines int
	ContextSet   bool
	Width        int
	ExitCode     bool

	// config command
	Subcommand string
	ConfigKey  string
	ConfigVal  string
	Force      bool
}

// boolFlagNames never take a value.
var boolFlagNames = []string{
	"w", "ignore-whitespace",
	"i", "ignore-case",
	"json", "exit-code", "force",
	"h", "help", "version",
}

// knownFlags lists every accepted flag name.
var knownFlags = func() map[string]bool {
	m := map[string]bool{
		"format": true, "color": true, "config": true,
		"layout": true, "context": true, "width": true, "max-cells": true,
	}
	for _, n := range boolFlagNames {
		m[n] = true
	}
	return m
}()

// =============================================================================
// USAGE
// =============================================================================

const usageText = `linediff - line-oriented diff with whitespace and case options

Usage:
  linediff [diff] LEFT RIGHT [flags]   print the aligned diff
  linediff stats  LEFT RIGHT [flags]   print only the summary counts
  linediff view   LEFT RIGHT [flags]   open the interactive viewer
  linediff watch  LEFT RIGHT [flags]   re-diff whenever either file changes
  linediff config [show|path|get|set|init|keys]
  linediff version
  linediff help

LEFT or RIGHT may be "-" to read standard input.

Comparison flags:
  -w, --ignore-whitespace   collapse whitespace runs and trim before comparing
  -i, --ignore-case         compare case-folded lines
      --max-cells N         refuse inputs needing more than N table cells (0 = no limit)

Output flags:
      --format FORMAT       text, json or yaml (default text)
      --json                shorthand for --format json
      --layout LAYOUT       side-by-side or inline
      --context N           show N unchanged lines around changes
      --width N             output width in columns (default: terminal width)
      --color MODE          auto, always or never
      --exit-code           exit 1 when the inputs differ

Global flags:
      --config PATH         use this config file
  -h, --help                show this help

Examples:
  linediff old.txt new.txt
  linediff -w -i --layout inline a.conf b.conf
  git show HEAD:main.go | linediff - main.go --context 3
  linediff stats --json before.csv after.csv
  linediff config set ui.layout inline
`

// PrintUsage writes the usage text to w.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}

// =============================================================================
// PARSING
// =============================================================================

// Parse turns argv (without the program name) into a command and its
// arguments.
func Parse(argv []string) (Command, Args, error) {
	p := NewArgParser(argv, boolFlagNames...)
	var args Args

	for _, name := range p.FlagNames() {
		if !knownFlags[name] {
			return CmdHelp, args, NewValidationErrorWithExample("flag", "--"+name, "unknown flag", "linediff help")
		}
	}

	if err := parseGlobalFlags(p, &args); err != nil {
		return CmdHelp, args, err
	}

	if p.BoolFlagOf("h", "help") {
		return CmdHelp, args, nil
	}
	if p.BoolFlag("version") {
		return CmdVersion, args, nil
	}

	pos := p.PositionalFrom(0)
	if len(pos) == 0 {
		return CmdHelp, args, nil
	}

	cmd := CmdDiff
	explicit := true
	switch strings.ToLower(pos[0]) {
	case "diff":
	case "stats", "stat":
		cmd = CmdStats
	case "view", "tui":
		cmd = CmdView
	case "watch":
		cmd = CmdWatch
	case "config":
		cmd = CmdConfig
	case "version":
		cmd = CmdVersion
	case "help":
		cmd = CmdHelp
	default:
		explicit = false
	}
	if explicit {
		pos = pos[1:]
	}

	switch {
	case cmd.comparesFiles():
		if !explicit && len(pos) > 2 {
			if s := SuggestCommand(pos[0]); s != "" {
				return cmd, args, NewValidationErrorWithExample("command", pos[0], "unknown command", "did you mean '"+s+"'?")
			}
		}
		if err := parseCompareArgs(p, pos, &args); err != nil {
			return cmd, args, err
		}
	case cmd == CmdConfig:
		parseConfigArgs(p, pos, &args)
	}

	return cmd, args, nil
}

func parseGlobalFlags(p *ArgParser, args *Args) error {
	args.ConfigPath = p.Flag("config")
	args.Format = strings.ToLower(p.Flag("format"))
	args.JSON = p.BoolFlag("json")

	switch {
	case args.JSON && args.Format != "" && args.Format != FormatJSON:
		return NewValidationError("format", args.Format, "conflicts with --json")
	case args.JSON:
		args.Format = FormatJSON
	case args.Format == FormatJSON:
		args.JSON = true
	}
	if args.Format != "" && args.Format != FormatText && args.Format != FormatJSON && args.Format != FormatYAML {
		return ErrUnsupportedValue("format", args.Format, []string{FormatText, FormatJSON, FormatYAML})
	}

	if v, ok := p.FlagOf("color"); ok {
		v = strings.ToLower(v)
		if v != config.ColorAuto && v != config.ColorAlways && v != config.ColorNever {
			return ErrUnsupportedValue("color", v, []string{config.ColorAuto, config.ColorAlways, config.ColorNever})
		}
		args.Color = v
	}
	return nil
}

func parseCompareArgs(p *ArgParser, pos []string, args *Args) error {
	const usage = "linediff [diff|stats|view|watch] LEFT RIGHT"

	switch len(pos) {
	case 0:
		return ErrMissingArgument("LEFT", usage)
	case 1:
		return ErrMissingArgument("RIGHT", usage)
	case 2:
	default:
		return NewValidationErrorWithExample("arguments", strings.Join(pos[2:], " "), "too many files", usage)
	}
	args.Left, args.Right = pos[0], pos[1]
	if args.Left == StdinName && args.Right == StdinName {
		return NewValidationError("arguments", "- -", "standard input can only be read once")
	}

	args.IgnoreWhitespace = p.BoolFlagOf("w", "ignore-whitespace")
	args.IgnoreCase = p.BoolFlagOf("i", "ignore-case")
	args.ExitCode = p.BoolFlag("exit-code")

	if v, ok := p.FlagOf("layout"); ok {
		v = strings.ToLower(v)
		if v != render.LayoutSideBySide && v != render.LayoutInline {
			return ErrUnsupportedValue("layout", v, []string{render.LayoutSideBySide, render.LayoutInline})
		}
		args.Layout = v
	}

	if v, ok := p.FlagOf("context"); ok {
		n, err := ParseIntWithValidation(v, "context", 0)
		if err != nil {
			return err
		}
		args.ContextLines, args.ContextSet = n, true
	}

	if v, ok := p.FlagOf("width"); ok {
		n, err := ParseIntWithValidation(v, "width", 0)
		if err != nil {
			return err
		}
		args.Width = n
	}

	if v, ok := p.FlagOf("max-cells"); ok {
		n, err := strconv.ParseInt(strings.ReplaceAll(v, "_", ""), 10, 64)
		if err != nil || n < 0 {
			return NewValidationError("max-cells", v, "must be a non-negative integer")
		}
		args.MaxCells, args.MaxCellsSet = n, true
	}
	return nil
}

func parseConfigArgs(p *ArgParser, pos []string, args *Args) {
	args.Subcommand = "show"
	if len(pos) > 0 {
		args.Subcommand = strings.ToLower(pos[0])
	}
	if len(pos) > 1 {
		args.ConfigKey = pos[1]
	}
	if len(pos) > 2 {
		args.ConfigVal = strings.Join(pos[2:], " ")
	}
	args.Force = p.BoolFlag("force")
}

// =============================================================================
// DISPATCH
// =============================================================================

// Streams are the standard streams a command reads and writes.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the process's standard streams.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Main parses argv, runs the command and returns the process exit code.
func Main(ctx context.Context, argv []string, s Streams) int {
	cmd, args, err := Parse(argv)
	if err != nil {
		DisplayError(s.Out, s.Err, cmd.String(), err, args.JSON, themeFor(args.Color, s.Err))
		return GetExitCode(err)
	}

	code, err := Run(ctx, cmd, args, s)
	if err != nil {
		DisplayError(s.Out, s.Err, cmd.String(), err, args.JSON, themeFor(args.Color, s.Err))
		return GetExitCode(err)
	}
	return code
}

// Run executes a parsed command. The returned code is meaningful when err
// is nil.
func Run(ctx context.Context, cmd Command, args Args, s Streams) (int, error) {
	switch cmd {
	case CmdHelp:
		PrintUsage(s.Out)
		return ExitSuccess, nil
	case CmdVersion:
		return ExitSuccess, HandleVersion(args, s)
	case CmdConfig:
		return ExitSuccess, HandleConfig(args, s)
	}

	cfg, err := loadConfig(args)
	if err != nil {
		return ExitConfigError, err
	}
	applyFlags(cfg, args)

	switch cmd {
	case CmdDiff:
		return HandleDiff(args, cfg, s)
	case CmdStats:
		return HandleStats(args, cfg, s)
	case CmdView:
		return ExitSuccess, HandleView(ctx, args, cfg, s)
	case CmdWatch:
		return ExitSuccess, HandleWatch(ctx, args, cfg, s)
	}
	return ExitUsageError, NewValidationError("command", cmd.String(), "unknown command")
}

// loadConfig loads --config when given, otherwise the default location.
func loadConfig(args Args) (*config.Config, error) {
	if args.ConfigPath != "" {
		cfg, err := config.LoadFromPath(args.ConfigPath)
		if err != nil {
			return nil, &ConfigError{Path: args.ConfigPath, Err: err}
		}
		return cfg, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, &ConfigError{Path: config.ActivePath(), Err: err}
	}
	return cfg, nil
}

// applyFlags layers command-line flags over the loaded config.
func applyFlags(cfg *config.Config, args Args) {
	if args.IgnoreWhitespace {
		cfg.Diff.IgnoreWhitespace = true
	}
	if args.IgnoreCase {
		cfg.Diff.IgnoreCase = true
	}
	if args.MaxCellsSet {
		cfg.Limits.MaxCells = args.MaxCells
	}
	if args.Layout != "" {
		cfg.UI.Layout = args.Layout
	}
	if args.ContextSet {
		cfg.UI.ContextLines = args.ContextLines
	}
	if args.Width > 0 {
		cfg.UI.Width = args.Width
	}
	if args.Color != "" {
		cfg.UI.Color = args.Color
	}
}

// =============================================================================
// VERSION
// =============================================================================

// HandleVersion prints version information.
func HandleVersion(args Args, s Streams) error {
	data := VersionData{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}

	switch args.Format {
	case FormatJSON:
		return NewJSONResponse("version", data).Write(s.Out)
	case FormatYAML:
		return NewJSONResponse("version", data).WriteYAML(s.Out)
	}
	fmt.Fprintf(s.Out, "linediff %s (commit %s, built %s, %s)\n", data.Version, data.GitCommit, data.BuildDate, data.GoVersion)
	return nil
}
