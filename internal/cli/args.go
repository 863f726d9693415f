// args.go - Argument parsing shared by every linediff command.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// =============================================================================
// ARG PARSER
// =============================================================================

// ArgParser provides unified argument parsing for CLI commands.
// It handles multiple flag formats consistently:
//   - Long flags: --flag value or --flag=value
//   - Short flags: -f value
//   - Boolean flags: --flag (never consumes the next argument)
//   - Positional arguments, including a lone "-" meaning stdin
//   - "--" ends flag parsing
type ArgParser struct {
	subcommand string            // First positional arg
	flags      map[string]string // String flags (--key=value)
	boolFlags  map[string]bool   // Boolean flags (--json)
	positional []string          // All positional arguments including subcommand
	raw        []string          // Original raw arguments
	known      map[string]bool   // Names registered as boolean
}

// NewArgParser creates a parser. Names in boolNames are always parsed as
// boolean flags, so "-w left.txt right.txt" keeps both files positional.
//
// Example:
//
//	args := NewArgParser([]string{"a.txt", "-", "--context", "3", "-w"}, "w")
//	args.Positional(1)     // "-"
//	args.Flag("context")   // "3"
//	args.BoolFlag("w")     // true
func NewArgParser(raw []string, boolNames ...string) *ArgParser {
	parser := &ArgParser{
		flags:      make(map[string]string),
		boolFlags:  make(map[string]bool),
		positional: make([]string, 0),
		raw:        raw,
		known:      make(map[string]bool, len(boolNames)),
	}
	for _, n := range boolNames {
		parser.known[n] = true
	}

	i := 0
	for i < len(raw) {
		arg := raw[i]

		if arg == "--" {
			parser.positional = append(parser.positional, raw[i+1:]...)
			break
		}

		if !strings.HasPrefix(arg, "-") || arg == "-" {
			parser.positional = append(parser.positional, arg)
			i++
			continue
		}

		// --flag=value
		if strings.Contains(arg, "=") {
			parts := strings.SplitN(arg, "=", 2)
			flagName := strings.TrimLeft(parts[0], "-")
			flagValue := parts[1]

			if parser.known[flagName] {
				b, err := ParseBoolString(flagValue)
				if err != nil {
					// Keep the raw value so validation can report it.
					parser.flags[flagName] = flagValue
				} else {
					parser.boolFlags[flagName] = b
				}
			} else {
				parser.flags[flagName] = flagValue
			}
			i++
			continue
		}

		flagName := strings.TrimLeft(arg, "-")

		if !parser.known[flagName] && i+1 < len(raw) && isValue(raw[i+1]) {
			parser.flags[flagName] = raw[i+1]
			i += 2
		} else {
			parser.boolFlags[flagName] = true
			i++
		}
	}

	if len(parser.positional) > 0 {
		parser.subcommand = parser.positional[0]
	}

	return parser
}

// isValue reports whether arg can be a flag value: anything that is not a
// flag, plus "-" and negative numbers.
func isValue(arg string) bool {
	if !strings.HasPrefix(arg, "-") || arg == "-" {
		return true
	}
	_, err := strconv.Atoi(arg)
	return err == nil
}

// Subcommand returns the first positional argument.
func (p *ArgParser) Subcommand() string {
	return p.subcommand
}

// Flag returns the value of a string flag, or "" when absent.
func (p *ArgParser) Flag(name string) string {
	return p.flags[strings.TrimLeft(name, "-")]
}

// FlagOf returns the value of the first of names that is set.
func (p *ArgParser) FlagOf(names ...string) (string, bool) {
	for _, n := range names {
		if v, ok := p.flags[strings.TrimLeft(n, "-")]; ok {
			return v, true
		}
	}
	return "", false
}

// FlagOrDefault returns the flag value or a default if not found.
func (p *ArgParser) FlagOrDefault(name, defaultValue string) string {
	if val := p.Flag(name); val != "" {
		return val
	}
	return defaultValue
}

// FlagInt returns the flag value as an integer.
func (p *ArgParser) FlagInt(name string) (int, error) {
	val := p.Flag(name)
	if val == "" {
		return 0, fmt.Errorf("flag %s not found", name)
	}
	return strconv.Atoi(val)
}

// BoolFlag returns the value of a boolean flag, false if absent.
func (p *ArgParser) BoolFlag(name string) bool {
	return p.boolFlags[strings.TrimLeft(name, "-")]
}

// BoolFlagOf reports whether any of names is set to true.
func (p *ArgParser) BoolFlagOf(names ...string) bool {
	for _, n := range names {
		if p.BoolFlag(n) {
			return true
		}
	}
	return false
}

// Positional returns the positional argument at index, or "".
// Index 0 is the subcommand.
func (p *ArgParser) Positional(index int) string {
	if index < 0 || index >= len(p.positional) {
		return ""
	}
	return p.positional[index]
}

// PositionalFrom returns all positional arguments starting from index.
func (p *ArgParser) PositionalFrom(index int) []string {
	if index < 0 || index >= len(p.positional) {
		return []string{}
	}
	return p.positional[index:]
}

// PositionalCount returns the number of positional arguments.
func (p *ArgParser) PositionalCount() int {
	return len(p.positional)
}

// HasFlag returns true if the flag exists (either as string or bool flag).
func (p *ArgParser) HasFlag(name string) bool {
	name = strings.TrimLeft(name, "-")
	_, hasString := p.flags[name]
	_, hasBool := p.boolFlags[name]
	return hasString || hasBool
}

// FlagNames returns every flag name seen, sorted.
func (p *ArgParser) FlagNames() []string {
	names := make([]string, 0, len(p.flags)+len(p.boolFlags))
	for n := range p.flags {
		names = append(names, n)
	}
	for n := range p.boolFlags {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Raw returns the original raw arguments.
func (p *ArgParser) Raw() []string {
	return p.raw
}

// =============================================================================
// HELPER FUNCTIONS FOR COMMON ARG PATTERNS
// =============================================================================

// ParseIntWithValidation parses an integer and checks it is at least min.
func ParseIntWithValidation(s, fieldName string, min int) (int, error) {
	if s == "" {
		return 0, NewValidationError(fieldName, s, "value is required")
	}

	val, err := strconv.Atoi(s)
	if err != nil {
		return 0, NewValidationError(fieldName, s, "must be an integer")
	}

	if val < min {
		return 0, NewValidationError(fieldName, s, fmt.Sprintf("must be at least %d", min))
	}

	return val, nil
}

// ParseBoolString parses a boolean from various string representations.
// Accepts: true/false, yes/no, y/n, 1/0, on/off (case-insensitive)
func ParseBoolString(s string) (bool, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch s {
	case "true", "yes", "y", "1", "on":
		return true, nil
	case "false", "no", "n", "0", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value: %s", s)
	}
}
