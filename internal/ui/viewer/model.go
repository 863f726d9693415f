// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package viewer is the interactive terminal diff viewer.
//
// The model owns a runner.Runner. Loading the files or toggling a
// comparison option submits a new request; only the outcome whose
// generation is still the runner's latest is ever shown, so a slow
// recompute can never overwrite a newer one.
package viewer

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/linediff/internal/diff"
	"github.com/jeranaias/linediff/internal/logging"
	"github.com/jeranaias/linediff/internal/render"
	"github.com/jeranaias/linediff/internal/runner"
	"github.com/jeranaias/linediff/internal/ui/styles"
	"github.com/jeranaias/linediff/internal/watch"
)

// DefaultFoldContext is the context used when folding is switched on and
// no context was configured.
const DefaultFoldContext = 3

// =============================================================================
// CONFIG
// =============================================================================

// LoadFunc reads both texts.
type LoadFunc func() (left, right string, err error)

// Config holds what the viewer needs to start.
type Config struct {
	LeftName  string
	RightName string
	Load      LoadFunc

	Options diff.Options
	Limits  diff.Limits
	Render  render.Options

	// Debounce coalesces rapid toggles into one recompute.
	Debounce time.Duration

	// Changes, when set, triggers a reload on every file change.
	Changes <-chan watch.Change
}

// =============================================================================
// MESSAGES
// =============================================================================

type loadedMsg struct {
	seq         uint64
	left, right string
	err         error
}

type outcomeMsg struct {
	outcome runner.Outcome
}

type resultsClosedMsg struct{}

type fileChangedMsg struct {
	paths []string
}

type changesClosedMsg struct{}

// =============================================================================
// MODEL
// =============================================================================

// Model is the bubbletea model for the viewer.
type Model struct {
	cfg    Config
	runner *runner.Runner
	theme  *styles.Theme

	keys     KeyMap
	help     help.Model
	viewport viewport.Model

	left, right string
	loaded      bool
	loadSeq     uint64 // sequence of the newest load issued
	opts        diff.Options
	layout      string
	context     int
	folded      bool

	result  diff.Result
	shown   uint64 // generation of result
	err     error
	loadErr error

	width, height int
	ready         bool
	quitting      bool
}

// New creates a viewer. Call Close if the program never runs.
func New(cfg Config) Model {
	theme := cfg.Render.Theme
	if theme == nil {
		theme = styles.PlainTheme()
	}

	layout := cfg.Render.Layout
	if layout == "" {
		layout = render.LayoutSideBySide
	}

	context := cfg.Render.ContextLines
	folded := context >= 0
	if !folded {
		context = DefaultFoldContext
	}

	h := help.New()
	h.Styles.ShortKey = theme.Toggle
	h.Styles.ShortDesc = theme.Help
	h.Styles.FullKey = theme.Toggle
	h.Styles.FullDesc = theme.Help

	return Model{
		cfg:      cfg,
		runner:   runner.New(cfg.Debounce),
		theme:    theme,
		keys:     DefaultKeyMap(),
		help:     h,
		viewport: viewport.New(80, 20),
		opts:     cfg.Options,
		layout:   layout,
		context:  context,
		folded:   folded,
	}
}

// Close releases the runner.
func (m Model) Close() {
	m.runner.Close()
}

// Options returns the current comparison options.
func (m Model) Options() diff.Options { return m.opts }

// Result returns the diff currently on screen and its generation.
func (m Model) Result() (diff.Result, uint64) { return m.result, m.shown }

// Init starts loading and listening.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadCmd(m.loadSeq), waitForOutcome(m.runner)}
	if m.cfg.Changes != nil {
		cmds = append(cmds, waitForChange(m.cfg.Changes))
	}
	return tea.Batch(cmds...)
}

// =============================================================================
// COMMANDS
// =============================================================================

// reload issues a load that supersedes every earlier one.
func (m *Model) reload() tea.Cmd {
	m.loadSeq++
	return m.loadCmd(m.loadSeq)
}

func (m Model) loadCmd(seq uint64) tea.Cmd {
	load := m.cfg.Load
	return func() tea.Msg {
		if load == nil {
			return loadedMsg{seq: seq}
		}
		left, right, err := load()
		return loadedMsg{seq: seq, left: left, right: right, err: err}
	}
}

func waitForOutcome(r *runner.Runner) tea.Cmd {
	return func() tea.Msg {
		o, ok := <-r.Results()
		if !ok {
			return resultsClosedMsg{}
		}
		return outcomeMsg{outcome: o}
	}
}

func waitForChange(ch <-chan watch.Change) tea.Cmd {
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return changesClosedMsg{}
		}
		return fileChangedMsg{paths: c.Paths}
	}
}

// submit queues a recompute of the loaded texts with the current options.
func (m *Model) submit() {
	if !m.loaded {
		return
	}
	m.runner.Submit(runner.Request{
		Left:    m.left,
		Right:   m.right,
		Options: m.opts,
		Limits:  m.cfg.Limits,
	})
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case loadedMsg:
		if msg.seq != m.loadSeq {
			logging.Logf("viewer: ignoring load %d, newest is %d", msg.seq, m.loadSeq)
			return m, nil
		}
		if msg.err != nil {
			m.loadErr = msg.err
			m.refresh()
			return m, nil
		}
		m.loadErr = nil
		m.left, m.right = msg.left, msg.right
		m.loaded = true
		m.submit()
		return m, nil

	case outcomeMsg:
		o := msg.outcome
		if m.runner.IsStale(o.Generation) {
			logging.Logf("viewer: ignoring generation %d", o.Generation)
			return m, waitForOutcome(m.runner)
		}
		m.result, m.err, m.shown = o.Result, o.Err, o.Generation
		m.refresh()
		return m, waitForOutcome(m.runner)

	case fileChangedMsg:
		logging.Logf("viewer: reload after change to %v", msg.paths)
		return m, tea.Batch(m.reload(), waitForChange(m.cfg.Changes))

	case resultsClosedMsg, changesClosedMsg:
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width

	m.viewport.Width = max(1, m.width)
	m.viewport.Height = max(1, m.height-m.chromeHeight())
	m.ready = true
	m.refresh()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.runner.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Whitespace):
		m.opts.IgnoreWhitespace = !m.opts.IgnoreWhitespace
		m.submit()
		return m, nil

	case key.Matches(msg, m.keys.Case):
		m.opts.IgnoreCase = !m.opts.IgnoreCase
		m.submit()
		return m, nil

	case key.Matches(msg, m.keys.Layout):
		if m.layout == render.LayoutInline {
			m.layout = render.LayoutSideBySide
		} else {
			m.layout = render.LayoutInline
		}
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Fold):
		m.folded = !m.folded
		m.refresh()
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		return m, m.reload()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.viewport.Height = max(1, m.height-m.chromeHeight())
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.viewport.LineUp(1)
	case key.Matches(msg, m.keys.Down):
		m.viewport.LineDown(1)
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
	case key.Matches(msg, m.keys.Home):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.End):
		m.viewport.GotoBottom()
	}
	return m, nil
}

// refresh re-renders the diff into the viewport.
func (m *Model) refresh() {
	m.viewport.SetContent(m.body())
}

func (m Model) renderOptions() render.Options {
	o := m.cfg.Render
	o.Layout = m.layout
	o.Theme = m.theme
	o.Width = m.viewport.Width
	o.LeftName, o.RightName = "", ""
	o.ContextLines = -1
	if m.folded {
		o.ContextLines = m.context
	}
	return o
}
