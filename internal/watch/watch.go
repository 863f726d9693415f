// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package watch reports changes to a fixed set of files.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jeranaias/linediff/internal/logging"
)

// DefaultDebounce is used when New is given a non-positive debounce.
const DefaultDebounce = 150 * time.Millisecond

// Change lists the watched files touched since the previous Change.
type Change struct {
	Paths []string
}

// =============================================================================
// WATCHER
// =============================================================================

// Watcher watches the parent directory of each file so that editors which
// save by renaming a temporary file over the original are still seen.
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]struct{}
	debounce time.Duration

	changes chan Change
	errors  chan error

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
	closeErr  error
}

// New starts watching paths. Changes are coalesced until no event has
// arrived for debounce.
func New(paths []string, debounce time.Duration) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("watch: no files given")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		watcher:  fsw,
		files:    make(map[string]struct{}),
		debounce: debounce,
		changes:  make(chan Change, 1),
		errors:   make(chan error, 1),
		pending:  make(map[string]struct{}),
		ctx:      ctx,
		cancel:   cancel,
	}

	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("watch: %s: %w", p, err)
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("watch: %s: %w", dir, err)
		}
	}

	w.wg.Add(1)
	go w.processEvents()
	return w, nil
}

// Changes delivers coalesced changes. It is closed by Close.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Errors delivers watcher errors. Only the first unread error is kept.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		w.cancel()
		w.closeErr = w.watcher.Close()
		w.wg.Wait()

		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		close(w.changes)
		w.mu.Unlock()
	})
	return w.closeErr
}

// =============================================================================
// EVENT PROCESSING
// =============================================================================

func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Logf("watch: %v", err)
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := filepath.Clean(event.Name)
	if _, ok := w.files[path]; !ok {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[path] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

// flush emits the pending paths, replacing an unread Change.
func (w *Watcher) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.ctx.Err() != nil || len(w.pending) == 0 {
		return
	}

	var change Change
	for p := range w.pending {
		change.Paths = append(change.Paths, p)
	}
	w.pending = make(map[string]struct{})
	sort.Strings(change.Paths)

	select {
	case prev := <-w.changes:
		change.Paths = mergePaths(prev.Paths, change.Paths)
	default:
	}
	w.changes <- change
	logging.Logf("watch: changed %v", change.Paths)
}

func mergePaths(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	var out []string
	for _, p := range append(append([]string(nil), a...), b...) {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
