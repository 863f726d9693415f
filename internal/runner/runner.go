// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package runner recomputes diffs in the background. Every submission
// supersedes the ones before it, and a result is only delivered if it is
// still the latest when it finishes.
package runner

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jeranaias/linediff/internal/diff"
	"github.com/jeranaias/linediff/internal/logging"
)

// =============================================================================
// TYPES
// =============================================================================

// Request is one diff to compute.
type Request struct {
	Left    string
	Right   string
	Options diff.Options
	Limits  diff.Limits
}

// Outcome is the result of a Request. Err is non-nil (and wraps
// diff.ErrInputTooLarge) when the request exceeded its limits.
type Outcome struct {
	Generation uint64
	Request    Request
	Result     diff.Result
	Err        error
	Elapsed    time.Duration
}

// Runner computes diffs off the caller's goroutine.
type Runner struct {
	debounce time.Duration
	out      chan Outcome
	compute  func(left, right string, opts diff.Options, limits diff.Limits) (diff.Result, error)

	gen     atomic.Uint64
	mu      sync.Mutex // guards timer, stopped and sends on out
	timer   *time.Timer
	stopped bool
	wg      sync.WaitGroup
	once    sync.Once
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// New creates a runner. Submissions closer together than debounce coalesce
// into the last one; zero starts every submission immediately.
func New(debounce time.Duration) *Runner {
	return &Runner{
		debounce: max(0, debounce),
		out:      make(chan Outcome, 1),
		compute:  diff.DiffChecked,
	}
}

// Results delivers outcomes. At most one undelivered outcome is buffered;
// a newer one replaces it. The channel is closed by Close.
func (r *Runner) Results() <-chan Outcome {
	return r.out
}

// Close stops the runner. Pending and in-flight work is discarded.
func (r *Runner) Close() {
	r.once.Do(func() {
		r.mu.Lock()
		r.stopped = true
		if r.timer != nil {
			r.timer.Stop()
		}
		r.mu.Unlock()

		r.wg.Wait()
		close(r.out)
	})
}

// =============================================================================
// SUBMISSION
// =============================================================================

// Submit queues req and returns its generation. Generations increase
// strictly; Submit after Close returns the next generation but computes
// nothing.
func (r *Runner) Submit(req Request) uint64 {
	gen := r.gen.Add(1)

	if r.debounce == 0 {
		r.start(gen, req)
		return gen
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return gen
	}
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.debounce, func() { r.start(gen, req) })
	return gen
}

// Latest returns the generation of the most recent submission.
func (r *Runner) Latest() uint64 {
	return r.gen.Load()
}

// IsStale reports whether gen has been superseded.
func (r *Runner) IsStale(gen uint64) bool {
	return gen != r.gen.Load()
}

func (r *Runner) start(gen uint64, req Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped || r.IsStale(gen) {
		return
	}
	r.wg.Add(1)
	go r.run(gen, req)
}

func (r *Runner) run(gen uint64, req Request) {
	defer r.wg.Done()

	began := time.Now()
	res, err := r.compute(req.Left, req.Right, req.Options, req.Limits)
	o := Outcome{
		Generation: gen,
		Request:    req,
		Result:     res,
		Err:        err,
		Elapsed:    time.Since(began),
	}
	r.deliver(o)
}

func (r *Runner) deliver(o Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped || r.IsStale(o.Generation) {
		logging.Logf("runner: dropped stale generation %d (latest %d)", o.Generation, r.Latest())
		return
	}

	// Replace an undelivered outcome; senders hold mu so the send never blocks.
	select {
	case <-r.out:
	default:
	}
	r.out <- o
	logging.Logf("runner: delivered generation %d in %s", o.Generation, o.Elapsed)
}
