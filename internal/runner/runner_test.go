// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package runner

import (
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/linediff/internal/diff"
)

func receive(t *testing.T, r *Runner) Outcome {
	t.Helper()
	select {
	case o, ok := <-r.Results():
		require.True(t, ok, "results channel closed")
		return o
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for outcome")
		return Outcome{}
	}
}

func requireNoOutcome(t *testing.T, r *Runner, wait time.Duration) {
	t.Helper()
	select {
	case o := <-r.Results():
		t.Fatalf("unexpected outcome for generation %d", o.Generation)
	case <-time.After(wait):
	}
}

func TestRunner_DeliversResult(t *testing.T) {
	r := New(0)
	defer r.Close()

	gen := r.Submit(Request{Left: "a\nb", Right: "a\nc"})
	o := receive(t, r)

	assert.Equal(t, gen, o.Generation)
	require.NoError(t, o.Err)
	assert.Equal(t, diff.Stats{Added: 1, Removed: 1, Unchanged: 1}, o.Result.Stats())
	assert.Equal(t, "a\nb", o.Request.Left)
}

func TestRunner_GenerationsIncrease(t *testing.T) {
	r := New(time.Hour)
	defer r.Close()

	g1 := r.Submit(Request{})
	g2 := r.Submit(Request{})
	assert.Less(t, g1, g2)
	assert.Equal(t, g2, r.Latest())
	assert.True(t, r.IsStale(g1))
	assert.False(t, r.IsStale(g2))
}

func TestRunner_DropsStaleResult(t *testing.T) {
	r := New(0)
	defer r.Close()

	release := make(chan struct{})
	started := make(chan struct{})
	var calls atomic.Int32
	r.compute = func(left, right string, opts diff.Options, limits diff.Limits) (diff.Result, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
		}
		return diff.DiffChecked(left, right, opts, limits)
	}

	r.Submit(Request{Left: "slow", Right: "slow"})
	<-started
	g2 := r.Submit(Request{Left: "fast", Right: "fast!"})

	o := receive(t, r)
	assert.Equal(t, g2, o.Generation)

	// The first computation finishes after it was superseded.
	close(release)
	requireNoOutcome(t, r, 100*time.Millisecond)
}

func TestRunner_Debounce(t *testing.T) {
	r := New(50 * time.Millisecond)
	defer r.Close()

	var calls atomic.Int32
	r.compute = func(left, right string, opts diff.Options, limits diff.Limits) (diff.Result, error) {
		calls.Add(1)
		return diff.DiffChecked(left, right, opts, limits)
	}

	var last uint64
	for i := 0; i < 5; i++ {
		last = r.Submit(Request{Left: "x", Right: strings.Repeat("y", i)})
	}

	o := receive(t, r)
	assert.Equal(t, last, o.Generation)
	assert.Equal(t, "yyyy", o.Request.Right)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRunner_OutcomeCarriesSizeError(t *testing.T) {
	r := New(0)
	defer r.Close()

	r.Submit(Request{Left: "a\nb\nc", Right: "a\nb\nc", Limits: diff.Limits{MaxCells: 4}})
	o := receive(t, r)

	require.ErrorIs(t, o.Err, diff.ErrInputTooLarge)
	var sizeErr *diff.SizeError
	require.ErrorAs(t, o.Err, &sizeErr)
	assert.Equal(t, 3, sizeErr.LeftLines)
	assert.Empty(t, o.Result.Records)
}

func TestRunner_Close(t *testing.T) {
	r := New(time.Hour)
	r.Submit(Request{Left: "a", Right: "b"})
	r.Close()
	r.Close()

	_, ok := <-r.Results()
	assert.False(t, ok)

	// Submitting after Close is harmless.
	r.Submit(Request{Left: "a", Right: "b"})
}

func TestRunner_CloseDiscardsInFlight(t *testing.T) {
	r := New(0)

	release := make(chan struct{})
	started := make(chan struct{})
	r.compute = func(left, right string, opts diff.Options, limits diff.Limits) (diff.Result, error) {
		close(started)
		<-release
		return diff.Result{}, nil
	}

	r.Submit(Request{})
	<-started

	done := make(chan struct{})
	go func() {
		r.Close()
		close(done)
	}()
	require.Eventually(t, func() bool {
		r.mu.Lock()
		defer r.mu.Unlock()
		return r.stopped
	}, time.Second, 5*time.Millisecond)
	close(release)
	<-done

	_, ok := <-r.Results()
	assert.False(t, ok)
}
