// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fixedClock(t *testing.T) {
	t.Helper()
	orig := now
	now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	t.Cleanup(func() { now = orig })
}

func TestLogf_WritesAndAppends(t *testing.T) {
	fixedClock(t)
	path := filepath.Join(t.TempDir(), "linediff.log")
	t.Setenv(EnvLogFile, path)
	require.True(t, Enabled())

	Logf("recomputed gen=%d", 3)
	Logf("done\n")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "2025-01-02T03:04:05Z recomputed gen=3\n2025-01-02T03:04:05Z done\n", string(b))
}

func TestLogf_NoOpWhenUnset(t *testing.T) {
	t.Setenv(EnvLogFile, "")
	require.False(t, Enabled())
	Logf("should not %s", "panic")
}

func TestLogf_NoOpWhenPathIsDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvLogFile, dir)

	Logf("ignored %d", 1)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}
