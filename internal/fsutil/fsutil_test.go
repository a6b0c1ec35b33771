// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	exists, err := FileExists(dir)
	require.NoError(t, err)
	require.True(t, exists)

	file := filepath.Join(dir, "some_file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	exists, err = FileExists(file)
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = FileExists(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	require.False(t, exists)
}

func TestReplaceTildeInDir(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ReplaceTildeInDir("~/data/images")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "data/images"), got)

	got, err = ReplaceTildeInDir("~")
	require.NoError(t, err)
	require.Equal(t, home, got)

	// No tilde prefix: returned unchanged.
	got, err = ReplaceTildeInDir("/tmp/images")
	require.NoError(t, err)
	require.Equal(t, "/tmp/images", got)

	got, err = ReplaceTildeInDir("")
	require.NoError(t, err)
	require.Equal(t, "", got)
}
