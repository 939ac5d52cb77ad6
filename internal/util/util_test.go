// Copyright 2026 The routerctl Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecureWrite_CreatesParentsAndWritesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.json")

	require.NoError(t, SecureWrite(path, []byte(`{"a":1}`), nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSecureWrite_Backup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, SecureWrite(path, []byte("old"), nil))

	opts := DefaultSecureWriteOptions()
	opts.CreateBackup = true
	require.NoError(t, SecureWrite(path, []byte("new"), opts))

	backup, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, "old", string(backup))

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(current))
}

func TestSecureWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, SecureWriteJSON(path, map[string]string{"k": "v"}, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"k": "v"`)
}

func TestNewStateBox_EnvironmentOverrides(t *testing.T) {
	root := t.TempDir()
	t.Setenv("ROUTERCTL_STATE_DIR", root)
	t.Setenv("ROUTERCTL_READONLY", "1")

	sb, err := NewStateBox()
	require.NoError(t, err)
	assert.Equal(t, root, sb.RootPath())
	assert.True(t, sb.IsReadOnly())

	assert.Equal(t, filepath.Join(root, "config.json"), sb.GlobalConfigPath())
	assert.Equal(t, filepath.Join(root, "projects", "-p", "config.json"), sb.ProjectConfigPath("-p"))
	assert.Equal(t, filepath.Join(root, "projects", "-p", "sessions", "s.json"), sb.SessionConfigPath("-p", "s"))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded, err := ExpandPath("~/state")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "state"), expanded)

	expanded, err = ExpandPath("/abs/path")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path", expanded)
}
