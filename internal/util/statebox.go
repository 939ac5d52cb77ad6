// Copyright 2026 The routerctl Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package util provides filesystem utilities for routerctl: the canonical
// state directory and atomic file writes.
package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// StateBox manages the canonical state directory for routerctl. It
// provides centralized path resolution for all mutable application data:
// the global routing configuration, per-project and per-session overrides,
// the daemon PID file, and logs.
type StateBox struct {
	rootPath string
	readOnly bool
	mu       sync.RWMutex
}

// NewStateBox creates a new StateBox instance.
// It reads ROUTERCTL_STATE_DIR and ROUTERCTL_READONLY from environment
// variables. If ROUTERCTL_STATE_DIR is not set, it defaults to ~/.routerctl.
// If ROUTERCTL_READONLY is set to "1", write operations are rejected.
func NewStateBox() (*StateBox, error) {
	stateDir := os.Getenv("ROUTERCTL_STATE_DIR")
	if stateDir == "" {
		stateDir = "~/.routerctl"
	}

	resolvedPath, err := ExpandPath(stateDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve state directory: %w", err)
	}

	return &StateBox{
		rootPath: resolvedPath,
		readOnly: os.Getenv("ROUTERCTL_READONLY") == "1",
	}, nil
}

// NewStateBoxAt creates a StateBox rooted at an explicit directory,
// bypassing the environment. Used by tests and by callers that already
// resolved the root.
func NewStateBoxAt(root string) *StateBox {
	return &StateBox{rootPath: root}
}

// RootPath returns the resolved state directory root.
func (sb *StateBox) RootPath() string {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	return sb.rootPath
}

// IsReadOnly returns whether the state box rejects writes.
func (sb *StateBox) IsReadOnly() bool {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	return sb.readOnly
}

// GlobalConfigPath is the daemon's global configuration document.
func (sb *StateBox) GlobalConfigPath() string {
	return filepath.Join(sb.RootPath(), "config.json")
}

// SettingsPath is routerctl's own settings file.
func (sb *StateBox) SettingsPath() string {
	return filepath.Join(sb.RootPath(), "settings.yaml")
}

// ProjectConfigPath locates the per-project routing override document.
func (sb *StateBox) ProjectConfigPath(projectID string) string {
	return filepath.Join(sb.RootPath(), "projects", projectID, "config.json")
}

// SessionConfigPath locates the per-session routing override document.
func (sb *StateBox) SessionConfigPath(projectID, sessionID string) string {
	return filepath.Join(sb.RootPath(), "projects", projectID, "sessions", sessionID+".json")
}

// PidFilePath is where the external daemon records its process id.
func (sb *StateBox) PidFilePath() string {
	return filepath.Join(sb.RootPath(), "daemon.pid")
}

// LogsDir hosts routerctl's rotating log files.
func (sb *StateBox) LogsDir() string {
	return filepath.Join(sb.RootPath(), "logs")
}

// EnsureRoot creates the state directory if it does not exist.
func (sb *StateBox) EnsureRoot() error {
	if sb.IsReadOnly() {
		return nil
	}
	return os.MkdirAll(sb.RootPath(), 0700)
}

// ExpandPath expands a leading ~ to the user's home directory and cleans
// the result.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Clean(path), nil
}
