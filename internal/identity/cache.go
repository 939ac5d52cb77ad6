// Copyright 2026 The routerctl Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package identity

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/traylinx/routerctl/internal/util"
)

// SessionCacheRecord ties a session id to the process that started it.
// One file exists per owning PID in the shared temp directory, written
// once at session start and garbage-collected lazily when a reader finds
// the owner dead.
type SessionCacheRecord struct {
	SessionID   string `json:"session_id"`
	Pid         int    `json:"pid"`
	Cwd         string `json:"cwd"`
	TimestampMs int64  `json:"timestamp"`
}

// sessionCachePath names the cache file for a given PID.
func sessionCachePath(env *Environ, pid int) string {
	return filepath.Join(env.TempDir, fmt.Sprintf("routerctl-session-%d.json", pid))
}

// WriteSessionCache records the session owned by the given PID. Called by
// the session lifecycle command, not by resolution.
func WriteSessionCache(env *Environ, sessionID string, pid int, cwd string) error {
	record := SessionCacheRecord{
		SessionID:   sessionID,
		Pid:         pid,
		Cwd:         cwd,
		TimestampMs: env.Now().UnixMilli(),
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("identity: marshal session cache record: %w", err)
	}
	return util.SecureWrite(sessionCachePath(env, pid), data, nil)
}

// ReadSessionCache loads the cache record keyed by a PID, if one exists.
func ReadSessionCache(env *Environ, pid int) (*SessionCacheRecord, bool) {
	data, err := os.ReadFile(sessionCachePath(env, pid))
	if err != nil {
		return nil, false
	}
	var record SessionCacheRecord
	if err := json.Unmarshal(data, &record); err != nil {
		// A corrupt record is as useless as a missing one; drop it.
		_ = os.Remove(sessionCachePath(env, pid))
		return nil, false
	}
	return &record, true
}

// RemoveSessionCache deletes the cache file for a PID. Missing files are
// not an error.
func RemoveSessionCache(env *Environ, pid int) error {
	err := os.Remove(sessionCachePath(env, pid))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
