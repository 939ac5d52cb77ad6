// Copyright 2026 The routerctl Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package identity

import (
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// SessionEnvVar is the explicit session id channel. When the agent client
// exports it, every other discovery heuristic is skipped.
const SessionEnvVar = "ROUTERCTL_SESSION_ID"

// maxAncestryHops bounds the PID ancestry walk. A corrupted or cyclic
// parent chain terminates here instead of spinning.
const maxAncestryHops = 10

// Source tags where a session identity came from, for provenance display
// and logging.
type Source string

const (
	SourceEnv   Source = "env"
	SourceCache Source = "cache"
	SourceMtime Source = "mtime"
	SourceNone  Source = "none"
)

// ScopeIdentity is the resolved scope for one invocation. Empty strings
// mean the corresponding identifier is unresolvable, which callers treat
// as "fall back to a wider scope", never as an error.
type ScopeIdentity struct {
	ProjectID     string
	SessionID     string
	SessionSource Source
}

// sessionStrategy is one named discovery heuristic. Strategies are tried
// strictly in order; the first that yields an id wins and stamps its
// source tag.
type sessionStrategy struct {
	source Source
	probe  func(env *Environ, projectID string) (string, bool)
}

var sessionStrategies = []sessionStrategy{
	{SourceEnv, sessionFromEnv},
	{SourceCache, sessionFromAncestryCache},
	{SourceMtime, sessionFromNewestLog},
}

// Resolve derives the full scope identity for a working directory. It is
// recomputed on every call; nothing here is cached across invocations.
func Resolve(env *Environ, cwd string) ScopeIdentity {
	id := ScopeIdentity{
		ProjectID:     ProjectID(env, cwd),
		SessionSource: SourceNone,
	}
	for _, strategy := range sessionStrategies {
		if sessionID, ok := strategy.probe(env, id.ProjectID); ok {
			id.SessionID = sessionID
			id.SessionSource = strategy.source
			break
		}
	}
	log.Debugf("resolved scope identity project=%q session=%q source=%s", id.ProjectID, id.SessionID, id.SessionSource)
	return id
}

// sessionFromEnv reads the explicit environment channel.
func sessionFromEnv(env *Environ, _ string) (string, bool) {
	if id := strings.TrimSpace(env.Getenv(SessionEnvVar)); id != "" {
		return id, true
	}
	return "", false
}

// sessionFromAncestryCache walks the process ancestry upward, checking for
// a cache record keyed by each ancestor PID. Records whose owner is no
// longer alive are stale: they are deleted on sight and the walk
// continues. Self-healing, not reported.
func sessionFromAncestryCache(env *Environ, _ string) (string, bool) {
	pid := env.Pid
	for hop := 0; hop < maxAncestryHops && pid > 1; hop++ {
		if record, ok := ReadSessionCache(env, pid); ok {
			if env.ProcessAlive(record.Pid) {
				return record.SessionID, true
			}
			log.Debugf("removing stale session cache for dead pid %d", record.Pid)
			_ = RemoveSessionCache(env, pid)
		}
		parent, ok := env.ParentPid(pid)
		if !ok || parent == pid {
			break
		}
		pid = parent
	}
	return "", false
}

// sessionFromNewestLog falls back to the most recently modified session
// log in the project's log directory. Unreliable when several sessions
// share one directory, so it runs last.
func sessionFromNewestLog(env *Environ, projectID string) (string, bool) {
	if projectID == "" {
		return "", false
	}
	dirEntries, err := os.ReadDir(filepath.Join(env.LogStoreDir, projectID))
	if err != nil {
		return "", false
	}

	var newest string
	var newestMod int64
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".jsonl") {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); newest == "" || mod > newestMod {
			newest = de.Name()
			newestMod = mod
		}
	}
	if newest == "" {
		return "", false
	}
	return strings.TrimSuffix(newest, ".jsonl"), true
}
