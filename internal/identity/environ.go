// Copyright 2026 The routerctl Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package identity discovers which project and session the current
// invocation belongs to. There is no coordinator process to ask, so
// discovery relies on the working directory, the environment, PID-keyed
// cache files, and the session-log store written by the agent client.
package identity

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// agentLogDir is the session-log store maintained by the coding agent
// client, relative to the user's home directory. Project directories in it
// use the dash-encoded working directory path as their name.
const agentLogDir = ".claude/projects"

// Environ carries every ambient input the resolvers read, so discovery is
// deterministic under test without mutating the real environment.
type Environ struct {
	// Home is the user's home directory.
	Home string
	// TempDir hosts the shared session cache files.
	TempDir string
	// LogStoreDir is the root of the agent client's session-log store.
	LogStoreDir string
	// Pid is the process id discovery starts the ancestry walk from.
	Pid int

	Getenv       func(key string) string
	Now          func() time.Time
	ParentPid    func(pid int) (int, bool)
	ProcessAlive func(pid int) bool
}

// NewEnviron binds an Environ to the real process environment.
func NewEnviron() (*Environ, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &Environ{
		Home:         home,
		TempDir:      os.TempDir(),
		LogStoreDir:  filepath.Join(home, filepath.FromSlash(agentLogDir)),
		Pid:          os.Getpid(),
		Getenv:       os.Getenv,
		Now:          time.Now,
		ParentPid:    parentPid,
		ProcessAlive: processAlive,
	}, nil
}

// processAlive probes a PID with signal zero. EPERM still means the
// process exists, just owned by someone else.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := syscall.Kill(pid, 0)
	return err == nil || err == syscall.EPERM
}

// parentPid resolves the parent of an arbitrary PID from /proc. The stat
// line embeds the command name in parentheses, so parsing starts after the
// closing one.
func parentPid(pid int) (int, bool) {
	data, err := os.ReadFile(filepath.Join("/proc", strconv.Itoa(pid), "stat"))
	if err != nil {
		// No procfs: the only parent still knowable is our own.
		if pid == os.Getpid() {
			return os.Getppid(), true
		}
		return 0, false
	}
	raw := string(data)
	end := strings.LastIndexByte(raw, ')')
	if end < 0 || end+2 >= len(raw) {
		return 0, false
	}
	fields := strings.Fields(raw[end+2:])
	if len(fields) < 2 {
		return 0, false
	}
	ppid, err := strconv.Atoi(fields[1])
	if err != nil || ppid <= 0 {
		return 0, false
	}
	return ppid, true
}
