// Copyright 2026 The routerctl Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package daemon is the thin interface to the external routing daemon.
// The daemon is an opaque service reachable over a local HTTP origin:
// routerctl only probes reachability, tracks its PID file, and opens its
// management UI. Nothing here is consulted by the resolution core.
package daemon

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/skratchdot/open-golang/open"

	"github.com/traylinx/routerctl/internal/util"
)

// probeTimeout bounds the reachability check so `status` stays snappy
// when the daemon is down.
const probeTimeout = 2 * time.Second

// Client talks to one daemon instance.
type Client struct {
	Origin   string
	StateBox *util.StateBox

	httpClient *http.Client
}

// NewClient builds a client for the daemon at origin.
func NewClient(origin string, sb *util.StateBox) *Client {
	return &Client{
		Origin:     strings.TrimRight(origin, "/"),
		StateBox:   sb,
		httpClient: &http.Client{Timeout: probeTimeout},
	}
}

// Reachable reports whether the daemon answers on its origin. Any HTTP
// response counts: the check is about the listener, not its health
// semantics.
func (c *Client) Reachable() bool {
	resp, err := c.httpClient.Get(c.Origin + "/")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}

// OpenUI opens the daemon's management UI in the default browser.
func (c *Client) OpenUI() error {
	return open.Run(c.Origin + "/ui/")
}

// RecordedPid reads the daemon PID file. ok is false when the file is
// missing or malformed.
func (c *Client) RecordedPid() (int, bool) {
	data, err := os.ReadFile(c.StateBox.PidFilePath())
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

// WritePidFile records the daemon's process id.
func (c *Client) WritePidFile(pid int) error {
	return util.SecureWrite(c.StateBox.PidFilePath(), []byte(fmt.Sprintf("%d\n", pid)), nil)
}

// RemovePidFile clears a recorded process id. Missing files are fine.
func (c *Client) RemovePidFile() error {
	err := os.Remove(c.StateBox.PidFilePath())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ProcessRunning probes the recorded PID with signal zero.
func (c *Client) ProcessRunning() bool {
	pid, ok := c.RecordedPid()
	if !ok {
		return false
	}
	err := syscall.Kill(pid, 0)
	return err == nil || err == syscall.EPERM
}
