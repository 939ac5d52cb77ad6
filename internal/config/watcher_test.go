// Copyright 2026 The routerctl Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/traylinx/routerctl/internal/util"
)

func TestWatcher_ReloadOnAtomicWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	writeDoc(t, path, `{"Providers":[],"Router":{}}`)

	var reloads int32
	var lastProviders atomic.Value

	w, err := NewWatcher(path, func(cfg *GlobalConfig) {
		atomic.AddInt32(&reloads, 1)
		lastProviders.Store(len(cfg.Providers))
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()

	// Atomic rename-swap write, the pattern every routerctl mutation uses.
	require.NoError(t, util.SecureWrite(path, []byte(`{"Providers":[{"name":"glm","models":["glm-5"]}],"Router":{}}`), nil))

	deadline := time.After(3 * time.Second)
	for atomic.LoadInt32(&reloads) == 0 {
		select {
		case <-deadline:
			t.Fatal("watcher did not observe the config change")
		case <-time.After(50 * time.Millisecond):
		}
	}
	require.Equal(t, 1, lastProviders.Load().(int))

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on context cancellation")
	}
}
