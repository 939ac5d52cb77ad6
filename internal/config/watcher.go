// Copyright 2026 The routerctl Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// debounceWindow coalesces the burst of filesystem events an atomic
// rename-swap write produces into a single reload.
const debounceWindow = 200 * time.Millisecond

// Watcher observes the global configuration document and invokes a reload
// callback when it changes. The directory, not the file, is watched: the
// atomic write pattern replaces the file by rename, which would silently
// detach a file-level watch.
type Watcher struct {
	path     string
	onChange func(*GlobalConfig)
	fsw      *fsnotify.Watcher
}

// NewWatcher creates a watcher for the global document at path. The
// callback receives the freshly parsed document; unparseable intermediate
// states are skipped.
func NewWatcher(path string, onChange func(*GlobalConfig)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}
	return &Watcher{path: path, onChange: onChange, fsw: fsw}, nil
}

// Run blocks until the context is done, dispatching debounced reloads.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceWindow, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Warnf("config watcher error: %v", err)
		case <-fire:
			if cfg, ok := LoadGlobal(w.path); ok {
				log.Debugf("global config %s changed, reloading", w.path)
				w.onChange(cfg)
			}
		}
	}
}
