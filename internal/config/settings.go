// Copyright 2026 The routerctl Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Settings is routerctl's own tool configuration, distinct from the
// routing documents it manages. Stored as YAML in the state directory.
type Settings struct {
	// DaemonOrigin is the HTTP origin the external routing daemon listens
	// on. Only reachability checks and UI opening use it; the core never
	// performs network calls.
	DaemonOrigin string `yaml:"daemon-origin"`

	// Debug enables debug-level logging.
	Debug bool `yaml:"debug"`

	// LoggingToFile controls whether logs go to rotating files or stdout.
	LoggingToFile bool `yaml:"logging-to-file"`

	// LogsMaxTotalSizeMB limits the total size (in MB) of log files under
	// the logs directory. Set to 0 to disable cleanup.
	LogsMaxTotalSizeMB int `yaml:"logs-max-total-size-mb"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() *Settings {
	return &Settings{
		DaemonOrigin: "http://127.0.0.1:3456",
	}
}

// LoadSettings parses the settings file, applying defaults for a missing
// file. Unlike the routing documents, a present-but-corrupt settings file
// is a real error: silently ignoring it would run the tool against the
// wrong daemon origin.
func LoadSettings(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}
	if settings.DaemonOrigin == "" {
		settings.DaemonOrigin = DefaultSettings().DaemonOrigin
	}
	return settings, nil
}
