// Copyright 2026 The routerctl Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package identity

import (
	"os"
	"path/filepath"
	"strings"
)

// EncodeProjectPath converts a working directory into the directory-name
// scheme used by the agent's session-log store: every path separator
// becomes a dash, so "/home/u/proj" encodes to "-home-u-proj".
func EncodeProjectPath(cwd string) string {
	return strings.ReplaceAll(filepath.ToSlash(cwd), "/", "-")
}

// ProjectID resolves the working directory to a project identifier known
// to the session-log store. An empty result means the project is
// unresolvable; callers fall back to the global scope.
//
// Exact encoded-name matches win. When the store was populated from a
// different mount or symlinked path, the encoded prefix differs but the
// final segment survives, so a basename-suffix fallback is tried: a single
// candidate ending in "-<basename>" is used, multiple candidates prefer
// the most specific (most dashes) name.
func ProjectID(env *Environ, cwd string) string {
	encoded := EncodeProjectPath(cwd)
	if encoded == "" {
		return ""
	}

	if info, err := os.Stat(filepath.Join(env.LogStoreDir, encoded)); err == nil && info.IsDir() {
		return encoded
	}

	base := filepath.Base(filepath.Clean(cwd))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return ""
	}
	suffix := "-" + base

	dirEntries, err := os.ReadDir(env.LogStoreDir)
	if err != nil {
		return ""
	}

	var candidates []string
	for _, de := range dirEntries {
		if de.IsDir() && strings.HasSuffix(de.Name(), suffix) {
			candidates = append(candidates, de.Name())
		}
	}

	switch len(candidates) {
	case 0:
		return ""
	case 1:
		return candidates[0]
	}

	best := candidates[0]
	bestDashes := strings.Count(best, "-")
	for _, name := range candidates[1:] {
		if dashes := strings.Count(name, "-"); dashes > bestDashes {
			best, bestDashes = name, dashes
		}
	}
	return best
}
