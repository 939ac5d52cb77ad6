// Copyright 2026 The routerctl Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/traylinx/routerctl/internal/identity"
	"github.com/traylinx/routerctl/internal/util"
)

// ErrReadOnly is returned when a mutation is attempted in read-only mode.
var ErrReadOnly = errors.New("read-only environment: write operations disabled")

// ErrUnknownRole is returned for role names outside the recognized set.
var ErrUnknownRole = errors.New("unknown router role")

// ErrScopeUnresolvable is returned when a project- or session-level
// mutation is requested but the required identifier could not be derived.
var ErrScopeUnresolvable = errors.New("scope identifiers unresolvable for requested level")

// validRole reports whether role is one of the recognized router roles.
func validRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// scopePath maps a level plus identity to the document it mutates.
func scopePath(sb *util.StateBox, level Level, id identity.ScopeIdentity) (string, error) {
	switch level {
	case LevelGlobal:
		return sb.GlobalConfigPath(), nil
	case LevelProject:
		if id.ProjectID == "" {
			return "", ErrScopeUnresolvable
		}
		return sb.ProjectConfigPath(id.ProjectID), nil
	case LevelSession:
		if id.ProjectID == "" || id.SessionID == "" {
			return "", ErrScopeUnresolvable
		}
		return sb.SessionConfigPath(id.ProjectID, id.SessionID), nil
	}
	return "", fmt.Errorf("unknown config level %q", level)
}

// SetRouterRole writes one role value into the document for a level,
// leaving every other key in the file untouched. The file is re-read
// immediately before writing: concurrent invocations are last-writer-wins
// on the whole file, so a fresh read keeps the window for lost updates as
// small as it can be without locking.
func SetRouterRole(sb *util.StateBox, level Level, id identity.ScopeIdentity, role, value string) error {
	if sb.IsReadOnly() {
		return ErrReadOnly
	}
	if !validRole(role) {
		return fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	path, err := scopePath(sb, level, id)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(path)
	if err != nil || !gjson.ValidBytes(raw) {
		// Absent or corrupt document: start from an empty object rather
		// than failing the mutation.
		raw = []byte("{}")
	}

	updated, err := sjson.SetBytes(raw, "Router."+role, value)
	if err != nil {
		return fmt.Errorf("failed to set Router.%s: %w", role, err)
	}
	return util.SecureWrite(path, updated, nil)
}

// ClearRouterRole removes one role value from the document for a level.
// Clearing the last role demotes the layer: an empty Router no longer
// qualifies during resolution.
func ClearRouterRole(sb *util.StateBox, level Level, id identity.ScopeIdentity, role string) error {
	if sb.IsReadOnly() {
		return ErrReadOnly
	}
	if !validRole(role) {
		return fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	path, err := scopePath(sb, level, id)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(path)
	if err != nil || !gjson.ValidBytes(raw) {
		return nil
	}
	if !gjson.GetBytes(raw, "Router."+role).Exists() {
		return nil
	}

	updated, err := sjson.DeleteBytes(raw, "Router."+role)
	if err != nil {
		return fmt.Errorf("failed to clear Router.%s: %w", role, err)
	}
	return util.SecureWrite(path, updated, nil)
}
