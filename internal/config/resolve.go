// Copyright 2026 The routerctl Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	log "github.com/sirupsen/logrus"

	"github.com/traylinx/routerctl/internal/identity"
	"github.com/traylinx/routerctl/internal/util"
)

// Level identifies which configuration layer won resolution.
type Level string

const (
	LevelGlobal  Level = "global"
	LevelProject Level = "project"
	LevelSession Level = "session"
)

// Resolution is the outcome of a hierarchy lookup: the effective routing
// section, the layer it came from, and the identity it was resolved for.
// Callers render the level and session source as provenance.
type Resolution struct {
	Router   Router
	Level    Level
	Identity identity.ScopeIdentity
	// Global carries the parsed global document so callers can reuse its
	// provider registry without a second read.
	Global *GlobalConfig
}

// Resolver picks the effective routing configuration for an invocation.
type Resolver struct {
	StateBox *util.StateBox
	Env      *identity.Environ
}

// NewResolver wires a resolver from its two dependencies.
func NewResolver(sb *util.StateBox, env *identity.Environ) *Resolver {
	return &Resolver{StateBox: sb, Env: env}
}

// Resolve walks the hierarchy from lowest to highest precedence: global,
// then project, then session. A layer is adopted only when it parses, its
// Router has at least one non-empty value, and the identifiers it is keyed
// by exist. Each adopted layer replaces the routing section in its
// entirety; there is no per-field merge. Resolution always produces a
// result — in the worst case an empty global router.
func (r *Resolver) Resolve(cwd string) Resolution {
	id := identity.Resolve(r.Env, cwd)

	global, ok := LoadGlobal(r.StateBox.GlobalConfigPath())
	if !ok {
		log.Debugf("global config %s absent or unparseable", r.StateBox.GlobalConfigPath())
	}

	res := Resolution{
		Router:   global.Router,
		Level:    LevelGlobal,
		Identity: id,
		Global:   global,
	}

	if id.ProjectID == "" {
		return res
	}
	if project, ok := LoadScoped(r.StateBox.ProjectConfigPath(id.ProjectID)); ok && project.Router.HasValues() {
		res.Router = project.Router
		res.Level = LevelProject
	}

	if id.SessionID == "" {
		return res
	}
	if session, ok := LoadScoped(r.StateBox.SessionConfigPath(id.ProjectID, id.SessionID)); ok && session.Router.HasValues() {
		res.Router = session.Router
		res.Level = LevelSession
	}

	return res
}
