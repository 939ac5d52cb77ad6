// Copyright 2026 The routerctl Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config reads and mutates the routing configuration documents:
// one global file plus optional per-project and per-session overrides. The
// three documents are independently written JSON files; this package
// decides which one is authoritative for a given invocation.
package config

import (
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/traylinx/routerctl/internal/registry"
)

// Role names recognized in a Router section.
const (
	RoleDefault     = "default"
	RoleThink       = "think"
	RoleLongContext = "longContext"
	RoleWebSearch   = "webSearch"
	RoleBackground  = "background"
	RoleImage       = "image"
)

// Roles lists every recognized role in display order.
var Roles = []string{
	RoleDefault,
	RoleThink,
	RoleLongContext,
	RoleWebSearch,
	RoleBackground,
	RoleImage,
}

// Router maps functional roles to model references. Values are persisted
// as "provider,model" — comma, not slash, is the on-disk separator.
type Router struct {
	Default     string `json:"default,omitempty"`
	Think       string `json:"think,omitempty"`
	LongContext string `json:"longContext,omitempty"`
	WebSearch   string `json:"webSearch,omitempty"`
	Background  string `json:"background,omitempty"`
	Image       string `json:"image,omitempty"`
}

// Get returns the value for a role name, or "" for unknown roles.
func (r Router) Get(role string) string {
	switch role {
	case RoleDefault:
		return r.Default
	case RoleThink:
		return r.Think
	case RoleLongContext:
		return r.LongContext
	case RoleWebSearch:
		return r.WebSearch
	case RoleBackground:
		return r.Background
	case RoleImage:
		return r.Image
	}
	return ""
}

// HasValues reports whether at least one role is non-empty. A Router only
// counts as defining a configuration layer when this is true.
func (r Router) HasValues() bool {
	for _, role := range Roles {
		if strings.TrimSpace(r.Get(role)) != "" {
			return true
		}
	}
	return false
}

// Provider is one upstream entry in the global document's registry.
type Provider struct {
	Name   string   `json:"name"`
	Models []string `json:"models"`
}

// GlobalConfig is the daemon's global configuration document. Fields
// beyond Providers and Router belong to the daemon and are left untouched
// by routerctl's surgical mutations.
type GlobalConfig struct {
	Providers []Provider `json:"Providers"`
	Router    Router     `json:"Router"`
}

// ScopedConfig is the shape shared by project and session override
// documents.
type ScopedConfig struct {
	Router Router `json:"Router"`
}

// ModelEntries flattens the provider registry into catalog entries,
// preserving document order. Ordering matters: alias collisions and score
// ties both resolve by first occurrence.
func (g *GlobalConfig) ModelEntries() []registry.ModelEntry {
	var entries []registry.ModelEntry
	for _, p := range g.Providers {
		for _, m := range p.Models {
			entries = append(entries, registry.NewModelEntry(p.Name, m))
		}
	}
	return entries
}

// LoadGlobal parses the global document. A missing or unparseable file
// yields an empty config and ok=false; neither is fatal.
func LoadGlobal(path string) (*GlobalConfig, bool) {
	var cfg GlobalConfig
	if !loadJSON(path, &cfg) {
		return &GlobalConfig{}, false
	}
	return &cfg, true
}

// LoadScoped parses a project or session override document with the same
// absent-on-error semantics as LoadGlobal.
func LoadScoped(path string) (*ScopedConfig, bool) {
	var cfg ScopedConfig
	if !loadJSON(path, &cfg) {
		return &ScopedConfig{}, false
	}
	return &cfg, true
}

func loadJSON(path string, v interface{}) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false
	}
	return true
}

// ParseModelRef splits a persisted "provider,model" reference. The model
// part may itself contain commas-free arbitrary text; only the first comma
// separates.
func ParseModelRef(ref string) (provider, model string, ok bool) {
	provider, model, ok = strings.Cut(ref, ",")
	provider = strings.TrimSpace(provider)
	model = strings.TrimSpace(model)
	if !ok || provider == "" || model == "" {
		return "", "", false
	}
	return provider, model, true
}

// FormatModelRef renders a provider/model pair in the persisted comma form.
func FormatModelRef(provider, model string) string {
	return fmt.Sprintf("%s,%s", provider, model)
}
