// Copyright 2026 The routerctl Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cmd implements the routerctl command surface. Each command is
// one short-lived invocation: resolve something, print it or write one
// file, exit.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/traylinx/routerctl/internal/config"
	"github.com/traylinx/routerctl/internal/daemon"
	"github.com/traylinx/routerctl/internal/identity"
	"github.com/traylinx/routerctl/internal/registry"
	"github.com/traylinx/routerctl/internal/util"
)

// ErrNoMatch is returned when a fuzzy query matches nothing.
var ErrNoMatch = errors.New("no model matches query")

// App carries the wired dependencies for one invocation.
type App struct {
	StateBox *util.StateBox
	Env      *identity.Environ
	Settings *config.Settings

	catalogs registry.CatalogCache
}

// NewApp resolves the environment, state directory, and settings.
func NewApp() (*App, error) {
	env, err := identity.NewEnviron()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve environment: %w", err)
	}
	sb, err := util.NewStateBox()
	if err != nil {
		return nil, err
	}
	settings, err := config.LoadSettings(sb.SettingsPath())
	if err != nil {
		return nil, err
	}
	return &App{StateBox: sb, Env: env, Settings: settings}, nil
}

// resolver builds the hierarchy resolver for this invocation.
func (a *App) resolver() *config.Resolver {
	return config.NewResolver(a.StateBox, a.Env)
}

// matches runs a fuzzy query against the global document's registry.
func (a *App) matches(query string) []registry.Match {
	global, ok := config.LoadGlobal(a.StateBox.GlobalConfigPath())
	if !ok {
		log.Warnf("global config %s absent or unparseable; catalog is empty", a.StateBox.GlobalConfigPath())
	}
	catalog := a.catalogs.Get(global.ModelEntries())
	return registry.Dedupe(catalog.Match(query))
}

// Model prints the ranked matches for a query, best first.
func (a *App) Model(query string, limit int) error {
	results := a.matches(query)
	if len(results) == 0 {
		fmt.Printf("No models match %q.\n", query)
		return nil
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	for i, m := range results {
		fmt.Printf("%2d. %-50s %5.1f\n", i+1, m.Entry.FullName, m.Score)
	}
	return nil
}

// Use resolves a fuzzy query to a single model and writes it into the
// router role at the requested level.
func (a *App) Use(cwd string, level config.Level, role, query string) error {
	results := a.matches(query)
	if len(results) == 0 {
		return fmt.Errorf("%w: %q", ErrNoMatch, query)
	}
	best := results[0].Entry

	id := identity.Resolve(a.Env, cwd)
	value := config.FormatModelRef(best.Provider, best.Model)
	if err := config.SetRouterRole(a.StateBox, level, id, role, value); err != nil {
		return err
	}
	fmt.Printf("Set %s/%s = %s (%s)\n", level, role, best.FullName, matchNote(results))
	return nil
}

// matchNote summarizes how confident the match was, flagging runners-up
// that scored close enough to be worth a second look.
func matchNote(results []registry.Match) string {
	if len(results) == 1 {
		return "only match"
	}
	if results[0].Score-results[1].Score < 10 {
		return fmt.Sprintf("score %.0f, next: %s at %.0f", results[0].Score, results[1].Entry.FullName, results[1].Score)
	}
	return fmt.Sprintf("score %.0f", results[0].Score)
}

// Clear removes a router role at the requested level.
func (a *App) Clear(cwd string, level config.Level, role string) error {
	id := identity.Resolve(a.Env, cwd)
	if err := config.ClearRouterRole(a.StateBox, level, id, role); err != nil {
		return err
	}
	fmt.Printf("Cleared %s/%s\n", level, role)
	return nil
}

// Status prints the effective routing configuration, its provenance, and
// daemon reachability.
func (a *App) Status(cwd string) error {
	res := a.resolver().Resolve(cwd)

	fmt.Printf("Scope:    %s", res.Level)
	if res.Identity.ProjectID != "" {
		fmt.Printf("  project=%s", res.Identity.ProjectID)
	}
	if res.Identity.SessionID != "" {
		fmt.Printf("  session=%s (via %s)", res.Identity.SessionID, res.Identity.SessionSource)
	}
	fmt.Println()

	for _, role := range config.Roles {
		value := res.Router.Get(role)
		if value == "" {
			continue
		}
		display := value
		if provider, model, ok := config.ParseModelRef(value); ok {
			display = provider + "/" + model
		}
		fmt.Printf("  %-12s %s\n", role, display)
	}
	if !res.Router.HasValues() {
		fmt.Println("  (no routing configured)")
	}

	fmt.Printf("Catalog:  %d providers, %d models\n", len(res.Global.Providers), len(res.Global.ModelEntries()))

	client := daemon.NewClient(a.Settings.DaemonOrigin, a.StateBox)
	if client.Reachable() {
		fmt.Printf("Daemon:   reachable at %s\n", client.Origin)
	} else {
		fmt.Printf("Daemon:   not reachable at %s\n", client.Origin)
	}
	return nil
}

// SessionStart records a session cache file owned by the invoking
// process's parent, which is the session host that spawned us. An empty
// id mints a fresh one.
func (a *App) SessionStart(sessionID, cwd string) error {
	if strings.TrimSpace(sessionID) == "" {
		sessionID = uuid.New().String()
	}
	ownerPid := a.Env.Pid
	if parent, ok := a.Env.ParentPid(a.Env.Pid); ok {
		ownerPid = parent
	}
	if err := identity.WriteSessionCache(a.Env, sessionID, ownerPid, cwd); err != nil {
		return err
	}
	fmt.Printf("Session %s registered for pid %d\n", sessionID, ownerPid)
	return nil
}

// SessionStop removes the cache record written by SessionStart.
func (a *App) SessionStop() error {
	ownerPid := a.Env.Pid
	if parent, ok := a.Env.ParentPid(a.Env.Pid); ok {
		ownerPid = parent
	}
	if err := identity.RemoveSessionCache(a.Env, ownerPid); err != nil {
		return err
	}
	fmt.Printf("Session record for pid %d removed\n", ownerPid)
	return nil
}

// Watch follows the global document and reports routing changes until
// interrupted. The catalog cache is invalidated on every reload so the
// next query rebuilds aliases from the new registry.
func (a *App) Watch(ctx context.Context, cwd string) error {
	watcher, err := config.NewWatcher(a.StateBox.GlobalConfigPath(), func(cfg *config.GlobalConfig) {
		a.catalogs.Invalidate()
		res := a.resolver().Resolve(cwd)
		log.Infof("config reloaded: %d providers, effective scope %s", len(cfg.Providers), res.Level)
	})
	if err != nil {
		return err
	}
	log.Infof("watching %s", a.StateBox.GlobalConfigPath())
	err = watcher.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// UI opens the daemon's management interface in the browser.
func (a *App) UI() error {
	client := daemon.NewClient(a.Settings.DaemonOrigin, a.StateBox)
	if !client.Reachable() {
		fmt.Fprintf(os.Stderr, "warning: daemon not reachable at %s\n", client.Origin)
	}
	return client.OpenUI()
}
