// Copyright 2026 The routerctl Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package main provides the entry point for routerctl, the command-line
// companion to the local routing daemon. It resolves fuzzy model queries
// against the daemon's provider registry and manages the global / project /
// session routing configuration hierarchy.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/traylinx/routerctl/internal/buildinfo"
	"github.com/traylinx/routerctl/internal/cmd"
	"github.com/traylinx/routerctl/internal/config"
	"github.com/traylinx/routerctl/internal/logging"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// init initializes the shared logger setup.
func init() {
	logging.SetupBaseLogger()
	buildinfo.Version = Version
	buildinfo.Commit = Commit
	buildinfo.BuildDate = BuildDate
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: routerctl <command> [flags]

Commands:
  model <query>        List models matching a fuzzy query
  use <query>          Route a role to the best match for a query
  clear                Remove a role from a configuration layer
  status               Show the effective routing configuration
  session start|stop   Register or drop the current session record
  watch                Follow the global configuration for changes
  ui                   Open the daemon management UI
  version              Print build information
`)
}

func main() {
	// Optional .env overlay, same as the daemon's own startup.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	app, err := cmd.NewApp()
	if err != nil {
		log.Errorf("startup failed: %v", err)
		os.Exit(1)
	}
	logging.SetDebug(app.Settings.Debug)
	if err := logging.ConfigureLogOutput(app.Settings.LoggingToFile, app.StateBox.LogsDir(), app.Settings.LogsMaxTotalSizeMB); err != nil {
		log.Warnf("failed to configure log output: %v", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		log.Errorf("failed to determine working directory: %v", err)
		os.Exit(1)
	}

	if err := dispatch(app, cwd, os.Args[1], os.Args[2:]); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func dispatch(app *cmd.App, cwd, command string, args []string) error {
	switch command {
	case "model":
		fs := flag.NewFlagSet("model", flag.ExitOnError)
		limit := fs.Int("limit", 10, "Maximum number of matches to show")
		_ = fs.Parse(args)
		if fs.NArg() < 1 {
			return fmt.Errorf("model: query argument required")
		}
		return app.Model(fs.Arg(0), *limit)

	case "use":
		fs := flag.NewFlagSet("use", flag.ExitOnError)
		level := fs.String("level", string(config.LevelGlobal), "Configuration layer: global, project or session")
		role := fs.String("role", config.RoleDefault, "Router role to set")
		_ = fs.Parse(args)
		if fs.NArg() < 1 {
			return fmt.Errorf("use: query argument required")
		}
		return app.Use(cwd, config.Level(*level), *role, fs.Arg(0))

	case "clear":
		fs := flag.NewFlagSet("clear", flag.ExitOnError)
		level := fs.String("level", string(config.LevelGlobal), "Configuration layer: global, project or session")
		role := fs.String("role", config.RoleDefault, "Router role to clear")
		_ = fs.Parse(args)
		return app.Clear(cwd, config.Level(*level), *role)

	case "status":
		return app.Status(cwd)

	case "session":
		if len(args) < 1 {
			return fmt.Errorf("session: start or stop required")
		}
		switch args[0] {
		case "start":
			fs := flag.NewFlagSet("session start", flag.ExitOnError)
			id := fs.String("id", "", "Session identifier (minted when empty)")
			_ = fs.Parse(args[1:])
			return app.SessionStart(*id, cwd)
		case "stop":
			return app.SessionStop()
		}
		return fmt.Errorf("session: unknown subcommand %q", args[0])

	case "watch":
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		return app.Watch(ctx, cwd)

	case "ui":
		return app.UI()

	case "version":
		fmt.Printf("routerctl %s (%s, built %s)\n", buildinfo.Version, buildinfo.Commit, buildinfo.BuildDate)
		return nil

	case "help", "-h", "--help":
		usage()
		return nil
	}

	usage()
	return fmt.Errorf("unknown command %q", command)
}
