// /home/krylon/go/src/github.com/blicero/hygieia/main.go
// -*- mode: go; coding: utf-8; -*-
// Created on 01. 07. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-13 14:20:51 krylon>

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blicero/hygieia/backend"
	"github.com/blicero/hygieia/common"
	"github.com/blicero/hygieia/gui"
	"github.com/blicero/hygieia/ui"
)

func main() {
	var (
		err                error
		cfg                common.Config
		appDir, mode, addr string
	)

	flag.StringVar(
		&appDir,
		"appdir",
		common.BaseDir,
		"The directory where application-specific files live")

	flag.StringVar(
		&mode,
		"mode",
		"backend",
		"Whether to run the *backend*, the terminal *frontend* or the *gui*",
	)

	flag.StringVar(
		&addr,
		"address",
		"",
		"Address to either listen on (backend) or connect to (frontend, gui), overrides HYGIEIA_ADDR",
	)

	flag.Parse()

	if mode == "frontend" {
		common.LogToStdout = false
	} else {
		fmt.Printf("%s %s (built %s)\n",
			common.AppName,
			common.Version,
			common.BuildStamp)
	}

	if appDir != common.BaseDir {
		if err = common.SetBaseDir(appDir); err != nil {
			fmt.Fprintf(
				os.Stderr,
				"Cannot set base directory to %s: %s\n",
				appDir,
				err.Error())
			os.Exit(1)
		}
	} else if err = common.InitApp(); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot initialize application directory: %s\n",
			err.Error())
		os.Exit(1)
	}

	if cfg, err = common.LoadConfig(); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot load configuration: %s\n",
			err.Error())
		os.Exit(1)
	} else if err = common.SetLogLevel(cfg.LogLevel); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot set log level: %s\n",
			err.Error())
		os.Exit(1)
	}

	if addr != "" {
		cfg.Address = addr
	}

	switch mode {
	case "backend":
		runBackend(cfg)
	case "frontend":
		var tui *ui.GUI

		if tui, err = ui.Create(cfg.Address); err != nil {
			fmt.Fprintf(
				os.Stderr,
				"Cannot create terminal frontend: %s\n",
				err.Error())
			os.Exit(1)
		} else if err = tui.Run(); err != nil {
			fmt.Fprintf(
				os.Stderr,
				"Frontend failed: %s\n",
				err.Error())
			os.Exit(1)
		}
	case "gui":
		var win *gui.GUI

		if win, err = gui.Create(cfg.Address); err != nil {
			fmt.Fprintf(
				os.Stderr,
				"Cannot create GUI: %s\n",
				err.Error())
			os.Exit(1)
		}

		win.Run()
	default:
		fmt.Fprintf(
			os.Stderr,
			"Unknown mode %q\n",
			mode,
		)

		os.Exit(1)
	}
}

func runBackend(cfg common.Config) {
	var (
		err    error
		daemon *backend.Daemon
	)

	if daemon, err = backend.Summon(cfg); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Failed to initialize backend: %s\n",
			err.Error())
		os.Exit(1)
	}

	var sigQ = make(chan os.Signal, 1)
	var ticker = time.NewTicker(time.Second * 2)
	defer ticker.Stop()

	signal.Notify(sigQ, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)

	for daemon.IsAlive() {
		select {
		case sig := <-sigQ:
			fmt.Printf("Quitting on signal %s\n", sig)
			if err = daemon.Banish(); err != nil {
				fmt.Fprintf(
					os.Stderr,
					"Error shutting down backend: %s\n",
					err.Error())
				os.Exit(1)
			}
			return
		case <-ticker.C:
			continue
		}
	}
} // func runBackend(cfg common.Config)
