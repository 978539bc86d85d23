// /home/krylon/go/src/github.com/blicero/hygieia/scheduler/autostart.go
// -*- mode: go; coding: utf-8; -*-
// Created on 07. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-11 14:05:51 krylon>

package scheduler

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/blicero/hygieia/common"
	"github.com/emersion/go-autostart"
)

// Launcher manages an entry that starts the application when the user
// logs in. *autostart.App satisfies it.
type Launcher interface {
	IsEnabled() bool
	Enable() error
	Disable() error
}

// NewLauncher creates the autostart entry for the running executable,
// started with the given arguments.
func NewLauncher(args ...string) (*autostart.App, error) {
	var (
		err  error
		exec string
	)

	if exec, err = os.Executable(); err != nil {
		return nil, err
	} else if exec, err = filepath.EvalSymlinks(exec); err != nil {
		return nil, err
	}

	return &autostart.App{
		Name:        common.AppName,
		DisplayName: fmt.Sprintf("%s %s", common.AppName, common.Version),
		Exec:        append([]string{exec}, args...),
	}, nil
} // func NewLauncher(args ...string) (*autostart.App, error)

// Autostart is a Scheduler that keeps a login autostart entry in step
// with the registration of another Scheduler, so background checks
// resume after a reboot.
type Autostart struct {
	Scheduler
	launcher Launcher
}

// WithAutostart wraps s.
func WithAutostart(s Scheduler, l Launcher) *Autostart {
	return &Autostart{Scheduler: s, launcher: l}
} // func WithAutostart(s Scheduler, l Launcher) *Autostart

// Register registers the wrapped Scheduler and enables the autostart
// entry. If the entry cannot be enabled, the wrapped Scheduler is put
// back the way it was, so a failed Register leaves nothing running that
// was not running before.
func (a *Autostart) Register(interval time.Duration) error {
	var was = a.Scheduler.IsRegistered()

	if err := a.Scheduler.Register(interval); err != nil {
		return err
	} else if a.launcher.IsEnabled() {
		return nil
	} else if err = a.launcher.Enable(); err != nil {
		if !was {
			a.Scheduler.Unregister() // nolint: errcheck
		}
		return fmt.Errorf("cannot enable autostart: %w", err)
	}

	return nil
} // func (a *Autostart) Register(interval time.Duration) error

// Unregister unregisters the wrapped Scheduler and removes the
// autostart entry.
func (a *Autostart) Unregister() error {
	if err := a.Scheduler.Unregister(); err != nil {
		return err
	} else if !a.launcher.IsEnabled() {
		return nil
	} else if err = a.launcher.Disable(); err != nil {
		return fmt.Errorf("cannot disable autostart: %w", err)
	}

	return nil
} // func (a *Autostart) Unregister() error
