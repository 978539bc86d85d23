// /home/krylon/go/src/github.com/blicero/hygieia/backend/03_backend_abort_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 14. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-14 20:41:17 krylon>

package backend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blicero/hygieia/common"
	"github.com/blicero/hygieia/database"
	"github.com/blicero/hygieia/logdomain"
	"github.com/blicero/hygieia/objects/outcome"
	"github.com/blicero/hygieia/scheduler"
	"github.com/blicero/hygieia/state"
)

var errReadOnly = errors.New("autostart directory is read-only")

type brokenLauncher struct{}

func (brokenLauncher) IsEnabled() bool { return false }
func (brokenLauncher) Enable() error   { return errReadOnly }
func (brokenLauncher) Disable() error  { return errReadOnly }

// A Daemon that fails halfway through summon must not leave background
// checks running against its closed pool.
func TestAbortStopsTicker(t *testing.T) {
	var (
		err  error
		half = &Daemon{active: true}
	)

	if half.pool, err = database.NewPool(1); err != nil {
		t.Fatalf("Cannot create pool: %s", err.Error())
	} else if half.ticker, err = scheduler.NewTicker(func(context.Context) (outcome.Outcome, error) {
		return outcome.NoData, nil
	}); err != nil {
		t.Fatalf("Cannot create ticker: %s", err.Error())
	} else if err = half.ticker.Register(time.Hour); err != nil {
		t.Fatalf("Cannot register ticker: %s", err.Error())
	}

	half.abort()

	if half.ticker.IsRegistered() {
		t.Error("Ticker is still registered after abort")
	} else if half.IsAlive() {
		t.Error("Daemon is still alive after abort")
	} else if _, err = half.pool.Get(); !errors.Is(err, database.ErrPoolClosed) {
		t.Errorf("Pool should be closed after abort, Get returned %v", err)
	}
} // func TestAbortStopsTicker(t *testing.T)

// If the autostart entry cannot be written, enabling notifications
// fails as a whole: no background checks run and none are restored
// after a restart.
func TestSetNotificationsAutostartFailure(t *testing.T) {
	var (
		err  error
		prev error
		on   bool
		was  bool
		half = &Daemon{
			active: true,
			cfg:    common.Config{Interval: time.Hour},
		}
	)

	if half.log, err = common.GetLogger(logdomain.Backend); err != nil {
		t.Fatalf("Cannot create logger: %s", err.Error())
	} else if half.pool, err = database.NewPool(1); err != nil {
		t.Fatalf("Cannot create pool: %s", err.Error())
	} else if half.ticker, err = scheduler.NewTicker(func(context.Context) (outcome.Outcome, error) {
		return outcome.NoData, nil
	}); err != nil {
		t.Fatalf("Cannot create ticker: %s", err.Error())
	}

	defer half.abort()

	half.kv = database.NewKV(half.pool)
	half.store = state.New(half.kv)
	half.sched = scheduler.WithAutostart(half.ticker, brokenLauncher{})

	// The database is shared with the other tests.
	if was, prev = half.store.BackgroundRegistered(); prev == nil {
		defer half.store.SetBackgroundRegistered(was) // nolint: errcheck
	}

	if err = half.store.SetBackgroundRegistered(false); err != nil {
		t.Fatalf("Cannot reset registration: %s", err.Error())
	} else if err = half.setNotifications(true); !errors.Is(err, errReadOnly) {
		t.Errorf("Launcher failure was not returned: %v", err)
	} else if half.sched.IsRegistered() {
		t.Error("Background checks are running although enabling them failed")
	} else if on, err = half.store.BackgroundRegistered(); err != nil {
		t.Errorf("Cannot read registration: %s", err.Error())
	} else if on {
		t.Error("Failed registration was persisted")
	}
} // func TestSetNotificationsAutostartFailure(t *testing.T)
