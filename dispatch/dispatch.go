// /home/krylon/go/src/github.com/blicero/hygieia/dispatch/dispatch.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-11 10:14:38 krylon>

// Package dispatch runs the check that decides whether today's goal
// notification is owed, sends it, and records that it was sent.
//
// Both the periodic background check and the foreground countdown call
// into the same Dispatcher. At most one check runs at any time; a call
// arriving while another is in progress returns immediately.
package dispatch

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/blicero/hygieia/clock"
	"github.com/blicero/hygieia/common"
	"github.com/blicero/hygieia/goal"
	"github.com/blicero/hygieia/logdomain"
	"github.com/blicero/hygieia/objects"
	"github.com/blicero/hygieia/objects/outcome"
)

// Origin tells where a check was started from.
type Origin string

// Background checks are run by the scheduler, Foreground checks by the
// countdown display.
const (
	Background Origin = "background"
	Foreground Origin = "foreground"
)

// Store is the part of the state store the Dispatcher needs.
type Store interface {
	Load() (objects.Snapshot, error)
	MarkNotified(deadline time.Time) error
}

// Notifier delivers a notification to the user.
type Notifier interface {
	Notify(ctx context.Context, n objects.Notification) error
}

// Gate reports whether background checks are currently registered.
// Foreground checks only notify while they are.
type Gate interface {
	IsRegistered() bool
}

// Recorder keeps a log of notifications that were sent.
type Recorder interface {
	Record(e *objects.HistoryEntry) error
}

// Option configures a Dispatcher.
type Option func(d *Dispatcher)

// WithClock sets the source of the current time.
func WithClock(c clock.Clock) Option {
	return func(d *Dispatcher) { d.clk = c }
}

// WithRand sets the random source used to pick a reminder.
func WithRand(r objects.Intner) Option {
	return func(d *Dispatcher) { d.rng = r }
}

// WithGate sets the Gate consulted for foreground checks.
func WithGate(g Gate) Option {
	return func(d *Dispatcher) { d.gate = g }
}

// WithRecorder sets where sent notifications are logged.
func WithRecorder(r Recorder) Option {
	return func(d *Dispatcher) { d.rec = r }
}

// WithLogger overrides the Dispatcher's logger.
func WithLogger(l *log.Logger) Option {
	return func(d *Dispatcher) { d.log = l }
}

// Dispatcher performs the goal check.
type Dispatcher struct {
	log     *log.Logger
	store   Store
	notify  Notifier
	catalog objects.Catalog
	clk     clock.Clock
	rng     objects.Intner
	gate    Gate
	rec     Recorder
	busy    atomic.Bool
}

// New creates a Dispatcher.
func New(store Store, n Notifier, cat objects.Catalog, opts ...Option) (*Dispatcher, error) {
	var (
		err error
		d   = &Dispatcher{
			store:   store,
			notify:  n,
			catalog: cat,
			clk:     clock.System{},
		}
	)

	if cat.Len() == 0 {
		return nil, objects.ErrEmptyCatalog
	}

	for _, o := range opts {
		o(d)
	}

	if d.log == nil {
		if d.log, err = common.GetLogger(logdomain.Dispatcher); err != nil {
			return nil, err
		}
	}

	if d.rng == nil {
		d.rng = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint: gosec
	}

	return d, nil
} // func New(store Store, n Notifier, cat objects.Catalog, opts ...Option) (*Dispatcher, error)

// Busy returns true while a check is in progress.
func (d *Dispatcher) Busy() bool {
	return d.busy.Load()
} // func (d *Dispatcher) Busy() bool

// Dispatch runs one check. If another check is already in progress, it
// returns NoData without doing anything.
//
// Failing to deliver a notification is logged but not reported; failing
// to read or update the state store is reported as Failed.
func (d *Dispatcher) Dispatch(ctx context.Context, origin Origin) (outcome.Outcome, error) {
	if !d.busy.CompareAndSwap(false, true) {
		d.log.Printf("[TRACE] %s check skipped, another check is in progress\n",
			origin)
		return outcome.NoData, nil
	}
	defer d.busy.Store(false)

	var (
		err  error
		snap objects.Snapshot
		now  = d.clk.Now()
		ev   goal.Evaluation
	)

	if snap, err = d.store.Load(); err != nil {
		d.log.Printf("[ERROR] Cannot load goal state: %s\n",
			err.Error())
		return outcome.Failed, fmt.Errorf("cannot load goal state: %w", err)
	}

	ev = goal.Evaluate(now, snap)

	d.log.Printf("[TRACE] %s check at %s: %s (%s), deadline %s\n",
		origin,
		now.Format(common.TimestampFormat),
		ev.State,
		ev.Detail,
		ev.Deadline.Format(common.TimestampFormat))

	if !ev.Fires() {
		return outcome.NoData, nil
	}

	var rem = d.catalog.Pick(d.rng)

	if origin == Background || (d.gate != nil && d.gate.IsRegistered()) {
		if err = d.notify.Notify(ctx, &rem); err != nil {
			d.log.Printf("[ERROR] Failed to send notification %q: %s\n",
				rem.Title,
				err.Error())
		}
	} else {
		d.log.Printf("[DEBUG] Notifications are disabled, not sending %q\n",
			rem.Title)
	}

	if err = d.store.MarkNotified(ev.Deadline); err != nil {
		d.log.Printf("[ERROR] Cannot mark deadline %s as notified: %s\n",
			ev.Deadline.Format(common.TimestampFormat),
			err.Error())
		return outcome.Failed, fmt.Errorf("cannot mark notification: %w", err)
	}

	if d.rec != nil {
		var entry = &objects.HistoryEntry{
			Title:    rem.Title,
			Body:     rem.Body,
			Origin:   string(origin),
			Deadline: ev.Deadline,
			FiredAt:  now,
		}

		if err = d.rec.Record(entry); err != nil {
			d.log.Printf("[ERROR] Cannot record notification %q: %s\n",
				rem.Title,
				err.Error())
		}
	}

	return outcome.NewData, nil
} // func (d *Dispatcher) Dispatch(ctx context.Context, origin Origin) (outcome.Outcome, error)

// State reports the current verdict without acting on it.
func (d *Dispatcher) State() (goal.Evaluation, objects.Snapshot, error) {
	var (
		err  error
		snap objects.Snapshot
	)

	if snap, err = d.store.Load(); err != nil {
		return goal.Evaluation{}, snap, err
	}

	return goal.Evaluate(d.clk.Now(), snap), snap, nil
} // func (d *Dispatcher) State() (goal.Evaluation, objects.Snapshot, error)
