// /home/krylon/go/src/github.com/blicero/hygieia/scheduler/scheduler.go
// -*- mode: go; coding: utf-8; -*-
// Created on 07. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-11 13:40:02 krylon>

// Package scheduler runs the goal check periodically in the background.
//
// The interval passed to Register is a hint; how closely it is honored
// depends on the implementation.
package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/blicero/hygieia/common"
	"github.com/blicero/hygieia/logdomain"
	"github.com/blicero/hygieia/objects/outcome"
)

// DefaultInterval is used when Register is given a non-positive hint.
const DefaultInterval = time.Minute * 15

// Scheduler is something that can run a check periodically.
type Scheduler interface {
	Register(interval time.Duration) error
	Unregister() error
	IsRegistered() bool
}

// Task is the check a Ticker runs.
type Task func(ctx context.Context) (outcome.Outcome, error)

// Stats counts the runs of a Ticker.
type Stats struct {
	Runs        int
	NewData     int
	NoData      int
	Failed      int
	LastRun     time.Time
	LastOutcome outcome.Outcome
}

// Ticker is a Scheduler that runs its Task in a goroutine of its own, at
// a fixed interval, for as long as the process lives.
type Ticker struct {
	log       *log.Logger
	task      Task
	lock      sync.Mutex
	cancel    context.CancelFunc
	done      chan struct{}
	interval  time.Duration
	statsLock sync.RWMutex
	stats     Stats
}

// NewTicker creates an unregistered Ticker for task.
func NewTicker(task Task) (*Ticker, error) {
	var (
		err error
		t   = &Ticker{task: task}
	)

	if t.log, err = common.GetLogger(logdomain.Scheduler); err != nil {
		return nil, err
	}

	return t, nil
} // func NewTicker(task Task) (*Ticker, error)

// Register starts running the Task every interval. If the Ticker is
// already registered, it is restarted with the new interval.
func (t *Ticker) Register(interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultInterval
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	t.stop()

	var ctx, cancel = context.WithCancel(context.Background())

	t.cancel = cancel
	t.done = make(chan struct{})
	t.interval = interval

	t.log.Printf("[INFO] Background check registered, interval %s\n",
		interval)

	go t.loop(ctx, interval, t.done)

	return nil
} // func (t *Ticker) Register(interval time.Duration) error

// Unregister stops the Ticker. Unregistering a Ticker that is not
// registered does nothing.
func (t *Ticker) Unregister() error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.cancel != nil {
		t.log.Println("[INFO] Background check unregistered")
	}

	t.stop()
	return nil
} // func (t *Ticker) Unregister() error

// IsRegistered returns true if the Ticker is running.
func (t *Ticker) IsRegistered() bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.cancel != nil
} // func (t *Ticker) IsRegistered() bool

// Interval returns the interval of the running Ticker, or 0 if it is
// not registered.
func (t *Ticker) Interval() time.Duration {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.interval
} // func (t *Ticker) Interval() time.Duration

// Stats returns a copy of the Ticker's counters.
func (t *Ticker) Stats() Stats {
	t.statsLock.RLock()
	defer t.statsLock.RUnlock()
	return t.stats
} // func (t *Ticker) Stats() Stats

// stop must be called with lock held.
func (t *Ticker) stop() {
	if t.cancel == nil {
		return
	}

	t.cancel()
	<-t.done
	t.cancel = nil
	t.done = nil
	t.interval = 0
} // func (t *Ticker) stop()

func (t *Ticker) loop(ctx context.Context, interval time.Duration, done chan<- struct{}) {
	defer close(done)
	defer t.log.Println("[TRACE] Quitting scheduler loop")

	var ticker = time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.run(ctx)
		}
	}
} // func (t *Ticker) loop(ctx context.Context, interval time.Duration, done chan<- struct{})

func (t *Ticker) run(ctx context.Context) {
	var res, err = t.task(ctx)

	if err != nil {
		t.log.Printf("[ERROR] Background check failed: %s\n",
			err.Error())
	} else {
		t.log.Printf("[TRACE] Background check finished: %s\n", res)
	}

	t.statsLock.Lock()
	defer t.statsLock.Unlock()

	t.stats.Runs++
	t.stats.LastRun = time.Now()
	t.stats.LastOutcome = res

	switch res {
	case outcome.NewData:
		t.stats.NewData++
	case outcome.NoData:
		t.stats.NoData++
	case outcome.Failed:
		t.stats.Failed++
	}
} // func (t *Ticker) run(ctx context.Context)
