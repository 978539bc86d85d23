// /home/krylon/go/src/github.com/blicero/hygieia/backend/backend.go
// -*- mode: go; coding: utf-8; -*-
// Created on 01. 07. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-12 09:47:13 krylon>

// Package backend implements the ... backend of the application,
// the part that deals with the database and dbus.
package backend

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/blicero/hygieia/clock"
	"github.com/blicero/hygieia/common"
	"github.com/blicero/hygieia/database"
	"github.com/blicero/hygieia/dispatch"
	"github.com/blicero/hygieia/logdomain"
	"github.com/blicero/hygieia/objects"
	"github.com/blicero/hygieia/objects/outcome"
	"github.com/blicero/hygieia/scheduler"
	"github.com/blicero/hygieia/state"
	"github.com/godbus/dbus/v5"
	"github.com/gorilla/mux"
	"github.com/grandcat/zeroconf"
)

const (
	notifyObj    = "org.freedesktop.Notifications"
	notifyPath   = "/org/freedesktop/Notifications"
	notifyMethod = "org.freedesktop.Notifications.Notify"
	queueDepth   = 5
	queueTimeout = time.Second * 2
	poolSize     = 4
	historyKeep  = clock.Day * 90
	purgeEvery   = time.Hour
)

// ErrNoBus is returned when a notification cannot be posted because
// there is no connection to the DBus session bus.
var ErrNoBus = errors.New("Not connected to DBus session bus")

// ErrQueueFull is returned when the notification queue does not drain
// in time.
var ErrQueueFull = errors.New("Notification queue is full")

// Daemon is the centerpiece of the backend, coordinating between the database, the clients, etc.
type Daemon struct {
	log        *log.Logger
	cfg        common.Config
	clk        clock.Clock
	pool       *database.Pool
	kv         *database.KV
	store      *state.Store
	disp       *dispatch.Dispatcher
	ticker     *scheduler.Ticker
	sched      scheduler.Scheduler
	bus        *dbus.Conn
	lock       sync.RWMutex
	active     bool
	Queue      chan objects.Notification
	web        http.Server
	router     *mux.Router
	hostname   string
	dnssd      *zeroconf.Server
	idLock     sync.Mutex
	idCnt      int64
}

// Summon summons a Daemon and returns it. No sacrifice or idolatry is required.
func Summon(cfg common.Config) (*Daemon, error) {
	return summon(cfg, clock.System{})
} // func Summon(cfg common.Config) (*Daemon, error)

func summon(cfg common.Config, clk clock.Clock) (*Daemon, error) {
	var (
		err   error
		first bool
		d     = &Daemon{
			cfg:    cfg,
			clk:    clk,
			active: true,
			Queue:  make(chan objects.Notification, queueDepth),
			router: mux.NewRouter(),
		}
	)

	if d.cfg.Message == "" {
		d.cfg.Message = common.DefaultDeadlineMessage
	}

	if d.log, err = common.GetLogger(logdomain.Backend); err != nil {
		fmt.Printf("ERROR initializing Logger: %s\n",
			err.Error())
		return nil, err
	} else if d.hostname, err = os.Hostname(); err != nil {
		d.log.Printf("[ERROR] Cannot query hostname: %s\n",
			err.Error())
		return nil, err
	} else if d.pool, err = database.NewPool(poolSize); err != nil {
		d.log.Printf("[ERROR] Cannot initialize database pool: %s\n",
			err.Error())
		return nil, err
	}

	d.kv = database.NewKV(d.pool)
	d.store = state.New(d.kv)

	if d.ticker, err = scheduler.NewTicker(d.backgroundCheck); err != nil {
		d.log.Printf("[ERROR] Cannot create scheduler: %s\n",
			err.Error())
		d.pool.Close() // nolint: errcheck
		return nil, err
	}

	d.sched = d.ticker

	if cfg.Autostart {
		var launcher scheduler.Launcher

		if launcher, err = scheduler.NewLauncher("-mode", "backend"); err != nil {
			d.log.Printf("[ERROR] Cannot create autostart entry, background checks will not survive a reboot: %s\n",
				err.Error())
		} else {
			d.sched = scheduler.WithAutostart(d.ticker, launcher)
		}
	}

	if d.disp, err = dispatch.New(
		d.store,
		d,
		objects.DefaultCatalog(),
		dispatch.WithClock(clk),
		dispatch.WithGate(d.sched),
		dispatch.WithRecorder(d.kv),
	); err != nil {
		d.log.Printf("[ERROR] Cannot create dispatcher: %s\n",
			err.Error())
		d.abort()
		return nil, err
	}

	if d.bus, err = dbus.SessionBus(); err != nil {
		d.log.Printf("[ERROR] Failed to connect to DBus Session bus, notifications will not be delivered: %s\n",
			err.Error())
		d.bus = nil
	}

	if first, err = d.store.FirstOpen(); err != nil {
		d.log.Printf("[ERROR] Cannot check for first run: %s\n",
			err.Error())
		d.abort()
		return nil, err
	} else if first {
		d.log.Println("[INFO] First run, enabling background checks")
		if err = d.store.SetOnboardingPending(); err != nil {
			d.log.Printf("[ERROR] Cannot remember to show onboarding: %s\n",
				err.Error())
		}
		if err = d.setNotifications(true); err != nil {
			d.log.Printf("[ERROR] Cannot enable background checks: %s\n",
				err.Error())
		}
	} else if err = d.restoreRegistration(); err != nil {
		d.log.Printf("[ERROR] Cannot restore background checks: %s\n",
			err.Error())
	}

	d.web.Addr = cfg.Address
	d.web.ErrorLog = d.log
	d.web.Handler = d.router

	if err = d.initWebHandlers(); err != nil {
		d.log.Printf("[ERROR] Failed to initialize web server: %s\n",
			err.Error())
		d.abort()
		return nil, err
	}

	if cfg.DNSSD {
		if err = d.initDNSSd(); err != nil {
			d.log.Printf("[ERROR] Cannot advertise service via DNS-SD: %s\n",
				err.Error())
		}
	}

	go d.notifyLoop()
	go d.dbLoop()
	go d.serveHTTP()

	return d, nil
} // func summon(cfg common.Config, clk clock.Clock) (*Daemon, error)

// abort releases what summon has acquired so far when it fails halfway.
func (d *Daemon) abort() {
	d.ticker.Unregister() // nolint: errcheck

	d.lock.Lock()
	d.active = false
	d.lock.Unlock()

	if d.bus != nil {
		d.bus.Close() // nolint: errcheck
		d.bus = nil
	}

	d.pool.Close() // nolint: errcheck
} // func (d *Daemon) abort()

// IsAlive returns true if the Daemon's active flag is set.
func (d *Daemon) IsAlive() bool {
	d.lock.RLock()
	var alive = d.active
	d.lock.RUnlock()

	return alive
} // func (d *Daemon) IsAlive() bool

// Banish clears the Daemon's active flag, telling components to shut down.
func (d *Daemon) Banish() error {
	var (
		err         error
		ctx, cancel = context.WithTimeout(context.Background(), time.Second*3)
	)
	defer cancel()

	if err = d.web.Shutdown(ctx); err != nil {
		d.log.Printf("[ERROR] Failed to shutdown web server: %s\n",
			err.Error())
	}

	if ctx.Err() != nil {
		err = ctx.Err()
		d.log.Printf("[ERROR] Failed to gracefully shut down web server: %s\n",
			ctx.Err().Error())
		d.web.Close() // nolint: errcheck
	}

	// Stop the ticker only, the autostart entry and the persisted
	// registration stay as they are for the next start.
	d.ticker.Unregister() // nolint: errcheck

	if d.dnssd != nil {
		d.dnssd.Shutdown()
		d.dnssd = nil
	}

	d.lock.Lock()
	d.active = false
	d.lock.Unlock()

	if d.bus != nil {
		d.bus.Close() // nolint: errcheck
	}

	if e := d.pool.Close(); e != nil && err == nil {
		err = e
	}

	return err
} // func (d *Daemon) Banish() error

// Notify queues a notification for delivery via DBus.
func (d *Daemon) Notify(ctx context.Context, n objects.Notification) error {
	var timer = time.NewTimer(queueTimeout)
	defer timer.Stop()

	select {
	case d.Queue <- n:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrQueueFull
	}
} // func (d *Daemon) Notify(ctx context.Context, n objects.Notification) error

func (d *Daemon) backgroundCheck(ctx context.Context) (outcome.Outcome, error) {
	return d.disp.Dispatch(ctx, dispatch.Background)
} // func (d *Daemon) backgroundCheck(ctx context.Context) (outcome.Outcome, error)

func (d *Daemon) setNotifications(on bool) error {
	var err error

	if on {
		err = d.sched.Register(d.cfg.Interval)
	} else {
		err = d.sched.Unregister()
	}

	if err != nil {
		return err
	}

	return d.store.SetBackgroundRegistered(on)
} // func (d *Daemon) setNotifications(on bool) error

func (d *Daemon) restoreRegistration() error {
	var (
		err error
		on  bool
	)

	if on, err = d.store.BackgroundRegistered(); err != nil {
		return err
	} else if on {
		return d.sched.Register(d.cfg.Interval)
	}

	return nil
} // func (d *Daemon) restoreRegistration() error

// takeOnboarding returns true exactly once after the first run, even if
// the Daemon was restarted before a frontend asked.
func (d *Daemon) takeOnboarding() bool {
	d.lock.Lock()
	defer d.lock.Unlock()

	var pending, err = d.store.TakeOnboarding()

	if err != nil {
		d.log.Printf("[ERROR] Cannot check for pending onboarding: %s\n",
			err.Error())
		return false
	}

	return pending
} // func (d *Daemon) takeOnboarding() bool

func (d *Daemon) notifyLoop() {
	defer d.log.Println("[TRACE] Quitting notifyLoop")

	var (
		err  error
		tick = time.NewTicker(queueTimeout)
	)
	defer tick.Stop()

	for d.IsAlive() {
		select {
		case <-tick.C:
			continue
		case m := <-d.Queue:
			var title, body = m.Payload()
			d.log.Printf("[DEBUG] Received Notification: %s\n%s\n",
				title,
				body)

			if err = d.notify(m); err != nil {
				d.log.Printf("[ERROR] Failed to post Notification %q: %s\n",
					title,
					err.Error())
			}
		}
	}
} // func (d *Daemon) notifyLoop()

func (d *Daemon) notify(n objects.Notification) error {
	if d.bus == nil {
		return ErrNoBus
	}

	var (
		obj        = d.bus.Object(notifyObj, notifyPath)
		head, body = n.Payload()
	)

	var res = obj.Call(
		notifyMethod,
		0,
		common.AppName,
		uint32(0),
		"",
		head,
		body,
		[]string{},
		map[string]dbus.Variant{},
		int32(-1),
	)

	if res.Err != nil {
		d.log.Printf("[ERROR] Cannot send Notification %q: %s\n",
			head,
			res.Err.Error())
		return res.Err
	}

	return nil
} // func (d *Daemon) notify(n objects.Notification) error

func (d *Daemon) dbLoop() {
	defer d.log.Println("[TRACE] dbLoop is shutting down")

	var ticker = time.NewTicker(purgeEvery)
	defer ticker.Stop()

	for d.IsAlive() {
		<-ticker.C

		if !d.IsAlive() {
			return
		} else if err := d.purgeHistory(); err != nil {
			d.log.Printf("[ERROR] Failed to purge notification history: %s\n",
				err.Error())
		}
	}
} // func (d *Daemon) dbLoop()

func (d *Daemon) purgeHistory() error {
	var (
		err    error
		cnt    int64
		cutoff = d.clk.Now().Add(-historyKeep)
	)

	if cnt, err = d.kv.Purge(cutoff); err != nil {
		return err
	} else if cnt > 0 {
		d.log.Printf("[DEBUG] Removed %d notifications sent before %s from history\n",
			cnt,
			cutoff.Format(common.TimestampFormat))
	}

	return nil
} // func (d *Daemon) purgeHistory() error
