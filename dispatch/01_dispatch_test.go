// /home/krylon/go/src/github.com/blicero/hygieia/dispatch/01_dispatch_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-11 11:02:19 krylon>

package dispatch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/blicero/hygieia/clock"
	"github.com/blicero/hygieia/common"
	"github.com/blicero/hygieia/objects"
	"github.com/blicero/hygieia/objects/outcome"
	"github.com/blicero/hygieia/state"
)

func TestMain(m *testing.M) {
	var (
		err     error
		result  int
		baseDir = filepath.Join(
			os.TempDir(),
			fmt.Sprintf("hygieia_dispatch_test_%s",
				time.Now().Format("20060102_150405")))
	)

	if err = common.SetBaseDir(baseDir); err != nil {
		fmt.Printf("Cannot set base directory to %s: %s\n",
			baseDir,
			err.Error())
		os.Exit(1)
	} else if result = m.Run(); result == 0 {
		_ = os.RemoveAll(baseDir)
	} else {
		fmt.Printf(">>> TEST DIRECTORY: %s\n", baseDir)
	}

	os.Exit(result)
} // func TestMain(m *testing.M)

type countingNotifier struct {
	lock  sync.Mutex
	sent  []objects.Notification
	err   error
	block chan struct{}
}

func (c *countingNotifier) Notify(_ context.Context, n objects.Notification) error {
	if c.block != nil {
		<-c.block
	}

	c.lock.Lock()
	defer c.lock.Unlock()
	c.sent = append(c.sent, n)
	return c.err
} // func (c *countingNotifier) Notify(_ context.Context, n objects.Notification) error

func (c *countingNotifier) count() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return len(c.sent)
} // func (c *countingNotifier) count() int

type fixedGate bool

func (g fixedGate) IsRegistered() bool { return bool(g) }

type first struct{}

func (first) Intn(int) int { return 0 }

type memRecorder struct {
	entries []objects.HistoryEntry
}

func (r *memRecorder) Record(e *objects.HistoryEntry) error {
	r.entries = append(r.entries, *e)
	return nil
} // func (r *memRecorder) Record(e *objects.HistoryEntry) error

type flakyKV struct {
	*state.MemKV
	fail bool
}

var errFlaky = errors.New("storage is unavailable")

func (f *flakyKV) Get(key string) (string, bool, error) {
	if f.fail {
		return "", false, errFlaky
	}
	return f.MemKV.Get(key)
} // func (f *flakyKV) Get(key string) (string, bool, error)

func today(hour, minute int) time.Time {
	return time.Date(2026, time.October, 14, hour, minute, 0, 0, time.Local)
} // func today(hour, minute int) time.Time

func setup(t *testing.T, g objects.GoalOffset, now time.Time, opts ...Option) (*Dispatcher, *state.MemKV, *countingNotifier, *clock.Manual) {
	t.Helper()

	var (
		err   error
		kv    = state.NewMemKV()
		store = state.New(kv)
		n     = new(countingNotifier)
		clk   = clock.NewManual(now)
		d     *Dispatcher
	)

	if err = store.SetGoalOffset(g); err != nil {
		t.Fatalf("Cannot set goal: %s", err.Error())
	}

	opts = append([]Option{WithClock(clk), WithRand(first{})}, opts...)

	if d, err = New(store, n, objects.DefaultCatalog(), opts...); err != nil {
		t.Fatalf("Cannot create Dispatcher: %s", err.Error())
	}

	return d, kv, n, clk
} // func setup(...)

func TestEveningScenario(t *testing.T) {
	var (
		err error
		res outcome.Outcome
		raw string
	)

	var d, kv, n, clk = setup(t, objects.Evening, today(20, 0))

	if res, err = d.Dispatch(context.Background(), Background); err != nil {
		t.Fatalf("Dispatch failed: %s", err.Error())
	} else if res != outcome.NewData {
		t.Fatalf("Unexpected outcome: %s (expected %s)", res, outcome.NewData)
	} else if n.count() != 1 {
		t.Fatalf("Expected 1 notification, got %d", n.count())
	}

	if raw, _, _ = kv.Get(state.KeyNotified); raw != "true" {
		t.Errorf("notified = %q, expected \"true\"", raw)
	}

	var expect = strconv.FormatInt(today(19, 0).UnixMilli(), 10)

	if raw, _, _ = kv.Get(state.KeyLastNotifiedAt); raw != expect {
		t.Errorf("last_notified_at = %q, expected %q", raw, expect)
	}

	clk.Advance(5 * time.Minute)

	if res, err = d.Dispatch(context.Background(), Background); err != nil {
		t.Fatalf("Second Dispatch failed: %s", err.Error())
	} else if res != outcome.NoData {
		t.Errorf("Second Dispatch returned %s (expected %s)", res, outcome.NoData)
	} else if n.count() != 1 {
		t.Errorf("Second Dispatch sent a notification")
	}
} // func TestEveningScenario(t *testing.T)

func TestIdempotent(t *testing.T) {
	var d, kv, n, _ = setup(t, objects.Morning, today(9, 30))

	var before = kv.Writes()

	if res, err := d.Dispatch(context.Background(), Background); err != nil || res != outcome.NewData {
		t.Fatalf("First Dispatch: %s, %v", res, err)
	}

	var afterFirst = kv.Writes()

	if afterFirst-before != 2 {
		t.Errorf("First Dispatch wrote %d values (expected 2)", afterFirst-before)
	}

	if res, err := d.Dispatch(context.Background(), Background); err != nil || res != outcome.NoData {
		t.Fatalf("Second Dispatch: %s, %v", res, err)
	} else if kv.Writes() != afterFirst {
		t.Errorf("Second Dispatch wrote %d values", kv.Writes()-afterFirst)
	} else if n.count() != 1 {
		t.Errorf("Expected 1 notification, got %d", n.count())
	}
} // func TestIdempotent(t *testing.T)

func TestBeforeDeadline(t *testing.T) {
	var d, _, n, _ = setup(t, objects.Evening, today(18, 59))

	if res, err := d.Dispatch(context.Background(), Background); err != nil {
		t.Fatalf("Dispatch failed: %s", err.Error())
	} else if res != outcome.NoData {
		t.Errorf("Unexpected outcome %s", res)
	} else if n.count() != 0 {
		t.Errorf("Notification sent before the deadline")
	}
} // func TestBeforeDeadline(t *testing.T)

func TestForegroundGate(t *testing.T) {
	type testCase struct {
		registered bool
		expect     int
	}

	var cases = []testCase{
		{registered: false, expect: 0},
		{registered: true, expect: 1},
	}

	for _, c := range cases {
		var d, kv, n, _ = setup(t, objects.Evening, today(21, 0), WithGate(fixedGate(c.registered)))

		if res, err := d.Dispatch(context.Background(), Foreground); err != nil {
			t.Fatalf("Dispatch failed: %s", err.Error())
		} else if res != outcome.NewData {
			t.Errorf("Unexpected outcome %s (registered = %t)", res, c.registered)
		} else if n.count() != c.expect {
			t.Errorf("Expected %d notifications, got %d (registered = %t)",
				c.expect,
				n.count(),
				c.registered)
		} else if raw, _, _ := kv.Get(state.KeyNotified); raw != "true" {
			t.Errorf("notified = %q after foreground check", raw)
		}
	}
} // func TestForegroundGate(t *testing.T)

func TestLatch(t *testing.T) {
	var (
		d, _, n, _ = setup(t, objects.Morning, today(12, 0))
		done       = make(chan outcome.Outcome)
	)

	n.block = make(chan struct{})

	go func() {
		res, _ := d.Dispatch(context.Background(), Background)
		done <- res
	}()

	for !d.Busy() {
		time.Sleep(time.Millisecond)
	}

	if res, err := d.Dispatch(context.Background(), Foreground); err != nil {
		t.Errorf("Concurrent Dispatch failed: %s", err.Error())
	} else if res != outcome.NoData {
		t.Errorf("Concurrent Dispatch returned %s (expected %s)", res, outcome.NoData)
	}

	close(n.block)

	if res := <-done; res != outcome.NewData {
		t.Errorf("First Dispatch returned %s (expected %s)", res, outcome.NewData)
	} else if n.count() != 1 {
		t.Errorf("Expected 1 notification, got %d", n.count())
	} else if d.Busy() {
		t.Error("Latch was not released")
	}
} // func TestLatch(t *testing.T)

func TestStoreFailure(t *testing.T) {
	var (
		err   error
		d     *Dispatcher
		kv    = &flakyKV{MemKV: state.NewMemKV()}
		store = state.New(kv)
		n     = new(countingNotifier)
		res   outcome.Outcome
	)

	if err = store.SetGoalOffset(objects.Morning); err != nil {
		t.Fatalf("Cannot set goal: %s", err.Error())
	} else if d, err = New(store, n, objects.DefaultCatalog(), WithClock(clock.NewManual(today(8, 0)))); err != nil {
		t.Fatalf("Cannot create Dispatcher: %s", err.Error())
	}

	kv.fail = true

	if res, err = d.Dispatch(context.Background(), Background); err == nil {
		t.Error("Dispatch should fail when the store is unavailable")
	} else if !errors.Is(err, errFlaky) {
		t.Errorf("Error does not wrap the storage error: %s", err.Error())
	} else if res != outcome.Failed {
		t.Errorf("Unexpected outcome %s (expected %s)", res, outcome.Failed)
	} else if d.Busy() {
		t.Error("Latch is still held after a failure")
	}

	kv.fail = false

	if res, err = d.Dispatch(context.Background(), Background); err != nil {
		t.Errorf("Dispatch failed after recovery: %s", err.Error())
	} else if res != outcome.NewData {
		t.Errorf("Unexpected outcome after recovery: %s", res)
	}
} // func TestStoreFailure(t *testing.T)

func TestNotifyFailure(t *testing.T) {
	var rec = new(memRecorder)
	var d, kv, n, _ = setup(t, objects.Night, today(23, 30), WithRecorder(rec))

	n.err = errors.New("no notification daemon")

	if res, err := d.Dispatch(context.Background(), Background); err != nil {
		t.Errorf("Notification failure should not be returned: %s", err.Error())
	} else if res != outcome.NewData {
		t.Errorf("Unexpected outcome %s", res)
	} else if raw, _, _ := kv.Get(state.KeyNotified); raw != "true" {
		t.Errorf("notified = %q after failed delivery", raw)
	} else if len(rec.entries) != 1 {
		t.Fatalf("Expected 1 history entry, got %d", len(rec.entries))
	}

	var (
		e    = rec.entries[0]
		want = objects.DefaultCatalog().At(0)
	)

	if e.Title != want.Title || e.Origin != string(Background) {
		t.Errorf("Unexpected history entry: %#v", e)
	} else if !e.Deadline.Equal(today(23, 0)) {
		t.Errorf("History entry has deadline %s (expected %s)",
			e.Deadline,
			today(23, 0))
	}
} // func TestNotifyFailure(t *testing.T)
