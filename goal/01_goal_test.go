// /home/krylon/go/src/github.com/blicero/hygieia/goal/01_goal_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-09 20:40:22 krylon>

package goal

import (
	"testing"
	"time"

	"github.com/blicero/hygieia/objects"
	"github.com/blicero/hygieia/objects/goalstate"
)

var zone = time.FixedZone("MSK", 3*3600)

func today(h, m int) time.Time {
	return time.Date(2026, 10, 14, h, m, 0, 0, zone)
}

func yesterday(h, m int) time.Time {
	return today(h, m).AddDate(0, 0, -1)
}

func TestBeforeDeadline(t *testing.T) {
	var snaps = []objects.Snapshot{
		{Goal: objects.Evening},
		{Goal: objects.Evening, Notified: true, NotifiedSet: true, LastNotifiedAt: yesterday(19, 0)},
		{Goal: objects.Evening, NotifiedSet: true, LastNotifiedAt: yesterday(19, 0)},
	}

	for idx, s := range snaps {
		for now := today(0, 0); now.Before(today(19, 0)); now = now.Add(time.Minute * 17) {
			if ev := Evaluate(now, s); ev.State != goalstate.BeforeDeadline {
				t.Fatalf("Snapshot %d at %s: expected BeforeDeadline, got %s",
					idx,
					now.Format(time.Kitchen),
					ev.State)
			}
		}
	}
} // func TestBeforeDeadline(t *testing.T)

func TestDeadlineReachedFreshInstall(t *testing.T) {
	var snap = objects.Snapshot{Goal: objects.Evening}

	for _, now := range []time.Time{today(19, 0), today(20, 0), today(23, 59)} {
		var ev = Evaluate(now, snap)

		if ev.State != goalstate.DeadlineReached {
			t.Errorf("At %s: expected DeadlineReached, got %s",
				now.Format(time.Kitchen),
				ev.State)
		} else if ev.Detail != goalstate.NoData {
			t.Errorf("At %s: expected detail NoData, got %s",
				now.Format(time.Kitchen),
				ev.Detail)
		} else if !ev.Deadline.Equal(today(19, 0)) {
			t.Errorf("Unexpected deadline %s", ev.Deadline)
		} else if !ev.Fires() {
			t.Errorf("Evaluation at %s should fire", now.Format(time.Kitchen))
		}
	}
} // func TestDeadlineReachedFreshInstall(t *testing.T)

func TestAlreadyNotified(t *testing.T) {
	var snap = objects.Snapshot{
		Goal:           objects.Evening,
		Notified:       true,
		NotifiedSet:    true,
		LastNotifiedAt: today(19, 0),
	}

	for _, now := range []time.Time{today(19, 0), today(20, 5), today(23, 59)} {
		if ev := Evaluate(now, snap); ev.State != goalstate.AlreadyNotified {
			t.Errorf("At %s: expected AlreadyNotified, got %s",
				now.Format(time.Kitchen),
				ev.State)
		} else if ev.Fires() {
			t.Errorf("AlreadyNotified must not fire")
		}
	}
} // func TestAlreadyNotified(t *testing.T)

func TestStaleFlag(t *testing.T) {
	var snap = objects.Snapshot{
		Goal:           objects.Morning,
		Notified:       true,
		NotifiedSet:    true,
		LastNotifiedAt: yesterday(7, 0),
	}

	if ev := Evaluate(today(6, 0), snap); ev.State != goalstate.BeforeDeadline {
		t.Errorf("Stale flag before deadline: expected BeforeDeadline, got %s", ev.State)
	}

	var ev = Evaluate(today(7, 30), snap)

	if ev.State != goalstate.DeadlineReached {
		t.Errorf("Stale flag after deadline: expected DeadlineReached, got %s", ev.State)
	} else if ev.Detail != goalstate.StaleNotified {
		t.Errorf("Stale flag after deadline: expected detail StaleNotified, got %s", ev.Detail)
	}

	// A flag that lost its timestamp is treated as stale, too.
	snap.LastNotifiedAt = time.Time{}
	if st, _ := Classify(today(7, 30), snap); st != goalstate.StaleNotified {
		t.Errorf("Flag without timestamp: expected StaleNotified, got %s", st)
	}
} // func TestStaleFlag(t *testing.T)

func TestAcknowledged(t *testing.T) {
	var snap = objects.Snapshot{
		Goal:           objects.Evening,
		NotifiedSet:    true,
		LastNotifiedAt: today(19, 0),
	}

	var ev = Evaluate(today(21, 0), snap)

	if ev.State != goalstate.Acknowledged {
		t.Errorf("Expected Acknowledged, got %s", ev.State)
	} else if ev.Fires() {
		t.Error("Acknowledged must not fire")
	}

	// The next day, the acknowledgment no longer counts.
	if ev = Evaluate(today(21, 0).AddDate(0, 0, 1), snap); ev.State != goalstate.DeadlineReached {
		t.Errorf("Expected DeadlineReached on the next day, got %s", ev.State)
	} else if ev.Detail != goalstate.DeadlineReached {
		t.Errorf("Expected detail DeadlineReached on the next day, got %s", ev.Detail)
	}
} // func TestAcknowledged(t *testing.T)

func TestClearedAfterGoalChange(t *testing.T) {
	// Changing the goal writes notified=false and removes the timestamp.
	var snap = objects.Snapshot{
		Goal:        objects.Morning,
		NotifiedSet: true,
	}

	var st, _ = Classify(today(9, 0), snap)

	if st != goalstate.DeadlineReached {
		t.Errorf("Expected DeadlineReached after goal change, got %s", st)
	}
} // func TestClearedAfterGoalChange(t *testing.T)
