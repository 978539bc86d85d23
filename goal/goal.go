// /home/krylon/go/src/github.com/blicero/hygieia/goal/goal.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-09 20:31:07 krylon>

// Package goal decides, for a given instant and persisted state, whether
// the daily deadline has passed and whether a notification is owed.
package goal

import (
	"time"

	"github.com/blicero/hygieia/clock"
	"github.com/blicero/hygieia/objects"
	"github.com/blicero/hygieia/objects/goalstate"
)

// Evaluation is the result of evaluating a Snapshot.
type Evaluation struct {
	// State is the verdict triggering decisions are based on.
	State goalstate.State
	// Detail distinguishes the cases State folds together.
	Detail goalstate.State
	// Deadline is today's deadline instant.
	Deadline time.Time
}

// Fires returns true if a notification should be sent.
func (e Evaluation) Fires() bool {
	return e.State == goalstate.DeadlineReached
} // func (e Evaluation) Fires() bool

// Classify returns the fine-grained verdict for snap at now, along with
// today's deadline.
//
// The notified flag alone cannot tell "notified today" from "notified
// yesterday and never acknowledged". The timestamp of the last
// notification settles it: a flag whose timestamp lies on another day is
// stale and does not suppress today's notification.
func Classify(now time.Time, snap objects.Snapshot) (goalstate.State, time.Time) {
	var deadline = clock.Deadline(snap.Goal.Duration(), now)

	if now.Before(deadline) {
		return goalstate.BeforeDeadline, deadline
	}

	var today = snap.HasTimestamp() && clock.IsWithinDay(snap.LastNotifiedAt, now)

	switch {
	case snap.Notified && today:
		return goalstate.AlreadyNotified, deadline
	case snap.Notified:
		return goalstate.StaleNotified, deadline
	case today:
		return goalstate.Acknowledged, deadline
	case !snap.NotifiedSet && !snap.HasTimestamp():
		return goalstate.NoData, deadline
	default:
		return goalstate.DeadlineReached, deadline
	}
} // func Classify(now time.Time, snap objects.Snapshot) (goalstate.State, time.Time)

// Evaluate is Classify with the first-run and stale cases folded into
// DeadlineReached, since both call for a notification.
func Evaluate(now time.Time, snap objects.Snapshot) Evaluation {
	var detail, deadline = Classify(now, snap)
	var ev = Evaluation{
		State:    detail,
		Detail:   detail,
		Deadline: deadline,
	}

	switch detail {
	case goalstate.NoData, goalstate.StaleNotified:
		ev.State = goalstate.DeadlineReached
	}

	return ev
} // func Evaluate(now time.Time, snap objects.Snapshot) Evaluation
