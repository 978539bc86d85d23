// /home/krylon/go/src/github.com/blicero/hygieia/countdown/countdown.go
// -*- mode: go; coding: utf-8; -*-
// Created on 08. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-11 16:12:44 krylon>

// Package countdown turns the goal state into what the foreground
// display shows: either the time left until the next deadline, or the
// deadline message once it has passed.
package countdown

import (
	"fmt"
	"time"

	"github.com/blicero/hygieia/clock"
	"github.com/blicero/hygieia/goal"
	"github.com/blicero/hygieia/objects"
	"github.com/blicero/hygieia/objects/goalstate"
)

//go:generate stringer -type=Phase

// Phase is what the display is currently showing.
type Phase uint8

// Counting shows the time left, DeadlineShown the deadline message.
const (
	Counting Phase = iota
	DeadlineShown
)

// Total is the length of one full countdown.
const Total = clock.Day

// Display is one frame of the countdown.
type Display struct {
	Phase     Phase
	Remaining time.Duration
	Total     time.Duration
	Deadline  time.Time
	Text      string
	State     goal.Evaluation
}

// Fraction returns how much of the countdown is left, between 0 and 1.
func (d Display) Fraction() float64 {
	if d.Total <= 0 || d.Remaining <= 0 {
		return 0
	} else if d.Remaining >= d.Total {
		return 1
	}

	return float64(d.Remaining) / float64(d.Total)
} // func (d Display) Fraction() float64

// Timer derives Displays from the goal state.
type Timer struct {
	message string
	last    Phase
	mounted bool
}

// New creates a Timer that shows msg once the deadline has passed.
func New(msg string) *Timer {
	return &Timer{message: msg}
} // func New(msg string) *Timer

// Mount forgets everything the Timer showed before and derives a fresh
// Display. A countdown is never resumed from an earlier frame.
func (t *Timer) Mount(now time.Time, snap objects.Snapshot) Display {
	var d = t.derive(now, snap)

	t.last = d.Phase
	t.mounted = true
	return d
} // func (t *Timer) Mount(now time.Time, snap objects.Snapshot) Display

// Tick derives the next Display and reports whether the phase changed
// since the previous one.
func (t *Timer) Tick(now time.Time, snap objects.Snapshot) (Display, bool) {
	if !t.mounted {
		return t.Mount(now, snap), true
	}

	var (
		d       = t.derive(now, snap)
		changed = d.Phase != t.last
	)

	t.last = d.Phase
	return d, changed
} // func (t *Timer) Tick(now time.Time, snap objects.Snapshot) (Display, bool)

func (t *Timer) derive(now time.Time, snap objects.Snapshot) Display {
	var (
		ev = goal.Evaluate(now, snap)
		d  = Display{
			Total: Total,
			State: ev,
		}
	)

	switch ev.State {
	case goalstate.DeadlineReached, goalstate.AlreadyNotified:
		d.Phase = DeadlineShown
		d.Deadline = ev.Deadline
		d.Text = t.message
	default:
		d.Phase = Counting
		d.Remaining = clock.UntilNext(snap.Goal.Duration(), now)
		d.Deadline = now.Add(d.Remaining)
		d.Text = FormatDuration(d.Remaining)
	}

	return d
} // func (t *Timer) derive(now time.Time, snap objects.Snapshot) Display

// FormatDuration renders d, rounded to whole seconds, as MM:SS, or
// HH:MM:SS if it is an hour or longer.
func FormatDuration(d time.Duration) string {
	var secs = int64(d.Round(time.Second) / time.Second)

	if secs < 0 {
		secs = 0
	}

	var (
		hours   = secs / 3600
		minutes = (secs / 60) % 60
		seconds = secs % 60
	)

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}

	return fmt.Sprintf("%02d:%02d", minutes, seconds)
} // func FormatDuration(d time.Duration) string
