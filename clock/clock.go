// /home/krylon/go/src/github.com/blicero/hygieia/clock/clock.go
// -*- mode: go; coding: utf-8; -*-
// Created on 03. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-08 19:44:30 krylon>

// Package clock provides the calendar arithmetic the goal tracking is
// built on. All functions are pure; the current time is always passed
// in, so callers decide where it comes from.
package clock

import (
	"sync"
	"time"
)

// Day is the length of a day as far as the countdown is concerned.
const Day = time.Hour * 24

// Clock is the source of the current time.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

// Now returns the current local time.
func (System) Now() time.Time { return time.Now() }

// Manual is a Clock that only moves when told to.
type Manual struct {
	lock sync.Mutex
	now  time.Time
}

// NewManual returns a Manual clock set to t.
func NewManual(t time.Time) *Manual {
	return &Manual{now: t}
} // func NewManual(t time.Time) *Manual

// Now returns the time the clock was last set to.
func (m *Manual) Now() time.Time {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.now
} // func (m *Manual) Now() time.Time

// Set moves the clock to t.
func (m *Manual) Set(t time.Time) {
	m.lock.Lock()
	m.now = t
	m.lock.Unlock()
} // func (m *Manual) Set(t time.Time)

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.lock.Lock()
	m.now = m.now.Add(d)
	m.lock.Unlock()
} // func (m *Manual) Advance(d time.Duration)

// StartOfDay returns midnight of the day containing t, in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
} // func StartOfDay(t time.Time) time.Time

// IsWithinDay returns true if t falls on the same calendar day as ref.
// The comparison happens in ref's location.
func IsWithinDay(t, ref time.Time) bool {
	var (
		local      = t.In(ref.Location())
		y1, m1, d1 = local.Date()
		y2, m2, d2 = ref.Date()
	)

	return y1 == y2 && m1 == m2 && d1 == d2
} // func IsWithinDay(t, ref time.Time) bool

// Deadline returns the instant offset past the start of the day containing now.
func Deadline(offset time.Duration, now time.Time) time.Time {
	return StartOfDay(now).Add(offset)
} // func Deadline(offset time.Duration, now time.Time) time.Time

// UntilNext returns the time remaining until the next instant that lies
// offset past a midnight. If today's instant has already passed (or is
// exactly now), the result wraps around to tomorrow.
func UntilNext(offset time.Duration, now time.Time) time.Duration {
	var elapsed = now.Sub(StartOfDay(now))

	if elapsed < offset {
		return offset - elapsed
	}

	return (Day - elapsed) + offset
} // func UntilNext(offset time.Duration, now time.Time) time.Duration

// Millis returns t as milliseconds since the epoch.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
} // func Millis(t time.Time) int64

// FromMillis converts milliseconds since the epoch to a local time.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
} // func FromMillis(ms int64) time.Time
