// /home/krylon/go/src/github.com/blicero/hygieia/objects/snapshot.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-08 21:15:37 krylon>

package objects

import "time"

// Snapshot is the persisted goal state as read at one point in time.
// The fields are stored independently, so a Snapshot is not necessarily
// consistent if another process was writing at the same time.
type Snapshot struct {
	Goal GoalOffset
	// Notified is true if a notification was sent for the current cycle.
	Notified bool
	// NotifiedSet is false if the notified flag has never been written.
	NotifiedSet bool
	// LastNotifiedAt is the deadline the flag was last set for. It is
	// the zero Time if it was never recorded or could not be parsed.
	LastNotifiedAt time.Time
}

// HasTimestamp returns true if a last notification time is known.
func (s *Snapshot) HasTimestamp() bool {
	return !s.LastNotifiedAt.IsZero()
} // func (s *Snapshot) HasTimestamp() bool
