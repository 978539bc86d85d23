// /home/krylon/go/src/github.com/blicero/hygieia/objects/status.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-10 15:27:03 krylon>

package objects

import "time"

//go:generate ffjson status.go

// Status is what the backend reports about the goal state and countdown.
type Status struct {
	Goal           GoalOffset
	GoalLabel      string
	State          string
	Detail         string
	Deadline       time.Time
	Phase          string
	Remaining      int64 // milliseconds
	Total          int64 // milliseconds
	Text           string
	Notified       bool
	LastNotifiedAt time.Time
	Registered     bool
}

// DeadlineShown returns true if the countdown has been replaced by the
// deadline message.
func (s *Status) DeadlineShown() bool {
	return s.Phase == "DeadlineShown"
} // func (s *Status) DeadlineShown() bool

// HistoryEntry records one notification that was sent.
type HistoryEntry struct {
	ID       int64
	UUID     string
	Title    string
	Body     string
	Origin   string
	Deadline time.Time
	FiredAt  time.Time
}
