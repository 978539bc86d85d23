// /home/krylon/go/src/github.com/blicero/hygieia/objects/goalstate/goalstate.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-08 20:03:51 krylon>

//go:generate stringer -type=State

// Package goalstate contains symbolic constants describing where the
// daily goal stands relative to the current time.
package goalstate

// State is the verdict of evaluating the goal state at some instant.
type State uint8

// NoData means the deadline has passed and nothing was ever recorded.
// BeforeDeadline means today's deadline lies in the future.
// DeadlineReached means the deadline has passed and no notification
// was sent for it yet.
// AlreadyNotified means a notification was sent for today's deadline.
// StaleNotified means the notified flag is set, but for an earlier day.
// Acknowledged means the flag was cleared by the user after today's
// notification; nothing is to be done until tomorrow.
const (
	NoData State = iota
	BeforeDeadline
	DeadlineReached
	AlreadyNotified
	StaleNotified
	Acknowledged
)
