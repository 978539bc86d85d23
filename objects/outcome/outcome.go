// /home/krylon/go/src/github.com/blicero/hygieia/objects/outcome/outcome.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-05 14:48:19 krylon>

//go:generate stringer -type=Outcome

// Package outcome contains the results a background check reports back
// to whoever scheduled it.
package outcome

// Outcome describes what one run of the background check achieved.
type Outcome uint8

// NoData means nothing had to be done.
// NewData means a notification was produced.
// Failed means the check could not be completed.
const (
	NoData Outcome = iota
	NewData
	Failed
)
