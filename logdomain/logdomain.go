// /home/krylon/go/src/github.com/blicero/hygieia/logdomain/logdomain.go
// -*- mode: go; coding: utf-8; -*-
// Created on 02. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-04 11:20:09 krylon>

// Package logdomain provides constants for log sources.
package logdomain

//go:generate stringer -type=ID

// ID represents an area of concern.
type ID uint8

// These constants represent the pieces of the application that need to log stuff.
const (
	Backend ID = iota
	Database
	DBPool
	Dispatcher
	Scheduler
	Web
	Client
	GUI
)

// AllDomains returns a slice of all the known log sources.
func AllDomains() []ID {
	return []ID{
		Backend,
		Database,
		DBPool,
		Dispatcher,
		Scheduler,
		Web,
		Client,
		GUI,
	}
} // func AllDomains() []ID
