// /home/krylon/go/src/github.com/blicero/hygieia/database/query/query.go
// -*- mode: go; coding: utf-8; -*-
// Created on 30. 06. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-06 21:41:00 krylon>

// Package query provides symbolic constants for identifying SQL queries.
package query

//go:generate stringer -type=ID

// ID identifies a prepared statement.
type ID uint8

const (
	KVGet ID = iota
	KVSet
	KVDelete
	KVGetAll
	HistoryAdd
	HistoryGetRecent
	HistoryPurge
)
