// /home/krylon/go/src/github.com/blicero/hygieia/database/initqueries.go
// -*- mode: go; coding: utf-8; -*-
// Created on 30. 06. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-06 20:30:42 krylon>

package database

var initQueries = []string{
	`
CREATE TABLE kv (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID
`,
	`
CREATE TABLE notification (
    id          INTEGER PRIMARY KEY,
    uuid        TEXT UNIQUE NOT NULL,
    title       TEXT NOT NULL,
    body        TEXT NOT NULL DEFAULT '',
    origin      TEXT NOT NULL,
    deadline    INTEGER NOT NULL,
    fired       INTEGER NOT NULL,
    CHECK (fired >= deadline)
)
`,
	"CREATE INDEX notification_fired_idx ON notification (fired)",
}
