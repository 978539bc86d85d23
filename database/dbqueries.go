// /home/krylon/go/src/github.com/blicero/hygieia/database/dbqueries.go
// -*- mode: go; coding: utf-8; -*-
// Created on 01. 07. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-07 17:54:57 krylon>

package database

import "github.com/blicero/hygieia/database/query"

var dbQueries = map[query.ID]string{
	query.KVGet: "SELECT value FROM kv WHERE key = ?",
	query.KVSet: `
INSERT INTO kv (key, value)
VALUES         (  ?,     ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value
`,
	query.KVDelete: "DELETE FROM kv WHERE key = ?",
	query.KVGetAll: "SELECT key, value FROM kv ORDER BY key",
	query.HistoryAdd: `
INSERT INTO notification (uuid, title, body, origin, deadline, fired)
VALUES                   (   ?,     ?,    ?,      ?,        ?,     ?)
RETURNING id
`,
	query.HistoryGetRecent: `
SELECT
    id,
    uuid,
    title,
    body,
    origin,
    deadline,
    fired
FROM notification
ORDER BY fired DESC
LIMIT ?
`,
	query.HistoryPurge: "DELETE FROM notification WHERE fired < ?",
}
