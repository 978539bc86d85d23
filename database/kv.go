// /home/krylon/go/src/github.com/blicero/hygieia/database/kv.go
// -*- mode: go; coding: utf-8; -*-
// Created on 07. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-10 14:11:35 krylon>

package database

import (
	"time"

	"github.com/blicero/hygieia/objects"
)

// KV adapts a Pool to the key/value interface the state store uses.
// Each call borrows a connection for the duration of one query.
type KV struct {
	pool *Pool
}

// NewKV returns a KV backed by the given Pool.
func NewKV(pool *Pool) *KV {
	return &KV{pool: pool}
} // func NewKV(pool *Pool) *KV

// Get looks up key.
func (kv *KV) Get(key string) (string, bool, error) {
	var (
		err error
		db  *Database
	)

	if db, err = kv.pool.Get(); err != nil {
		return "", false, err
	}
	defer kv.pool.Put(db)

	return db.KVGet(key)
} // func (kv *KV) Get(key string) (string, bool, error)

// Set stores value under key.
func (kv *KV) Set(key, value string) error {
	var (
		err error
		db  *Database
	)

	if db, err = kv.pool.Get(); err != nil {
		return err
	}
	defer kv.pool.Put(db)

	return db.KVSet(key, value)
} // func (kv *KV) Set(key, value string) error

// Delete removes key.
func (kv *KV) Delete(key string) error {
	var (
		err error
		db  *Database
	)

	if db, err = kv.pool.Get(); err != nil {
		return err
	}
	defer kv.pool.Put(db)

	return db.KVDelete(key)
} // func (kv *KV) Delete(key string) error

// Record adds a sent notification to the history.
func (kv *KV) Record(e *objects.HistoryEntry) error {
	var (
		err error
		db  *Database
	)

	if db, err = kv.pool.Get(); err != nil {
		return err
	}
	defer kv.pool.Put(db)

	return db.HistoryAdd(e)
} // func (kv *KV) Record(e *objects.HistoryEntry) error

// Recent returns up to cnt of the most recent history entries.
func (kv *KV) Recent(cnt int) ([]objects.HistoryEntry, error) {
	var (
		err error
		db  *Database
	)

	if db, err = kv.pool.Get(); err != nil {
		return nil, err
	}
	defer kv.pool.Put(db)

	return db.HistoryGetRecent(cnt)
} // func (kv *KV) Recent(cnt int) ([]objects.HistoryEntry, error)

// Purge removes history entries older than before.
func (kv *KV) Purge(before time.Time) (int64, error) {
	var (
		err error
		db  *Database
	)

	if db, err = kv.pool.Get(); err != nil {
		return 0, err
	}
	defer kv.pool.Put(db)

	return db.HistoryPurge(before)
} // func (kv *KV) Purge(before time.Time) (int64, error)
