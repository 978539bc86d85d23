// /home/krylon/go/src/github.com/blicero/hygieia/database/pool.go
// -*- mode: go; coding: utf-8; -*-
// Created on 01. 07. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-10 14:02:11 krylon>

package database

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/blicero/hygieia/common"
	"github.com/blicero/hygieia/logdomain"
)

// ErrPoolClosed is returned by Get when the Pool has been closed.
var ErrPoolClosed = errors.New("Database pool has been closed")

// Pool is a pool of database connections
type Pool struct {
	cnt   int
	path  string
	log   *log.Logger
	lock  sync.RWMutex
	empty  bool
	link   chan *Database
	closed chan struct{}
}

// NewPool creates a Pool of the given number of connections to the
// database at common.DbPath.
func NewPool(cnt int) (*Pool, error) {
	return NewPoolAt(common.DbPath, cnt)
} // func NewPool(cnt int) (*Pool, error)

// NewPoolAt creates a Pool of cnt connections to the database at path.
func NewPoolAt(path string, cnt int) (*Pool, error) {
	var (
		err error
		pool = &Pool{
			cnt:    cnt,
			path:   path,
			link:   make(chan *Database, cnt),
			closed: make(chan struct{}),
		}
	)

	if cnt < 1 {
		return nil, fmt.Errorf("Invalid pool size: %d", cnt)
	} else if pool.log, err = common.GetLogger(logdomain.DBPool); err != nil {
		return nil, err
	}

	for i := 0; i < cnt; i++ {
		var db *Database

		if db, err = Open(path); err != nil {
			pool.log.Printf("[ERROR] Cannot open database: %s\n",
				err.Error())
			pool.Close() // nolint: errcheck
			return nil, err
		}

		pool.link <- db
	}

	return pool, nil
} // func NewPoolAt(path string, cnt int) (*Pool, error)

// Close closes all open database connections currently in the pool and sets
// the pool's state to empty. Connections that are in use while Close is
// called are closed when they are returned via Put. Callers blocked in Get
// return ErrPoolClosed.
func (pool *Pool) Close() error {
	pool.lock.Lock()
	defer pool.lock.Unlock()

	if pool.empty {
		return nil
	}

	pool.empty = true
	close(pool.closed)

	for {
		select {
		case db := <-pool.link:
			if err := db.Close(); err != nil {
				pool.log.Printf("[ERROR] Cannot close database connection: %s\n",
					err.Error())
			}
		default:
			return nil
		}
	}
} // func (pool *Pool) Close() error

// IsEmpty returns true if the pool has been closed.
func (pool *Pool) IsEmpty() bool {
	pool.lock.RLock()
	var empty = pool.empty
	pool.lock.RUnlock()
	return empty
} // func (pool *Pool) IsEmpty() bool

// Get returns a DB connection from the pool.
// If the pool is exhausted, Get blocks until a connection is returned
// or the pool is closed.
func (pool *Pool) Get() (*Database, error) {
	select {
	case <-pool.closed:
		return nil, ErrPoolClosed
	case db := <-pool.link:
		if pool.IsEmpty() {
			db.Close() // nolint: errcheck
			return nil, ErrPoolClosed
		}
		return db, nil
	}
} // func (pool *Pool) Get() (*Database, error)

// Put returns a DB connection to the pool.
func (pool *Pool) Put(db *Database) {
	if db == nil {
		return
	}

	// The read lock keeps Close from draining the channel while we
	// send. link has room for every connection, so the send does not
	// block.
	pool.lock.RLock()
	defer pool.lock.RUnlock()

	if pool.empty {
		db.Close() // nolint: errcheck
		return
	}

	pool.link <- db
} // func (pool *Pool) Put(db *Database)
