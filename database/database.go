// /home/krylon/go/src/github.com/blicero/hygieia/database/database.go
// -*- mode: go; coding: utf-8; -*-
// Created on 30. 06. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-10 13:21:47 krylon>

// Package database provides the storage engine for the application's
// persistent state: a key/value table and a log of sent notifications.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/blicero/hygieia/common"
	"github.com/blicero/hygieia/database/query"
	"github.com/blicero/hygieia/logdomain"
	"github.com/blicero/hygieia/objects"
	"github.com/mattn/go-sqlite3"
)

var (
	openLock sync.Mutex
	idCnt    int64
)

// ErrTxInProgress indicates that an attempt to initiate a transaction failed
// because there is already one in progress.
var ErrTxInProgress = errors.New("A Transaction is already in progress")

// ErrNoTxInProgress indicates that an attempt was made to finish a
// transaction when none was active.
var ErrNoTxInProgress = errors.New("There is no transaction in progress")

const (
	retryDelay = 25 * time.Millisecond
	maxRetries = 20
)

func worthARetry(e error) bool {
	var serr sqlite3.Error

	if errors.As(e, &serr) {
		return serr.Code == sqlite3.ErrBusy || serr.Code == sqlite3.ErrLocked
	}

	return false
} // func worthARetry(e error) bool

// Database is the storage backend for the goal state.
//
// It is not safe to share a Database instance between goroutines,
// use a Pool for that.
type Database struct {
	id      int64
	db      *sql.DB
	tx      *sql.Tx
	log     *log.Logger
	path    string
	queries map[query.ID]*sql.Stmt
}

// Open opens a Database. If the database specified by the path does not
// exist, yet, it is created and initialized.
func Open(path string) (*Database, error) {
	var (
		err      error
		dbExists bool
		db       = &Database{
			path:    path,
			queries: make(map[query.ID]*sql.Stmt),
		}
	)

	openLock.Lock()
	defer openLock.Unlock()
	idCnt++
	db.id = idCnt

	if db.log, err = common.GetLogger(logdomain.Database); err != nil {
		return nil, err
	} else if common.Debug {
		db.log.Printf("[DEBUG] Open database %s\n", path)
	}

	var connstring = fmt.Sprintf("%s?_locking=NORMAL&_journal=WAL&_fk=1&recursive_triggers=0",
		path)

	if _, err = os.Stat(path); err == nil {
		dbExists = true
	} else if !os.IsNotExist(err) {
		db.log.Printf("[ERROR] Failed to check if %s exists: %s\n",
			path,
			err.Error())
		return nil, err
	}

	if db.db, err = sql.Open("sqlite3", connstring); err != nil {
		db.log.Printf("[ERROR] Error opening database %q: %s\n",
			path,
			err.Error())
		return nil, err
	}

	if !dbExists {
		if err = db.initialize(); err != nil {
			var e2 error
			if e2 = db.db.Close(); e2 != nil {
				db.log.Printf("[CRITICAL] Failed to close database: %s\n",
					e2.Error())
				return nil, e2
			} else if e2 = os.Remove(path); e2 != nil {
				db.log.Printf("[CRITICAL] Failed to remove database file %s: %s\n",
					db.path,
					e2.Error())
			}
			return nil, err
		}
		db.log.Printf("[INFO] Database at %s has been initialized\n",
			path)
	}

	return db, nil
} // func Open(path string) (*Database, error)

func (db *Database) initialize() error {
	var (
		err error
		tx  *sql.Tx
	)

	if tx, err = db.db.Begin(); err != nil {
		db.log.Printf("[ERROR] Cannot begin transaction: %s\n",
			err.Error())
		return err
	}

	for _, q := range initQueries {
		db.log.Printf("[TRACE] Execute init query:\n%s\n",
			q)
		if _, err = tx.Exec(q); err != nil {
			db.log.Printf("[ERROR] Cannot execute init query: %s\n%s\n",
				err.Error(),
				q)
			if rbErr := tx.Rollback(); rbErr != nil {
				db.log.Printf("[CANTHAPPEN] Cannot rollback transaction: %s\n",
					rbErr.Error())
				return rbErr
			}
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		db.log.Printf("[CANTHAPPEN] Failed to commit init transaction: %s\n",
			err.Error())
		return err
	}

	return nil
} // func (db *Database) initialize() error

// Close closes the database.
// If there is a pending transaction, it is rolled back.
func (db *Database) Close() error {
	if db.tx != nil {
		if err := db.tx.Rollback(); err != nil {
			db.log.Printf("[ERROR] Cannot roll back pending transaction: %s\n",
				err.Error())
			return err
		}
		db.tx = nil
	}

	for key, stmt := range db.queries {
		if err := stmt.Close(); err != nil {
			db.log.Printf("[ERROR] Cannot close statement handle %s: %s\n",
				key,
				err.Error())
			return err
		}
		delete(db.queries, key)
	}

	if err := db.db.Close(); err != nil {
		db.log.Printf("[ERROR] Cannot close database: %s\n",
			err.Error())
		return err
	}

	db.db = nil
	return nil
} // func (db *Database) Close() error

func (db *Database) getQuery(id query.ID) (*sql.Stmt, error) {
	var (
		stmt  *sql.Stmt
		found bool
		err   error
	)

	if stmt, found = db.queries[id]; found {
		return stmt, nil
	} else if _, found = dbQueries[id]; !found {
		return nil, fmt.Errorf("Unknown Query %d",
			id)
	}

	db.log.Printf("[TRACE] Prepare query %s\n", id)

	for i := 0; i < maxRetries; i++ {
		if stmt, err = db.db.Prepare(dbQueries[id]); err == nil {
			db.queries[id] = stmt
			return stmt, nil
		} else if !worthARetry(err) {
			break
		}
		time.Sleep(retryDelay)
	}

	db.log.Printf("[ERROR] Cannot parse query %s: %s\n%s\n",
		id,
		err.Error(),
		dbQueries[id])
	return nil, err
} // func (db *Database) getQuery(query.ID) (*sql.Stmt, error)

func (db *Database) stmt(id query.ID) (*sql.Stmt, error) {
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(id); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			id,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	return stmt, nil
} // func (db *Database) stmt(id query.ID) (*sql.Stmt, error)

// Begin begins an explicit database transaction.
// Only one transaction can be in progress at once, attempting to start
// one, while another transaction is already in progress will yield
// ErrTxInProgress.
func (db *Database) Begin() error {
	var err error

	if db.tx != nil {
		return ErrTxInProgress
	}

	for i := 0; i < maxRetries; i++ {
		if db.tx, err = db.db.Begin(); err == nil {
			return nil
		} else if !worthARetry(err) {
			break
		}
		time.Sleep(retryDelay)
	}

	db.log.Printf("[ERROR] Error beginning transaction: %s\n",
		err.Error())
	db.tx = nil
	return err
} // func (db *Database) Begin() error

// Rollback terminates a pending transaction, undoing any changes to the
// database made during that transaction.
// If no transaction is active, it returns ErrNoTxInProgress
func (db *Database) Rollback() error {
	var err error

	if db.tx == nil {
		return ErrNoTxInProgress
	}

	if err = db.tx.Rollback(); err != nil {
		db.log.Printf("[ERROR] Cannot roll back database transaction: %s\n",
			err.Error())
		return err
	}

	db.tx = nil
	return nil
} // func (db *Database) Rollback() error

// Commit ends the active transaction, making any changes made during that
// transaction permanent and visible to other connections.
// If no transaction is active, it returns ErrNoTxInProgress
func (db *Database) Commit() error {
	var err error

	if db.tx == nil {
		return ErrNoTxInProgress
	}

	if err = db.tx.Commit(); err != nil {
		db.log.Printf("[ERROR] Cannot commit transaction: %s\n",
			err.Error())
		return err
	}

	db.tx = nil
	return nil
} // func (db *Database) Commit() error

func (db *Database) exec(id query.ID, args ...any) (sql.Result, error) {
	var (
		err  error
		stmt *sql.Stmt
		res  sql.Result
	)

	if stmt, err = db.stmt(id); err != nil {
		return nil, err
	}

	for i := 0; i < maxRetries; i++ {
		if res, err = stmt.Exec(args...); err == nil {
			return res, nil
		} else if !worthARetry(err) {
			break
		}
		time.Sleep(retryDelay)
	}

	db.log.Printf("[ERROR] Cannot execute query %s: %s\n",
		id,
		err.Error())
	return nil, err
} // func (db *Database) exec(id query.ID, args ...any) (sql.Result, error)

// KVGet looks up the value stored under key.
func (db *Database) KVGet(key string) (string, bool, error) {
	var (
		err   error
		stmt  *sql.Stmt
		value string
	)

	if stmt, err = db.stmt(query.KVGet); err != nil {
		return "", false, err
	}

	for i := 0; i < maxRetries; i++ {
		if err = stmt.QueryRow(key).Scan(&value); err == nil {
			return value, true, nil
		} else if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		} else if !worthARetry(err) {
			break
		}
		time.Sleep(retryDelay)
	}

	db.log.Printf("[ERROR] Cannot look up key %q: %s\n",
		key,
		err.Error())
	return "", false, err
} // func (db *Database) KVGet(key string) (string, bool, error)

// KVSet stores value under key, replacing any previous value.
func (db *Database) KVSet(key, value string) error {
	if _, err := db.exec(query.KVSet, key, value); err != nil {
		return err
	}

	return nil
} // func (db *Database) KVSet(key, value string) error

// KVDelete removes key. Deleting a key that does not exist is not an error.
func (db *Database) KVDelete(key string) error {
	if _, err := db.exec(query.KVDelete, key); err != nil {
		return err
	}

	return nil
} // func (db *Database) KVDelete(key string) error

// KVGetAll returns all keys and their values.
func (db *Database) KVGetAll() (map[string]string, error) {
	var (
		err  error
		stmt *sql.Stmt
		rows *sql.Rows
		kv   = make(map[string]string)
	)

	if stmt, err = db.stmt(query.KVGetAll); err != nil {
		return nil, err
	} else if rows, err = stmt.Query(); err != nil {
		db.log.Printf("[ERROR] Cannot query key/value table: %s\n",
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	for rows.Next() {
		var key, value string

		if err = rows.Scan(&key, &value); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n", err.Error())
			return nil, err
		}

		kv[key] = value
	}

	return kv, rows.Err()
} // func (db *Database) KVGetAll() (map[string]string, error)

// HistoryAdd records a notification that was sent.
func (db *Database) HistoryAdd(e *objects.HistoryEntry) error {
	var (
		err  error
		stmt *sql.Stmt
		id   int64
	)

	if e.UUID == "" {
		e.UUID = common.GetUUID()
	}

	if stmt, err = db.stmt(query.HistoryAdd); err != nil {
		return err
	}

	for i := 0; i < maxRetries; i++ {
		if err = stmt.QueryRow(
			e.UUID,
			e.Title,
			e.Body,
			e.Origin,
			e.Deadline.UnixMilli(),
			e.FiredAt.UnixMilli(),
		).Scan(&id); err == nil {
			e.ID = id
			return nil
		} else if !worthARetry(err) {
			break
		}
		time.Sleep(retryDelay)
	}

	db.log.Printf("[ERROR] Cannot add notification %q to history: %s\n",
		e.Title,
		err.Error())
	return err
} // func (db *Database) HistoryAdd(e *objects.HistoryEntry) error

// HistoryGetRecent returns up to cnt of the most recently sent
// notifications, newest first.
func (db *Database) HistoryGetRecent(cnt int) ([]objects.HistoryEntry, error) {
	var (
		err  error
		stmt *sql.Stmt
		rows *sql.Rows
		list []objects.HistoryEntry
	)

	if stmt, err = db.stmt(query.HistoryGetRecent); err != nil {
		return nil, err
	} else if rows, err = stmt.Query(cnt); err != nil {
		db.log.Printf("[ERROR] Cannot query notification history: %s\n",
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	list = make([]objects.HistoryEntry, 0, cnt)

	for rows.Next() {
		var (
			e               objects.HistoryEntry
			deadline, fired int64
		)

		if err = rows.Scan(&e.ID, &e.UUID, &e.Title, &e.Body, &e.Origin, &deadline, &fired); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n", err.Error())
			return nil, err
		}

		e.Deadline = time.UnixMilli(deadline)
		e.FiredAt = time.UnixMilli(fired)
		list = append(list, e)
	}

	return list, rows.Err()
} // func (db *Database) HistoryGetRecent(cnt int) ([]objects.HistoryEntry, error)

// HistoryPurge removes all notifications sent before the given time,
// and returns how many were removed.
func (db *Database) HistoryPurge(before time.Time) (int64, error) {
	var (
		err error
		res sql.Result
	)

	if res, err = db.exec(query.HistoryPurge, before.UnixMilli()); err != nil {
		return 0, err
	}

	return res.RowsAffected()
} // func (db *Database) HistoryPurge(before time.Time) (int64, error)
