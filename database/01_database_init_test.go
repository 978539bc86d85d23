// /home/krylon/go/src/github.com/blicero/hygieia/database/01_database_init_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 01. 07. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-10 14:30:52 krylon>

package database

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/blicero/hygieia/common"
)

var db *Database

func TestMain(m *testing.M) {
	var (
		err     error
		result  int
		baseDir = filepath.Join(
			os.TempDir(),
			fmt.Sprintf("hygieia_database_test_%s",
				time.Now().Format("20060102_150405")))
	)

	if err = common.SetBaseDir(baseDir); err != nil {
		fmt.Printf("Cannot set base directory to %s: %s\n",
			baseDir,
			err.Error())
		os.Exit(1)
	} else if result = m.Run(); result == 0 {
		// If any test failed, we keep the test directory (and the
		// database inside it) around, so we can manually inspect it
		// if needed.
		// If all tests pass, OTOH, we can safely remove the directory.
		fmt.Printf("Removing BaseDir %s\n",
			baseDir)
		_ = os.RemoveAll(baseDir)
	} else {
		fmt.Printf(">>> TEST DIRECTORY: %s\n", baseDir)
	}

	os.Exit(result)
} // func TestMain(m *testing.M)

func TestCreateDatabase(t *testing.T) {
	var err error

	if db, err = Open(common.DbPath); err != nil {
		db = nil
		t.Fatalf("Cannot open database at %s: %s",
			common.DbPath,
			err.Error())
	}
} // func TestCreateDatabase(t *testing.T)

// We prepare each query once to make sure there are no syntax errors in the SQL.
func TestPrepareQueries(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	for id := range dbQueries {
		var err error
		if _, err = db.getQuery(id); err != nil {
			t.Errorf("Cannot prepare query %s: %s",
				id,
				err.Error())
		}
	}
} // func TestPrepareQueries(t *testing.T)

func TestTransaction(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var err error

	if err = db.Commit(); err != ErrNoTxInProgress {
		t.Errorf("Commit without a transaction should fail with ErrNoTxInProgress, not %v", err)
	} else if err = db.Begin(); err != nil {
		t.Fatalf("Cannot begin transaction: %s", err.Error())
	} else if err = db.Begin(); err != ErrTxInProgress {
		t.Errorf("Nested Begin should fail with ErrTxInProgress, not %v", err)
	} else if err = db.KVSet("tx_probe", "1"); err != nil {
		t.Errorf("Cannot set key in transaction: %s", err.Error())
	}

	if err = db.Rollback(); err != nil {
		t.Fatalf("Cannot roll back transaction: %s", err.Error())
	}

	var found bool

	if _, found, err = db.KVGet("tx_probe"); err != nil {
		t.Errorf("Cannot look up key: %s", err.Error())
	} else if found {
		t.Error("Key set in a rolled back transaction should not exist")
	}
} // func TestTransaction(t *testing.T)
