// /home/krylon/go/src/github.com/blicero/hygieia/backend/99_backend_shutdown_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 07. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-12 15:40:17 krylon>

package backend

import "testing"

func TestBanish(t *testing.T) {
	if back == nil {
		t.SkipNow()
	} else if !back.IsAlive() {
		t.SkipNow()
	}

	var err error

	if err = back.Banish(); err != nil {
		t.Errorf("Failed to banish Daemon: %s", err.Error())
	} else if back.IsAlive() {
		t.Error("Daemon is still alive after Banish")
	} else if back.ticker.IsRegistered() {
		t.Error("Scheduler is still running after Banish")
	}
} // func TestBanish(t *testing.T)
