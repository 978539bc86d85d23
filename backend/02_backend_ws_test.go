// /home/krylon/go/src/github.com/blicero/hygieia/backend/02_backend_ws_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 09. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-12 15:36:02 krylon>

package backend

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/blicero/hygieia/objects"
	"github.com/gorilla/websocket"
	"github.com/pquerna/ffjson/ffjson"
)

func readFrame(t *testing.T, conn *websocket.Conn) objects.Status {
	t.Helper()

	var (
		err    error
		buf    []byte
		status objects.Status
	)

	conn.SetReadDeadline(time.Now().Add(time.Second * 5)) // nolint: errcheck

	if _, buf, err = conn.ReadMessage(); err != nil {
		t.Fatalf("Cannot read countdown frame: %s", err.Error())
	} else if err = ffjson.Unmarshal(buf, &status); err != nil {
		t.Fatalf("Cannot parse countdown frame: %s", err.Error())
	}

	return status
} // func readFrame(t *testing.T, conn *websocket.Conn) objects.Status

func TestCountdownStream(t *testing.T) {
	if back == nil {
		t.SkipNow()
	}

	// Changing the goal clears today's acknowledgement.
	if res := response(t, http.MethodPost, "/goal", url.Values{"choice": {"evening"}}); !res.Status {
		t.Fatalf("Cannot reset goal: %s", res.Message)
	}

	var (
		err    error
		conn   *websocket.Conn
		srv    = httptest.NewServer(back.router)
		addr   = "ws" + strings.TrimPrefix(srv.URL, "http") + "/countdown/ws"
		status objects.Status
	)

	defer srv.Close()

	if conn, _, err = websocket.DefaultDialer.Dial(addr, nil); err != nil {
		t.Fatalf("Cannot connect to %s: %s", addr, err.Error())
	}

	defer conn.Close() // nolint: errcheck

	if status = readFrame(t, conn); !status.DeadlineShown() {
		t.Fatalf("First frame should show the deadline: %#v", status)
	}

	// The first tick runs the foreground check.
	if status = readFrame(t, conn); !status.Notified {
		t.Errorf("Foreground check did not mark the deadline: %#v", status)
	}

	if err = conn.WriteMessage(websocket.TextMessage, []byte("done")); err != nil {
		t.Fatalf("Cannot send command: %s", err.Error())
	}

	for i := 0; i < 5; i++ {
		if status = readFrame(t, conn); !status.DeadlineShown() {
			break
		}
	}

	if status.DeadlineShown() {
		t.Errorf("Countdown did not restart after done: %#v", status)
	} else if status.Text != "23:00:00" {
		t.Errorf("Unexpected countdown text %q", status.Text)
	}
} // func TestCountdownStream(t *testing.T)
