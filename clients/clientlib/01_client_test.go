// /home/krylon/go/src/github.com/blicero/hygieia/clients/clientlib/01_client_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 10. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-12 17:44:21 krylon>

package clientlib

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/blicero/hygieia/common"
	"github.com/blicero/hygieia/objects"
	"github.com/gorilla/websocket"
	"github.com/pquerna/ffjson/ffjson"
)

func TestMain(m *testing.M) {
	var (
		err     error
		result  int
		baseDir = filepath.Join(
			os.TempDir(),
			fmt.Sprintf("hygieia_client_test_%s",
				time.Now().Format("20060102_150405")))
	)

	if err = common.SetBaseDir(baseDir); err != nil {
		fmt.Printf("Cannot set base directory to %s: %s\n",
			baseDir,
			err.Error())
		os.Exit(1)
	} else if result = m.Run(); result == 0 {
		_ = os.RemoveAll(baseDir)
	}

	os.Exit(result)
} // func TestMain(m *testing.M)

func writeJSON(w http.ResponseWriter, v any) {
	buf, _ := ffjson.Marshal(v)
	w.Header().Set("Content-Type", "application/json")
	w.Write(buf) // nolint: errcheck
} // func writeJSON(w http.ResponseWriter, v any)

// fakeBackend answers like the real backend, with a fixed state.
func fakeBackend(t *testing.T) *httptest.Server {
	var (
		mux      = http.NewServeMux()
		upgrader websocket.Upgrader
	)

	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, &objects.Status{
			Goal:      objects.Evening,
			GoalLabel: objects.Evening.Label(),
			Phase:     "Counting",
			Text:      "01:00:00",
		})
	})

	mux.HandleFunc("/goal", func(w http.ResponseWriter, r *http.Request) {
		var _, err = objects.ParseGoal(r.FormValue("offset"))
		writeJSON(w, &objects.Response{Status: err == nil, Message: fmt.Sprint(err)})
	})

	mux.HandleFunc("/notifications", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, &objects.Response{Status: true, Message: r.FormValue("enabled")})
	})

	mux.HandleFunc("/onboarding", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, &objects.Response{Status: true})
	})

	mux.HandleFunc("/countdown/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("Cannot upgrade connection: %s", err.Error())
			return
		}
		defer conn.Close() // nolint: errcheck

		buf, _ := ffjson.Marshal(&objects.Status{Phase: "DeadlineShown", Text: "Time to wash!"})
		conn.WriteMessage(websocket.TextMessage, buf) // nolint: errcheck

		if _, msg, err := conn.ReadMessage(); err == nil && string(msg) == "done" {
			buf, _ = ffjson.Marshal(&objects.Status{Phase: "Counting", Text: "23:59:59"})
			conn.WriteMessage(websocket.TextMessage, buf) // nolint: errcheck
		}
	})

	return httptest.NewServer(mux)
} // func fakeBackend(t *testing.T) *httptest.Server

func TestClient(t *testing.T) {
	var (
		err    error
		c      *Client
		status *objects.Status
		on     bool
		srv    = fakeBackend(t)
	)

	defer srv.Close()

	if c, err = NewClient(srv.Listener.Addr().String()); err != nil {
		t.Fatalf("Cannot create Client: %s", err.Error())
	} else if status, err = c.Status(); err != nil {
		t.Fatalf("Cannot get status: %s", err.Error())
	} else if status.Goal != objects.Evening || status.DeadlineShown() {
		t.Errorf("Unexpected status: %#v", status)
	}

	if err = c.SetGoal(objects.Night); err != nil {
		t.Errorf("Cannot set goal: %s", err.Error())
	} else if err = c.SetGoal(objects.GoalOffset(42)); err == nil {
		t.Error("Setting an invalid goal should fail")
	}

	if on, err = c.SetNotifications(true); err != nil {
		t.Errorf("Cannot enable notifications: %s", err.Error())
	} else if !on {
		t.Error("Notifications are not reported as enabled")
	}

	if on, err = c.Onboarding(); err != nil {
		t.Errorf("Cannot query onboarding: %s", err.Error())
	} else if !on {
		t.Error("Onboarding should be shown")
	}
} // func TestClient(t *testing.T)

func TestCountdown(t *testing.T) {
	var (
		err    error
		c      *Client
		cd     *Countdown
		status *objects.Status
		srv    = fakeBackend(t)
	)

	defer srv.Close()

	if c, err = NewClient(srv.URL); err != nil {
		t.Fatalf("Cannot create Client: %s", err.Error())
	} else if cd, err = c.Countdown(context.Background()); err != nil {
		t.Fatalf("Cannot open countdown stream: %s", err.Error())
	}

	defer cd.Close() // nolint: errcheck

	if status, err = cd.Next(); err != nil {
		t.Fatalf("Cannot read frame: %s", err.Error())
	} else if !status.DeadlineShown() {
		t.Errorf("Unexpected first frame: %#v", status)
	} else if err = cd.Done(); err != nil {
		t.Fatalf("Cannot send done: %s", err.Error())
	} else if status, err = cd.Next(); err != nil {
		t.Fatalf("Cannot read frame: %s", err.Error())
	} else if status.DeadlineShown() || status.Text != "23:59:59" {
		t.Errorf("Unexpected frame after done: %#v", status)
	}
} // func TestCountdown(t *testing.T)

func TestCountdownConcurrentWrites(t *testing.T) {
	var (
		err error
		c   *Client
		cd  *Countdown
		wg  sync.WaitGroup
		srv = fakeBackend(t)
	)

	defer srv.Close()

	if c, err = NewClient(srv.URL); err != nil {
		t.Fatalf("Cannot create Client: %s", err.Error())
	} else if cd, err = c.Countdown(context.Background()); err != nil {
		t.Fatalf("Cannot open countdown stream: %s", err.Error())
	} else if _, err = cd.Next(); err != nil {
		t.Fatalf("Cannot read frame: %s", err.Error())
	}

	// The frontend sends "done" from a command goroutine while the
	// event loop may close the stream at any time.
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cd.Done() // nolint: errcheck
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		cd.Close() // nolint: errcheck
	}()

	wg.Wait()

	if err = cd.Close(); err != nil {
		t.Errorf("Closing twice should not fail: %s", err.Error())
	} else if err = cd.Done(); !errors.Is(err, ErrStreamClosed) {
		t.Errorf("Done after Close should return ErrStreamClosed, not %v", err)
	}
} // func TestCountdownConcurrentWrites(t *testing.T)
