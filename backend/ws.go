// /home/krylon/go/src/github.com/blicero/hygieia/backend/ws.go
// -*- mode: go; coding: utf-8; -*-
// Created on 09. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-12 13:02:55 krylon>

package backend

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/blicero/hygieia/countdown"
	"github.com/blicero/hygieia/dispatch"
	"github.com/blicero/hygieia/objects"
	"github.com/gorilla/websocket"
	"github.com/pquerna/ffjson/ffjson"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	frameInterval  = time.Second
	cmdDone        = "done"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// handleCountdown streams countdown frames to a websocket client, one
// per second. Each tick runs a foreground check, so the deadline is
// noticed while the countdown is on screen even if background checks
// are disabled. The stream ends when the client disconnects.
func (d *Daemon) handleCountdown(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err  error
		conn *websocket.Conn
		cmds = make(chan string, 4)
	)

	if conn, err = upgrader.Upgrade(w, r, nil); err != nil {
		d.log.Printf("[ERROR] Cannot upgrade connection from %s: %s\n",
			r.RemoteAddr,
			err.Error())
		return
	}

	var ctx, cancel = context.WithCancel(context.Background())

	go d.countdownReader(conn, cmds, cancel)
	d.countdownWriter(ctx, conn, cmds)
	cancel()
} // func (d *Daemon) handleCountdown(w http.ResponseWriter, r *http.Request)

func (d *Daemon) countdownReader(conn *websocket.Conn, cmds chan<- string, cancel context.CancelFunc) {
	defer cancel()
	defer close(cmds)

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait)) // nolint: errcheck
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var _, msg, err = conn.ReadMessage()

		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				d.log.Printf("[ERROR] Countdown client %s went away: %s\n",
					conn.RemoteAddr(),
					err.Error())
			}
			return
		}

		select {
		case cmds <- strings.TrimSpace(string(msg)):
		default:
			d.log.Printf("[DEBUG] Dropping command from %s, queue is full\n",
				conn.RemoteAddr())
		}
	}
} // func (d *Daemon) countdownReader(...)

func (d *Daemon) countdownWriter(ctx context.Context, conn *websocket.Conn, cmds <-chan string) {
	var (
		err    error
		snap   objects.Snapshot
		tmr    = countdown.New(d.cfg.Message)
		frames = time.NewTicker(frameInterval)
		pings  = time.NewTicker(pingPeriod)
		disp   countdown.Display
	)

	defer func() {
		frames.Stop()
		pings.Stop()
		conn.Close() // nolint: errcheck
		d.log.Printf("[TRACE] Countdown stream to %s ended\n",
			conn.RemoteAddr())
	}()

	if snap, err = d.store.Load(); err != nil {
		d.log.Printf("[ERROR] Cannot load goal state: %s\n", err.Error())
		return
	} else if err = d.writeFrame(conn, d.statusFrom(tmr.Mount(d.clk.Now(), snap), snap)); err != nil {
		return
	}

	for d.IsAlive() {
		select {
		case <-ctx.Done():
			return
		case cmd, ok := <-cmds:
			if !ok {
				return
			} else if cmd != cmdDone {
				d.log.Printf("[ERROR] Unknown countdown command %q\n", cmd)
				continue
			} else if err = d.store.Acknowledge(); err != nil {
				d.log.Printf("[ERROR] Cannot acknowledge goal: %s\n", err.Error())
				continue
			} else if snap, err = d.store.Load(); err != nil {
				d.log.Printf("[ERROR] Cannot load goal state: %s\n", err.Error())
				continue
			}

			// The countdown starts over after the goal was met.
			disp = tmr.Mount(d.clk.Now(), snap)
		case <-frames.C:
			if _, err = d.disp.Dispatch(ctx, dispatch.Foreground); err != nil {
				d.log.Printf("[ERROR] Foreground check failed: %s\n", err.Error())
			}

			if snap, err = d.store.Load(); err != nil {
				d.log.Printf("[ERROR] Cannot load goal state: %s\n", err.Error())
				continue
			}

			var changed bool
			if disp, changed = tmr.Tick(d.clk.Now(), snap); changed {
				d.log.Printf("[DEBUG] Countdown for %s is now %s\n",
					conn.RemoteAddr(),
					disp.Phase)
			}
		case <-pings.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait)) // nolint: errcheck
			if err = conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				d.log.Printf("[ERROR] Ping to %s failed: %s\n",
					conn.RemoteAddr(),
					err.Error())
				return
			}
			continue
		}

		if err = d.writeFrame(conn, d.statusFrom(disp, snap)); err != nil {
			return
		}
	}
} // func (d *Daemon) countdownWriter(ctx context.Context, conn *websocket.Conn, cmds <-chan string)

func (d *Daemon) writeFrame(conn *websocket.Conn, status objects.Status) error {
	var (
		err error
		buf []byte
	)

	if buf, err = ffjson.Marshal(&status); err != nil {
		d.log.Printf("[ERROR] Cannot serialize countdown frame: %s\n",
			err.Error())
		return err
	}

	defer ffjson.Pool(buf)

	conn.SetWriteDeadline(time.Now().Add(writeWait)) // nolint: errcheck
	if err = conn.WriteMessage(websocket.TextMessage, buf); err != nil {
		d.log.Printf("[ERROR] Cannot send countdown frame to %s: %s\n",
			conn.RemoteAddr(),
			err.Error())
		return err
	}

	return nil
} // func (d *Daemon) writeFrame(conn *websocket.Conn, status objects.Status) error
