// /home/krylon/go/src/github.com/blicero/hygieia/backend/web.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 07. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-12 11:26:40 krylon>

package backend

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/blicero/hygieia/countdown"
	"github.com/blicero/hygieia/dispatch"
	"github.com/blicero/hygieia/objects"
	"github.com/blicero/hygieia/objects/outcome"
)

const defaultHistoryCount = 20

func (d *Daemon) initWebHandlers() error {
	d.router.HandleFunc("/status", d.handleStatus).Methods(http.MethodGet)
	d.router.HandleFunc("/tick", d.handleTick).Methods(http.MethodPost)
	d.router.HandleFunc("/done", d.handleDone).Methods(http.MethodPost)
	d.router.HandleFunc("/goals", d.handleGoals).Methods(http.MethodGet)
	d.router.HandleFunc("/goal", d.handleSetGoal).Methods(http.MethodPost)
	d.router.HandleFunc("/notifications", d.handleSetNotifications).Methods(http.MethodPost)
	d.router.HandleFunc("/onboarding", d.handleOnboarding).Methods(http.MethodGet)
	d.router.HandleFunc("/history", d.handleHistory).Methods(http.MethodGet)
	d.router.HandleFunc("/countdown/ws", d.handleCountdown)

	return nil
} // func (d *Daemon) initWebHandlers() error

func (d *Daemon) serveHTTP() {
	var err error

	defer d.log.Println("[INFO] Web server is shutting down")

	d.log.Printf("[INFO] Web frontend is going online at %s\n", d.web.Addr)

	if err = d.web.ListenAndServe(); err != nil {
		if err != http.ErrServerClosed {
			d.log.Printf("[ERROR] ListenAndServe returned an error: %s\n",
				err.Error())
		} else {
			d.log.Println("[INFO] HTTP Server has shut down.")
		}
	}
} // func (d *Daemon) serveHTTP()

func (d *Daemon) handleStatus(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err    error
		status objects.Status
	)

	if status, err = d.status(countdown.New(d.cfg.Message)); err != nil {
		d.log.Printf("[ERROR] Cannot determine status: %s\n",
			err.Error())
		d.sendResponseJSON(w, &objects.Response{
			ID:      d.getID(),
			Message: err.Error(),
		})
		return
	}

	d.sendJSON(w, &status)
} // func (d *Daemon) handleStatus(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleTick(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err error
		res outcome.Outcome
		rsp = objects.Response{ID: d.getID()}
	)

	if res, err = d.disp.Dispatch(r.Context(), dispatch.Foreground); err != nil {
		rsp.Message = fmt.Sprintf("Check failed: %s", err.Error())
		d.log.Printf("[ERROR] %s\n", rsp.Message)
	} else {
		rsp.Status = true
		rsp.Message = res.String()
	}

	d.sendResponseJSON(w, &rsp)
} // func (d *Daemon) handleTick(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleDone(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var rsp = objects.Response{ID: d.getID()}

	if err := d.store.Acknowledge(); err != nil {
		rsp.Message = fmt.Sprintf("Cannot acknowledge goal: %s", err.Error())
		d.log.Printf("[ERROR] %s\n", rsp.Message)
	} else {
		rsp.Status = true
		rsp.Message = "OK"
	}

	d.sendResponseJSON(w, &rsp)
} // func (d *Daemon) handleDone(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleGoals(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var goals = objects.Goals()

	d.sendJSON(w, &goals)
} // func (d *Daemon) handleGoals(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleSetGoal(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		raw, msg string
		g        objects.GoalOffset
		res      = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		msg = fmt.Sprintf("Cannot parse form data: %s", err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	if raw = r.FormValue("offset"); raw == "" {
		raw = r.FormValue("choice")
	}

	if g, err = objects.ParseGoal(raw); err != nil {
		msg = fmt.Sprintf("Cannot parse goal %q: %s",
			raw,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if err = d.store.SetGoalOffset(g); err != nil {
		msg = fmt.Sprintf("Cannot set goal to %s: %s",
			g.Label(),
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	d.log.Printf("[INFO] Goal was set to %s\n", g.Label())

	res.Status = true
	res.Message = g.Label()

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleSetGoal(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleSetNotifications(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		raw, msg string
		on       bool
		res      = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		msg = fmt.Sprintf("Cannot parse form data: %s", err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	raw = r.FormValue("enabled")

	if on, err = strconv.ParseBool(raw); err != nil {
		msg = fmt.Sprintf("Cannot parse flag %q: %s",
			raw,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if err = d.setNotifications(on); err != nil {
		msg = fmt.Sprintf("Cannot set background checks to %t: %s",
			on,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	res.Status = true
	res.Message = strconv.FormatBool(d.sched.IsRegistered())

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleSetNotifications(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleOnboarding(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var res = objects.Response{
		ID:     d.getID(),
		Status: d.takeOnboarding(),
	}

	if res.Status {
		res.Message = "Welcome"
	}

	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleOnboarding(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleHistory(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err  error
		cnt  = defaultHistoryCount
		list []objects.HistoryEntry
	)

	if s := r.FormValue("count"); s != "" {
		if cnt, err = strconv.Atoi(s); err != nil || cnt < 1 {
			var msg = fmt.Sprintf("Invalid count %q", s)
			d.log.Printf("[ERROR] %s\n", msg)
			d.sendResponseJSON(w, &objects.Response{ID: d.getID(), Message: msg})
			return
		}
	}

	if list, err = d.kv.Recent(cnt); err != nil {
		var msg = fmt.Sprintf("Cannot load notification history: %s", err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		d.sendResponseJSON(w, &objects.Response{ID: d.getID(), Message: msg})
		return
	}

	d.sendJSON(w, &list)
} // func (d *Daemon) handleHistory(w http.ResponseWriter, r *http.Request)

// status evaluates the goal state and derives a fresh countdown frame
// from it using tmr.
func (d *Daemon) status(tmr *countdown.Timer) (objects.Status, error) {
	var snap, err = d.store.Load()

	if err != nil {
		return objects.Status{}, err
	}

	return d.statusFrom(tmr.Mount(d.clk.Now(), snap), snap), nil
} // func (d *Daemon) status(tmr *countdown.Timer) (objects.Status, error)

func (d *Daemon) statusFrom(disp countdown.Display, snap objects.Snapshot) objects.Status {
	return objects.Status{
		Goal:           snap.Goal,
		GoalLabel:      snap.Goal.Label(),
		State:          disp.State.State.String(),
		Detail:         disp.State.Detail.String(),
		Deadline:       disp.Deadline,
		Phase:          disp.Phase.String(),
		Remaining:      disp.Remaining.Milliseconds(),
		Total:          disp.Total.Milliseconds(),
		Text:           disp.Text,
		Notified:       snap.Notified,
		LastNotifiedAt: snap.LastNotifiedAt,
		Registered:     d.sched.IsRegistered(),
	}
} // func (d *Daemon) statusFrom(disp countdown.Display, snap objects.Snapshot) objects.Status
