// /home/krylon/go/src/github.com/blicero/hygieia/gui/gui.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 07. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-14 21:48:55 krylon>

// Package gui provides the graphical frontend, a small GTK window with
// the countdown to the daily goal and the controls to change it.
package gui

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/blicero/hygieia/clients/clientlib"
	"github.com/blicero/hygieia/common"
	"github.com/blicero/hygieia/logdomain"
	"github.com/blicero/hygieia/objects"
	"github.com/blicero/krylib"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
)

const (
	msgID         = 1
	refreshPeriod = 1000 // milliseconds
)

var gtkInit sync.Once

// GUI wraps the components of the graphical user interface (hence the name),
// along with the client that talks to the backend.
type GUI struct {
	client    *clientlib.Client
	log       *log.Logger
	win       *gtk.Window
	mainBox   *gtk.Box
	timeLbl   *gtk.Label
	level     *gtk.LevelBar
	detailLbl *gtk.Label
	goalBox   *gtk.ComboBoxText
	notifySw  *gtk.Switch
	doneBtn   *gtk.Button
	statusbar *gtk.Statusbar
	goals     []objects.GoalChoice
	updating  bool
}

// Create creates the window, talking to the backend at srv.
func Create(srv string) (*GUI, error) {
	var (
		err       error
		ctlBox    *gtk.Box
		goalLbl   *gtk.Label
		notifyLbl *gtk.Label
		g         = new(GUI)
	)

	gtkInit.Do(func() { gtk.Init(nil) })

	if g.log, err = common.GetLogger(logdomain.GUI); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot create Logger for GUI: %s\n",
			err.Error())
		return nil, err
	} else if g.client, err = clientlib.NewClient(srv); err != nil {
		g.log.Printf("[ERROR] Cannot create client for %s: %s\n",
			srv,
			err.Error())
		return nil, err
	} else if g.win, err = gtk.WindowNew(gtk.WINDOW_TOPLEVEL); err != nil {
		g.log.Printf("[ERROR] Cannot create Window: %s\n",
			err.Error())
		return nil, err
	} else if g.mainBox, err = gtk.BoxNew(gtk.ORIENTATION_VERTICAL, 5); err != nil {
		g.log.Printf("[ERROR] Cannot create gtk.Box: %s\n",
			err.Error())
		return nil, err
	} else if g.timeLbl, err = gtk.LabelNew(""); err != nil {
		g.log.Printf("[ERROR] Cannot create countdown Label: %s\n",
			err.Error())
		return nil, err
	} else if g.level, err = gtk.LevelBarNew(); err != nil {
		g.log.Printf("[ERROR] Cannot create LevelBar: %s\n",
			err.Error())
		return nil, err
	} else if g.detailLbl, err = gtk.LabelNew(""); err != nil {
		g.log.Printf("[ERROR] Cannot create detail Label: %s\n",
			err.Error())
		return nil, err
	} else if ctlBox, err = gtk.BoxNew(gtk.ORIENTATION_HORIZONTAL, 5); err != nil {
		g.log.Printf("[ERROR] Cannot create gtk.Box for controls: %s\n",
			err.Error())
		return nil, err
	} else if goalLbl, err = gtk.LabelNew("Goal:"); err != nil {
		g.log.Printf("[ERROR] Cannot create Label: %s\n",
			err.Error())
		return nil, err
	} else if g.goalBox, err = gtk.ComboBoxTextNew(); err != nil {
		g.log.Printf("[ERROR] Cannot create ComboBox for goals: %s\n",
			err.Error())
		return nil, err
	} else if notifyLbl, err = gtk.LabelNew("Reminders:"); err != nil {
		g.log.Printf("[ERROR] Cannot create Label: %s\n",
			err.Error())
		return nil, err
	} else if g.notifySw, err = gtk.SwitchNew(); err != nil {
		g.log.Printf("[ERROR] Cannot create Switch: %s\n",
			err.Error())
		return nil, err
	} else if g.doneBtn, err = gtk.ButtonNewWithLabel("Done"); err != nil {
		g.log.Printf("[ERROR] Cannot create Button: %s\n",
			err.Error())
		return nil, err
	} else if g.statusbar, err = gtk.StatusbarNew(); err != nil {
		g.log.Printf("[ERROR] Cannot create Status bar: %s\n",
			err.Error())
		return nil, err
	}

	if g.goals, err = g.client.Goals(); err != nil {
		g.log.Printf("[ERROR] Cannot fetch goal choices from backend, using built-in list: %s\n",
			err.Error())
		g.goals = objects.Goals()
	}

	for _, c := range g.goals {
		g.goalBox.AppendText(c.Label)
	}

	g.level.SetMinValue(0)
	g.level.SetMaxValue(1)
	g.detailLbl.SetLineWrap(true)

	ctlBox.PackStart(goalLbl, false, false, 2)
	ctlBox.PackStart(g.goalBox, false, false, 2)
	ctlBox.PackEnd(g.notifySw, false, false, 2)
	ctlBox.PackEnd(notifyLbl, false, false, 2)

	g.win.Add(g.mainBox)
	g.mainBox.PackStart(g.timeLbl, true, true, 10)
	g.mainBox.PackStart(g.level, false, false, 5)
	g.mainBox.PackStart(g.detailLbl, false, false, 5)
	g.mainBox.PackStart(ctlBox, false, false, 5)
	g.mainBox.PackStart(g.doneBtn, false, false, 5)
	g.mainBox.PackStart(g.statusbar, false, false, 1)

	g.win.Connect("destroy", gtk.MainQuit)
	g.goalBox.Connect("changed", g.handleGoalChanged)
	g.notifySw.Connect("notify::active", g.handleSwitch)
	g.doneBtn.Connect("clicked", g.handleDone)

	g.win.ShowAll()
	g.win.SetSizeRequest(480, 260)
	g.win.SetTitle(fmt.Sprintf("%s %s",
		common.AppName,
		common.Version))

	glib.TimeoutAdd(uint(refreshPeriod), g.refresh)

	return g, nil
} // func Create(srv string) (*GUI, error)

// Run executes gtk's main event loop.
func (g *GUI) Run() {
	g.refresh()
	g.checkOnboarding()

	gtk.Main()
} // func (g *GUI) Run()

// refresh runs a foreground check and shows the resulting state. It is
// called from the main loop once per second and always returns true to
// stay scheduled.
func (g *GUI) refresh() bool {
	var (
		err    error
		status *objects.Status
	)

	if _, err = g.client.Tick(); err != nil {
		g.log.Printf("[ERROR] Foreground check failed: %s\n",
			err.Error())
		g.apply(offlineView(err))
		return true
	} else if status, err = g.client.Status(); err != nil {
		g.log.Printf("[ERROR] Cannot fetch status from backend: %s\n",
			err.Error())
		g.apply(offlineView(err))
		return true
	}

	g.apply(mkView(status, g.goals))

	return true
} // func (g *GUI) refresh() bool

// apply updates the widgets. Signal handlers ignore the changes it makes.
func (g *GUI) apply(v view) {
	g.updating = true
	defer func() { g.updating = false }()

	g.timeLbl.SetMarkup(v.markup)
	g.level.SetValue(v.fraction)
	g.detailLbl.SetText(v.detail)

	if v.goalIdx >= 0 && g.goalBox.GetActive() != v.goalIdx {
		g.goalBox.SetActive(v.goalIdx)
	}

	if g.notifySw.GetActive() != v.registered {
		g.notifySw.SetActive(v.registered)
	}

	g.goalBox.SetSensitive(v.controls)
	g.notifySw.SetSensitive(v.controls)
	g.doneBtn.SetSensitive(v.done)
} // func (g *GUI) apply(v view)

func (g *GUI) checkOnboarding() {
	var (
		err  error
		show bool
	)

	if show, err = g.client.Onboarding(); err != nil {
		g.log.Printf("[ERROR] Cannot ask backend about onboarding: %s\n",
			err.Error())
	} else if show {
		g.runOnboarding()
	}
} // func (g *GUI) checkOnboarding()

func (g *GUI) handleGoalChanged() {
	if g.updating {
		return
	}

	krylib.Trace()

	var idx = g.goalBox.GetActive()

	if idx < 0 || idx >= len(g.goals) {
		return
	}

	var choice = g.goals[idx]

	if err := g.client.SetGoal(choice.Offset); err != nil {
		g.log.Printf("[ERROR] Cannot set goal to %s: %s\n",
			choice.Label,
			err.Error())
		g.displayMsg(fmt.Sprintf("Cannot set goal to %s: %s",
			choice.Label,
			err.Error()))
	} else {
		g.pushMsg(fmt.Sprintf("Goal set to %s", choice.Label))
	}

	g.refresh()
} // func (g *GUI) handleGoalChanged()

func (g *GUI) handleSwitch() {
	if g.updating {
		return
	}

	krylib.Trace()

	var (
		err  error
		ok   bool
		on   bool
		want = g.notifySw.GetActive()
	)

	if !want {
		if ok, err = g.yesOrNo(
			"Turn off reminders",
			"You will not be reminded once the goal time has passed. Turn reminders off?",
		); err != nil || !ok {
			g.refresh()
			return
		}
	}

	if on, err = g.client.SetNotifications(want); err != nil {
		g.log.Printf("[ERROR] Cannot change reminders: %s\n",
			err.Error())
		g.displayMsg(fmt.Sprintf("Cannot change reminders: %s",
			err.Error()))
	} else if on {
		g.pushMsg("Reminders are on")
	} else {
		g.pushMsg("Reminders are off")
	}

	g.refresh()
} // func (g *GUI) handleSwitch()

func (g *GUI) handleDone() {
	krylib.Trace()

	if err := g.client.Done(); err != nil {
		g.log.Printf("[ERROR] Cannot mark goal as done: %s\n",
			err.Error())
		g.displayMsg(fmt.Sprintf("Cannot mark goal as done: %s",
			err.Error()))
	} else {
		g.pushMsg("Well done! The countdown starts over.")
	}

	g.refresh()
} // func (g *GUI) handleDone()
