// /home/krylon/go/src/github.com/blicero/hygieia/gui/helpers.go
// -*- mode: go; coding: utf-8; -*-
// Created on 22. 07. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-14 21:55:30 krylon>

package gui

import (
	"errors"
	"fmt"

	"github.com/blicero/krylib"
	"github.com/gotk3/gotk3/gtk"
)

// ErrNoAnswer is returned by yesOrNo when the dialog is dismissed.
var ErrNoAnswer = errors.New("User did not answer question")

func (g *GUI) displayMsg(msg string) {
	krylib.Trace()
	defer g.log.Printf("[TRACE] EXIT %s\n",
		krylib.TraceInfo())

	var (
		err error
		dlg *gtk.Dialog
		lbl *gtk.Label
		box *gtk.Box
	)

	if dlg, err = gtk.DialogNewWithButtons(
		"Message",
		g.win,
		gtk.DIALOG_MODAL,
		[]any{
			"Okay",
			gtk.RESPONSE_OK,
		},
	); err != nil {
		g.log.Printf("[ERROR] Cannot create dialog to display message: %s\nMessage would have been %q\n",
			err.Error(),
			msg)
		return
	}

	defer dlg.Destroy()

	if lbl, err = gtk.LabelNew(msg); err != nil {
		g.log.Printf("[ERROR] Cannot create label to display message: %s\nMessage would have been %q\n",
			err.Error(),
			msg)
		return
	} else if box, err = dlg.GetContentArea(); err != nil {
		g.log.Printf("[ERROR] Cannot get ContentArea of Dialog: %s\nMessage would have been %q\n",
			err.Error(),
			msg)
		return
	}

	lbl.SetLineWrap(true)
	box.PackStart(lbl, true, true, 5)
	dlg.ShowAll()
	dlg.Run()
} // func (g *GUI) displayMsg(msg string)

func (g *GUI) yesOrNo(title, question string) (bool, error) {
	var (
		err error
		dlg *gtk.Dialog
		lbl *gtk.Label
		box *gtk.Box
	)

	if dlg, err = gtk.DialogNewWithButtons(
		title,
		g.win,
		gtk.DIALOG_MODAL,
		[]any{
			"_Yes",
			gtk.RESPONSE_YES,
			"_No",
			gtk.RESPONSE_NO,
		},
	); err != nil {
		g.log.Printf("[ERROR] Cannot create Dialog: %s\n",
			err.Error())
		return false, err
	}

	defer dlg.Destroy()

	if lbl, err = gtk.LabelNew(question); err != nil {
		g.log.Printf("[ERROR] Cannot create Label for Dialog: %s\n",
			err.Error())
		return false, err
	} else if box, err = dlg.GetContentArea(); err != nil {
		g.log.Printf("[ERROR] Cannot get ContentArea of Dialog: %s\n",
			err.Error())
		return false, err
	}

	lbl.SetLineWrap(true)
	box.PackStart(lbl, true, true, 5)
	dlg.ShowAll()

	return answer(dlg.Run())
} // func (g *GUI) yesOrNo(title, question string) (bool, error)

// answer maps the response of a yes/no dialog to a bool.
func answer(res gtk.ResponseType) (bool, error) {
	switch res {
	case gtk.RESPONSE_YES:
		return true, nil
	case gtk.RESPONSE_NO:
		return false, nil
	case gtk.RESPONSE_NONE, gtk.RESPONSE_DELETE_EVENT, gtk.RESPONSE_CLOSE, gtk.RESPONSE_CANCEL:
		return false, ErrNoAnswer
	default:
		return false, fmt.Errorf("Unexpected response from user: %s",
			responseTypeStr(res))
	}
} // func answer(res gtk.ResponseType) (bool, error)

func (g *GUI) pushMsg(msg string) {
	g.statusbar.Push(msgID, msg)
} // func (g *GUI) pushMsg(msg string)

// gotk3 has no String method for gtk.ResponseType.
func responseTypeStr(t gtk.ResponseType) string {
	switch t {
	case gtk.RESPONSE_NONE:
		return "None"
	case gtk.RESPONSE_REJECT:
		return "Reject"
	case gtk.RESPONSE_ACCEPT:
		return "Accept"
	case gtk.RESPONSE_DELETE_EVENT:
		return "DeleteEvent"
	case gtk.RESPONSE_OK:
		return "OK"
	case gtk.RESPONSE_CANCEL:
		return "Cancel"
	case gtk.RESPONSE_CLOSE:
		return "Close"
	case gtk.RESPONSE_YES:
		return "Yes"
	case gtk.RESPONSE_NO:
		return "No"
	case gtk.RESPONSE_APPLY:
		return "Apply"
	case gtk.RESPONSE_HELP:
		return "Help"
	default:
		return fmt.Sprintf("Unknown ResponseType %d",
			t)
	}
} // func responseTypeStr(t gtk.ResponseType) string
