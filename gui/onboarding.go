// /home/krylon/go/src/github.com/blicero/hygieia/gui/onboarding.go
// -*- mode: go; coding: utf-8; -*-
// Created on 14. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-14 22:10:48 krylon>

package gui

import (
	"fmt"
	"html"

	"github.com/blicero/hygieia/common"
	"github.com/blicero/hygieia/objects"
	"github.com/blicero/krylib"
	"github.com/gotk3/gotk3/gtk"
)

const pageMarkup = `<span size="x-large" weight="bold">%s</span>`

// pageType returns the type of the idx-th of cnt onboarding pages.
func pageType(idx, cnt int) gtk.AssistantPageType {
	switch {
	case idx == cnt-1:
		return gtk.ASSISTANT_PAGE_SUMMARY
	case idx == 0:
		return gtk.ASSISTANT_PAGE_INTRO
	default:
		return gtk.ASSISTANT_PAGE_CONTENT
	}
} // func pageType(idx, cnt int) gtk.AssistantPageType

// runOnboarding shows the introduction pages in a gtk.Assistant on top
// of the main window.
func (g *GUI) runOnboarding() {
	krylib.Trace()

	var (
		err   error
		asst  *gtk.Assistant
		pages = objects.Onboarding()
	)

	if asst, err = gtk.AssistantNew(); err != nil {
		g.log.Printf("[ERROR] Cannot create Assistant for onboarding: %s\n",
			err.Error())
		return
	}

	asst.SetTransientFor(g.win)
	asst.SetModal(true)
	asst.SetTitle(fmt.Sprintf("Welcome to %s", common.AppName))

	for i, p := range pages {
		var (
			box        *gtk.Box
			title, sub *gtk.Label
		)

		if box, err = gtk.BoxNew(gtk.ORIENTATION_VERTICAL, 10); err != nil {
			g.log.Printf("[ERROR] Cannot create gtk.Box for onboarding page: %s\n",
				err.Error())
			asst.Destroy()
			return
		} else if title, err = gtk.LabelNew(""); err != nil {
			g.log.Printf("[ERROR] Cannot create Label for onboarding page: %s\n",
				err.Error())
			asst.Destroy()
			return
		} else if sub, err = gtk.LabelNew(p.Subtitle); err != nil {
			g.log.Printf("[ERROR] Cannot create Label for onboarding page: %s\n",
				err.Error())
			asst.Destroy()
			return
		}

		title.SetMarkup(fmt.Sprintf(pageMarkup, html.EscapeString(p.Title)))
		title.SetLineWrap(true)
		sub.SetLineWrap(true)

		box.PackStart(title, true, true, 10)
		box.PackStart(sub, true, true, 10)

		asst.AppendPage(box)
		asst.SetPageTitle(box, fmt.Sprintf("%d/%d", i+1, len(pages)))
		asst.SetPageType(box, pageType(i, len(pages)))
		asst.SetPageComplete(box, true)
	}

	asst.Connect("cancel", asst.Destroy)
	asst.Connect("close", asst.Destroy)

	asst.SetSizeRequest(480, 260)
	asst.ShowAll()
} // func (g *GUI) runOnboarding()
