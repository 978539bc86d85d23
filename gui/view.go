// /home/krylon/go/src/github.com/blicero/hygieia/gui/view.go
// -*- mode: go; coding: utf-8; -*-
// Created on 14. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-14 21:30:12 krylon>

package gui

import (
	"fmt"
	"html"
	"strings"

	"github.com/blicero/hygieia/common"
	"github.com/blicero/hygieia/objects"
)

const (
	timerMarkup    = `<span size="xx-large" weight="bold" font_family="monospace">%s</span>`
	deadlineMarkup = `<span size="xx-large" weight="bold" foreground="#c01c28">%s</span>`
	offlineMarkup  = `<span size="large" foreground="#77767b">%s</span>`
)

// view is what the window shows for one Status, worked out before any
// widget is touched.
type view struct {
	markup     string
	fraction   float64
	detail     string
	goalIdx    int
	registered bool
	controls   bool
	done       bool
}

func mkView(s *objects.Status, goals []objects.GoalChoice) view {
	var v = view{
		goalIdx:    -1,
		registered: s.Registered,
		controls:   !s.DeadlineShown(),
		done:       s.DeadlineShown(),
	}

	if s.DeadlineShown() {
		v.markup = fmt.Sprintf(deadlineMarkup, html.EscapeString(s.Text))
	} else {
		v.markup = fmt.Sprintf(timerMarkup, html.EscapeString(s.Text))
	}

	if s.Total > 0 {
		v.fraction = float64(s.Remaining) / float64(s.Total)
	}

	if v.fraction < 0 {
		v.fraction = 0
	} else if v.fraction > 1 {
		v.fraction = 1
	}

	for i, c := range goals {
		if c.Offset == s.Goal {
			v.goalIdx = i
			break
		}
	}

	var parts = []string{fmt.Sprintf("Goal: %s", s.GoalLabel)}

	if s.DeadlineShown() && s.Notified && !s.LastNotifiedAt.IsZero() {
		parts = append(parts, fmt.Sprintf("reminded at %s",
			s.LastNotifiedAt.Format(common.TimestampFormatTime)))
	}

	if !s.Registered {
		parts = append(parts, "reminders are off")
	}

	v.detail = strings.Join(parts, ", ")

	return v
} // func mkView(s *objects.Status, goals []objects.GoalChoice) view

// offlineView is shown while the backend cannot be reached.
func offlineView(err error) view {
	return view{
		markup:  fmt.Sprintf(offlineMarkup, "Backend is not reachable"),
		detail:  err.Error(),
		goalIdx: -1,
	}
} // func offlineView(err error) view
