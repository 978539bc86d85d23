// /home/krylon/go/src/github.com/blicero/hygieia/ui/01_model_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 10. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-13 13:01:44 krylon>

package ui

import (
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/blicero/hygieia/objects"
	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
} // func key(s string) tea.KeyMsg

func testModel(status *objects.Status) model {
	var m = newModel(nil, log.New(io.Discard, "", 0))
	m.status = status
	return m
} // func testModel(status *objects.Status) model

func counting() *objects.Status {
	return &objects.Status{
		Goal:       objects.Evening,
		GoalLabel:  objects.Evening.Label(),
		Phase:      "Counting",
		Remaining:  time.Hour.Milliseconds(),
		Total:      (time.Hour * 24).Milliseconds(),
		Text:       "01:00:00",
		Registered: true,
	}
} // func counting() *objects.Status

func deadline() *objects.Status {
	return &objects.Status{
		Goal:      objects.Evening,
		GoalLabel: objects.Evening.Label(),
		Phase:     "DeadlineShown",
		Total:     (time.Hour * 24).Milliseconds(),
		Text:      "Time to wash!",
	}
} // func deadline() *objects.Status

func TestKeysWhileCounting(t *testing.T) {
	type testCase struct {
		key     string
		wantCmd bool
	}

	var cases = []testCase{
		{key: "1", wantCmd: true},  // morning
		{key: "2", wantCmd: false}, // already evening
		{key: "3", wantCmd: true},
		{key: "n", wantCmd: true},
		{key: "d", wantCmd: false},
		{key: "x", wantCmd: false},
	}

	for _, c := range cases {
		var _, cmd = testModel(counting()).Update(key(c.key))

		if (cmd != nil) != c.wantCmd {
			t.Errorf("Key %q: command = %t, expected %t",
				c.key,
				cmd != nil,
				c.wantCmd)
		}
	}
} // func TestKeysWhileCounting(t *testing.T)

func TestKeysWhileDeadlineShown(t *testing.T) {
	for _, k := range []string{"1", "3", "n"} {
		var res, cmd = testModel(deadline()).Update(key(k))

		if cmd != nil {
			t.Errorf("Key %q should be disabled while the deadline is shown", k)
		} else if m := res.(model); m.note == "" || !m.noteErr {
			t.Errorf("Key %q did not explain why it is disabled", k)
		}
	}

	if _, cmd := testModel(deadline()).Update(key("d")); cmd == nil {
		t.Error("Done should be available while the deadline is shown")
	}
} // func TestKeysWhileDeadlineShown(t *testing.T)

func TestOnboardingPages(t *testing.T) {
	var res tea.Model = testModel(nil)

	res, _ = res.Update(onboardingMsg{show: true})

	for i := range pages {
		var m = res.(model)

		if !m.onboarding {
			t.Fatalf("Onboarding ended after %d pages", i)
		} else if !strings.Contains(m.View(), pages[i].title) {
			t.Errorf("Page %d does not show its title", i)
		}

		res, _ = res.Update(key(" "))
	}

	if res.(model).onboarding {
		t.Error("Onboarding did not end after the last page")
	}
} // func TestOnboardingPages(t *testing.T)

func TestView(t *testing.T) {
	var view = testModel(counting()).View()

	if !strings.Contains(view, "01:00:00") {
		t.Error("View does not show the remaining time")
	} else if !strings.Contains(view, objects.Evening.Label()) {
		t.Error("View does not show the goal")
	}

	if view = testModel(deadline()).View(); !strings.Contains(view, "Time to wash!") {
		t.Error("View does not show the deadline message")
	} else if strings.Contains(view, "notifications") {
		t.Error("Notification toggle is offered while the deadline is shown")
	}
} // func TestView(t *testing.T)
