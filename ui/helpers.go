// /home/krylon/go/src/github.com/blicero/hygieia/ui/helpers.go
// -*- mode: go; coding: utf-8; -*-
// Created on 16. 07. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-13 10:40:02 krylon>

package ui

import (
	"context"
	"time"

	"github.com/blicero/hygieia/clients/clientlib"
	"github.com/blicero/hygieia/objects"
	"github.com/blicero/krylib"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	reconnectDelay = time.Second * 2
	noteTimeout    = time.Second * 3
	connectTimeout = time.Second * 5
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("25")).
			PaddingLeft(1).
			PaddingRight(1)

	timerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(1, 4)

	deadlineStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")).
			Padding(1, 4)

	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))  // Blue
	actionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))  // Green
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")) // Gray
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	pageStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39"))
)

type streamMsg struct {
	cd *clientlib.Countdown
}

type frameMsg struct {
	status *objects.Status
}

type streamErrMsg struct {
	err error
}

type reconnectMsg struct{}

type onboardingMsg struct {
	show bool
}

type noteMsg struct {
	text  string
	isErr bool
}

func connect(c *clientlib.Client) tea.Cmd {
	return func() tea.Msg {
		var ctx, cancel = context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		var cd, err = c.Countdown(ctx)

		if err != nil {
			return streamErrMsg{err: err}
		}

		return streamMsg{cd: cd}
	}
} // func connect(c *clientlib.Client) tea.Cmd

func waitFrame(cd *clientlib.Countdown) tea.Cmd {
	return func() tea.Msg {
		var status, err = cd.Next()

		if err != nil {
			return streamErrMsg{err: err}
		}

		return frameMsg{status: status}
	}
} // func waitFrame(cd *clientlib.Countdown) tea.Cmd

func reconnectLater() tea.Cmd {
	return tea.Tick(reconnectDelay, func(time.Time) tea.Msg {
		return reconnectMsg{}
	})
} // func reconnectLater() tea.Cmd

func checkOnboarding(c *clientlib.Client) tea.Cmd {
	return func() tea.Msg {
		var show, err = c.Onboarding()

		if err != nil {
			return noteMsg{text: err.Error(), isErr: true}
		}

		return onboardingMsg{show: show}
	}
} // func checkOnboarding(c *clientlib.Client) tea.Cmd

func setGoal(c *clientlib.Client, g objects.GoalOffset) tea.Cmd {
	return func() tea.Msg {
		if err := c.SetGoal(g); err != nil {
			return noteMsg{text: err.Error(), isErr: true}
		}

		return noteMsg{text: "Goal set to " + g.Label()}
	}
} // func setGoal(c *clientlib.Client, g objects.GoalOffset) tea.Cmd

func setNotifications(c *clientlib.Client, on bool) tea.Cmd {
	return func() tea.Msg {
		var registered, err = c.SetNotifications(on)

		if err != nil {
			return noteMsg{text: err.Error(), isErr: true}
		} else if registered {
			return noteMsg{text: "Notifications enabled"}
		}

		return noteMsg{text: "Notifications disabled"}
	}
} // func setNotifications(c *clientlib.Client, on bool) tea.Cmd

func markDone(c *clientlib.Client, cd *clientlib.Countdown) tea.Cmd {
	return func() tea.Msg {
		c.GetLogger().Printf("[TRACE] ENTER %s\n", krylib.TraceInfo())

		var err error

		if cd != nil {
			err = cd.Done()
		} else {
			err = c.Done()
		}

		if err != nil {
			return noteMsg{text: err.Error(), isErr: true}
		}

		return noteMsg{text: "Well done!"}
	}
} // func markDone(c *clientlib.Client, cd *clientlib.Countdown) tea.Cmd
