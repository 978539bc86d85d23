// /home/krylon/go/src/github.com/blicero/hygieia/ui/model.go
// -*- mode: go; coding: utf-8; -*-
// Created on 10. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-13 12:25:10 krylon>

package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/blicero/hygieia/clients/clientlib"
	"github.com/blicero/hygieia/common"
	"github.com/blicero/hygieia/objects"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 40

type model struct {
	client     *clientlib.Client
	log        *log.Logger
	stream     *clientlib.Countdown
	status     *objects.Status
	bar        progress.Model
	onboarding bool
	page       int
	note       string
	noteErr    bool
	noteExpiry time.Time
	connErr    error
	width      int
}

func newModel(c *clientlib.Client, l *log.Logger) model {
	var m = model{
		client: c,
		log:    l,
		bar:    progress.New(progress.WithDefaultGradient()),
	}

	m.bar.Width = barWidth
	return m
} // func newModel(c *clientlib.Client, l *log.Logger) model

func (m model) Init() tea.Cmd {
	return tea.Batch(
		checkOnboarding(m.client),
		connect(m.client),
	)
} // func (m model) Init() tea.Cmd

func (m model) deadlineShown() bool {
	return m.status != nil && m.status.DeadlineShown()
} // func (m model) deadlineShown() bool

func (m *model) setNote(text string, isErr bool) {
	m.note = text
	m.noteErr = isErr
	m.noteExpiry = time.Now().Add(noteTimeout)
} // func (m *model) setNote(text string, isErr bool)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if w := msg.Width - 8; w > 10 && w < barWidth {
			m.bar.Width = w
		} else {
			m.bar.Width = barWidth
		}
		return m, nil

	case onboardingMsg:
		m.onboarding = msg.show
		m.page = 0
		return m, nil

	case streamMsg:
		m.stream = msg.cd
		m.connErr = nil
		return m, waitFrame(m.stream)

	case frameMsg:
		m.status = msg.status
		return m, waitFrame(m.stream)

	case streamErrMsg:
		m.log.Printf("[ERROR] Lost countdown stream: %s\n", msg.err.Error())
		if m.stream != nil {
			m.stream.Close() // nolint: errcheck
			m.stream = nil
		}
		m.connErr = msg.err
		return m, reconnectLater()

	case reconnectMsg:
		return m, connect(m.client)

	case noteMsg:
		m.setNote(msg.text, msg.isErr)
		return m, nil

	case tea.KeyMsg:
		if m.onboarding {
			return m.handleOnboardingKeys(msg)
		}
		return m.handleKeys(msg)
	}

	return m, nil
} // func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd)

func (m model) handleOnboardingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m.quit()
	case "left", "h":
		if m.page > 0 {
			m.page--
		}
	default:
		if m.page++; m.page >= len(pages) {
			m.onboarding = false
			m.page = 0
		}
	}

	return m, nil
} // func (m model) handleOnboardingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd)

func (m model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "ctrl+c", "q":
		return m.quit()
	case "d", "enter":
		if !m.deadlineShown() {
			m.setNote("The deadline has not passed yet", false)
			return m, nil
		}
		return m, markDone(m.client, m.stream)
	case "1", "2", "3":
		if m.status == nil {
			return m, nil
		} else if m.deadlineShown() {
			m.setNote("Confirm you are done before changing the goal", true)
			return m, nil
		}

		var (
			idx   = int(key[0] - '1')
			goals = objects.Goals()
		)

		if idx >= len(goals) {
			return m, nil
		} else if goals[idx].Offset == m.status.Goal {
			return m, nil
		}

		return m, setGoal(m.client, goals[idx].Offset)
	case "n":
		if m.status == nil {
			return m, nil
		} else if m.deadlineShown() {
			m.setNote("Confirm you are done before changing notifications", true)
			return m, nil
		}
		return m, setNotifications(m.client, !m.status.Registered)
	}

	return m, nil
} // func (m model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd)

func (m model) quit() (tea.Model, tea.Cmd) {
	if m.stream != nil {
		m.stream.Close() // nolint: errcheck
		m.stream = nil
	}

	return m, tea.Quit
} // func (m model) quit() (tea.Model, tea.Cmd)

func (m model) View() string {
	if m.onboarding {
		return m.onboardingView()
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %s", common.AppName, common.Version)))
	b.WriteString("\n\n")

	switch {
	case m.status == nil && m.connErr != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Cannot reach backend: %s", m.connErr.Error())))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("Retrying..."))
		b.WriteString("\n")
	case m.status == nil:
		b.WriteString(mutedStyle.Render("Connecting..."))
		b.WriteString("\n")
	default:
		b.WriteString(m.countdownView())
	}

	b.WriteString("\n")
	b.WriteString(m.helpView())

	if m.note != "" && time.Now().Before(m.noteExpiry) {
		b.WriteString("\n\n")
		if m.noteErr {
			b.WriteString(errorStyle.Render(m.note))
		} else {
			b.WriteString(actionStyle.Render(m.note))
		}
	}

	return b.String()
} // func (m model) View() string

func (m model) countdownView() string {
	var (
		b      strings.Builder
		s      = m.status
		notify = "off"
		frac   float64
	)

	if s.DeadlineShown() {
		b.WriteString(deadlineStyle.Render(s.Text))
	} else {
		b.WriteString(timerStyle.Render(s.Text))
		if s.Total > 0 {
			frac = float64(s.Remaining) / float64(s.Total)
		}
	}

	b.WriteString("\n")
	b.WriteString(m.bar.ViewAs(frac))
	b.WriteString("\n\n")

	if s.Registered {
		notify = "on"
	}

	fmt.Fprintf(&b, "%s %s\n",
		mutedStyle.Render("Goal:         "),
		s.GoalLabel)
	fmt.Fprintf(&b, "%s %s\n",
		mutedStyle.Render("Notifications:"),
		notify)

	if !s.LastNotifiedAt.IsZero() {
		fmt.Fprintf(&b, "%s %s\n",
			mutedStyle.Render("Last reminder:"),
			s.LastNotifiedAt.Format(common.TimestampFormat))
	}

	return b.String()
} // func (m model) countdownView() string

func (m model) helpView() string {
	var items []string

	if m.deadlineShown() {
		items = append(items, keyStyle.Render("d")+" "+actionStyle.Render("done"))
	} else {
		for i, g := range objects.Goals() {
			items = append(items, keyStyle.Render(fmt.Sprintf("%d", i+1))+" "+actionStyle.Render(g.Name))
		}
		items = append(items, keyStyle.Render("n")+" "+actionStyle.Render("notifications"))
	}

	items = append(items, keyStyle.Render("q")+" "+actionStyle.Render("quit"))

	return strings.Join(items, mutedStyle.Render(" • "))
} // func (m model) helpView() string

func (m model) onboardingView() string {
	var (
		p     = pages[m.page]
		style = pageStyle.BorderForeground(lipgloss.Color(p.color))
		body  = lipgloss.JoinVertical(
			lipgloss.Left,
			lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.color)).Render(p.title),
			"",
			p.subtitle,
		)
		width = 60
	)

	if m.width > 0 && m.width-4 < width {
		width = m.width - 4
	}

	var next = "next"
	if m.page == len(pages)-1 {
		next = "start"
	}

	return style.Width(width).Render(body) +
		"\n\n" +
		mutedStyle.Render(fmt.Sprintf("%d/%d  ", m.page+1, len(pages))) +
		keyStyle.Render("any key") + " " + actionStyle.Render(next)
} // func (m model) onboardingView() string
