// /home/krylon/go/src/github.com/blicero/hygieia/objects/goal.go
// -*- mode: go; coding: utf-8; -*-
// Created on 03. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-09 17:12:44 krylon>

package objects

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidGoal is returned for goal offsets outside the fixed set of choices.
var ErrInvalidGoal = errors.New("invalid goal offset")

// GoalOffset is the daily deadline, in milliseconds past local midnight.
type GoalOffset int64

// The goal can be set to one of these three times of day.
const (
	Morning     GoalOffset = 1000 * 60 * 60 * 7
	Evening     GoalOffset = 1000 * 60 * 60 * 19
	Night       GoalOffset = 1000 * 60 * 60 * 23
	DefaultGoal            = Morning
)

//go:generate ffjson goal.go

// GoalChoice is one entry of the goal selector.
type GoalChoice struct {
	Name   string
	Label  string
	Offset GoalOffset
}

var goalNames = map[GoalOffset]string{
	Morning: "morning",
	Evening: "evening",
	Night:   "night",
}

// Goals returns the choices available for the daily goal, in the order
// they appear in the selector.
func Goals() []GoalChoice {
	var list = make([]GoalChoice, 0, len(goalNames))

	for _, g := range []GoalOffset{Morning, Evening, Night} {
		list = append(list, GoalChoice{
			Name:   g.Name(),
			Label:  g.Label(),
			Offset: g,
		})
	}

	return list
} // func Goals() []GoalChoice

// Valid returns true if the offset is one of the known choices.
func (g GoalOffset) Valid() bool {
	_, ok := goalNames[g]
	return ok
} // func (g GoalOffset) Valid() bool

// Duration returns the offset as a time.Duration.
func (g GoalOffset) Duration() time.Duration {
	return time.Duration(g) * time.Millisecond
} // func (g GoalOffset) Duration() time.Duration

// Name returns the symbolic name of the choice, or an empty string for
// offsets that are not a valid choice.
func (g GoalOffset) Name() string {
	return goalNames[g]
} // func (g GoalOffset) Name() string

// Label returns a human-readable description, e.g. "Morning (07:00)".
func (g GoalOffset) Label() string {
	var name = g.Name()

	if name == "" {
		return g.String()
	}

	return fmt.Sprintf("%s%s (%s)",
		strings.ToUpper(name[:1]),
		name[1:],
		g.String()[:5])
} // func (g GoalOffset) Label() string

func (g GoalOffset) String() string {
	var off = int64(g) / 1000
	var h, m, s int64

	if off >= 3600 {
		h = off / 3600
		off = off % 3600
	}

	if off >= 60 {
		m = off / 60
		off = off % 60
	}

	s = off

	return fmt.Sprintf("%02d:%02d:%02d",
		h, m, s)
} // func (g GoalOffset) String() string

// ParseGoal accepts either the symbolic name of a choice or its offset
// in milliseconds.
func ParseGoal(s string) (GoalOffset, error) {
	var str = strings.ToLower(strings.TrimSpace(s))

	for g, name := range goalNames {
		if name == str {
			return g, nil
		}
	}

	ms, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidGoal, s)
	} else if g := GoalOffset(ms); !g.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidGoal, ms)
	}

	return GoalOffset(ms), nil
} // func ParseGoal(s string) (GoalOffset, error)
