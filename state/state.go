// /home/krylon/go/src/github.com/blicero/hygieia/state/state.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-10 12:48:55 krylon>

// Package state provides typed access to the goal state persisted in a
// string-valued key/value store. Every value is stored as a string.
// Absent keys and values that cannot be parsed are replaced by defaults
// and never reported as errors; failures of the underlying store are.
package state

import (
	"fmt"
	"strconv"
	"time"

	"github.com/blicero/hygieia/clock"
	"github.com/blicero/hygieia/objects"
)

// Keys used in the key/value store.
const (
	KeyGoalOffset     = "goal_offset"
	KeyNotified       = "notified"
	KeyLastNotifiedAt = "last_notified_at"
	KeyFirstTimeOpen  = "first_time_open"
	KeyBackground     = "background_registered"
	KeyOnboarding     = "onboarding_pending"
)

const (
	strTrue  = "true"
	strFalse = "false"
)

// KV is a persistent key/value store. Each call is expected to be atomic,
// but there are no transactions spanning several keys.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Store wraps a KV and knows how the goal state is laid out in it.
type Store struct {
	kv KV
}

// New creates a Store on top of kv.
func New(kv KV) *Store {
	return &Store{kv: kv}
} // func New(kv KV) *Store

// GoalOffset returns the configured goal. If none was ever set, the
// default is stored and returned. Unparseable values or values that are
// not one of the known choices yield the default without overwriting
// what is stored.
func (s *Store) GoalOffset() (objects.GoalOffset, error) {
	var (
		err   error
		raw   string
		found bool
		ms    int64
	)

	if raw, found, err = s.kv.Get(KeyGoalOffset); err != nil {
		return objects.DefaultGoal, fmt.Errorf("cannot read %s: %w", KeyGoalOffset, err)
	} else if !found {
		if err = s.kv.Set(KeyGoalOffset, formatInt(int64(objects.DefaultGoal))); err != nil {
			return objects.DefaultGoal, fmt.Errorf("cannot store default %s: %w", KeyGoalOffset, err)
		}
		return objects.DefaultGoal, nil
	} else if ms, err = strconv.ParseInt(raw, 10, 64); err != nil {
		return objects.DefaultGoal, nil
	} else if g := objects.GoalOffset(ms); !g.Valid() {
		return objects.DefaultGoal, nil
	}

	return objects.GoalOffset(ms), nil
} // func (s *Store) GoalOffset() (objects.GoalOffset, error)

// Load reads the complete goal state.
func (s *Store) Load() (objects.Snapshot, error) {
	var (
		err   error
		snap  objects.Snapshot
		raw   string
		found bool
	)

	if snap.Goal, err = s.GoalOffset(); err != nil {
		return snap, err
	} else if raw, found, err = s.kv.Get(KeyNotified); err != nil {
		return snap, fmt.Errorf("cannot read %s: %w", KeyNotified, err)
	}

	snap.NotifiedSet = found
	snap.Notified = found && raw == strTrue

	if raw, found, err = s.kv.Get(KeyLastNotifiedAt); err != nil {
		return snap, fmt.Errorf("cannot read %s: %w", KeyLastNotifiedAt, err)
	} else if found {
		if ms, perr := strconv.ParseInt(raw, 10, 64); perr == nil && ms > 0 {
			snap.LastNotifiedAt = clock.FromMillis(ms)
		}
	}

	return snap, nil
} // func (s *Store) Load() (objects.Snapshot, error)

// MarkNotified records that a notification was sent for deadline. The
// flag is written first, the timestamp second.
func (s *Store) MarkNotified(deadline time.Time) error {
	var err error

	if err = s.kv.Set(KeyNotified, strTrue); err != nil {
		return fmt.Errorf("cannot set %s: %w", KeyNotified, err)
	} else if err = s.kv.Set(KeyLastNotifiedAt, formatInt(clock.Millis(deadline))); err != nil {
		return fmt.Errorf("cannot set %s: %w", KeyLastNotifiedAt, err)
	}

	return nil
} // func (s *Store) MarkNotified(deadline time.Time) error

// Acknowledge clears the notified flag after the user confirmed the
// goal was met. The timestamp is kept, so today's deadline does not
// fire again.
func (s *Store) Acknowledge() error {
	if err := s.kv.Set(KeyNotified, strFalse); err != nil {
		return fmt.Errorf("cannot clear %s: %w", KeyNotified, err)
	}

	return nil
} // func (s *Store) Acknowledge() error

// SetGoalOffset changes the goal and clears the notification state.
func (s *Store) SetGoalOffset(g objects.GoalOffset) error {
	var err error

	if !g.Valid() {
		return fmt.Errorf("%w: %d", objects.ErrInvalidGoal, g)
	} else if err = s.kv.Set(KeyGoalOffset, formatInt(int64(g))); err != nil {
		return fmt.Errorf("cannot set %s: %w", KeyGoalOffset, err)
	} else if err = s.kv.Set(KeyNotified, strFalse); err != nil {
		return fmt.Errorf("cannot clear %s: %w", KeyNotified, err)
	} else if err = s.kv.Delete(KeyLastNotifiedAt); err != nil {
		return fmt.Errorf("cannot delete %s: %w", KeyLastNotifiedAt, err)
	}

	return nil
} // func (s *Store) SetGoalOffset(g objects.GoalOffset) error

// FirstOpen returns true the first time it is called on a fresh store.
func (s *Store) FirstOpen() (bool, error) {
	var (
		err   error
		found bool
	)

	if _, found, err = s.kv.Get(KeyFirstTimeOpen); err != nil {
		return false, fmt.Errorf("cannot read %s: %w", KeyFirstTimeOpen, err)
	} else if found {
		return false, nil
	} else if err = s.kv.Set(KeyFirstTimeOpen, strFalse); err != nil {
		return true, fmt.Errorf("cannot set %s: %w", KeyFirstTimeOpen, err)
	}

	return true, nil
} // func (s *Store) FirstOpen() (bool, error)

// SetOnboardingPending marks the onboarding pages as not yet shown.
func (s *Store) SetOnboardingPending() error {
	if err := s.kv.Set(KeyOnboarding, strTrue); err != nil {
		return fmt.Errorf("cannot set %s: %w", KeyOnboarding, err)
	}

	return nil
} // func (s *Store) SetOnboardingPending() error

// TakeOnboarding returns true if the onboarding pages have not been
// shown yet and clears the flag. The flag survives restarts until it
// is taken.
func (s *Store) TakeOnboarding() (bool, error) {
	var (
		err     error
		raw     string
		found   bool
		pending bool
	)

	if raw, found, err = s.kv.Get(KeyOnboarding); err != nil {
		return false, fmt.Errorf("cannot read %s: %w", KeyOnboarding, err)
	} else if pending = found && raw == strTrue; !pending {
		return false, nil
	} else if err = s.kv.Set(KeyOnboarding, strFalse); err != nil {
		return false, fmt.Errorf("cannot clear %s: %w", KeyOnboarding, err)
	}

	return true, nil
} // func (s *Store) TakeOnboarding() (bool, error)

// BackgroundRegistered returns whether the background check was enabled
// when the application last ran.
func (s *Store) BackgroundRegistered() (bool, error) {
	raw, found, err := s.kv.Get(KeyBackground)
	if err != nil {
		return false, fmt.Errorf("cannot read %s: %w", KeyBackground, err)
	}

	return found && raw == strTrue, nil
} // func (s *Store) BackgroundRegistered() (bool, error)

// SetBackgroundRegistered persists whether the background check is enabled.
func (s *Store) SetBackgroundRegistered(on bool) error {
	if err := s.kv.Set(KeyBackground, strconv.FormatBool(on)); err != nil {
		return fmt.Errorf("cannot set %s: %w", KeyBackground, err)
	}

	return nil
} // func (s *Store) SetBackgroundRegistered(on bool) error

func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}
