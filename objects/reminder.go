// /home/krylon/go/src/github.com/blicero/hygieia/objects/reminder.go
// -*- mode: go; coding: utf-8; -*-
// Created on 30. 06. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-09 17:40:58 krylon>

package objects

import "errors"

//go:generate ffjson reminder.go

// Reminder is ... a reminder. One of them is picked at random whenever
// the daily goal time has passed.
type Reminder struct {
	Title string
	Body  string
}

// Payload returns the Reminder's Title and Body.
func (r *Reminder) Payload() (string, string) {
	return r.Title, r.Body
} // func (r *Reminder) Payload() (string, string)

// ErrEmptyCatalog is returned when creating a Catalog without any Reminders.
var ErrEmptyCatalog = errors.New("reminder catalog is empty")

// Intner is the subset of *rand.Rand a Catalog needs to pick a Reminder.
type Intner interface {
	Intn(n int) int
}

// Catalog is an immutable list of Reminders.
type Catalog struct {
	items []Reminder
}

// NewCatalog creates a Catalog from a copy of the given Reminders.
func NewCatalog(items ...Reminder) (Catalog, error) {
	if len(items) == 0 {
		return Catalog{}, ErrEmptyCatalog
	}

	var c = Catalog{items: make([]Reminder, len(items))}
	copy(c.items, items)
	return c, nil
} // func NewCatalog(items ...Reminder) (Catalog, error)

// Len returns the number of Reminders in the Catalog.
func (c Catalog) Len() int {
	return len(c.items)
} // func (c Catalog) Len() int

// At returns the Reminder at index idx.
func (c Catalog) At(idx int) Reminder {
	return c.items[idx]
} // func (c Catalog) At(idx int) Reminder

// Pick returns a Reminder chosen uniformly at random. Repeats are allowed.
func (c Catalog) Pick(rng Intner) Reminder {
	return c.items[rng.Intn(len(c.items))]
} // func (c Catalog) Pick(rng Intner) Reminder

var defaultReminders = []Reminder{
	{
		Title: "Shower time",
		Body:  "Your keyboard called. It would like you to take a shower.",
	},
	{
		Title: "Time to wash!",
		Body:  "Compilers don't care how you smell. Your coworkers do.",
	},
	{
		Title: "Soap is waiting",
		Body:  "The build can run without you for fifteen minutes.",
	},
	{
		Title: "Daily maintenance",
		Body:  "You restart your servers regularly. Restart yourself, too.",
	},
	{
		Title: "git commit -m \"wash\"",
		Body:  "Nothing left to stage except yourself. Off to the shower.",
	},
	{
		Title: "Reminder",
		Body:  "Hot water fixes more bugs than you would think.",
	},
}

// DefaultCatalog returns the built-in Catalog of Reminders.
func DefaultCatalog() Catalog {
	var c, _ = NewCatalog(defaultReminders...)
	return c
} // func DefaultCatalog() Catalog
