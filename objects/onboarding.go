// /home/krylon/go/src/github.com/blicero/hygieia/objects/onboarding.go
// -*- mode: go; coding: utf-8; -*-
// Created on 14. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-14 21:02:37 krylon>

package objects

// OnboardingPage is one page of the introduction shown on the first run.
type OnboardingPage struct {
	Title    string
	Subtitle string
}

var onboarding = []OnboardingPage{
	{
		Title:    "Does your programmer forget to wash?",
		Subtitle: "We made this application for exactly that case!",
	},
	{
		Title:    "\"What?\", you ask, \"is this THE application everybody needs?\"",
		Subtitle: "Exactly right! An application by programmers, for programmers!",
	},
	{
		Title:    "But what if my programmer refuses to wash?",
		Subtitle: "Pick a time of day. Once it has passed, you get a reminder until you confirm you are done.",
	},
}

// Onboarding returns the pages of the introduction, in order.
func Onboarding() []OnboardingPage {
	var list = make([]OnboardingPage, len(onboarding))
	copy(list, onboarding)
	return list
} // func Onboarding() []OnboardingPage
