// /home/krylon/go/src/github.com/blicero/hygieia/ui/onboarding.go
// -*- mode: go; coding: utf-8; -*-
// Created on 10. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-14 21:04:10 krylon>

package ui

import "github.com/blicero/hygieia/objects"

type page struct {
	title    string
	subtitle string
	color    string
}

// One border color per page, cycled if there are more pages.
var pageColors = []string{"33", "42", "160"}

var pages = mkPages(objects.Onboarding())

func mkPages(src []objects.OnboardingPage) []page {
	var list = make([]page, len(src))

	for i, p := range src {
		list[i] = page{
			title:    p.Title,
			subtitle: p.Subtitle,
			color:    pageColors[i%len(pageColors)],
		}
	}

	return list
} // func mkPages(src []objects.OnboardingPage) []page
