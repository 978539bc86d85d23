// /home/krylon/go/src/github.com/blicero/hygieia/objects/notification.go
// -*- mode: go; coding: utf-8; -*-
// Created on 30. 06. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-05 16:31:20 krylon>

// Package objects provides the data types used by the application.
package objects

// Notification is the common interface for items the user should be
// notified about.
type Notification interface {
	Payload() (string, string)
}
