// /home/krylon/go/src/github.com/blicero/hygieia/clients/history/main.go
// -*- mode: go; coding: utf-8; -*-
// Created on 25. 07. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-13 15:02:30 krylon>

// history prints the current goal state and the most recent reminders
// the backend sent.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/blicero/hygieia/clients/clientlib"
	"github.com/blicero/hygieia/common"
	"github.com/blicero/hygieia/objects"
)

func main() {
	var (
		err    error
		addr   string
		cnt    int
		client *clientlib.Client
		status *objects.Status
		list   []objects.HistoryEntry
	)

	flag.StringVar(
		&addr,
		"address",
		fmt.Sprintf("localhost:%d", common.DefaultPort),
		"Address of the backend")

	flag.IntVar(
		&cnt,
		"count",
		10,
		"Number of reminders to list")

	flag.Parse()

	common.LogToStdout = false

	if client, err = clientlib.NewClient(addr); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot create Client: %s\n",
			err.Error())
		os.Exit(1)
	} else if status, err = client.Status(); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Failed to get status: %s\n",
			err.Error())
		os.Exit(1)
	} else if list, err = client.History(cnt); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Failed to get history: %s\n",
			err.Error(),
		)
		os.Exit(1)
	}

	fmt.Printf("Goal:          %s\n", status.GoalLabel)
	fmt.Printf("State:         %s (%s)\n", status.State, status.Detail)
	fmt.Printf("Countdown:     %s\n", status.Text)
	fmt.Printf("Notifications: %t\n\n", status.Registered)

	for _, e := range list {
		fmt.Printf("%s - [%-10s] %s\n",
			e.FiredAt.Format(common.TimestampFormat),
			e.Origin,
			e.Title)
	}
}
