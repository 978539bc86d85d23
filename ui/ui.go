// /home/krylon/go/src/github.com/blicero/hygieia/ui/ui.go
// -*- mode: go; coding: utf-8; -*-
// Created on 02. 07. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-13 10:12:37 krylon>

// Package ui provides the terminal frontend: a live countdown to the
// daily goal, with controls to confirm it and to change the settings.
package ui

import (
	"log"

	"github.com/blicero/hygieia/clients/clientlib"
	"github.com/blicero/hygieia/common"
	"github.com/blicero/hygieia/logdomain"
	tea "github.com/charmbracelet/bubbletea"
)

// GUI is the frontend.
type GUI struct {
	client *clientlib.Client
	log    *log.Logger
	prog   *tea.Program
}

// Create creates the frontend, talking to the backend at srv.
func Create(srv string) (*GUI, error) {
	var (
		err error
		g   = new(GUI)
	)

	if g.log, err = common.GetLogger(logdomain.GUI); err != nil {
		return nil, err
	} else if g.client, err = clientlib.NewClient(srv); err != nil {
		g.log.Printf("[ERROR] Cannot create client for %s: %s\n",
			srv,
			err.Error())
		return nil, err
	}

	g.prog = tea.NewProgram(newModel(g.client, g.log), tea.WithAltScreen())

	return g, nil
} // func Create(srv string) (*GUI, error)

// Run runs the frontend until the user quits.
func (g *GUI) Run() error {
	var err error

	if _, err = g.prog.Run(); err != nil {
		g.log.Printf("[ERROR] Frontend quit with an error: %s\n",
			err.Error())
		return err
	}

	return nil
} // func (g *GUI) Run() error
