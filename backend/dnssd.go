// /home/krylon/go/src/github.com/blicero/hygieia/backend/dnssd.go
// -*- mode: go; coding: utf-8; -*-
// Created on 24. 08. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-12 13:20:18 krylon>

package backend

import (
	"fmt"
	"net"
	"strconv"

	"github.com/blicero/hygieia/common"
	"github.com/grandcat/zeroconf"
)

const (
	srvService = "_http._tcp"
	srvDomain  = "local."
)

// initDNSSd advertises the HTTP API on the local network, so a frontend
// on another machine can find it.
func (d *Daemon) initDNSSd() error {
	var (
		err      error
		portStr  string
		port     int64
		srv      *zeroconf.Server
		instance = fmt.Sprintf("%s@%s", common.AppName, d.hostname)
		txt      = []string{
			"txtv=0",
			"version=" + common.Version,
			"path=/status",
		}
	)

	if _, portStr, err = net.SplitHostPort(d.web.Addr); err != nil {
		d.log.Printf("[ERROR] Cannot parse HTTP port from server address %q: %s\n",
			d.web.Addr,
			err.Error())
		return err
	} else if port, err = strconv.ParseInt(portStr, 10, 32); err != nil || port <= 0 || port > 65535 {
		err = fmt.Errorf("Invalid port %q in server address %q", portStr, d.web.Addr)
		d.log.Printf("[ERROR] %s\n", err.Error())
		return err
	}

	if srv, err = zeroconf.Register(instance, srvService, srvDomain, int(port), txt, nil); err != nil {
		d.log.Printf("[ERROR] Cannot register service with DNS-SD: %s\n",
			err.Error())
		return err
	}

	d.log.Printf("[INFO] Advertising %s as %s.%s%s\n",
		d.web.Addr,
		instance,
		srvService,
		srvDomain)

	d.dnssd = srv
	return nil
} // func (d *Daemon) initDNSSd() error
