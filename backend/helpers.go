// /home/krylon/go/src/github.com/blicero/hygieia/backend/helpers.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 07. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-12 11:31:09 krylon>

package backend

import (
	"net/http"

	"github.com/blicero/hygieia/objects"
	"github.com/pquerna/ffjson/ffjson"
)

func (d *Daemon) sendResponseJSON(w http.ResponseWriter, res *objects.Response) {
	d.sendJSON(w, res)
} // func (d *Daemon) sendResponseJSON(w http.ResponseWriter, res *objects.Response)

func (d *Daemon) sendJSON(w http.ResponseWriter, v any) {
	var (
		err error
		buf []byte
	)

	if buf, err = ffjson.Marshal(v); err != nil {
		d.log.Printf("[ERROR] Cannot serialize %T: %s\n",
			v,
			err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) sendJSON(w http.ResponseWriter, v any)

func (d *Daemon) getID() int64 {
	d.idLock.Lock()
	d.idCnt++
	var id = d.idCnt
	d.idLock.Unlock()
	return id
} // func (d *Daemon) getID() int64
