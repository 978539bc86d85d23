// /home/krylon/go/src/github.com/blicero/hygieia/state/memkv.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-08 22:10:31 krylon>

package state

import "sync"

// MemKV is a KV that lives in memory only.
type MemKV struct {
	lock   sync.RWMutex
	values map[string]string
	writes int
}

// NewMemKV returns an empty MemKV.
func NewMemKV() *MemKV {
	return &MemKV{values: make(map[string]string)}
} // func NewMemKV() *MemKV

// Get returns the value stored under key.
func (m *MemKV) Get(key string) (string, bool, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
} // func (m *MemKV) Get(key string) (string, bool, error)

// Set stores value under key.
func (m *MemKV) Set(key, value string) error {
	m.lock.Lock()
	m.values[key] = value
	m.writes++
	m.lock.Unlock()
	return nil
} // func (m *MemKV) Set(key, value string) error

// Delete removes key.
func (m *MemKV) Delete(key string) error {
	m.lock.Lock()
	delete(m.values, key)
	m.writes++
	m.lock.Unlock()
	return nil
} // func (m *MemKV) Delete(key string) error

// Writes returns the number of Set and Delete calls so far.
func (m *MemKV) Writes() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.writes
} // func (m *MemKV) Writes() int
