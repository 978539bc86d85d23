// /home/krylon/go/src/github.com/blicero/hygieia/common/01_config_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 14. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-14 19:22:08 krylon>

package common

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var envKeys = []string{
	"HYGIEIA_ADDR",
	"HYGIEIA_INTERVAL",
	"HYGIEIA_LOGLEVEL",
	"HYGIEIA_AUTOSTART",
	"HYGIEIA_DNSSD",
	"HYGIEIA_MESSAGE",
}

func clearEnv(t *testing.T) {
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
} // func clearEnv(t *testing.T)

func withEnvFile(t *testing.T, content string) {
	var (
		oldPath = EnvPath
		dir     = t.TempDir()
	)

	EnvPath = filepath.Join(dir, ".env")
	t.Cleanup(func() { EnvPath = oldPath })

	if content == "" {
		return
	} else if err := os.WriteFile(EnvPath, []byte(content), 0600); err != nil {
		t.Fatalf("Cannot write %s: %s", EnvPath, err.Error())
	}
} // func withEnvFile(t *testing.T, content string)

func TestConfigDefaults(t *testing.T) {
	clearEnv(t)
	withEnvFile(t, "")

	var cfg, err = LoadConfig()

	if err != nil {
		t.Fatalf("Cannot load config: %s", err.Error())
	} else if cfg.Address != fmt.Sprintf("localhost:%d", DefaultPort) {
		t.Errorf("Unexpected default address: %s", cfg.Address)
	} else if cfg.Interval != DefaultInterval {
		t.Errorf("Unexpected default interval: %s", cfg.Interval)
	} else if cfg.Message != DefaultDeadlineMessage {
		t.Errorf("Unexpected default message: %q", cfg.Message)
	} else if cfg.Autostart || cfg.DNSSD {
		t.Errorf("Autostart and DNS-SD should be off by default: %#v", cfg)
	}
} // func TestConfigDefaults(t *testing.T)

func TestConfigEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv does not overwrite variables that are already set, and
	// clearEnv sets them to the empty string.
	for _, k := range envKeys {
		os.Unsetenv(k) // nolint: errcheck
	}
	withEnvFile(t, "HYGIEIA_INTERVAL=1h\nHYGIEIA_DNSSD=true\nHYGIEIA_MESSAGE=Wash now\n")
	t.Setenv("HYGIEIA_ADDR", "127.0.0.1:9000")

	var cfg, err = LoadConfig()

	// Load puts the file's values into the process environment.
	t.Cleanup(func() {
		for _, k := range envKeys {
			os.Unsetenv(k) // nolint: errcheck
		}
	})

	if err != nil {
		t.Fatalf("Cannot load config: %s", err.Error())
	} else if cfg.Address != "127.0.0.1:9000" {
		t.Errorf("Environment should override the default address: %s", cfg.Address)
	} else if cfg.Interval != time.Hour {
		t.Errorf("Unexpected interval: %s", cfg.Interval)
	} else if !cfg.DNSSD {
		t.Error("DNS-SD should be enabled by the .env file")
	} else if cfg.Message != "Wash now" {
		t.Errorf("Unexpected message: %q", cfg.Message)
	}
} // func TestConfigEnvFile(t *testing.T)

func TestConfigInvalid(t *testing.T) {
	type testCase struct {
		key   string
		value string
	}

	var cases = []testCase{
		{"HYGIEIA_INTERVAL", "soon"},
		{"HYGIEIA_INTERVAL", "-5m"},
		{"HYGIEIA_AUTOSTART", "maybe"},
		{"HYGIEIA_DNSSD", "perhaps"},
	}

	for _, c := range cases {
		clearEnv(t)
		withEnvFile(t, "")
		t.Setenv(c.key, c.value)

		if _, err := LoadConfig(); err == nil {
			t.Errorf("LoadConfig should reject %s=%q", c.key, c.value)
		}
	}
} // func TestConfigInvalid(t *testing.T)

func TestSetLogLevel(t *testing.T) {
	var old = MinLogLevel
	defer SetLogLevel(string(old)) // nolint: errcheck

	if err := SetLogLevel("debug"); err != nil {
		t.Errorf("Cannot set log level debug: %s", err.Error())
	} else if MinLogLevel != "DEBUG" {
		t.Errorf("Unexpected log level: %s", MinLogLevel)
	} else if err = SetLogLevel("chatty"); err == nil {
		t.Error("SetLogLevel should reject unknown levels")
	}
} // func TestSetLogLevel(t *testing.T)
