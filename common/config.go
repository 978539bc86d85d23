// /home/krylon/go/src/github.com/blicero/hygieia/common/config.go
// -*- mode: go; coding: utf-8; -*-
// Created on 03. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-09 18:05:12 krylon>

package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultInterval is how often the background check runs unless
// configured otherwise. It matches the coarse cadence mobile platforms
// grant a background fetch.
const DefaultInterval = time.Minute * 15

// DefaultDeadlineMessage is displayed instead of the countdown once the
// goal time has been reached.
const DefaultDeadlineMessage = "Time to wash!"

// Config holds the runtime settings of the backend.
type Config struct {
	Address   string
	Interval  time.Duration
	LogLevel  string
	Autostart bool
	DNSSD     bool
	Message   string
}

// LoadConfig reads the configuration from the environment. If a file
// named .env exists in BaseDir, its values are loaded first. Variables
// already set in the environment take precedence over the file.
func LoadConfig() (Config, error) {
	var (
		err error
		cfg = Config{
			Address:  fmt.Sprintf("localhost:%d", DefaultPort),
			Interval: DefaultInterval,
			LogLevel: string(MinLogLevel),
			Message:  DefaultDeadlineMessage,
		}
	)

	if _, err = os.Stat(EnvPath); err == nil {
		if err = godotenv.Load(EnvPath); err != nil {
			return cfg, fmt.Errorf("cannot load %s: %w", EnvPath, err)
		}
	}

	cfg.Address = getenv("HYGIEIA_ADDR", cfg.Address)
	cfg.LogLevel = getenv("HYGIEIA_LOGLEVEL", cfg.LogLevel)
	cfg.Message = getenv("HYGIEIA_MESSAGE", cfg.Message)

	if s := getenv("HYGIEIA_INTERVAL", ""); s != "" {
		if cfg.Interval, err = time.ParseDuration(s); err != nil {
			return cfg, fmt.Errorf("cannot parse HYGIEIA_INTERVAL %q: %w", s, err)
		} else if cfg.Interval <= 0 {
			return cfg, fmt.Errorf("HYGIEIA_INTERVAL must be positive, not %s", s)
		}
	}

	if cfg.Autostart, err = getbool("HYGIEIA_AUTOSTART", false); err != nil {
		return cfg, err
	} else if cfg.DNSSD, err = getbool("HYGIEIA_DNSSD", false); err != nil {
		return cfg, err
	}

	return cfg, nil
} // func LoadConfig() (Config, error)

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getbool(key string, def bool) (bool, error) {
	var s = getenv(key, "")

	if s == "" {
		return def, nil
	}

	b, err := strconv.ParseBool(s)
	if err != nil {
		return def, fmt.Errorf("cannot parse %s %q: %w", key, s, err)
	}

	return b, nil
}
