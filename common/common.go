// /home/krylon/go/src/github.com/blicero/hygieia/common/common.go
// -*- mode: go; coding: utf-8; -*-
// Created on 02. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-09 18:02:41 krylon>

// Package common provides constants, variables and functions used
// throughout the application.
package common

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/blicero/hygieia/logdomain"
	"github.com/hashicorp/logutils"
	"github.com/odeke-em/go-uuid"
)

// Debug indicates whether to emit additional log messages and perform
// additional sanity checks.
// Version is the version number to display.
// AppName is the name of the application.
// DefaultPort is the TCP port the backend listens on by default.
const (
	Debug       = true
	Version     = "0.1.0"
	AppName     = "Hygieia"
	DefaultPort = 7203
)

// BuildStamp is the time the binary was built.
var BuildStamp = "(unknown)"

// TimestampFormat is the format string to represent timestamps.
// TimestampFormatSubSecond adds milliseconds.
// TimestampFormatTime formats the time of day only.
// TimestampFormatDate formats the date only.
const (
	TimestampFormat          = "2006-01-02 15:04:05"
	TimestampFormatSubSecond = "2006-01-02 15:04:05.0000 MST"
	TimestampFormatTime      = "15:04:05"
	TimestampFormatDate      = "2006-01-02"
)

// LogLevels are the names of the log levels supported by the logger.
var LogLevels = []logutils.LogLevel{
	"TRACE",
	"DEBUG",
	"INFO",
	"WARN",
	"ERROR",
	"CRITICAL",
	"CANTHAPPEN",
	"SILENT",
}

// PackageLevels defines minimum log levels per package.
var PackageLevels = make(map[logdomain.ID]logutils.LogLevel, len(LogLevels))

// MinLogLevel is the minimum level a message must have to be logged.
var MinLogLevel logutils.LogLevel = "TRACE"

func init() {
	for _, id := range logdomain.AllDomains() {
		PackageLevels[id] = MinLogLevel
	}
} // func init()

// BaseDir is the folder where all application-specific files are stored.
// It defaults to $HOME/.hygieia.d
var BaseDir = filepath.Join(os.Getenv("HOME"), ".hygieia.d")

// LogPath is the filename of the log file.
var LogPath = filepath.Join(BaseDir, "hygieia.log")

// DbPath is the filename of the database.
var DbPath = filepath.Join(BaseDir, "hygieia.db")

// EnvPath is the path of the optional file holding environment overrides.
var EnvPath = filepath.Join(BaseDir, ".env")

var (
	logLock sync.Mutex
	logFile *os.File
)

// LogToStdout controls whether loggers created by GetLogger copy their
// output to stdout. The terminal frontend turns it off, since it owns
// the screen.
var LogToStdout = true

// SetBaseDir sets the BaseDir and related variables.
func SetBaseDir(path string) error {
	var err error

	fmt.Printf("Setting BASE_DIR to %s\n", path)

	BaseDir = path
	LogPath = filepath.Join(BaseDir, "hygieia.log")
	DbPath = filepath.Join(BaseDir, "hygieia.db")
	EnvPath = filepath.Join(BaseDir, ".env")

	logLock.Lock()
	if logFile != nil {
		logFile.Close() // nolint: errcheck
		logFile = nil
	}
	logLock.Unlock()

	if err = InitApp(); err != nil {
		fmt.Printf("Error initializing application environment: %s\n", err.Error())
		return err
	}

	return nil
} // func SetBaseDir(path string) error

// InitApp performs some basic preparations for the application to run.
// Currently, this means creating the BaseDir folder.
func InitApp() error {
	var err error

	if err = os.MkdirAll(BaseDir, 0700); err != nil && !os.IsExist(err) {
		return fmt.Errorf("cannot create BaseDir %s: %w", BaseDir, err)
	}

	return nil
} // func InitApp() error

// GetLogger tries to create a named logger instance and return it.
// If the directory to hold the log file does not exist, try to create it.
func GetLogger(dom logdomain.ID) (*log.Logger, error) {
	var err error

	if err = InitApp(); err != nil {
		return nil, fmt.Errorf("cannot initialize application environment: %w", err)
	}

	logName := fmt.Sprintf("%s.%s ",
		strings.ToLower(AppName),
		dom)

	logLock.Lock()
	defer logLock.Unlock()

	if logFile == nil {
		if logFile, err = os.OpenFile(LogPath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0600); err != nil {
			logFile = nil
			return nil, fmt.Errorf("cannot open logfile %s: %w", LogPath, err)
		}
	}

	var writer io.Writer = logFile

	if LogToStdout {
		writer = io.MultiWriter(os.Stdout, logFile)
	}

	var lvl = MinLogLevel
	if l, ok := PackageLevels[dom]; ok {
		lvl = l
	}

	filter := &logutils.LevelFilter{
		Levels:   LogLevels,
		MinLevel: lvl,
		Writer:   writer,
	}

	logger := log.New(filter, logName, log.Ldate|log.Ltime|log.Lshortfile)
	return logger, nil
} // func GetLogger(dom logdomain.ID) (*log.Logger, error)

// SetLogLevel sets the minimum level for all log domains.
// Unknown level names are rejected.
func SetLogLevel(level string) error {
	var lvl = logutils.LogLevel(strings.ToUpper(level))

	for _, l := range LogLevels {
		if l == lvl {
			MinLogLevel = lvl
			for id := range PackageLevels {
				PackageLevels[id] = lvl
			}
			return nil
		}
	}

	return fmt.Errorf("invalid log level %q", level)
} // func SetLogLevel(level string) error

// GetUUID returns a randomized UUID
func GetUUID() string {
	return uuid.NewRandom().String()
} // func GetUUID() string
