// /home/krylon/go/src/github.com/blicero/sisyphos/common/common.go
// -*- mode: go; coding: utf-8; -*-
// Created on 03. 04. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-06-21 18:47:33 krylon>

// Package common provides constants and shared values used throughout
// the application.
package common

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/blicero/krylib"
	"github.com/blicero/sisyphos/logdomain"
	"github.com/hashicorp/logutils"
	"github.com/odeke-em/go-uuid"
)

// Debug, if set, causes the application to log and check more aggressively.
const (
	Debug                    = true
	AppName                  = "Sisyphos"
	Version                  = "0.3.2"
	TimestampFormat          = "2006-01-02 15:04:05"
	TimestampFormatMinute    = "2006-01-02 15:04"
	TimestampFormatSubSecond = "2006-01-02 15:04:05.0000 MST"
	TimestampFormatDate      = "2006-01-02"
	TimeOfDayFormat          = "15:04"
	DefaultPort              = 5281
)

// BuildStamp is filled in by the linker at build time.
var BuildStamp = "unknown"

// LogLevels are the log levels recognized by the logging package we use.
var LogLevels = []logutils.LogLevel{
	"TRACE",
	"DEBUG",
	"INFO",
	"WARNING",
	"ERROR",
	"CRITICAL",
	"CANTHAPPEN",
	"SILENT",
}

// MinLogLevel is the minimum level a log message must have to actually
// get logged.
var MinLogLevel logutils.LogLevel = "TRACE"

func init() {
	if !Debug {
		MinLogLevel = "INFO"
	}
} // func init()

// BaseDir is the directory where the application keeps its files.
var BaseDir = filepath.Join(
	os.Getenv("HOME"),
	fmt.Sprintf(".%s.d", strings.ToLower(AppName)))

// LogPath is the file to which the application writes its log.
var LogPath = filepath.Join(BaseDir, strings.ToLower(AppName)+".log")

// DbPath is the path of the database.
var DbPath = filepath.Join(BaseDir, strings.ToLower(AppName)+".db")

// SetBaseDir sets the BaseDir and the paths that depend on it.
func SetBaseDir(path string) error {
	fmt.Printf("Setting BaseDir to %s\n", path)

	BaseDir = path
	LogPath = filepath.Join(BaseDir, strings.ToLower(AppName)+".log")
	DbPath = filepath.Join(BaseDir, strings.ToLower(AppName)+".db")

	if err := InitApp(); err != nil {
		fmt.Printf("Error initializing application environment: %s\n",
			err.Error())
		return err
	}

	return nil
} // func SetBaseDir(path string) error

// GetLogger tries to create a Logger for the given log domain.
func GetLogger(dom logdomain.ID) (*log.Logger, error) {
	var (
		err     error
		logfile *os.File
	)

	if err = InitApp(); err != nil {
		return nil, fmt.Errorf("Error initializing application environment: %s",
			err.Error())
	}

	var name = fmt.Sprintf("%s.%s ",
		AppName,
		dom)

	if logfile, err = os.OpenFile(LogPath, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0644); err != nil {
		return nil, fmt.Errorf("Error opening log file %s: %s",
			LogPath,
			err.Error())
	}

	var writer = io.MultiWriter(os.Stdout, logfile)

	var filter = &logutils.LevelFilter{
		Levels:   LogLevels,
		MinLevel: MinLogLevel,
		Writer:   writer,
	}

	return log.New(filter, name, log.Ldate|log.Ltime|log.Lshortfile), nil
} // func GetLogger(dom logdomain.ID) (*log.Logger, error)

// InitApp performs some basic preparations for the application to run.
// Currently this means creating the BaseDir if it does not exist.
func InitApp() error {
	var (
		err    error
		exists bool
	)

	if exists, err = krylib.Fexists(BaseDir); err != nil {
		return fmt.Errorf("Error checking if BaseDir %s exists: %s",
			BaseDir,
			err.Error())
	} else if !exists {
		if err = os.MkdirAll(BaseDir, 0755); err != nil {
			return fmt.Errorf("Error creating BaseDir %s: %s",
				BaseDir,
				err.Error())
		}
	}

	return nil
} // func InitApp() error

// GetUUID returns a randomized UUID as a string.
func GetUUID() string {
	return uuid.NewRandom().String()
} // func GetUUID() string

// TimeEqual returns true if the two timestamps are less than one second apart.
func TimeEqual(t1, t2 time.Time) bool {
	var delta = t1.Sub(t2)

	if delta < 0 {
		delta = -delta
	}

	return delta < time.Second
} // func TimeEqual(t1, t2 time.Time) bool
