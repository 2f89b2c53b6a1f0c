// /home/krylon/go/src/github.com/blicero/sisyphos/logdomain/logdomain.go
// -*- mode: go; coding: utf-8; -*-
// Created on 03. 04. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-05 19:06:54 krylon>

// Package logdomain provides symbolic constants to identify the various
// parts of the application that perform logging.
package logdomain

//go:generate stringer -type=ID

// ID represents a part of the application that does logging.
type ID uint8

// These constants identify the various log sources.
const (
	Common ID = iota
	Database
	DBPool
	Backend
	Analysis
	Reminder
)

// AllDomains returns a slice of all the known log sources.
func AllDomains() []ID {
	return []ID{
		Common,
		Database,
		DBPool,
		Backend,
		Analysis,
		Reminder,
	}
} // func AllDomains() []ID
