// /home/krylon/go/src/github.com/blicero/sisyphos/objects/user.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 04. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-05-30 17:21:40 krylon>

package objects

import "time"

//go:generate ffjson user.go

// User is a person that tracks their habits.
// Authentication is not our business, we just need to know whom
// the habits belong to and when to nag them.
type User struct {
	ID              int64
	Username        string
	ReminderTime    string
	ReminderEnabled bool
	Created         time.Time
}
