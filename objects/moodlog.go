// /home/krylon/go/src/github.com/blicero/sisyphos/objects/moodlog.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 04. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-05-30 17:29:11 krylon>

package objects

import "time"

//go:generate ffjson moodlog.go

// MoodLog records a User's mood on one calendar day, independently of
// any Habit. One entry per user and day, overwritten on re-log.
type MoodLog struct {
	ID          int64
	UserID      int64
	Date        time.Time
	Mood        string
	StressLevel int
	Notes       string
}
