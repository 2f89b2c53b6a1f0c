// /home/krylon/go/src/github.com/blicero/sisyphos/objects/habit.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 04. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-06-19 21:54:02 krylon>

// Package objects provides the data types used by the application.
package objects

import "time"

//go:generate ffjson habit.go

// Habit is a regular activity a User wants to establish.
// Aside from the name and description, it carries a number of free-text
// fields the user fills in when creating the Habit, meant to keep them
// motivated later on.
//
// TotalCompletions, ConsecutiveDays and LastCompleted are derived from the
// HabitLogs and updated after every log write; they are cached on the Habit
// for cheap display.
type Habit struct {
	ID               int64
	UserID           int64
	Name             string
	Description      string
	WhenSpecifically string
	WhatMotivating   string
	WhatHindering    string
	WhomTell         string
	WhoInspires      string
	Milestones       string
	TreatMyself      string
	ContinueReason   string
	FailureAnalysis  string
	Active           bool
	Inconsistent     bool
	TotalCompletions int64
	ConsecutiveDays  int64
	LastCompleted    time.Time
	Created          time.Time
}

// HasBeenCompleted returns true if the Habit has been completed at least once.
func (h *Habit) HasBeenCompleted() bool {
	return !h.LastCompleted.IsZero()
} // func (h *Habit) HasBeenCompleted() bool
