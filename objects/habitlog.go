// /home/krylon/go/src/github.com/blicero/sisyphos/objects/habitlog.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 04. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-06-19 22:02:17 krylon>

package objects

import "time"

//go:generate ffjson habitlog.go

// Completion levels. Despite the name, CompletionPercentage is not a
// percentage but an ordinal value; CompletionFull means the Habit was
// done completely on that day.
const (
	CompletionNone int = iota
	CompletionLow
	CompletionPartial
	CompletionFull
)

// HabitLog records how a Habit went on one calendar day.
// There is at most one HabitLog per Habit and day; logging the same day
// twice overwrites the first entry.
// Mood and Notes are empty, StressLevel is 0, if the user did not fill
// them in.
type HabitLog struct {
	ID                   int64
	HabitID              int64
	UserID               int64
	HabitName            string
	Date                 time.Time
	CompletionPercentage int
	Mood                 string
	StressLevel          int
	Notes                string
}

// IsCompleted returns true if the Habit was done at all on that day.
func (l *HabitLog) IsCompleted() bool {
	return l.CompletionPercentage > CompletionNone
} // func (l *HabitLog) IsCompleted() bool

// LogSample is the part of a HabitLog the Consistency Analyzer hands
// back for display.
type LogSample struct {
	Date                 time.Time `json:"log_date"`
	CompletionPercentage int       `json:"completion_percentage"`
}
