// /home/krylon/go/src/github.com/blicero/sisyphos/objects/consistency.go
// -*- mode: go; coding: utf-8; -*-
// Created on 10. 04. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-06-21 19:10:35 krylon>

package objects

//go:generate ffjson consistency.go

// ConsistencyResult is the outcome of analyzing one Habit's logs over
// the trailing two weeks.
//
// A Habit counts as inconsistent if the completion rate is below 50%,
// more than 3 days in the window have no log at all, or it was completed
// on fewer than 5 days. That is policy, not configuration.
type ConsistencyResult struct {
	HabitID        int64       `json:"habitId"`
	CompletionRate int         `json:"completionRate"`
	CompletedDays  int         `json:"completedDays"`
	TotalDays      int         `json:"totalDays"`
	MissingDays    int         `json:"missingDays"`
	Inconsistent   bool        `json:"isInconsistent"`
	Logs           []LogSample `json:"logs"`
}
