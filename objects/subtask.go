// /home/krylon/go/src/github.com/blicero/sisyphos/objects/subtask.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 04. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-05-30 17:33:46 krylon>

package objects

import "time"

//go:generate ffjson subtask.go

// SubTask is one step of a Habit, e.g. "lay out running clothes" as part
// of "go running". SubTasks are displayed in the order given by
// OrderIndex. Done is set when the SubTask is checked off, along with
// the completion timestamp; unchecking clears both.
type SubTask struct {
	ID          int64
	HabitID     int64
	Name        string
	Description string
	Done        bool
	CompletedAt time.Time
	OrderIndex  int64
	Created     time.Time
}
