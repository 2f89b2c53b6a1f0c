// /home/krylon/go/src/github.com/blicero/sisyphos/backend/helpers.go
// -*- mode: go; coding: utf-8; -*-
// Created on 11. 04. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-06-23 19:58:02 krylon>

package backend

import (
	"time"

	"github.com/blicero/sisyphos/common"
	"github.com/blicero/sisyphos/database"
	"github.com/blicero/sisyphos/objects"
)

// completionWindowDays is how far back the cached completion counter on
// a Habit looks.
const completionWindowDays = 30

// dateOnly strips the time of day, leaving midnight local time.
func dateOnly(t time.Time) time.Time {
	var y, m, d = t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
} // func dateOnly(t time.Time) time.Time

// weekBounds returns the Monday and Sunday of the week the given day
// falls into.
func weekBounds(t time.Time) (time.Time, time.Time) {
	var day = dateOnly(t)

	// time.Weekday starts the week on Sunday.
	var off = int(day.Weekday()) - 1
	if off < 0 {
		off = 6
	}

	var monday = day.AddDate(0, 0, -off)
	return monday, monday.AddDate(0, 0, 6)
} // func weekBounds(t time.Time) (time.Time, time.Time)

// refreshHabitStats recomputes the cached counters on a Habit after a
// log was written for the given day: the number of completions over the
// trailing 30 days, the date of the most recent completion, and the
// length of the unbroken run of completed days ending at that day.
func refreshHabitStats(db *database.Database, h *objects.Habit, day time.Time) error {
	var (
		err   error
		dates []time.Time
		since = day.AddDate(0, 0, -(completionWindowDays - 1))
	)

	if dates, err = db.LogGetCompletedSince(h.ID, since); err != nil {
		return err
	}

	var (
		last time.Time
		seen = make(map[string]bool, len(dates))
	)

	for _, dt := range dates {
		seen[dt.Format(common.TimestampFormatDate)] = true
		if dt.After(last) {
			last = dt
		}
	}

	var (
		streak int64
		cur    = dateOnly(day)
	)

	for seen[cur.Format(common.TimestampFormatDate)] {
		streak++
		cur = cur.AddDate(0, 0, -1)
	}

	return db.HabitUpdateStats(h, int64(len(dates)), streak, last)
} // func refreshHabitStats(db *database.Database, h *objects.Habit, day time.Time) error
