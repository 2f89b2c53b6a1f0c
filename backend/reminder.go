// /home/krylon/go/src/github.com/blicero/sisyphos/backend/reminder.go
// -*- mode: go; coding: utf-8; -*-
// Created on 12. 04. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-06-23 20:41:12 krylon>

package backend

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/blicero/sisyphos/common"
	"github.com/blicero/sisyphos/database"
	"github.com/blicero/sisyphos/logdomain"
	"github.com/blicero/sisyphos/objects"
)

// scanInterval is how often the reminder scan wakes up. A user's
// reminder fires in the pass that falls into the hour named by their
// reminder_time, so the interval must not be longer than an hour.
const scanInterval = time.Hour

// reminderLoop periodically checks all users with reminders enabled and
// nags those that have not logged anything today. All state is re-read
// from the database on every pass.
func (d *Daemon) reminderLoop() {
	var (
		err  error
		rlog *log.Logger
	)

	if rlog, err = common.GetLogger(logdomain.Reminder); err != nil {
		d.log.Printf("[ERROR] Cannot create Logger for reminder scan: %s\n",
			err.Error())
		return
	}

	defer rlog.Println("[TRACE] Quitting reminderLoop")

	var tick = time.NewTicker(scanInterval)
	defer tick.Stop()

	for d.IsAlive() {
		<-tick.C

		if err = d.scanReminders(rlog, time.Now()); err != nil {
			rlog.Printf("[ERROR] Reminder scan failed: %s\n",
				err.Error())
		}
	}
} // func (d *Daemon) reminderLoop()

// scanReminders runs one pass of the reminder scan. A failure for one
// user is logged and does not keep the others from being processed.
func (d *Daemon) scanReminders(rlog *log.Logger, now time.Time) error {
	var (
		err   error
		db    *database.Database
		users []objects.User
	)

	db = d.pool.Get()
	defer d.pool.Put(db)

	if users, err = db.UserGetReminderEnabled(); err != nil {
		rlog.Printf("[ERROR] Cannot load Users: %s\n",
			err.Error())
		return err
	}

	for idx := range users {
		if err = d.remindUser(rlog, db, &users[idx], now); err != nil {
			rlog.Printf("[ERROR] Reminder scan failed for User %s (%d): %s\n",
				users[idx].Username,
				users[idx].ID,
				err.Error())
		}
	}

	return nil
} // func (d *Daemon) scanReminders(rlog *log.Logger, now time.Time) error

func (d *Daemon) remindUser(rlog *log.Logger, db *database.Database, u *objects.User, now time.Time) error {
	var (
		err    error
		at     time.Time
		habits []objects.Habit
		cnt    int64
	)

	if at, err = time.Parse(common.TimeOfDayFormat, u.ReminderTime); err != nil {
		return fmt.Errorf("Cannot parse reminder time %q: %s",
			u.ReminderTime,
			err.Error())
	} else if at.Hour() != now.Hour() {
		return nil
	}

	if habits, err = db.HabitGetActive(u.ID); err != nil {
		return err
	} else if len(habits) == 0 {
		return nil
	}

	if cnt, err = db.LogCountForDay(u.ID, now); err != nil {
		return err
	} else if cnt == 0 {
		var names = make([]string, len(habits))
		for i, h := range habits {
			names[i] = h.Name
		}

		var n = objects.Notification{
			UserID: u.ID,
			Type:   objects.NotificationReminder,
			Message: fmt.Sprintf("You have not logged anything today. Your habits: %s",
				strings.Join(names, ", ")),
		}

		if err = db.NotificationAdd(&n); err != nil {
			return err
		}

		d.enqueueNotification(n)
	}

	for idx := range habits {
		var (
			h    = &habits[idx]
			cres *objects.ConsistencyResult
		)

		if cres, err = d.eng.AnalyzeConsistency(h.ID, u.ID); err != nil {
			rlog.Printf("[ERROR] Cannot analyze Habit %d (%q): %s\n",
				h.ID,
				h.Name,
				err.Error())
			continue
		} else if !(cres.Inconsistent && h.Inconsistent && h.ContinueReason != "") {
			continue
		}

		var n = objects.Notification{
			UserID:  u.ID,
			HabitID: h.ID,
			Type:    objects.NotificationMotivation,
			Message: fmt.Sprintf("You wanted to stick with %q. Your reason: %s",
				h.Name,
				h.ContinueReason),
		}

		if err = db.NotificationAdd(&n); err != nil {
			rlog.Printf("[ERROR] Cannot save motivation for Habit %d (%q): %s\n",
				h.ID,
				h.Name,
				err.Error())
			continue
		}

		d.enqueueNotification(n)
	}

	return nil
} // func (d *Daemon) remindUser(rlog *log.Logger, db *database.Database, u *objects.User, now time.Time) error

// enqueueNotification hands a Notification to the notifyLoop without
// blocking; if the queue is full, the desktop notification is dropped.
// The database row exists either way.
func (d *Daemon) enqueueNotification(n objects.Notification) {
	select {
	case d.Queue <- n:
	default:
		d.log.Printf("[WARNING] Notification queue is full, dropping %q\n",
			n.Message)
	}
} // func (d *Daemon) enqueueNotification(n objects.Notification)
