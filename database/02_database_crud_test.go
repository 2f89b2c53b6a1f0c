// /home/krylon/go/src/github.com/blicero/sisyphos/database/02_database_crud_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 04. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-06-23 18:21:40 krylon>

package database

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/blicero/sisyphos/common"
	"github.com/blicero/sisyphos/objects"
)

const habitCnt = 8

var (
	testUsers  []*objects.User
	testHabits []*objects.Habit
)

func init() {
	testUsers = []*objects.User{
		{
			Username:        fmt.Sprintf("alice-%s", common.GetUUID()),
			ReminderTime:    "09:00",
			ReminderEnabled: true,
		},
		{
			Username:        fmt.Sprintf("bob-%s", common.GetUUID()),
			ReminderTime:    "20:00",
			ReminderEnabled: false,
		},
	}

	testHabits = make([]*objects.Habit, habitCnt)

	for i := range testHabits {
		testHabits[i] = &objects.Habit{
			Name:           fmt.Sprintf("Habit #%02d", i),
			Description:    fmt.Sprintf("This is test habit number %d", i+1),
			WhatMotivating: "Testing, mostly",
		}
	}
} // func init()

func TestUserAdd(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	for _, u := range testUsers {
		var err error

		if err = db.UserAdd(u); err != nil {
			t.Fatalf("Cannot add User %q: %s",
				u.Username,
				err.Error())
		} else if u.ID == 0 {
			t.Errorf("ID of User %q is 0", u.Username)
		}
	}
} // func TestUserAdd(t *testing.T)

func TestUserGetAll(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err   error
		users []objects.User
	)

	if users, err = db.UserGetAll(); err != nil {
		t.Fatalf("Cannot fetch all Users: %s",
			err.Error())
	} else if len(users) != len(testUsers) {
		t.Fatalf("Unexpected number of Users: %d (expected %d)",
			len(users),
			len(testUsers))
	}
} // func TestUserGetAll(t *testing.T)

func TestUserGetReminderEnabled(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err   error
		users []objects.User
	)

	if users, err = db.UserGetReminderEnabled(); err != nil {
		t.Fatalf("Cannot fetch Users with reminders enabled: %s",
			err.Error())
	} else if len(users) != 1 {
		t.Fatalf("Unexpected number of Users with reminders enabled: %d (expected 1)",
			len(users))
	} else if users[0].ID != testUsers[0].ID {
		t.Errorf("Unexpected User has reminders enabled: %d (expected %d)",
			users[0].ID,
			testUsers[0].ID)
	}
} // func TestUserGetReminderEnabled(t *testing.T)

func TestHabitAdd(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	for _, h := range testHabits {
		var err error

		h.UserID = testUsers[0].ID

		if err = db.HabitAdd(h); err != nil {
			t.Fatalf("Cannot add Habit %q: %s",
				h.Name,
				err.Error())
		} else if h.ID == 0 {
			t.Errorf("ID of Habit %q is 0", h.Name)
		} else if !h.Active {
			t.Errorf("Freshly added Habit %q should be active", h.Name)
		}
	}
} // func TestHabitAdd(t *testing.T)

func TestHabitGetByUser(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err    error
		habits []objects.Habit
	)

	if habits, err = db.HabitGetByUser(testUsers[0].ID); err != nil {
		t.Fatalf("Cannot fetch Habits of User %d: %s",
			testUsers[0].ID,
			err.Error())
	} else if len(habits) != habitCnt {
		t.Fatalf("Unexpected number of Habits: %d (expected %d)",
			len(habits),
			habitCnt)
	}

	if habits, err = db.HabitGetByUser(testUsers[1].ID); err != nil {
		t.Fatalf("Cannot fetch Habits of User %d: %s",
			testUsers[1].ID,
			err.Error())
	} else if len(habits) != 0 {
		t.Errorf("User %d should not have any Habits, but has %d",
			testUsers[1].ID,
			len(habits))
	}
} // func TestHabitGetByUser(t *testing.T)

func TestHabitSetActive(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err    error
		h      = testHabits[habitCnt-1]
		habits []objects.Habit
	)

	if err = db.HabitSetActive(h, false); err != nil {
		t.Fatalf("Cannot deactivate Habit %q: %s",
			h.Name,
			err.Error())
	} else if h.Active {
		t.Errorf("Habit %q should be inactive now", h.Name)
	}

	if habits, err = db.HabitGetActive(testUsers[0].ID); err != nil {
		t.Fatalf("Cannot fetch active Habits of User %d: %s",
			testUsers[0].ID,
			err.Error())
	} else if len(habits) != habitCnt-1 {
		t.Errorf("Unexpected number of active Habits: %d (expected %d)",
			len(habits),
			habitCnt-1)
	}
} // func TestHabitSetActive(t *testing.T)

func TestHabitUpdate(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err error
		h   = testHabits[0]
		ref *objects.Habit
	)

	h.Description = "An updated description"
	h.FailureAnalysis = "I keep skipping it on weekends"

	if err = db.HabitUpdate(h); err != nil {
		t.Fatalf("Cannot update Habit %q: %s",
			h.Name,
			err.Error())
	} else if ref, err = db.HabitGetByID(h.ID); err != nil {
		t.Fatalf("Cannot fetch Habit %d: %s",
			h.ID,
			err.Error())
	} else if ref == nil {
		t.Fatalf("Habit %d was not found", h.ID)
	} else if ref.Description != h.Description {
		t.Errorf("Unexpected description: %q (expected %q)",
			ref.Description,
			h.Description)
	} else if ref.FailureAnalysis != h.FailureAnalysis {
		t.Errorf("Unexpected failure analysis: %q (expected %q)",
			ref.FailureAnalysis,
			h.FailureAnalysis)
	}
} // func TestHabitUpdate(t *testing.T)

func TestLogUpsert(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err   error
		today = time.Now()
		h     = testHabits[0]
		logs  []objects.HabitLog
		l     = objects.HabitLog{
			HabitID:              h.ID,
			UserID:               h.UserID,
			Date:                 today,
			CompletionPercentage: objects.CompletionFull,
			Mood:                 "good",
			StressLevel:          2,
		}
	)

	if err = db.LogUpsert(&l); err != nil {
		t.Fatalf("Cannot log Habit %q: %s",
			h.Name,
			err.Error())
	} else if l.ID == 0 {
		t.Fatalf("ID of new log entry is 0")
	}

	// Logging the same day again must overwrite, not duplicate.
	var dup = objects.HabitLog{
		HabitID:              h.ID,
		UserID:               h.UserID,
		Date:                 today,
		CompletionPercentage: objects.CompletionLow,
	}

	if err = db.LogUpsert(&dup); err != nil {
		t.Fatalf("Cannot re-log Habit %q: %s",
			h.Name,
			err.Error())
	} else if dup.ID != l.ID {
		t.Errorf("Re-logging the same day created a new row: %d (expected %d)",
			dup.ID,
			l.ID)
	}

	if logs, err = db.LogGetByHabit(h.ID); err != nil {
		t.Fatalf("Cannot fetch logs of Habit %q: %s",
			h.Name,
			err.Error())
	} else if len(logs) != 1 {
		t.Fatalf("Unexpected number of logs: %d (expected 1)",
			len(logs))
	} else if logs[0].CompletionPercentage != objects.CompletionLow {
		t.Errorf("Unexpected completion level: %d (expected %d)",
			logs[0].CompletionPercentage,
			objects.CompletionLow)
	} else if logs[0].Mood != "" {
		t.Errorf("Mood should have been overwritten to empty, but is %q",
			logs[0].Mood)
	} else if logs[0].HabitID != h.ID {
		t.Errorf("Unexpected habit ID on log: %d (expected %d)",
			logs[0].HabitID,
			h.ID)
	}
} // func TestLogUpsert(t *testing.T)

func TestLogGetCompletedSince(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err   error
		h     = testHabits[1]
		today = time.Now()
		dates []time.Time
	)

	for i := 0; i < 3; i++ {
		var l = objects.HabitLog{
			HabitID:              h.ID,
			UserID:               h.UserID,
			Date:                 today.AddDate(0, 0, -i),
			CompletionPercentage: objects.CompletionFull,
		}

		if err = db.LogUpsert(&l); err != nil {
			t.Fatalf("Cannot log Habit %q for %s: %s",
				h.Name,
				l.Date.Format(common.TimestampFormatDate),
				err.Error())
		}
	}

	// A day logged at zero completion must not show up.
	var zero = objects.HabitLog{
		HabitID:              h.ID,
		UserID:               h.UserID,
		Date:                 today.AddDate(0, 0, -3),
		CompletionPercentage: objects.CompletionNone,
	}

	if err = db.LogUpsert(&zero); err != nil {
		t.Fatalf("Cannot log Habit %q: %s",
			h.Name,
			err.Error())
	}

	if dates, err = db.LogGetCompletedSince(h.ID, today.AddDate(0, 0, -13)); err != nil {
		t.Fatalf("Cannot fetch completed dates of Habit %q: %s",
			h.Name,
			err.Error())
	} else if len(dates) != 3 {
		t.Errorf("Unexpected number of completed dates: %d (expected 3)",
			len(dates))
	}
} // func TestLogGetCompletedSince(t *testing.T)

func TestLogCountForDay(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err error
		cnt int64
	)

	if cnt, err = db.LogCountForDay(testUsers[0].ID, time.Now()); err != nil {
		t.Fatalf("Cannot count today's logs of User %d: %s",
			testUsers[0].ID,
			err.Error())
	} else if cnt != 2 {
		t.Errorf("Unexpected number of logs for today: %d (expected 2)",
			cnt)
	}

	if cnt, err = db.LogCountForDay(testUsers[1].ID, time.Now()); err != nil {
		t.Fatalf("Cannot count today's logs of User %d: %s",
			testUsers[1].ID,
			err.Error())
	} else if cnt != 0 {
		t.Errorf("User %d should not have any logs today, but has %d",
			testUsers[1].ID,
			cnt)
	}
} // func TestLogCountForDay(t *testing.T)

func TestMoodUpsert(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err   error
		today = time.Now()
		moods []objects.MoodLog
		m     = objects.MoodLog{
			UserID:      testUsers[0].ID,
			Date:        today,
			Mood:        "okay",
			StressLevel: 3,
		}
	)

	if err = db.MoodUpsert(&m); err != nil {
		t.Fatalf("Cannot log mood of User %d: %s",
			m.UserID,
			err.Error())
	} else if m.ID == 0 {
		t.Fatalf("ID of new mood entry is 0")
	}

	var dup = objects.MoodLog{
		UserID: m.UserID,
		Date:   today,
		Mood:   "great",
	}

	if err = db.MoodUpsert(&dup); err != nil {
		t.Fatalf("Cannot re-log mood of User %d: %s",
			m.UserID,
			err.Error())
	} else if dup.ID != m.ID {
		t.Errorf("Re-logging the same day created a new row: %d (expected %d)",
			dup.ID,
			m.ID)
	}

	if moods, err = db.MoodGetByUser(m.UserID); err != nil {
		t.Fatalf("Cannot fetch moods of User %d: %s",
			m.UserID,
			err.Error())
	} else if len(moods) != 1 {
		t.Fatalf("Unexpected number of mood entries: %d (expected 1)",
			len(moods))
	} else if moods[0].Mood != "great" {
		t.Errorf("Unexpected mood: %q (expected %q)",
			moods[0].Mood,
			"great")
	}
} // func TestMoodUpsert(t *testing.T)

func TestSubTask(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err   error
		h     = testHabits[2]
		tasks = make([]*objects.SubTask, 3)
		list  []objects.SubTask
	)

	for i := range tasks {
		tasks[i] = &objects.SubTask{
			HabitID:    h.ID,
			Name:       fmt.Sprintf("Step %d", i+1),
			OrderIndex: int64(i),
		}

		if err = db.SubTaskAdd(tasks[i]); err != nil {
			t.Fatalf("Cannot add SubTask %q: %s",
				tasks[i].Name,
				err.Error())
		} else if tasks[i].ID == 0 {
			t.Errorf("ID of SubTask %q is 0", tasks[i].Name)
		}
	}

	if list, err = db.SubTaskGetByHabit(h.ID); err != nil {
		t.Fatalf("Cannot fetch SubTasks of Habit %q: %s",
			h.Name,
			err.Error())
	} else if len(list) != len(tasks) {
		t.Fatalf("Unexpected number of SubTasks: %d (expected %d)",
			len(list),
			len(tasks))
	} else if list[0].Name != "Step 1" {
		t.Errorf("SubTasks are out of order, first is %q",
			list[0].Name)
	}

	if err = db.SubTaskSetDone(tasks[0], true); err != nil {
		t.Fatalf("Cannot check off SubTask %q: %s",
			tasks[0].Name,
			err.Error())
	} else if !tasks[0].Done {
		t.Errorf("SubTask %q should be done now", tasks[0].Name)
	} else if tasks[0].CompletedAt.IsZero() {
		t.Errorf("SubTask %q has no completion timestamp", tasks[0].Name)
	}

	if err = db.SubTaskSetDone(tasks[0], false); err != nil {
		t.Fatalf("Cannot uncheck SubTask %q: %s",
			tasks[0].Name,
			err.Error())
	} else if tasks[0].Done {
		t.Errorf("SubTask %q should not be done anymore", tasks[0].Name)
	} else if !tasks[0].CompletedAt.IsZero() {
		t.Errorf("Unchecking SubTask %q should have cleared its timestamp",
			tasks[0].Name)
	}

	tasks[1].Name = "Step 2, revised"

	if err = db.SubTaskUpdate(tasks[1]); err != nil {
		t.Fatalf("Cannot update SubTask %d: %s",
			tasks[1].ID,
			err.Error())
	}

	if err = db.SubTaskDelete(tasks[2]); err != nil {
		t.Fatalf("Cannot delete SubTask %q: %s",
			tasks[2].Name,
			err.Error())
	} else if list, err = db.SubTaskGetByHabit(h.ID); err != nil {
		t.Fatalf("Cannot fetch SubTasks of Habit %q: %s",
			h.Name,
			err.Error())
	} else if len(list) != 2 {
		t.Errorf("Unexpected number of SubTasks after delete: %d (expected 2)",
			len(list))
	} else if list[1].Name != "Step 2, revised" {
		t.Errorf("Unexpected name of second SubTask: %q",
			list[1].Name)
	}
} // func TestSubTask(t *testing.T)

func TestNotification(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err  error
		list []objects.Notification
		n1   = objects.Notification{
			UserID:  testUsers[0].ID,
			Message: "You have not logged anything today.",
		}
		n2 = objects.Notification{
			UserID:  testUsers[0].ID,
			HabitID: testHabits[0].ID,
			Type:    objects.NotificationMotivation,
			Message: "Remember why you wanted to do this.",
		}
	)

	if err = db.NotificationAdd(&n1); err != nil {
		t.Fatalf("Cannot add Notification: %s", err.Error())
	} else if n1.Type != objects.NotificationReminder {
		t.Errorf("Notification type should default to %q, is %q",
			objects.NotificationReminder,
			n1.Type)
	} else if err = db.NotificationAdd(&n2); err != nil {
		t.Fatalf("Cannot add Notification: %s", err.Error())
	}

	if list, err = db.NotificationGetUnread(testUsers[0].ID); err != nil {
		t.Fatalf("Cannot fetch unread Notifications: %s", err.Error())
	} else if len(list) != 2 {
		t.Fatalf("Unexpected number of unread Notifications: %d (expected 2)",
			len(list))
	}

	if err = db.NotificationSetRead(&n1, true); err != nil {
		t.Fatalf("Cannot mark Notification %d as read: %s",
			n1.ID,
			err.Error())
	} else if list, err = db.NotificationGetUnread(testUsers[0].ID); err != nil {
		t.Fatalf("Cannot fetch unread Notifications: %s", err.Error())
	} else if len(list) != 1 {
		t.Fatalf("Unexpected number of unread Notifications: %d (expected 1)",
			len(list))
	} else if list[0].ID != n2.ID {
		t.Errorf("Unexpected unread Notification: %d (expected %d)",
			list[0].ID,
			n2.ID)
	}

	// Marking a Notification as read on behalf of the wrong User must
	// not touch it.
	var wrong = objects.Notification{ID: n2.ID, UserID: testUsers[1].ID}

	if err = db.NotificationSetRead(&wrong, true); err == nil {
		t.Errorf("Marking another User's Notification as read should have failed")
	} else if !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("Unexpected error: %s", err.Error())
	} else if list, err = db.NotificationGetUnread(testUsers[0].ID); err != nil {
		t.Fatalf("Cannot fetch unread Notifications: %s", err.Error())
	} else if len(list) != 1 {
		t.Fatalf("Unexpected number of unread Notifications: %d (expected 1)",
			len(list))
	}

	if err = db.NotificationSetAllRead(testUsers[0].ID); err != nil {
		t.Fatalf("Cannot mark all Notifications as read: %s", err.Error())
	} else if list, err = db.NotificationGetUnread(testUsers[0].ID); err != nil {
		t.Fatalf("Cannot fetch unread Notifications: %s", err.Error())
	} else if len(list) != 0 {
		t.Errorf("There should be no unread Notifications left, but there are %d",
			len(list))
	}

	if list, err = db.NotificationGetByUser(testUsers[0].ID); err != nil {
		t.Fatalf("Cannot fetch Notifications: %s", err.Error())
	} else if len(list) != 2 {
		t.Errorf("Unexpected number of Notifications: %d (expected 2)",
			len(list))
	}
} // func TestNotification(t *testing.T)

func TestHabitInconsistentFlag(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err error
		h   = testHabits[3]
		ref *objects.Habit
	)

	if err = db.HabitSetInconsistent(h, true); err != nil {
		t.Fatalf("Cannot flag Habit %q as inconsistent: %s",
			h.Name,
			err.Error())
	} else if !h.Inconsistent {
		t.Errorf("Habit %q should be flagged as inconsistent", h.Name)
	}

	// Giving a reason to continue clears the flag.
	if err = db.HabitSetContinueReason(h, "I really want this"); err != nil {
		t.Fatalf("Cannot set continue reason on Habit %q: %s",
			h.Name,
			err.Error())
	} else if h.Inconsistent {
		t.Errorf("Setting a continue reason should have cleared the flag on %q",
			h.Name)
	}

	if ref, err = db.HabitGetByID(h.ID); err != nil {
		t.Fatalf("Cannot fetch Habit %d: %s",
			h.ID,
			err.Error())
	} else if ref == nil {
		t.Fatalf("Habit %d was not found", h.ID)
	} else if ref.Inconsistent {
		t.Errorf("Habit %q should not be flagged in the database", h.Name)
	} else if ref.ContinueReason != "I really want this" {
		t.Errorf("Unexpected continue reason: %q", ref.ContinueReason)
	}
} // func TestHabitInconsistentFlag(t *testing.T)

func TestHabitUpdateStats(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err error
		h   = testHabits[1]
		ref *objects.Habit
	)

	if err = db.HabitUpdateStats(h, 3, 3, time.Now()); err != nil {
		t.Fatalf("Cannot update counters of Habit %q: %s",
			h.Name,
			err.Error())
	} else if ref, err = db.HabitGetByID(h.ID); err != nil {
		t.Fatalf("Cannot fetch Habit %d: %s",
			h.ID,
			err.Error())
	} else if ref == nil {
		t.Fatalf("Habit %d was not found", h.ID)
	} else if ref.TotalCompletions != 3 {
		t.Errorf("Unexpected number of completions: %d (expected 3)",
			ref.TotalCompletions)
	} else if ref.ConsecutiveDays != 3 {
		t.Errorf("Unexpected streak: %d (expected 3)",
			ref.ConsecutiveDays)
	} else if !ref.HasBeenCompleted() {
		t.Errorf("Habit %q should have a completion date", h.Name)
	}
} // func TestHabitUpdateStats(t *testing.T)

func TestReportUpsert(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err     error
		ref     *objects.WeeklyReport
		today   = time.Now()
		monday  = today.AddDate(0, 0, -int(today.Weekday()))
		weekEnd = monday.AddDate(0, 0, 6)
		rep     = objects.WeeklyReport{
			UserID:           testUsers[0].ID,
			WeekStart:        monday,
			WeekEnd:          weekEnd,
			TotalHabits:      habitCnt - 1,
			ConsistentHabits: 2,
			AverageMood:      "okay",
			Data:             []byte("{}"),
		}
	)

	if err = db.ReportUpsert(&rep); err != nil {
		t.Fatalf("Cannot store weekly report: %s", err.Error())
	} else if rep.ID == 0 {
		t.Fatalf("ID of new weekly report is 0")
	}

	if ref, err = db.ReportGetByWeek(rep.UserID, monday); err != nil {
		t.Fatalf("Cannot fetch weekly report: %s", err.Error())
	} else if ref == nil {
		t.Fatalf("Weekly report was not found")
	} else if ref.HasStress {
		t.Errorf("Report should not have a stress average, but has %f",
			ref.AverageStress)
	} else if ref.AverageMood != "okay" {
		t.Errorf("Unexpected average mood: %q (expected %q)",
			ref.AverageMood,
			"okay")
	}

	// Regenerating the same week overwrites the cached row.
	var update = objects.WeeklyReport{
		UserID:        rep.UserID,
		WeekStart:     monday,
		WeekEnd:       weekEnd,
		TotalHabits:   habitCnt - 1,
		AverageMood:   "great",
		AverageStress: 2.5,
		HasStress:     true,
		Data:          []byte(`{"habitStats":{}}`),
	}

	if err = db.ReportUpsert(&update); err != nil {
		t.Fatalf("Cannot overwrite weekly report: %s", err.Error())
	} else if update.ID != rep.ID {
		t.Errorf("Overwriting the report created a new row: %d (expected %d)",
			update.ID,
			rep.ID)
	}

	if ref, err = db.ReportGetByWeek(rep.UserID, monday); err != nil {
		t.Fatalf("Cannot fetch weekly report: %s", err.Error())
	} else if !ref.HasStress {
		t.Errorf("Report should have a stress average now")
	} else if ref.AverageStress != 2.5 {
		t.Errorf("Unexpected stress average: %f (expected 2.5)",
			ref.AverageStress)
	} else if ref.AverageMood != "great" {
		t.Errorf("Unexpected average mood: %q (expected %q)",
			ref.AverageMood,
			"great")
	}
} // func TestReportUpsert(t *testing.T)
