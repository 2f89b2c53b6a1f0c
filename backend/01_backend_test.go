// /home/krylon/go/src/github.com/blicero/sisyphos/backend/01_backend_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 13. 04. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-06-23 20:02:19 krylon>

package backend

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/blicero/sisyphos/common"
	"github.com/blicero/sisyphos/objects"
	"github.com/pquerna/ffjson/ffjson"
)

const testAddr = "localhost:10591"

var back *Daemon

func TestSummon(t *testing.T) {
	var err error

	if back, err = Summon(testAddr); err != nil {
		back = nil
		t.Fatalf("Cannot create Daemon: %s",
			err.Error())
	}
} // func TestSummon(t *testing.T)

func TestWeekBounds(t *testing.T) {
	type testCase struct {
		day, monday, sunday string
	}

	var cases = []testCase{
		{"2023-06-21", "2023-06-19", "2023-06-25"}, // a Wednesday
		{"2023-06-19", "2023-06-19", "2023-06-25"}, // the Monday itself
		{"2023-06-25", "2023-06-19", "2023-06-25"}, // Sunday still belongs to the same week
		{"2023-01-01", "2022-12-26", "2023-01-01"}, // across the turn of the year
	}

	for _, c := range cases {
		var (
			err      error
			day      time.Time
			from, to time.Time
		)

		if day, err = time.Parse(common.TimestampFormatDate, c.day); err != nil {
			t.Fatalf("Cannot parse date %q: %s", c.day, err.Error())
		}

		from, to = weekBounds(day)

		if from.Format(common.TimestampFormatDate) != c.monday {
			t.Errorf("Unexpected start of week for %s: %s (expected %s)",
				c.day,
				from.Format(common.TimestampFormatDate),
				c.monday)
		} else if to.Format(common.TimestampFormatDate) != c.sunday {
			t.Errorf("Unexpected end of week for %s: %s (expected %s)",
				c.day,
				to.Format(common.TimestampFormatDate),
				c.sunday)
		}
	}
} // func TestWeekBounds(t *testing.T)

func TestRefreshHabitStats(t *testing.T) {
	if back == nil {
		t.SkipNow()
	}

	var (
		err   error
		today = dateOnly(time.Now())
		db    = back.pool.Get()
		u     = objects.User{
			Username:     fmt.Sprintf("runner-%s", common.GetUUID()),
			ReminderTime: "09:00",
		}
	)
	defer back.pool.Put(db)

	if err = db.UserAdd(&u); err != nil {
		t.Fatalf("Cannot add User %q: %s", u.Username, err.Error())
	}

	var h = objects.Habit{UserID: u.ID, Name: "Morning run"}

	if err = db.HabitAdd(&h); err != nil {
		t.Fatalf("Cannot add Habit %q: %s", h.Name, err.Error())
	}

	// Completed today and yesterday, skipped the day before, completed
	// the day before that: three completions, but a streak of two.
	var levels = []int{
		objects.CompletionFull,
		objects.CompletionFull,
		objects.CompletionNone,
		objects.CompletionFull,
	}

	for i, lvl := range levels {
		var l = objects.HabitLog{
			HabitID:              h.ID,
			UserID:               u.ID,
			Date:                 today.AddDate(0, 0, -i),
			CompletionPercentage: lvl,
		}

		if err = db.LogUpsert(&l); err != nil {
			t.Fatalf("Cannot log Habit %q for %s: %s",
				h.Name,
				l.Date.Format(common.TimestampFormatDate),
				err.Error())
		}
	}

	var ref *objects.Habit

	if err = refreshHabitStats(db, &h, today); err != nil {
		t.Fatalf("Cannot refresh counters of Habit %q: %s",
			h.Name,
			err.Error())
	} else if ref, err = db.HabitGetByID(h.ID); err != nil {
		t.Fatalf("Cannot fetch Habit %d: %s", h.ID, err.Error())
	} else if ref.TotalCompletions != 3 {
		t.Errorf("Unexpected number of completions: %d (expected 3)",
			ref.TotalCompletions)
	} else if ref.ConsecutiveDays != 2 {
		t.Errorf("Unexpected streak: %d (expected 2)",
			ref.ConsecutiveDays)
	} else if ref.LastCompleted.Format(common.TimestampFormatDate) != today.Format(common.TimestampFormatDate) {
		t.Errorf("Unexpected completion date: %s (expected %s)",
			ref.LastCompleted.Format(common.TimestampFormatDate),
			today.Format(common.TimestampFormatDate))
	}
} // func TestRefreshHabitStats(t *testing.T)

func TestScanReminders(t *testing.T) {
	if back == nil {
		t.SkipNow()
	}

	var (
		err error
		now = time.Now()
		db  = back.pool.Get()
		u   = objects.User{
			Username:        fmt.Sprintf("forgetful-%s", common.GetUUID()),
			ReminderTime:    now.Format(common.TimeOfDayFormat),
			ReminderEnabled: true,
		}
	)
	defer back.pool.Put(db)

	if err = db.UserAdd(&u); err != nil {
		t.Fatalf("Cannot add User %q: %s", u.Username, err.Error())
	}

	var h = objects.Habit{UserID: u.ID, Name: "Flossing"}

	if err = db.HabitAdd(&h); err != nil {
		t.Fatalf("Cannot add Habit %q: %s", h.Name, err.Error())
	}

	// The habit has no logs at all, so the analyzer will flag it; with
	// the flag and a reason in place, the scan should produce a
	// motivation message in addition to the daily reminder.
	if err = db.HabitSetContinueReason(&h, "My dentist said so"); err != nil {
		t.Fatalf("Cannot set continue reason on Habit %q: %s",
			h.Name,
			err.Error())
	} else if err = db.HabitSetInconsistent(&h, true); err != nil {
		t.Fatalf("Cannot flag Habit %q: %s", h.Name, err.Error())
	}

	if err = back.scanReminders(back.log, now); err != nil {
		t.Fatalf("Reminder scan failed: %s", err.Error())
	}

	var notifications []objects.Notification

	if notifications, err = db.NotificationGetUnread(u.ID); err != nil {
		t.Fatalf("Cannot fetch Notifications of User %q: %s",
			u.Username,
			err.Error())
	} else if len(notifications) != 2 {
		t.Fatalf("Unexpected number of Notifications: %d (expected 2)",
			len(notifications))
	}

	var seen = make(map[string]bool, 2)
	for _, n := range notifications {
		seen[n.Type] = true
	}

	if !seen[objects.NotificationReminder] {
		t.Errorf("No reminder Notification was created")
	}
	if !seen[objects.NotificationMotivation] {
		t.Errorf("No motivation Notification was created")
	}
} // func TestScanReminders(t *testing.T)

// A caller passing somebody else's user id must not be able to touch
// the habit; the request has to fail the same way as for a habit that
// does not exist.
func TestHabitUpdateOwnership(t *testing.T) {
	if back == nil {
		t.SkipNow()
	}

	var (
		err   error
		db    = back.pool.Get()
		owner = objects.User{
			Username:     fmt.Sprintf("victim-%s", common.GetUUID()),
			ReminderTime: "09:00",
		}
		intruder = objects.User{
			Username:     fmt.Sprintf("intruder-%s", common.GetUUID()),
			ReminderTime: "09:00",
		}
	)
	defer back.pool.Put(db)

	if err = db.UserAdd(&owner); err != nil {
		t.Fatalf("Cannot add User %q: %s", owner.Username, err.Error())
	} else if err = db.UserAdd(&intruder); err != nil {
		t.Fatalf("Cannot add User %q: %s", intruder.Username, err.Error())
	}

	var h = objects.Habit{UserID: owner.ID, Name: "Inbox zero"}

	if err = db.HabitAdd(&h); err != nil {
		t.Fatalf("Cannot add Habit %q: %s", h.Name, err.Error())
	}

	var (
		resp *http.Response
		body []byte
		res  objects.Response
		uri  = fmt.Sprintf("http://%s/habit/%d/update", testAddr, h.ID)
		form = url.Values{
			"user": []string{strconv.FormatInt(intruder.ID, 10)},
			"name": []string{"Hijacked"},
		}
	)

	// The web server comes up asynchronously during Summon, so retry
	// briefly if the listener is not there yet.
	for i := 0; i < 10; i++ {
		if resp, err = http.PostForm(uri, form); err == nil {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	if err != nil {
		t.Fatalf("Cannot POST to %s: %s", uri, err.Error())
	}
	defer resp.Body.Close() // nolint: errcheck

	if body, err = io.ReadAll(resp.Body); err != nil {
		t.Fatalf("Cannot read response body: %s", err.Error())
	} else if err = ffjson.Unmarshal(body, &res); err != nil {
		t.Fatalf("Cannot parse response %q: %s", body, err.Error())
	} else if res.Status {
		t.Errorf("Updating another user's Habit should have failed: %s",
			res.Message)
	}

	var ref *objects.Habit

	if ref, err = db.HabitGetByID(h.ID); err != nil {
		t.Fatalf("Cannot fetch Habit %d: %s", h.ID, err.Error())
	} else if ref == nil {
		t.Fatalf("Habit %d has vanished", h.ID)
	} else if ref.Name != h.Name {
		t.Errorf("Unexpected name on Habit %d: %q (expected %q)",
			ref.ID,
			ref.Name,
			h.Name)
	}
} // func TestHabitUpdateOwnership(t *testing.T)
