// /home/krylon/go/src/github.com/blicero/sisyphos/analysis/02_report_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 13. 04. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-06-23 19:21:08 krylon>

package analysis

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/blicero/sisyphos/common"
	"github.com/blicero/sisyphos/objects"
)

var (
	reporter objects.User

	habitRun  objects.Habit
	habitRead objects.Habit
	habitZap  objects.Habit
)

// testWeek returns the Monday and Sunday of the current week.
func testWeek() (time.Time, time.Time) {
	var (
		now     = time.Now()
		y, m, d = now.Date()
		day     = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	)

	var off = int(day.Weekday()) - 1
	if off < 0 {
		off = 6
	}

	var monday = day.AddDate(0, 0, -off)
	return monday, monday.AddDate(0, 0, 6)
} // func testWeek() (time.Time, time.Time)

func TestReportSeed(t *testing.T) {
	if eng == nil {
		t.SkipNow()
	}

	var (
		err       error
		db        = pool.Get()
		monday, _ = testWeek()
	)
	defer pool.Put(db)

	reporter = objects.User{
		Username:     fmt.Sprintf("reporter-%s", common.GetUUID()),
		ReminderTime: "09:00",
	}

	if err = db.UserAdd(&reporter); err != nil {
		t.Fatalf("Cannot add User %q: %s", reporter.Username, err.Error())
	}

	habitRun = objects.Habit{UserID: reporter.ID, Name: "Morning run"}
	habitRead = objects.Habit{UserID: reporter.ID, Name: "Reading time"}
	habitZap = objects.Habit{UserID: reporter.ID, Name: "Zapping less"}

	for _, h := range []*objects.Habit{&habitRun, &habitRead, &habitZap} {
		if err = db.HabitAdd(h); err != nil {
			t.Fatalf("Cannot add Habit %q: %s", h.Name, err.Error())
		}
	}

	// Morning run: five full days, moods and stress on the first two.
	var logs = []objects.HabitLog{
		{HabitID: habitRun.ID, Date: monday, CompletionPercentage: objects.CompletionFull, Mood: "good", StressLevel: 2},
		{HabitID: habitRun.ID, Date: monday.AddDate(0, 0, 1), CompletionPercentage: objects.CompletionFull, Mood: "good", StressLevel: 3},
		{HabitID: habitRun.ID, Date: monday.AddDate(0, 0, 2), CompletionPercentage: objects.CompletionFull},
		{HabitID: habitRun.ID, Date: monday.AddDate(0, 0, 3), CompletionPercentage: objects.CompletionFull},
		{HabitID: habitRun.ID, Date: monday.AddDate(0, 0, 4), CompletionPercentage: objects.CompletionFull},
		// Reading time: one full day, one day skipped.
		{HabitID: habitRead.ID, Date: monday, CompletionPercentage: objects.CompletionFull, Mood: "tired"},
		{HabitID: habitRead.ID, Date: monday.AddDate(0, 0, 1), CompletionPercentage: objects.CompletionNone, Mood: "tired"},
		// Zapping less gets one completed log, then is deactivated below.
		{HabitID: habitZap.ID, Date: monday, CompletionPercentage: objects.CompletionFull},
	}

	for idx := range logs {
		logs[idx].UserID = reporter.ID

		if err = db.LogUpsert(&logs[idx]); err != nil {
			t.Fatalf("Cannot log Habit %d for %s: %s",
				logs[idx].HabitID,
				logs[idx].Date.Format(common.TimestampFormatDate),
				err.Error())
		}
	}

	if err = db.HabitSetActive(&habitZap, false); err != nil {
		t.Fatalf("Cannot deactivate Habit %q: %s",
			habitZap.Name,
			err.Error())
	}
} // func TestReportSeed(t *testing.T)

func TestReportGenerate(t *testing.T) {
	if eng == nil || reporter.ID == 0 {
		t.SkipNow()
	}

	var (
		err          error
		view         *objects.WeeklyReportView
		wstart, wend = testWeek()
	)

	if view, err = eng.GenerateWeeklyReport(reporter.ID, wstart, wend); err != nil {
		t.Fatalf("Cannot generate weekly report: %s", err.Error())
	}

	if view.TotalHabits != 2 {
		t.Errorf("Unexpected number of habits: %d (expected 2)",
			view.TotalHabits)
	}
	if view.ConsistentHabits != 1 || view.InconsistentHabits != 1 {
		t.Errorf("Unexpected consistent/inconsistent split: %d/%d (expected 1/1)",
			view.ConsistentHabits,
			view.InconsistentHabits)
	}

	// The total counts completed log rows across ALL of the user's
	// logs in range, so the deactivated habit's completion counts here
	// even though it has no per-habit stats.
	if view.TotalCompletions != 7 {
		t.Errorf("Unexpected number of completions: %d (expected 7)",
			view.TotalCompletions)
	}
	if len(view.HabitStats) != 2 {
		t.Errorf("Unexpected number of per-habit stat records: %d (expected 2)",
			len(view.HabitStats))
	}
	if _, ok := view.HabitStats[habitZap.ID]; ok {
		t.Errorf("Deactivated Habit %q should not have a stat record",
			habitZap.Name)
	}

	if s, ok := view.HabitStats[habitRun.ID]; !ok {
		t.Errorf("Habit %q has no stat record", habitRun.Name)
	} else if s.Completions != 5 || s.TotalDays != 5 {
		t.Errorf("Unexpected stats for %q: %d/%d (expected 5/5)",
			habitRun.Name,
			s.Completions,
			s.TotalDays)
	} else if s.Consistency() != 100 {
		t.Errorf("Unexpected consistency for %q: %f (expected 100)",
			habitRun.Name,
			s.Consistency())
	}

	if s, ok := view.HabitStats[habitRead.ID]; !ok {
		t.Errorf("Habit %q has no stat record", habitRead.Name)
	} else if s.Completions != 1 || s.TotalDays != 2 {
		t.Errorf("Unexpected stats for %q: %d/%d (expected 1/2)",
			habitRead.Name,
			s.Completions,
			s.TotalDays)
	}

	// "good" and "tired" are tied at two logs each; the tie goes to the
	// mood encountered first, which is deterministic.
	if view.AverageMood != "good" {
		t.Errorf("Unexpected average mood: %q (expected %q)",
			view.AverageMood,
			"good")
	}

	if view.AverageStress == nil {
		t.Errorf("Report should have a stress average")
	} else if *view.AverageStress != 2.5 {
		t.Errorf("Unexpected stress average: %f (expected 2.5)",
			*view.AverageStress)
	}

	if len(view.StressDistribution) != 5 {
		t.Errorf("Stress histogram should have 5 buckets, has %d",
			len(view.StressDistribution))
	} else {
		var expected = [5]int{0, 1, 1, 0, 0}
		for i, b := range view.StressDistribution {
			if b.Level != i+1 || b.Count != expected[i] {
				t.Errorf("Unexpected stress bucket %d: level %d, count %d (expected %d)",
					i,
					b.Level,
					b.Count,
					expected[i])
			}
		}
	}
} // func TestReportGenerate(t *testing.T)

// Generating the same week again must overwrite the cached report, not
// accumulate anything.
func TestReportRegenerate(t *testing.T) {
	if eng == nil || reporter.ID == 0 {
		t.SkipNow()
	}

	var (
		err          error
		v1, v2       *objects.WeeklyReportView
		r1, r2       *objects.WeeklyReport
		wstart, wend = testWeek()
	)

	var db = pool.Get()
	defer pool.Put(db)

	if v1, err = eng.GenerateWeeklyReport(reporter.ID, wstart, wend); err != nil {
		t.Fatalf("Cannot generate weekly report: %s", err.Error())
	} else if r1, err = db.ReportGetByWeek(reporter.ID, wstart); err != nil {
		t.Fatalf("Cannot fetch cached report: %s", err.Error())
	} else if r1 == nil {
		t.Fatalf("Generated report was not cached")
	}

	if v2, err = eng.GenerateWeeklyReport(reporter.ID, wstart, wend); err != nil {
		t.Fatalf("Cannot regenerate weekly report: %s", err.Error())
	} else if r2, err = db.ReportGetByWeek(reporter.ID, wstart); err != nil {
		t.Fatalf("Cannot fetch cached report: %s", err.Error())
	} else if r2.ID != r1.ID {
		t.Errorf("Regenerating the report created a new row: %d (expected %d)",
			r2.ID,
			r1.ID)
	}

	if v1.TotalCompletions != v2.TotalCompletions ||
		v1.ConsistentHabits != v2.ConsistentHabits ||
		v1.AverageMood != v2.AverageMood {
		t.Errorf("Regenerated report differs: %d/%d/%q vs. %d/%d/%q",
			v1.TotalCompletions,
			v1.ConsistentHabits,
			v1.AverageMood,
			v2.TotalCompletions,
			v2.ConsistentHabits,
			v2.AverageMood)
	}
} // func TestReportRegenerate(t *testing.T)

// A user with an active habit but no logs at all: no moods, no stress,
// nothing completed.
func TestReportEmptyWeek(t *testing.T) {
	if eng == nil {
		t.SkipNow()
	}

	var (
		err          error
		view         *objects.WeeklyReportView
		db           = pool.Get()
		wstart, wend = testWeek()
		u            = objects.User{
			Username:     fmt.Sprintf("slacker-%s", common.GetUUID()),
			ReminderTime: "09:00",
		}
	)
	defer pool.Put(db)

	if err = db.UserAdd(&u); err != nil {
		t.Fatalf("Cannot add User %q: %s", u.Username, err.Error())
	}

	var h = objects.Habit{UserID: u.ID, Name: "Good intentions"}

	if err = db.HabitAdd(&h); err != nil {
		t.Fatalf("Cannot add Habit %q: %s", h.Name, err.Error())
	}

	if view, err = eng.GenerateWeeklyReport(u.ID, wstart, wend); err != nil {
		t.Fatalf("Cannot generate weekly report: %s", err.Error())
	} else if view.TotalHabits != 1 || view.InconsistentHabits != 1 {
		t.Errorf("Unexpected habit counts: %d total, %d inconsistent (expected 1/1)",
			view.TotalHabits,
			view.InconsistentHabits)
	} else if view.AverageMood != "N/A" {
		t.Errorf("Unexpected average mood: %q (expected %q)",
			view.AverageMood,
			"N/A")
	} else if view.AverageStress != nil {
		t.Errorf("Report should not have a stress average, but has %f",
			*view.AverageStress)
	} else if view.TotalCompletions != 0 {
		t.Errorf("Unexpected number of completions: %d (expected 0)",
			view.TotalCompletions)
	}
} // func TestReportEmptyWeek(t *testing.T)

func TestReportInvalidRange(t *testing.T) {
	if eng == nil || reporter.ID == 0 {
		t.SkipNow()
	}

	var (
		err       error
		wstart, _ = testWeek()
	)

	if _, err = eng.GenerateWeeklyReport(reporter.ID, wstart, wstart.AddDate(0, 0, -1)); err == nil {
		t.Errorf("Generating a report for a backwards week should have failed")
	} else if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("Unexpected error: %s", err.Error())
	}
} // func TestReportInvalidRange(t *testing.T)
