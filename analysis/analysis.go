// /home/krylon/go/src/github.com/blicero/sisyphos/analysis/analysis.go
// -*- mode: go; coding: utf-8; -*-
// Created on 10. 04. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-06-23 18:47:31 krylon>

// Package analysis implements the two pieces of bookkeeping that make
// Sisyphos more than a CRUD wrapper around the database: the
// consistency check over the trailing two weeks, and the weekly report.
//
// Both are deterministic functions of the stored data at the time of
// the call. The analyzer itself has no side effects; persisting the
// inconsistency flag on the Habit is up to the caller.
package analysis

import (
	"errors"
	"log"
	"math"
	"time"

	"github.com/blicero/sisyphos/common"
	"github.com/blicero/sisyphos/database"
	"github.com/blicero/sisyphos/logdomain"
	"github.com/blicero/sisyphos/objects"
	"github.com/pquerna/ffjson/ffjson"
)

// Policy constants for the consistency check. These are policy, not
// knobs; changing them changes what "inconsistent" means application-wide.
const (
	windowDays        = 14
	minCompletionRate = 50
	maxMissingDays    = 3
	minCompletedDays  = 5
	recentLogCount    = 7
)

// consistentRate is the single-week threshold the report generator
// uses. It is deliberately stricter than minCompletionRate; the two
// checks look at different windows.
const consistentRate = 70.0

var (
	// ErrHabitNotFound indicates that a Habit does not exist or does not
	// belong to the User asking about it. The two cases are deliberately
	// not distinguished.
	ErrHabitNotFound = errors.New("habit not found")
	// ErrInvalidRange indicates that a report was requested for a week
	// that ends before it starts.
	ErrInvalidRange = errors.New("week_start must not be after week_end")
)

// Engine performs consistency analysis and report generation.
// It checks out database connections from the shared pool as needed,
// so it is safe to call from several goroutines at once.
type Engine struct {
	pool *database.Pool
	log  *log.Logger
}

// New creates a new Engine using the given connection pool.
func New(pool *database.Pool) (*Engine, error) {
	var (
		err error
		eng = &Engine{pool: pool}
	)

	if eng.log, err = common.GetLogger(logdomain.Analysis); err != nil {
		return nil, err
	}

	return eng, nil
} // func New(pool *database.Pool) (*Engine, error)

// AnalyzeConsistency looks at the given Habit's logs over the 14
// calendar days ending today and classifies the Habit as consistent or
// inconsistent. The window is anchored to the day of the call, so
// repeated calls on different days see a sliding window. Logs dated
// outside the window, future-dated ones included, are ignored.
//
// A Habit is inconsistent if it was completed on less than half the
// days in the window, or more than 3 days have no log at all, or it
// was completed on fewer than 5 days.
func (eng *Engine) AnalyzeConsistency(habitID, userID int64) (*objects.ConsistencyResult, error) {
	var (
		err   error
		db    *database.Database
		h     *objects.Habit
		logs  []objects.LogSample
		today = time.Now()
		start = today.AddDate(0, 0, -(windowDays - 1))
	)

	// GetNoWait, because the caller may already be holding a connection
	// from the same pool.
	if db, err = eng.pool.GetNoWait(); err != nil {
		eng.log.Printf("[ERROR] Cannot get database connection: %s\n",
			err.Error())
		return nil, err
	}
	defer eng.pool.Put(db)

	if h, err = db.HabitGetByID(habitID); err != nil {
		eng.log.Printf("[ERROR] Cannot look up Habit %d: %s\n",
			habitID,
			err.Error())
		return nil, err
	} else if h == nil || h.UserID != userID {
		return nil, ErrHabitNotFound
	} else if logs, err = db.LogGetByHabitWindow(habitID, start, today); err != nil {
		eng.log.Printf("[ERROR] Cannot load logs of Habit %d: %s\n",
			habitID,
			err.Error())
		return nil, err
	}

	var completed int

	for _, l := range logs {
		if l.CompletionPercentage > objects.CompletionNone {
			completed++
		}
	}

	var res = &objects.ConsistencyResult{
		HabitID:        habitID,
		CompletionRate: int(math.Round(float64(completed) / windowDays * 100)),
		CompletedDays:  completed,
		TotalDays:      windowDays,
		MissingDays:    windowDays - len(logs),
		Logs:           logs,
	}

	if len(res.Logs) > recentLogCount {
		res.Logs = res.Logs[:recentLogCount]
	}

	res.Inconsistent = res.CompletionRate < minCompletionRate ||
		res.MissingDays > maxMissingDays ||
		res.CompletedDays < minCompletedDays

	return res, nil
} // func (eng *Engine) AnalyzeConsistency(habitID, userID int64) (*objects.ConsistencyResult, error)

// GenerateWeeklyReport aggregates the given User's logs over the week
// [weekStart, weekEnd] (both inclusive), persists the result and
// returns it. A report that already exists for the same User and week
// is overwritten; reports are derived data and can be regenerated at
// any time.
//
// Only currently active Habits get per-habit stats; logs of Habits
// that were deleted or deactivated in the meantime still count toward
// the total number of completions, but nowhere else.
func (eng *Engine) GenerateWeeklyReport(userID int64, weekStart, weekEnd time.Time) (*objects.WeeklyReportView, error) {
	var (
		err    error
		db     *database.Database
		habits []objects.Habit
		logs   []objects.HabitLog
	)

	if weekEnd.Before(weekStart) {
		return nil, ErrInvalidRange
	}

	if db, err = eng.pool.GetNoWait(); err != nil {
		eng.log.Printf("[ERROR] Cannot get database connection: %s\n",
			err.Error())
		return nil, err
	}
	defer eng.pool.Put(db)

	if habits, err = db.HabitGetActive(userID); err != nil {
		eng.log.Printf("[ERROR] Cannot load active Habits of User %d: %s\n",
			userID,
			err.Error())
		return nil, err
	} else if logs, err = db.LogGetByUserRange(userID, weekStart, weekEnd); err != nil {
		eng.log.Printf("[ERROR] Cannot load logs of User %d: %s\n",
			userID,
			err.Error())
		return nil, err
	}

	var data = objects.ReportData{
		HabitStats: make(map[int64]*objects.HabitStat, len(habits)),
	}

	for _, h := range habits {
		data.HabitStats[h.ID] = &objects.HabitStat{
			Name:                  h.Name,
			Moods:                 []string{},
			StressLevels:          []int{},
			CompletionPercentages: []int{},
		}
	}

	var (
		totalCompletions int
		moodOrder        []string
		moodCount        = make(map[string]int)
		stressSum        int
		stressCnt        int
		stressHist       [5]int
	)

	for idx := range logs {
		var l = &logs[idx]

		if l.IsCompleted() {
			totalCompletions++
		}

		if l.Mood != "" {
			if moodCount[l.Mood] == 0 {
				moodOrder = append(moodOrder, l.Mood)
			}
			moodCount[l.Mood]++
		}

		if l.StressLevel >= 1 && l.StressLevel <= 5 {
			stressSum += l.StressLevel
			stressCnt++
			stressHist[l.StressLevel-1]++
		}

		var s, ok = data.HabitStats[l.HabitID]
		if !ok {
			continue
		}

		s.TotalDays++
		if l.IsCompleted() {
			s.Completions++
		}
		if l.Mood != "" {
			s.Moods = append(s.Moods, l.Mood)
		}
		if l.StressLevel != 0 {
			s.StressLevels = append(s.StressLevels, l.StressLevel)
		}
		s.CompletionPercentages = append(s.CompletionPercentages, l.CompletionPercentage)
	}

	var (
		consistent   = make([]*objects.HabitStat, 0, len(habits))
		inconsistent = make([]*objects.HabitStat, 0, len(habits))
	)

	data.HabitCompletionData = make([]objects.HabitCompletion, 0, len(habits))

	for _, h := range habits {
		var s = data.HabitStats[h.ID]

		data.HabitCompletionData = append(data.HabitCompletionData, objects.HabitCompletion{
			Name:        s.Name,
			Completions: s.Completions,
			TotalDays:   s.TotalDays,
			Consistency: int(math.Round(s.Consistency())),
		})

		if s.Consistency() >= consistentRate {
			consistent = append(consistent, s)
		} else {
			inconsistent = append(inconsistent, s)
		}
	}

	// The "average" mood is the most frequent one. Ties go to the mood
	// that showed up first, so the result is stable across runs.
	var avgMood = "N/A"

	data.MoodDistributionData = make([]objects.MoodCount, 0, len(moodOrder))

	for _, m := range moodOrder {
		data.MoodDistributionData = append(data.MoodDistributionData, objects.MoodCount{
			Name:  m,
			Value: moodCount[m],
		})

		if avgMood == "N/A" || moodCount[m] > moodCount[avgMood] {
			avgMood = m
		}
	}

	data.StressDistributionData = make([]objects.StressBucket, 5)
	for i := 0; i < 5; i++ {
		data.StressDistributionData[i] = objects.StressBucket{
			Level: i + 1,
			Count: stressHist[i],
		}
	}

	var rep = objects.WeeklyReport{
		UserID:             userID,
		WeekStart:          weekStart,
		WeekEnd:            weekEnd,
		TotalHabits:        len(habits),
		ConsistentHabits:   len(consistent),
		InconsistentHabits: len(inconsistent),
		TotalCompletions:   totalCompletions,
		AverageMood:        avgMood,
	}

	if stressCnt > 0 {
		rep.AverageStress = math.Round(float64(stressSum)/float64(stressCnt)*100) / 100
		rep.HasStress = true
	}

	if rep.Data, err = ffjson.Marshal(&data); err != nil {
		eng.log.Printf("[ERROR] Cannot serialize report data for User %d: %s\n",
			userID,
			err.Error())
		return nil, err
	} else if err = db.ReportUpsert(&rep); err != nil {
		eng.log.Printf("[ERROR] Cannot store weekly report for User %d: %s\n",
			userID,
			err.Error())
		return nil, err
	}

	var view = &objects.WeeklyReportView{
		WeekStart:          weekStart.Format(common.TimestampFormatDate),
		WeekEnd:            weekEnd.Format(common.TimestampFormatDate),
		TotalHabits:        rep.TotalHabits,
		ConsistentHabits:   rep.ConsistentHabits,
		InconsistentHabits: rep.InconsistentHabits,
		TotalCompletions:   rep.TotalCompletions,
		AverageMood:        rep.AverageMood,
		HabitCompletions:   data.HabitCompletionData,
		MoodDistribution:   data.MoodDistributionData,
		StressDistribution: data.StressDistributionData,
		HabitStats:         data.HabitStats,
		ConsistentList:     consistent,
		InconsistentList:   inconsistent,
	}

	if rep.HasStress {
		view.AverageStress = &rep.AverageStress
	}

	return view, nil
} // func (eng *Engine) GenerateWeeklyReport(userID int64, weekStart, weekEnd time.Time) (*objects.WeeklyReportView, error)
