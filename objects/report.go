// /home/krylon/go/src/github.com/blicero/sisyphos/objects/report.go
// -*- mode: go; coding: utf-8; -*-
// Created on 10. 04. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-06-22 18:33:50 krylon>

package objects

import "time"

//go:generate ffjson report.go

// HabitStat is the running tally the report generator keeps per active
// Habit while walking the week's logs.
type HabitStat struct {
	Name                  string   `json:"name"`
	Completions           int      `json:"completions"`
	TotalDays             int      `json:"totalDays"`
	Moods                 []string `json:"moods"`
	StressLevels          []int    `json:"stressLevels"`
	CompletionPercentages []int    `json:"completionPercentages"`
}

// Consistency returns the HabitStat's completion rate as a percentage,
// 0 if there are no logged days.
func (s *HabitStat) Consistency() float64 {
	if s.TotalDays == 0 {
		return 0
	}

	return float64(s.Completions) / float64(s.TotalDays) * 100
} // func (s *HabitStat) Consistency() float64

// HabitCompletion is one bar of the per-habit completion chart.
type HabitCompletion struct {
	Name        string `json:"name"`
	Completions int    `json:"completions"`
	TotalDays   int    `json:"totalDays"`
	Consistency int    `json:"consistency"`
}

// MoodCount is one slice of the mood distribution chart.
type MoodCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// StressBucket is one bucket of the stress level histogram.
type StressBucket struct {
	Level int `json:"level"`
	Count int `json:"count"`
}

// ReportData is the full per-habit/chart structure that gets serialized
// into the weekly_report row.
type ReportData struct {
	HabitStats             map[int64]*HabitStat `json:"habitStats"`
	HabitCompletionData    []HabitCompletion    `json:"habitCompletionData"`
	MoodDistributionData   []MoodCount          `json:"moodDistributionData"`
	StressDistributionData []StressBucket       `json:"stressDistributionData"`
}

// WeeklyReport is the persisted form of a generated report, one row per
// user and week. It is a derived cache; regenerating a week overwrites
// the old row completely.
type WeeklyReport struct {
	ID                 int64
	UserID             int64
	WeekStart          time.Time
	WeekEnd            time.Time
	TotalHabits        int
	ConsistentHabits   int
	InconsistentHabits int
	TotalCompletions   int
	AverageMood        string
	AverageStress      float64
	HasStress          bool
	Data               []byte
	Generated          time.Time
}

// WeeklyReportView is what the report endpoint returns to the client.
//
// TotalCompletions counts completed log rows across all of the user's
// logs in range, including Habits that are no longer active; the
// per-habit numbers only cover active Habits. The two deliberately do
// not have to add up.
type WeeklyReportView struct {
	WeekStart          string               `json:"week_start"`
	WeekEnd            string               `json:"week_end"`
	TotalHabits        int                  `json:"total_habits"`
	ConsistentHabits   int                  `json:"consistent_habits"`
	InconsistentHabits int                  `json:"inconsistent_habits"`
	TotalCompletions   int                  `json:"total_completions"`
	AverageMood        string               `json:"average_mood"`
	AverageStress      *float64             `json:"average_stress"`
	HabitCompletions   []HabitCompletion    `json:"habit_completion_data"`
	MoodDistribution   []MoodCount          `json:"mood_distribution"`
	StressDistribution []StressBucket       `json:"stress_distribution"`
	HabitStats         map[int64]*HabitStat `json:"habit_stats"`
	ConsistentList     []*HabitStat         `json:"consistent_habits_list"`
	InconsistentList   []*HabitStat         `json:"inconsistent_habits_list"`
}
