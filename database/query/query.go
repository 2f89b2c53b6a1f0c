// /home/krylon/go/src/github.com/blicero/sisyphos/database/query/query.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 04. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-06-22 18:50:12 krylon>

// Package query provides symbolic constants for identifying SQL queries.
package query

//go:generate stringer -type=ID

type ID uint8

const (
	UserAdd ID = iota
	UserGetByID
	UserGetAll
	UserGetReminderEnabled
	HabitAdd
	HabitGetByID
	HabitGetByUser
	HabitGetActive
	HabitUpdate
	HabitSetActive
	HabitSetInconsistent
	HabitSetContinueReason
	HabitUpdateStats
	HabitDelete
	LogUpsert
	LogGetByHabit
	LogGetByHabitRange
	LogGetByHabitWindow
	LogGetByUserRange
	LogGetCompletedSince
	LogCountForDay
	MoodUpsert
	MoodGetByUser
	MoodGetByUserRange
	SubTaskAdd
	SubTaskGetByID
	SubTaskGetByHabit
	SubTaskUpdate
	SubTaskSetDone
	SubTaskDelete
	NotificationAdd
	NotificationGetByUser
	NotificationGetUnread
	NotificationSetRead
	NotificationSetAllRead
	ReportUpsert
	ReportGetByWeek
)
