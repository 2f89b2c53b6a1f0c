// /home/krylon/go/src/github.com/blicero/sisyphos/database/dbqueries.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 04. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-06-22 19:21:44 krylon>

package database

import "github.com/blicero/sisyphos/database/query"

var dbQueries = map[query.ID]string{
	query.UserAdd: `
INSERT INTO user (username, reminder_time, reminder_enabled, created)
VALUES           (       ?,             ?,                ?,       ?)
`,
	query.UserGetByID: `
SELECT
    username,
    reminder_time,
    reminder_enabled,
    created
FROM user
WHERE id = ?
`,
	query.UserGetAll: `
SELECT
    id,
    username,
    reminder_time,
    reminder_enabled,
    created
FROM user
ORDER BY username
`,
	query.UserGetReminderEnabled: `
SELECT
    id,
    username,
    reminder_time,
    reminder_enabled,
    created
FROM user
WHERE reminder_enabled <> 0
ORDER BY username
`,
	query.HabitAdd: `
INSERT INTO habit (user_id, name, description, when_specifically, what_motivating,
                   what_hindering, whom_tell, who_inspires, milestones, treat_myself, created)
VALUES            (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
	query.HabitGetByID: `
SELECT
    user_id,
    name,
    description,
    when_specifically,
    what_motivating,
    what_hindering,
    whom_tell,
    who_inspires,
    milestones,
    treat_myself,
    continue_reason,
    failure_analysis,
    is_active,
    is_inconsistent,
    total_completions,
    consecutive_days,
    last_completed,
    created
FROM habit
WHERE id = ?
`,
	query.HabitGetByUser: `
SELECT
    id,
    name,
    description,
    when_specifically,
    what_motivating,
    what_hindering,
    whom_tell,
    who_inspires,
    milestones,
    treat_myself,
    continue_reason,
    failure_analysis,
    is_active,
    is_inconsistent,
    total_completions,
    consecutive_days,
    last_completed,
    created
FROM habit
WHERE user_id = ?
ORDER BY created DESC
`,
	query.HabitGetActive: `
SELECT
    id,
    name,
    description,
    when_specifically,
    what_motivating,
    what_hindering,
    whom_tell,
    who_inspires,
    milestones,
    treat_myself,
    continue_reason,
    failure_analysis,
    is_inconsistent,
    total_completions,
    consecutive_days,
    last_completed,
    created
FROM habit
WHERE user_id = ? AND is_active <> 0
ORDER BY name
`,
	query.HabitUpdate: `
UPDATE habit
SET
    name = ?,
    description = ?,
    when_specifically = ?,
    what_motivating = ?,
    what_hindering = ?,
    whom_tell = ?,
    who_inspires = ?,
    milestones = ?,
    treat_myself = ?,
    failure_analysis = ?
WHERE id = ?
`,
	query.HabitSetActive: `
UPDATE habit
SET is_active = ?
WHERE id = ?`,
	query.HabitSetInconsistent: `
UPDATE habit
SET is_inconsistent = ?
WHERE id = ?`,
	query.HabitSetContinueReason: `
UPDATE habit
SET continue_reason = ?, is_inconsistent = ?
WHERE id = ?`,
	query.HabitUpdateStats: `
UPDATE habit
SET
    total_completions = ?,
    consecutive_days = ?,
    last_completed = ?
WHERE id = ?
`,
	query.HabitDelete: "DELETE FROM habit WHERE id = ?",
	query.LogUpsert: `
INSERT INTO habit_log (habit_id, user_id, log_date, completion_percentage, mood, stress_level, notes)
VALUES                (       ?,       ?,        ?,                     ?,    ?,            ?,     ?)
ON CONFLICT (habit_id, log_date)
DO UPDATE SET
    completion_percentage = excluded.completion_percentage,
    mood = excluded.mood,
    stress_level = excluded.stress_level,
    notes = excluded.notes
RETURNING id
`,
	query.LogGetByHabit: `
SELECT
    id,
    user_id,
    log_date,
    completion_percentage,
    mood,
    stress_level,
    notes
FROM habit_log
WHERE habit_id = ?
ORDER BY log_date DESC
`,
	query.LogGetByHabitRange: `
SELECT
    id,
    user_id,
    log_date,
    completion_percentage,
    mood,
    stress_level,
    notes
FROM habit_log
WHERE habit_id = ? AND log_date BETWEEN ? AND ?
ORDER BY log_date DESC
`,
	query.LogGetByHabitWindow: `
SELECT
    log_date,
    completion_percentage
FROM habit_log
WHERE habit_id = ? AND log_date BETWEEN ? AND ?
ORDER BY log_date DESC
`,
	query.LogGetByUserRange: `
SELECT
    l.id,
    l.habit_id,
    l.log_date,
    l.completion_percentage,
    l.mood,
    l.stress_level,
    l.notes,
    h.name
FROM habit_log l
INNER JOIN habit h ON l.habit_id = h.id
WHERE l.user_id = ? AND l.log_date BETWEEN ? AND ?
ORDER BY l.log_date, h.name
`,
	query.LogGetCompletedSince: `
SELECT log_date
FROM habit_log
WHERE habit_id = ? AND log_date >= ? AND completion_percentage > 0
ORDER BY log_date DESC
`,
	query.LogCountForDay: `
SELECT COUNT(*)
FROM habit_log
WHERE user_id = ? AND log_date = ?
`,
	query.MoodUpsert: `
INSERT INTO mood_log (user_id, log_date, mood, stress_level, notes)
VALUES               (      ?,        ?,    ?,            ?,     ?)
ON CONFLICT (user_id, log_date)
DO UPDATE SET
    mood = excluded.mood,
    stress_level = excluded.stress_level,
    notes = excluded.notes
RETURNING id
`,
	query.MoodGetByUser: `
SELECT
    id,
    log_date,
    mood,
    stress_level,
    notes
FROM mood_log
WHERE user_id = ?
ORDER BY log_date DESC
`,
	query.MoodGetByUserRange: `
SELECT
    id,
    log_date,
    mood,
    stress_level,
    notes
FROM mood_log
WHERE user_id = ? AND log_date BETWEEN ? AND ?
ORDER BY log_date DESC
`,
	query.SubTaskAdd: `
INSERT INTO sub_task (habit_id, name, description, order_index, created)
VALUES               (       ?,    ?,           ?,           ?,       ?)
`,
	query.SubTaskGetByID: `
SELECT
    habit_id,
    name,
    description,
    is_completed,
    completed_at,
    order_index,
    created
FROM sub_task
WHERE id = ?
`,
	query.SubTaskGetByHabit: `
SELECT
    id,
    name,
    description,
    is_completed,
    completed_at,
    order_index,
    created
FROM sub_task
WHERE habit_id = ?
ORDER BY order_index, created
`,
	query.SubTaskUpdate: `
UPDATE sub_task
SET name = ?, description = ?, order_index = ?
WHERE id = ?
`,
	query.SubTaskSetDone: `
UPDATE sub_task
SET is_completed = ?, completed_at = ?
WHERE id = ?
`,
	query.SubTaskDelete: "DELETE FROM sub_task WHERE id = ?",
	query.NotificationAdd: `
INSERT INTO notification (user_id, habit_id, message, notification_type, created)
VALUES                   (      ?,        ?,       ?,                 ?,       ?)
`,
	query.NotificationGetByUser: `
SELECT
    id,
    habit_id,
    message,
    notification_type,
    is_read,
    created
FROM notification
WHERE user_id = ?
ORDER BY created DESC
LIMIT 50
`,
	query.NotificationGetUnread: `
SELECT
    id,
    habit_id,
    message,
    notification_type,
    is_read,
    created
FROM notification
WHERE user_id = ? AND is_read = 0
ORDER BY created DESC
LIMIT 50
`,
	query.NotificationSetRead: `
UPDATE notification
SET is_read = ?
WHERE id = ? AND user_id = ?`,
	query.NotificationSetAllRead: `
UPDATE notification
SET is_read = 1
WHERE user_id = ? AND is_read = 0`,
	query.ReportUpsert: `
INSERT INTO weekly_report (user_id, week_start, week_end, total_habits, consistent_habits,
                           inconsistent_habits, total_completions, average_mood, average_stress,
                           report_data, generated)
VALUES                    (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (user_id, week_start)
DO UPDATE SET
    week_end = excluded.week_end,
    total_habits = excluded.total_habits,
    consistent_habits = excluded.consistent_habits,
    inconsistent_habits = excluded.inconsistent_habits,
    total_completions = excluded.total_completions,
    average_mood = excluded.average_mood,
    average_stress = excluded.average_stress,
    report_data = excluded.report_data,
    generated = excluded.generated
RETURNING id
`,
	query.ReportGetByWeek: `
SELECT
    id,
    week_end,
    total_habits,
    consistent_habits,
    inconsistent_habits,
    total_completions,
    average_mood,
    average_stress,
    report_data,
    generated
FROM weekly_report
WHERE user_id = ? AND week_start = ?
`,
}
