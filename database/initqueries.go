// /home/krylon/go/src/github.com/blicero/sisyphos/database/initqueries.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 04. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-06-20 18:11:40 krylon>

package database

var initQueries = []string{
	`
CREATE TABLE user (
    id               INTEGER PRIMARY KEY,
    username         TEXT UNIQUE NOT NULL,
    reminder_time    TEXT NOT NULL DEFAULT '09:00',
    reminder_enabled INTEGER NOT NULL DEFAULT 1,
    created          INTEGER NOT NULL
)
`,
	`
CREATE TABLE habit (
    id                INTEGER PRIMARY KEY,
    user_id           INTEGER NOT NULL,
    name              TEXT NOT NULL,
    description       TEXT NOT NULL DEFAULT '',
    when_specifically TEXT NOT NULL DEFAULT '',
    what_motivating   TEXT NOT NULL DEFAULT '',
    what_hindering    TEXT NOT NULL DEFAULT '',
    whom_tell         TEXT NOT NULL DEFAULT '',
    who_inspires      TEXT NOT NULL DEFAULT '',
    milestones        TEXT NOT NULL DEFAULT '',
    treat_myself      TEXT NOT NULL DEFAULT '',
    continue_reason   TEXT NOT NULL DEFAULT '',
    failure_analysis  TEXT NOT NULL DEFAULT '',
    is_active         INTEGER NOT NULL DEFAULT 1,
    is_inconsistent   INTEGER NOT NULL DEFAULT 0,
    total_completions INTEGER NOT NULL DEFAULT 0,
    consecutive_days  INTEGER NOT NULL DEFAULT 0,
    last_completed    TEXT,
    created           INTEGER NOT NULL,
    FOREIGN KEY (user_id) REFERENCES user (id)
        ON DELETE CASCADE
        ON UPDATE RESTRICT
)
`,
	"CREATE INDEX habit_user_idx ON habit (user_id)",
	"CREATE INDEX habit_active_idx ON habit (is_active)",
	`
CREATE TABLE habit_log (
    id                    INTEGER PRIMARY KEY,
    habit_id              INTEGER NOT NULL,
    user_id               INTEGER NOT NULL,
    log_date              TEXT NOT NULL,
    completion_percentage INTEGER NOT NULL DEFAULT 0,
    mood                  TEXT,
    stress_level          INTEGER,
    notes                 TEXT,
    UNIQUE (habit_id, log_date),
    CHECK (completion_percentage BETWEEN 0 AND 3),
    CHECK (stress_level IS NULL OR stress_level BETWEEN 1 AND 5),
    FOREIGN KEY (habit_id) REFERENCES habit (id)
        ON DELETE CASCADE
        ON UPDATE RESTRICT
)
`,
	"CREATE INDEX habit_log_user_date_idx ON habit_log (user_id, log_date)",
	"CREATE INDEX habit_log_habit_date_idx ON habit_log (habit_id, log_date)",
	`
CREATE TABLE mood_log (
    id           INTEGER PRIMARY KEY,
    user_id      INTEGER NOT NULL,
    log_date     TEXT NOT NULL,
    mood         TEXT NOT NULL,
    stress_level INTEGER,
    notes        TEXT,
    UNIQUE (user_id, log_date),
    CHECK (stress_level IS NULL OR stress_level BETWEEN 1 AND 5),
    FOREIGN KEY (user_id) REFERENCES user (id)
        ON DELETE CASCADE
        ON UPDATE RESTRICT
)
`,
	`
CREATE TABLE sub_task (
    id           INTEGER PRIMARY KEY,
    habit_id     INTEGER NOT NULL,
    name         TEXT NOT NULL,
    description  TEXT NOT NULL DEFAULT '',
    is_completed INTEGER NOT NULL DEFAULT 0,
    completed_at INTEGER,
    order_index  INTEGER NOT NULL DEFAULT 0,
    created      INTEGER NOT NULL,
    FOREIGN KEY (habit_id) REFERENCES habit (id)
        ON DELETE CASCADE
        ON UPDATE RESTRICT
)
`,
	"CREATE INDEX sub_task_habit_idx ON sub_task (habit_id)",
	`
CREATE TABLE notification (
    id                INTEGER PRIMARY KEY,
    user_id           INTEGER NOT NULL,
    habit_id          INTEGER,
    message           TEXT NOT NULL,
    notification_type TEXT NOT NULL DEFAULT 'reminder',
    is_read           INTEGER NOT NULL DEFAULT 0,
    created           INTEGER NOT NULL,
    CHECK (notification_type IN ('reminder', 'motivation')),
    FOREIGN KEY (user_id) REFERENCES user (id)
        ON DELETE CASCADE
        ON UPDATE RESTRICT
)
`,
	"CREATE INDEX notification_user_idx ON notification (user_id, is_read)",
	`
CREATE TABLE weekly_report (
    id                  INTEGER PRIMARY KEY,
    user_id             INTEGER NOT NULL,
    week_start          TEXT NOT NULL,
    week_end            TEXT NOT NULL,
    total_habits        INTEGER NOT NULL DEFAULT 0,
    consistent_habits   INTEGER NOT NULL DEFAULT 0,
    inconsistent_habits INTEGER NOT NULL DEFAULT 0,
    total_completions   INTEGER NOT NULL DEFAULT 0,
    average_mood        TEXT NOT NULL DEFAULT 'N/A',
    average_stress      REAL,
    report_data         BLOB NOT NULL,
    generated           INTEGER NOT NULL,
    UNIQUE (user_id, week_start),
    FOREIGN KEY (user_id) REFERENCES user (id)
        ON DELETE CASCADE
        ON UPDATE RESTRICT
)
`,
}
