// /home/krylon/go/src/github.com/blicero/sisyphos/database/database.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 04. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-06-23 20:12:31 krylon>

// Package database provides the persistence layer of the application.
// All access to the underlying SQLite database goes through this
// package, one method per query.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/blicero/krylib"
	"github.com/blicero/sisyphos/common"
	"github.com/blicero/sisyphos/database/query"
	"github.com/blicero/sisyphos/logdomain"
	"github.com/blicero/sisyphos/objects"
	"github.com/mattn/go-sqlite3"
)

// ErrTxInProgress indicates that an attempt to initiate a transaction
// failed because there is already one in progress.
var ErrTxInProgress = errors.New("A Transaction is already in progress")

// ErrNoTxInProgress indicates that an attempt was made to finish a
// transaction when none was active.
var ErrNoTxInProgress = errors.New("There is no transaction in progress")

// ErrEmptyUpdate indicates that an update operation would not change
// any values.
var ErrEmptyUpdate = errors.New("Update operation does not change any values")

// ErrInvalidValue indicates that one or more parameters passed to a
// method had values that are invalid for that operation.
var ErrInvalidValue = errors.New("Invalid value for parameter")

// ErrObjectNotFound indicates that the requested object does not exist
// or does not belong to the given User.
var ErrObjectNotFound = errors.New("Object was not found in database")

// When a query fails because the database is busy or locked, we wait
// this long before trying again.
const retryDelay = 25 * time.Millisecond

func worthARetry(e error) bool {
	var err sqlite3.Error

	if !errors.As(e, &err) {
		return false
	}

	switch err.Code {
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return true
	default:
		return false
	}
} // func worthARetry(e error) bool

func waitForRetry() {
	time.Sleep(retryDelay)
} // func waitForRetry()

var (
	openLock sync.Mutex
	idCnt    int64
)

// Database wraps a database connection and provides the operations on
// the data the application needs.
type Database struct {
	id      int64
	db      *sql.DB
	tx      *sql.Tx
	log     *log.Logger
	path    string
	queries map[query.ID]*sql.Stmt
}

// Open opens a Database. If the database file does not exist, it is
// created and the schema is initialized.
func Open(path string) (*Database, error) {
	var (
		err      error
		dbExists bool
		db       = &Database{
			path:    path,
			queries: make(map[query.ID]*sql.Stmt, len(dbQueries)),
		}
	)

	openLock.Lock()
	defer openLock.Unlock()
	idCnt++
	db.id = idCnt

	if db.log, err = common.GetLogger(logdomain.Database); err != nil {
		return nil, err
	}

	var connstring = fmt.Sprintf("%s?_locking=NORMAL&_journal=WAL&_fk=1&recursive_triggers=0",
		path)

	if dbExists, err = krylib.Fexists(path); err != nil {
		db.log.Printf("[ERROR] Failed to check if %s exists: %s\n",
			path,
			err.Error())
		return nil, err
	} else if db.db, err = sql.Open("sqlite3", connstring); err != nil {
		db.log.Printf("[ERROR] Failed to open %s: %s\n",
			path,
			err.Error())
		return nil, err
	}

	if !dbExists {
		if err = db.initialize(); err != nil {
			var e2 error
			if e2 = db.db.Close(); e2 != nil {
				db.log.Printf("[CRITICAL] Failed to close database: %s\n",
					e2.Error())
				return nil, e2
			} else if e2 = os.Remove(path); e2 != nil {
				db.log.Printf("[CRITICAL] Failed to remove database file %s: %s\n",
					db.path,
					e2.Error())
			}
			return nil, err
		}
		db.log.Printf("[INFO] Database at %s has been initialized\n",
			path)
	}

	return db, nil
} // func Open(path string) (*Database, error)

func (db *Database) initialize() error {
	var err error
	var tx *sql.Tx

	if tx, err = db.db.Begin(); err != nil {
		db.log.Printf("[ERROR] Cannot begin transaction: %s\n",
			err.Error())
		return err
	}

	for _, q := range initQueries {
		db.log.Printf("[TRACE] Execute init query:\n%s\n",
			q)
		if _, err = tx.Exec(q); err != nil {
			db.log.Printf("[ERROR] Cannot execute init query: %s\n%s\n",
				err.Error(),
				q)
			if rbErr := tx.Rollback(); rbErr != nil {
				db.log.Printf("[CANTHAPPEN] Cannot rollback transaction: %s\n",
					rbErr.Error())
				return rbErr
			}
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		db.log.Printf("[CANTHAPPEN] Failed to commit init transaction: %s\n",
			err.Error())
		return err
	}

	return nil
} // func (db *Database) initialize() error

// Close closes the database.
// If there is a pending transaction, it is rolled back.
func (db *Database) Close() error {
	// I wonder if it would make more sense to panic() if something goes wrong

	var err error

	if db.tx != nil {
		if err = db.tx.Rollback(); err != nil {
			db.log.Printf("[CRITICAL] Cannot roll back pending transaction: %s\n",
				err.Error())
			return err
		}
		db.tx = nil
	}

	for key, stmt := range db.queries {
		if err = stmt.Close(); err != nil {
			db.log.Printf("[CRITICAL] Cannot close statement handle %s: %s\n",
				key,
				err.Error())
			return err
		}
		delete(db.queries, key)
	}

	if err = db.db.Close(); err != nil {
		db.log.Printf("[CRITICAL] Cannot close database: %s\n",
			err.Error())
	}

	db.db = nil
	return nil
} // func (db *Database) Close() error

func (db *Database) getQuery(id query.ID) (*sql.Stmt, error) {
	var (
		stmt *sql.Stmt
		ok   bool
		err  error
	)

	if stmt, ok = db.queries[id]; ok {
		return stmt, nil
	}

PREPARE_QUERY:
	if stmt, err = db.db.Prepare(dbQueries[id]); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto PREPARE_QUERY
		}

		db.log.Printf("[ERROR] Cannot parse query %s: %s\n%s\n",
			id,
			err.Error(),
			dbQueries[id])
		return nil, err
	}

	db.queries[id] = stmt

	return stmt, nil
} // func (db *Database) getQuery(query.ID) (*sql.Stmt, error)

// Begin begins an explicit transaction.
// Only one transaction can be in progress at once, attempting to start
// one, while another transaction is already in progress will yield ErrTxInProgress.
func (db *Database) Begin() error {
	var err error

	db.log.Printf("[DEBUG] Database#%d Begin Transaction\n",
		db.id)

	if db.tx != nil {
		return ErrTxInProgress
	}

BEGIN_TX:
	for db.tx == nil {
		if db.tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				continue BEGIN_TX
			}

			db.log.Printf("[ERROR] Failed to start transaction: %s\n",
				err.Error())
			return err
		}
	}

	return nil
} // func (db *Database) Begin() error

// Rollback terminates a pending transaction, discarding any changes
// performed during that transaction.
func (db *Database) Rollback() error {
	var err error

	db.log.Printf("[DEBUG] Database#%d Roll back Transaction\n",
		db.id)

	if db.tx == nil {
		return ErrNoTxInProgress
	} else if err = db.tx.Rollback(); err != nil {
		return fmt.Errorf("Cannot roll back transaction: %s",
			err.Error())
	}

	db.tx = nil
	return nil
} // func (db *Database) Rollback() error

// Commit ends the active transaction, making any changes performed during
// that transaction permanent and visible to other connections.
func (db *Database) Commit() error {
	var err error

	db.log.Printf("[DEBUG] Database#%d Commit Transaction\n",
		db.id)

	if db.tx == nil {
		return ErrNoTxInProgress
	} else if err = db.tx.Commit(); err != nil {
		return fmt.Errorf("Cannot commit transaction: %s",
			err.Error())
	}

	db.tx = nil
	return nil
} // func (db *Database) Commit() error

///////////////////////////////////////////////////////////////////////////////
//// User /////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////

// UserAdd adds a new User to the database.
func (db *Database) UserAdd(u *objects.User) error {
	const qid query.ID = query.UserAdd
	var (
		err    error
		msg    string
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
		res    sql.Result
		id     int64
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	}

	if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			msg = fmt.Sprintf("Error starting transaction: %s",
				err.Error())
			db.log.Printf("[ERROR] %s\n", msg)
			return errors.New(msg)
		}

		defer func() {
			var err2 error
			if status {
				if err2 = tx.Commit(); err2 != nil {
					db.log.Printf("[ERROR] Failed to commit ad-hoc transaction: %s\n",
						err2.Error())
				}
			} else if err2 = tx.Rollback(); err2 != nil {
				db.log.Printf("[ERROR] Rollback of ad-hoc transaction failed: %s\n",
					err2.Error())
			}
		}()
	}

	stmt = tx.Stmt(stmt)
	u.Created = time.Now()

EXEC_QUERY:
	if res, err = stmt.Exec(u.Username, u.ReminderTime, u.ReminderEnabled, u.Created.Unix()); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		msg = fmt.Sprintf("Cannot add User %q to database: %s",
			u.Username,
			err.Error())
		db.log.Printf("[ERROR] %s\n", msg)
		return errors.New(msg)
	} else if id, err = res.LastInsertId(); err != nil {
		msg = fmt.Sprintf("Cannot get ID of new User %q: %s",
			u.Username,
			err.Error())
		db.log.Printf("[ERROR] %s\n", msg)
		return errors.New(msg)
	}

	status = true
	u.ID = id
	return nil
} // func (db *Database) UserAdd(u *objects.User) error

// UserGetByID looks up a User by their ID.
// If no such User exists, it returns nil, but no error.
func (db *Database) UserGetByID(id int64) (*objects.User, error) {
	const qid query.ID = query.UserGetByID
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(id); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query User %d: %s\n",
			id,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,staticcheck

	if rows.Next() {
		var (
			u     = &objects.User{ID: id}
			stamp int64
		)

		if err = rows.Scan(&u.Username, &u.ReminderTime, &u.ReminderEnabled, &stamp); err != nil {
			db.log.Printf("[ERROR] Cannot scan User %d: %s\n",
				id,
				err.Error())
			return nil, err
		}

		u.Created = time.Unix(stamp, 0)
		return u, nil
	}

	return nil, nil
} // func (db *Database) UserGetByID(id int64) (*objects.User, error)

// UserGetAll returns all Users in the database, ordered by name.
func (db *Database) UserGetAll() ([]objects.User, error) {
	return db.userGetMany(query.UserGetAll)
} // func (db *Database) UserGetAll() ([]objects.User, error)

// UserGetReminderEnabled returns all Users that want to be reminded of
// their habits.
func (db *Database) UserGetReminderEnabled() ([]objects.User, error) {
	return db.userGetMany(query.UserGetReminderEnabled)
} // func (db *Database) UserGetReminderEnabled() ([]objects.User, error)

func (db *Database) userGetMany(qid query.ID) ([]objects.User, error) {
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query Users (%s): %s\n",
			qid,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,staticcheck

	var users = make([]objects.User, 0, 8)

	for rows.Next() {
		var (
			u     objects.User
			stamp int64
		)

		if err = rows.Scan(&u.ID, &u.Username, &u.ReminderTime, &u.ReminderEnabled, &stamp); err != nil {
			db.log.Printf("[ERROR] Cannot scan User: %s\n",
				err.Error())
			return nil, err
		}

		u.Created = time.Unix(stamp, 0)
		users = append(users, u)
	}

	return users, nil
} // func (db *Database) userGetMany(qid query.ID) ([]objects.User, error)

///////////////////////////////////////////////////////////////////////////////
//// Habit ////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////

// HabitAdd adds a new Habit to the database.
func (db *Database) HabitAdd(h *objects.Habit) error {
	const qid query.ID = query.HabitAdd
	var (
		err    error
		msg    string
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
		res    sql.Result
		id     int64
	)

	if h.Name == "" {
		return ErrInvalidValue
	} else if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	}

	if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			msg = fmt.Sprintf("Error starting transaction: %s",
				err.Error())
			db.log.Printf("[ERROR] %s\n", msg)
			return errors.New(msg)
		}

		defer func() {
			var err2 error
			if status {
				if err2 = tx.Commit(); err2 != nil {
					db.log.Printf("[ERROR] Failed to commit ad-hoc transaction: %s\n",
						err2.Error())
				}
			} else if err2 = tx.Rollback(); err2 != nil {
				db.log.Printf("[ERROR] Rollback of ad-hoc transaction failed: %s\n",
					err2.Error())
			}
		}()
	}

	stmt = tx.Stmt(stmt)
	h.Created = time.Now()
	h.Active = true

EXEC_QUERY:
	if res, err = stmt.Exec(
		h.UserID,
		h.Name,
		h.Description,
		h.WhenSpecifically,
		h.WhatMotivating,
		h.WhatHindering,
		h.WhomTell,
		h.WhoInspires,
		h.Milestones,
		h.TreatMyself,
		h.Created.Unix()); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		msg = fmt.Sprintf("Cannot add Habit %q to database: %s",
			h.Name,
			err.Error())
		db.log.Printf("[ERROR] %s\n", msg)
		return errors.New(msg)
	} else if id, err = res.LastInsertId(); err != nil {
		msg = fmt.Sprintf("Cannot get ID of new Habit %q: %s",
			h.Name,
			err.Error())
		db.log.Printf("[ERROR] %s\n", msg)
		return errors.New(msg)
	}

	status = true
	h.ID = id
	return nil
} // func (db *Database) HabitAdd(h *objects.Habit) error

// HabitGetByID looks up a Habit by its ID.
// If no such Habit exists, it returns nil, but no error.
func (db *Database) HabitGetByID(id int64) (*objects.Habit, error) {
	const qid query.ID = query.HabitGetByID
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(id); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query Habit %d: %s\n",
			id,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,staticcheck

	if rows.Next() {
		var (
			h     = &objects.Habit{ID: id}
			last  *string
			stamp int64
		)

		if err = rows.Scan(
			&h.UserID,
			&h.Name,
			&h.Description,
			&h.WhenSpecifically,
			&h.WhatMotivating,
			&h.WhatHindering,
			&h.WhomTell,
			&h.WhoInspires,
			&h.Milestones,
			&h.TreatMyself,
			&h.ContinueReason,
			&h.FailureAnalysis,
			&h.Active,
			&h.Inconsistent,
			&h.TotalCompletions,
			&h.ConsecutiveDays,
			&last,
			&stamp); err != nil {
			db.log.Printf("[ERROR] Cannot scan Habit %d: %s\n",
				id,
				err.Error())
			return nil, err
		}

		h.Created = time.Unix(stamp, 0)

		if last != nil {
			if h.LastCompleted, err = time.Parse(common.TimestampFormatDate, *last); err != nil {
				db.log.Printf("[ERROR] Cannot parse completion date %q of Habit %d: %s\n",
					*last,
					id,
					err.Error())
				return nil, err
			}
		}

		return h, nil
	}

	return nil, nil
} // func (db *Database) HabitGetByID(id int64) (*objects.Habit, error)

// HabitGetByUser returns all of the given User's Habits, newest first.
func (db *Database) HabitGetByUser(userID int64) ([]objects.Habit, error) {
	const qid query.ID = query.HabitGetByUser
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(userID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query Habits of User %d: %s\n",
			userID,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,staticcheck

	var habits = make([]objects.Habit, 0, 16)

	for rows.Next() {
		var (
			h     = objects.Habit{UserID: userID}
			last  *string
			stamp int64
		)

		if err = rows.Scan(
			&h.ID,
			&h.Name,
			&h.Description,
			&h.WhenSpecifically,
			&h.WhatMotivating,
			&h.WhatHindering,
			&h.WhomTell,
			&h.WhoInspires,
			&h.Milestones,
			&h.TreatMyself,
			&h.ContinueReason,
			&h.FailureAnalysis,
			&h.Active,
			&h.Inconsistent,
			&h.TotalCompletions,
			&h.ConsecutiveDays,
			&last,
			&stamp); err != nil {
			db.log.Printf("[ERROR] Cannot scan Habit: %s\n",
				err.Error())
			return nil, err
		}

		h.Created = time.Unix(stamp, 0)

		if last != nil {
			if h.LastCompleted, err = time.Parse(common.TimestampFormatDate, *last); err != nil {
				db.log.Printf("[ERROR] Cannot parse completion date %q of Habit %d: %s\n",
					*last,
					h.ID,
					err.Error())
				return nil, err
			}
		}

		habits = append(habits, h)
	}

	return habits, nil
} // func (db *Database) HabitGetByUser(userID int64) ([]objects.Habit, error)

// HabitGetActive returns the given User's active Habits, ordered by name.
func (db *Database) HabitGetActive(userID int64) ([]objects.Habit, error) {
	const qid query.ID = query.HabitGetActive
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(userID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query active Habits of User %d: %s\n",
			userID,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,staticcheck

	var habits = make([]objects.Habit, 0, 16)

	for rows.Next() {
		var (
			h     = objects.Habit{UserID: userID, Active: true}
			last  *string
			stamp int64
		)

		if err = rows.Scan(
			&h.ID,
			&h.Name,
			&h.Description,
			&h.WhenSpecifically,
			&h.WhatMotivating,
			&h.WhatHindering,
			&h.WhomTell,
			&h.WhoInspires,
			&h.Milestones,
			&h.TreatMyself,
			&h.ContinueReason,
			&h.FailureAnalysis,
			&h.Inconsistent,
			&h.TotalCompletions,
			&h.ConsecutiveDays,
			&last,
			&stamp); err != nil {
			db.log.Printf("[ERROR] Cannot scan Habit: %s\n",
				err.Error())
			return nil, err
		}

		h.Created = time.Unix(stamp, 0)

		if last != nil {
			if h.LastCompleted, err = time.Parse(common.TimestampFormatDate, *last); err != nil {
				db.log.Printf("[ERROR] Cannot parse completion date %q of Habit %d: %s\n",
					*last,
					h.ID,
					err.Error())
				return nil, err
			}
		}

		habits = append(habits, h)
	}

	return habits, nil
} // func (db *Database) HabitGetActive(userID int64) ([]objects.Habit, error)

// HabitUpdate updates the editable fields of the given Habit in the
// database with the values set on the object.
func (db *Database) HabitUpdate(h *objects.Habit) error {
	const qid query.ID = query.HabitUpdate
	var (
		err  error
		msg  string
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if _, err = stmt.Exec(
		h.Name,
		h.Description,
		h.WhenSpecifically,
		h.WhatMotivating,
		h.WhatHindering,
		h.WhomTell,
		h.WhoInspires,
		h.Milestones,
		h.TreatMyself,
		h.FailureAnalysis,
		h.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		msg = fmt.Sprintf("Cannot update Habit %d (%q): %s",
			h.ID,
			h.Name,
			err.Error())
		db.log.Printf("[ERROR] %s\n", msg)
		return errors.New(msg)
	}

	return nil
} // func (db *Database) HabitUpdate(h *objects.Habit) error

// HabitSetActive sets or clears the given Habit's active flag.
func (db *Database) HabitSetActive(h *objects.Habit, active bool) error {
	const qid query.ID = query.HabitSetActive
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if _, err = stmt.Exec(active, h.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot set active flag of Habit %d (%q): %s\n",
			h.ID,
			h.Name,
			err.Error())
		return err
	}

	h.Active = active
	return nil
} // func (db *Database) HabitSetActive(h *objects.Habit, active bool) error

// HabitSetInconsistent sets or clears the given Habit's inconsistency flag.
func (db *Database) HabitSetInconsistent(h *objects.Habit, flag bool) error {
	const qid query.ID = query.HabitSetInconsistent
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if _, err = stmt.Exec(flag, h.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot set inconsistency flag of Habit %d (%q): %s\n",
			h.ID,
			h.Name,
			err.Error())
		return err
	}

	h.Inconsistent = flag
	return nil
} // func (db *Database) HabitSetInconsistent(h *objects.Habit, flag bool) error

// HabitSetContinueReason updates the given Habit's reason for keeping it
// up. Supplying a reason also clears the inconsistency flag - the user
// has looked at the Habit and decided to carry on.
func (db *Database) HabitSetContinueReason(h *objects.Habit, reason string) error {
	const qid query.ID = query.HabitSetContinueReason
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var inconsistent = h.Inconsistent
	if reason != "" {
		inconsistent = false
	}

EXEC_QUERY:
	if _, err = stmt.Exec(reason, inconsistent, h.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot set continue reason of Habit %d (%q): %s\n",
			h.ID,
			h.Name,
			err.Error())
		return err
	}

	h.ContinueReason = reason
	h.Inconsistent = inconsistent
	return nil
} // func (db *Database) HabitSetContinueReason(h *objects.Habit, reason string) error

// HabitUpdateStats updates the derived counters cached on the Habit.
func (db *Database) HabitUpdateStats(h *objects.Habit, total, consecutive int64, last time.Time) error {
	const qid query.ID = query.HabitUpdateStats
	var (
		err     error
		stmt    *sql.Stmt
		lastVal interface{}
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	if !last.IsZero() {
		lastVal = last.Format(common.TimestampFormatDate)
	}

EXEC_QUERY:
	if _, err = stmt.Exec(total, consecutive, lastVal, h.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot update stats of Habit %d (%q): %s\n",
			h.ID,
			h.Name,
			err.Error())
		return err
	}

	h.TotalCompletions = total
	h.ConsecutiveDays = consecutive
	h.LastCompleted = last
	return nil
} // func (db *Database) HabitUpdateStats(h *objects.Habit, total, consecutive int64, last time.Time) error

// HabitDelete removes the given Habit from the database.
// Its logs and sub-tasks are removed along with it.
func (db *Database) HabitDelete(h *objects.Habit) error {
	const qid query.ID = query.HabitDelete
	var (
		err    error
		msg    string
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	}

	if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			msg = fmt.Sprintf("Error starting transaction: %s",
				err.Error())
			db.log.Printf("[ERROR] %s\n", msg)
			return errors.New(msg)
		}

		defer func() {
			var err2 error
			if status {
				if err2 = tx.Commit(); err2 != nil {
					db.log.Printf("[ERROR] Failed to commit ad-hoc transaction: %s\n",
						err2.Error())
				}
			} else if err2 = tx.Rollback(); err2 != nil {
				db.log.Printf("[ERROR] Rollback of ad-hoc transaction failed: %s\n",
					err2.Error())
			}
		}()
	}

	stmt = tx.Stmt(stmt)

EXEC_QUERY:
	if _, err = stmt.Exec(h.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		msg = fmt.Sprintf("Cannot delete Habit %d (%q): %s",
			h.ID,
			h.Name,
			err.Error())
		db.log.Printf("[ERROR] %s\n", msg)
		return errors.New(msg)
	}

	status = true
	return nil
} // func (db *Database) HabitDelete(h *objects.Habit) error

///////////////////////////////////////////////////////////////////////////////
//// HabitLog /////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////

// LogUpsert stores a HabitLog in the database.
// If a log for the same Habit and day already exists, it is overwritten;
// there is at most one log per Habit and day.
func (db *Database) LogUpsert(l *objects.HabitLog) error {
	const qid query.ID = query.LogUpsert
	var (
		err                error
		msg                string
		stmt               *sql.Stmt
		tx                 *sql.Tx
		status             bool
		id                 int64
		mood, notes, level interface{}
	)

	if l.HabitID == 0 || l.Date.IsZero() {
		return ErrInvalidValue
	} else if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	}

	if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			msg = fmt.Sprintf("Error starting transaction: %s",
				err.Error())
			db.log.Printf("[ERROR] %s\n", msg)
			return errors.New(msg)
		}

		defer func() {
			var err2 error
			if status {
				if err2 = tx.Commit(); err2 != nil {
					db.log.Printf("[ERROR] Failed to commit ad-hoc transaction: %s\n",
						err2.Error())
				}
			} else if err2 = tx.Rollback(); err2 != nil {
				db.log.Printf("[ERROR] Rollback of ad-hoc transaction failed: %s\n",
					err2.Error())
			}
		}()
	}

	stmt = tx.Stmt(stmt)

	if l.Mood != "" {
		mood = l.Mood
	}
	if l.Notes != "" {
		notes = l.Notes
	}
	if l.StressLevel != 0 {
		level = l.StressLevel
	}

EXEC_QUERY:
	if err = stmt.QueryRow(
		l.HabitID,
		l.UserID,
		l.Date.Format(common.TimestampFormatDate),
		l.CompletionPercentage,
		mood,
		level,
		notes).Scan(&id); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		msg = fmt.Sprintf("Cannot store log for Habit %d on %s: %s",
			l.HabitID,
			l.Date.Format(common.TimestampFormatDate),
			err.Error())
		db.log.Printf("[ERROR] %s\n", msg)
		return errors.New(msg)
	}

	status = true
	l.ID = id
	return nil
} // func (db *Database) LogUpsert(l *objects.HabitLog) error

// LogGetByHabit returns all logs for the given Habit, newest first.
func (db *Database) LogGetByHabit(habitID int64) ([]objects.HabitLog, error) {
	return db.logGetMany(query.LogGetByHabit, habitID)
} // func (db *Database) LogGetByHabit(habitID int64) ([]objects.HabitLog, error)

// LogGetByHabitRange returns the given Habit's logs within the given
// range of dates (inclusive on both ends), newest first.
func (db *Database) LogGetByHabitRange(habitID int64, begin, end time.Time) ([]objects.HabitLog, error) {
	return db.logGetMany(
		query.LogGetByHabitRange,
		habitID,
		begin.Format(common.TimestampFormatDate),
		end.Format(common.TimestampFormatDate))
} // func (db *Database) LogGetByHabitRange(habitID int64, begin, end time.Time) ([]objects.HabitLog, error)

func (db *Database) logGetMany(qid query.ID, habitID int64, dates ...interface{}) ([]objects.HabitLog, error) {
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(append([]interface{}{habitID}, dates...)...); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query HabitLogs (%s): %s\n",
			qid,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,staticcheck

	var logs = make([]objects.HabitLog, 0, 32)

	for rows.Next() {
		var (
			l           = objects.HabitLog{HabitID: habitID}
			dstr        string
			mood, notes *string
			level       *int
		)

		if err = rows.Scan(
			&l.ID,
			&l.UserID,
			&dstr,
			&l.CompletionPercentage,
			&mood,
			&level,
			&notes); err != nil {
			db.log.Printf("[ERROR] Cannot scan HabitLog: %s\n",
				err.Error())
			return nil, err
		} else if l.Date, err = time.Parse(common.TimestampFormatDate, dstr); err != nil {
			db.log.Printf("[ERROR] Cannot parse log date %q: %s\n",
				dstr,
				err.Error())
			return nil, err
		}

		if mood != nil {
			l.Mood = *mood
		}
		if notes != nil {
			l.Notes = *notes
		}
		if level != nil {
			l.StressLevel = *level
		}

		logs = append(logs, l)
	}

	return logs, nil
} // func (db *Database) logGetMany(qid query.ID, habitID int64, dates ...interface{}) ([]objects.HabitLog, error)

// LogGetByHabitWindow returns the date and completion level of the
// given Habit's logs within the given range of dates (inclusive on
// both ends), newest first.
func (db *Database) LogGetByHabitWindow(habitID int64, begin, end time.Time) ([]objects.LogSample, error) {
	const qid query.ID = query.LogGetByHabitWindow
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(
		habitID,
		begin.Format(common.TimestampFormatDate),
		end.Format(common.TimestampFormatDate)); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query logs of Habit %d: %s\n",
			habitID,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,staticcheck

	var samples = make([]objects.LogSample, 0, 16)

	for rows.Next() {
		var (
			s    objects.LogSample
			dstr string
		)

		if err = rows.Scan(&dstr, &s.CompletionPercentage); err != nil {
			db.log.Printf("[ERROR] Cannot scan log sample: %s\n",
				err.Error())
			return nil, err
		} else if s.Date, err = time.Parse(common.TimestampFormatDate, dstr); err != nil {
			db.log.Printf("[ERROR] Cannot parse log date %q: %s\n",
				dstr,
				err.Error())
			return nil, err
		}

		samples = append(samples, s)
	}

	return samples, nil
} // func (db *Database) LogGetByHabitWindow(habitID int64, begin, end time.Time) ([]objects.LogSample, error)

// LogGetByUserRange returns all of the given User's logs within the
// given range of dates (inclusive), joined with the Habit names,
// ordered by date, then name.
func (db *Database) LogGetByUserRange(userID int64, begin, end time.Time) ([]objects.HabitLog, error) {
	const qid query.ID = query.LogGetByUserRange
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(
		userID,
		begin.Format(common.TimestampFormatDate),
		end.Format(common.TimestampFormatDate)); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query logs of User %d: %s\n",
			userID,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,staticcheck

	var logs = make([]objects.HabitLog, 0, 32)

	for rows.Next() {
		var (
			l           = objects.HabitLog{UserID: userID}
			dstr        string
			mood, notes *string
			level       *int
		)

		if err = rows.Scan(
			&l.ID,
			&l.HabitID,
			&dstr,
			&l.CompletionPercentage,
			&mood,
			&level,
			&notes,
			&l.HabitName); err != nil {
			db.log.Printf("[ERROR] Cannot scan HabitLog: %s\n",
				err.Error())
			return nil, err
		} else if l.Date, err = time.Parse(common.TimestampFormatDate, dstr); err != nil {
			db.log.Printf("[ERROR] Cannot parse log date %q: %s\n",
				dstr,
				err.Error())
			return nil, err
		}

		if mood != nil {
			l.Mood = *mood
		}
		if notes != nil {
			l.Notes = *notes
		}
		if level != nil {
			l.StressLevel = *level
		}

		logs = append(logs, l)
	}

	return logs, nil
} // func (db *Database) LogGetByUserRange(userID int64, begin, end time.Time) ([]objects.HabitLog, error)

// LogGetCompletedSince returns the dates on or after the given date on
// which the given Habit was completed, newest first.
func (db *Database) LogGetCompletedSince(habitID int64, since time.Time) ([]time.Time, error) {
	const qid query.ID = query.LogGetCompletedSince
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(habitID, since.Format(common.TimestampFormatDate)); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query completed days of Habit %d: %s\n",
			habitID,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,staticcheck

	var days = make([]time.Time, 0, 32)

	for rows.Next() {
		var (
			d    time.Time
			dstr string
		)

		if err = rows.Scan(&dstr); err != nil {
			db.log.Printf("[ERROR] Cannot scan log date: %s\n",
				err.Error())
			return nil, err
		} else if d, err = time.Parse(common.TimestampFormatDate, dstr); err != nil {
			db.log.Printf("[ERROR] Cannot parse log date %q: %s\n",
				dstr,
				err.Error())
			return nil, err
		}

		days = append(days, d)
	}

	return days, nil
} // func (db *Database) LogGetCompletedSince(habitID int64, since time.Time) ([]time.Time, error)

// LogCountForDay returns the number of logs the given User has written
// on the given day, across all of their Habits.
func (db *Database) LogCountForDay(userID int64, day time.Time) (int64, error) {
	const qid query.ID = query.LogCountForDay
	var (
		err  error
		stmt *sql.Stmt
		cnt  int64
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return 0, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if err = stmt.QueryRow(userID, day.Format(common.TimestampFormatDate)).Scan(&cnt); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot count logs of User %d on %s: %s\n",
			userID,
			day.Format(common.TimestampFormatDate),
			err.Error())
		return 0, err
	}

	return cnt, nil
} // func (db *Database) LogCountForDay(userID int64, day time.Time) (int64, error)

///////////////////////////////////////////////////////////////////////////////
//// MoodLog //////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////

// MoodUpsert stores a MoodLog in the database, overwriting any entry
// the User may already have for that day.
func (db *Database) MoodUpsert(m *objects.MoodLog) error {
	const qid query.ID = query.MoodUpsert
	var (
		err          error
		msg          string
		stmt         *sql.Stmt
		tx           *sql.Tx
		status       bool
		id           int64
		notes, level interface{}
	)

	if m.Mood == "" || m.Date.IsZero() {
		return ErrInvalidValue
	} else if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	}

	if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			msg = fmt.Sprintf("Error starting transaction: %s",
				err.Error())
			db.log.Printf("[ERROR] %s\n", msg)
			return errors.New(msg)
		}

		defer func() {
			var err2 error
			if status {
				if err2 = tx.Commit(); err2 != nil {
					db.log.Printf("[ERROR] Failed to commit ad-hoc transaction: %s\n",
						err2.Error())
				}
			} else if err2 = tx.Rollback(); err2 != nil {
				db.log.Printf("[ERROR] Rollback of ad-hoc transaction failed: %s\n",
					err2.Error())
			}
		}()
	}

	stmt = tx.Stmt(stmt)

	if m.Notes != "" {
		notes = m.Notes
	}
	if m.StressLevel != 0 {
		level = m.StressLevel
	}

EXEC_QUERY:
	if err = stmt.QueryRow(
		m.UserID,
		m.Date.Format(common.TimestampFormatDate),
		m.Mood,
		level,
		notes).Scan(&id); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		msg = fmt.Sprintf("Cannot store mood of User %d on %s: %s",
			m.UserID,
			m.Date.Format(common.TimestampFormatDate),
			err.Error())
		db.log.Printf("[ERROR] %s\n", msg)
		return errors.New(msg)
	}

	status = true
	m.ID = id
	return nil
} // func (db *Database) MoodUpsert(m *objects.MoodLog) error

// MoodGetByUser returns all of the given User's MoodLogs, newest first.
func (db *Database) MoodGetByUser(userID int64) ([]objects.MoodLog, error) {
	return db.moodGetMany(query.MoodGetByUser, userID)
} // func (db *Database) MoodGetByUser(userID int64) ([]objects.MoodLog, error)

// MoodGetByUserRange returns the given User's MoodLogs within the given
// range of dates (inclusive), newest first.
func (db *Database) MoodGetByUserRange(userID int64, begin, end time.Time) ([]objects.MoodLog, error) {
	return db.moodGetMany(
		query.MoodGetByUserRange,
		userID,
		begin.Format(common.TimestampFormatDate),
		end.Format(common.TimestampFormatDate))
} // func (db *Database) MoodGetByUserRange(userID int64, begin, end time.Time) ([]objects.MoodLog, error)

func (db *Database) moodGetMany(qid query.ID, args ...interface{}) ([]objects.MoodLog, error) {
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(args...); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query MoodLogs (%s): %s\n",
			qid,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,staticcheck

	var moods = make([]objects.MoodLog, 0, 32)

	for rows.Next() {
		var (
			m     objects.MoodLog
			dstr  string
			notes *string
			level *int
		)

		if err = rows.Scan(&m.ID, &dstr, &m.Mood, &level, &notes); err != nil {
			db.log.Printf("[ERROR] Cannot scan MoodLog: %s\n",
				err.Error())
			return nil, err
		} else if m.Date, err = time.Parse(common.TimestampFormatDate, dstr); err != nil {
			db.log.Printf("[ERROR] Cannot parse log date %q: %s\n",
				dstr,
				err.Error())
			return nil, err
		}

		if notes != nil {
			m.Notes = *notes
		}
		if level != nil {
			m.StressLevel = *level
		}

		moods = append(moods, m)
	}

	return moods, nil
} // func (db *Database) moodGetMany(qid query.ID, args ...interface{}) ([]objects.MoodLog, error)

///////////////////////////////////////////////////////////////////////////////
//// SubTask //////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////

// SubTaskAdd adds a new SubTask to the database.
func (db *Database) SubTaskAdd(s *objects.SubTask) error {
	const qid query.ID = query.SubTaskAdd
	var (
		err    error
		msg    string
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
		res    sql.Result
		id     int64
	)

	if s.HabitID == 0 || s.Name == "" {
		return ErrInvalidValue
	} else if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	}

	if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			msg = fmt.Sprintf("Error starting transaction: %s",
				err.Error())
			db.log.Printf("[ERROR] %s\n", msg)
			return errors.New(msg)
		}

		defer func() {
			var err2 error
			if status {
				if err2 = tx.Commit(); err2 != nil {
					db.log.Printf("[ERROR] Failed to commit ad-hoc transaction: %s\n",
						err2.Error())
				}
			} else if err2 = tx.Rollback(); err2 != nil {
				db.log.Printf("[ERROR] Rollback of ad-hoc transaction failed: %s\n",
					err2.Error())
			}
		}()
	}

	stmt = tx.Stmt(stmt)
	s.Created = time.Now()

EXEC_QUERY:
	if res, err = stmt.Exec(s.HabitID, s.Name, s.Description, s.OrderIndex, s.Created.Unix()); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		msg = fmt.Sprintf("Cannot add SubTask %q to Habit %d: %s",
			s.Name,
			s.HabitID,
			err.Error())
		db.log.Printf("[ERROR] %s\n", msg)
		return errors.New(msg)
	} else if id, err = res.LastInsertId(); err != nil {
		msg = fmt.Sprintf("Cannot get ID of new SubTask %q: %s",
			s.Name,
			err.Error())
		db.log.Printf("[ERROR] %s\n", msg)
		return errors.New(msg)
	}

	status = true
	s.ID = id
	return nil
} // func (db *Database) SubTaskAdd(s *objects.SubTask) error

// SubTaskGetByID looks up a SubTask by its ID.
// If no such SubTask exists, it returns nil, but no error.
func (db *Database) SubTaskGetByID(id int64) (*objects.SubTask, error) {
	const qid query.ID = query.SubTaskGetByID
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(id); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query SubTask %d: %s\n",
			id,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,staticcheck

	if rows.Next() {
		var (
			s     = &objects.SubTask{ID: id}
			done  *int64
			stamp int64
		)

		if err = rows.Scan(&s.HabitID, &s.Name, &s.Description, &s.Done, &done, &s.OrderIndex, &stamp); err != nil {
			db.log.Printf("[ERROR] Cannot scan SubTask %d: %s\n",
				id,
				err.Error())
			return nil, err
		}

		s.Created = time.Unix(stamp, 0)
		if done != nil {
			s.CompletedAt = time.Unix(*done, 0)
		}

		return s, nil
	}

	return nil, nil
} // func (db *Database) SubTaskGetByID(id int64) (*objects.SubTask, error)

// SubTaskGetByHabit returns all of the given Habit's SubTasks in
// display order.
func (db *Database) SubTaskGetByHabit(habitID int64) ([]objects.SubTask, error) {
	const qid query.ID = query.SubTaskGetByHabit
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(habitID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query SubTasks of Habit %d: %s\n",
			habitID,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,staticcheck

	var tasks = make([]objects.SubTask, 0, 8)

	for rows.Next() {
		var (
			s     = objects.SubTask{HabitID: habitID}
			done  *int64
			stamp int64
		)

		if err = rows.Scan(&s.ID, &s.Name, &s.Description, &s.Done, &done, &s.OrderIndex, &stamp); err != nil {
			db.log.Printf("[ERROR] Cannot scan SubTask: %s\n",
				err.Error())
			return nil, err
		}

		s.Created = time.Unix(stamp, 0)
		if done != nil {
			s.CompletedAt = time.Unix(*done, 0)
		}

		tasks = append(tasks, s)
	}

	return tasks, nil
} // func (db *Database) SubTaskGetByHabit(habitID int64) ([]objects.SubTask, error)

// SubTaskUpdate updates the given SubTask's name, description and
// position with the values set on the object.
func (db *Database) SubTaskUpdate(s *objects.SubTask) error {
	const qid query.ID = query.SubTaskUpdate
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if _, err = stmt.Exec(s.Name, s.Description, s.OrderIndex, s.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot update SubTask %d (%q): %s\n",
			s.ID,
			s.Name,
			err.Error())
		return err
	}

	return nil
} // func (db *Database) SubTaskUpdate(s *objects.SubTask) error

// SubTaskSetDone checks or unchecks the given SubTask.
// Checking it records the completion time, unchecking clears it.
func (db *Database) SubTaskSetDone(s *objects.SubTask, done bool) error {
	const qid query.ID = query.SubTaskSetDone
	var (
		err   error
		stmt  *sql.Stmt
		when  interface{}
		stamp time.Time
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	if done {
		stamp = time.Now()
		when = stamp.Unix()
	}

EXEC_QUERY:
	if _, err = stmt.Exec(done, when, s.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot set done flag of SubTask %d (%q): %s\n",
			s.ID,
			s.Name,
			err.Error())
		return err
	}

	s.Done = done
	s.CompletedAt = stamp
	return nil
} // func (db *Database) SubTaskSetDone(s *objects.SubTask, done bool) error

// SubTaskDelete removes the given SubTask from the database.
func (db *Database) SubTaskDelete(s *objects.SubTask) error {
	const qid query.ID = query.SubTaskDelete
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if _, err = stmt.Exec(s.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot delete SubTask %d (%q): %s\n",
			s.ID,
			s.Name,
			err.Error())
		return err
	}

	return nil
} // func (db *Database) SubTaskDelete(s *objects.SubTask) error

///////////////////////////////////////////////////////////////////////////////
//// Notification /////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////

// NotificationAdd adds a new Notification to the database.
func (db *Database) NotificationAdd(n *objects.Notification) error {
	const qid query.ID = query.NotificationAdd
	var (
		err    error
		msg    string
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
		res    sql.Result
		id     int64
		habit  interface{}
	)

	if n.Message == "" {
		return ErrInvalidValue
	} else if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	}

	if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			msg = fmt.Sprintf("Error starting transaction: %s",
				err.Error())
			db.log.Printf("[ERROR] %s\n", msg)
			return errors.New(msg)
		}

		defer func() {
			var err2 error
			if status {
				if err2 = tx.Commit(); err2 != nil {
					db.log.Printf("[ERROR] Failed to commit ad-hoc transaction: %s\n",
						err2.Error())
				}
			} else if err2 = tx.Rollback(); err2 != nil {
				db.log.Printf("[ERROR] Rollback of ad-hoc transaction failed: %s\n",
					err2.Error())
			}
		}()
	}

	stmt = tx.Stmt(stmt)
	n.Created = time.Now()

	if n.Type == "" {
		n.Type = objects.NotificationReminder
	}
	if n.HabitID != 0 {
		habit = n.HabitID
	}

EXEC_QUERY:
	if res, err = stmt.Exec(n.UserID, habit, n.Message, n.Type, n.Created.Unix()); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		msg = fmt.Sprintf("Cannot add Notification for User %d: %s",
			n.UserID,
			err.Error())
		db.log.Printf("[ERROR] %s\n", msg)
		return errors.New(msg)
	} else if id, err = res.LastInsertId(); err != nil {
		msg = fmt.Sprintf("Cannot get ID of new Notification: %s",
			err.Error())
		db.log.Printf("[ERROR] %s\n", msg)
		return errors.New(msg)
	}

	status = true
	n.ID = id
	return nil
} // func (db *Database) NotificationAdd(n *objects.Notification) error

// NotificationGetByUser returns the given User's 50 most recent
// Notifications.
func (db *Database) NotificationGetByUser(userID int64) ([]objects.Notification, error) {
	return db.notificationGetMany(query.NotificationGetByUser, userID)
} // func (db *Database) NotificationGetByUser(userID int64) ([]objects.Notification, error)

// NotificationGetUnread returns the given User's unread Notifications,
// up to 50.
func (db *Database) NotificationGetUnread(userID int64) ([]objects.Notification, error) {
	return db.notificationGetMany(query.NotificationGetUnread, userID)
} // func (db *Database) NotificationGetUnread(userID int64) ([]objects.Notification, error)

func (db *Database) notificationGetMany(qid query.ID, userID int64) ([]objects.Notification, error) {
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(userID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query Notifications of User %d: %s\n",
			userID,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,staticcheck

	var list = make([]objects.Notification, 0, 16)

	for rows.Next() {
		var (
			n     = objects.Notification{UserID: userID}
			habit *int64
			stamp int64
		)

		if err = rows.Scan(&n.ID, &habit, &n.Message, &n.Type, &n.Read, &stamp); err != nil {
			db.log.Printf("[ERROR] Cannot scan Notification: %s\n",
				err.Error())
			return nil, err
		}

		n.Created = time.Unix(stamp, 0)
		if habit != nil {
			n.HabitID = *habit
		}

		list = append(list, n)
	}

	return list, nil
} // func (db *Database) notificationGetMany(qid query.ID, userID int64) ([]objects.Notification, error)

// NotificationSetRead sets or clears the given Notification's read
// flag. The update is scoped to the Notification's UserID; when no row
// matches both, ErrObjectNotFound is returned.
func (db *Database) NotificationSetRead(n *objects.Notification, read bool) error {
	const qid query.ID = query.NotificationSetRead
	var (
		err  error
		stmt *sql.Stmt
		ares sql.Result
		cnt  int64
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if ares, err = stmt.Exec(read, n.ID, n.UserID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot set read flag of Notification %d: %s\n",
			n.ID,
			err.Error())
		return err
	} else if cnt, err = ares.RowsAffected(); err != nil {
		db.log.Printf("[ERROR] Cannot get number of affected rows: %s\n",
			err.Error())
		return err
	} else if cnt == 0 {
		return ErrObjectNotFound
	}

	n.Read = read
	return nil
} // func (db *Database) NotificationSetRead(n *objects.Notification, read bool) error

// NotificationSetAllRead marks all of the given User's Notifications
// as read.
func (db *Database) NotificationSetAllRead(userID int64) error {
	const qid query.ID = query.NotificationSetAllRead
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if _, err = stmt.Exec(userID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot mark Notifications of User %d as read: %s\n",
			userID,
			err.Error())
		return err
	}

	return nil
} // func (db *Database) NotificationSetAllRead(userID int64) error

///////////////////////////////////////////////////////////////////////////////
//// WeeklyReport /////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////

// ReportUpsert stores a WeeklyReport in the database. A report that
// already exists for the same User and week is overwritten completely.
func (db *Database) ReportUpsert(r *objects.WeeklyReport) error {
	const qid query.ID = query.ReportUpsert
	var (
		err    error
		msg    string
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
		id     int64
		stress interface{}
	)

	if r.UserID == 0 || r.WeekStart.IsZero() {
		return ErrInvalidValue
	} else if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	}

	if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			msg = fmt.Sprintf("Error starting transaction: %s",
				err.Error())
			db.log.Printf("[ERROR] %s\n", msg)
			return errors.New(msg)
		}

		defer func() {
			var err2 error
			if status {
				if err2 = tx.Commit(); err2 != nil {
					db.log.Printf("[ERROR] Failed to commit ad-hoc transaction: %s\n",
						err2.Error())
				}
			} else if err2 = tx.Rollback(); err2 != nil {
				db.log.Printf("[ERROR] Rollback of ad-hoc transaction failed: %s\n",
					err2.Error())
			}
		}()
	}

	stmt = tx.Stmt(stmt)
	r.Generated = time.Now()

	if r.HasStress {
		stress = r.AverageStress
	}

EXEC_QUERY:
	if err = stmt.QueryRow(
		r.UserID,
		r.WeekStart.Format(common.TimestampFormatDate),
		r.WeekEnd.Format(common.TimestampFormatDate),
		r.TotalHabits,
		r.ConsistentHabits,
		r.InconsistentHabits,
		r.TotalCompletions,
		r.AverageMood,
		stress,
		r.Data,
		r.Generated.Unix()).Scan(&id); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		msg = fmt.Sprintf("Cannot store weekly report for User %d, week of %s: %s",
			r.UserID,
			r.WeekStart.Format(common.TimestampFormatDate),
			err.Error())
		db.log.Printf("[ERROR] %s\n", msg)
		return errors.New(msg)
	}

	status = true
	r.ID = id
	return nil
} // func (db *Database) ReportUpsert(r *objects.WeeklyReport) error

// ReportGetByWeek looks up the cached WeeklyReport for the given User
// and week. If none exists, it returns nil, but no error.
func (db *Database) ReportGetByWeek(userID int64, weekStart time.Time) (*objects.WeeklyReport, error) {
	const qid query.ID = query.ReportGetByWeek
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(userID, weekStart.Format(common.TimestampFormatDate)); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query weekly report of User %d: %s\n",
			userID,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,staticcheck

	if rows.Next() {
		var (
			r      = &objects.WeeklyReport{UserID: userID, WeekStart: weekStart}
			endStr string
			stress *float64
			stamp  int64
		)

		if err = rows.Scan(
			&r.ID,
			&endStr,
			&r.TotalHabits,
			&r.ConsistentHabits,
			&r.InconsistentHabits,
			&r.TotalCompletions,
			&r.AverageMood,
			&stress,
			&r.Data,
			&stamp); err != nil {
			db.log.Printf("[ERROR] Cannot scan weekly report: %s\n",
				err.Error())
			return nil, err
		} else if r.WeekEnd, err = time.Parse(common.TimestampFormatDate, endStr); err != nil {
			db.log.Printf("[ERROR] Cannot parse week end %q: %s\n",
				endStr,
				err.Error())
			return nil, err
		}

		r.Generated = time.Unix(stamp, 0)
		if stress != nil {
			r.AverageStress = *stress
			r.HasStress = true
		}

		return r, nil
	}

	return nil, nil
} // func (db *Database) ReportGetByWeek(userID int64, weekStart time.Time) (*objects.WeeklyReport, error)
