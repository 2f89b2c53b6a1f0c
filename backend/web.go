// /home/krylon/go/src/github.com/blicero/sisyphos/backend/web.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 04. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-06-23 21:44:18 krylon>

package backend

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/blicero/sisyphos/analysis"
	"github.com/blicero/sisyphos/common"
	"github.com/blicero/sisyphos/database"
	"github.com/blicero/sisyphos/objects"
	"github.com/gorilla/mux"
	"github.com/pquerna/ffjson/ffjson"
)

// maxCompareWeeks caps the number of weeks the comparison endpoint will
// generate in one request.
const maxCompareWeeks = 12

func (d *Daemon) initWebHandlers() error {
	d.router.HandleFunc("/user/add", d.handleUserAdd)
	d.router.HandleFunc("/user/all", d.handleUserGetAll)

	d.router.HandleFunc("/habit/add", d.handleHabitAdd)
	d.router.HandleFunc("/habit/user/{user:(?:\\d+)}/all", d.handleHabitGetByUser)
	d.router.HandleFunc("/habit/{id:(?:\\d+)}", d.handleHabitGetByID)
	d.router.HandleFunc("/habit/{id:(?:\\d+)}/update", d.handleHabitUpdate)
	d.router.HandleFunc("/habit/{id:(?:\\d+)}/active", d.handleHabitSetActive)
	d.router.HandleFunc("/habit/{id:(?:\\d+)}/continue", d.handleHabitContinue)
	d.router.HandleFunc("/habit/{id:(?:\\d+)}/delete", d.handleHabitDelete)
	d.router.HandleFunc("/habit/{id:(?:\\d+)}/consistency", d.handleHabitConsistency)

	d.router.HandleFunc("/log/submit", d.handleLogSubmit)
	d.router.HandleFunc("/log/habit/{id:(?:\\d+)}", d.handleLogGetByHabit)
	d.router.HandleFunc("/log/user/{user:(?:\\d+)}", d.handleLogGetByUser)

	d.router.HandleFunc("/mood/submit", d.handleMoodSubmit)
	d.router.HandleFunc("/mood/user/{user:(?:\\d+)}", d.handleMoodGetByUser)

	d.router.HandleFunc("/subtask/add", d.handleSubTaskAdd)
	d.router.HandleFunc("/subtask/habit/{id:(?:\\d+)}", d.handleSubTaskGetByHabit)
	d.router.HandleFunc("/subtask/{id:(?:\\d+)}/update", d.handleSubTaskUpdate)
	d.router.HandleFunc("/subtask/{id:(?:\\d+)}/done", d.handleSubTaskSetDone)
	d.router.HandleFunc("/subtask/{id:(?:\\d+)}/delete", d.handleSubTaskDelete)

	d.router.HandleFunc("/notification/user/{user:(?:\\d+)}", d.handleNotificationGetByUser)
	d.router.HandleFunc("/notification/user/{user:(?:\\d+)}/read-all", d.handleNotificationReadAll)
	d.router.HandleFunc("/notification/{id:(?:\\d+)}/read", d.handleNotificationSetRead)

	d.router.HandleFunc("/report/weekly/{user:(?:\\d+)}", d.handleReportWeekly)
	d.router.HandleFunc("/report/compare/{user:(?:\\d+)}", d.handleReportCompare)

	return nil
} // func (d *Daemon) initWebHandlers() error

func (d *Daemon) serveHTTP() {
	var err error

	defer d.log.Println("[INFO] Web server is shutting down")

	d.log.Printf("[INFO] Web interface is going online at %s\n", d.web.Addr)

	if err = d.web.ListenAndServe(); err != nil {
		if err != http.ErrServerClosed {
			d.log.Printf("[ERROR] ListenAndServe returned an error: %s\n",
				err.Error())
		} else {
			d.log.Println("[INFO] HTTP Server has shut down.")
		}
	}
} // func (d *Daemon) serveHTTP()

//////////////////////////////////////////////////////////////////////////////////////////////////
/// User /////////////////////////////////////////////////////////////////////////////////////////
//////////////////////////////////////////////////////////////////////////////////////////////////

func (d *Daemon) handleUserAdd(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err error
		msg string
		db  *database.Database
		u   objects.User
		res = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		msg = fmt.Sprintf("Cannot parse form data: %s", err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	u.Username = r.FormValue("username")
	u.ReminderTime = r.FormValue("reminder_time")
	u.ReminderEnabled = r.FormValue("reminder_enabled") != "false"

	if u.Username == "" {
		res.Message = "username must not be empty"
		goto SEND_RESPONSE
	} else if u.ReminderTime == "" {
		u.ReminderTime = "09:00"
	} else if _, err = time.Parse(common.TimeOfDayFormat, u.ReminderTime); err != nil {
		msg = fmt.Sprintf("Cannot parse reminder_time %q: %s",
			u.ReminderTime,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if err = db.UserAdd(&u); err != nil {
		msg = fmt.Sprintf("Cannot add User %q to database: %s",
			u.Username,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	res.Message = strconv.FormatInt(u.ID, 10)
	res.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleUserAdd(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleUserGetAll(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err   error
		db    *database.Database
		users []objects.User
	)

	db = d.pool.Get()
	defer d.pool.Put(db)

	if users, err = db.UserGetAll(); err != nil {
		d.log.Printf("[ERROR] Cannot load Users: %s\n",
			err.Error())
		http.Error(w, err.Error(), 500)
		return
	}

	d.sendJSON(w, users)
} // func (d *Daemon) handleUserGetAll(w http.ResponseWriter, r *http.Request)

//////////////////////////////////////////////////////////////////////////////////////////////////
/// Habit ////////////////////////////////////////////////////////////////////////////////////////
//////////////////////////////////////////////////////////////////////////////////////////////////

func (d *Daemon) handleHabitAdd(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err error
		msg string
		db  *database.Database
		h   objects.Habit
		res = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		msg = fmt.Sprintf("Cannot parse form data: %s", err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	if h.UserID, err = strconv.ParseInt(r.FormValue("user"), 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse user ID %q: %s",
			r.FormValue("user"),
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	h.Name = r.FormValue("name")
	h.Description = r.FormValue("description")
	h.WhenSpecifically = r.FormValue("when_specifically")
	h.WhatMotivating = r.FormValue("what_motivating")
	h.WhatHindering = r.FormValue("what_hindering")
	h.WhomTell = r.FormValue("whom_tell")
	h.WhoInspires = r.FormValue("who_inspires")
	h.Milestones = r.FormValue("milestones")
	h.TreatMyself = r.FormValue("treat_myself")

	if h.Name == "" {
		res.Message = "name must not be empty"
		goto SEND_RESPONSE
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if err = db.HabitAdd(&h); err != nil {
		msg = fmt.Sprintf("Cannot add Habit %q to database: %s",
			h.Name,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	res.Message = strconv.FormatInt(h.ID, 10)
	res.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleHabitAdd(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleHabitGetByUser(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err    error
		db     *database.Database
		userID int64
		habits []objects.Habit
	)

	if userID, err = strconv.ParseInt(mux.Vars(r)["user"], 10, 64); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if habits, err = db.HabitGetByUser(userID); err != nil {
		d.log.Printf("[ERROR] Cannot load Habits of User %d: %s\n",
			userID,
			err.Error())
		http.Error(w, err.Error(), 500)
		return
	}

	d.sendJSON(w, habits)
} // func (d *Daemon) handleHabitGetByUser(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleHabitGetByID(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err error
		db  *database.Database
		id  int64
		h   *objects.Habit
	)

	if id, err = strconv.ParseInt(mux.Vars(r)["id"], 10, 64); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if h, err = db.HabitGetByID(id); err != nil {
		d.log.Printf("[ERROR] Cannot look up Habit %d: %s\n",
			id,
			err.Error())
		http.Error(w, err.Error(), 500)
		return
	} else if h == nil {
		http.Error(w, fmt.Sprintf("Habit %d was not found", id), 404)
		return
	}

	d.sendJSON(w, h)
} // func (d *Daemon) handleHabitGetByID(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleHabitUpdate(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err     error
		msg     string
		db      *database.Database
		idstr   string
		id, uid int64
		h       *objects.Habit
		res     = objects.Response{ID: d.getID()}
	)

	idstr = mux.Vars(r)["id"]

	if err = r.ParseForm(); err != nil {
		msg = fmt.Sprintf("Cannot parse form data: %s", err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[CANTHAPPEN] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if uid, err = strconv.ParseInt(r.FormValue("user"), 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse user ID %q: %s",
			r.FormValue("user"),
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if h, err = db.HabitGetByID(id); err != nil {
		msg = fmt.Sprintf("Failed to look up Habit #%d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if h == nil || h.UserID != uid {
		msg = fmt.Sprintf("Habit #%d was not found in database", id)
		d.log.Printf("[DEBUG] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	h.Name = r.FormValue("name")
	h.Description = r.FormValue("description")
	h.WhenSpecifically = r.FormValue("when_specifically")
	h.WhatMotivating = r.FormValue("what_motivating")
	h.WhatHindering = r.FormValue("what_hindering")
	h.WhomTell = r.FormValue("whom_tell")
	h.WhoInspires = r.FormValue("who_inspires")
	h.Milestones = r.FormValue("milestones")
	h.TreatMyself = r.FormValue("treat_myself")
	h.FailureAnalysis = r.FormValue("failure_analysis")

	if h.Name == "" {
		res.Message = "name must not be empty"
		goto SEND_RESPONSE
	} else if err = db.HabitUpdate(h); err != nil {
		msg = fmt.Sprintf("Cannot update Habit %d (%q): %s",
			id,
			h.Name,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	res.Message = "OK"
	res.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleHabitUpdate(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleHabitSetActive(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err     error
		msg     string
		db      *database.Database
		idstr   string
		id, uid int64
		active  bool
		h       *objects.Habit
		res     = objects.Response{ID: d.getID()}
	)

	idstr = mux.Vars(r)["id"]

	if err = r.ParseForm(); err != nil {
		msg = fmt.Sprintf("Cannot parse form data: %s", err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[CANTHAPPEN] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if uid, err = strconv.ParseInt(r.FormValue("user"), 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse user ID %q: %s",
			r.FormValue("user"),
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if active, err = strconv.ParseBool(r.FormValue("active")); err != nil {
		msg = fmt.Sprintf("Cannot parse active flag %q: %s",
			r.FormValue("active"),
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if h, err = db.HabitGetByID(id); err != nil {
		msg = fmt.Sprintf("Failed to look up Habit #%d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if h == nil || h.UserID != uid {
		msg = fmt.Sprintf("Habit #%d was not found in database", id)
		d.log.Printf("[DEBUG] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if err = db.HabitSetActive(h, active); err != nil {
		msg = fmt.Sprintf("Cannot set active flag of Habit %d (%q): %s",
			id,
			h.Name,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	res.Message = "OK"
	res.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleHabitSetActive(w http.ResponseWriter, r *http.Request)

// handleHabitContinue records the user's decision to stick with a Habit
// the analyzer has flagged. Giving a reason clears the inconsistency
// flag.
func (d *Daemon) handleHabitContinue(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err           error
		msg           string
		db            *database.Database
		idstr, reason string
		id, uid       int64
		h             *objects.Habit
		res           = objects.Response{ID: d.getID()}
	)

	idstr = mux.Vars(r)["id"]

	if err = r.ParseForm(); err != nil {
		msg = fmt.Sprintf("Cannot parse form data: %s", err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[CANTHAPPEN] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if uid, err = strconv.ParseInt(r.FormValue("user"), 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse user ID %q: %s",
			r.FormValue("user"),
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	reason = r.FormValue("reason")

	db = d.pool.Get()
	defer d.pool.Put(db)

	if h, err = db.HabitGetByID(id); err != nil {
		msg = fmt.Sprintf("Failed to look up Habit #%d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if h == nil || h.UserID != uid {
		msg = fmt.Sprintf("Habit #%d was not found in database", id)
		d.log.Printf("[DEBUG] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if err = db.HabitSetContinueReason(h, reason); err != nil {
		msg = fmt.Sprintf("Cannot set continue reason of Habit %d (%q): %s",
			id,
			h.Name,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	res.Message = "OK"
	res.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleHabitContinue(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleHabitDelete(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err     error
		msg     string
		db      *database.Database
		idstr   string
		id, uid int64
		h       *objects.Habit
		res     = objects.Response{ID: d.getID()}
	)

	idstr = mux.Vars(r)["id"]

	if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[CANTHAPPEN] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if uid, err = strconv.ParseInt(r.FormValue("user"), 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse user ID %q: %s",
			r.FormValue("user"),
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if h, err = db.HabitGetByID(id); err != nil {
		msg = fmt.Sprintf("Failed to look up Habit #%d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if h == nil || h.UserID != uid {
		msg = fmt.Sprintf("Habit #%d was not found in database", id)
		d.log.Printf("[DEBUG] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if err = db.HabitDelete(h); err != nil {
		msg = fmt.Sprintf("Failed to delete Habit %d (%q): %s",
			id,
			h.Name,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	res.Message = fmt.Sprintf("Habit %d (%q) was deleted",
		id,
		h.Name)
	res.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleHabitDelete(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleHabitConsistency(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err        error
		id, userID int64
		cres       *objects.ConsistencyResult
	)

	if id, err = strconv.ParseInt(mux.Vars(r)["id"], 10, 64); err != nil {
		http.Error(w, err.Error(), 400)
		return
	} else if userID, err = strconv.ParseInt(r.FormValue("user"), 10, 64); err != nil {
		http.Error(w, fmt.Sprintf("Cannot parse user ID %q: %s",
			r.FormValue("user"),
			err.Error()),
			400)
		return
	}

	if cres, err = d.eng.AnalyzeConsistency(id, userID); err != nil {
		if errors.Is(err, analysis.ErrHabitNotFound) {
			http.Error(w, fmt.Sprintf("Habit %d was not found", id), 404)
		} else {
			d.log.Printf("[ERROR] Cannot analyze Habit %d: %s\n",
				id,
				err.Error())
			http.Error(w, err.Error(), 500)
		}
		return
	}

	d.sendJSON(w, cres)
} // func (d *Daemon) handleHabitConsistency(w http.ResponseWriter, r *http.Request)

//////////////////////////////////////////////////////////////////////////////////////////////////
/// HabitLog /////////////////////////////////////////////////////////////////////////////////////
//////////////////////////////////////////////////////////////////////////////////////////////////

// handleLogSubmit records how a Habit went on one day. Logging the same
// day again overwrites the old entry. Afterwards the Habit's cached
// counters are refreshed and the consistency check is run; if it flags
// the Habit, the flag is persisted right away.
func (d *Daemon) handleLogSubmit(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err         error
		msg, dstr   string
		db          *database.Database
		h           *objects.Habit
		l           objects.HabitLog
		cres        *objects.ConsistencyResult
		res         = objects.Response{ID: d.getID()}
		statsFailed bool
	)

	if err = r.ParseForm(); err != nil {
		msg = fmt.Sprintf("Cannot parse form data: %s", err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	if l.HabitID, err = strconv.ParseInt(r.FormValue("habit"), 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse habit ID %q: %s",
			r.FormValue("habit"),
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if l.UserID, err = strconv.ParseInt(r.FormValue("user"), 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse user ID %q: %s",
			r.FormValue("user"),
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if l.CompletionPercentage, err = strconv.Atoi(r.FormValue("completion")); err != nil {
		msg = fmt.Sprintf("Cannot parse completion level %q: %s",
			r.FormValue("completion"),
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if l.CompletionPercentage < objects.CompletionNone || l.CompletionPercentage > objects.CompletionFull {
		msg = fmt.Sprintf("Invalid completion level %d (must be 0 - 3)",
			l.CompletionPercentage)
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	if dstr = r.FormValue("date"); dstr == "" {
		l.Date = dateOnly(time.Now())
	} else if l.Date, err = time.Parse(common.TimestampFormatDate, dstr); err != nil {
		msg = fmt.Sprintf("Cannot parse date %q: %s",
			dstr,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	l.Mood = r.FormValue("mood")
	l.Notes = r.FormValue("notes")

	if s := r.FormValue("stress"); s != "" {
		if l.StressLevel, err = strconv.Atoi(s); err != nil || l.StressLevel < 1 || l.StressLevel > 5 {
			msg = fmt.Sprintf("Invalid stress level %q (must be 1 - 5)", s)
			d.log.Printf("[ERROR] %s\n", msg)
			res.Message = msg
			goto SEND_RESPONSE
		}
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if h, err = db.HabitGetByID(l.HabitID); err != nil {
		msg = fmt.Sprintf("Failed to look up Habit #%d: %s",
			l.HabitID,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if h == nil || h.UserID != l.UserID {
		msg = fmt.Sprintf("Habit #%d was not found in database", l.HabitID)
		d.log.Printf("[DEBUG] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if err = db.LogUpsert(&l); err != nil {
		msg = fmt.Sprintf("Cannot log Habit %d (%q) for %s: %s",
			h.ID,
			h.Name,
			l.Date.Format(common.TimestampFormatDate),
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	// The log is in; everything below is derived bookkeeping, so a
	// failure no longer fails the request.
	if err = refreshHabitStats(db, h, l.Date); err != nil {
		d.log.Printf("[ERROR] Cannot refresh counters of Habit %d: %s\n",
			h.ID,
			err.Error())
		statsFailed = true
	}

	if cres, err = d.eng.AnalyzeConsistency(h.ID, l.UserID); err != nil {
		d.log.Printf("[ERROR] Cannot analyze Habit %d: %s\n",
			h.ID,
			err.Error())
	} else if cres.Inconsistent && !h.Inconsistent {
		if err = db.HabitSetInconsistent(h, true); err != nil {
			d.log.Printf("[ERROR] Cannot flag Habit %d as inconsistent: %s\n",
				h.ID,
				err.Error())
		}
	}

	res.Message = strconv.FormatInt(l.ID, 10)
	res.Status = !statsFailed

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleLogSubmit(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleLogGetByHabit(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err        error
		db         *database.Database
		id         int64
		begin, end time.Time
		logs       []objects.HabitLog
	)

	if id, err = strconv.ParseInt(mux.Vars(r)["id"], 10, 64); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if begin, end, err = rangeParams(r); err != nil {
		http.Error(w, err.Error(), 400)
		return
	} else if begin.IsZero() {
		logs, err = db.LogGetByHabit(id)
	} else {
		logs, err = db.LogGetByHabitRange(id, begin, end)
	}

	if err != nil {
		d.log.Printf("[ERROR] Cannot load logs of Habit %d: %s\n",
			id,
			err.Error())
		http.Error(w, err.Error(), 500)
		return
	}

	d.sendJSON(w, logs)
} // func (d *Daemon) handleLogGetByHabit(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleLogGetByUser(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err        error
		db         *database.Database
		userID     int64
		begin, end time.Time
		logs       []objects.HabitLog
	)

	if userID, err = strconv.ParseInt(mux.Vars(r)["user"], 10, 64); err != nil {
		http.Error(w, err.Error(), 400)
		return
	} else if begin, end, err = rangeParams(r); err != nil {
		http.Error(w, err.Error(), 400)
		return
	} else if begin.IsZero() {
		// Default to the trailing week.
		end = dateOnly(time.Now())
		begin = end.AddDate(0, 0, -6)
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if logs, err = db.LogGetByUserRange(userID, begin, end); err != nil {
		d.log.Printf("[ERROR] Cannot load logs of User %d: %s\n",
			userID,
			err.Error())
		http.Error(w, err.Error(), 500)
		return
	}

	d.sendJSON(w, logs)
} // func (d *Daemon) handleLogGetByUser(w http.ResponseWriter, r *http.Request)

//////////////////////////////////////////////////////////////////////////////////////////////////
/// MoodLog //////////////////////////////////////////////////////////////////////////////////////
//////////////////////////////////////////////////////////////////////////////////////////////////

func (d *Daemon) handleMoodSubmit(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err       error
		msg, dstr string
		db        *database.Database
		m         objects.MoodLog
		res       = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		msg = fmt.Sprintf("Cannot parse form data: %s", err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	if m.UserID, err = strconv.ParseInt(r.FormValue("user"), 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse user ID %q: %s",
			r.FormValue("user"),
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	if m.Mood = r.FormValue("mood"); m.Mood == "" {
		res.Message = "mood must not be empty"
		goto SEND_RESPONSE
	}

	if dstr = r.FormValue("date"); dstr == "" {
		m.Date = dateOnly(time.Now())
	} else if m.Date, err = time.Parse(common.TimestampFormatDate, dstr); err != nil {
		msg = fmt.Sprintf("Cannot parse date %q: %s",
			dstr,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	m.Notes = r.FormValue("notes")

	if s := r.FormValue("stress"); s != "" {
		if m.StressLevel, err = strconv.Atoi(s); err != nil || m.StressLevel < 1 || m.StressLevel > 5 {
			msg = fmt.Sprintf("Invalid stress level %q (must be 1 - 5)", s)
			d.log.Printf("[ERROR] %s\n", msg)
			res.Message = msg
			goto SEND_RESPONSE
		}
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if err = db.MoodUpsert(&m); err != nil {
		msg = fmt.Sprintf("Cannot log mood of User %d for %s: %s",
			m.UserID,
			m.Date.Format(common.TimestampFormatDate),
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	res.Message = strconv.FormatInt(m.ID, 10)
	res.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleMoodSubmit(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleMoodGetByUser(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err        error
		db         *database.Database
		userID     int64
		begin, end time.Time
		moods      []objects.MoodLog
	)

	if userID, err = strconv.ParseInt(mux.Vars(r)["user"], 10, 64); err != nil {
		http.Error(w, err.Error(), 400)
		return
	} else if begin, end, err = rangeParams(r); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if begin.IsZero() {
		moods, err = db.MoodGetByUser(userID)
	} else {
		moods, err = db.MoodGetByUserRange(userID, begin, end)
	}

	if err != nil {
		d.log.Printf("[ERROR] Cannot load moods of User %d: %s\n",
			userID,
			err.Error())
		http.Error(w, err.Error(), 500)
		return
	}

	d.sendJSON(w, moods)
} // func (d *Daemon) handleMoodGetByUser(w http.ResponseWriter, r *http.Request)

//////////////////////////////////////////////////////////////////////////////////////////////////
/// SubTask //////////////////////////////////////////////////////////////////////////////////////
//////////////////////////////////////////////////////////////////////////////////////////////////

func (d *Daemon) handleSubTaskAdd(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err error
		msg string
		db  *database.Database
		h   *objects.Habit
		s   objects.SubTask
		res = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		msg = fmt.Sprintf("Cannot parse form data: %s", err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	if s.HabitID, err = strconv.ParseInt(r.FormValue("habit"), 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse habit ID %q: %s",
			r.FormValue("habit"),
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	s.Name = r.FormValue("name")
	s.Description = r.FormValue("description")

	if s.Name == "" {
		res.Message = "name must not be empty"
		goto SEND_RESPONSE
	}

	if o := r.FormValue("order"); o != "" {
		if s.OrderIndex, err = strconv.ParseInt(o, 10, 64); err != nil {
			msg = fmt.Sprintf("Cannot parse order index %q: %s",
				o,
				err.Error())
			d.log.Printf("[ERROR] %s\n", msg)
			res.Message = msg
			goto SEND_RESPONSE
		}
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if h, err = db.HabitGetByID(s.HabitID); err != nil {
		msg = fmt.Sprintf("Failed to look up Habit #%d: %s",
			s.HabitID,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if h == nil {
		msg = fmt.Sprintf("Habit #%d was not found in database", s.HabitID)
		d.log.Printf("[DEBUG] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if err = db.SubTaskAdd(&s); err != nil {
		msg = fmt.Sprintf("Cannot add SubTask %q to Habit %d: %s",
			s.Name,
			s.HabitID,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	res.Message = strconv.FormatInt(s.ID, 10)
	res.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleSubTaskAdd(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleSubTaskGetByHabit(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err   error
		db    *database.Database
		id    int64
		tasks []objects.SubTask
	)

	if id, err = strconv.ParseInt(mux.Vars(r)["id"], 10, 64); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if tasks, err = db.SubTaskGetByHabit(id); err != nil {
		d.log.Printf("[ERROR] Cannot load SubTasks of Habit %d: %s\n",
			id,
			err.Error())
		http.Error(w, err.Error(), 500)
		return
	}

	d.sendJSON(w, tasks)
} // func (d *Daemon) handleSubTaskGetByHabit(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleSubTaskUpdate(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err     error
		msg     string
		db      *database.Database
		idstr   string
		id, uid int64
		s       *objects.SubTask
		h       *objects.Habit
		res     = objects.Response{ID: d.getID()}
	)

	idstr = mux.Vars(r)["id"]

	if err = r.ParseForm(); err != nil {
		msg = fmt.Sprintf("Cannot parse form data: %s", err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[CANTHAPPEN] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if uid, err = strconv.ParseInt(r.FormValue("user"), 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse user ID %q: %s",
			r.FormValue("user"),
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if s, err = db.SubTaskGetByID(id); err != nil {
		msg = fmt.Sprintf("Failed to look up SubTask #%d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if s == nil {
		msg = fmt.Sprintf("SubTask #%d was not found in database", id)
		d.log.Printf("[DEBUG] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if h, err = db.HabitGetByID(s.HabitID); err != nil {
		msg = fmt.Sprintf("Failed to look up Habit #%d: %s",
			s.HabitID,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if h == nil || h.UserID != uid {
		msg = fmt.Sprintf("SubTask #%d was not found in database", id)
		d.log.Printf("[DEBUG] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	s.Name = r.FormValue("name")
	s.Description = r.FormValue("description")

	if s.Name == "" {
		res.Message = "name must not be empty"
		goto SEND_RESPONSE
	}

	if o := r.FormValue("order"); o != "" {
		if s.OrderIndex, err = strconv.ParseInt(o, 10, 64); err != nil {
			msg = fmt.Sprintf("Cannot parse order index %q: %s",
				o,
				err.Error())
			d.log.Printf("[ERROR] %s\n", msg)
			res.Message = msg
			goto SEND_RESPONSE
		}
	}

	if err = db.SubTaskUpdate(s); err != nil {
		msg = fmt.Sprintf("Cannot update SubTask %d (%q): %s",
			id,
			s.Name,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	res.Message = "OK"
	res.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleSubTaskUpdate(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleSubTaskSetDone(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err     error
		msg     string
		db      *database.Database
		idstr   string
		id, uid int64
		done    bool
		s       *objects.SubTask
		h       *objects.Habit
		res     = objects.Response{ID: d.getID()}
	)

	idstr = mux.Vars(r)["id"]

	if err = r.ParseForm(); err != nil {
		msg = fmt.Sprintf("Cannot parse form data: %s", err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[CANTHAPPEN] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if uid, err = strconv.ParseInt(r.FormValue("user"), 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse user ID %q: %s",
			r.FormValue("user"),
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if done, err = strconv.ParseBool(r.FormValue("done")); err != nil {
		msg = fmt.Sprintf("Cannot parse done flag %q: %s",
			r.FormValue("done"),
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if s, err = db.SubTaskGetByID(id); err != nil {
		msg = fmt.Sprintf("Failed to look up SubTask #%d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if s == nil {
		msg = fmt.Sprintf("SubTask #%d was not found in database", id)
		d.log.Printf("[DEBUG] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if h, err = db.HabitGetByID(s.HabitID); err != nil {
		msg = fmt.Sprintf("Failed to look up Habit #%d: %s",
			s.HabitID,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if h == nil || h.UserID != uid {
		msg = fmt.Sprintf("SubTask #%d was not found in database", id)
		d.log.Printf("[DEBUG] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if err = db.SubTaskSetDone(s, done); err != nil {
		msg = fmt.Sprintf("Cannot set done flag of SubTask %d (%q): %s",
			id,
			s.Name,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	res.Message = "OK"
	res.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleSubTaskSetDone(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleSubTaskDelete(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err     error
		msg     string
		db      *database.Database
		idstr   string
		id, uid int64
		s       *objects.SubTask
		h       *objects.Habit
		res     = objects.Response{ID: d.getID()}
	)

	idstr = mux.Vars(r)["id"]

	if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[CANTHAPPEN] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if uid, err = strconv.ParseInt(r.FormValue("user"), 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse user ID %q: %s",
			r.FormValue("user"),
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if s, err = db.SubTaskGetByID(id); err != nil {
		msg = fmt.Sprintf("Failed to look up SubTask #%d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if s == nil {
		msg = fmt.Sprintf("SubTask #%d was not found in database", id)
		d.log.Printf("[DEBUG] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if h, err = db.HabitGetByID(s.HabitID); err != nil {
		msg = fmt.Sprintf("Failed to look up Habit #%d: %s",
			s.HabitID,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if h == nil || h.UserID != uid {
		msg = fmt.Sprintf("SubTask #%d was not found in database", id)
		d.log.Printf("[DEBUG] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if err = db.SubTaskDelete(s); err != nil {
		msg = fmt.Sprintf("Failed to delete SubTask %d (%q): %s",
			id,
			s.Name,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	res.Message = fmt.Sprintf("SubTask %d (%q) was deleted",
		id,
		s.Name)
	res.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleSubTaskDelete(w http.ResponseWriter, r *http.Request)

//////////////////////////////////////////////////////////////////////////////////////////////////
/// Notification /////////////////////////////////////////////////////////////////////////////////
//////////////////////////////////////////////////////////////////////////////////////////////////

func (d *Daemon) handleNotificationGetByUser(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err           error
		db            *database.Database
		userID        int64
		notifications []objects.Notification
	)

	if userID, err = strconv.ParseInt(mux.Vars(r)["user"], 10, 64); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if r.FormValue("unread") != "" {
		notifications, err = db.NotificationGetUnread(userID)
	} else {
		notifications, err = db.NotificationGetByUser(userID)
	}

	if err != nil {
		d.log.Printf("[ERROR] Cannot load Notifications of User %d: %s\n",
			userID,
			err.Error())
		http.Error(w, err.Error(), 500)
		return
	}

	d.sendJSON(w, notifications)
} // func (d *Daemon) handleNotificationGetByUser(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleNotificationSetRead(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err   error
		msg   string
		db    *database.Database
		idstr string
		n     objects.Notification
		res   = objects.Response{ID: d.getID()}
	)

	idstr = mux.Vars(r)["id"]

	if n.ID, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[CANTHAPPEN] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if n.UserID, err = strconv.ParseInt(r.FormValue("user"), 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse user ID %q: %s",
			r.FormValue("user"),
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if err = db.NotificationSetRead(&n, true); err != nil {
		if errors.Is(err, database.ErrObjectNotFound) {
			msg = fmt.Sprintf("Notification #%d was not found in database", n.ID)
			d.log.Printf("[DEBUG] %s\n", msg)
		} else {
			msg = fmt.Sprintf("Cannot mark Notification %d as read: %s",
				n.ID,
				err.Error())
			d.log.Printf("[ERROR] %s\n", msg)
		}
		res.Message = msg
		goto SEND_RESPONSE
	}

	res.Message = "OK"
	res.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleNotificationSetRead(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleNotificationReadAll(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err    error
		msg    string
		db     *database.Database
		ustr   string
		userID int64
		res    = objects.Response{ID: d.getID()}
	)

	ustr = mux.Vars(r)["user"]

	if userID, err = strconv.ParseInt(ustr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse user ID %q: %s",
			ustr,
			err.Error())
		d.log.Printf("[CANTHAPPEN] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if err = db.NotificationSetAllRead(userID); err != nil {
		msg = fmt.Sprintf("Cannot mark Notifications of User %d as read: %s",
			userID,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	res.Message = "OK"
	res.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleNotificationReadAll(w http.ResponseWriter, r *http.Request)

//////////////////////////////////////////////////////////////////////////////////////////////////
/// Reports //////////////////////////////////////////////////////////////////////////////////////
//////////////////////////////////////////////////////////////////////////////////////////////////

func (d *Daemon) handleReportWeekly(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err          error
		userID       int64
		day          time.Time
		wstart, wend time.Time
		view         *objects.WeeklyReportView
	)

	if userID, err = strconv.ParseInt(mux.Vars(r)["user"], 10, 64); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}

	if wstr := r.FormValue("week_start"); wstr == "" {
		day = time.Now()
	} else if day, err = time.Parse(common.TimestampFormatDate, wstr); err != nil {
		http.Error(w, fmt.Sprintf("Cannot parse week_start %q: %s",
			wstr,
			err.Error()),
			400)
		return
	}

	wstart, wend = weekBounds(day)

	if view, err = d.eng.GenerateWeeklyReport(userID, wstart, wend); err != nil {
		d.log.Printf("[ERROR] Cannot generate weekly report for User %d: %s\n",
			userID,
			err.Error())
		http.Error(w, err.Error(), 500)
		return
	}

	d.sendJSON(w, view)
} // func (d *Daemon) handleReportWeekly(w http.ResponseWriter, r *http.Request)

// handleReportCompare generates reports for the past several weeks, most
// recent first, by walking backwards one week at a time.
func (d *Daemon) handleReportCompare(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err    error
		userID int64
		weeks  = 4
		views  []*objects.WeeklyReportView
	)

	if userID, err = strconv.ParseInt(mux.Vars(r)["user"], 10, 64); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}

	if wstr := r.FormValue("weeks"); wstr != "" {
		if weeks, err = strconv.Atoi(wstr); err != nil || weeks < 1 {
			http.Error(w, fmt.Sprintf("Invalid number of weeks %q", wstr), 400)
			return
		} else if weeks > maxCompareWeeks {
			weeks = maxCompareWeeks
		}
	}

	views = make([]*objects.WeeklyReportView, 0, weeks)

	for i := 0; i < weeks; i++ {
		var (
			view         *objects.WeeklyReportView
			wstart, wend = weekBounds(time.Now().AddDate(0, 0, -7*i))
		)

		if view, err = d.eng.GenerateWeeklyReport(userID, wstart, wend); err != nil {
			d.log.Printf("[ERROR] Cannot generate report for User %d, week of %s: %s\n",
				userID,
				wstart.Format(common.TimestampFormatDate),
				err.Error())
			http.Error(w, err.Error(), 500)
			return
		}

		views = append(views, view)
	}

	d.sendJSON(w, views)
} // func (d *Daemon) handleReportCompare(w http.ResponseWriter, r *http.Request)

//////////////////////////////////////////////////////////////////////////////////////////////////
/// Helpers //////////////////////////////////////////////////////////////////////////////////////
//////////////////////////////////////////////////////////////////////////////////////////////////

// rangeParams extracts the optional start/end date parameters from a
// request. If only one of the two is given, the other defaults to the
// beginning of the range or today, respectively.
func rangeParams(r *http.Request) (time.Time, time.Time, error) {
	var (
		err        error
		begin, end time.Time
		bstr       = r.FormValue("start")
		estr       = r.FormValue("end")
	)

	if bstr == "" && estr == "" {
		return begin, end, nil
	}

	if bstr != "" {
		if begin, err = time.Parse(common.TimestampFormatDate, bstr); err != nil {
			return begin, end, fmt.Errorf("Cannot parse start date %q: %s",
				bstr,
				err.Error())
		}
	} else {
		begin = time.Unix(86400, 0)
	}

	if estr != "" {
		if end, err = time.Parse(common.TimestampFormatDate, estr); err != nil {
			return begin, end, fmt.Errorf("Cannot parse end date %q: %s",
				estr,
				err.Error())
		}
	} else {
		end = dateOnly(time.Now())
	}

	return begin, end, nil
} // func rangeParams(r *http.Request) (time.Time, time.Time, error)

func (d *Daemon) sendJSON(w http.ResponseWriter, data interface{}) {
	var (
		err error
		buf []byte
	)

	if buf, err = ffjson.Marshal(data); err != nil {
		d.log.Printf("[ERROR] Cannot serialize response: %s\n",
			err.Error())
		http.Error(w, err.Error(), 500)
		return
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) sendJSON(w http.ResponseWriter, data interface{})

func (d *Daemon) sendResponseJSON(w http.ResponseWriter, res *objects.Response) {
	var (
		err error
		buf []byte
	)

	if buf, err = ffjson.Marshal(res); err != nil {
		d.log.Printf("[ERROR] Cannot serialize Response object %#v: %s\n",
			res,
			err.Error())
		return
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) sendResponseJSON(w http.ResponseWriter, res *objects.Response)

func (d *Daemon) getID() int64 {
	d.idLock.Lock()
	d.idCnt++
	var id = d.idCnt
	d.idLock.Unlock()
	return id
} // func (d *Daemon) getID() int64
