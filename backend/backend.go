// /home/krylon/go/src/github.com/blicero/sisyphos/backend/backend.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 04. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-06-23 19:32:45 krylon>

// Package backend implements the daemon at the heart of the application:
// the web interface, the reminder scan, and the plumbing between them
// and the database.
package backend

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/blicero/sisyphos/analysis"
	"github.com/blicero/sisyphos/common"
	"github.com/blicero/sisyphos/database"
	"github.com/blicero/sisyphos/logdomain"
	"github.com/blicero/sisyphos/objects"
	"github.com/godbus/dbus/v5"
	"github.com/gorilla/mux"
	"github.com/grandcat/zeroconf"
)

const (
	notifyObj    = "org.freedesktop.Notifications"
	notifyPath   = "/org/freedesktop/Notifications"
	notifyMethod = "org.freedesktop.Notifications.Notify"
	queueDepth   = 16
	queueTimeout = time.Second * 2
	poolSize     = 4
)

// Daemon is the centerpiece of the backend, coordinating between the
// database, the web interface and the reminder scan.
type Daemon struct {
	log        *log.Logger
	pool       *database.Pool
	eng        *analysis.Engine
	bus        *dbus.Conn
	busLock    sync.Mutex
	lock       sync.RWMutex
	active     bool
	hostname   string
	Queue      chan objects.Notification
	web        http.Server
	router     *mux.Router
	dnssd      *zeroconf.Server
	listenAddr string
	idLock     sync.Mutex
	idCnt      int64
}

// Summon summons a Daemon and returns it. No sacrifice or idolatry is required.
func Summon(addr string) (*Daemon, error) {
	var (
		err error
		d   = &Daemon{
			listenAddr: addr,
			active:     true,
			Queue:      make(chan objects.Notification, queueDepth),
			router:     mux.NewRouter(),
		}
	)

	if d.log, err = common.GetLogger(logdomain.Backend); err != nil {
		fmt.Printf("ERROR initializing Logger: %s\n",
			err.Error())
		return nil, err
	} else if d.pool, err = database.NewPool(poolSize); err != nil {
		d.log.Printf("[ERROR] Cannot initialize database pool: %s\n",
			err.Error())
		return nil, err
	} else if d.eng, err = analysis.New(d.pool); err != nil {
		d.log.Printf("[ERROR] Cannot initialize analysis engine: %s\n",
			err.Error())
		return nil, err
	}

	if d.hostname, err = os.Hostname(); err != nil {
		d.log.Printf("[ERROR] Cannot query hostname: %s\n",
			err.Error())
		d.hostname = "localhost"
	}

	d.web.Addr = addr
	d.web.ErrorLog = d.log
	d.web.Handler = d.router

	if err = d.initWebHandlers(); err != nil {
		d.log.Printf("[ERROR] Failed to initialize web server: %s\n",
			err.Error())
		return nil, err
	}

	// The daemon is useful without mDNS, so a failure here is not fatal.
	if err = d.initDNSSd(); err != nil {
		d.log.Printf("[WARNING] Cannot announce service via DNS-SD: %s\n",
			err.Error())
	}

	go d.notifyLoop()
	go d.reminderLoop()
	go d.serveHTTP()

	return d, nil
} // func Summon(addr string) (*Daemon, error)

// IsAlive returns true if the Daemon's active flag is set.
func (d *Daemon) IsAlive() bool {
	d.lock.RLock()
	var alive = d.active
	d.lock.RUnlock()

	return alive
} // func (d *Daemon) IsAlive() bool

// Banish clears the Daemon's active flag, telling components to shut down.
func (d *Daemon) Banish() error {
	var (
		err         error
		ctx, cancel = context.WithTimeout(context.Background(), time.Second*3)
	)
	defer cancel()

	if err = d.web.Shutdown(ctx); err != nil {
		d.log.Printf("[ERROR] Failed to shutdown web server: %s\n",
			err.Error())
	}

	if ctx.Err() != nil {
		err = ctx.Err()
		d.log.Printf("[ERROR] Failed to gracefully shut down web server: %s\n",
			ctx.Err().Error())
		d.web.Close() // nolint: errcheck
	}

	if d.dnssd != nil {
		d.dnssd.Shutdown()
		d.dnssd = nil
	}

	d.lock.Lock()
	d.active = false
	d.lock.Unlock()
	return err
} // func (d *Daemon) Banish() error

func (d *Daemon) notifyLoop() {
	defer d.log.Println("[TRACE] Quitting notifyLoop")

	var (
		err  error
		tick = time.NewTicker(queueTimeout)
	)
	defer tick.Stop()

	for d.IsAlive() {
		select {
		case <-tick.C:
			continue
		case m := <-d.Queue:
			var title, body = m.Payload()
			d.log.Printf("[DEBUG] Received Notification: %s\n%s\n",
				title,
				body)

			if err = d.notify(m); err != nil {
				d.log.Printf("[ERROR] Failed to post Notification %q: %s\n",
					title,
					err.Error())
			}
		}
	}
} // func (d *Daemon) notifyLoop()

// getBus returns the DBus session bus connection, establishing it on
// first use. On a headless machine there is no session bus, and the
// daemon works fine without one, so this is done lazily.
func (d *Daemon) getBus() (*dbus.Conn, error) {
	d.busLock.Lock()
	defer d.busLock.Unlock()

	if d.bus != nil {
		return d.bus, nil
	}

	var (
		err error
		bus *dbus.Conn
	)

	if bus, err = dbus.SessionBus(); err != nil {
		return nil, err
	}

	d.bus = bus
	return bus, nil
} // func (d *Daemon) getBus() (*dbus.Conn, error)

func (d *Daemon) notify(n objects.Notification) error {
	var (
		err        error
		bus        *dbus.Conn
		head, body string
	)

	if bus, err = d.getBus(); err != nil {
		d.log.Printf("[DEBUG] No DBus session bus, skipping desktop notification: %s\n",
			err.Error())
		return nil
	}

	var obj = bus.Object(notifyObj, notifyPath)

	if obj == nil {
		err = fmt.Errorf("Did not find object %s (%s) on session bus",
			notifyObj,
			notifyPath)
		d.log.Printf("[ERROR] %s\n", err.Error())
		return err
	}

	head, body = n.Payload()

	var res = obj.Call(
		notifyMethod,
		0,
		common.AppName,
		uint32(0),
		"",
		head,
		body,
		[]string{},
		map[string]dbus.Variant{},
		int32(-1),
	)

	if res.Err != nil {
		d.log.Printf("[ERROR] Cannot send Notification %q: %s\n",
			head,
			res.Err.Error())
		return res.Err
	}

	return nil
} // func (d *Daemon) notify(n objects.Notification) error
