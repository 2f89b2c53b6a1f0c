// /home/krylon/go/src/github.com/blicero/sisyphos/database/pool.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 04. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-06-21 20:14:09 krylon>

package database

import (
	"sync"

	"github.com/blicero/sisyphos/common"
)

// Pool is a pool of database connections. Since the web server handles
// each request in its own goroutine and connections are not safe for
// concurrent use, handlers check out a connection for the duration of
// a request and return it afterwards.
type Pool struct {
	lock sync.Mutex
	cond *sync.Cond
	pool []*Database
}

// NewPool creates a Pool of cnt database connections.
func NewPool(cnt int) (*Pool, error) {
	var (
		err  error
		db   *Database
		pool = &Pool{
			pool: make([]*Database, 0, cnt),
		}
	)

	pool.cond = sync.NewCond(&pool.lock)

	for i := 0; i < cnt; i++ {
		if db, err = Open(common.DbPath); err != nil {
			return nil, err
		}

		pool.pool = append(pool.pool, db)
	}

	return pool, nil
} // func NewPool(cnt int) (*Pool, error)

// IsEmpty returns true if the Pool currently has no idle connections.
func (pool *Pool) IsEmpty() bool {
	pool.lock.Lock()
	var empty = len(pool.pool) == 0
	pool.lock.Unlock()
	return empty
} // func (pool *Pool) IsEmpty() bool

// Get returns a connection from the Pool. If the Pool is empty, it
// blocks until a connection is returned.
func (pool *Pool) Get() *Database {
	pool.lock.Lock()
	defer pool.lock.Unlock()

	for len(pool.pool) == 0 {
		pool.cond.Wait()
	}

	var db = pool.pool[len(pool.pool)-1]
	pool.pool = pool.pool[:len(pool.pool)-1]

	return db
} // func (pool *Pool) Get() *Database

// GetNoWait returns a connection from the Pool. If the Pool is empty,
// it opens a fresh connection instead of waiting for one.
func (pool *Pool) GetNoWait() (*Database, error) {
	pool.lock.Lock()

	if len(pool.pool) > 0 {
		var db = pool.pool[len(pool.pool)-1]
		pool.pool = pool.pool[:len(pool.pool)-1]
		pool.lock.Unlock()
		return db, nil
	}

	pool.lock.Unlock()
	return Open(common.DbPath)
} // func (pool *Pool) GetNoWait() (*Database, error)

// Put returns a connection to the Pool and wakes up one waiter.
func (pool *Pool) Put(db *Database) {
	pool.lock.Lock()
	pool.pool = append(pool.pool, db)
	pool.cond.Signal()
	pool.lock.Unlock()
} // func (pool *Pool) Put(db *Database)

// Close closes all connections currently in the Pool.
func (pool *Pool) Close() error {
	pool.lock.Lock()
	defer pool.lock.Unlock()

	var err error

	for _, db := range pool.pool {
		if e := db.Close(); e != nil {
			err = e
		}
	}

	pool.pool = pool.pool[:0]
	return err
} // func (pool *Pool) Close() error
