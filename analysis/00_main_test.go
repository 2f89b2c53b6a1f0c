// /home/krylon/go/src/github.com/blicero/sisyphos/analysis/00_main_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 12. 04. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-06-23 18:55:10 krylon>

package analysis

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/blicero/sisyphos/common"
	"github.com/blicero/sisyphos/database"
)

var (
	pool *database.Pool
	eng  *Engine
)

func TestMain(m *testing.M) {
	var (
		err     error
		result  int
		baseDir = time.Now().Format("/tmp/sisyphos_analysis_test_20060102_150405")
	)

	if err = common.SetBaseDir(baseDir); err != nil {
		fmt.Printf("Cannot set base directory to %s: %s\n",
			baseDir,
			err.Error())
		os.Exit(1)
	} else if result = m.Run(); result == 0 {
		if err = os.RemoveAll(baseDir); err != nil {
			fmt.Printf("Cannot remove temporary directory %s: %s\n",
				baseDir,
				err.Error())
		}
	}

	os.Exit(result)
} // func TestMain(m *testing.M)

func TestEngineCreate(t *testing.T) {
	var err error

	if pool, err = database.NewPool(2); err != nil {
		pool = nil
		t.Fatalf("Cannot create database pool: %s",
			err.Error())
	} else if eng, err = New(pool); err != nil {
		eng = nil
		t.Fatalf("Cannot create analysis engine: %s",
			err.Error())
	}
} // func TestEngineCreate(t *testing.T)
