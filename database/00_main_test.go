// /home/krylon/go/src/github.com/blicero/sisyphos/database/00_main_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 04. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-06-22 19:02:55 krylon>

package database

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/blicero/sisyphos/common"
)

func TestMain(m *testing.M) {
	var (
		err     error
		result  int
		baseDir = time.Now().Format("/tmp/sisyphos_db_test_20060102_150405")
	)

	if err = common.SetBaseDir(baseDir); err != nil {
		fmt.Printf("Cannot set base directory to %s: %s\n",
			baseDir,
			err.Error())
		os.Exit(1)
	} else if result = m.Run(); result == 0 {
		// If all tests pass, we can remove the test directory. If they
		// do not, we keep it around so we can inspect the database.
		if err = os.RemoveAll(baseDir); err != nil {
			fmt.Printf("Cannot remove temporary directory %s: %s\n",
				baseDir,
				err.Error())
		}
	}

	os.Exit(result)
} // func TestMain(m *testing.M)
