// /home/krylon/go/src/github.com/blicero/sisyphos/backend/00_main_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 13. 04. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-06-23 19:40:17 krylon>

package backend

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
		baseDir = time.Now().Format("/tmp/sisyphos_backend_test_20060102_150405")
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
