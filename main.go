// /home/krylon/go/src/github.com/blicero/sisyphos/main.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 04. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-06-23 21:02:48 krylon>

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blicero/sisyphos/backend"
	"github.com/blicero/sisyphos/common"
)

func main() {
	fmt.Printf("%s %s (built %s)\n",
		common.AppName,
		common.Version,
		common.BuildStamp)

	var (
		err           error
		daemon        *backend.Daemon
		baseDir, addr string
	)

	flag.StringVar(
		&baseDir,
		"basedir",
		common.BaseDir,
		"The directory where application-specific files live")

	flag.StringVar(
		&addr,
		"address",
		fmt.Sprintf("localhost:%d", common.DefaultPort),
		"Address for the web interface to listen on",
	)

	flag.Parse()

	if baseDir != common.BaseDir {
		if err = common.SetBaseDir(baseDir); err != nil {
			fmt.Fprintf(
				os.Stderr,
				"Cannot set base directory to %s: %s\n",
				baseDir,
				err.Error())
			os.Exit(1)
		}
	} else if err = common.InitApp(); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot initialize application environment: %s\n",
			err.Error())
		os.Exit(1)
	}

	if daemon, err = backend.Summon(addr); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Failed to initialize backend: %s\n",
			err.Error())
		os.Exit(1)
	}

	var sigQ = make(chan os.Signal, 1)
	var ticker = time.NewTicker(time.Second * 2)

	signal.Notify(sigQ, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)

	for daemon.IsAlive() {
		select {
		case sig := <-sigQ:
			fmt.Printf("Quitting on signal %s\n", sig)
			daemon.Banish() // nolint: errcheck
			os.Exit(0)
		case <-ticker.C:
			continue
		}
	}
} // func main()
