// /home/krylon/go/src/github.com/blicero/sisyphos/objects/response.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 04. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-05 19:44:08 krylon>

package objects

//go:generate ffjson response.go

// Response is what the backend sends to a client after processing a request.
type Response struct {
	ID      int64
	Status  bool
	Message string
}
