// /home/krylon/go/src/github.com/blicero/sisyphos/objects/notification.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 04. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-06-20 19:41:26 krylon>

package objects

import "time"

//go:generate ffjson notification.go

// Notification types.
const (
	NotificationReminder   = "reminder"
	NotificationMotivation = "motivation"
)

// Notification is a message to a User, created by the reminder scan.
// HabitID is 0 for notifications that do not concern a specific Habit.
// Notifications are never deleted, only marked as read.
type Notification struct {
	ID      int64
	UserID  int64
	HabitID int64
	Message string
	Type    string
	Read    bool
	Created time.Time
}

// Payload returns the Notification's title and body for display.
func (n *Notification) Payload() (string, string) {
	var title string

	switch n.Type {
	case NotificationMotivation:
		title = "Keep going!"
	default:
		title = "Habit reminder"
	}

	return title, n.Message
} // func (n *Notification) Payload() (string, string)
