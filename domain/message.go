// Package domain contains core concepts of the mailbox system.
// This file defines Message records and the system-notice format.
// Messages are immutable once appended to a room's log.
package domain

import (
	"strings"
	"time"
)

// Kind discriminates user messages from membership notices.
type Kind string

const (
	KindUser   Kind = "user"
	KindSystem Kind = "system"
)

// Message is one immutable entry in a room's durable log.
// Seq is assigned at append time and is strictly increasing per room.
// For system messages ClientID and DisplayName identify the participant
// the notice is about, which lets the participant set be rebuilt by
// replaying the log in order.
type Message struct {
	Seq         uint64
	RoomID      string
	ClientID    string
	DisplayName string
	Content     string
	Kind        Kind
	At          time.Time
}

const (
	joinSuffix  = " joined"
	leaveSuffix = " left"
)

func JoinNotice(displayName string) string {
	return displayName + joinSuffix
}

func LeaveNotice(displayName string) string {
	return displayName + leaveSuffix
}

// IsJoinNotice reports whether m records a participant joining.
// Notice content is system generated, never user supplied.
func IsJoinNotice(m Message) bool {
	return m.Kind == KindSystem && strings.HasSuffix(m.Content, joinSuffix)
}

func IsLeaveNotice(m Message) bool {
	return m.Kind == KindSystem && strings.HasSuffix(m.Content, leaveSuffix)
}
