// Package domain contains core concepts of the mailbox system.
// This file defines Participant entities and related invariants.
// No runtime, network, or UI logic should be added here.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Participant is a joined identity within a room. The ClientID is
// generated at join time and never reused: rejoining after a leave
// issues a fresh identity, unlinked from the previous one.
type Participant struct {
	ClientID    string
	DisplayName string
	JoinedAt    time.Time
}

func NewParticipant(displayName string, joinedAt time.Time) Participant {
	return Participant{
		ClientID:    uuid.NewString(),
		DisplayName: displayName,
		JoinedAt:    joinedAt,
	}
}
