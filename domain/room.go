package domain

import "time"

// RoomStatus is the O(1) snapshot returned by status checks.
// Participants are display names in join order.
type RoomStatus struct {
	RoomID       string
	MessageCount int
	Participants []string
	CreatedAt    time.Time
	LastActivity time.Time
}
