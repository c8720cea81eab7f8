package models

import "time"

// Player represents a room participant, keyed by their stable client ID
type Player struct {
	ClientID       string
	Name           string
	JoinedAt       time.Time
	Ready          bool
	Connected      bool
	DisconnectedAt time.Time // zero while connected
}
