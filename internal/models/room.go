package models

import (
	"sync"
	"time"
)

// RoomStatus represents the lifecycle state of a room
type RoomStatus string

const (
	StatusWaiting RoomStatus = "waiting"
	StatusPlaying RoomStatus = "playing"
)

// Room represents a joinable game session identified by a short code.
// Host identity is carried by client ID, never by a connection handle,
// so host privilege survives reconnects.
type Room struct {
	Code         string
	HostClientID string
	Players      []*Player // insertion order is display order
	Status       RoomStatus
	SelectedGame string
	CreatedAt    time.Time
	Game         *GameState // nil until the host starts a game

	// Conns maps client IDs to their live connection handle
	Conns map[string]string

	mu sync.RWMutex
}

// Lock acquires the room's write lock
func (r *Room) Lock() {
	r.mu.Lock()
}

// Unlock releases the room's write lock
func (r *Room) Unlock() {
	r.mu.Unlock()
}

// RLock acquires the room's read lock
func (r *Room) RLock() {
	r.mu.RLock()
}

// RUnlock releases the room's read lock
func (r *Room) RUnlock() {
	r.mu.RUnlock()
}

// FindPlayer returns the player with the given client ID, or nil.
// Must be called with the lock held.
func (r *Room) FindPlayer(clientID string) *Player {
	for _, p := range r.Players {
		if p.ClientID == clientID {
			return p
		}
	}
	return nil
}

// RemovePlayer deletes the player with the given client ID from the roster
// and drops its connection binding. Must be called with the lock held.
func (r *Room) RemovePlayer(clientID string) bool {
	for i, p := range r.Players {
		if p.ClientID == clientID {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			delete(r.Conns, clientID)
			return true
		}
	}
	return false
}

// Info builds the broadcast-safe roster snapshot.
// Must be called with the lock held.
func (r *Room) Info() RoomInfo {
	info := RoomInfo{
		Code:         r.Code,
		HostClientID: r.HostClientID,
		PlayerCount:  len(r.Players),
		Players:      make([]PlayerInfo, 0, len(r.Players)),
		Status:       r.Status,
		SelectedGame: r.SelectedGame,
		CreatedAt:    r.CreatedAt.UnixMilli(),
	}
	for _, p := range r.Players {
		info.Players = append(info.Players, PlayerInfo{
			ClientID:  p.ClientID,
			Name:      p.Name,
			IsHost:    p.ClientID == r.HostClientID,
			IsReady:   p.Ready,
			Connected: p.Connected,
		})
	}
	return info
}
