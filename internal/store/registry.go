package store

import (
	"log"
	"sync"
	"time"

	"github.com/gamehub4u/gamehub-server/internal/models"
)

const (
	// RoomTTL is the maximum age of a room before the sweeper removes it
	RoomTTL = 4 * time.Hour

	// SweepInterval is how often abandoned rooms are cleaned up
	SweepInterval = 30 * time.Minute
)

// Registry manages room storage and code allocation
type Registry struct {
	rooms map[string]*models.Room
	mu    sync.RWMutex
}

// NewRegistry creates an empty room registry
func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*models.Room),
	}
}

// Get retrieves a room by code
func (s *Registry) Get(code string) (*models.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, exists := s.rooms[code]
	return room, exists
}

// Set stores a room
func (s *Registry) Set(code string, room *models.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[code] = room
}

// Delete removes a room
func (s *Registry) Delete(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, code)
}

// Exists checks if a room code is in use
func (s *Registry) Exists(code string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.rooms[code]
	return exists
}

// Count returns the number of live rooms
func (s *Registry) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

// Rooms returns a snapshot of all live rooms
func (s *Registry) Rooms() []*models.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		out = append(out, room)
	}
	return out
}

// Sweep deletes rooms older than maxAge and returns the removed codes
// so the caller can tear down state it keeps per room.
func (s *Registry) Sweep(maxAge time.Duration) []string {
	now := time.Now()

	s.mu.Lock()
	var removed []string
	for code, room := range s.rooms {
		if now.Sub(room.CreatedAt) > maxAge {
			delete(s.rooms, code)
			removed = append(removed, code)
		}
	}
	s.mu.Unlock()

	for _, code := range removed {
		log.Printf("Cleaning up old room: %s", code)
	}
	return removed
}
