package rooms

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gamehub4u/gamehub-server/internal/events"
	"github.com/gamehub4u/gamehub-server/internal/mafia"
	"github.com/gamehub4u/gamehub-server/internal/models"
	"github.com/gamehub4u/gamehub-server/internal/store"
)

const (
	// DisconnectGrace is how long a dropped player may reconnect before
	// being removed from the roster
	DisconnectGrace = 60 * time.Second

	// MaxNameLength bounds display names for memory and UI width
	MaxNameLength = 24

	// DefaultGame is the game selected for new rooms
	DefaultGame = "mafia"
)

// User-facing failures. Everything else fails silently so error responses
// cannot leak hidden game state.
var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrNotAuthorized       = errors.New("only the host can do that")
	ErrInsufficientPlayers = errors.New("not enough players to start")
)

// Sender is the delivery surface the transport collaborator provides
type Sender interface {
	SendTo(connID, event string, payload any)
	Broadcast(code, event string, payload any)
	Join(connID, code string)
	Leave(connID, code string)
	CloseRoom(code string)
}

// Config holds the service tunables
type Config struct {
	MinPlayers int
	Grace      time.Duration
}

type timerKey struct {
	code     string
	clientID string
}

// Service owns room membership and game flow. Each room's state is
// serialized under that room's lock; different rooms proceed in parallel.
type Service struct {
	registry *store.Registry
	sender   Sender
	cfg      Config

	timersMu sync.Mutex
	timers   map[timerKey]*time.Timer // disconnect grace, keyed (room, client)
}

// NewService creates the room service
func NewService(registry *store.Registry, sender Sender, cfg Config) *Service {
	if cfg.MinPlayers <= 0 {
		cfg.MinPlayers = mafia.MinPlayers
	}
	if cfg.Grace <= 0 {
		cfg.Grace = DisconnectGrace
	}
	return &Service{
		registry: registry,
		sender:   sender,
		cfg:      cfg,
		timers:   make(map[timerKey]*time.Timer),
	}
}

// CreateRoom registers a new room with the caller as host and auto-joins
// them. Returns the generated code.
func (s *Service) CreateRoom(connID, clientID, name string) string {
	hostName := cleanName(name, "Host")
	code := s.registry.NewCode()

	room := &models.Room{
		Code:         code,
		HostClientID: clientID,
		Status:       models.StatusWaiting,
		SelectedGame: DefaultGame,
		CreatedAt:    time.Now(),
		Conns:        map[string]string{clientID: connID},
		Players: []*models.Player{{
			ClientID:  clientID,
			Name:      hostName,
			JoinedAt:  time.Now(),
			Connected: true,
		}},
	}
	s.registry.Set(code, room)
	s.sender.Join(connID, code)

	log.Printf("Room created: %s by client %s", code, clientID)

	s.sender.SendTo(connID, events.EventRoomCreated, events.RoomCreated{RoomCode: code})
	s.broadcastRoom(room)
	return code
}

// CheckRoom answers an existence query to the requester only
func (s *Service) CheckRoom(connID, code string) {
	exists := s.registry.Exists(code)
	s.sender.SendTo(connID, events.EventCheckResult, events.CheckResult{
		Exists:   exists,
		RoomCode: code,
	})
}

// Join adds a new player to a room, or rebinds a returning client. The
// rebind path is reconnection, not a re-join: the existing record is kept
// unchanged in game terms.
func (s *Service) Join(connID, clientID, code, name string) error {
	room, ok := s.registry.Get(code)
	if !ok {
		s.sender.SendTo(connID, events.EventJoinError, events.ErrorMessage{Message: "Room not found, check the code"})
		return ErrRoomNotFound
	}

	room.Lock()
	if existing := room.FindPlayer(clientID); existing != nil {
		s.rebindLocked(room, existing, connID)
		info := room.Info()
		room.Unlock()

		log.Printf("Player rebound: %s -> %s", clientID, code)
		s.sender.SendTo(connID, events.EventPlayerJoin, info)
		s.broadcastRoom(room)
		s.broadcastGameState(room)
		return nil
	}

	player := &models.Player{
		ClientID:  clientID,
		Name:      cleanName(name, "Player"),
		JoinedAt:  time.Now(),
		Connected: true,
	}
	room.Players = append(room.Players, player)
	room.Conns[clientID] = connID
	info := room.Info()
	room.Unlock()

	s.sender.Join(connID, code)

	log.Printf("Player joined: %s -> %s (%d players)", player.Name, code, info.PlayerCount)
	s.sender.SendTo(connID, events.EventPlayerJoin, info)
	s.broadcastRoom(room)
	return nil
}

// SetReady updates the caller's ready flag. Unknown clients are a no-op.
func (s *Service) SetReady(clientID, code string, ready bool) {
	room, ok := s.registry.Get(code)
	if !ok {
		return
	}

	room.Lock()
	player := room.FindPlayer(clientID)
	if player == nil {
		room.Unlock()
		return
	}
	player.Ready = ready
	allReady := len(room.Players) > 0
	for _, p := range room.Players {
		if !p.Ready {
			allReady = false
			break
		}
	}
	room.Unlock()

	s.broadcastRoom(room)
	if allReady {
		s.sender.Broadcast(code, events.EventAllReady, events.AllReady{RoomCode: code})
	}
}

// SetSelectedGame picks the game to play; host only
func (s *Service) SetSelectedGame(clientID, code, gameID string) error {
	room, ok := s.registry.Get(code)
	if !ok {
		return ErrRoomNotFound
	}

	room.Lock()
	if clientID != room.HostClientID {
		room.Unlock()
		return ErrNotAuthorized
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		gameID = DefaultGame
	}
	room.SelectedGame = gameID
	room.Unlock()

	log.Printf("Selected game for %s: %s", code, gameID)
	s.broadcastRoom(room)
	return nil
}

// Leave removes the caller immediately, with no grace period
func (s *Service) Leave(connID, clientID, code string) {
	room, ok := s.registry.Get(code)
	if !ok {
		return
	}

	room.Lock()
	player := room.FindPlayer(clientID)
	if player == nil {
		room.Unlock()
		return
	}
	name := player.Name
	room.RemovePlayer(clientID)
	empty := len(room.Players) == 0
	if !empty && room.HostClientID == clientID {
		room.HostClientID = room.Players[0].ClientID
	}
	room.Unlock()

	s.cancelRemoval(code, clientID)
	s.sender.Leave(connID, code)

	log.Printf("%s left room %s", name, code)

	if empty {
		s.destroyRoom(code)
		return
	}
	s.sender.Broadcast(code, events.EventPlayerLeft, events.PlayerLeft{ClientID: clientID, PlayerName: name})
	s.broadcastRoom(room)
}

// rebindLocked points an existing player at a fresh connection: cancels any
// pending removal, restores connected state and updates the binding. Role
// is never regenerated here; re-delivery happens via broadcastGameState.
// Must be called with the room lock held.
func (s *Service) rebindLocked(room *models.Room, player *models.Player, connID string) {
	s.cancelRemoval(room.Code, player.ClientID)
	player.Connected = true
	player.DisconnectedAt = time.Time{}
	room.Conns[player.ClientID] = connID
	s.sender.Join(connID, room.Code)
}

// destroyRoom deletes a room along with its pending grace timers and its
// transport fan-out set, so a future room reusing the code starts clean
func (s *Service) destroyRoom(code string) {
	s.registry.Delete(code)
	s.cancelRoomTimers(code)
	s.sender.CloseRoom(code)

	log.Printf("Room deleted: %s (empty)", code)
}

func (s *Service) cancelRoomTimers(code string) {
	s.timersMu.Lock()
	for key, timer := range s.timers {
		if key.code == code {
			timer.Stop()
			delete(s.timers, key)
		}
	}
	s.timersMu.Unlock()
}

// SweepExpired removes rooms older than maxAge, tearing down each one's
// grace timers and fan-out membership with it
func (s *Service) SweepExpired(maxAge time.Duration) {
	for _, code := range s.registry.Sweep(maxAge) {
		s.cancelRoomTimers(code)
		s.sender.CloseRoom(code)
	}
}

// StartSweeper runs SweepExpired on a fixed interval until ctx is cancelled
func (s *Service) StartSweeper(ctx context.Context, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepExpired(maxAge)
		}
	}
}

// broadcastRoom sends the roster snapshot to everyone in the room
func (s *Service) broadcastRoom(room *models.Room) {
	room.RLock()
	info := room.Info()
	room.RUnlock()

	s.sender.Broadcast(room.Code, events.EventPlayers, info)
	s.sender.Broadcast(room.Code, events.EventRoomUpdate, info)
}

// cleanName trims and caps a display name, falling back when empty.
// The cap counts runes so multi-byte names are never cut mid-character.
func cleanName(name, fallback string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if runes := []rune(name); len(runes) > MaxNameLength {
		name = string(runes[:MaxNameLength])
	}
	return name
}
