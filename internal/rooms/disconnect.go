package rooms

import (
	"log"
	"time"

	"github.com/gamehub4u/gamehub-server/internal/events"
)

// HandleDisconnect marks the client disconnected in every room where this
// connection was the live binding and starts the removal grace timer.
// Transient network loss is common in browsers; the grace window separates
// it from genuine departure.
func (s *Service) HandleDisconnect(connID, clientID string) {
	for _, room := range s.registry.Rooms() {
		room.Lock()
		player := room.FindPlayer(clientID)
		if player == nil || room.Conns[clientID] != connID {
			// stale connection, a newer one already rebound
			room.Unlock()
			continue
		}
		player.Connected = false
		player.DisconnectedAt = time.Now()
		room.Unlock()

		s.scheduleRemoval(room.Code, clientID)
		log.Printf("%s marked disconnected (grace %s) in %s", clientID, s.cfg.Grace, room.Code)
		s.broadcastRoom(room)
	}
}

// Attach rebinds a reconnecting client to its room, cancelling the grace
// timer and re-delivering private role and state if a game is live.
// Idempotent; the role is never regenerated.
func (s *Service) Attach(connID, clientID, code string) {
	room, ok := s.registry.Get(code)
	if !ok || clientID == "" {
		return
	}

	room.Lock()
	player := room.FindPlayer(clientID)
	if player == nil {
		room.Unlock()
		return
	}
	s.rebindLocked(room, player, connID)
	room.Unlock()

	s.broadcastRoom(room)
	s.broadcastGameState(room)
}

// scheduleRemoval arms the single-shot grace timer for (room, client),
// replacing any pre-existing timer to guard against duplicate loss events
func (s *Service) scheduleRemoval(code, clientID string) {
	key := timerKey{code: code, clientID: clientID}

	s.timersMu.Lock()
	if timer, ok := s.timers[key]; ok {
		timer.Stop()
	}
	s.timers[key] = time.AfterFunc(s.cfg.Grace, func() {
		s.expireDisconnect(code, clientID)
	})
	s.timersMu.Unlock()
}

// cancelRemoval stops a pending grace timer, if any
func (s *Service) cancelRemoval(code, clientID string) {
	key := timerKey{code: code, clientID: clientID}

	s.timersMu.Lock()
	if timer, ok := s.timers[key]; ok {
		timer.Stop()
		delete(s.timers, key)
	}
	s.timersMu.Unlock()
}

// expireDisconnect fires when the grace window elapses. It tolerates the
// room or player being gone already and the player having reconnected.
func (s *Service) expireDisconnect(code, clientID string) {
	s.timersMu.Lock()
	delete(s.timers, timerKey{code: code, clientID: clientID})
	s.timersMu.Unlock()

	room, ok := s.registry.Get(code)
	if !ok {
		return
	}

	room.Lock()
	player := room.FindPlayer(clientID)
	if player == nil || player.Connected {
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

	log.Printf("%s removed after grace from %s", name, code)

	if empty {
		s.destroyRoom(code)
		return
	}
	s.sender.Broadcast(code, events.EventPlayerLeft, events.PlayerLeft{ClientID: clientID, PlayerName: name})
	s.broadcastRoom(room)
}
