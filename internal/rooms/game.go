package rooms

import (
	"log"

	"github.com/gamehub4u/gamehub-server/internal/events"
	"github.com/gamehub4u/gamehub-server/internal/mafia"
	"github.com/gamehub4u/gamehub-server/internal/models"
)

// StartGame begins the selected game: host only, minimum player count
// enforced. Roles are assigned once and delivered privately per connection.
func (s *Service) StartGame(clientID, code string) error {
	room, ok := s.registry.Get(code)
	if !ok {
		return ErrRoomNotFound
	}

	room.Lock()
	if clientID != room.HostClientID {
		room.Unlock()
		return ErrNotAuthorized
	}
	if len(room.Players) < s.cfg.MinPlayers {
		room.Unlock()
		return ErrInsufficientPlayers
	}

	room.Status = models.StatusPlaying
	gameID := room.SelectedGame
	if gameID == "" {
		gameID = DefaultGame
	}
	if gameID == DefaultGame {
		room.Game = mafia.Start(room.Players)
	}
	room.Unlock()

	log.Printf("Game started in room %s: %s", code, gameID)

	s.sender.Broadcast(code, events.EventGameStarted, events.GameStarted{RoomCode: code, GameID: gameID})
	s.broadcastGameState(room)
	return nil
}

// GetState sends the requester their personalized snapshot
func (s *Service) GetState(connID, clientID, code string) {
	room, ok := s.registry.Get(code)
	if !ok {
		return
	}

	room.RLock()
	view := mafia.StateFor(room, clientID)
	room.RUnlock()

	s.sender.SendTo(connID, events.EventMafiaState, view)
}

// NightAction buffers a night submission. Anything invalid is silently
// ignored; state is only re-broadcast when the action was accepted.
func (s *Service) NightAction(clientID, code, action, targetID string) {
	room, ok := s.registry.Get(code)
	if !ok {
		return
	}

	room.Lock()
	accepted := mafia.SubmitNightAction(room.Game, clientID, mafia.ActionKind(action), targetID)
	room.Unlock()

	if accepted {
		s.broadcastGameState(room)
	}
}

// Vote buffers a day vote under the same silent-ignore policy
func (s *Service) Vote(clientID, code, targetID string) {
	room, ok := s.registry.Get(code)
	if !ok {
		return
	}

	room.Lock()
	accepted := mafia.SubmitVote(room.Game, clientID, targetID)
	room.Unlock()

	if accepted {
		s.broadcastGameState(room)
	}
}

// AdvancePhase resolves the current phase. Host only; non-host callers are
// ignored without error so game progress timing stays hidden.
func (s *Service) AdvancePhase(clientID, code string) {
	room, ok := s.registry.Get(code)
	if !ok {
		return
	}

	room.Lock()
	if clientID != room.HostClientID {
		room.Unlock()
		return
	}
	advanced := mafia.Advance(room.Game)
	room.Unlock()

	if advanced {
		s.broadcastGameState(room)
	}
}

// broadcastGameState delivers one personalized payload per connected
// player, plus a private role re-send while a game is live. Payloads are
// collected under the lock and sent without it.
func (s *Service) broadcastGameState(room *models.Room) {
	type delivery struct {
		connID string
		state  models.GameView
		role   *models.Role
	}

	room.RLock()
	if room.Game == nil {
		room.RUnlock()
		return
	}
	started := room.Game.Started
	sends := make([]delivery, 0, len(room.Players))
	for _, p := range room.Players {
		connID, bound := room.Conns[p.ClientID]
		if !bound {
			continue
		}
		d := delivery{connID: connID, state: mafia.StateFor(room, p.ClientID)}
		if started {
			if role, ok := room.Game.Roles[p.ClientID]; ok {
				r := role
				d.role = &r
			}
		}
		sends = append(sends, d)
	}
	room.RUnlock()

	for _, d := range sends {
		s.sender.SendTo(d.connID, events.EventMafiaState, d.state)
		if d.role != nil {
			s.sender.SendTo(d.connID, events.EventMafiaRole, events.RoleAssignment{Role: string(*d.role)})
		}
	}
}
