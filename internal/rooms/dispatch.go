package rooms

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"

	"github.com/gamehub4u/gamehub-server/internal/events"
)

var debug = os.Getenv("DEBUG") != ""

// HandleMessage decodes one inbound frame and routes it to the matching
// operation. Unknown types and malformed payloads are dropped at this
// boundary; they never reach the state machine.
func (s *Service) HandleMessage(connID, clientID string, raw []byte) {
	var env events.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("dropping malformed frame from conn %s: %v", connID, err)
		return
	}
	if debug {
		log.Printf("event %s from conn=%s client=%s", env.Type, connID, clientID)
	}

	switch env.Type {
	case events.TypeCreateRoom:
		var p events.CreateRoom
		if !decode(env, &p) {
			return
		}
		s.CreateRoom(connID, identity(p.ClientID, clientID), p.Name)

	case events.TypeCheckRoom:
		var p events.CheckRoom
		if !decode(env, &p) {
			return
		}
		s.CheckRoom(connID, normCode(p.RoomCode))

	case events.TypeJoinRoom:
		var p events.JoinRoom
		if !decode(env, &p) {
			return
		}
		// join errors are reported by Join itself
		_ = s.Join(connID, identity(p.ClientID, clientID), normCode(p.RoomCode), p.Name)

	case events.TypeSetReady:
		var p events.SetReady
		if !decode(env, &p) {
			return
		}
		s.SetReady(clientID, normCode(p.RoomCode), p.IsReady)

	case events.TypeAttach:
		var p events.Attach
		if !decode(env, &p) {
			return
		}
		s.Attach(connID, identity(p.ClientID, clientID), normCode(p.RoomCode))

	case events.TypeLeaveRoom:
		var p events.LeaveRoom
		if !decode(env, &p) {
			return
		}
		s.Leave(connID, clientID, normCode(p.RoomCode))

	case events.TypeSetGame:
		var p events.SetGame
		if !decode(env, &p) {
			return
		}
		if err := s.SetSelectedGame(clientID, normCode(p.RoomCode), p.GameID); errors.Is(err, ErrNotAuthorized) {
			s.sender.SendTo(connID, events.EventRoomError, events.ErrorMessage{Message: "Only the host can select the game"})
		}

	case events.TypeStartGame:
		var p events.StartGame
		if !decode(env, &p) {
			return
		}
		switch err := s.StartGame(clientID, normCode(p.RoomCode)); {
		case errors.Is(err, ErrRoomNotFound):
			s.sender.SendTo(connID, events.EventGameError, events.ErrorMessage{Message: "Room not found"})
		case errors.Is(err, ErrNotAuthorized):
			s.sender.SendTo(connID, events.EventGameError, events.ErrorMessage{Message: "Only the host can start the game"})
		case errors.Is(err, ErrInsufficientPlayers):
			s.sender.SendTo(connID, events.EventGameError, events.ErrorMessage{Message: "Not enough players to start"})
		}

	case events.TypeGetState:
		var p events.GetState
		if !decode(env, &p) {
			return
		}
		s.GetState(connID, identity(p.ClientID, clientID), normCode(p.RoomCode))

	case events.TypeNightAction:
		var p events.NightAction
		if !decode(env, &p) {
			return
		}
		s.NightAction(identity(p.ClientID, clientID), normCode(p.RoomCode), p.Action, p.TargetID)

	case events.TypeVote:
		var p events.Vote
		if !decode(env, &p) {
			return
		}
		s.Vote(identity(p.ClientID, clientID), normCode(p.RoomCode), p.TargetID)

	case events.TypeAdvance:
		var p events.Advance
		if !decode(env, &p) {
			return
		}
		s.AdvancePhase(clientID, normCode(p.RoomCode))

	default:
		if debug {
			log.Printf("unknown event type %q from conn %s", env.Type, connID)
		}
	}
}

func decode(env events.Envelope, out any) bool {
	if len(env.Data) == 0 {
		return false
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		log.Printf("dropping malformed %s payload: %v", env.Type, err)
		return false
	}
	return true
}

// identity prefers the payload-supplied client ID over connection metadata
func identity(payloadID, connClientID string) string {
	if payloadID != "" {
		return payloadID
	}
	return connClientID
}

func normCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
