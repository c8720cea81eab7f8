package mafia

import (
	"github.com/gamehub4u/gamehub-server/internal/models"
)

// PublicState builds the broadcast-safe game view: phase, round, liveness
// roster and last result, never any role. Must be called with the room
// lock held.
func PublicState(room *models.Room) models.GameView {
	view := models.GameView{RoomCode: room.Code}
	gs := room.Game
	if gs == nil {
		return view
	}

	view.Started = gs.Started
	view.Phase = gs.Phase
	view.Round = gs.Round
	view.LastResult = gs.LastResult
	if gs.Winner != "" {
		w := gs.Winner
		view.WinnerTeam = &w
	}
	for _, id := range gs.Order {
		view.Alive = append(view.Alive, models.AlivePlayer{
			ClientID: id,
			Name:     gs.Names[id],
			Alive:    gs.Alive[id],
		})
	}
	return view
}

// StateFor personalizes the public view for one player, adding exactly the
// viewer's own role and investigation result. This is never computed as a
// shared payload; each connection gets its own. Must be called with the
// room lock held.
func StateFor(room *models.Room, clientID string) models.GameView {
	view := PublicState(room)
	view.CanAdvance = clientID != "" && clientID == room.HostClientID

	gs := room.Game
	if gs == nil {
		return view
	}
	if role, ok := gs.Roles[clientID]; ok {
		r := role
		view.MyRole = &r
	}
	if result, ok := gs.Investigations[clientID]; ok {
		view.InvestigationResult = result
	}
	return view
}
