package mafia

import (
	"github.com/gamehub4u/gamehub-server/internal/models"
)

// Start creates a fresh game state for the given roster, assigning shuffled
// roles positionally in roster order. Every player starts alive; the game
// opens in the role-announcement phase and the host advances it to night.
func Start(players []*models.Player) *models.GameState {
	roles := RolePlan(len(players))

	gs := &models.GameState{
		Started:        true,
		Phase:          models.PhaseRole,
		Round:          1,
		Names:          make(map[string]string, len(players)),
		Roles:          make(map[string]models.Role, len(players)),
		Alive:          make(map[string]bool, len(players)),
		Kills:          models.NewActionSet(),
		Saves:          models.NewActionSet(),
		Checks:         models.NewActionSet(),
		Votes:          models.NewActionSet(),
		Investigations: make(map[string]*models.InvestigationResult),
	}
	for i, p := range players {
		gs.Order = append(gs.Order, p.ClientID)
		gs.Names[p.ClientID] = p.Name
		gs.Roles[p.ClientID] = roles[i]
		gs.Alive[p.ClientID] = true
	}
	return gs
}

// SubmitNightAction buffers a role action during the night phase. Invalid
// submissions (wrong phase, dead or unknown actor/target, role mismatch)
// are silently ignored so error responses cannot leak hidden state; the
// return value only tells the caller whether a broadcast is due.
// Last write per actor wins. A detective's check also records the
// investigation result immediately.
func SubmitNightAction(gs *models.GameState, actorID string, kind ActionKind, targetID string) bool {
	if gs == nil || !gs.Started || gs.Winner != "" {
		return false
	}
	if gs.Phase != models.PhaseNight {
		return false
	}
	if !gs.Alive[actorID] || !gs.Alive[targetID] {
		return false
	}

	switch {
	case kind == ActionKill && gs.Roles[actorID] == models.RoleMafia:
		gs.Kills.Set(actorID, targetID)
	case kind == ActionSave && gs.Roles[actorID] == models.RoleDoctor:
		gs.Saves.Set(actorID, targetID)
	case kind == ActionCheck && gs.Roles[actorID] == models.RoleDetective:
		gs.Checks.Set(actorID, targetID)
		gs.Investigations[actorID] = &models.InvestigationResult{
			TargetID: targetID,
			IsMafia:  gs.Roles[targetID] == models.RoleMafia,
		}
	default:
		return false
	}
	return true
}

// SubmitVote buffers a day vote. Any living player may vote for any living
// player, mafia included; overwrites are allowed.
func SubmitVote(gs *models.GameState, actorID, targetID string) bool {
	if gs == nil || !gs.Started || gs.Winner != "" {
		return false
	}
	if gs.Phase != models.PhaseDay {
		return false
	}
	if !gs.Alive[actorID] || !gs.Alive[targetID] {
		return false
	}
	gs.Votes.Set(actorID, targetID)
	return true
}

// Advance resolves the current phase: role -> night -> day -> night -> ...
// Win evaluation runs after every resolution; once a winner is set the
// engine is terminal and Advance becomes a no-op.
func Advance(gs *models.GameState) bool {
	if gs == nil || !gs.Started || gs.Winner != "" {
		return false
	}

	switch gs.Phase {
	case models.PhaseRole:
		gs.Phase = models.PhaseNight
		gs.LastResult = &models.LastResult{Phase: "nightStart", Round: gs.Round}

	case models.PhaseNight:
		var killed *string
		if target, ok := tally(gs.Kills.Targets()); ok && !gs.Saves.HasTarget(target) {
			gs.Alive[target] = false
			killed = &target
		}
		gs.LastResult = &models.LastResult{
			Phase:  "nightEnd",
			Killed: killed,
			Saved:  gs.Saves.TargetSet(),
		}
		gs.Kills = models.NewActionSet()
		gs.Saves = models.NewActionSet()
		gs.Checks = models.NewActionSet()
		gs.Phase = models.PhaseDay

	case models.PhaseDay:
		var executed *string
		if target, ok := tally(gs.Votes.Targets()); ok {
			gs.Alive[target] = false
			executed = &target
		}
		gs.LastResult = &models.LastResult{
			Phase:      "dayEnd",
			Executed:   executed,
			VotesCount: gs.Votes.Len(),
		}
		gs.Votes = models.NewActionSet()
		gs.Round++
		gs.Phase = models.PhaseNight
	}

	gs.Winner = winner(gs)
	return true
}

// tally returns the target with the most entries. Ties break to the first
// target reaching the top count in submission order (first-past-the-post).
func tally(targets []string) (string, bool) {
	counts := make(map[string]int)
	best := ""
	bestCount := 0
	for _, t := range targets {
		counts[t]++
		if counts[t] > bestCount {
			bestCount = counts[t]
			best = t
		}
	}
	return best, bestCount > 0
}

// winner evaluates the win condition: town wins when no mafia remain,
// mafia wins on reaching parity with the town.
func winner(gs *models.GameState) models.Team {
	mafiaAlive, townAlive := 0, 0
	for id, alive := range gs.Alive {
		if !alive {
			continue
		}
		if gs.Roles[id] == models.RoleMafia {
			mafiaAlive++
		} else {
			townAlive++
		}
	}
	if mafiaAlive == 0 {
		return models.TeamTown
	}
	if mafiaAlive >= townAlive {
		return models.TeamMafia
	}
	return ""
}
