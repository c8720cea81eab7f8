package mafia

import (
	"testing"
	"time"

	"github.com/gamehub4u/gamehub-server/internal/models"
)

func roster(names ...string) []*models.Player {
	players := make([]*models.Player, 0, len(names))
	for _, name := range names {
		players = append(players, &models.Player{
			ClientID:  "id-" + name,
			Name:      name,
			JoinedAt:  time.Now(),
			Connected: true,
		})
	}
	return players
}

// testState builds a started night-phase game with fixed roles, skipping
// the shuffle so tests can target specific players
func testState(roles map[string]models.Role) *models.GameState {
	gs := &models.GameState{
		Started:        true,
		Phase:          models.PhaseNight,
		Round:          1,
		Names:          make(map[string]string),
		Roles:          roles,
		Alive:          make(map[string]bool),
		Kills:          models.NewActionSet(),
		Saves:          models.NewActionSet(),
		Checks:         models.NewActionSet(),
		Votes:          models.NewActionSet(),
		Investigations: make(map[string]*models.InvestigationResult),
	}
	for id := range roles {
		gs.Order = append(gs.Order, id)
		gs.Names[id] = id
		gs.Alive[id] = true
	}
	return gs
}

func countRoles(roles []models.Role) map[models.Role]int {
	counts := make(map[models.Role]int)
	for _, r := range roles {
		counts[r]++
	}
	return counts
}

func TestRolePlan(t *testing.T) {
	tests := []struct {
		n, mafia, doctors, detectives, villagers int
	}{
		{3, 1, 0, 0, 2},
		{4, 1, 0, 0, 3},
		{5, 1, 1, 1, 2},
		{6, 2, 1, 1, 2},
		{9, 3, 1, 1, 4},
		{12, 4, 1, 1, 6},
	}
	for _, tt := range tests {
		roles := RolePlan(tt.n)
		if len(roles) != tt.n {
			t.Fatalf("RolePlan(%d): got %d roles", tt.n, len(roles))
		}
		counts := countRoles(roles)
		if counts[models.RoleMafia] != tt.mafia {
			t.Errorf("RolePlan(%d): mafia = %d, want %d", tt.n, counts[models.RoleMafia], tt.mafia)
		}
		if counts[models.RoleDoctor] != tt.doctors {
			t.Errorf("RolePlan(%d): doctors = %d, want %d", tt.n, counts[models.RoleDoctor], tt.doctors)
		}
		if counts[models.RoleDetective] != tt.detectives {
			t.Errorf("RolePlan(%d): detectives = %d, want %d", tt.n, counts[models.RoleDetective], tt.detectives)
		}
		if counts[models.RoleVillager] != tt.villagers {
			t.Errorf("RolePlan(%d): villagers = %d, want %d", tt.n, counts[models.RoleVillager], tt.villagers)
		}
	}
}

func TestStartAssignsEveryPlayerExactlyOnce(t *testing.T) {
	players := roster("a", "b", "c", "d", "e")
	gs := Start(players)

	if !gs.Started || gs.Phase != models.PhaseRole || gs.Round != 1 {
		t.Fatalf("unexpected initial state: %+v", gs)
	}
	if len(gs.Roles) != 5 || len(gs.Alive) != 5 || len(gs.Order) != 5 {
		t.Fatalf("maps not sized to roster: roles=%d alive=%d order=%d",
			len(gs.Roles), len(gs.Alive), len(gs.Order))
	}
	for _, p := range players {
		if _, ok := gs.Roles[p.ClientID]; !ok {
			t.Errorf("player %s has no role", p.ClientID)
		}
		if !gs.Alive[p.ClientID] {
			t.Errorf("player %s not alive at start", p.ClientID)
		}
	}
	if gs.Winner != "" {
		t.Errorf("winner set at start: %s", gs.Winner)
	}
}

func TestNightSaveNegatesKill(t *testing.T) {
	gs := testState(map[string]models.Role{
		"m": models.RoleMafia, "d": models.RoleDoctor, "det": models.RoleDetective,
		"v1": models.RoleVillager, "v2": models.RoleVillager,
	})

	if !SubmitNightAction(gs, "m", ActionKill, "v1") {
		t.Fatal("kill rejected")
	}
	if !SubmitNightAction(gs, "d", ActionSave, "v1") {
		t.Fatal("save rejected")
	}
	Advance(gs)

	if gs.Phase != models.PhaseDay {
		t.Fatalf("phase = %s, want day", gs.Phase)
	}
	if gs.LastResult == nil || gs.LastResult.Phase != "nightEnd" {
		t.Fatalf("lastResult = %+v", gs.LastResult)
	}
	if gs.LastResult.Killed != nil {
		t.Errorf("killed = %s, want nil (saved)", *gs.LastResult.Killed)
	}
	if !gs.Alive["v1"] {
		t.Error("saved player marked dead")
	}
	if gs.Kills.Len() != 0 || gs.Saves.Len() != 0 || gs.Checks.Len() != 0 {
		t.Error("night buffers not cleared after resolution")
	}
}

func TestNightKillStands(t *testing.T) {
	gs := testState(map[string]models.Role{
		"m": models.RoleMafia, "d": models.RoleDoctor,
		"v1": models.RoleVillager, "v2": models.RoleVillager, "v3": models.RoleVillager,
	})

	SubmitNightAction(gs, "m", ActionKill, "v1")
	SubmitNightAction(gs, "d", ActionSave, "v2")
	Advance(gs)

	if gs.LastResult.Killed == nil || *gs.LastResult.Killed != "v1" {
		t.Fatalf("killed = %v, want v1", gs.LastResult.Killed)
	}
	if gs.Alive["v1"] {
		t.Error("killed player still alive")
	}
}

func TestNightActionValidation(t *testing.T) {
	gs := testState(map[string]models.Role{
		"m": models.RoleMafia, "d": models.RoleDoctor, "v1": models.RoleVillager,
	})

	if SubmitNightAction(gs, "v1", ActionKill, "m") {
		t.Error("villager kill accepted")
	}
	if SubmitNightAction(gs, "m", ActionSave, "v1") {
		t.Error("mafia save accepted")
	}
	if SubmitNightAction(gs, "m", ActionKill, "ghost") {
		t.Error("kill on unknown target accepted")
	}
	gs.Alive["v1"] = false
	if SubmitNightAction(gs, "m", ActionKill, "v1") {
		t.Error("kill on dead target accepted")
	}
	gs.Alive["v1"] = true

	gs.Phase = models.PhaseDay
	if SubmitNightAction(gs, "m", ActionKill, "v1") {
		t.Error("night action accepted during day")
	}
}

func TestLastWritePerActorWins(t *testing.T) {
	gs := testState(map[string]models.Role{
		"m": models.RoleMafia, "v1": models.RoleVillager, "v2": models.RoleVillager,
	})

	SubmitNightAction(gs, "m", ActionKill, "v1")
	SubmitNightAction(gs, "m", ActionKill, "v2")
	Advance(gs)

	if gs.LastResult.Killed == nil || *gs.LastResult.Killed != "v2" {
		t.Fatalf("killed = %v, want v2 (last write)", gs.LastResult.Killed)
	}
	if !gs.Alive["v1"] {
		t.Error("overwritten target died")
	}
}

func TestDetectiveCheckImmediate(t *testing.T) {
	gs := testState(map[string]models.Role{
		"m": models.RoleMafia, "det": models.RoleDetective, "v1": models.RoleVillager,
	})

	if !SubmitNightAction(gs, "det", ActionCheck, "m") {
		t.Fatal("check rejected")
	}
	result := gs.Investigations["det"]
	if result == nil || result.TargetID != "m" || !result.IsMafia {
		t.Fatalf("investigation = %+v, want m/isMafia", result)
	}

	// checks are unlimited; a second one overwrites the stored result
	SubmitNightAction(gs, "det", ActionCheck, "v1")
	result = gs.Investigations["det"]
	if result == nil || result.TargetID != "v1" || result.IsMafia {
		t.Fatalf("second investigation = %+v, want v1/not mafia", result)
	}
}

func TestDayVoteTieBreakDeterministic(t *testing.T) {
	build := func() *models.GameState {
		gs := testState(map[string]models.Role{
			"m": models.RoleMafia, "v1": models.RoleVillager,
			"v2": models.RoleVillager, "v3": models.RoleVillager,
		})
		gs.Phase = models.PhaseDay
		return gs
	}

	// equal counts break to the first target reaching the top count
	for i := 0; i < 5; i++ {
		gs := build()
		SubmitVote(gs, "v1", "m")
		SubmitVote(gs, "v2", "v3")
		Advance(gs)
		if gs.LastResult.Executed == nil || *gs.LastResult.Executed != "m" {
			t.Fatalf("run %d: executed = %v, want m", i, gs.LastResult.Executed)
		}
	}

	// a later target can still win by strictly exceeding the count
	gs := build()
	SubmitVote(gs, "v1", "m")
	SubmitVote(gs, "v2", "v3")
	SubmitVote(gs, "v3", "v3")
	Advance(gs)
	if gs.LastResult.Executed == nil || *gs.LastResult.Executed != "v3" {
		t.Fatalf("executed = %v, want v3", gs.LastResult.Executed)
	}
}

func TestDayResolutionNoVotesNoExecution(t *testing.T) {
	gs := testState(map[string]models.Role{
		"m": models.RoleMafia, "v1": models.RoleVillager, "v2": models.RoleVillager,
	})
	gs.Phase = models.PhaseDay

	Advance(gs)
	if gs.LastResult.Executed != nil {
		t.Errorf("executed = %v with no votes", gs.LastResult.Executed)
	}
	if gs.LastResult.VotesCount != 0 {
		t.Errorf("votesCount = %d", gs.LastResult.VotesCount)
	}
	if gs.Round != 2 || gs.Phase != models.PhaseNight {
		t.Errorf("round/phase = %d/%s, want 2/night", gs.Round, gs.Phase)
	}
}

func TestWinEvaluation(t *testing.T) {
	// 3 players, 1 mafia + 2 town: game continues
	gs := testState(map[string]models.Role{
		"m": models.RoleMafia, "v1": models.RoleVillager, "v2": models.RoleVillager,
	})
	Advance(gs) // empty night resolution
	if gs.Winner != "" {
		t.Fatalf("winner = %s, want none", gs.Winner)
	}

	// reduce town to 1 alive: mafia reaches parity
	gs.Alive["v1"] = false
	gs.Phase = models.PhaseDay
	Advance(gs)
	if gs.Winner != models.TeamMafia {
		t.Fatalf("winner = %s, want mafia", gs.Winner)
	}

	// mafia eliminated: town wins
	gs2 := testState(map[string]models.Role{
		"m": models.RoleMafia, "v1": models.RoleVillager, "v2": models.RoleVillager,
	})
	gs2.Phase = models.PhaseDay
	SubmitVote(gs2, "v1", "m")
	SubmitVote(gs2, "v2", "m")
	Advance(gs2)
	if gs2.Winner != models.TeamTown {
		t.Fatalf("winner = %s, want town", gs2.Winner)
	}
}

func TestTerminalStateRejectsMutations(t *testing.T) {
	gs := testState(map[string]models.Role{
		"m": models.RoleMafia, "v1": models.RoleVillager, "v2": models.RoleVillager,
	})
	gs.Winner = models.TeamMafia
	round := gs.Round

	if SubmitNightAction(gs, "m", ActionKill, "v1") {
		t.Error("night action accepted after game over")
	}
	gs.Phase = models.PhaseDay
	if SubmitVote(gs, "v1", "m") {
		t.Error("vote accepted after game over")
	}
	if Advance(gs) {
		t.Error("advance accepted after game over")
	}
	if gs.Round != round {
		t.Error("round mutated after game over")
	}
}

// Full scenario: 5 players, role -> night (kill saved) -> day (execution)
func TestFiveGameRoundTrip(t *testing.T) {
	gs := testState(map[string]models.Role{
		"m": models.RoleMafia, "d": models.RoleDoctor, "det": models.RoleDetective,
		"v1": models.RoleVillager, "v2": models.RoleVillager,
	})
	gs.Phase = models.PhaseRole

	Advance(gs)
	if gs.Phase != models.PhaseNight || gs.LastResult.Phase != "nightStart" {
		t.Fatalf("after role advance: phase=%s lastResult=%+v", gs.Phase, gs.LastResult)
	}

	SubmitNightAction(gs, "m", ActionKill, "v1")
	SubmitNightAction(gs, "d", ActionSave, "v1")
	Advance(gs)
	if gs.LastResult.Killed != nil {
		t.Fatal("saved player died")
	}
	if gs.Phase != models.PhaseDay {
		t.Fatalf("phase = %s, want day", gs.Phase)
	}

	SubmitVote(gs, "v1", "v2")
	SubmitVote(gs, "m", "v2")
	SubmitVote(gs, "det", "v2")
	Advance(gs)
	if gs.LastResult.Executed == nil || *gs.LastResult.Executed != "v2" {
		t.Fatalf("executed = %v, want v2", gs.LastResult.Executed)
	}
	if gs.LastResult.VotesCount != 3 {
		t.Errorf("votesCount = %d, want 3", gs.LastResult.VotesCount)
	}
	if gs.Round != 2 || gs.Phase != models.PhaseNight {
		t.Errorf("round/phase = %d/%s, want 2/night", gs.Round, gs.Phase)
	}
	if gs.Winner != "" {
		t.Errorf("winner = %s, want none (1 mafia vs 3 town)", gs.Winner)
	}
}
