package models

// GamePhase is one of the recurring stages the game cycles through
type GamePhase string

const (
	PhaseRole  GamePhase = "role"
	PhaseNight GamePhase = "night"
	PhaseDay   GamePhase = "day"
)

// InvestigationResult is revealed only to the detective who ran the check
type InvestigationResult struct {
	TargetID string `json:"targetId"`
	IsMafia  bool   `json:"isMafia"`
}

// LastResult summarizes the most recent phase resolution
type LastResult struct {
	Phase      string   `json:"phase"` // nightStart, nightEnd, dayEnd
	Round      int      `json:"round,omitempty"`
	Killed     *string  `json:"killed,omitempty"`
	Saved      []string `json:"saved,omitempty"`
	Executed   *string  `json:"executed,omitempty"`
	VotesCount int      `json:"votesCount,omitempty"`
}

// GameState is the mafia engine state for one room (ephemeral, destroyed
// with the room). Roles, Alive and Names are defined for exactly the player
// set frozen at game start; later joiners are roster-only.
type GameState struct {
	Started bool
	Phase   GamePhase
	Round   int

	Order []string // roster order at start, keys for the maps below
	Names map[string]string
	Roles map[string]Role
	Alive map[string]bool

	// per-round buffers, cleared at resolution
	Kills  *ActionSet
	Saves  *ActionSet
	Checks *ActionSet
	Votes  *ActionSet

	Investigations map[string]*InvestigationResult // detective clientID -> latest check

	LastResult *LastResult
	Winner     Team // empty while the game is running; terminal once set
}
