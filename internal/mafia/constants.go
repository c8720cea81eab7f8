package mafia

const (
	// MinPlayers is the minimum number of players required to start a game
	MinPlayers = 5

	// MinPlayersDev lowers the start minimum for local testing
	MinPlayersDev = 3

	// SpecialistThreshold is the player count at which a doctor and a
	// detective join the role plan
	SpecialistThreshold = 5
)

// ActionKind is a night action submitted by a role
type ActionKind string

const (
	ActionKill  ActionKind = "kill"
	ActionSave  ActionKind = "save"
	ActionCheck ActionKind = "check"
)
