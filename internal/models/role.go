package models

// Role is a secret game role, fixed for the duration of a game
type Role string

const (
	RoleMafia     Role = "mafia"
	RoleDoctor    Role = "doctor"
	RoleDetective Role = "detective"
	RoleVillager  Role = "villager"
)

// Team identifies a winning side
type Team string

const (
	TeamTown  Team = "town"
	TeamMafia Team = "mafia"
)
