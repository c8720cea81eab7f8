package events

import "encoding/json"

// Envelope is the wire frame for every client request: a type tag plus the
// payload for that type. Malformed payloads are rejected at the boundary
// before they reach the state machine.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Inbound message types
const (
	TypeCreateRoom  = "host:createRoom"
	TypeCheckRoom   = "room:check"
	TypeJoinRoom    = "player:join"
	TypeSetReady    = "player:ready"
	TypeAttach      = "player:attach"
	TypeLeaveRoom   = "player:leave"
	TypeSetGame     = "room:setGame"
	TypeStartGame   = "game:start"
	TypeGetState    = "mafia:getState"
	TypeNightAction = "mafia:nightAction"
	TypeVote        = "mafia:vote"
	TypeAdvance     = "mafia:next"
)

// Outbound event names
const (
	EventRoomCreated = "room:created"
	EventCheckResult = "room:checkResult"
	EventRoomUpdate  = "room:update"
	EventPlayers     = "players:update"
	EventAllReady    = "room:allReady"
	EventPlayerJoin  = "player:joined"
	EventPlayerLeft  = "player:left"
	EventJoinError   = "join:error"
	EventRoomError   = "room:error"
	EventGameStarted = "game:started"
	EventGameError   = "game:error"
	EventMafiaState  = "mafia:state"
	EventMafiaRole   = "mafia:role"
)

// CreateRoom creates a room with the sender as host
type CreateRoom struct {
	Name     string `json:"name"`
	ClientID string `json:"clientId"`
}

// CheckRoom asks whether a room code exists
type CheckRoom struct {
	RoomCode string `json:"roomCode"`
}

// JoinRoom adds the sender to a room, or rebinds a returning client
type JoinRoom struct {
	RoomCode string `json:"roomCode"`
	Name     string `json:"name"`
	ClientID string `json:"clientId"`
}

// SetReady toggles the sender's ready flag
type SetReady struct {
	RoomCode string `json:"roomCode"`
	IsReady  bool   `json:"isReady"`
}

// Attach rebinds a reconnecting client to its room
type Attach struct {
	RoomCode string `json:"roomCode"`
	ClientID string `json:"clientId"`
}

// LeaveRoom removes the sender immediately, with no grace period
type LeaveRoom struct {
	RoomCode string `json:"roomCode"`
}

// SetGame selects the game to play (host only)
type SetGame struct {
	RoomCode string `json:"roomCode"`
	GameID   string `json:"gameId"`
}

// StartGame begins the selected game (host only)
type StartGame struct {
	RoomCode string `json:"roomCode"`
}

// GetState requests a personalized game snapshot
type GetState struct {
	RoomCode string `json:"roomCode"`
	ClientID string `json:"clientId"`
}

// NightAction submits a kill, save or check during the night phase
type NightAction struct {
	RoomCode string `json:"roomCode"`
	ClientID string `json:"clientId"`
	Action   string `json:"action"`
	TargetID string `json:"targetId"`
}

// Vote submits a day-phase vote
type Vote struct {
	RoomCode string `json:"roomCode"`
	ClientID string `json:"clientId"`
	TargetID string `json:"targetId"`
}

// Advance asks to resolve the current phase (host only)
type Advance struct {
	RoomCode string `json:"roomCode"`
}

// RoomCreated is the response to CreateRoom
type RoomCreated struct {
	RoomCode string `json:"roomCode"`
}

// AllReady announces that every player in the room is ready
type AllReady struct {
	RoomCode string `json:"roomCode"`
}

// CheckResult is the response to CheckRoom
type CheckResult struct {
	Exists   bool   `json:"exists"`
	RoomCode string `json:"roomCode"`
}

// GameStarted announces a started game to the room
type GameStarted struct {
	RoomCode string `json:"roomCode"`
	GameID   string `json:"gameId"`
}

// RoleAssignment privately delivers a player's secret role
type RoleAssignment struct {
	Role string `json:"role"`
}

// PlayerLeft announces a departed player
type PlayerLeft struct {
	ClientID   string `json:"clientId"`
	PlayerName string `json:"playerName"`
}

// ErrorMessage carries a user-facing failure
type ErrorMessage struct {
	Message string `json:"message"`
}
