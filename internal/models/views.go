package models

// PlayerInfo is the broadcast-safe view of a single player
type PlayerInfo struct {
	ClientID  string `json:"clientId"`
	Name      string `json:"name"`
	IsHost    bool   `json:"isHost"`
	IsReady   bool   `json:"isReady"`
	Connected bool   `json:"connected"`
}

// RoomInfo is the roster snapshot broadcast to every room member
type RoomInfo struct {
	Code         string       `json:"code"`
	HostClientID string       `json:"host"`
	PlayerCount  int          `json:"playerCount"`
	Players      []PlayerInfo `json:"players"`
	Status       RoomStatus   `json:"status"`
	SelectedGame string       `json:"selectedGame"`
	CreatedAt    int64        `json:"createdAt"`
}

// AlivePlayer is a roster entry in the game view: name and liveness, no role
type AlivePlayer struct {
	ClientID string `json:"clientId"`
	Name     string `json:"name"`
	Alive    bool   `json:"alive"`
}

// GameView is the per-viewer game snapshot. MyRole and InvestigationResult
// are set for exactly the viewing player; everything else is public.
type GameView struct {
	RoomCode            string               `json:"roomCode"`
	Started             bool                 `json:"started"`
	Phase               GamePhase            `json:"phase"`
	Round               int                  `json:"round"`
	Alive               []AlivePlayer        `json:"alive"`
	LastResult          *LastResult          `json:"lastResult"`
	WinnerTeam          *Team                `json:"winnerTeam"`
	MyRole              *Role                `json:"myRole"`
	InvestigationResult *InvestigationResult `json:"investigationResult"`
	CanAdvance          bool                 `json:"canAdvance"`
}
