package server

import "pong-server/internal/pong"

// ============================================================================
// ASSIGN PLAYER (assignPlayer)
// ============================================================================
type AssignPlayerMessage struct {
	Type     string    `json:"type"`
	PlayerID pong.Side `json:"playerId"`
}

func newAssignPlayer(side pong.Side) AssignPlayerMessage {
	return AssignPlayerMessage{Type: TypeAssignPlayer, PlayerID: side}
}

// ============================================================================
// ROOM FULL (roomFull)
// ============================================================================
type RoomFullMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func newRoomFull() RoomFullMessage {
	return RoomFullMessage{Type: TypeRoomFull, Message: "2 players already connected."}
}

// ============================================================================
// UPDATE STATE (updateState broadcast)
// ============================================================================
type UpdateStateMessage struct {
	Type      string     `json:"type"`
	GameState pong.State `json:"gameState"`
}

func newUpdateState(state pong.State) UpdateStateMessage {
	return UpdateStateMessage{Type: TypeUpdateState, GameState: state}
}

// ============================================================================
// HEALTH (GET /health)
// ============================================================================
type HealthResponse struct {
	Status           string `json:"status"`
	Match            string `json:"match"`
	Sessions         int    `json:"sessions"`
	InactiveSessions int    `json:"inactiveSessions"`
	Ticks            uint64 `json:"ticks"`
}
