package server

import "pong-server/internal/pong"

// Message types on the wire. Every websocket text frame carries exactly one
// JSON object with a "type" field.
const (
	TypeAssignPlayer = "assignPlayer"
	TypeRoomFull     = "roomFull"
	TypeUpdateState  = "updateState"

	TypeMovePaddle = "movePaddle"
	TypePlayAgain  = "playAgain"
)

// ClientMessage is any frame sent by a browser. Fields not used by a given
// type are left empty.
type ClientMessage struct {
	Type     string    `json:"type"`
	PlayerID pong.Side `json:"playerId,omitempty"`
	Y        *float64  `json:"y,omitempty"`
}
