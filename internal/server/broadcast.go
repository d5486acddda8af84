package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/coder/websocket"

	"pong-server/internal/pong"
)

// BroadcastGateway serializes outbound messages and fans them out to the
// registered sessions.
type BroadcastGateway struct {
	registry *SessionRegistry
}

func NewBroadcastGateway(registry *SessionRegistry) *BroadcastGateway {
	return &BroadcastGateway{registry: registry}
}

// Broadcast sends the full state to every open session and returns how many
// sessions accepted the frame. Closed sessions are skipped, full queues drop
// the frame.
func (g *BroadcastGateway) Broadcast(state pong.State) int {
	frame, err := json.Marshal(newUpdateState(state))
	if err != nil {
		log.Errorf("Failed to encode game state: %v", err)
		return 0
	}

	delivered := 0
	for _, s := range g.registry.Sessions() {
		if !s.IsOpen() {
			continue
		}
		if !s.enqueue(frame) {
			log.Debugf("Dropping state frame, send queue full for %s (%s)", s.ID, s.Side)
			continue
		}
		delivered++
	}
	return delivered
}

// Send queues a single message for one session.
func (g *BroadcastGateway) Send(s *Session, msg any) error {
	frame, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}
	if !s.enqueue(frame) {
		return fmt.Errorf("session %s not accepting messages", s.ID)
	}
	return nil
}

// Reject tells a connection the room is full and closes it. The session
// never gets a writer, so the frame is written inline.
func (g *BroadcastGateway) Reject(ctx context.Context, s *Session) {
	frame, err := json.Marshal(newRoomFull())
	if err == nil {
		ctx, cancel := context.WithTimeout(ctx, writeWait)
		err = s.conn.Write(ctx, websocket.MessageText, frame)
		cancel()
	}
	if err != nil {
		log.Debugf("Failed to send roomFull to %s: %v", s.ID, err)
	}
	s.Close(websocket.StatusTryAgainLater, "room full")
}
