package server

import (
	"fmt"
	"sync"
	"time"
)

// idleTimeout is how long a session may go without sending anything before
// health reporting counts it as inactive.
const idleTimeout = 30 * time.Second

// ConnectionHealth tracks last inbound activity for each connection.
type ConnectionHealth struct {
	lastActivity map[string]time.Time // connectionID -> last message time
	mu           sync.RWMutex
}

func NewConnectionHealth() *ConnectionHealth {
	return &ConnectionHealth{
		lastActivity: make(map[string]time.Time),
	}
}

// UpdateActivity records that a connection is active. Called on every frame
// received.
func (h *ConnectionHealth) UpdateActivity(connectionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastActivity[connectionID] = time.Now()
}

// GetInactiveConnections returns all connections inactive longer than timeout.
func (h *ConnectionHealth) GetInactiveConnections(timeout time.Duration) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	inactive := make([]string, 0)
	now := time.Now()

	for connID, lastActivity := range h.lastActivity {
		if now.Sub(lastActivity) > timeout {
			inactive = append(inactive, connID)
		}
	}

	return inactive
}

// RemoveConnection removes health tracking for a connection.
func (h *ConnectionHealth) RemoveConnection(connectionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.lastActivity, connectionID)
}

// ValidateMessageType checks if a client message type is recognized.
func ValidateMessageType(msgType string) error {
	switch msgType {
	case TypeMovePaddle, TypePlayAgain:
		return nil
	}
	return fmt.Errorf("INVALID_MESSAGE_TYPE: Unknown message type '%s'", msgType)
}
