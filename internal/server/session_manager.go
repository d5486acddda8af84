package server

import (
	"errors"
	"sync"

	"pong-server/internal/pong"
)

var ErrRoomFull = errors.New("ROOM_FULL: 2 players already connected")

// SessionRegistry binds at most one session to each side.
type SessionRegistry struct {
	slots map[pong.Side]*Session
	mu    sync.RWMutex
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		slots: make(map[pong.Side]*Session, len(pong.Sides)),
	}
}

// Register assigns the first free side in order player1, player2.
func (r *SessionRegistry) Register(s *Session) (pong.Side, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, side := range pong.Sides {
		if r.slots[side] == s {
			return side, nil
		}
	}

	for _, side := range pong.Sides {
		if r.slots[side] == nil {
			r.slots[side] = s
			s.Side = side
			return side, nil
		}
	}

	return "", ErrRoomFull
}

// Unregister frees the slot held by s. It reports false if s held none.
func (r *SessionRegistry) Unregister(s *Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, side := range pong.Sides {
		if r.slots[side] == s {
			delete(r.slots, side)
			return true
		}
	}
	return false
}

// Owns reports whether s is the session bound to side.
func (r *SessionRegistry) Owns(s *Session, side pong.Side) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return side.Valid() && r.slots[side] == s
}

// ApplyMove writes a paddle position on behalf of s. Moves for a side the
// session does not own are dropped. Rate and distance are not checked; the
// client is trusted with its own paddle.
func (r *SessionRegistry) ApplyMove(m *pong.Match, s *Session, side pong.Side, y float64) bool {
	if !r.Owns(s, side) {
		return false
	}
	return m.MovePaddle(side, y)
}

func (r *SessionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.slots)
}

// Sessions returns the registered sessions in side order.
func (r *SessionRegistry) Sessions() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := make([]*Session, 0, len(r.slots))
	for _, side := range pong.Sides {
		if s := r.slots[side]; s != nil {
			sessions = append(sessions, s)
		}
	}
	return sessions
}
