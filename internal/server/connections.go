package server

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"pong-server/internal/pong"
)

const (
	sendQueueSize = 64
	writeWait     = 2 * time.Second
)

// Conn is the part of *websocket.Conn a session needs.
type Conn interface {
	Write(ctx context.Context, typ websocket.MessageType, p []byte) error
	Close(code websocket.StatusCode, reason string) error
	CloseNow() error
}

// Session is one player connection. Outbound frames are queued and written
// by a dedicated goroutine so the simulation loop never waits on the network.
type Session struct {
	ID   string
	Side pong.Side // set by the registry on a successful register

	conn      Conn
	send      chan []byte
	done      chan struct{}
	open      atomic.Bool
	closeOnce sync.Once
	doneOnce  sync.Once
}

func NewSession(conn Conn) *Session {
	s := &Session{
		ID:   uuid.New().String(),
		conn: conn,
		send: make(chan []byte, sendQueueSize),
		done: make(chan struct{}),
	}
	s.open.Store(true)
	return s
}

// IsOpen reports whether frames can still be delivered to the session.
func (s *Session) IsOpen() bool {
	return s.open.Load()
}

// enqueue hands a frame to the writer without blocking. It returns false if
// the session is closed or its queue is full.
func (s *Session) enqueue(frame []byte) bool {
	if !s.IsOpen() {
		return false
	}
	select {
	case s.send <- frame:
		return true
	default:
		return false
	}
}

// writePump drains the send queue until the session closes or a write fails.
func (s *Session) writePump() {
	for {
		select {
		case <-s.done:
			return
		case frame := <-s.send:
			if err := s.write(frame); err != nil {
				log.Debugf("Write to %s failed: %v", s.ID, err)
				s.Close(websocket.StatusInternalError, "write failed")
				return
			}
		}
	}
}

func (s *Session) write(frame []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeWait)
	defer cancel()
	return s.conn.Write(ctx, websocket.MessageText, frame)
}

// Close marks the session closed and closes the underlying socket. Only the
// first call has any effect.
func (s *Session) Close(code websocket.StatusCode, reason string) {
	s.closeOnce.Do(func() {
		s.stop()
		if err := s.conn.Close(code, reason); err != nil {
			log.Tracef("Close %s: %v", s.ID, err)
		}
	})
}

// CloseNow drops the socket without a close handshake. It also unblocks a
// Close still waiting on an unresponsive peer.
func (s *Session) CloseNow() {
	s.stop()
	if err := s.conn.CloseNow(); err != nil {
		log.Tracef("CloseNow %s: %v", s.ID, err)
	}
}

func (s *Session) stop() {
	s.doneOnce.Do(func() {
		s.open.Store(false)
		close(s.done)
	})
}
