package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"pong-server/internal/pong"
)

type Server struct {
	port             int
	registry         *SessionRegistry
	gateway          *BroadcastGateway
	loop             *SimulationLoop
	connectionHealth *ConnectionHealth
}

func NewServer(cfg Config) (*Server, *http.Server) {
	registry := NewSessionRegistry()
	gateway := NewBroadcastGateway(registry)
	match := pong.NewMatch(pong.DefaultRules)

	NewServer := &Server{
		port:             cfg.Port,
		registry:         registry,
		gateway:          gateway,
		loop:             NewSimulationLoop(match, registry, gateway),
		connectionHealth: NewConnectionHealth(),
	}

	// Declare Server config
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", NewServer.port),
		Handler:           NewServer.RegisterRoutes(),
		IdleTimeout:       time.Minute,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	return NewServer, server
}

// Run drives the simulation loop until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.loop.Run(ctx)
}

// Shutdown closes every player connection with a going-away status.
func (s *Server) Shutdown(ctx context.Context) error {
	sessions := s.registry.Sessions()
	log.Infof("Closing %d player connection(s)", len(sessions))

	var wg sync.WaitGroup
	for _, session := range sessions {
		wg.Add(1)
		go func(session *Session) {
			defer wg.Done()
			session.Close(websocket.StatusGoingAway, "Server shutting down")
		}(session)
	}

	closed := make(chan struct{})
	go func() {
		wg.Wait()
		close(closed)
	}()

	select {
	case <-closed:
		return nil
	case <-ctx.Done():
		for _, session := range sessions {
			session.CloseNow()
		}
		return fmt.Errorf("closing sessions: %w", ctx.Err())
	}
}
