package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/coder/websocket"
)

func (s *Server) RegisterRoutes() http.Handler {
	mux := http.NewServeMux()

	// Register routes
	mux.HandleFunc("/", s.IndexHandler)

	mux.HandleFunc("/health", s.healthHandler)

	mux.HandleFunc("/websocket", s.websocketHandler)

	// Wrap the mux with CORS middleware
	return s.corsMiddleware(mux)
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type")
		w.Header().Set("Access-Control-Allow-Credentials", "false")

		// Handle preflight OPTIONS requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// IndexHandler accepts websocket upgrades on the root path so clients can
// connect to the bare host. Plain requests get a short JSON description.
func (s *Server) IndexHandler(w http.ResponseWriter, r *http.Request) {
	if strings.EqualFold(r.Header.Get("Upgrade"), "websocket") {
		s.websocketHandler(w, r)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":   "Pong server",
		"websocket": "/websocket",
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	status, err := s.loop.Status(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "down"})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:           "up",
		Match:            string(status.Match),
		Sessions:         status.Sessions,
		InactiveSessions: len(s.connectionHealth.GetInactiveConnections(idleTimeout)),
		Ticks:            status.Ticks,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	resp, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(resp); err != nil {
		log.Warnf("Failed to write response: %v", err)
	}
}

func (s *Server) websocketHandler(w http.ResponseWriter, r *http.Request) {
	socket, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Debugf("Websocket accept failed: %v", err)
		return
	}

	ctx := r.Context()
	session := NewSession(socket)
	log.Debugf("New connection: %s", session.ID)

	defer session.Close(websocket.StatusNormalClosure, "")
	defer s.loop.Unregister(session)
	defer s.connectionHealth.RemoveConnection(session.ID)

	if _, err := s.loop.Register(ctx, session); err != nil {
		if errors.Is(err, ErrRoomFull) {
			log.Infof("Rejecting %s: room full", session.ID)
			s.gateway.Reject(ctx, session)
			return
		}
		log.Warnf("Failed to register %s: %v", session.ID, err)
		session.Close(websocket.StatusInternalError, "Server unavailable")
		return
	}

	s.connectionHealth.UpdateActivity(session.ID)
	go session.writePump()

	for {
		msgType, data, err := socket.Read(ctx)
		if err != nil {
			log.Debugf("Connection %s (%s) read error: %v", session.ID, session.Side, err)
			return
		}

		s.connectionHealth.UpdateActivity(session.ID)

		if msgType != websocket.MessageText {
			log.Debugf("Non-text input from %s", session.ID)
			continue
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Debugf("Invalid JSON from %s: %v", session.ID, err)
			continue
		}

		if err := ValidateMessageType(msg.Type); err != nil {
			log.Debugf("%v from %s", err, session.ID)
			continue
		}

		switch msg.Type {
		case TypeMovePaddle:
			if msg.Y == nil {
				log.Debugf("movePaddle without y from %s", session.ID)
				continue
			}
			err = s.loop.Move(ctx, session, msg.PlayerID, *msg.Y)

		case TypePlayAgain:
			err = s.loop.PlayAgain(ctx, session)
		}

		if err != nil {
			log.Debugf("Dropping %s from %s: %v", msg.Type, session.ID, err)
			if errors.Is(err, ErrLoopStopped) {
				return
			}
		}
	}
}
