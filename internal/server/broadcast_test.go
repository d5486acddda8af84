package server

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pong-server/internal/pong"
)

func registeredPair(t *testing.T) (*SessionRegistry, *Session, *Session) {
	t.Helper()
	r := NewSessionRegistry()
	a := NewSession(newFakeConn())
	b := NewSession(newFakeConn())
	_, err := r.Register(a)
	require.NoError(t, err)
	_, err = r.Register(b)
	require.NoError(t, err)
	return r, a, b
}

func TestBroadcast_DeliversToEverySession(t *testing.T) {
	r, a, b := registeredPair(t)
	g := NewBroadcastGateway(r)

	delivered := g.Broadcast(pong.NewState())

	assert.Equal(t, 2, delivered)
	assert.Len(t, a.send, 1)
	assert.Len(t, b.send, 1)
}

func TestBroadcast_SkipsClosedSessions(t *testing.T) {
	r, a, b := registeredPair(t)
	g := NewBroadcastGateway(r)
	a.Close(websocket.StatusNormalClosure, "")

	delivered := g.Broadcast(pong.NewState())

	assert.Equal(t, 1, delivered)
	assert.Len(t, a.send, 0)
	assert.Len(t, b.send, 1)
}

func TestBroadcast_DropsWhenQueueFull(t *testing.T) {
	r, a, b := registeredPair(t)
	g := NewBroadcastGateway(r)
	for i := 0; i < sendQueueSize; i++ {
		require.True(t, a.enqueue([]byte("{}")))
	}

	delivered := g.Broadcast(pong.NewState())

	assert.Equal(t, 1, delivered)
	assert.Len(t, a.send, sendQueueSize)
	assert.Len(t, b.send, 1)
}

func TestBroadcast_NoSessions(t *testing.T) {
	g := NewBroadcastGateway(NewSessionRegistry())
	assert.Equal(t, 0, g.Broadcast(pong.NewState()))
}

// Test: the frame is the full state under "gameState", winner is null
// until someone wins
func TestBroadcast_FrameShape(t *testing.T) {
	r, a, _ := registeredPair(t)
	g := NewBroadcastGateway(r)

	g.Broadcast(pong.NewState())
	frame := <-a.send

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(frame, &raw))
	assert.JSONEq(t, `"updateState"`, string(raw["type"]))

	var state map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["gameState"], &state))
	assert.JSONEq(t, `"waiting"`, string(state["status"]))
	assert.JSONEq(t, `null`, string(state["winner"]))
	assert.JSONEq(t, `{"player1":0,"player2":0}`, string(state["scores"]))
	assert.JSONEq(t, `{"x":400,"y":200,"dx":3,"dy":3,"radius":10}`, string(state["ball"]))
	assert.JSONEq(t, `{
		"player1":{"x":10,"y":150,"width":10,"height":100},
		"player2":{"x":780,"y":150,"width":10,"height":100}
	}`, string(state["paddles"]))
}

func TestSend_QueuesSingleMessage(t *testing.T) {
	r, a, b := registeredPair(t)
	g := NewBroadcastGateway(r)

	require.NoError(t, g.Send(a, newAssignPlayer(pong.Player1)))

	assert.JSONEq(t, `{"type":"assignPlayer","playerId":"player1"}`, string(<-a.send))
	assert.Len(t, b.send, 0)
}

func TestSend_ClosedSession(t *testing.T) {
	r, a, _ := registeredPair(t)
	g := NewBroadcastGateway(r)
	a.Close(websocket.StatusNormalClosure, "")

	assert.Error(t, g.Send(a, newAssignPlayer(pong.Player1)))
}

func TestReject_WritesRoomFullAndCloses(t *testing.T) {
	conn := newFakeConn()
	s := NewSession(conn)
	g := NewBroadcastGateway(NewSessionRegistry())

	g.Reject(context.Background(), s)

	require.Len(t, conn.frames, 1)
	assert.JSONEq(t, `{"type":"roomFull","message":"2 players already connected."}`, string(conn.frames[0]))
	assert.False(t, s.IsOpen())
	_, code := conn.closeCount()
	assert.Equal(t, websocket.StatusTryAgainLater, code)
}
