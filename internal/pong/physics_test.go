package pong

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func runningState() State {
	s := NewState()
	s.Status = StatusRunning
	return s
}

func TestAdvance_MovesBallByVelocity(t *testing.T) {
	s := runningState()

	next := Advance(s, DefaultRules)

	assert.Equal(t, 403.0, next.Ball.X)
	assert.Equal(t, 203.0, next.Ball.Y)
	assert.Equal(t, 3.0, next.Ball.DX)
	assert.Equal(t, 3.0, next.Ball.DY)

	// Input is untouched
	assert.Equal(t, 400.0, s.Ball.X)
}

func TestAdvance_WallBounce(t *testing.T) {
	tests := []struct {
		name   string
		y, dy  float64
		wantDY float64
	}{
		{"top wall", 12, -3, 3},
		{"bottom wall", 388, 3, -3},
		{"exactly touching top", 13, -3, 3},
		{"open field", 200, 3, 3},
		{"just inside bottom", 386, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := runningState()
			s.Ball = Ball{X: 400, Y: tt.y, DX: 3, DY: tt.dy, Radius: BallRadius}

			next := Advance(s, DefaultRules)

			assert.Equal(t, tt.wantDY, next.Ball.DY)
			// Post-move position is kept even when overlapping the wall
			assert.Equal(t, tt.y+tt.dy, next.Ball.Y)
		})
	}
}

func TestAdvance_PaddleHitSpeedsUp(t *testing.T) {
	s := runningState()
	s.Ball = Ball{X: 32, Y: 200, DX: -3, DY: 2, Radius: BallRadius}

	next := Advance(s, DefaultRules)

	assert.InDelta(t, 3.45, next.Ball.DX, 1e-9)
	assert.InDelta(t, 2.3, next.Ball.DY, 1e-9)
	// No separation: the ball stays where the move put it
	assert.Equal(t, 29.0, next.Ball.X)
}

func TestAdvance_PaddleHitPlainFlip(t *testing.T) {
	s := runningState()
	s.Ball = Ball{X: 768, Y: 160, DX: 3, DY: -1, Radius: BallRadius}

	next := Advance(s, Rules{PaddleSpeedup: 1})

	assert.Equal(t, -3.0, next.Ball.DX)
	assert.Equal(t, -1.0, next.Ball.DY)
}

func TestAdvance_PaddleMiss(t *testing.T) {
	s := runningState()
	s.Paddles.Player1.Y = 0
	s.Ball = Ball{X: 32, Y: 200, DX: -3, DY: 0, Radius: BallRadius}

	next := Advance(s, DefaultRules)

	assert.Equal(t, -3.0, next.Ball.DX)
}

func TestAdvance_PaddleIgnoresBallMovingAway(t *testing.T) {
	s := runningState()
	s.Ball = Ball{X: 25, Y: 200, DX: 3.45, DY: 0, Radius: BallRadius}

	next := Advance(s, DefaultRules)

	assert.Equal(t, 3.45, next.Ball.DX)
}

func TestHitsPaddle_EdgesInclusive(t *testing.T) {
	p := Paddle{X: Player1PaddleX, Y: 150, Width: PaddleWidth, Height: PaddleHeight}

	assert.True(t, HitsPaddle(Ball{X: 30, Y: 150, DX: -1, Radius: 10}, p, Player1))
	assert.True(t, HitsPaddle(Ball{X: 30, Y: 250, DX: -1, Radius: 10}, p, Player1))
	assert.False(t, HitsPaddle(Ball{X: 30, Y: 250.5, DX: -1, Radius: 10}, p, Player1))
	assert.False(t, HitsPaddle(Ball{X: 30.5, Y: 200, DX: -1, Radius: 10}, p, Player1))
}

func TestScored(t *testing.T) {
	side, ok := Scored(Ball{X: 0})
	assert.True(t, ok)
	assert.Equal(t, Player2, side)

	side, ok = Scored(Ball{X: 800})
	assert.True(t, ok)
	assert.Equal(t, Player1, side)

	_, ok = Scored(Ball{X: 400})
	assert.False(t, ok)
}

func TestClampPaddleY(t *testing.T) {
	assert.Equal(t, 0.0, ClampPaddleY(-40))
	assert.Equal(t, 300.0, ClampPaddleY(350))
	assert.Equal(t, 120.0, ClampPaddleY(120))
}

func TestRules_ZeroSpeedupActsAsFlip(t *testing.T) {
	s := runningState()
	s.Ball = Ball{X: 32, Y: 200, DX: -3, DY: 1, Radius: BallRadius}

	next := Advance(s, Rules{})

	assert.Equal(t, 3.0, next.Ball.DX)
	assert.Equal(t, 1.0, next.Ball.DY)
}
