package pong

// Rules holds the collision policy for a deployment.
type Rules struct {
	// PaddleSpeedup scales both velocity components on a paddle hit.
	// 1 means a plain horizontal sign flip.
	PaddleSpeedup float64
}

// DefaultRules speeds the ball up by 15% on every paddle hit.
var DefaultRules = Rules{PaddleSpeedup: 1.15}

func (r Rules) speedup() float64 {
	if r.PaddleSpeedup <= 0 {
		return 1
	}
	return r.PaddleSpeedup
}

// Advance moves the ball one tick and resolves wall and paddle contact.
// Scoring is not evaluated here; see Scored.
func Advance(s State, rules Rules) State {
	next := s.Clone()
	ball := &next.Ball

	ball.X += ball.DX
	ball.Y += ball.DY

	if HitsWall(*ball) {
		ball.DY = -ball.DY
	}

	k := rules.speedup()
	for _, side := range Sides {
		if HitsPaddle(*ball, *next.Paddle(side), side) {
			ball.DX = -ball.DX * k
			ball.DY = ball.DY * k
		}
	}

	return next
}

// HitsWall reports whether the ball overlaps the top or bottom wall.
func HitsWall(b Ball) bool {
	return b.Y-b.Radius <= 0 || b.Y+b.Radius >= FieldHeight
}

// HitsPaddle reports whether the ball, travelling toward side's paddle, has
// its leading edge at or past the paddle face while vertically inside it.
func HitsPaddle(b Ball, p Paddle, side Side) bool {
	if b.Y < p.Y || b.Y > p.Y+p.Height {
		return false
	}
	if side == Player1 {
		return b.DX < 0 && b.X-b.Radius <= p.X+p.Width
	}
	return b.DX > 0 && b.X+b.Radius >= p.X
}

// Scored reports which side wins the point when the ball has left the field
// through a side boundary.
func Scored(b Ball) (Side, bool) {
	switch {
	case b.X <= 0:
		return Player2, true
	case b.X >= FieldWidth:
		return Player1, true
	}
	return "", false
}

// ClampPaddleY keeps a paddle fully inside the field.
func ClampPaddleY(y float64) float64 {
	if y < 0 {
		return 0
	}
	if max := FieldHeight - PaddleHeight; y > max {
		return max
	}
	return y
}
