package pong

// PlayersRequired is the number of connected players a match needs to run.
const PlayersRequired = 2

// Match owns the state of a single game and enforces its lifecycle:
//
//	waiting -> running -> ended -> (play again) -> running | waiting
//	running -> waiting when a player drops
//
// A Match is not safe for concurrent use; the simulation loop is its only
// caller.
type Match struct {
	state State
	rules Rules
}

// TickResult describes what happened during one Step.
type TickResult struct {
	Advanced bool
	Scorer   Side // empty when nobody scored
	Ended    bool
}

func NewMatch(rules Rules) *Match {
	return &Match{
		state: NewState(),
		rules: rules,
	}
}

func (m *Match) Status() Status {
	return m.state.Status
}

// Snapshot returns a copy of the current state safe to hand to encoders.
func (m *Match) Snapshot() State {
	return m.state.Clone()
}

// Join is called after a player registers. It starts the match when both
// seats are filled. An ended match stays ended until PlayAgain.
func (m *Match) Join(players int) bool {
	if m.state.Status != StatusWaiting || players < PlayersRequired {
		return false
	}
	m.state.Status = StatusRunning
	return true
}

// Leave is called after a player disconnects. A running match falls back to
// waiting once fewer than two players remain.
func (m *Match) Leave(players int) bool {
	if m.state.Status != StatusRunning || players >= PlayersRequired {
		return false
	}
	m.state.Status = StatusWaiting
	return true
}

// PlayAgain resets an ended match. It is a no-op in any other status.
func (m *Match) PlayAgain(players int) bool {
	if m.state.Status != StatusEnded {
		return false
	}

	m.state.Scores = Scores{}
	m.state.Winner = nil
	m.state.Ball = ServeBall()

	if players >= PlayersRequired {
		m.state.Status = StatusRunning
	} else {
		m.state.Status = StatusWaiting
	}
	return true
}

// MovePaddle sets the paddle's absolute y, clamped to the field. Moves are
// only accepted while the match is running.
func (m *Match) MovePaddle(side Side, y float64) bool {
	if m.state.Status != StatusRunning || !side.Valid() {
		return false
	}
	m.state.Paddle(side).Y = ClampPaddleY(y)
	return true
}

// Step advances the match by one tick. Outside of running it does nothing.
func (m *Match) Step() TickResult {
	if m.state.Status != StatusRunning {
		return TickResult{}
	}

	for _, side := range Sides {
		p := m.state.Paddle(side)
		p.Y = ClampPaddleY(p.Y)
	}

	m.state = Advance(m.state, m.rules)
	result := TickResult{Advanced: true}

	if scorer, ok := Scored(m.state.Ball); ok {
		m.state.addPoint(scorer)
		result.Scorer = scorer
		result.Ended = m.checkForWin()
		m.state.Ball = ServeBall()
	}

	return result
}

func (m *Match) checkForWin() bool {
	for _, side := range Sides {
		if m.state.Score(side) >= WinningScore {
			winner := side
			m.state.Winner = &winner
			m.state.Status = StatusEnded
			return true
		}
	}
	return false
}
