package server

import (
	"context"
	"errors"
	"time"

	"pong-server/internal/pong"
)

// TickRate is the fixed simulation period (60 Hz).
const TickRate = time.Second / 60

const commandQueueSize = 64

var ErrLoopStopped = errors.New("simulation loop stopped")

// LoopStatus is a point-in-time view of the loop for health reporting.
type LoopStatus struct {
	Match    pong.Status
	Sessions int
	Ticks    uint64
}

// SimulationLoop is the single owner of the match. Websocket handlers never
// touch the match directly: they queue commands, and the loop applies them
// between ticks on its own goroutine.
type SimulationLoop struct {
	match    *pong.Match
	registry *SessionRegistry
	gateway  *BroadcastGateway

	commands chan func()
	done     chan struct{}
	tickRate time.Duration
	ticks    uint64
}

func NewSimulationLoop(match *pong.Match, registry *SessionRegistry, gateway *BroadcastGateway) *SimulationLoop {
	return &SimulationLoop{
		match:    match,
		registry: registry,
		gateway:  gateway,
		commands: make(chan func(), commandQueueSize),
		done:     make(chan struct{}),
		tickRate: TickRate,
	}
}

// Run ticks at the fixed rate and applies queued commands until ctx is
// cancelled. It must be called at most once.
func (l *SimulationLoop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.tickRate)
	defer ticker.Stop()
	defer close(l.done)

	log.Infof("Simulation loop started (tick %v)", l.tickRate)

	for {
		select {
		case <-ctx.Done():
			log.Infof("Simulation loop stopped after %d ticks", l.ticks)
			return nil
		case cmd := <-l.commands:
			cmd()
		case <-ticker.C:
			l.tick()
		}
	}
}

func (l *SimulationLoop) tick() {
	l.ticks++

	if l.match.Status() != pong.StatusRunning {
		return
	}

	result := l.match.Step()
	if result.Scorer != "" {
		s := l.match.Snapshot()
		log.Infof("%s scored (%d-%d)", result.Scorer, s.Scores.Player1, s.Scores.Player2)
	}
	if result.Ended {
		log.Infof("Match ended, winner %s", result.Scorer)
	}

	l.gateway.Broadcast(l.match.Snapshot())
}

func (l *SimulationLoop) submit(ctx context.Context, cmd func()) error {
	select {
	case l.commands <- cmd:
		return nil
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// do runs fn on the loop goroutine and waits for it to finish.
func (l *SimulationLoop) do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if err := l.submit(ctx, func() {
		fn()
		close(finished)
	}); err != nil {
		return err
	}

	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Register seats a new session, sends it its side, and starts the match
// when it fills the second seat.
func (l *SimulationLoop) Register(ctx context.Context, s *Session) (pong.Side, error) {
	var (
		side   pong.Side
		regErr error
	)

	err := l.do(ctx, func() {
		side, regErr = l.registry.Register(s)
		if regErr != nil {
			return
		}

		if err := l.gateway.Send(s, newAssignPlayer(side)); err != nil {
			log.Warnf("Failed to send assignPlayer to %s: %v", s.ID, err)
		}
		log.Infof("%s connected (%s)", side, s.ID)

		if l.match.Join(l.registry.Count()) {
			log.Infof("Both players connected, match running")
		}
		l.gateway.Broadcast(l.match.Snapshot())
	})
	if err != nil {
		return "", err
	}
	return side, regErr
}

// Unregister frees the session's seat. A running match drops back to
// waiting. It is safe to call for sessions that never registered.
func (l *SimulationLoop) Unregister(s *Session) {
	err := l.submit(context.Background(), func() {
		if !l.registry.Unregister(s) {
			return
		}
		log.Infof("%s disconnected (%s)", s.Side, s.ID)

		if l.match.Leave(l.registry.Count()) {
			log.Infof("Match paused, waiting for a player")
			l.gateway.Broadcast(l.match.Snapshot())
		}
	})
	if err != nil && !errors.Is(err, ErrLoopStopped) {
		log.Warnf("Failed to unregister %s: %v", s.ID, err)
	}
}

// Move queues an absolute paddle position from s. Moves for a side s does
// not own, or while the match is not running, are ignored.
func (l *SimulationLoop) Move(ctx context.Context, s *Session, side pong.Side, y float64) error {
	return l.submit(ctx, func() {
		if !l.registry.ApplyMove(l.match, s, side, y) {
			log.Tracef("Ignored movePaddle for %q from %s", side, s.ID)
		}
	})
}

// PlayAgain queues a reset request. Only an ended match is reset.
func (l *SimulationLoop) PlayAgain(ctx context.Context, s *Session) error {
	return l.submit(ctx, func() {
		if !l.registry.Owns(s, s.Side) {
			return
		}
		if !l.match.PlayAgain(l.registry.Count()) {
			log.Debugf("Ignored playAgain from %s while %s", s.Side, l.match.Status())
			return
		}
		log.Infof("Resetting match (%s)", l.match.Status())
		l.gateway.Broadcast(l.match.Snapshot())
	})
}

// Status reports the match status, seated sessions, and tick count.
func (l *SimulationLoop) Status(ctx context.Context) (LoopStatus, error) {
	var status LoopStatus
	err := l.do(ctx, func() {
		status = LoopStatus{
			Match:    l.match.Status(),
			Sessions: l.registry.Count(),
			Ticks:    l.ticks,
		}
	})
	return status, err
}

// Snapshot returns a copy of the current game state.
func (l *SimulationLoop) Snapshot(ctx context.Context) (pong.State, error) {
	var state pong.State
	err := l.do(ctx, func() {
		state = l.match.Snapshot()
	})
	return state, err
}
