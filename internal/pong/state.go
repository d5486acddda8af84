package pong

// Field and object dimensions shared with the browser client.
const (
	FieldWidth  = 800.0
	FieldHeight = 400.0

	BallRadius = 10.0
	ServeX     = FieldWidth / 2
	ServeY     = FieldHeight / 2
	ServeDX    = 3.0
	ServeDY    = 3.0

	PaddleWidth    = 10.0
	PaddleHeight   = 100.0
	PaddleStartY   = 150.0
	Player1PaddleX = 10.0
	Player2PaddleX = 780.0

	WinningScore = 5
)

type Side string

const (
	Player1 Side = "player1"
	Player2 Side = "player2"
)

// Sides lists the player slots in assignment order.
var Sides = [2]Side{Player1, Player2}

func (s Side) Valid() bool {
	return s == Player1 || s == Player2
}

type Status string

const (
	StatusWaiting Status = "waiting"
	StatusRunning Status = "running"
	StatusEnded   Status = "ended"
)

type Ball struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	DX     float64 `json:"dx"`
	DY     float64 `json:"dy"`
	Radius float64 `json:"radius"`
}

// ServeBall returns the ball at center court with the fixed serve velocity.
func ServeBall() Ball {
	return Ball{X: ServeX, Y: ServeY, DX: ServeDX, DY: ServeDY, Radius: BallRadius}
}

type Paddle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Paddles struct {
	Player1 Paddle `json:"player1"`
	Player2 Paddle `json:"player2"`
}

type Scores struct {
	Player1 int `json:"player1"`
	Player2 int `json:"player2"`
}

// State is the complete replicated game state. It is sent to clients as-is
// on every update.
type State struct {
	Status  Status  `json:"status"`
	Ball    Ball    `json:"ball"`
	Paddles Paddles `json:"paddles"`
	Scores  Scores  `json:"scores"`
	Winner  *Side   `json:"winner"`
}

func NewState() State {
	return State{
		Status: StatusWaiting,
		Ball:   ServeBall(),
		Paddles: Paddles{
			Player1: Paddle{X: Player1PaddleX, Y: PaddleStartY, Width: PaddleWidth, Height: PaddleHeight},
			Player2: Paddle{X: Player2PaddleX, Y: PaddleStartY, Width: PaddleWidth, Height: PaddleHeight},
		},
	}
}

// Paddle returns a pointer to the paddle owned by side.
func (s *State) Paddle(side Side) *Paddle {
	if side == Player2 {
		return &s.Paddles.Player2
	}
	return &s.Paddles.Player1
}

func (s *State) Score(side Side) int {
	if side == Player2 {
		return s.Scores.Player2
	}
	return s.Scores.Player1
}

func (s *State) addPoint(side Side) {
	if side == Player2 {
		s.Scores.Player2++
		return
	}
	s.Scores.Player1++
}

// Clone returns a copy that shares no memory with s.
func (s State) Clone() State {
	if s.Winner != nil {
		w := *s.Winner
		s.Winner = &w
	}
	return s
}
