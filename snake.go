package main

// Snake is the simulated form of one snake. Body is ordered head first;
// the last segment is the tail.
type Snake struct {
	Health     int16
	Body       []Coord
	LastAction Direction
	// ShouldSimulate gates search expansion for far-away snakes.
	ShouldSimulate bool
	LossReason     LossType
}

// NewSnake builds a snake that is alive and simulated.
func NewSnake(health int16, body []Coord, lastAction Direction) Snake {
	return Snake{
		Health:         health,
		Body:           body,
		LastAction:     lastAction,
		ShouldSimulate: true,
		LossReason:     LossNone,
	}
}

func snakeFromWire(bs *Battlesnake) Snake {
	body := make([]Coord, len(bs.Body))
	copy(body, bs.Body)

	// the rules never produce a length-1 snake mid-game, but pad bodies
	// from the wire so collision checks can always read body[1]
	if len(body) == 1 {
		body = append(body, body[0])
	}

	return NewSnake(int16(bs.Health), body, NoMove)
}

// Head returns the first body segment.
func (s *Snake) Head() Coord {
	return s.Body[0]
}

// Tail returns the last body segment.
func (s *Snake) Tail() Coord {
	return s.Body[len(s.Body)-1]
}

// Len returns the body length.
func (s *Snake) Len() int {
	return len(s.Body)
}

// Alive reports whether the snake has not lost yet.
func (s *Snake) Alive() bool {
	return s.LossReason == LossNone
}

// Die marks the snake dead with the given reason.
func (s *Snake) Die(reason LossType) {
	s.LossReason = reason
}

// Eat refills health and grows the snake by holding the tail for one
// extra turn.
func (s *Snake) Eat() {
	s.Health = 100
	s.Body = append(s.Body, s.Tail())
}

// Step returns the snake moved one cell in the given direction: new head,
// tail dropped, one health spent.
func (s *Snake) Step(action Direction) Snake {
	newBody := make([]Coord, len(s.Body))
	newBody[0] = s.Head().Step(action)
	copy(newBody[1:], s.Body[:len(s.Body)-1])

	return Snake{
		Health:         s.Health - 1,
		Body:           newBody,
		LastAction:     action,
		ShouldSimulate: s.ShouldSimulate,
		LossReason:     s.LossReason,
	}
}

// StepConstrictor moves the snake without dropping the tail: constrictor
// snakes grow every turn and never starve.
func (s *Snake) StepConstrictor(action Direction) Snake {
	newBody := make([]Coord, len(s.Body)+1)
	newBody[0] = s.Head().Step(action)
	copy(newBody[1:], s.Body)

	return Snake{
		Health:         100,
		Body:           newBody,
		LastAction:     action,
		ShouldSimulate: s.ShouldSimulate,
		LossReason:     s.LossReason,
	}
}

// Clone returns a deep copy of the snake.
func (s *Snake) Clone() Snake {
	body := make([]Coord, len(s.Body))
	copy(body, s.Body)

	clone := *s
	clone.Body = body
	return clone
}
