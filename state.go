package main

import "strings"

// HazardDamage is the health lost per hazard stack per turn.
const HazardDamage int16 = 14

// Mode selects the rule variant the simulator applies.
type Mode uint8

const (
	ModeStandard Mode = iota
	ModeDuels
	ModeRoyale
	ModeConstrictor
	ModeSnail
)

func (m Mode) String() string {
	switch m {
	case ModeDuels:
		return "duels"
	case ModeRoyale:
		return "royale"
	case ModeConstrictor:
		return "constrictor"
	case ModeSnail:
		return "snail"
	default:
		return "standard"
	}
}

// State is the full simulated game state. snakes[0] is always the snake
// we control; the grid is a cache derived from snakes, food and hazards.
type State struct {
	Turn    int
	Snakes  []Snake
	Food    []Coord
	Hazards []Coord
	Grid    GameGrid
	Mode    Mode
}

// determineMode maps the wire payload onto a rule variant. The order is
// fixed: ruleset name first, then map, then player count.
func determineMode(game *GameRequest) Mode {
	switch {
	case strings.Contains(game.Game.Ruleset.Name, "constrictor"):
		return ModeConstrictor
	case game.Game.Map == "snail_mode":
		return ModeSnail
	case game.Game.Map == "royale":
		return ModeRoyale
	case len(game.Board.Snakes) == 2:
		return ModeDuels
	default:
		return ModeStandard
	}
}

// StateFromRequest builds a simulation state from a wire payload. The
// snake identified by `you` is promoted to index 0.
func StateFromRequest(game *GameRequest) *State {
	board := &game.Board

	snakes := make([]Snake, 0, len(board.Snakes))
	snakes = append(snakes, snakeFromWire(&game.You))
	for i := range board.Snakes {
		if board.Snakes[i].ID == game.You.ID {
			continue
		}
		snakes = append(snakes, snakeFromWire(&board.Snakes[i]))
	}

	wrapped := strings.Contains(game.Game.Ruleset.Name, "wrapped")
	mode := determineMode(game)

	food := make([]Coord, len(board.Food))
	copy(food, board.Food)
	hazards := make([]Coord, len(board.Hazards))
	copy(hazards, board.Hazards)

	state := NewState(game.Turn, snakes, food, hazards, board.Width, board.Height, wrapped, mode)
	state.FillGrid()
	return state
}

// NewState builds a state with an empty grid; call FillGrid before use.
func NewState(turn int, snakes []Snake, food, hazards []Coord, width, height int, wrapped bool, mode Mode) *State {
	return &State{
		Turn:    turn,
		Snakes:  snakes,
		Food:    food,
		Hazards: hazards,
		Grid:    NewGameGrid(width, height, wrapped),
		Mode:    mode,
	}
}

// FillGrid rebuilds the grid cache from snakes, food and hazards.
func (s *State) FillGrid() {
	s.Grid.Fill(s.Snakes, s.Food, s.Hazards)
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	snakes := make([]Snake, len(s.Snakes))
	for i := range s.Snakes {
		snakes[i] = s.Snakes[i].Clone()
	}
	food := make([]Coord, len(s.Food))
	copy(food, s.Food)
	hazards := make([]Coord, len(s.Hazards))
	copy(hazards, s.Hazards)

	return &State{
		Turn:    s.Turn,
		Snakes:  snakes,
		Food:    food,
		Hazards: hazards,
		Grid:    s.Grid.Clone(),
		Mode:    s.Mode,
	}
}

// AliveCount returns the number of snakes still in the game.
func (s *State) AliveCount() int {
	alive := 0
	for i := range s.Snakes {
		if s.Snakes[i].Alive() {
			alive++
		}
	}
	return alive
}

// IsEndState reports whether at most one snake is left.
func (s *State) IsEndState() bool {
	return s.AliveCount() <= 1
}

// GetWinner returns the index of the sole surviving snake, or -1 on a
// draw. Only meaningful for end states.
func (s *State) GetWinner() int {
	for i := range s.Snakes {
		if s.Snakes[i].Alive() {
			return i
		}
	}
	return -1
}

// GetValidActions returns the candidate moves for a snake. Dead or
// frozen snakes return only NoMove. The previous direction comes first
// when it is still playable, and a snake with no playable move still
// returns Up: a doomed move is still a move.
func (s *State) GetValidActions(snakeIndex int) []Direction {
	snake := &s.Snakes[snakeIndex]

	if !snake.ShouldSimulate || !snake.Alive() {
		return []Direction{NoMove}
	}

	head := snake.Head()
	neck := snake.Body[1]

	valid := make([]Direction, 0, 4)

	if snake.LastAction != NoMove && s.Grid.IsValidPos(head.Step(snake.LastAction)) {
		valid = append(valid, snake.LastAction)
	}

	for _, dir := range AllDirections {
		if dir == snake.LastAction {
			continue
		}
		target := head.Step(dir)
		// never reverse onto the neck, even when that cell is a
		// vacating tail
		if target == neck {
			continue
		}
		if s.Grid.IsValidPos(target) {
			valid = append(valid, dir)
		}
	}

	if len(valid) == 0 {
		valid = append(valid, Up)
	}

	return valid
}

func checkHeadCollisions(snakes []Snake) {
	for i := 0; i < len(snakes)-1; i++ {
		if !snakes[i].Alive() {
			continue
		}

		for j := i + 1; j < len(snakes); j++ {
			if !snakes[j].Alive() || snakes[i].Head() != snakes[j].Head() {
				continue
			}

			switch {
			case snakes[i].Len() < snakes[j].Len():
				snakes[i].Die(LossHeadCollision)
			case snakes[i].Len() > snakes[j].Len():
				snakes[j].Die(LossHeadCollision)
			default:
				snakes[i].Die(LossHeadCollision)
				snakes[j].Die(LossHeadCollision)
			}
		}
	}
}

// checkCollisions resolves wall, own-body and foreign-body collisions
// against the pre-move grid. Head-to-head results are already applied.
func (s *State) checkCollisions(snakes []Snake) {
	for i := range snakes {
		snake := &snakes[i]
		// body[0]==body[1] marks a frozen snake that "moved" NoMove
		if !snake.Alive() || snake.Body[0] == snake.Body[1] {
			continue
		}

		head := snake.Head()
		if !s.Grid.Contains(head) {
			snake.Die(LossOwnOrWallCollision)
			continue
		}

		cell := s.Grid.Get(head)
		if cell.isSnake() {
			if cell.SnakeID == uint8(i) {
				snake.Die(LossOwnOrWallCollision)
			} else {
				snake.Die(LossSnakeCollision)
			}
		}
	}
}

func (s *State) killStarved(snakes []Snake) {
	for i := range snakes {
		if snakes[i].Health == 0 {
			snakes[i].Die(LossStarvation)
		}
	}
}

// Step applies one synchronized turn and returns the successor state.
// The rule order is fixed: move, head-to-head, body/wall, hazard, food,
// starvation, grid rebuild.
func (s *State) Step(actions []Direction) *State {
	if s.Mode == ModeConstrictor {
		return s.stepConstrictor(actions)
	}

	newSnakes := make([]Snake, 0, len(s.Snakes))
	newFood := make([]Coord, len(s.Food))
	copy(newFood, s.Food)

	for i := range s.Snakes {
		if s.Snakes[i].Alive() {
			newSnakes = append(newSnakes, s.Snakes[i].Step(actions[i]))
		} else {
			newSnakes = append(newSnakes, s.Snakes[i].Clone())
		}
	}

	checkHeadCollisions(newSnakes)
	s.checkCollisions(newSnakes)

	// hazard damage and food, only for survivors so a losing
	// head-collider cannot eat
	for i := range newSnakes {
		snake := &newSnakes[i]
		if !snake.Alive() {
			continue
		}

		snake.Health -= HazardDamage * int16(s.Grid.Get(snake.Head()).Hazard)

		if s.Grid.IsFood(snake.Head()) {
			snake.Eat()
			newFood = removeCoord(newFood, snake.Head())
		}
		if snake.Health < 0 {
			snake.Die(LossStarvation)
		}
	}

	hazards := make([]Coord, len(s.Hazards))
	copy(hazards, s.Hazards)

	newState := NewState(s.Turn+1, newSnakes, newFood, hazards, s.Grid.Width, s.Grid.Height, s.Grid.Wrapped, s.Mode)
	newState.killStarved(newState.Snakes)

	if newState.Mode == ModeSnail {
		newState.applySnailMode(s)
	} else {
		newState.FillGrid()
	}

	return newState
}

func (s *State) stepConstrictor(actions []Direction) *State {
	newSnakes := make([]Snake, 0, len(s.Snakes))

	for i := range s.Snakes {
		if s.Snakes[i].Alive() {
			newSnakes = append(newSnakes, s.Snakes[i].StepConstrictor(actions[i]))
		} else {
			newSnakes = append(newSnakes, s.Snakes[i].Clone())
		}
	}

	checkHeadCollisions(newSnakes)
	s.checkCollisions(newSnakes)

	newState := NewState(s.Turn+1, newSnakes, nil, nil, s.Grid.Width, s.Grid.Height, s.Grid.Wrapped, s.Mode)
	newState.FillGrid()
	return newState
}

// applySnailMode rebuilds the grid with snail hazard semantics: old
// hazard stacks decay by one (stacks of one vanish with the clear), and
// every tail that vacated this turn deposits a stack equal to the old
// body length.
func (s *State) applySnailMode(oldState *State) {
	// the hazard list is not used in this mode, the grid carries it
	s.Hazards = s.Hazards[:0]
	s.FillGrid()

	for i, oldCell := range oldState.Grid.Cells {
		if oldCell.Hazard > 1 {
			s.Grid.Cells[i].Hazard = oldCell.Hazard - 1
		}
	}

	for i := range oldState.Snakes {
		oldSnake := &oldState.Snakes[i]
		if !oldSnake.Alive() {
			continue
		}

		// hazards spawn only where the tail actually vacated, which it
		// does not when the snake just ate
		if oldSnake.Tail() != oldSnake.Body[len(oldSnake.Body)-2] {
			cell := s.Grid.At(oldSnake.Tail())
			if cell.Kind != CellSnake {
				cell.Hazard = uint8(oldSnake.Len())
			}
		}
	}
}

func removeCoord(coords []Coord, target Coord) []Coord {
	kept := coords[:0]
	for _, c := range coords {
		if c != target {
			kept = append(kept, c)
		}
	}
	return kept
}
