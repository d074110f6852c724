package main

// CellKind is what occupies a board cell.
type CellKind uint8

const (
	CellFree CellKind = iota
	CellFood
	CellSnake
	CellTail
)

// BoardCell is one cell of the derived game grid. Hazard is a count:
// overlapping hazards stack and each stack deals its own damage.
type BoardCell struct {
	Kind    CellKind
	SnakeID uint8
	Hazard  uint8
}

func snakeCell(id uint8) BoardCell {
	return BoardCell{Kind: CellSnake, SnakeID: id}
}

func tailCell(id uint8) BoardCell {
	return BoardCell{Kind: CellTail, SnakeID: id}
}

func (c BoardCell) isSnake() bool {
	// tails are deliberately not counted, they vacate next turn
	return c.Kind == CellSnake
}

// GameGrid is the dense board cache rebuilt from snakes, food and hazards
// after every step.
type GameGrid struct {
	Grid[BoardCell]
}

// NewGameGrid returns an empty game grid.
func NewGameGrid(width, height int, wrapped bool) GameGrid {
	return GameGrid{NewGrid[BoardCell](width, height, wrapped)}
}

// Clone returns a deep copy of the grid.
func (g *GameGrid) Clone() GameGrid {
	return GameGrid{g.Grid.Clone()}
}

// Fill stamps snakes, food and hazards into the grid. The tail of a snake
// that did not just eat is marked CellTail so movement checks can treat
// it as vacating next turn.
func (g *GameGrid) Fill(snakes []Snake, food []Coord, hazards []Coord) {
	for i := range snakes {
		snake := &snakes[i]
		if !snake.Alive() {
			continue
		}

		for _, pos := range snake.Body[:len(snake.Body)-1] {
			g.Set(pos, snakeCell(uint8(i)))
		}
		// tail coord is unique, cell frees up next turn
		if snake.Len() == 1 || snake.Tail() != snake.Body[len(snake.Body)-2] {
			g.Set(snake.Tail(), tailCell(uint8(i)))
		}
	}

	for _, pos := range food {
		g.Set(pos, BoardCell{Kind: CellFood})
	}

	for _, pos := range hazards {
		if g.Contains(pos) {
			g.At(pos).Hazard++
		}
	}
}

// IsFood reports whether pos holds food.
func (g *GameGrid) IsFood(pos Coord) bool {
	return g.Get(pos).Kind == CellFood
}

// IsSnake reports whether pos holds a blocking snake segment.
func (g *GameGrid) IsSnake(pos Coord) bool {
	return g.Get(pos).isSnake()
}

// IsHazard reports whether pos carries at least one hazard stack.
func (g *GameGrid) IsHazard(pos Coord) bool {
	return g.Get(pos).Hazard > 0
}

// IsValidPos reports whether a head may move onto pos: on the board and
// not a blocking snake segment.
func (g *GameGrid) IsValidPos(pos Coord) bool {
	return g.Contains(pos) && !g.IsSnake(pos)
}
