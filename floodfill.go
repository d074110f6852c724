package main

import "sort"

// FloodKind is the state of a cell after a flood fill.
type FloodKind uint8

const (
	// FloodFree is an unreached cell.
	FloodFree FloodKind = iota
	// FloodSnake is a cell occupied by a snake body.
	FloodSnake
	// FloodOwned is a cell claimed by exactly one snake.
	FloodOwned
	// FloodDraw is a cell contested at equal distance and length.
	FloodDraw
)

// FloodCell is one cell of the territory map.
type FloodCell struct {
	Kind FloodKind
	ID   uint8
	// TailDist is the distance from the tail for FloodSnake cells;
	// zero at the tail itself.
	TailDist uint8
	// Step is the BFS distance at which the cell was claimed.
	Step int
	// Length and Health describe the claiming flood head.
	Length uint8
	Health int16
	// WasSnake marks a claimed cell that was a body segment which
	// vacated in time.
	WasSnake bool
}

// FloodType selects the reachability model of the fill.
type FloodType uint8

const (
	// FloodSimple races over free cells only; bodies never vacate.
	FloodSimple FloodType = iota
	// FloodFollowSnakes models vacating tails, food and starvation.
	FloodFollowSnakes
	// FloodConstrictor has no food and no vacating bodies.
	FloodConstrictor
)

type floodElement struct {
	id        uint8
	pos       Coord
	step      int
	health    int16
	length    uint8
	foodEaten uint8
}

// Floodfill partitions free cells among snakes by a multi-source BFS
// race from their heads. Longer snakes are expanded first so they win
// contested cells at equal distance.
type Floodfill struct {
	State *State
	Cells Grid[FloodCell]
	// DeadEnds[i] is true while snake i's flood has not touched any
	// foreign territory: its region is a sealed pocket.
	DeadEnds []bool
}

// NewFloodfill runs a fill of the given type over the state.
func NewFloodfill(state *State, floodType FloodType) *Floodfill {
	f := &Floodfill{
		State:    state,
		Cells:    NewGrid[FloodCell](state.Grid.Width, state.Grid.Height, state.Grid.Wrapped),
		DeadEnds: make([]bool, len(state.Snakes)),
	}
	for i := range f.DeadEnds {
		f.DeadEnds[i] = true
	}

	f.fillSnakes(state.Snakes)

	switch floodType {
	case FloodSimple:
		f.calcSimple()
	case FloodFollowSnakes:
		f.calcFollowSnakes()
	case FloodConstrictor:
		f.calcConstrictor()
	}

	return f
}

// fillSnakes stamps every alive body into the territory grid with its
// distance from the tail.
func (f *Floodfill) fillSnakes(snakes []Snake) {
	for id := range snakes {
		snake := &snakes[id]
		if !snake.Alive() {
			continue
		}

		for tailDist := 0; tailDist < len(snake.Body); tailDist++ {
			pos := snake.Body[len(snake.Body)-1-tailDist]
			f.Cells.Set(pos, FloodCell{
				Kind:     FloodSnake,
				ID:       uint8(id),
				TailDist: uint8(tailDist),
			})
		}
	}
}

// orderedIDs returns the alive snake indices sorted by decreasing length.
func (f *Floodfill) orderedIDs() []int {
	snakes := f.State.Snakes

	ids := make([]int, 0, len(snakes))
	for i := range snakes {
		if snakes[i].Alive() {
			ids = append(ids, i)
		}
	}
	sort.SliceStable(ids, func(a, b int) bool {
		return snakes[ids[a]].Len() > snakes[ids[b]].Len()
	})

	return ids
}

func (f *Floodfill) initQueue(fullHealth bool) []floodElement {
	queue := make([]floodElement, 0, f.Cells.Width*f.Cells.Height)

	for _, id := range f.orderedIDs() {
		snake := &f.State.Snakes[id]
		health := snake.Health
		if fullHealth {
			health = 100
		}
		queue = append(queue, floodElement{
			id:     uint8(id),
			pos:    snake.Head(),
			step:   0,
			health: health,
			length: uint8(snake.Len()),
		})
	}

	return queue
}

func (e floodElement) neighbours() [4]floodElement {
	var out [4]floodElement
	for i, pos := range e.pos.Neighbours() {
		out[i] = floodElement{
			id:        e.id,
			pos:       pos,
			step:      e.step + 1,
			health:    e.health - 1,
			length:    e.length,
			foodEaten: e.foodEaten,
		}
	}
	return out
}

func ownedCell(e floodElement, wasSnake bool) FloodCell {
	return FloodCell{
		Kind:     FloodOwned,
		ID:       e.id,
		Step:     e.step,
		Length:   e.length,
		Health:   e.health,
		WasSnake: wasSnake,
	}
}

// calcSimple ignores vacating bodies and health; a cell belongs to
// whoever reaches it first, with draws on equal step and length.
func (f *Floodfill) calcSimple() {
	queue := f.initQueue(false)

	for len(queue) > 0 {
		elem := queue[0]
		queue = queue[1:]

		// ownership may have been reverted to a draw since enqueueing
		if f.Cells.Get(elem.pos).Kind == FloodDraw {
			continue
		}

		for _, neighbour := range elem.neighbours() {
			if !f.Cells.Contains(neighbour.pos) || f.State.Grid.IsSnake(neighbour.pos) {
				continue
			}

			cell := f.Cells.At(neighbour.pos)

			switch cell.Kind {
			case FloodFree:
				*cell = ownedCell(neighbour, false)
				queue = append(queue, neighbour)
			case FloodOwned:
				if cell.ID != neighbour.id && cell.Step == neighbour.step && cell.Length == neighbour.length {
					*cell = FloodCell{Kind: FloodDraw}
				}
			}
		}
	}
}

// calcFollowSnakes is the realistic model: flood heads eat food, starve,
// take hazard damage, and pass through body segments that vacate before
// arrival.
func (f *Floodfill) calcFollowSnakes() {
	queue := f.initQueue(false)

	for len(queue) > 0 {
		elem := queue[0]
		queue = queue[1:]

		switch cur := f.Cells.Get(elem.pos); cur.Kind {
		case FloodDraw:
			f.DeadEnds[elem.id] = false
			continue
		case FloodOwned:
			if cur.ID != elem.id {
				f.DeadEnds[elem.id] = false
				continue
			}
		}

		if f.State.Grid.IsFood(elem.pos) {
			elem.health = 100
			elem.length++
			elem.foodEaten++
		} else if elem.health <= 0 {
			continue
		}

		for _, neighbour := range elem.neighbours() {
			if !f.Cells.Contains(neighbour.pos) {
				continue
			}

			neighbour.health -= int16(f.State.Grid.Get(neighbour.pos).Hazard) * HazardDamage

			cell := f.Cells.At(neighbour.pos)

			switch cell.Kind {
			case FloodFree:
				*cell = ownedCell(neighbour, false)
				queue = append(queue, neighbour)

			case FloodSnake:
				if cell.ID == neighbour.id {
					// own body: the eaten food delays the tail
					if int(cell.TailDist)+int(neighbour.foodEaten) < neighbour.step {
						*cell = ownedCell(neighbour, true)
						queue = append(queue, neighbour)
					}
				} else if int(cell.TailDist) < neighbour.step {
					*cell = ownedCell(neighbour, true)
					queue = append(queue, neighbour)
				}

			case FloodOwned:
				if cell.ID != elem.id {
					// flood touched foreign territory
					f.DeadEnds[elem.id] = false
				}

				if cell.Step == neighbour.step && cell.ID != neighbour.id {
					switch {
					case neighbour.length == cell.Length:
						*cell = FloodCell{Kind: FloodDraw}
					case neighbour.length > cell.Length:
						wasSnake := cell.WasSnake
						*cell = ownedCell(neighbour, wasSnake)
						queue = append(queue, neighbour)
					}
				}

			case FloodDraw:
				f.DeadEnds[elem.id] = false
			}
		}
	}
}

// calcConstrictor races without food or vacating bodies; touching
// foreign territory turns the border cell into a draw.
func (f *Floodfill) calcConstrictor() {
	queue := f.initQueue(true)

	for len(queue) > 0 {
		elem := queue[0]
		queue = queue[1:]

		switch cur := f.Cells.Get(elem.pos); cur.Kind {
		case FloodDraw:
			f.DeadEnds[elem.id] = false
			continue
		case FloodOwned:
			if cur.ID != elem.id {
				f.DeadEnds[elem.id] = false
				continue
			}
		}

		for _, neighbour := range elem.neighbours() {
			if !f.Cells.Contains(neighbour.pos) {
				continue
			}

			cell := f.Cells.At(neighbour.pos)

			switch cell.Kind {
			case FloodFree:
				*cell = ownedCell(neighbour, false)
				queue = append(queue, neighbour)

			case FloodOwned:
				if cell.ID != elem.id {
					f.DeadEnds[elem.id] = false
				}
				if cell.ID != neighbour.id {
					*cell = FloodCell{Kind: FloodDraw}
				}

			case FloodDraw:
				f.DeadEnds[elem.id] = false
			}
		}
	}
}

// CountOwned returns the number of cells snake id owns, split into
// plain cells and cells that were vacating body segments.
func (f *Floodfill) CountOwned(snakeID uint8) (owned, ownedSnake int) {
	for i := range f.Cells.Cells {
		cell := &f.Cells.Cells[i]
		if cell.Kind != FloodOwned || cell.ID != snakeID {
			continue
		}
		if cell.WasSnake {
			ownedSnake++
		} else {
			owned++
		}
	}
	return owned, ownedSnake
}

// CountDuels splits owned cells between us (id 0) and everyone else.
func (f *Floodfill) CountDuels() (ours, oursSnake, enemy, enemySnake int) {
	for i := range f.Cells.Cells {
		cell := &f.Cells.Cells[i]
		if cell.Kind != FloodOwned {
			continue
		}
		switch {
		case cell.ID == 0 && cell.WasSnake:
			oursSnake++
		case cell.ID == 0:
			ours++
		case cell.WasSnake:
			enemySnake++
		default:
			enemy++
		}
	}
	return ours, oursSnake, enemy, enemySnake
}

// CountOwnedAll returns the per-snake owned-cell totals.
func (f *Floodfill) CountOwnedAll() []int {
	owned := make([]int, len(f.State.Snakes))
	for i := range f.Cells.Cells {
		cell := &f.Cells.Cells[i]
		if cell.Kind == FloodOwned {
			owned[cell.ID]++
		}
	}
	return owned
}

// CountOwnedRoyale splits snake id's owned cells by hazard overlap and
// vacating-body origin.
func (f *Floodfill) CountOwnedRoyale(snakeID uint8) (owned, ownedHazards, ownedSnakes, ownedSnakeHazards int) {
	for i := range f.Cells.Cells {
		cell := &f.Cells.Cells[i]
		if cell.Kind != FloodOwned || cell.ID != snakeID {
			continue
		}

		hazard := f.State.Grid.Cells[i].Hazard > 0
		switch {
		case cell.WasSnake && hazard:
			ownedSnakeHazards++
		case cell.WasSnake:
			ownedSnakes++
		case hazard:
			ownedHazards++
		default:
			owned++
		}
	}
	return owned, ownedHazards, ownedSnakes, ownedSnakeHazards
}
