package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloodfillSimpleSingleSnake(t *testing.T) {
	state := newTestState(3, 3, ModeStandard, []Snake{
		testSnake(100, Coord{X: 0, Y: 0}, Coord{X: 0, Y: 0}),
	}, nil, nil)

	flood := NewFloodfill(state, FloodSimple)

	owned, ownedSnake := flood.CountOwned(0)
	assert.Equal(t, 8, owned, "a lone snake owns the whole board except itself")
	assert.Zero(t, ownedSnake)
	assert.True(t, flood.DeadEnds[0], "nobody contested the flood")
}

func TestFloodfillSimpleSymmetricDraw(t *testing.T) {
	// mirrored snakes: the middle column is contested at equal step
	// and equal length
	state := newTestState(5, 5, ModeStandard, []Snake{
		testSnake(100, Coord{X: 0, Y: 2}, Coord{X: 0, Y: 2}),
		testSnake(100, Coord{X: 4, Y: 2}, Coord{X: 4, Y: 2}),
	}, nil, nil)

	flood := NewFloodfill(state, FloodSimple)

	ourOwned, _ := flood.CountOwned(0)
	enemyOwned, _ := flood.CountOwned(1)
	assert.Equal(t, ourOwned, enemyOwned, "mirrored snakes split the board evenly")

	draws := 0
	for _, cell := range flood.Cells.Cells {
		if cell.Kind == FloodDraw {
			draws++
		}
	}
	assert.Equal(t, 5, draws, "the whole middle column is contested\n%s", visualizeState(state))
}

func TestFloodfillSimpleLongerSnakeWinsTies(t *testing.T) {
	state := newTestState(5, 5, ModeStandard, []Snake{
		testSnake(100, Coord{X: 0, Y: 2}, Coord{X: 0, Y: 1}, Coord{X: 0, Y: 0}),
		testSnake(100, Coord{X: 4, Y: 2}, Coord{X: 4, Y: 2}),
	}, nil, nil)

	flood := NewFloodfill(state, FloodSimple)

	// equidistant cells go to the longer snake, no draws appear
	for _, cell := range flood.Cells.Cells {
		assert.NotEqual(t, FloodDraw, cell.Kind)
	}

	ourOwned, _ := flood.CountOwned(0)
	enemyOwned, _ := flood.CountOwned(1)
	assert.Greater(t, ourOwned, enemyOwned)
}

func TestFloodfillSnakeCellsBlockSimple(t *testing.T) {
	// a wall of enemy body splits the board; simple floods never pass
	// through bodies
	state := newTestState(5, 5, ModeStandard, []Snake{
		testSnake(100, Coord{X: 0, Y: 0}, Coord{X: 0, Y: 0}),
		testSnake(100,
			Coord{X: 4, Y: 3},
			Coord{X: 4, Y: 2},
			Coord{X: 3, Y: 2},
			Coord{X: 2, Y: 2},
			Coord{X: 1, Y: 2},
			Coord{X: 0, Y: 2},
			Coord{X: 0, Y: 3},
		),
	}, nil, nil)

	flood := NewFloodfill(state, FloodSimple)

	owned, _ := flood.CountOwned(0)
	assert.Equal(t, 9, owned, "we own exactly the pocket under the wall\n%s", visualizeState(state))
}

func TestFloodfillFollowSnakesPassesVacatedBody(t *testing.T) {
	state := newTestState(5, 5, ModeStandard, []Snake{
		testSnake(100, Coord{X: 1, Y: 1}, Coord{X: 2, Y: 1}, Coord{X: 2, Y: 2}),
	}, nil, nil)

	flood := NewFloodfill(state, FloodFollowSnakes)

	owned, ownedSnake := flood.CountOwned(0)
	assert.Greater(t, ownedSnake, 0, "vacated body cells become owned territory")
	assert.Greater(t, owned, 15)
	assert.True(t, flood.DeadEnds[0])
}

func TestFloodfillFollowSnakesStarvation(t *testing.T) {
	// with almost no health the flood dies before covering the board
	state := newTestState(11, 11, ModeStandard, []Snake{
		testSnake(3, Coord{X: 5, Y: 5}, Coord{X: 5, Y: 4}),
	}, nil, nil)

	flood := NewFloodfill(state, FloodFollowSnakes)

	owned, ownedSnake := flood.CountOwned(0)
	total := owned + ownedSnake
	require.Greater(t, total, 0)
	// three steps of reach: at most the cells within manhattan
	// distance three, including recovered body cells
	assert.LessOrEqual(t, total, 25)
}

func TestFloodfillFollowSnakesFoodExtendsReach(t *testing.T) {
	hungry := newTestState(11, 11, ModeStandard, []Snake{
		testSnake(3, Coord{X: 5, Y: 5}, Coord{X: 5, Y: 4}),
	}, nil, nil)
	fed := newTestState(11, 11, ModeStandard, []Snake{
		testSnake(3, Coord{X: 5, Y: 5}, Coord{X: 5, Y: 4}),
	}, []Coord{{X: 5, Y: 6}}, nil)

	hungryFlood := NewFloodfill(hungry, FloodFollowSnakes)
	fedFlood := NewFloodfill(fed, FloodFollowSnakes)

	hungryOwned, _ := hungryFlood.CountOwned(0)
	fedOwned, _ := fedFlood.CountOwned(0)

	assert.Greater(t, fedOwned, hungryOwned, "food on the way refills the flood head")
}

func TestFloodfillFollowSnakesHazardDrainsReach(t *testing.T) {
	clear := newTestState(11, 11, ModeStandard, []Snake{
		testSnake(20, Coord{X: 5, Y: 5}, Coord{X: 5, Y: 4}),
	}, nil, nil)

	hazards := make([]Coord, 0, 121)
	for x := 0; x < 11; x++ {
		for y := 0; y < 11; y++ {
			hazards = append(hazards, Coord{X: x, Y: y})
		}
	}
	soaked := newTestState(11, 11, ModeStandard, []Snake{
		testSnake(20, Coord{X: 5, Y: 5}, Coord{X: 5, Y: 4}),
	}, nil, hazards)

	clearFlood := NewFloodfill(clear, FloodFollowSnakes)
	soakedFlood := NewFloodfill(soaked, FloodFollowSnakes)

	clearOwned, _ := clearFlood.CountOwned(0)
	soakedOwned, _ := soakedFlood.CountOwned(0)

	assert.Less(t, soakedOwned, clearOwned, "hazard damage shortens the flood")
}

func TestFloodfillDeadEndCleared(t *testing.T) {
	state := newTestState(7, 7, ModeStandard, []Snake{
		testSnake(100, Coord{X: 1, Y: 1}, Coord{X: 1, Y: 0}),
		testSnake(100, Coord{X: 5, Y: 5}, Coord{X: 5, Y: 6}),
	}, nil, nil)

	flood := NewFloodfill(state, FloodFollowSnakes)

	assert.False(t, flood.DeadEnds[0], "open boards are shared, not sealed")
	assert.False(t, flood.DeadEnds[1])
}

func TestFloodfillConstrictorDrawBorder(t *testing.T) {
	state := newTestState(7, 7, ModeConstrictor, []Snake{
		testSnake(100, Coord{X: 1, Y: 3}, Coord{X: 1, Y: 3}),
		testSnake(100, Coord{X: 5, Y: 3}, Coord{X: 5, Y: 3}),
	}, nil, nil)

	flood := NewFloodfill(state, FloodConstrictor)

	draws := 0
	for _, cell := range flood.Cells.Cells {
		if cell.Kind == FloodDraw {
			draws++
		}
	}
	assert.Greater(t, draws, 0, "touching territories leave a draw border")
	assert.False(t, flood.DeadEnds[0])
	assert.False(t, flood.DeadEnds[1])
}

func TestFloodfillSoundness(t *testing.T) {
	// every owned cell must be reachable from the head in exactly its
	// claimed number of steps; on an open board with one snake this is
	// the manhattan distance around the body
	state := newTestState(7, 7, ModeStandard, []Snake{
		testSnake(100, Coord{X: 3, Y: 3}, Coord{X: 3, Y: 2}),
	}, nil, nil)

	flood := NewFloodfill(state, FloodSimple)

	head := state.Snakes[0].Head()
	for i, cell := range flood.Cells.Cells {
		if cell.Kind != FloodOwned {
			continue
		}
		pos := Coord{X: i % 7, Y: i / 7}
		assert.GreaterOrEqual(t, cell.Step, head.ManhattanDist(pos),
			"a claim cannot be faster than the manhattan distance")
	}
}

func TestFloodfillCountOwnedRoyale(t *testing.T) {
	state := newTestState(5, 5, ModeRoyale, []Snake{
		testSnake(100, Coord{X: 2, Y: 2}, Coord{X: 2, Y: 2}),
	}, nil, []Coord{{X: 0, Y: 0}, {X: 0, Y: 1}})

	flood := NewFloodfill(state, FloodSimple)

	owned, ownedHazards, ownedSnakes, ownedSnakeHazards := flood.CountOwnedRoyale(0)
	assert.Equal(t, 2, ownedHazards)
	assert.Equal(t, 22, owned)
	assert.Zero(t, ownedSnakes)
	assert.Zero(t, ownedSnakeHazards)
}
