package main

import (
	"math"
	"sort"
)

// StandardWeights are the component weights of the standard heuristic.
type StandardWeights struct {
	Area         float64 `mapstructure:"area" yaml:"area"`
	Health       float64 `mapstructure:"health" yaml:"health"`
	Length       float64 `mapstructure:"length" yaml:"length"`
	AliveEnemies float64 `mapstructure:"alive_enemies" yaml:"alive_enemies"`
	Food         float64 `mapstructure:"food" yaml:"food"`
	Central      float64 `mapstructure:"central" yaml:"central"`
}

// DefaultStandardWeights returns the tuned defaults for free-for-all
// games.
func DefaultStandardWeights() StandardWeights {
	return StandardWeights{
		Area:         3.0,
		Health:       3.0,
		Length:       1.5,
		AliveEnemies: 4.0,
		Food:         1.0,
		Central:      0.25,
	}
}

// StandardHeuristic is the weighted combination of territory, health,
// length, food access, enemy attrition and centrality used in standard
// games.
type StandardHeuristic struct {
	Weights StandardWeights
}

func (h *StandardHeuristic) Eval(state *State) Outcome {
	if !state.Snakes[0].Alive() {
		return LossOutcome(state.Snakes[0].LossReason)
	}

	flood := NewFloodfill(state, FloodFollowSnakes)
	return HeuristicOutcome(h.calcScore(state, flood, 0))
}

// EvalAll scores every snake off one shared simple fill; this is the
// leaf evaluation MaxN uses.
func (h *StandardHeuristic) EvalAll(state *State) []Outcome {
	outcomes := make([]Outcome, 0, len(state.Snakes))

	flood := NewFloodfill(state, FloodSimple)

	for i := range state.Snakes {
		if !state.Snakes[i].Alive() {
			outcomes = append(outcomes, LossOutcome(state.Snakes[i].LossReason))
			continue
		}
		outcomes = append(outcomes, HeuristicOutcome(h.calcScore(state, flood, i)))
	}
	return outcomes
}

func (h *StandardHeuristic) calcScore(state *State, flood *Floodfill, snakeID int) float64 {
	areaScore := areaScore(flood, 0.0, snakeID)
	if flood.DeadEnds[0] && anyFalse(flood.DeadEnds[1:]) {
		// sealed in while an enemy is not: heavily discount territory
		areaScore -= 10.0
	}

	return h.Weights.Area*areaScore +
		h.Weights.Health*healthScore(state, snakeID) +
		h.Weights.Length*lengthScore(state, snakeID) +
		h.Weights.AliveEnemies*aliveEnemiesScore(state, snakeID) +
		h.Weights.Central*centralScore(state, snakeID) +
		h.Weights.Food*foodScore(state, flood, snakeID)
}

func anyFalse(flags []bool) bool {
	for _, f := range flags {
		if !f {
			return true
		}
	}
	return false
}

// areaScore normalizes owned territory by the free board area. Cells
// that were vacating body segments count at a discount.
func areaScore(flood *Floodfill, snakeDiscount float64, snakeID int) float64 {
	owned, ownedSnake := flood.CountOwned(uint8(snakeID))

	lengthSum := 0
	for i := range flood.State.Snakes {
		if flood.State.Snakes[i].Alive() {
			lengthSum += flood.State.Snakes[i].Len()
		}
	}

	free := flood.Cells.Width*flood.Cells.Height - lengthSum
	return (float64(owned) + float64(ownedSnake)*snakeDiscount) / float64(free)
}

// healthScore saturates near full health and falls off as the square
// root below that.
func healthScore(state *State, snakeID int) float64 {
	health := state.Snakes[snakeID].Health
	if health > 95 {
		return 1.0
	}
	return math.Sqrt(float64(health) / 95.0)
}

// lengthScore rewards being longer than the longest enemy, with
// diminishing returns past three segments of lead.
func lengthScore(state *State, snakeID int) float64 {
	length := state.Snakes[snakeID].Len()

	maxOther := 0
	for i := range state.Snakes {
		if i != snakeID && state.Snakes[i].Len() > maxOther {
			maxOther = state.Snakes[i].Len()
		}
	}

	diff := length - maxOther
	if diff > 3 {
		diff = 3
	}

	score := math.Sqrt(math.Abs(float64(diff)))
	if diff < 0 {
		return -score
	}
	return score
}

// foodScore sums the closeness of the three nearest foods the snake
// actually owns in the territory map.
func foodScore(state *State, flood *Floodfill, snakeID int) float64 {
	dists := make([]int, 0, len(state.Food))
	for _, food := range state.Food {
		cell := flood.Cells.Get(food)
		if cell.Kind == FloodOwned && int(cell.ID) == snakeID {
			dists = append(dists, cell.Step)
		}
	}

	if len(dists) > 3 {
		sort.Ints(dists)
		dists = dists[:3]
	}

	maxDist := state.Grid.Width + state.Grid.Height

	score := 0.0
	for _, d := range dists {
		if d < maxDist {
			score += float64(maxDist-d) / float64(maxDist)
		}
	}
	return score / 3.0
}

// aliveEnemiesScore grows as enemies drop out, reaching 1 when the
// snake is the last one standing.
func aliveEnemiesScore(state *State, snakeID int) float64 {
	others := len(state.Snakes) - 1
	if others == 0 {
		return 1.0
	}

	alive := 0
	for i := range state.Snakes {
		if i != snakeID && state.Snakes[i].Alive() {
			alive++
		}
	}

	return 1.0 - float64(alive)/float64(others)
}

// centralScore decays with the distance of the head from the board
// center.
func centralScore(state *State, snakeID int) float64 {
	center := Coord{X: state.Grid.Width / 2, Y: state.Grid.Height / 2}
	dist := center.ManhattanDist(state.Snakes[snakeID].Head())

	if dist == 0 {
		return 1.0
	}
	return 1.0 / float64(dist)
}
