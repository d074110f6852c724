package main

// RoyaleWeights are the component weights for royale games.
type RoyaleWeights struct {
	Area         float64 `mapstructure:"area" yaml:"area"`
	Health       float64 `mapstructure:"health" yaml:"health"`
	Length       float64 `mapstructure:"length" yaml:"length"`
	Food         float64 `mapstructure:"food" yaml:"food"`
	AliveEnemies float64 `mapstructure:"alive_enemies" yaml:"alive_enemies"`
	Central      float64 `mapstructure:"central" yaml:"central"`
}

// DefaultRoyaleWeights returns the tuned defaults for royale.
func DefaultRoyaleWeights() RoyaleWeights {
	return RoyaleWeights{
		Area:         3.5,
		Health:       2.0,
		Length:       2.0,
		Food:         1.0,
		AliveEnemies: 4.0,
		Central:      0.25,
	}
}

// RoyaleHeuristic discounts territory that lies under the shrinking
// hazard ring and otherwise scores like the standard heuristic.
type RoyaleHeuristic struct {
	Weights RoyaleWeights
}

func (h *RoyaleHeuristic) Eval(state *State) Outcome {
	if !state.Snakes[0].Alive() {
		return LossOutcome(state.Snakes[0].LossReason)
	}

	flood := NewFloodfill(state, FloodFollowSnakes)
	return HeuristicOutcome(h.calcScore(state, flood))
}

func (h *RoyaleHeuristic) calcScore(state *State, flood *Floodfill) float64 {
	enemyID := strongestEnemy(state, flood)

	ownCells, ownAreaScore := royaleArea(flood, 0.4, 0.4, 0)
	enemyCells, enemyAreaScore := royaleArea(flood, 0.4, 0.4, enemyID)

	areaScore := ownAreaScore / (enemyAreaScore + ownAreaScore)

	if flood.DeadEnds[0] || flood.DeadEnds[enemyID] {
		areaScore += ownCells - enemyCells
	}

	return h.Weights.Area*areaScore +
		h.Weights.Health*healthScore(state, 0) +
		h.Weights.Length*lengthScore(state, 0) +
		h.Weights.Food*foodScore(state, flood, 0) +
		h.Weights.AliveEnemies*aliveEnemiesScore(state, 0) +
		h.Weights.Central*centralScore(state, 0)
}

// strongestEnemy picks the alive enemy with the largest territory as the
// one to compare against.
func strongestEnemy(state *State, flood *Floodfill) int {
	owned := flood.CountOwnedAll()

	best := 1
	bestArea := -1
	for i := 1; i < len(state.Snakes); i++ {
		if state.Snakes[i].Alive() && owned[i] > bestArea {
			best = i
			bestArea = owned[i]
		}
	}
	return best
}

// royaleArea returns the raw owned-cell count and the discounted area
// score for one snake. Hazard cells and vacating body cells each apply
// their discount; cells that are both apply both.
func royaleArea(flood *Floodfill, snakeDiscount, hazardDiscount float64, snakeID int) (cells, score float64) {
	owned, ownedHazards, ownedSnakes, ownedSnakeHazards := flood.CountOwnedRoyale(uint8(snakeID))

	cells = float64(owned + ownedHazards + ownedSnakes + ownedSnakeHazards)

	score = float64(owned) +
		float64(ownedHazards)*hazardDiscount +
		float64(ownedSnakes)*snakeDiscount +
		float64(ownedSnakeHazards)*snakeDiscount*hazardDiscount

	return cells, score
}
