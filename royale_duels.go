package main

// RoyaleDuelsWeights are the component weights for two-player royale.
type RoyaleDuelsWeights struct {
	Area       float64 `mapstructure:"area" yaml:"area"`
	SnakeArea  float64 `mapstructure:"snake_area" yaml:"snake_area"`
	HazardArea float64 `mapstructure:"hazard_area" yaml:"hazard_area"`
	Health     float64 `mapstructure:"health" yaml:"health"`
	Length     float64 `mapstructure:"length" yaml:"length"`
	Food       float64 `mapstructure:"food" yaml:"food"`
}

// DefaultRoyaleDuelsWeights returns the tuned defaults for two-player
// royale.
func DefaultRoyaleDuelsWeights() RoyaleDuelsWeights {
	return RoyaleDuelsWeights{
		Area:       1.0,
		SnakeArea:  0.1,
		HazardArea: 0.1,
		Health:     0.05,
	}
}

// RoyaleDuelsHeuristic combines the duels territory split with the
// royale hazard discounts.
type RoyaleDuelsHeuristic struct {
	Weights RoyaleDuelsWeights
}

func (h *RoyaleDuelsHeuristic) Eval(state *State) Outcome {
	if !state.Snakes[0].Alive() {
		return LossOutcome(state.Snakes[0].LossReason)
	}

	flood := NewFloodfill(state, FloodFollowSnakes)

	ourSnake := &state.Snakes[0]
	enemySnake := firstAliveEnemy(state)

	ourSum, ourCells := h.cellSum(flood, 0)
	enemySum, enemyCells := h.cellSum(flood, 1)

	areaScore := ourSum / (ourSum + enemySum)

	if flood.DeadEnds[0] || flood.DeadEnds[1] {
		areaScore += ourCells - enemyCells
	}

	score := h.Weights.Health*duelsHealthScore(ourSnake) +
		h.Weights.Area*areaScore +
		h.Weights.Length*duelsLengthScore(ourSnake, enemySnake) +
		h.Weights.Food*foodScore(state, flood, 0)

	return HeuristicOutcome(score)
}

// cellSum returns the discounted territory score and the raw cell count
// for one snake. Cells both hazardous and vacating-body count at half
// the hazard discount.
func (h *RoyaleDuelsHeuristic) cellSum(flood *Floodfill, snakeID uint8) (sum, cells float64) {
	owned, ownedHazards, ownedSnakes, ownedSnakeHazards := flood.CountOwnedRoyale(snakeID)

	sum = float64(owned) +
		h.Weights.SnakeArea*float64(ownedSnakes) +
		h.Weights.HazardArea*float64(ownedHazards) +
		h.Weights.HazardArea*float64(ownedSnakeHazards)/2.0

	cells = float64(owned + ownedSnakes + ownedHazards + ownedSnakeHazards)
	return sum, cells
}
