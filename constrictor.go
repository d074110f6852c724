package main

// ConstrictorWeights are the component weights for constrictor games.
type ConstrictorWeights struct {
	Area         float64 `mapstructure:"area" yaml:"area"`
	AliveEnemies float64 `mapstructure:"alive_enemies" yaml:"alive_enemies"`
}

// DefaultConstrictorWeights returns the tuned defaults for constrictor.
func DefaultConstrictorWeights() ConstrictorWeights {
	return ConstrictorWeights{
		Area:         0.01,
		AliveEnemies: 0.1,
	}
}

// ConstrictorHeuristic scores the raw territory lead over the strongest
// enemy; food and health play no role in this mode.
type ConstrictorHeuristic struct {
	Weights ConstrictorWeights
}

func (h *ConstrictorHeuristic) Eval(state *State) Outcome {
	if !state.Snakes[0].Alive() {
		return LossOutcome(state.Snakes[0].LossReason)
	}

	flood := NewFloodfill(state, FloodSimple)
	owned := flood.CountOwnedAll()

	maxEnemyArea := -1
	for i := 1; i < len(state.Snakes); i++ {
		if state.Snakes[i].Alive() && owned[i] > maxEnemyArea {
			maxEnemyArea = owned[i]
		}
	}

	areaScore := float64(owned[0] - maxEnemyArea)
	score := h.Weights.AliveEnemies*aliveEnemiesScore(state, 0) + h.Weights.Area*areaScore

	return HeuristicOutcome(score)
}
