package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeuristicsReturnLossWhenDead(t *testing.T) {
	state := newTestState(11, 11, ModeStandard, []Snake{
		testSnake(100, Coord{X: 5, Y: 5}, Coord{X: 5, Y: 4}),
		testSnake(100, Coord{X: 2, Y: 2}, Coord{X: 2, Y: 1}),
	}, nil, nil)
	state.Snakes[0].Die(LossSnakeCollision)

	heuristics := []Heuristic{
		&StandardHeuristic{Weights: DefaultStandardWeights()},
		&DuelsHeuristic{Weights: DefaultDuelsWeights()},
		&RoyaleHeuristic{Weights: DefaultRoyaleWeights()},
		&RoyaleDuelsHeuristic{Weights: DefaultRoyaleDuelsWeights()},
		&ConstrictorHeuristic{Weights: DefaultConstrictorWeights()},
	}

	for _, h := range heuristics {
		outcome := h.Eval(state)
		assert.Equal(t, LossOutcome(LossSnakeCollision), outcome, "dead snakes short-circuit to their loss reason")
	}
}

func TestHealthScore(t *testing.T) {
	state := newTestState(11, 11, ModeStandard, []Snake{
		testSnake(100, Coord{X: 5, Y: 5}, Coord{X: 5, Y: 4}),
	}, nil, nil)

	state.Snakes[0].Health = 100
	assert.Equal(t, 1.0, healthScore(state, 0))

	state.Snakes[0].Health = 95
	assert.InDelta(t, 1.0, healthScore(state, 0), 1e-9)

	state.Snakes[0].Health = 24
	assert.InDelta(t, 0.5024, healthScore(state, 0), 1e-3)

	state.Snakes[0].Health = 0
	assert.Zero(t, healthScore(state, 0))
}

func TestLengthScore(t *testing.T) {
	testCases := []struct {
		Description string
		OurLen      int
		EnemyLen    int
		Expected    float64
	}{
		{"equal lengths", 3, 3, 0.0},
		{"one ahead", 4, 3, 1.0},
		{"four ahead is capped at three", 7, 3, 1.7320508},
		{"one behind", 3, 4, -1.0},
	}

	for _, tc := range testCases {
		t.Run(tc.Description, func(t *testing.T) {
			ourBody := make([]Coord, tc.OurLen)
			for i := range ourBody {
				ourBody[i] = Coord{X: 1, Y: 9 - i}
			}
			enemyBody := make([]Coord, tc.EnemyLen)
			for i := range enemyBody {
				enemyBody[i] = Coord{X: 9, Y: 9 - i}
			}

			state := newTestState(11, 11, ModeStandard, []Snake{
				testSnake(100, ourBody...),
				testSnake(100, enemyBody...),
			}, nil, nil)

			assert.InDelta(t, tc.Expected, lengthScore(state, 0), 1e-6)
		})
	}
}

func TestCentralScore(t *testing.T) {
	state := newTestState(11, 11, ModeStandard, []Snake{
		testSnake(100, Coord{X: 5, Y: 5}, Coord{X: 5, Y: 4}),
	}, nil, nil)
	assert.Equal(t, 1.0, centralScore(state, 0), "the exact center scores 1")

	corner := newTestState(11, 11, ModeStandard, []Snake{
		testSnake(100, Coord{X: 0, Y: 0}, Coord{X: 1, Y: 0}),
	}, nil, nil)
	assert.InDelta(t, 0.1, centralScore(corner, 0), 1e-9)
}

func TestAliveEnemiesScore(t *testing.T) {
	state := newTestState(11, 11, ModeStandard, []Snake{
		testSnake(100, Coord{X: 5, Y: 5}, Coord{X: 5, Y: 4}),
		testSnake(100, Coord{X: 2, Y: 2}, Coord{X: 2, Y: 1}),
		testSnake(100, Coord{X: 8, Y: 8}, Coord{X: 8, Y: 7}),
	}, nil, nil)

	assert.Zero(t, aliveEnemiesScore(state, 0), "all enemies alive scores 0")

	state.Snakes[1].Die(LossStarvation)
	assert.InDelta(t, 0.5, aliveEnemiesScore(state, 0), 1e-9)

	state.Snakes[2].Die(LossHeadCollision)
	assert.Equal(t, 1.0, aliveEnemiesScore(state, 0), "last snake standing scores 1")
}

func TestFoodScoreOnlyCountsOwnedFood(t *testing.T) {
	state := newTestState(11, 11, ModeStandard, []Snake{
		testSnake(100, Coord{X: 2, Y: 5}, Coord{X: 2, Y: 4}),
		testSnake(100, Coord{X: 8, Y: 5}, Coord{X: 8, Y: 4}),
	}, []Coord{{X: 1, Y: 5}, {X: 9, Y: 5}}, nil)

	flood := NewFloodfill(state, FloodFollowSnakes)

	ourScore := foodScore(state, flood, 0)
	assert.Greater(t, ourScore, 0.0, "the nearby food is ours")
	assert.Less(t, ourScore, 1.0)

	// the enemy food is symmetric
	assert.InDelta(t, ourScore, foodScore(state, flood, 1), 1e-9)
}

func TestStandardHeuristicPrefersMoreSpace(t *testing.T) {
	h := &StandardHeuristic{Weights: DefaultStandardWeights()}

	// cramped into the corner by the enemy body vs roaming free
	cramped := newTestState(11, 11, ModeStandard, []Snake{
		testSnake(100, Coord{X: 0, Y: 0}, Coord{X: 0, Y: 1}),
		testSnake(100,
			Coord{X: 2, Y: 0},
			Coord{X: 2, Y: 1},
			Coord{X: 2, Y: 2},
			Coord{X: 1, Y: 2},
			Coord{X: 0, Y: 2},
		),
	}, nil, nil)

	open := newTestState(11, 11, ModeStandard, []Snake{
		testSnake(100, Coord{X: 5, Y: 5}, Coord{X: 5, Y: 4}),
		testSnake(100,
			Coord{X: 2, Y: 0},
			Coord{X: 2, Y: 1},
			Coord{X: 2, Y: 2},
			Coord{X: 1, Y: 2},
			Coord{X: 0, Y: 2},
		),
	}, nil, nil)

	crampedOutcome := h.Eval(cramped)
	openOutcome := h.Eval(open)

	require.Equal(t, OutcomeHeuristic, crampedOutcome.Kind)
	require.Equal(t, OutcomeHeuristic, openOutcome.Kind)
	assert.True(t, openOutcome.Better(crampedOutcome),
		"open position should score higher\ncramped:\n%s\nopen:\n%s",
		visualizeState(cramped), visualizeState(open))
}

func TestStandardHeuristicEvalAll(t *testing.T) {
	h := &StandardHeuristic{Weights: DefaultStandardWeights()}

	state := newTestState(11, 11, ModeStandard, []Snake{
		testSnake(100, Coord{X: 5, Y: 5}, Coord{X: 5, Y: 4}),
		testSnake(100, Coord{X: 2, Y: 2}, Coord{X: 2, Y: 1}),
	}, nil, nil)
	state.Snakes[1].Die(LossStarvation)

	outcomes := h.EvalAll(state)

	require.Len(t, outcomes, 2)
	assert.Equal(t, OutcomeHeuristic, outcomes[0].Kind)
	assert.Equal(t, LossOutcome(LossStarvation), outcomes[1])
}

func TestDuelsHeuristicDeadEndBias(t *testing.T) {
	h := &DuelsHeuristic{Weights: DefaultDuelsWeights()}

	// the enemy head is sealed behind its own body with the tail too
	// far to vacate in time; the raw cell difference should dominate
	state := newTestState(11, 11, ModeDuels, []Snake{
		testSnake(100, Coord{X: 7, Y: 7}, Coord{X: 7, Y: 6}),
		testSnake(100,
			Coord{X: 0, Y: 0},
			Coord{X: 0, Y: 1},
			Coord{X: 1, Y: 1},
			Coord{X: 1, Y: 0},
			Coord{X: 2, Y: 0},
			Coord{X: 3, Y: 0},
		),
	}, nil, nil)

	outcome := h.Eval(state)
	require.Equal(t, OutcomeHeuristic, outcome.Kind)
	assert.Greater(t, outcome.Value, 10.0, "starving a dead-end opponent scores far above normal area values")
}

func TestConstrictorHeuristicAreaLead(t *testing.T) {
	h := &ConstrictorHeuristic{Weights: DefaultConstrictorWeights()}

	ahead := newTestState(7, 7, ModeConstrictor, []Snake{
		testSnake(100, Coord{X: 3, Y: 3}, Coord{X: 3, Y: 2}),
		testSnake(100, Coord{X: 0, Y: 0}, Coord{X: 1, Y: 0}),
	}, nil, nil)

	outcome := h.Eval(ahead)
	require.Equal(t, OutcomeHeuristic, outcome.Kind)
	assert.Greater(t, outcome.Value, 0.0, "the central snake controls more cells")
}

func TestHeuristicForMode(t *testing.T) {
	cfg := &Config{
		Duels:       DefaultDuelsWeights(),
		Royale:      DefaultRoyaleWeights(),
		RoyaleDuels: DefaultRoyaleDuelsWeights(),
		Standard:    DefaultStandardWeights(),
		Constrictor: DefaultConstrictorWeights(),
	}

	assert.IsType(t, &ConstrictorHeuristic{}, heuristicForMode(cfg, ModeConstrictor, 4))
	assert.IsType(t, &RoyaleHeuristic{}, heuristicForMode(cfg, ModeRoyale, 4))
	assert.IsType(t, &RoyaleDuelsHeuristic{}, heuristicForMode(cfg, ModeRoyale, 2))
	assert.IsType(t, &DuelsHeuristic{}, heuristicForMode(cfg, ModeDuels, 2))
	assert.IsType(t, &StandardHeuristic{}, heuristicForMode(cfg, ModeStandard, 4))
	assert.IsType(t, &StandardHeuristic{}, heuristicForMode(cfg, ModeSnail, 4))
}
