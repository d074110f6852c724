package main

import (
	"log/slog"
	"time"

	"golang.org/x/exp/rand"
)

// runToEnd plays one fully random game from state and reports how it
// ended for us, together with our first action of the rollout.
func runToEnd(state *State, rng *rand.Rand) (Outcome, Direction) {
	current := state.Clone()
	actions := make([]Direction, len(current.Snakes))

	for i := range current.Snakes {
		valid := current.GetValidActions(i)
		actions[i] = valid[rng.Intn(len(valid))]
	}
	firstAction := actions[0]

	for !current.IsEndState() {
		for i := range current.Snakes {
			valid := current.GetValidActions(i)
			actions[i] = valid[rng.Intn(len(valid))]
		}
		current = current.Step(actions)
	}

	switch current.GetWinner() {
	case 0:
		return WinOutcome(0), firstAction
	case -1:
		return DrawOutcome(), firstAction
	default:
		return LossOutcome(LossNone), firstAction
	}
}

// MonteCarlo picks the direction with the best random-rollout win rate.
// Far weaker than the tree searches; kept as a sanity baseline to judge
// heuristics against.
func MonteCarlo(cfg *Config, game *GameRequest) Direction {
	startTime := time.Now()
	budget := time.Duration(cfg.Timeout) * time.Millisecond

	state := StateFromRequest(game)
	rng := rand.New(rand.NewSource(uint64(time.Now().UnixNano())))

	var dirResults [4]float64
	var dirValid [4]bool
	for _, action := range state.GetValidActions(0) {
		if action != NoMove {
			dirValid[action] = true
		}
	}

	rollouts := 0
	for time.Since(startTime) < budget {
		outcome, direction := runToEnd(state, rng)
		switch outcome.Kind {
		case OutcomeWin:
			dirResults[direction] += 1.0
		case OutcomeLoss:
			dirResults[direction] -= 1.0
		}
		rollouts++
	}

	best := Up
	bestScore := 0.0
	found := false
	for i := 0; i < 4; i++ {
		if !dirValid[i] {
			continue
		}
		if !found || dirResults[i] > bestScore {
			best = Direction(i)
			bestScore = dirResults[i]
			found = true
		}
	}

	slog.Debug("monte carlo finished", "rollouts", rollouts, "action", best.String())
	return best
}
