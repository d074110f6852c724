package main

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// maxnResult is one joint action set with the per-snake scores of its
// subtree.
type maxnResult struct {
	actionSet []Direction
	scores    []float64
}

// IterativeMaxN is the N-player alternative to the paranoid search:
// every snake maximizes its own mean outcome instead of ganging up on
// us. Needs a heuristic that can score all snakes at once.
func IterativeMaxN(cfg *Config, game *GameRequest, heuristic Heuristic) Direction {
	startTime := time.Now()
	deadline := startTime.Add(time.Duration(cfg.Timeout) * time.Millisecond)

	evalAll, ok := heuristic.(MultiEvaluator)
	if !ok {
		// fall back to the paranoid search rather than guessing scores
		return IterativeSearchMT(cfg, game, heuristic)
	}

	state := StateFromRequest(game)

	validActions := state.GetValidActions(0)
	if len(validActions) == 1 {
		return validActions[0]
	}

	root := NewNode(state, 0)

	results := make(chan searchResult, cfg.MaxDepth)
	var abort atomic.Bool

	go func() {
		for depth := 1; depth <= cfg.MaxDepth; depth++ {
			depthStart := time.Now()

			action, scores := evalMaxN(root, evalAll, depth, &abort)
			if abort.Load() {
				return
			}
			results <- searchResult{depth: depth, action: action, outcome: HeuristicOutcome(scores[0])}

			slog.Debug("maxn depth finished",
				"depth", depth,
				"elapsed_ms", time.Since(depthStart).Milliseconds(),
			)
		}
		close(results)
	}()

	bestAction := NoMove

	for {
		var result searchResult
		var open bool
		select {
		case result, open = <-results:
		case <-time.After(time.Until(deadline)):
			open = false
		}
		if !open {
			break
		}

		if result.outcome.Score() <= LossOutcome(LossOwnOrWallCollision).Score() {
			break
		}
		bestAction = result.action
		if result.outcome.Score() >= WinOutcome(0).Score() {
			break
		}

		if !time.Now().Before(deadline) {
			break
		}
	}
	abort.Store(true)

	if bestAction == NoMove {
		bestAction = validActions[0]
	}

	return bestAction
}

// evalMaxN returns our best action and the subtree scores for every
// snake, assuming each enemy plays its best mean action.
func evalMaxN(node *Node, heuristic MultiEvaluator, maxDepth int, abort *atomic.Bool) (Direction, []float64) {
	numSnakes := len(node.State.Snakes)

	if abort.Load() {
		return NoMove, filledScores(numSnakes, LossOutcome(LossOwnOrWallCollision).Score())
	}

	// termination conditions
	if node.State.IsEndState() {
		winner := node.State.GetWinner()
		if winner == -1 {
			return NoMove, filledScores(numSnakes, DrawOutcome().Score())
		}
		scores := filledScores(numSnakes, LossOutcome(LossOwnOrWallCollision).Score())
		scores[winner] = WinOutcome(0).Score()
		return NoMove, scores
	}

	if !node.State.Snakes[0].Alive() {
		scores := filledScores(numSnakes, DrawOutcome().Score())
		scores[0] = LossOutcome(node.State.Snakes[0].LossReason).Score()
		return NoMove, scores
	}

	if node.Depth == maxDepth {
		outcomes := heuristic.EvalAll(node.State)
		scores := make([]float64, len(outcomes))
		for i, o := range outcomes {
			scores[i] = o.Score()
		}
		return NoMove, scores
	}

	// expand the full joint action product once, then let every snake
	// pick the action with the best mean over the sets containing it
	validActions := make([][]Direction, numSnakes)
	for i := 0; i < numSnakes; i++ {
		validActions[i] = node.State.GetValidActions(i)
	}

	var subtrees []maxnResult
	// per snake, per direction, the scores of the sets using it
	actionScores := make([][4][]float64, numSnakes)

	forEachJointActionSet(validActions, func(actionSet []Direction) bool {
		setCopy := make([]Direction, len(actionSet))
		copy(setCopy, actionSet)

		child := node.Step(setCopy)
		_, scores := evalMaxN(child, heuristic, maxDepth, abort)

		subtrees = append(subtrees, maxnResult{actionSet: setCopy, scores: scores})

		for i, score := range scores {
			if actionSet[i] != NoMove {
				actionScores[i][actionSet[i]] = append(actionScores[i][actionSet[i]], score)
			}
		}
		return !abort.Load()
	})

	means := make([][4]float64, numSnakes)
	for i := range actionScores {
		for dir := 0; dir < 4; dir++ {
			samples := actionScores[i][dir]
			if len(samples) == 0 {
				means[i][dir] = LossOutcome(LossOwnOrWallCollision).Score() * 2
				continue
			}
			sum := 0.0
			for _, s := range samples {
				sum += s
			}
			means[i][dir] = sum / float64(len(samples))
		}
	}

	// enemies take their best mean action
	enemyBest := make([]Direction, 0, numSnakes-1)
	for i := 1; i < numSnakes; i++ {
		if len(validActions[i]) == 1 && validActions[i][0] == NoMove {
			enemyBest = append(enemyBest, NoMove)
			continue
		}
		enemyBest = append(enemyBest, bestMeanAction(means[i]))
	}

	// among the sets consistent with that, pick our best subtree
	bestI := -1
	bestScore := LossOutcome(LossOwnOrWallCollision).Score() * 2
	bestMean := bestScore

	ownMeans := means[0]
	for i, subtree := range subtrees {
		if !matchesEnemyActions(subtree.actionSet, enemyBest) {
			continue
		}
		score := subtree.scores[0]
		mean := ownMeans[subtree.actionSet[0]]

		// avoid own actions whose average ends in death even when one
		// subtree looks good
		if (score > bestScore && mean > 0.0) || (bestMean < 0.0 && mean > bestMean) {
			bestI = i
			bestScore = score
			bestMean = mean
		}
	}

	if bestI == -1 {
		return validActions[0][0], filledScores(numSnakes, LossOutcome(LossOwnOrWallCollision).Score())
	}
	return subtrees[bestI].actionSet[0], subtrees[bestI].scores
}

func filledScores(n int, value float64) []float64 {
	scores := make([]float64, n)
	for i := range scores {
		scores[i] = value
	}
	return scores
}

func bestMeanAction(means [4]float64) Direction {
	best := 0
	for i := 1; i < 4; i++ {
		if means[i] > means[best] {
			best = i
		}
	}
	return Direction(best)
}

func matchesEnemyActions(actionSet []Direction, enemyBest []Direction) bool {
	for i, action := range actionSet[1:] {
		if action != enemyBest[i] {
			return false
		}
	}
	return true
}

// forEachJointActionSet walks the cartesian product of all snakes'
// action lists. The slice is reused between calls.
func forEachJointActionSet(validActions [][]Direction, visit func([]Direction) bool) {
	actionSet := make([]Direction, len(validActions))

	var recurse func(i int) bool
	recurse = func(i int) bool {
		if i == len(validActions) {
			return visit(actionSet)
		}
		for _, action := range validActions[i] {
			actionSet[i] = action
			if !recurse(i + 1) {
				return false
			}
		}
		return true
	}

	recurse(0)
}
