package main

import (
	"math"
	"sync/atomic"
)

// AlphaBeta is the pruning window passed down the search.
type AlphaBeta struct {
	Alpha float64
	Beta  float64
}

// NewAlphaBeta returns the widest window.
func NewAlphaBeta() AlphaBeta {
	return AlphaBeta{Alpha: math.Inf(-1), Beta: math.Inf(1)}
}

// ShouldAbort reports whether the window is closed.
func (ab AlphaBeta) ShouldAbort() bool {
	return ab.Alpha >= ab.Beta
}

// RunAlphaBeta evaluates the root node to the given depth and returns
// the best root action, its outcome and the number of evaluated nodes.
func RunAlphaBeta(root *Node, heuristic Heuristic, maxDepth int, abort *atomic.Bool) (Direction, Outcome, int) {
	return evalNode(root, maxDepth, heuristic, NewAlphaBeta(), abort)
}

// evalNode is the paranoid minimax step: we maximize over our actions
// while all enemies form a single joint minimizer over the cartesian
// product of their actions.
func evalNode(node *Node, maxDepth int, heuristic Heuristic, alphaBeta AlphaBeta, abort *atomic.Bool) (Direction, Outcome, int) {
	// termination conditions
	if abort.Load() || alphaBeta.ShouldAbort() {
		return NoMove, LossOutcome(LossOwnOrWallCollision), 1
	}

	if node.State.IsEndState() {
		switch node.State.GetWinner() {
		case -1:
			return NoMove, DrawOutcome(), 1
		case 0:
			return NoMove, WinOutcome(-float64(node.State.Snakes[0].Len())), 1
		default:
			return NoMove, LossOutcome(node.State.Snakes[0].LossReason), 1
		}
	}

	if !node.State.Snakes[0].Alive() {
		return NoMove, LossOutcome(node.State.Snakes[0].LossReason), 1
	}

	if node.Depth == maxDepth {
		return NoMove, heuristic.Eval(node.State), 1
	}

	// recursive evaluation
	numSnakes := len(node.State.Snakes)
	evaluatedNodes := 1

	enemyActions := make([][]Direction, 0, numSnakes-1)
	for i := 1; i < numSnakes; i++ {
		enemyActions = append(enemyActions, node.State.GetValidActions(i))
	}

	var scores [4]Outcome
	for i := range scores {
		scores[i] = LossOutcome(LossOwnOrWallCollision)
	}

	// max step
	for _, ownAction := range node.State.GetValidActions(0) {
		if alphaBeta.ShouldAbort() {
			break
		}

		// min step over the joint enemy action sets
		worstOutcome := WinOutcome(1000.0)
		alphaBetaMin := alphaBeta

		forEachActionSet(ownAction, enemyActions, func(actionSet []Direction) bool {
			if alphaBetaMin.ShouldAbort() {
				worstOutcome = LossOutcome(LossOwnOrWallCollision)
				return false
			}

			nextNode := node.Step(actionSet)

			_, outcome, evNodes := evalNode(nextNode, maxDepth, heuristic, alphaBetaMin, abort)
			evaluatedNodes += evNodes

			if worstOutcome.Better(outcome) {
				worstOutcome = outcome
			}
			if alphaBetaMin.Beta > worstOutcome.Score() {
				alphaBetaMin.Beta = worstOutcome.Score()
			}

			// nothing the enemies do can hurt us more than the worst loss
			if worstOutcome == LossOutcome(LossOwnOrWallCollision) {
				return false
			}
			return true
		})

		scores[ownAction] = worstOutcome

		if alphaBeta.Alpha < worstOutcome.Score() {
			alphaBeta.Alpha = worstOutcome.Score()
		}
	}

	dir, best := getBestAction(scores)
	return dir, best, evaluatedNodes
}

// forEachActionSet walks the cartesian product of the enemy action
// lists, handing [ownAction, enemy1, enemy2, ...] to visit. The visit
// callback returns false to stop early. The slice is reused between
// calls.
func forEachActionSet(ownAction Direction, enemyActions [][]Direction, visit func([]Direction) bool) {
	actionSet := make([]Direction, len(enemyActions)+1)
	actionSet[0] = ownAction

	var recurse func(i int) bool
	recurse = func(i int) bool {
		if i == len(enemyActions) {
			return visit(actionSet)
		}
		for _, action := range enemyActions[i] {
			actionSet[i+1] = action
			if !recurse(i + 1) {
				return false
			}
		}
		return true
	}

	recurse(0)
}

// getBestAction picks the first maximum in fixed direction order, so Up
// wins ties.
func getBestAction(scores [4]Outcome) (Direction, Outcome) {
	bestI := 0
	for i := 1; i < len(scores); i++ {
		if scores[i].Better(scores[bestI]) {
			bestI = i
		}
	}
	return Direction(bestI), scores[bestI]
}
