package main

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

type searchResult struct {
	depth   int
	action  Direction
	outcome Outcome
}

// workQueue is a mutex-guarded FIFO of (depth, root clone) pairs. Pops
// are rare, one per completed depth, so a lock is plenty.
type workQueue struct {
	mu    sync.Mutex
	items []workItem
}

type workItem struct {
	depth int
	node  *Node
}

func newWorkQueue(root *Node, maxDepth int) *workQueue {
	items := make([]workItem, 0, maxDepth)
	for depth := 1; depth <= maxDepth; depth++ {
		items = append(items, workItem{depth: depth, node: root.Clone()})
	}
	return &workQueue{items: items}
}

func (q *workQueue) pop() (workItem, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return workItem{}, false
	}
	item := q.items[0]
	q.items = q.items[1:]
	return item, true
}

// IterativeSearchMT runs the parallel iterative-deepening alpha-beta
// search and returns the best action found within the configured
// timeout.
func IterativeSearchMT(cfg *Config, game *GameRequest, heuristic Heuristic) Direction {
	startTime := time.Now()
	deadline := startTime.Add(time.Duration(cfg.Timeout) * time.Millisecond)

	state := StateFromRequest(game)

	// fast path: no real choice, no workers
	validActions := state.GetValidActions(0)
	if len(validActions) == 1 {
		return validActions[0]
	}

	root := NewNode(state, 0)
	queue := newWorkQueue(root, cfg.MaxDepth)

	// unbounded in effect: one slot per queued depth, workers never
	// block on send
	results := make(chan searchResult, cfg.MaxDepth)
	var abort atomic.Bool

	var group errgroup.Group
	for i := 0; i < cfg.ThreadsPerGame; i++ {
		group.Go(func() error {
			searchWorker(queue, results, heuristic, &abort)
			return nil
		})
	}

	// closing after the last worker exits lets the driver drain every
	// buffered result before giving up
	go func() {
		group.Wait()
		close(results)
	}()

	bestAction := NoMove
	currentOutcome := LossOutcome(LossOwnOrWallCollision)
	currentDepth := 0
	noResult := LossOutcome(LossNone)

	// collect results until the deadline, keeping the deepest useful
	// answer
collect:
	for {
		var result searchResult
		var open bool
		select {
		case result, open = <-results:
			if !open {
				break collect
			}
		case <-time.After(time.Until(deadline)):
			break collect
		}

		slog.Debug("search result",
			"outcome", result.outcome.String(),
			"action", result.action.String(),
			"depth", result.depth,
			"elapsed_ms", time.Since(startTime).Milliseconds(),
		)

		if result.depth > currentDepth && result.outcome.Better(noResult) {
			currentDepth = result.depth
			bestAction = result.action
			currentOutcome = result.outcome
			if result.outcome.IsWin() {
				break
			}
		} else if noResult.Better(currentOutcome) && result.outcome.Better(currentOutcome) {
			// the best so far is a real loss: take anything better,
			// even from a shallower depth
			currentDepth = result.depth
			bestAction = result.action
			currentOutcome = result.outcome
		}

		if !time.Now().Before(deadline) {
			break
		}
	}

	abort.Store(true)

	if bestAction == NoMove {
		if len(validActions) > 0 {
			bestAction = validActions[0]
		} else {
			bestAction = Up
		}
	}

	slog.Debug("search finished",
		"elapsed_ms", time.Since(startTime).Milliseconds(),
		"action", bestAction.String(),
		"depth", currentDepth,
		"outcome", currentOutcome.String(),
	)

	return bestAction
}

// searchWorker pops depths off the queue and evaluates them until the
// queue drains or the driver aborts. The queue lock is never held
// across a search call.
func searchWorker(queue *workQueue, results chan<- searchResult, heuristic Heuristic, abort *atomic.Bool) {
	defer func() {
		// a panicking worker counts as one lost result, the others
		// keep searching
		if r := recover(); r != nil {
			slog.Error("search worker panicked", "panic", r)
		}
	}()

	for !abort.Load() {
		item, ok := queue.pop()
		if !ok {
			return
		}

		item.node.UpdateSnakeSimulation(item.depth)
		action, outcome, evaluated := RunAlphaBeta(item.node, heuristic, item.depth, abort)

		slog.Debug("depth finished",
			"depth", item.depth,
			"evaluated_nodes", evaluated,
		)

		results <- searchResult{depth: item.depth, action: action, outcome: outcome}
	}
}
