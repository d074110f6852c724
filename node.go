package main

// Node wraps a state with its depth in the search tree.
type Node struct {
	State *State
	Depth int
}

// NewNode wraps a state at the given depth.
func NewNode(state *State, depth int) *Node {
	return &Node{State: state, Depth: depth}
}

// Step simulates one joint action set and returns the child node.
func (n *Node) Step(actionSet []Direction) *Node {
	return NewNode(n.State.Step(actionSet), n.Depth+1)
}

// Clone deep-copies the node so workers can mutate simulation flags
// independently.
func (n *Node) Clone() *Node {
	return NewNode(n.State.Clone(), n.Depth)
}

// UpdateSnakeSimulation freezes enemies too far away to matter within
// the given search horizon. Only applied in crowded non-constrictor
// games, where the joint action product would otherwise explode.
func (n *Node) UpdateSnakeSimulation(maxDepth int) {
	snakes := n.State.Snakes
	if len(snakes) <= 3 || n.State.Mode == ModeConstrictor {
		return
	}

	ourHead := snakes[0].Head()
	for i := 1; i < len(snakes); i++ {
		snakes[i].ShouldSimulate = ourHead.ManhattanDist(snakes[i].Head()) <= 2*maxDepth
	}
}
