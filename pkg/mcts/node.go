package mcts

import "github.com/IlikeChooros/c4-mcts/pkg/c4"

// Search tree node. Children and untried actions live in fixed-size arrays,
// bounded by the maximum number of columns.
type Node struct {
	NodeStats
	// Move that produced this node from its parent
	Move c4.Move
	// Set when Move won the game for the player who made it
	Terminal bool

	children  [c4.MaxCols]Handle
	nchildren uint8
	actions   [c4.MaxCols]uint8
	nactions  uint8
	tried     uint8
}

func newNode(terminal bool, move c4.Move, actions []int) Node {
	node := Node{
		Terminal: terminal,
		Move:     move,
	}
	for _, c := range actions {
		node.actions[node.nactions] = uint8(c)
		node.nactions++
	}
	return node
}

// Handles of the expanded children, in expansion order
func (node *Node) Children() []Handle {
	return node.children[:node.nchildren]
}

// Legal columns of this position, in expansion order
func (node *Node) Actions() []uint8 {
	return node.actions[:node.nactions]
}

// Number of actions already expanded
func (node *Node) Tried() int {
	return int(node.tried)
}

// Whether some action is still waiting for expansion
func (node *Node) CanExpand() bool {
	return node.tried < node.nactions
}

func (node *Node) addChild(h Handle) {
	node.children[node.nchildren] = h
	node.nchildren++
}

// Forget every expanded child and every action not tried yet,
// the caller is responsible for freeing the children
func (node *Node) truncate() {
	node.nchildren = 0
	node.nactions = node.tried
}
