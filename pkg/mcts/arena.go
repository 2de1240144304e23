package mcts

import "fmt"

type slot struct {
	node Node
	used bool
}

// Index-addressed node pool, the tree owns every node through it.
// Freed slots are reused by later inserts.
type Arena struct {
	slots []slot
	free  []Handle
	live  int
}

func NewArena(capacity int) *Arena {
	return &Arena{slots: make([]slot, 0, capacity)}
}

// Store the node, returns its handle.
// Pointers obtained from Get are invalidated by Insert.
func (a *Arena) Insert(node Node) Handle {
	a.live++
	if n := len(a.free); n > 0 {
		h := a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[h] = slot{node: node, used: true}
		return h
	}

	a.slots = append(a.slots, slot{node: node, used: true})
	return Handle(len(a.slots) - 1)
}

func (a *Arena) Get(h Handle) *Node {
	s := &a.slots[h]
	if !s.used {
		panic(fmt.Sprintf("mcts: access to freed node %d", h))
	}
	return &s.node
}

// Free the node and, recursively, all of its children
func (a *Arena) Remove(h Handle) {
	node := a.Get(h)
	for _, child := range node.Children() {
		a.Remove(child)
	}

	a.slots[h] = slot{}
	a.free = append(a.free, h)
	a.live--
}

// Drop every node, keeps the allocated memory
func (a *Arena) Clear() {
	a.slots = a.slots[:0]
	a.free = a.free[:0]
	a.live = 0
}

// Number of live nodes
func (a *Arena) Len() int {
	return a.live
}
