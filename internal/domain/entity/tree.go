package entity

import (
	"errors"
	"fmt"
)

// NodeID uniquely identifies a node in a layout tree. Leaf node ids are the
// string form of the pane id they carry.
type NodeID string

// Orientation indicates how a split container divides its children.
type Orientation int

const (
	OrientationNone   Orientation = iota // Leaf node
	OrientationRow                       // Children side by side (left/right)
	OrientationColumn                    // Children stacked (top/bottom)
)

// DefaultSplitRatio is the divider position given to new split containers.
const DefaultSplitRatio = 0.5

// Node is one node of a layout tree. A node is either a leaf carrying a
// pane, or a split container with exactly two children. Nodes reference each
// other by id through the owning Tree arena; they hold no direct pointers.
type Node struct {
	ID     NodeID
	Parent NodeID // "" for the root

	// Split container fields
	Orientation Orientation
	First       NodeID
	Second      NodeID
	Ratio       float64 // 0.0-1.0, proportion allocated to First

	// Leaf field
	Pane *Pane
}

// IsLeaf returns true if this node carries a pane.
func (n *Node) IsLeaf() bool {
	return n.Pane != nil
}

// IsSplit returns true if this node is a two-child split container.
func (n *Node) IsSplit() bool {
	return n.Pane == nil && n.First != "" && n.Second != ""
}

// ErrNodeNotFound is returned when a node lookup fails.
var ErrNodeNotFound = errors.New("node not found")

// Tree is the arena owning every node reachable from its root. The tree
// always contains at least one leaf; the structure over the arena is an
// index graph, so ownership stays with the arena alone.
type Tree struct {
	nodes map[NodeID]*Node
	root  NodeID
}

// NewTree creates a tree whose root is a leaf carrying the given pane.
func NewTree(initial *Pane) *Tree {
	root := &Node{
		ID:   NodeID(initial.ID),
		Pane: initial,
	}
	return &Tree{
		nodes: map[NodeID]*Node{root.ID: root},
		root:  root.ID,
	}
}

// RootID returns the id of the root node.
func (t *Tree) RootID() NodeID {
	return t.root
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	return t.nodes[t.root]
}

// Node returns the node with the given id, or nil.
func (t *Tree) Node(id NodeID) *Node {
	return t.nodes[id]
}

// PaneNode returns the leaf node carrying the given pane, or nil.
func (t *Tree) PaneNode(id PaneID) *Node {
	node := t.nodes[NodeID(id)]
	if node == nil || !node.IsLeaf() {
		return nil
	}
	return node
}

// Attach adds a node to the arena. An existing node with the same id is
// replaced.
func (t *Tree) Attach(node *Node) {
	t.nodes[node.ID] = node
}

// Detach removes a node from the arena. Links referencing the node are the
// caller's responsibility.
func (t *Tree) Detach(id NodeID) {
	delete(t.nodes, id)
}

// SetRoot re-roots the tree at the given node and clears its parent link.
func (t *Tree) SetRoot(id NodeID) error {
	node := t.nodes[id]
	if node == nil {
		return fmt.Errorf("set root %q: %w", id, ErrNodeNotFound)
	}
	node.Parent = ""
	t.root = id
	return nil
}

// Sibling returns the other child of the node's parent split, or nil if the
// node is the root or the parent is malformed.
func (t *Tree) Sibling(id NodeID) *Node {
	node := t.nodes[id]
	if node == nil || node.Parent == "" {
		return nil
	}
	parent := t.nodes[node.Parent]
	if parent == nil {
		return nil
	}
	switch id {
	case parent.First:
		return t.nodes[parent.Second]
	case parent.Second:
		return t.nodes[parent.First]
	}
	return nil
}

// Walk traverses the subtree rooted at from in depth-first order (node, then
// First, then Second), calling fn for each node. It stops early if fn
// returns false. An empty from walks from the root.
func (t *Tree) Walk(from NodeID, fn func(*Node) bool) {
	if from == "" {
		from = t.root
	}
	t.walk(t.nodes[from], fn)
}

func (t *Tree) walk(node *Node, fn func(*Node) bool) bool {
	if node == nil {
		return true
	}
	if !fn(node) {
		return false
	}
	if node.First != "" {
		if !t.walk(t.nodes[node.First], fn) {
			return false
		}
	}
	if node.Second != "" {
		if !t.walk(t.nodes[node.Second], fn) {
			return false
		}
	}
	return true
}

// Leaves returns all leaf nodes under from in depth-first order.
func (t *Tree) Leaves(from NodeID) []*Node {
	var leaves []*Node
	t.Walk(from, func(n *Node) bool {
		if n.IsLeaf() {
			leaves = append(leaves, n)
		}
		return true
	})
	return leaves
}

// LeafCount returns the number of panes in the tree.
func (t *Tree) LeafCount() int {
	return len(t.Leaves(""))
}

// FirstLeaf descends into First children from the given node until it
// reaches a leaf. Used to reassign activity after a removal.
func (t *Tree) FirstLeaf(from NodeID) *Node {
	node := t.nodes[from]
	for node != nil && !node.IsLeaf() {
		node = t.nodes[node.First]
	}
	return node
}

// Validate checks the structural invariants: a single root with no parent,
// every split container has exactly two children with correct back-links,
// every leaf carries a pane, and at least one leaf exists.
func (t *Tree) Validate() error {
	root := t.nodes[t.root]
	if root == nil {
		return fmt.Errorf("validate: root %q: %w", t.root, ErrNodeNotFound)
	}
	if root.Parent != "" {
		return fmt.Errorf("validate: root %q has parent %q", t.root, root.Parent)
	}

	leafCount := 0
	var walkErr error
	t.Walk("", func(n *Node) bool {
		if n.IsLeaf() {
			leafCount++
			if n.First != "" || n.Second != "" {
				walkErr = fmt.Errorf("validate: leaf %q has children", n.ID)
				return false
			}
			return true
		}
		if n.First == "" || n.Second == "" {
			walkErr = fmt.Errorf("validate: container %q has fewer than two children", n.ID)
			return false
		}
		if n.Orientation == OrientationNone {
			walkErr = fmt.Errorf("validate: container %q has no orientation", n.ID)
			return false
		}
		for _, childID := range []NodeID{n.First, n.Second} {
			child := t.nodes[childID]
			if child == nil {
				walkErr = fmt.Errorf("validate: container %q child %q: %w", n.ID, childID, ErrNodeNotFound)
				return false
			}
			if child.Parent != n.ID {
				walkErr = fmt.Errorf("validate: node %q parent link is %q, want %q", childID, child.Parent, n.ID)
				return false
			}
		}
		return true
	})
	if walkErr != nil {
		return walkErr
	}
	if leafCount == 0 {
		return errors.New("validate: tree has no panes")
	}
	return nil
}
