package entity

import "testing"

// buildSplitTree constructs a tree of the shape:
//
//	row
//	├── pane1
//	└── col
//	    ├── pane2
//	    └── pane3
func buildSplitTree(t *testing.T) *Tree {
	t.Helper()

	tree := NewTree(NewPane("pane1"))
	pane2 := &Node{ID: "pane2", Pane: NewPane("pane2")}
	pane3 := &Node{ID: "pane3", Pane: NewPane("pane3")}
	col := &Node{
		ID:          "col",
		Orientation: OrientationColumn,
		First:       "pane2",
		Second:      "pane3",
		Ratio:       DefaultSplitRatio,
	}
	row := &Node{
		ID:          "row",
		Orientation: OrientationRow,
		First:       "pane1",
		Second:      "col",
		Ratio:       DefaultSplitRatio,
	}
	pane2.Parent = "col"
	pane3.Parent = "col"
	col.Parent = "row"
	tree.Node("pane1").Parent = "row"

	tree.Attach(pane2)
	tree.Attach(pane3)
	tree.Attach(col)
	tree.Attach(row)
	if err := tree.SetRoot("row"); err != nil {
		t.Fatalf("set root: %v", err)
	}
	return tree
}

func TestTree_WalkOrder(t *testing.T) {
	tree := buildSplitTree(t)

	var order []NodeID
	tree.Walk("", func(n *Node) bool {
		order = append(order, n.ID)
		return true
	})

	expected := []NodeID{"row", "pane1", "col", "pane2", "pane3"}
	if len(order) != len(expected) {
		t.Fatalf("expected %d nodes, got %d: %v", len(expected), len(order), order)
	}
	for i, id := range expected {
		if order[i] != id {
			t.Fatalf("walk order mismatch at %d: got %v, want %v", i, order, expected)
		}
	}
}

func TestTree_LeafQueries(t *testing.T) {
	tree := buildSplitTree(t)

	if got := tree.LeafCount(); got != 3 {
		t.Fatalf("expected 3 leaves, got %d", got)
	}
	if leaf := tree.FirstLeaf("row"); leaf == nil || leaf.ID != "pane1" {
		t.Fatalf("expected first leaf pane1, got %v", leaf)
	}
	if leaf := tree.FirstLeaf("col"); leaf == nil || leaf.ID != "pane2" {
		t.Fatalf("expected first leaf pane2, got %v", leaf)
	}
	if node := tree.PaneNode("pane3"); node == nil || !node.IsLeaf() {
		t.Fatal("expected pane3 to resolve to a leaf node")
	}
	if node := tree.PaneNode("row"); node != nil {
		t.Fatal("expected container id to not resolve as a pane")
	}
}

func TestTree_Sibling(t *testing.T) {
	tree := buildSplitTree(t)

	if sib := tree.Sibling("pane2"); sib == nil || sib.ID != "pane3" {
		t.Fatalf("expected sibling pane3, got %v", sib)
	}
	if sib := tree.Sibling("col"); sib == nil || sib.ID != "pane1" {
		t.Fatalf("expected sibling pane1, got %v", sib)
	}
	if sib := tree.Sibling("row"); sib != nil {
		t.Fatal("expected root to have no sibling")
	}
}

func TestTree_Validate(t *testing.T) {
	tree := buildSplitTree(t)
	if err := tree.Validate(); err != nil {
		t.Fatalf("expected valid tree, got %v", err)
	}

	// Simulate a corrupted container with a missing child.
	tree.Detach("pane3")
	if err := tree.Validate(); err == nil {
		t.Fatal("expected validation failure for missing child")
	}
}

func TestTree_ValidateBrokenParentLink(t *testing.T) {
	tree := buildSplitTree(t)
	tree.Node("pane2").Parent = "row"
	if err := tree.Validate(); err == nil {
		t.Fatal("expected validation failure for broken parent link")
	}
}

func TestNewTree_SingleLeafRoot(t *testing.T) {
	tree := NewTree(NewPane("only"))
	if err := tree.Validate(); err != nil {
		t.Fatalf("expected valid single-leaf tree, got %v", err)
	}
	if tree.RootID() != "only" {
		t.Fatalf("expected root id 'only', got %q", tree.RootID())
	}
	if !tree.Root().IsLeaf() {
		t.Fatal("expected root to be a leaf")
	}
}
