package entity

import "time"

// WorkspaceID uniquely identifies a workspace (one pane grid).
type WorkspaceID string

// Workspace represents one grid of panes arranged in a layout tree. The
// editor runs two of these: the primary editing grid and the preview grid.
type Workspace struct {
	ID           WorkspaceID
	Name         string
	Tree         *Tree
	ActivePaneID PaneID
	CreatedAt    time.Time
}

// NewWorkspace creates a workspace with a single initial pane.
func NewWorkspace(id WorkspaceID, name string, initialPane *Pane) *Workspace {
	return &Workspace{
		ID:           id,
		Name:         name,
		Tree:         NewTree(initialPane),
		ActivePaneID: initialPane.ID,
		CreatedAt:    time.Now(),
	}
}

// PaneCount returns the number of panes in the workspace.
func (w *Workspace) PaneCount() int {
	if w.Tree == nil {
		return 0
	}
	return w.Tree.LeafCount()
}

// FindPane returns the leaf node carrying the pane, or nil.
func (w *Workspace) FindPane(id PaneID) *Node {
	if w.Tree == nil {
		return nil
	}
	return w.Tree.PaneNode(id)
}

// ActivePane returns the currently active pane, or nil.
func (w *Workspace) ActivePane() *Pane {
	node := w.FindPane(w.ActivePaneID)
	if node == nil {
		return nil
	}
	return node.Pane
}

// AllPanes returns every pane in the workspace in depth-first order.
func (w *Workspace) AllPanes() []*Pane {
	if w.Tree == nil {
		return nil
	}
	leaves := w.Tree.Leaves("")
	panes := make([]*Pane, 0, len(leaves))
	for _, leaf := range leaves {
		panes = append(panes, leaf.Pane)
	}
	return panes
}
