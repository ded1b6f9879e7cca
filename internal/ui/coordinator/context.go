package coordinator

import (
	"github.com/ouvrier/plume/internal/application/port"
	"github.com/ouvrier/plume/internal/domain/entity"
)

// LayoutContext tracks which pane grid most recently received focus.
// Toolbar-style commands resolve their target through it instead of
// reaching for ambient globals; all accessors are pure queries over the
// recorded state.
type LayoutContext struct {
	coordinators []*WorkspaceCoordinator
	active       *WorkspaceCoordinator
}

// NewLayoutContext creates a context over the given grids. The first grid
// starts focused.
func NewLayoutContext(coordinators ...*WorkspaceCoordinator) *LayoutContext {
	lc := &LayoutContext{coordinators: coordinators}
	if len(coordinators) > 0 {
		lc.active = coordinators[0]
	}
	for _, c := range coordinators {
		c.SetOnFocus(lc.setActive)
	}
	return lc
}

func (lc *LayoutContext) setActive(c *WorkspaceCoordinator) {
	lc.active = c
}

// ActiveManager returns the most recently focused grid.
func (lc *LayoutContext) ActiveManager() *WorkspaceCoordinator {
	return lc.active
}

// ActivePane returns the focused grid's active pane, or nil.
func (lc *LayoutContext) ActivePane() *entity.Pane {
	if lc.active == nil {
		return nil
	}
	return lc.active.Workspace().ActivePane()
}

// ActiveView returns the focused grid's active editor view, or nil. Every
// formatting and insert command operates against this accessor.
func (lc *LayoutContext) ActiveView() port.EditorView {
	if lc.active == nil {
		return nil
	}
	return lc.active.ActiveView()
}

// Coordinators returns every grid in registration order.
func (lc *LayoutContext) Coordinators() []*WorkspaceCoordinator {
	return lc.coordinators
}

// AllWorkspaces returns every grid's workspace. The document table's
// reference-count scans run over this.
func (lc *LayoutContext) AllWorkspaces() []*entity.Workspace {
	workspaces := make([]*entity.Workspace, 0, len(lc.coordinators))
	for _, c := range lc.coordinators {
		workspaces = append(workspaces, c.Workspace())
	}
	return workspaces
}
