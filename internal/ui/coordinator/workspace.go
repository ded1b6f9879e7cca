// Package coordinator orchestrates the layout engine for the running shell:
// one WorkspaceCoordinator per pane grid, a LayoutContext resolving the
// focused grid, and a DragController translating tab drags into layout
// mutations.
package coordinator

import (
	"context"
	"fmt"

	"github.com/ouvrier/plume/internal/application/port"
	"github.com/ouvrier/plume/internal/application/usecase"
	"github.com/ouvrier/plume/internal/domain/entity"
	"github.com/ouvrier/plume/internal/logging"
	"github.com/ouvrier/plume/internal/ui/layout"
)

// TabLabel is one entry of a pane's tab strip, derived from the pane's
// document list and the shared document table.
type TabLabel struct {
	ID     entity.DocumentID
	Title  string
	Dirty  bool
	Active bool
}

// WorkspaceCoordinator owns one pane grid: its workspace tree, the editor
// view handle per pane, and the last-known pane rectangles. All mutations
// run on the event loop; the coordinator keeps views and tab strips in sync
// with every tree change.
type WorkspaceCoordinator struct {
	workspace *entity.Workspace
	panes     *usecase.ManagePanesUseCase
	docs      *usecase.ManageDocumentsUseCase
	factory   port.ViewFactory

	views  map[entity.PaneID]port.EditorView
	bounds entity.Rect
	rects  map[entity.NodeID]entity.Rect

	// onFocus reports that this grid received focus; wired to the
	// LayoutContext by the shell.
	onFocus func(*WorkspaceCoordinator)
}

// NewWorkspaceCoordinator creates a coordinator over a fresh workspace with
// a single initial pane and its view.
func NewWorkspaceCoordinator(
	ctx context.Context,
	id entity.WorkspaceID,
	name string,
	panes *usecase.ManagePanesUseCase,
	docs *usecase.ManageDocumentsUseCase,
	factory port.ViewFactory,
	idGenerator port.IDGenerator,
) *WorkspaceCoordinator {
	ctx = logging.WithWorkspaceID(ctx, string(id))
	log := logging.FromContext(ctx)

	initial := entity.NewPane(entity.PaneID(idGenerator()))
	c := &WorkspaceCoordinator{
		workspace: entity.NewWorkspace(id, name, initial),
		panes:     panes,
		docs:      docs,
		factory:   factory,
		views:     make(map[entity.PaneID]port.EditorView),
		rects:     make(map[entity.NodeID]entity.Rect),
	}
	c.createView(initial.ID, "")
	c.focusView(initial.ID)

	log.Debug().Str("pane_id", string(initial.ID)).Msg("workspace coordinator created")
	return c
}

// SetOnFocus registers the focus callback.
func (c *WorkspaceCoordinator) SetOnFocus(fn func(*WorkspaceCoordinator)) {
	c.onFocus = fn
}

// Workspace returns the underlying workspace.
func (c *WorkspaceCoordinator) Workspace() *entity.Workspace {
	return c.workspace
}

// View returns the editor view for a pane, or nil.
func (c *WorkspaceCoordinator) View(paneID entity.PaneID) port.EditorView {
	return c.views[paneID]
}

// ActiveView returns the active pane's editor view, or nil.
func (c *WorkspaceCoordinator) ActiveView() port.EditorView {
	return c.views[c.workspace.ActivePaneID]
}

// SetBounds records the grid's surface rectangle and recomputes every
// pane's geometry.
func (c *WorkspaceCoordinator) SetBounds(ctx context.Context, bounds entity.Rect) {
	c.bounds = bounds
	c.recomputeRects(ctx)
}

// Bounds returns the grid's surface rectangle.
func (c *WorkspaceCoordinator) Bounds() entity.Rect {
	return c.bounds
}

// Rects returns the last-known rectangle per node. Hit-testing and focus
// navigation run against this map.
func (c *WorkspaceCoordinator) Rects() map[entity.NodeID]entity.Rect {
	return c.rects
}

func (c *WorkspaceCoordinator) recomputeRects(ctx context.Context) {
	rects, err := layout.ComputeRects(c.workspace.Tree, c.bounds)
	if err != nil {
		logging.FromContext(ctx).Error().Err(err).
			Str("workspace_id", string(c.workspace.ID)).Msg("rect solve failed")
		return
	}
	c.rects = rects
}

// OpenDocument loads a document and opens it in the pane: resolves content
// through the shared table or storage, appends to the tab strip, activates
// it, and pushes the content into the pane's view.
func (c *WorkspaceCoordinator) OpenDocument(ctx context.Context, paneID entity.PaneID, id entity.DocumentID) error {
	content, err := c.docs.LoadContent(ctx, id)
	if err != nil {
		return err
	}
	return c.ApplyOpen(ctx, paneID, id, content)
}

// ApplyOpen applies an already-loaded document to the pane. Split out from
// OpenDocument so asynchronous loads can re-enter here on the event loop;
// the pane is re-validated inside since it may have been removed while the
// load was outstanding.
func (c *WorkspaceCoordinator) ApplyOpen(ctx context.Context, paneID entity.PaneID, id entity.DocumentID, content string) error {
	doc, err := c.docs.Open(ctx, c.workspace, paneID, id, content)
	if err != nil {
		return err
	}
	if view := c.views[paneID]; view != nil {
		view.SetContent(doc.Content)
	}
	return nil
}

// SwitchDocument makes another listed document visible in the pane.
func (c *WorkspaceCoordinator) SwitchDocument(ctx context.Context, paneID entity.PaneID, id entity.DocumentID) error {
	if err := c.docs.Switch(ctx, c.workspace, paneID, id); err != nil {
		return err
	}
	if view := c.views[paneID]; view != nil {
		if doc := c.docs.Get(id); doc != nil {
			view.SetContent(doc.Content)
		}
	}
	return nil
}

// CloseDocument removes a document from the pane. An emptied pane is
// removed from the tree unless it is the grid's sole pane, which stays
// alive empty. The view is updated to the successor document, or cleared.
func (c *WorkspaceCoordinator) CloseDocument(ctx context.Context, paneID entity.PaneID, id entity.DocumentID, isMoving bool) error {
	res, err := c.docs.Close(ctx, c.workspace, paneID, id, isMoving)
	if err != nil {
		return err
	}

	if res.PaneEmptied {
		if c.workspace.PaneCount() > 1 {
			return c.RemovePane(ctx, paneID)
		}
		if view := c.views[paneID]; view != nil {
			view.SetContent("")
		}
		return nil
	}

	if view := c.views[paneID]; view != nil {
		if doc := c.docs.Get(res.NewActiveID); doc != nil {
			view.SetContent(doc.Content)
		}
	}
	return nil
}

// SplitPane splits the target pane along the given edge, creating an empty
// pane and its view. Returns the new pane's id.
func (c *WorkspaceCoordinator) SplitPane(ctx context.Context, targetPaneID entity.PaneID, edge usecase.Edge) (entity.PaneID, error) {
	out, err := c.panes.Split(ctx, usecase.SplitPaneInput{
		Workspace:    c.workspace,
		TargetPaneID: targetPaneID,
		Edge:         edge,
	})
	if err != nil {
		return "", err
	}
	c.createView(out.NewPane.ID, "")
	c.recomputeRects(ctx)
	c.RefreshAllEditors()
	return out.NewPane.ID, nil
}

// RemovePane removes a pane from the tree, promoting its sibling, and
// destroys its view. Documents still listed by the pane are closed first so
// the table's reference counts stay truthful.
func (c *WorkspaceCoordinator) RemovePane(ctx context.Context, paneID entity.PaneID) error {
	node := c.workspace.FindPane(paneID)
	if node == nil {
		logging.FromContext(ctx).Warn().Str("pane_id", string(paneID)).
			Msg("remove pane target does not exist")
		return fmt.Errorf("remove pane %q: %w", paneID, usecase.ErrPaneNotFound)
	}

	for _, id := range append([]entity.DocumentID(nil), node.Pane.DocumentIDs...) {
		if _, err := c.docs.Close(ctx, c.workspace, paneID, id, false); err != nil {
			return err
		}
	}

	out, err := c.panes.Remove(ctx, c.workspace, paneID)
	if err != nil {
		return err
	}
	if !out.Removed {
		// Sole pane of the grid: kept alive empty.
		if view := c.views[paneID]; view != nil {
			view.SetContent("")
		}
		return nil
	}

	if view := c.views[paneID]; view != nil {
		view.Destroy()
		delete(c.views, paneID)
	}
	if out.NewActivePaneID != "" {
		c.focusView(out.NewActivePaneID)
	}
	c.recomputeRects(ctx)
	c.RefreshAllEditors()
	return nil
}

// SetActivePane focuses a pane and reports the focus to the shell.
func (c *WorkspaceCoordinator) SetActivePane(ctx context.Context, paneID entity.PaneID) error {
	previous := c.workspace.ActivePaneID
	if err := c.panes.Focus(ctx, c.workspace, paneID); err != nil {
		return err
	}
	if previous != paneID {
		if view := c.views[previous]; view != nil {
			view.Blur()
		}
	}
	c.focusView(paneID)
	if c.onFocus != nil {
		c.onFocus(c)
	}
	return nil
}

// NavigateFocus moves pane focus in a direction using the last-known
// rectangles. Returns the focused pane id, or "" when focus did not move.
func (c *WorkspaceCoordinator) NavigateFocus(ctx context.Context, dir usecase.NavigateDirection) entity.PaneID {
	moved := c.panes.NavigateFocus(ctx, c.workspace, dir, c.rects)
	if moved != "" {
		c.focusView(moved)
		if c.onFocus != nil {
			c.onFocus(c)
		}
	}
	return moved
}

// ResizePane adjusts the nearest applicable divider for the pane.
func (c *WorkspaceCoordinator) ResizePane(ctx context.Context, paneID entity.PaneID, dir usecase.ResizeDirection, stepPercent, minPanePercent float64) error {
	if err := c.panes.Resize(ctx, c.workspace, paneID, dir, stepPercent, minPanePercent); err != nil {
		return err
	}
	c.recomputeRects(ctx)
	c.RefreshAllEditors()
	return nil
}

// RefreshAllEditors asks every surviving view to re-measure. Needed after
// any tree surgery; reparented views can mis-measure.
func (c *WorkspaceCoordinator) RefreshAllEditors() {
	for _, view := range c.views {
		view.RequestRemeasure()
	}
}

// Tabs renders the pane's tab strip state from the document table.
func (c *WorkspaceCoordinator) Tabs(paneID entity.PaneID) []TabLabel {
	node := c.workspace.FindPane(paneID)
	if node == nil {
		return nil
	}
	labels := make([]TabLabel, 0, len(node.Pane.DocumentIDs))
	for _, id := range node.Pane.DocumentIDs {
		label := TabLabel{
			ID:     id,
			Title:  id.DisplayName(),
			Active: id == node.Pane.ActiveDocumentID,
		}
		if doc := c.docs.Get(id); doc != nil {
			label.Title = doc.DisplayName
			label.Dirty = doc.Dirty
		}
		labels = append(labels, label)
	}
	return labels
}

// PaneAt returns the pane under the point, using last-known rectangles.
func (c *WorkspaceCoordinator) PaneAt(x, y float64) *entity.Node {
	return layout.PaneAt(c.workspace.Tree, c.rects, x, y)
}

func (c *WorkspaceCoordinator) createView(paneID entity.PaneID, initial string) {
	view := c.factory.NewView(initial)
	view.OnChange(func(content string) {
		node := c.workspace.FindPane(paneID)
		if node == nil || node.Pane.ActiveDocumentID == "" {
			return
		}
		c.docs.UpdateContent(node.Pane.ActiveDocumentID, content)
	})
	c.views[paneID] = view
}

func (c *WorkspaceCoordinator) focusView(paneID entity.PaneID) {
	if view := c.views[paneID]; view != nil {
		view.Focus()
	}
}
