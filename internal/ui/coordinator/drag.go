package coordinator

import (
	"context"
	"errors"
	"fmt"

	"github.com/ouvrier/plume/internal/application/usecase"
	"github.com/ouvrier/plume/internal/domain/entity"
	"github.com/ouvrier/plume/internal/logging"
	"github.com/ouvrier/plume/internal/ui/layout"
)

// ErrNoDragSession is returned when a drop arrives without a live drag.
var ErrNoDragSession = errors.New("no drag session")

// DragSession is the ephemeral state of one in-progress tab drag. At most
// one session is live at a time; it is cleared on drop or cancel.
type DragSession struct {
	Source       *WorkspaceCoordinator
	SourcePaneID entity.PaneID
	DocumentID   entity.DocumentID
}

// DragController translates tab drag gestures into layout mutations: zone
// classification while the pointer moves, then a center-move or edge-split
// on drop. Source and target grids may differ; nothing in the drop path
// special-cases the cross-grid case.
type DragController struct {
	session *DragSession
	band    float64
}

// NewDragController creates a drag controller with the given edge band
// (fraction of a pane's dimension counting as an edge zone).
func NewDragController(band float64) *DragController {
	if band <= 0 || band >= 0.5 {
		band = layout.DefaultDropZoneBand
	}
	return &DragController{band: band}
}

// Session returns the live drag session, or nil.
func (dc *DragController) Session() *DragSession {
	return dc.session
}

// Dragging reports whether a drag is in progress.
func (dc *DragController) Dragging() bool {
	return dc.session != nil
}

// StartDrag begins a drag of a document tab out of a pane.
func (dc *DragController) StartDrag(ctx context.Context, source *WorkspaceCoordinator, paneID entity.PaneID, id entity.DocumentID) error {
	ctx = logging.WithPaneID(ctx, string(paneID))
	ctx = logging.WithDocumentID(ctx, string(id))
	log := logging.FromContext(ctx)

	node := source.Workspace().FindPane(paneID)
	if node == nil {
		log.Warn().Msg("drag start dropped: pane does not exist")
		return fmt.Errorf("drag start: pane %q: %w", paneID, usecase.ErrPaneNotFound)
	}
	if !node.Pane.ContainsDocument(id) {
		log.Warn().Msg("drag start dropped: document not listed in pane")
		return fmt.Errorf("drag start: %q: %w", id, usecase.ErrDocumentNotListed)
	}

	dc.session = &DragSession{
		Source:       source,
		SourcePaneID: paneID,
		DocumentID:   id,
	}
	log.Debug().Msg("drag started")
	return nil
}

// DragOver classifies the pointer position over a grid and returns the zone
// plus the overlay rectangle to highlight. ok is false when no drag is live
// or the pointer is over no pane.
func (dc *DragController) DragOver(target *WorkspaceCoordinator, x, y float64) (zone layout.DropZone, overlay entity.Rect, ok bool) {
	if dc.session == nil {
		return "", entity.Rect{}, false
	}
	node := target.PaneAt(x, y)
	if node == nil {
		return "", entity.Rect{}, false
	}
	rect := target.Rects()[node.ID]
	zone = layout.ClassifyZone(rect, x, y, dc.band)
	return zone, layout.ZoneRect(rect, zone), true
}

// Drop resolves the drag at the pointer position over the target grid: the
// pane is found by hit-test (falling back to the grid's active pane), the
// zone decides between moving the document into that pane (center) and
// splitting it along an edge. The session is cleared no matter how the
// drop resolves, so a failed drop can never leave a stuck overlay.
func (dc *DragController) Drop(ctx context.Context, target *WorkspaceCoordinator, x, y float64) error {
	log := logging.FromContext(ctx)

	session := dc.session
	if session == nil {
		return ErrNoDragSession
	}
	defer dc.CancelDrag()

	node := target.PaneAt(x, y)
	if node == nil {
		// Hit-test missed every pane (e.g. pointer on the far edge);
		// fall back to the grid's active pane.
		node = target.Workspace().FindPane(target.Workspace().ActivePaneID)
		if node == nil {
			log.Warn().Msg("drop dropped: no target pane resolvable")
			return fmt.Errorf("drop: %w", usecase.ErrPaneNotFound)
		}
	}

	rect := target.Rects()[node.ID]
	zone := layout.ClassifyZone(rect, x, y, dc.band)

	if zone == layout.DropZoneCenter {
		return dc.moveToPane(ctx, session, target, node.Pane.ID)
	}
	return dc.splitAndMove(ctx, session, target, node.Pane.ID, zone)
}

// CancelDrag clears the session. Drop and cancel converge here.
func (dc *DragController) CancelDrag() {
	dc.session = nil
}

func (dc *DragController) moveToPane(ctx context.Context, session *DragSession, target *WorkspaceCoordinator, targetPaneID entity.PaneID) error {
	log := logging.FromContext(ctx)

	if target == session.Source && targetPaneID == session.SourcePaneID {
		log.Debug().Str("pane_id", string(targetPaneID)).Msg("drop on source pane: no-op")
		return nil
	}

	if err := target.OpenDocument(ctx, targetPaneID, session.DocumentID); err != nil {
		return err
	}
	if err := session.Source.CloseDocument(ctx, session.SourcePaneID, session.DocumentID, true); err != nil {
		return err
	}
	if err := target.SetActivePane(ctx, targetPaneID); err != nil {
		return err
	}

	log.Info().
		Str("document_id", string(session.DocumentID)).
		Str("target_pane_id", string(targetPaneID)).
		Msg("document moved to pane")
	return nil
}

func (dc *DragController) splitAndMove(ctx context.Context, session *DragSession, target *WorkspaceCoordinator, targetPaneID entity.PaneID, zone layout.DropZone) error {
	log := logging.FromContext(ctx)

	edge, ok := edgeForZone(zone)
	if !ok {
		return fmt.Errorf("drop: zone %q: %w", zone, usecase.ErrInvalidEdge)
	}

	newPaneID, err := target.SplitPane(ctx, targetPaneID, edge)
	if err != nil {
		return err
	}
	if err := target.OpenDocument(ctx, newPaneID, session.DocumentID); err != nil {
		return err
	}
	if err := session.Source.CloseDocument(ctx, session.SourcePaneID, session.DocumentID, true); err != nil {
		return err
	}
	if err := target.SetActivePane(ctx, newPaneID); err != nil {
		return err
	}

	log.Info().
		Str("document_id", string(session.DocumentID)).
		Str("new_pane_id", string(newPaneID)).
		Str("edge", string(edge)).
		Msg("document split into new pane")
	return nil
}

func edgeForZone(zone layout.DropZone) (usecase.Edge, bool) {
	switch zone {
	case layout.DropZoneLeft:
		return usecase.EdgeLeft, true
	case layout.DropZoneRight:
		return usecase.EdgeRight, true
	case layout.DropZoneTop:
		return usecase.EdgeTop, true
	case layout.DropZoneBottom:
		return usecase.EdgeBottom, true
	default:
		return "", false
	}
}
