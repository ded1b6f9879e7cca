package coordinator

import (
	"context"

	"github.com/google/uuid"

	"github.com/ouvrier/plume/internal/application/port"
	"github.com/ouvrier/plume/internal/application/usecase"
	"github.com/ouvrier/plume/internal/domain/entity"
	"github.com/ouvrier/plume/internal/logging"
)

// ShellOptions configures the shell.
type ShellOptions struct {
	Store        port.DocumentStore
	ViewFactory  port.ViewFactory
	IDGenerator  port.IDGenerator
	DropZoneBand float64

	// Recent is optional; when set, document opens are recorded to history.
	Recent *usecase.RecentDocumentsUseCase
}

// Shell assembles the editor's two pane grids (the primary editing grid and
// the preview grid) over one shared document table, and wires the layout
// context and drag controller across them.
type Shell struct {
	docs    *usecase.ManageDocumentsUseCase
	panes   *usecase.ManagePanesUseCase
	recent  *usecase.RecentDocumentsUseCase
	primary *WorkspaceCoordinator
	preview *WorkspaceCoordinator
	layout  *LayoutContext
	drag    *DragController
}

// NewShell builds the shell. The document table's reference-count scans see
// both grids through the layout context, so a document open in both grids
// is never evicted by closing it in one.
func NewShell(ctx context.Context, opts ShellOptions) *Shell {
	ctx = logging.WithComponent(ctx, "coordinator")
	log := logging.FromContext(ctx)

	idGen := opts.IDGenerator
	if idGen == nil {
		idGen = uuid.NewString
	}

	s := &Shell{recent: opts.Recent}
	s.panes = usecase.NewManagePanesUseCase(idGen)
	s.docs = usecase.NewManageDocumentsUseCase(opts.Store, func() []*entity.Workspace {
		return s.layout.AllWorkspaces()
	})

	s.primary = NewWorkspaceCoordinator(ctx, "primary", "primary", s.panes, s.docs, opts.ViewFactory, idGen)
	s.preview = NewWorkspaceCoordinator(ctx, "preview", "preview", s.panes, s.docs, opts.ViewFactory, idGen)
	s.layout = NewLayoutContext(s.primary, s.preview)
	s.drag = NewDragController(opts.DropZoneBand)

	log.Debug().Msg("shell assembled")
	return s
}

// Primary returns the primary editing grid.
func (s *Shell) Primary() *WorkspaceCoordinator {
	return s.primary
}

// Preview returns the preview grid.
func (s *Shell) Preview() *WorkspaceCoordinator {
	return s.preview
}

// Layout returns the layout context.
func (s *Shell) Layout() *LayoutContext {
	return s.layout
}

// Drag returns the drag controller.
func (s *Shell) Drag() *DragController {
	return s.drag
}

// Documents returns the shared document table use case.
func (s *Shell) Documents() *usecase.ManageDocumentsUseCase {
	return s.docs
}

// OpenInActive opens a document in the focused grid's active pane and
// records it to history.
func (s *Shell) OpenInActive(ctx context.Context, id entity.DocumentID) error {
	manager := s.layout.ActiveManager()
	if err := manager.OpenDocument(ctx, manager.Workspace().ActivePaneID, id); err != nil {
		return err
	}
	if s.recent != nil {
		// Best-effort; a failed history write never blocks the open.
		_ = s.recent.RecordOpen(ctx, id)
	}
	return nil
}

// NoteOpened records a document open to history. Best-effort; callers that
// apply loads asynchronously use this after the open lands.
func (s *Shell) NoteOpened(ctx context.Context, id entity.DocumentID) {
	if s.recent != nil {
		_ = s.recent.RecordOpen(ctx, id)
	}
}

// NewUntitledInActive opens a fresh untitled document in the focused grid's
// active pane.
func (s *Shell) NewUntitledInActive(ctx context.Context) (entity.DocumentID, error) {
	id := s.docs.NewUntitledID()
	manager := s.layout.ActiveManager()
	if err := manager.ApplyOpen(ctx, manager.Workspace().ActivePaneID, id, ""); err != nil {
		return "", err
	}
	return id, nil
}

// RenameDocument moves a document id everywhere it appears: the table, both
// grids' panes, history, and the affected panes' views.
func (s *Shell) RenameDocument(ctx context.Context, oldID, newID entity.DocumentID) error {
	if _, err := s.docs.Rename(ctx, oldID, newID); err != nil {
		return err
	}
	if s.recent != nil {
		_ = s.recent.Rename(ctx, oldID, newID)
	}
	return nil
}

// SaveActive saves the focused grid's active document.
func (s *Shell) SaveActive(ctx context.Context) error {
	pane := s.layout.ActivePane()
	if pane == nil || pane.ActiveDocumentID == "" {
		return nil
	}
	return s.docs.Save(ctx, pane.ActiveDocumentID)
}

// SaveAll persists every dirty titled document.
func (s *Shell) SaveAll(ctx context.Context) error {
	return s.docs.SaveAll(ctx)
}
