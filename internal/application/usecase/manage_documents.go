package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ouvrier/plume/internal/application/port"
	"github.com/ouvrier/plume/internal/domain/entity"
	"github.com/ouvrier/plume/internal/logging"
)

// Sentinel errors for document operations.
var (
	ErrDocumentNotFound  = errors.New("document not found")
	ErrUntitledDocument  = errors.New("untitled document has no storage path")
	ErrDocumentNotListed = errors.New("document not listed in pane")
)

// WorkspaceProvider returns every workspace in the process, across all
// managers. Reference-count scans must see all of them; a local count would
// evict documents still open in the other grid.
type WorkspaceProvider func() []*entity.Workspace

// ManageDocumentsUseCase owns the process-wide document table: the registry
// mapping document ids to shared in-memory content, display name, and dirty
// flag. An entry exists if and only if at least one pane's document list in
// any workspace contains its id.
type ManageDocumentsUseCase struct {
	store         port.DocumentStore
	allWorkspaces WorkspaceProvider

	table       map[entity.DocumentID]*entity.Document
	untitledSeq int
	saveMu      sync.Mutex // serializes SaveAll batches
}

// NewManageDocumentsUseCase creates the document table use case.
func NewManageDocumentsUseCase(store port.DocumentStore, allWorkspaces WorkspaceProvider) *ManageDocumentsUseCase {
	return &ManageDocumentsUseCase{
		store:         store,
		allWorkspaces: allWorkspaces,
		table:         make(map[entity.DocumentID]*entity.Document),
	}
}

// Get returns the table entry for the id, or nil.
func (uc *ManageDocumentsUseCase) Get(id entity.DocumentID) *entity.Document {
	return uc.table[id]
}

// Has reports whether the table holds an entry for the id.
func (uc *ManageDocumentsUseCase) Has(id entity.DocumentID) bool {
	_, ok := uc.table[id]
	return ok
}

// Count returns the number of open documents.
func (uc *ManageDocumentsUseCase) Count() int {
	return len(uc.table)
}

// NewUntitledID allocates the next unsaved-document sentinel id.
func (uc *ManageDocumentsUseCase) NewUntitledID() entity.DocumentID {
	uc.untitledSeq++
	return entity.DocumentID(fmt.Sprintf("%s%d", entity.UntitledPrefix, uc.untitledSeq))
}

// LoadContent resolves the content for a document id: from the shared table
// entry when the document is already open somewhere, otherwise from storage.
// Safe to call off the event loop; it never mutates layout state.
func (uc *ManageDocumentsUseCase) LoadContent(ctx context.Context, id entity.DocumentID) (string, error) {
	if doc, ok := uc.table[id]; ok {
		return doc.Content, nil
	}
	if id.IsUntitled() {
		return "", nil
	}
	content, err := uc.store.Load(ctx, string(id))
	if err != nil {
		return "", fmt.Errorf("load %q: %w", id, err)
	}
	return content, nil
}

// Open appends the document to the pane's tab strip (if absent) and makes
// it active. The pane is re-validated here because content loading happens
// off the event loop and the pane may have been removed meanwhile.
func (uc *ManageDocumentsUseCase) Open(ctx context.Context, ws *entity.Workspace, paneID entity.PaneID, id entity.DocumentID, content string) (*entity.Document, error) {
	log := logging.FromContext(ctx)

	node := ws.FindPane(paneID)
	if node == nil {
		log.Warn().Str("pane_id", string(paneID)).Str("document_id", string(id)).
			Msg("open dropped: pane no longer exists")
		return nil, fmt.Errorf("open %q: pane %q: %w", id, paneID, ErrPaneNotFound)
	}

	doc, ok := uc.table[id]
	if !ok {
		doc = entity.NewDocument(id, content)
		uc.table[id] = doc
		log.Debug().Str("document_id", string(id)).Msg("document entered table")
	}

	node.Pane.AppendDocument(id)
	node.Pane.ActiveDocumentID = id
	return doc, nil
}

// Switch makes an already-listed document the pane's active document.
// A document the pane does not list is a logged no-op; callers ensure
// membership first.
func (uc *ManageDocumentsUseCase) Switch(ctx context.Context, ws *entity.Workspace, paneID entity.PaneID, id entity.DocumentID) error {
	log := logging.FromContext(ctx)

	node := ws.FindPane(paneID)
	if node == nil {
		log.Warn().Str("pane_id", string(paneID)).Msg("switch dropped: pane no longer exists")
		return fmt.Errorf("switch: pane %q: %w", paneID, ErrPaneNotFound)
	}
	if !node.Pane.ContainsDocument(id) {
		log.Warn().Str("pane_id", string(paneID)).Str("document_id", string(id)).
			Msg("switch dropped: document not listed in pane")
		return fmt.Errorf("switch %q: %w", id, ErrDocumentNotListed)
	}
	node.Pane.ActiveDocumentID = id
	return nil
}

// CloseResult describes the aftermath of closing a document in a pane.
type CloseResult struct {
	// NewActiveID is the document that became active in the pane, or ""
	// when the pane is now empty.
	NewActiveID entity.DocumentID

	// PaneEmptied is true when the pane's document list became empty. The
	// coordinator decides whether that removes the pane (it does not for
	// the sole remaining pane of a workspace).
	PaneEmptied bool

	// Evicted is true when the document left the table because no pane in
	// any workspace references it anymore.
	Evicted bool
}

// Close removes the document from the pane's tab strip. If it was active,
// the next document at the same index (or the previous one) takes over.
// When isMoving is false and no other pane in any workspace still lists the
// document, the entry is evicted from the table.
func (uc *ManageDocumentsUseCase) Close(ctx context.Context, ws *entity.Workspace, paneID entity.PaneID, id entity.DocumentID, isMoving bool) (*CloseResult, error) {
	log := logging.FromContext(ctx)

	node := ws.FindPane(paneID)
	if node == nil {
		log.Warn().Str("pane_id", string(paneID)).Msg("close dropped: pane no longer exists")
		return nil, fmt.Errorf("close: pane %q: %w", paneID, ErrPaneNotFound)
	}

	pane := node.Pane
	wasActive := pane.ActiveDocumentID == id
	idx := pane.RemoveDocument(id)
	if idx < 0 {
		log.Warn().Str("pane_id", string(paneID)).Str("document_id", string(id)).
			Msg("close dropped: document not listed in pane")
		return nil, fmt.Errorf("close %q: %w", id, ErrDocumentNotListed)
	}

	result := &CloseResult{}
	if wasActive {
		pane.ActiveDocumentID = pane.NextActiveAfterRemoval(idx)
		result.NewActiveID = pane.ActiveDocumentID
	} else {
		result.NewActiveID = pane.ActiveDocumentID
	}
	result.PaneEmptied = pane.IsEmpty()

	if !isMoving && uc.ReferenceCount(id) == 0 {
		delete(uc.table, id)
		result.Evicted = true
		log.Debug().Str("document_id", string(id)).Msg("document evicted from table")
	}

	return result, nil
}

// ReferenceCount counts how many panes across all workspaces list the
// document.
func (uc *ManageDocumentsUseCase) ReferenceCount(id entity.DocumentID) int {
	count := 0
	for _, ws := range uc.allWorkspaces() {
		for _, pane := range ws.AllPanes() {
			if pane.ContainsDocument(id) {
				count++
			}
		}
	}
	return count
}

// Rename moves a document to a new id: the table key, every pane's document
// list, and every active-document reference across all workspaces are
// updated. Used by the file-tree rename flow.
func (uc *ManageDocumentsUseCase) Rename(ctx context.Context, oldID, newID entity.DocumentID) ([]*entity.Pane, error) {
	log := logging.FromContext(ctx)

	doc, ok := uc.table[oldID]
	if !ok {
		log.Warn().Str("document_id", string(oldID)).Msg("rename dropped: document not open")
		return nil, fmt.Errorf("rename %q: %w", oldID, ErrDocumentNotFound)
	}
	if _, exists := uc.table[newID]; exists {
		return nil, fmt.Errorf("rename %q: target %q already open", oldID, newID)
	}

	delete(uc.table, oldID)
	doc.ID = newID
	doc.DisplayName = newID.DisplayName()
	uc.table[newID] = doc

	var affected []*entity.Pane
	for _, ws := range uc.allWorkspaces() {
		for _, pane := range ws.AllPanes() {
			changed := false
			for i, docID := range pane.DocumentIDs {
				if docID == oldID {
					pane.DocumentIDs[i] = newID
					changed = true
				}
			}
			if pane.ActiveDocumentID == oldID {
				pane.ActiveDocumentID = newID
				changed = true
			}
			if changed {
				affected = append(affected, pane)
			}
		}
	}

	log.Info().Str("old_id", string(oldID)).Str("new_id", string(newID)).
		Int("affected_panes", len(affected)).Msg("document renamed")
	return affected, nil
}

// UpdateContent replaces the shared content and marks the document dirty.
// Called from the active view's change notification.
func (uc *ManageDocumentsUseCase) UpdateContent(id entity.DocumentID, content string) bool {
	doc, ok := uc.table[id]
	if !ok {
		return false
	}
	if doc.Content == content {
		return false
	}
	doc.Content = content
	doc.Dirty = true
	return true
}

// Save persists one document and clears its dirty flag. Untitled documents
// have no storage path and are refused.
func (uc *ManageDocumentsUseCase) Save(ctx context.Context, id entity.DocumentID) error {
	doc, ok := uc.table[id]
	if !ok {
		return fmt.Errorf("save %q: %w", id, ErrDocumentNotFound)
	}
	if id.IsUntitled() {
		return fmt.Errorf("save %q: %w", id, ErrUntitledDocument)
	}
	if err := uc.store.Save(ctx, string(id), doc.Content); err != nil {
		return fmt.Errorf("save %q: %w", id, err)
	}
	doc.Dirty = false
	return nil
}

// SaveAll persists every dirty titled document in parallel. Content is
// snapshotted before the writes start; dirty flags are cleared only for
// documents whose write succeeded.
func (uc *ManageDocumentsUseCase) SaveAll(ctx context.Context) error {
	uc.saveMu.Lock()
	defer uc.saveMu.Unlock()

	type pending struct {
		id      entity.DocumentID
		content string
	}
	var batch []pending
	for id, doc := range uc.table {
		if doc.Dirty && !id.IsUntitled() {
			batch = append(batch, pending{id: id, content: doc.Content})
		}
	}
	if len(batch) == 0 {
		return nil
	}

	saved := make([]bool, len(batch))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range batch {
		g.Go(func() error {
			if err := uc.store.Save(gctx, string(p.id), p.content); err != nil {
				return fmt.Errorf("save %q: %w", p.id, err)
			}
			saved[i] = true
			return nil
		})
	}
	err := g.Wait()

	for i, p := range batch {
		if saved[i] {
			if doc, ok := uc.table[p.id]; ok && doc.Content == p.content {
				doc.Dirty = false
			}
		}
	}
	return err
}
