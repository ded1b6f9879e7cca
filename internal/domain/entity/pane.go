package entity

import "time"

// PaneID uniquely identifies a pane within the editor.
type PaneID string

// Pane is a leaf region of the layout: one tab strip, one visible document.
// The ordered document list preserves insertion order and contains no
// duplicates. ActiveDocumentID is empty or a member of DocumentIDs.
type Pane struct {
	ID               PaneID
	DocumentIDs      []DocumentID
	ActiveDocumentID DocumentID
	CreatedAt        time.Time
	LastFocusedAt    time.Time
}

// NewPane creates an empty pane.
func NewPane(id PaneID) *Pane {
	return &Pane{
		ID:        id,
		CreatedAt: time.Now(),
	}
}

// ContainsDocument reports whether the pane's tab strip lists the document.
func (p *Pane) ContainsDocument(id DocumentID) bool {
	return p.indexOf(id) >= 0
}

// AppendDocument adds the document to the end of the tab strip if absent.
// Returns true if the list changed.
func (p *Pane) AppendDocument(id DocumentID) bool {
	if p.ContainsDocument(id) {
		return false
	}
	p.DocumentIDs = append(p.DocumentIDs, id)
	return true
}

// RemoveDocument removes the document from the tab strip and returns the
// index it occupied, or -1 if it was not present. The active document is
// untouched; callers decide the replacement.
func (p *Pane) RemoveDocument(id DocumentID) int {
	idx := p.indexOf(id)
	if idx < 0 {
		return -1
	}
	p.DocumentIDs = append(p.DocumentIDs[:idx], p.DocumentIDs[idx+1:]...)
	return idx
}

// NextActiveAfterRemoval picks the document that should become active after
// the tab at the given index was removed: the tab now at the same index, or
// the previous one, or none.
func (p *Pane) NextActiveAfterRemoval(removedIndex int) DocumentID {
	if len(p.DocumentIDs) == 0 {
		return ""
	}
	if removedIndex < len(p.DocumentIDs) {
		return p.DocumentIDs[removedIndex]
	}
	return p.DocumentIDs[len(p.DocumentIDs)-1]
}

// IsEmpty reports whether the pane holds no documents.
func (p *Pane) IsEmpty() bool {
	return len(p.DocumentIDs) == 0
}

// UpdateLastFocus records the time this pane last received focus.
func (p *Pane) UpdateLastFocus() {
	p.LastFocusedAt = time.Now()
}

func (p *Pane) indexOf(id DocumentID) int {
	for i, docID := range p.DocumentIDs {
		if docID == id {
			return i
		}
	}
	return -1
}
