// Package entity contains domain entities representing core editor concepts.
// These entities are pure Go types with no infrastructure dependencies.
package entity

import (
	"path/filepath"
	"strings"
	"time"
)

// DocumentID uniquely identifies an open document. It is the document's
// storage path, or an "untitled:<n>" sentinel for documents that have never
// been saved.
type DocumentID string

// UntitledPrefix marks document ids that have no backing file yet.
const UntitledPrefix = "untitled:"

// IsUntitled reports whether the id is an unsaved-document sentinel.
func (id DocumentID) IsUntitled() bool {
	return strings.HasPrefix(string(id), UntitledPrefix)
}

// DisplayName derives a short human-readable name from the id.
// Untitled sentinels keep their sentinel suffix ("Untitled 3").
func (id DocumentID) DisplayName() string {
	if id.IsUntitled() {
		n := strings.TrimPrefix(string(id), UntitledPrefix)
		return "Untitled " + n
	}
	return filepath.Base(string(id))
}

// Document represents one open document shared by every pane that lists it.
// A Document exists in the table if and only if at least one pane's document
// list contains its id.
type Document struct {
	ID          DocumentID
	DisplayName string
	Content     string
	Dirty       bool
	OpenedAt    time.Time
}

// NewDocument creates a document entry with a derived display name.
func NewDocument(id DocumentID, content string) *Document {
	return &Document{
		ID:          id,
		DisplayName: id.DisplayName(),
		Content:     content,
		OpenedAt:    time.Now(),
	}
}
