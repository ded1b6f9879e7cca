package entity

import "time"

// HistoryEntry represents a document in the recently-opened history.
type HistoryEntry struct {
	ID         int64     `json:"id"`
	Path       string    `json:"path"`
	Title      string    `json:"title"`
	OpenCount  int64     `json:"open_count"`
	LastOpened time.Time `json:"last_opened"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewHistoryEntry creates a history entry for a document path.
func NewHistoryEntry(path, title string) *HistoryEntry {
	now := time.Now()
	return &HistoryEntry{
		Path:       path,
		Title:      title,
		OpenCount:  1,
		LastOpened: now,
		CreatedAt:  now,
	}
}
