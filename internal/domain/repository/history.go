// Package repository defines persistence interfaces for domain entities.
package repository

import (
	"context"
	"time"

	"github.com/ouvrier/plume/internal/domain/entity"
)

// HistoryRepository defines operations for recently-opened document
// persistence. Layout is never persisted; only document opens are recorded.
type HistoryRepository interface {
	// RecordOpen creates or updates the entry for a document path (upsert),
	// incrementing its open count.
	RecordOpen(ctx context.Context, entry *entity.HistoryEntry) error

	// FindByPath retrieves a history entry by its document path.
	FindByPath(ctx context.Context, path string) (*entity.HistoryEntry, error)

	// GetRecent retrieves the most recently opened entries.
	GetRecent(ctx context.Context, limit int) ([]*entity.HistoryEntry, error)

	// Rename moves an entry to a new path, keeping its counts.
	Rename(ctx context.Context, oldPath, newPath string) error

	// DeleteOlderThan removes entries last opened before the given time.
	DeleteOlderThan(ctx context.Context, before time.Time) error

	// Prune keeps only the most recent maxEntries entries.
	Prune(ctx context.Context, maxEntries int) error
}
