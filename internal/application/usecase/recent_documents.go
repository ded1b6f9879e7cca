package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ouvrier/plume/internal/domain/entity"
	"github.com/ouvrier/plume/internal/domain/repository"
	"github.com/ouvrier/plume/internal/logging"
)

// RecentDocumentsUseCase records document opens and serves the recent list.
// Untitled documents never reach history; they have no stable path.
type RecentDocumentsUseCase struct {
	repo       repository.HistoryRepository
	maxEntries int
	maxAge     time.Duration
}

// NewRecentDocumentsUseCase creates the history use case. maxEntries and
// maxAge bound the retained history; zero values disable the bound.
func NewRecentDocumentsUseCase(repo repository.HistoryRepository, maxEntries int, maxAge time.Duration) *RecentDocumentsUseCase {
	return &RecentDocumentsUseCase{
		repo:       repo,
		maxEntries: maxEntries,
		maxAge:     maxAge,
	}
}

// RecordOpen upserts the history entry for an opened document. Recording is
// best-effort; failures are logged and never block the open itself, so the
// error is informational.
func (uc *RecentDocumentsUseCase) RecordOpen(ctx context.Context, id entity.DocumentID) error {
	if id.IsUntitled() {
		return nil
	}
	entry := entity.NewHistoryEntry(string(id), id.DisplayName())
	if err := uc.repo.RecordOpen(ctx, entry); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("path", entry.Path).
			Msg("failed to record document open")
		return fmt.Errorf("record open %q: %w", entry.Path, err)
	}
	return nil
}

// GetRecent returns the most recently opened documents, newest first.
func (uc *RecentDocumentsUseCase) GetRecent(ctx context.Context, limit int) ([]*entity.HistoryEntry, error) {
	entries, err := uc.repo.GetRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent documents: %w", err)
	}
	return entries, nil
}

// Rename moves the history entry for a renamed document, keeping counts.
func (uc *RecentDocumentsUseCase) Rename(ctx context.Context, oldID, newID entity.DocumentID) error {
	if oldID.IsUntitled() {
		return nil
	}
	if err := uc.repo.Rename(ctx, string(oldID), string(newID)); err != nil {
		return fmt.Errorf("rename history %q: %w", oldID, err)
	}
	return nil
}

// Cleanup applies the retention policy: entries older than maxAge are
// dropped, then the table is pruned to maxEntries. Run at startup.
func (uc *RecentDocumentsUseCase) Cleanup(ctx context.Context) error {
	log := logging.FromContext(ctx)

	if uc.maxAge > 0 {
		cutoff := time.Now().Add(-uc.maxAge)
		if err := uc.repo.DeleteOlderThan(ctx, cutoff); err != nil {
			return fmt.Errorf("prune history by age: %w", err)
		}
	}
	if uc.maxEntries > 0 {
		if err := uc.repo.Prune(ctx, uc.maxEntries); err != nil {
			return fmt.Errorf("prune history by count: %w", err)
		}
	}
	log.Debug().Int("max_entries", uc.maxEntries).Dur("max_age", uc.maxAge).
		Msg("history cleanup complete")
	return nil
}
