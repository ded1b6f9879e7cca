package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ouvrier/plume/internal/domain/entity"
	"github.com/ouvrier/plume/internal/domain/repository"
	"github.com/ouvrier/plume/internal/logging"
)

type historyRepo struct {
	db *sql.DB
}

// NewHistoryRepository creates a new SQLite-backed history repository.
func NewHistoryRepository(db *sql.DB) repository.HistoryRepository {
	return &historyRepo{db: db}
}

func (r *historyRepo) RecordOpen(ctx context.Context, entry *entity.HistoryEntry) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("path", entry.Path).Msg("recording document open")

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO documents_history (path, title, open_count, last_opened, created_at)
		VALUES (?, ?, 1, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (path) DO UPDATE SET
			title = excluded.title,
			open_count = open_count + 1,
			last_opened = CURRENT_TIMESTAMP`,
		entry.Path, entry.Title)
	if err != nil {
		return fmt.Errorf("record open: %w", err)
	}
	return nil
}

func (r *historyRepo) FindByPath(ctx context.Context, path string) (*entity.HistoryEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, path, title, open_count, last_opened, created_at
		FROM documents_history
		WHERE path = ?`, path)

	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find by path: %w", err)
	}
	return entry, nil
}

func (r *historyRepo) GetRecent(ctx context.Context, limit int) ([]*entity.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, path, title, open_count, last_opened, created_at
		FROM documents_history
		ORDER BY last_opened DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*entity.HistoryEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("get recent: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get recent: %w", err)
	}
	return entries, nil
}

func (r *historyRepo) Rename(ctx context.Context, oldPath, newPath string) error {
	// The target path may already have its own history row; fold the old
	// row's counts into it rather than violating the unique constraint.
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("rename history: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var existing int64
	err = tx.QueryRowContext(ctx,
		`SELECT open_count FROM documents_history WHERE path = ?`, newPath).Scan(&existing)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx,
			`UPDATE documents_history SET path = ? WHERE path = ?`, newPath, oldPath)
	case err == nil:
		_, err = tx.ExecContext(ctx, `
			UPDATE documents_history
			SET open_count = open_count + (SELECT open_count FROM documents_history WHERE path = ?)
			WHERE path = ?`, oldPath, newPath)
		if err == nil {
			_, err = tx.ExecContext(ctx,
				`DELETE FROM documents_history WHERE path = ?`, oldPath)
		}
	}
	if err != nil {
		return fmt.Errorf("rename history: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("rename history: %w", err)
	}
	return nil
}

func (r *historyRepo) DeleteOlderThan(ctx context.Context, before time.Time) error {
	// last_opened is stored in CURRENT_TIMESTAMP's "YYYY-MM-DD HH:MM:SS"
	// text form; bind the cutoff in the same format so the comparison
	// stays lexicographically correct.
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM documents_history WHERE last_opened < ?`,
		before.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return fmt.Errorf("delete older than: %w", err)
	}
	return nil
}

func (r *historyRepo) Prune(ctx context.Context, maxEntries int) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM documents_history
		WHERE id NOT IN (
			SELECT id FROM documents_history
			ORDER BY last_opened DESC
			LIMIT ?
		)`, maxEntries)
	if err != nil {
		return fmt.Errorf("prune history: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*entity.HistoryEntry, error) {
	entry := &entity.HistoryEntry{}
	err := row.Scan(&entry.ID, &entry.Path, &entry.Title, &entry.OpenCount,
		&entry.LastOpened, &entry.CreatedAt)
	if err != nil {
		return nil, err
	}
	return entry, nil
}
