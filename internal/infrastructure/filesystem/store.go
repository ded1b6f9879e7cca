// Package filesystem implements the document store over the OS filesystem.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ouvrier/plume/internal/domain/entity"
	"github.com/ouvrier/plume/internal/logging"
)

// ErrUntitledPath is returned when a storage operation targets an untitled
// sentinel id, which has no path on disk.
var ErrUntitledPath = errors.New("untitled document has no path")

const filePerm = 0o644

// Store implements port.DocumentStore using the OS filesystem. Document ids
// are absolute file paths; untitled sentinel ids are refused.
type Store struct{}

// NewStore creates a new filesystem document store.
func NewStore() *Store {
	return &Store{}
}

// Load reads the document at the given path. The context is checked before
// touching the filesystem so callers can abandon a stale load.
func (s *Store) Load(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if entity.DocumentID(path).IsUntitled() {
		return "", fmt.Errorf("load %q: %w", path, ErrUntitledPath)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load %q: %w", path, err)
	}

	logging.FromContext(ctx).Debug().Str("path", path).Int("bytes", len(data)).
		Msg("document loaded")
	return string(data), nil
}

// Save writes content to the document at the given path, creating parent
// directories as needed.
func (s *Store) Save(ctx context.Context, path, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if entity.DocumentID(path).IsUntitled() {
		return fmt.Errorf("save %q: %w", path, ErrUntitledPath)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save %q: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), filePerm); err != nil {
		return fmt.Errorf("save %q: %w", path, err)
	}

	logging.FromContext(ctx).Debug().Str("path", path).Int("bytes", len(content)).
		Msg("document saved")
	return nil
}
