// Package port defines application-layer interfaces for external
// capabilities. Ports abstract infrastructure concerns, allowing the layout
// engine to remain independent of specific implementations (terminal UI,
// file system, database).
package port

import "context"

// DocumentStore loads and saves document content. Both operations are
// fallible and may be slow; callers run them off the event loop and must
// re-validate layout state before applying results, since panes can be
// split, closed, or repurposed while a call is outstanding.
type DocumentStore interface {
	// Load reads the content of the document at the given path.
	Load(ctx context.Context, path string) (string, error)

	// Save writes content to the document at the given path.
	Save(ctx context.Context, path string, content string) error
}
