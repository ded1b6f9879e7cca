package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// FromContext extracts the logger from context.
// If no logger is found, returns a disabled logger (no-op).
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext returns a new context with the logger attached.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// WithComponent creates a child logger with a component field.
func WithComponent(ctx context.Context, component string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("component", component).Logger()
	return WithContext(ctx, childLogger)
}

// WithPaneID creates a child logger with a pane_id field.
func WithPaneID(ctx context.Context, paneID string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("pane_id", paneID).Logger()
	return WithContext(ctx, childLogger)
}

// WithWorkspaceID creates a child logger with a workspace_id field.
func WithWorkspaceID(ctx context.Context, workspaceID string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("workspace_id", workspaceID).Logger()
	return WithContext(ctx, childLogger)
}

// WithDocumentID creates a child logger with a document_id field.
func WithDocumentID(ctx context.Context, documentID string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("document_id", documentID).Logger()
	return WithContext(ctx, childLogger)
}
