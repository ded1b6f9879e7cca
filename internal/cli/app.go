// Package cli wires the application's dependencies for the command line.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ouvrier/plume/internal/application/usecase"
	"github.com/ouvrier/plume/internal/domain/build"
	"github.com/ouvrier/plume/internal/domain/repository"
	"github.com/ouvrier/plume/internal/infrastructure/config"
	"github.com/ouvrier/plume/internal/infrastructure/persistence/sqlite"
	"github.com/ouvrier/plume/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Manager   *config.Manager
	BuildInfo build.Info
	History   repository.HistoryRepository
	RecentUC  *usecase.RecentDocumentsUseCase

	db  *sql.DB
	ctx context.Context
}

// NewApp creates a CLI application with all dependencies wired.
func NewApp() (*App, error) {
	manager, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("create config manager: %w", err)
	}
	if err = manager.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := manager.Get()

	level, levelErr := logging.ParseLevel(cfg.Logging.Level)
	if levelErr != nil {
		level = logging.DefaultConfig().Level
	}
	logger := logging.New(logging.Config{
		Level:      level,
		Format:     cfg.Logging.Format,
		TimeFormat: "15:04:05",
	})
	ctx := logging.WithContext(context.Background(), logger)

	dbFile := cfg.Database.Path
	if dbFile == "" {
		dbFile, err = config.DatabaseFile()
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
	}

	db, err := sqlite.NewConnection(ctx, dbFile)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	historyRepo := sqlite.NewHistoryRepository(db)
	recentUC := usecase.NewRecentDocumentsUseCase(
		historyRepo,
		cfg.History.MaxEntries,
		time.Duration(cfg.History.RetentionPeriodDays)*24*time.Hour,
	)
	if err := recentUC.Cleanup(ctx); err != nil {
		// Stale history is not worth refusing to start over.
		logging.FromContext(ctx).Warn().Err(err).Msg("history cleanup failed")
	}

	return &App{
		Config:   cfg,
		Manager:  manager,
		History:  historyRepo,
		RecentUC: recentUC,
		db:       db,
		ctx:      ctx,
	}, nil
}

// Ctx returns the app context carrying the logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// Close releases app resources.
func (a *App) Close() error {
	if a.db != nil {
		return sqlite.Close(a.db)
	}
	return nil
}
