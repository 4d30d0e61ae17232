package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/api"
	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/config"
	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/repositories/journal"
	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/repositories/notes"
	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/repositories/syncconfig"
	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/services"
	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/store"
	"github.com/aitemdev/notnative-sync-server-sub000/internal/filex"
	"github.com/aitemdev/notnative-sync-server-sub000/internal/logging"
)

// App wires the client together for the CLI commands: database, repositories,
// API client, and the orchestrator on top.
type App struct {
	Config       *config.Config
	Log          logging.Logger
	DB           *sql.DB
	SyncConfig   syncconfig.Repository
	Journal      journal.Repository
	Notes        notes.Repository
	Orchestrator *services.Orchestrator
}

// newApp opens storage and builds the service graph from cfg. Call Close
// when done.
func newApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	if err := filex.EnsureDir(cfg.NotesDir()); err != nil {
		return nil, err
	}

	db, err := store.Open(ctx, cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open local storage: %w", err)
	}

	configRepo := syncconfig.NewSQLiteRepository(db)
	journalRepo := journal.NewSQLiteRepository(db)
	notesRepo := notes.NewSQLiteRepository(db, cfg.NotesDir())

	orch := services.NewOrchestrator(services.OrchestratorParams{
		Config:       configRepo,
		Journal:      journalRepo,
		Notes:        notesRepo,
		Client:       api.NewHTTPClient(log, cfg.HTTPTimeout),
		Notifier:     newColorNotifier(),
		Logger:       log,
		BaseInterval: cfg.BaseInterval,
		MaxInterval:  cfg.MaxInterval,
	})

	return &App{
		Config:       cfg,
		Log:          log,
		DB:           db,
		SyncConfig:   configRepo,
		Journal:      journalRepo,
		Notes:        notesRepo,
		Orchestrator: orch,
	}, nil
}

// Close stops the sync loop and releases the database.
func (a *App) Close() error {
	a.Orchestrator.StopLoop()
	return a.DB.Close()
}
