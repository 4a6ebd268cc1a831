// Package app is responsible for configuring the application's services and
// wiring them together.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leg100/notelist/internal/alert"
	"github.com/leg100/notelist/internal/bridge"
	"github.com/leg100/notelist/internal/draft"
	"github.com/leg100/notelist/internal/filter"
	"github.com/leg100/notelist/internal/localstore"
	"github.com/leg100/notelist/internal/logging"
	"github.com/leg100/notelist/internal/note"
	"github.com/leg100/notelist/internal/settings"
	"github.com/leg100/notelist/internal/store"
	"github.com/leg100/notelist/internal/transfer"
)

// LogFileName is the name of the log file written to the data directory.
const LogFileName = "notelist.log"

type App struct {
	Logger   *logging.Logger
	Notes    *note.Service
	Alerts   *alert.Queue
	Settings *settings.Store
	Filter   *filter.Store
	Drafts   *draft.Autosaver
	Transfer *transfer.Service

	cleanups []func() error
}

// New constructs the services and starts watching the settings file.
func New(cfg Config) (*App, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	app := &App{}

	// Setup logging
	logFile, err := os.OpenFile(
		filepath.Join(cfg.DataDir, LogFileName),
		os.O_CREATE|os.O_APPEND|os.O_WRONLY,
		0o644,
	)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	app.cleanups = append(app.cleanups, logFile.Close)
	cfg.Logging.AdditionalWriters = append(cfg.Logging.AdditionalWriters, logFile)
	logger := logging.NewLogger(cfg.Logging)
	slog.SetDefault(logger.Slog())
	app.Logger = logger

	db, err := store.Open(cfg.DataDir)
	if err != nil {
		app.Cleanup()
		return nil, fmt.Errorf("opening store: %w", err)
	}
	app.cleanups = append(app.cleanups, db.Close)

	backend := bridge.New(logger)
	bridge.Register(backend, db)
	app.Notes = note.NewService(backend, logger)

	app.Alerts = alert.NewQueue(logger)

	app.Settings = settings.NewStore(cfg.DataDir, logger)
	app.Settings.Load()
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := app.Settings.Watch(ctx); err != nil {
			logger.Error("watching settings file", "error", err)
		}
	}()
	app.cleanups = append(app.cleanups, func() error {
		cancel()
		return nil
	})

	kv := localstore.New(db.DB())
	app.Filter = filter.NewStore(kv, logger)
	app.Drafts = draft.NewAutosaver(kv, logger)
	app.Transfer = transfer.NewService(app.Notes, app.Alerts, logger, cfg.ExportDir)

	logger.Info("started notelist", "data_dir", cfg.DataDir, "commands", len(backend.Commands()))
	return app, nil
}

// Cleanup persists any pending draft and releases resources in the reverse
// order to which they were acquired.
func (a *App) Cleanup() {
	if a.Drafts != nil {
		a.Drafts.Flush()
	}
	var errs []error
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		if err := a.cleanups[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.cleanups = nil
	if err := errors.Join(errs...); err != nil {
		fmt.Fprintln(os.Stderr, "cleaning up:", err)
	}
}
