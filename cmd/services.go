package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/xvierd/hourglass/internal/adapters/notification"
	"github.com/xvierd/hourglass/internal/adapters/storage"
	"github.com/xvierd/hourglass/internal/config"
	"github.com/xvierd/hourglass/internal/ports"
	"github.com/xvierd/hourglass/internal/services"
)

// Store backends selectable with --store.
const (
	storeFile   = "file"
	storeSQLite = "sqlite"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	store     ports.Store
	timers    *services.TimerService
	snapshots *services.SnapshotService
	notifier  *notification.Notifier
	config    *config.Config
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up all the required services and adapters.
func initializeServices() error {
	store, err := openStore()
	if err != nil {
		return err
	}
	app.store = store

	app.timers, err = services.NewTimerService(context.Background(), app.store)
	if err != nil {
		return err
	}

	// Settings live in the same document as the timers
	app.config = config.FromDocument(app.timers.Document())
	app.notifier = notification.New(&app.config.Notifications)
	app.snapshots = services.NewSnapshotService(app.timers, app.config)

	return nil
}

// openStore builds the backend named by --store.
func openStore() (ports.Store, error) {
	switch storeKind {
	case storeFile, "":
		store, err := config.NewDefaultFileStore()
		if err != nil {
			return nil, err
		}
		return store, nil
	case storeSQLite:
		path := dbPath
		if path == "" {
			var err error
			if path, err = config.GetDBPath(); err != nil {
				return nil, err
			}
		}
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		store, err := storage.New(path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store %q: use %s or %s", storeKind, storeFile, storeSQLite)
	}
}

// cleanupServices closes all resources.
func cleanupServices() error {
	closer, ok := app.store.(io.Closer)
	app = appDeps{}
	if ok {
		return closer.Close()
	}
	return nil
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		signal.Stop(sigChan)
		cancel()
	}()

	return ctx
}
