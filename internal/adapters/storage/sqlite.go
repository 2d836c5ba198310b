// Package storage provides a SQLite implementation of the store port.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xvierd/hourglass/internal/config"
	"github.com/xvierd/hourglass/internal/ports"
	_ "modernc.org/sqlite"
)

// Store implements ports.Store over a single settings table.
type Store struct {
	db       *sql.DB
	path     string
	settings *settingsRepository
}

// Ensure Store implements ports.Store.
var _ ports.Store = (*Store)(nil)

// New creates a new SQLite store at dbPath.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A second pooled connection to ":memory:" would be a different database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	store := &Store{
		db:       db,
		path:     dbPath,
		settings: newSettingsRepository(db),
	}

	if err := store.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// NewMemory creates a new in-memory SQLite store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

// Location returns the database path.
func (s *Store) Location() string {
	return s.path
}

// Load reads every stored key into a document.
func (s *Store) Load(ctx context.Context) (config.Document, error) {
	return s.settings.All(ctx)
}

// Save replaces the stored document with doc.
func (s *Store) Save(ctx context.Context, doc config.Document) error {
	return s.settings.Replace(ctx, doc)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the database schema.
func (s *Store) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME
	);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// ErrClosed is returned when the store is used after Close.
var ErrClosed = errors.New("store is closed")
