package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xvierd/hourglass/internal/config"
)

// settingsRepository maps document keys to JSON-encoded rows.
type settingsRepository struct {
	db *sql.DB
}

// newSettingsRepository creates a new settings repository.
func newSettingsRepository(db *sql.DB) *settingsRepository {
	return &settingsRepository{db: db}
}

// All returns every stored key. Rows whose value no longer decodes are
// skipped, the same as a malformed key in the file store.
func (r *settingsRepository) All(ctx context.Context) (config.Document, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, translateErr(fmt.Errorf("failed to query settings: %w", err))
	}
	defer func() { _ = rows.Close() }()

	doc := config.Document{}
	for rows.Next() {
		var key, raw string
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			logrus.WithError(err).WithField("key", key).Warn("skipping malformed setting")
			continue
		}
		doc[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	return doc, nil
}

// Replace upserts every key of doc and deletes keys doc no longer has, in
// one transaction.
func (r *settingsRepository) Replace(ctx context.Context, doc config.Document) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return translateErr(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now()
	keys := make([]any, 0, len(doc))
	for key, value := range doc {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to encode setting %q: %w", key, err)
		}
		query := `
			INSERT INTO settings (key, value, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`
		if _, err := tx.ExecContext(ctx, query, key, string(raw), now); err != nil {
			return fmt.Errorf("failed to save setting %q: %w", key, err)
		}
		keys = append(keys, key)
	}

	deleteQuery := `DELETE FROM settings`
	if len(keys) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
		deleteQuery += ` WHERE key NOT IN (` + placeholders + `)`
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, keys...); err != nil {
		return fmt.Errorf("failed to prune settings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settings: %w", err)
	}
	return nil
}

// translateErr maps use-after-close to ErrClosed.
func translateErr(err error) error {
	if err != nil && strings.Contains(err.Error(), "sql: database is closed") {
		return fmt.Errorf("%w: %v", ErrClosed, err)
	}
	return err
}
