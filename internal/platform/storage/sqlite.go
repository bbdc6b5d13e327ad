// Copyright (c) 2026 AtharHuda. All rights reserved.

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLiteStore persists snapshots in a single local database file.
//
// The schema is one table of (key, payload) rows — a durable stand-in for
// the browser's local storage, which is exactly how the PWA stored state.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (creating if needed) the snapshot database at path.
func NewSQLiteStore(path string, logger *slog.Logger) (*SQLiteStore, error) {
	if path == "" {
		path = "atharhuda.db"
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("sqlite: create dirs: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS snapshots (
		key     TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: create snapshots table: %w", err)
	}

	logger.Info("sqlite snapshot store opened", slog.String("path", path))

	return &SQLiteStore{db: db, path: path}, nil
}

// Get returns the payload under key, or [ErrKeyNotFound].
func (store *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := store.db.QueryRowContext(ctx, `SELECT payload FROM snapshots WHERE key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get %q: %w", key, err)
	}
	return payload, nil
}

// Put upserts the payload under key.
func (store *SQLiteStore) Put(ctx context.Context, key string, payload []byte) error {
	_, err := store.db.ExecContext(ctx,
		`INSERT INTO snapshots(key, payload) VALUES(?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload`,
		key, payload,
	)
	if err != nil {
		return fmt.Errorf("sqlite: put %q: %w", key, err)
	}
	return nil
}

// Delete removes the payload under key.
func (store *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := store.db.ExecContext(ctx, `DELETE FROM snapshots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("sqlite: delete %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database handle.
func (store *SQLiteStore) Close() error { return store.db.Close() }

// Path returns the configured database file path.
func (store *SQLiteStore) Path() string { return store.path }
