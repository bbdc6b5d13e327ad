// Copyright (c) 2026 AtharHuda. All rights reserved.

package storage_test

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atharhuda/atharhuda/internal/platform/storage"
)

/*
TestSQLiteStore_RoundTrip verifies that payloads survive a close/reopen cycle,
which is the property the whole snapshot model depends on.
*/
func TestSQLiteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "snapshots.db")

	store, err := storage.NewSQLiteStore(path, slog.Default())
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "khatma-list-v1", []byte(`[{"id":"k1"}]`)))
	require.NoError(t, store.Put(ctx, "khatma-completion-log-v1", []byte(`[]`)))
	require.NoError(t, store.Close())

	// Reopen the same file: state must still be there.
	reopened, err := storage.NewSQLiteStore(path, slog.Default())
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	payload, err := reopened.Get(ctx, "khatma-list-v1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"k1"}]`), payload)

	_, err = reopened.Get(ctx, "missing-key")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
}

/*
TestSQLiteStore_Overwrite checks upsert semantics under the same key.
*/
func TestSQLiteStore_Overwrite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "snapshots.db")

	store, err := storage.NewSQLiteStore(path, slog.Default())
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Put(ctx, "k", []byte("v1")))
	require.NoError(t, store.Put(ctx, "k", []byte("v2")))

	payload, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), payload)
}
