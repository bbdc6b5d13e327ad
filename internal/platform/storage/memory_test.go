// Copyright (c) 2026 AtharHuda. All rights reserved.

package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atharhuda/atharhuda/internal/platform/storage"
)

/*
TestMemoryStore_RoundTrip covers put/get/overwrite/delete on the test backend.
*/
func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	_, err := store.Get(ctx, "khatma-list-v1")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	require.NoError(t, store.Put(ctx, "khatma-list-v1", []byte(`[]`)))

	payload, err := store.Get(ctx, "khatma-list-v1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), payload)

	// Overwrite wins
	require.NoError(t, store.Put(ctx, "khatma-list-v1", []byte(`[{"id":"k1"}]`)))
	payload, err = store.Get(ctx, "khatma-list-v1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"k1"}]`), payload)

	require.NoError(t, store.Delete(ctx, "khatma-list-v1"))
	_, err = store.Get(ctx, "khatma-list-v1")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	// Deleting a missing key is not an error
	assert.NoError(t, store.Delete(ctx, "khatma-list-v1"))
}

/*
TestMemoryStore_GetReturnsCopy ensures callers cannot mutate stored payloads.
*/
func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	require.NoError(t, store.Put(ctx, "k", []byte("abc")))

	payload, err := store.Get(ctx, "k")
	require.NoError(t, err)
	payload[0] = 'z'

	fresh, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), fresh)
}
