// Copyright (c) 2026 AtharHuda. All rights reserved.

package khatma_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atharhuda/atharhuda/internal/core/khatma"
	"github.com/atharhuda/atharhuda/internal/platform/storage"
)

// newTestService builds a service over a fresh in-memory store. The empty
// store means it starts from the seed dataset.
func newTestService(t *testing.T) (*khatma.Service, *storage.MemoryStore) {
	t.Helper()

	store := storage.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := khatma.NewService(context.Background(), khatma.NewPersister(store, logger), logger)
	return service, store
}

// createEmpty adds a khatma with all parts available and returns its ID.
func createEmpty(t *testing.T, service *khatma.Service) string {
	t.Helper()

	created := service.Create(context.Background(), khatma.CreateInput{
		Title:     "ختمة اختبار",
		CreatedBy: "سلمى",
	})
	require.NotEmpty(t, created.ID)
	return created.ID
}

// completeAll moves every part of the khatma to completed.
func completeAll(t *testing.T, service *khatma.Service, id string) {
	t.Helper()

	for juzNumber := 1; juzNumber <= 30; juzNumber++ {
		reader := fmt.Sprintf("قارئ %d", juzNumber)
		require.True(t, service.UpdatePartStatus(context.Background(), id, juzNumber, khatma.PartCompleted, reader, nil))
	}
}

/*
TestCreate verifies the shape of a freshly created khatma and that listings
read newest first.
*/
func TestCreate(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	created := service.Create(ctx, khatma.CreateInput{
		Title:        "ختمة العائلة",
		CreatedBy:    "ليلى",
		DeceasedName: "محمد بن سالم",
		Description:  "كل يوم جزء",
	})

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, khatma.StatusActive, created.Status)
	assert.Equal(t, 0, created.Progress)
	assert.Nil(t, created.CompletedAt)
	require.Len(t, created.Parts, 30)
	for i, part := range created.Parts {
		assert.Equal(t, i+1, part.JuzNumber)
		assert.Equal(t, khatma.PartAvailable, part.Status)
	}

	// Prepended ahead of the seed khatmas.
	list := service.List(ctx)
	require.NotEmpty(t, list)
	assert.Equal(t, created.ID, list[0].ID)
}

/*
TestUpdatePartStatus_Lifecycle walks one part through every transition and
checks the field exclusivity rules.
*/
func TestUpdatePartStatus_Lifecycle(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()
	id := createEmpty(t, service)

	part := func() khatma.Part {
		k, ok := service.Get(ctx, id)
		require.True(t, ok)
		return k.Parts[0]
	}

	require.True(t, service.UpdatePartStatus(ctx, id, 1, khatma.PartReserved, "نورة", nil))
	reserved := part()
	assert.Equal(t, khatma.PartReserved, reserved.Status)
	assert.Equal(t, "نورة", reserved.ReservedBy)
	assert.Empty(t, reserved.CompletedBy)
	assert.NotNil(t, reserved.UpdatedAt)

	require.True(t, service.UpdatePartStatus(ctx, id, 1, khatma.PartCompleted, "نورة", []string{"الفاتحة", "البقرة"}))
	completed := part()
	assert.Equal(t, khatma.PartCompleted, completed.Status)
	assert.Equal(t, "نورة", completed.CompletedBy)
	assert.Empty(t, completed.ReservedBy)
	assert.Equal(t, []string{"الفاتحة", "البقرة"}, completed.ReadSurahs)

	require.True(t, service.UpdatePartStatus(ctx, id, 1, khatma.PartAvailable, "", nil))
	released := part()
	assert.Equal(t, khatma.PartAvailable, released.Status)
	assert.Empty(t, released.ReservedBy)
	assert.Empty(t, released.CompletedBy)
	assert.Empty(t, released.ReadSurahs)
}

/*
TestUpdatePartStatus_ReadSurahsOptional: the surah list is stored exactly
as the caller supplies it, and completing without one leaves the field
unset rather than filling it from the juz catalog.
*/
func TestUpdatePartStatus_ReadSurahsOptional(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()
	id := createEmpty(t, service)

	require.True(t, service.UpdatePartStatus(ctx, id, 1, khatma.PartCompleted, "نورة", nil))
	require.True(t, service.UpdatePartStatus(ctx, id, 2, khatma.PartCompleted, "نورة", []string{"الملك", "القلم"}))

	k, ok := service.Get(ctx, id)
	require.True(t, ok)
	assert.Empty(t, k.Parts[0].ReadSurahs, "no surah list was supplied")
	assert.Equal(t, []string{"الملك", "القلم"}, k.Parts[1].ReadSurahs)
}

/*
TestUpdatePartStatus_ReaderFallback checks the completer name chain:
explicit name, then previous reserver, then the anonymous placeholder.
*/
func TestUpdatePartStatus_ReaderFallback(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()
	id := createEmpty(t, service)

	// Reserved by one person, completed anonymously: the reserver is credited.
	require.True(t, service.UpdatePartStatus(ctx, id, 1, khatma.PartReserved, "أحمد", nil))
	require.True(t, service.UpdatePartStatus(ctx, id, 1, khatma.PartCompleted, "", nil))
	k, _ := service.Get(ctx, id)
	assert.Equal(t, "أحمد", k.Parts[0].CompletedBy)

	// Never reserved and completed anonymously: the placeholder is credited.
	require.True(t, service.UpdatePartStatus(ctx, id, 2, khatma.PartCompleted, "", nil))
	k, _ = service.Get(ctx, id)
	assert.Equal(t, khatma.UnknownReader, k.Parts[1].CompletedBy)

	// An explicit name always wins over the previous reserver.
	require.True(t, service.UpdatePartStatus(ctx, id, 3, khatma.PartReserved, "خالد", nil))
	require.True(t, service.UpdatePartStatus(ctx, id, 3, khatma.PartCompleted, "مريم", nil))
	k, _ = service.Get(ctx, id)
	assert.Equal(t, "مريم", k.Parts[2].CompletedBy)
}

/*
TestUpdatePartStatus_UnknownTargets verifies the silent no-op contract for
stale client references.
*/
func TestUpdatePartStatus_UnknownTargets(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()
	id := createEmpty(t, service)

	assert.False(t, service.UpdatePartStatus(ctx, "no-such-khatma", 1, khatma.PartReserved, "أحمد", nil))
	assert.False(t, service.UpdatePartStatus(ctx, id, 0, khatma.PartReserved, "أحمد", nil))
	assert.False(t, service.UpdatePartStatus(ctx, id, 31, khatma.PartReserved, "أحمد", nil))

	// Nothing changed.
	k, _ := service.Get(ctx, id)
	assert.Equal(t, 0, k.Progress)
	for _, part := range k.Parts {
		assert.Equal(t, khatma.PartAvailable, part.Status)
	}
}

/*
TestProgressRounding pins the rounded percentage at the interesting points.
*/
func TestProgressRounding(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()
	id := createEmpty(t, service)

	progress := func() int {
		k, ok := service.Get(ctx, id)
		require.True(t, ok)
		return k.Progress
	}

	require.True(t, service.UpdatePartStatus(ctx, id, 1, khatma.PartCompleted, "أ", nil))
	assert.Equal(t, 3, progress(), "1/30 rounds to 3")

	for juzNumber := 2; juzNumber <= 15; juzNumber++ {
		require.True(t, service.UpdatePartStatus(ctx, id, juzNumber, khatma.PartCompleted, "أ", nil))
	}
	assert.Equal(t, 50, progress())

	for juzNumber := 16; juzNumber <= 29; juzNumber++ {
		require.True(t, service.UpdatePartStatus(ctx, id, juzNumber, khatma.PartCompleted, "أ", nil))
	}
	assert.Equal(t, 97, progress(), "29/30 rounds to 97")
}

/*
TestCompletionLifecycle drives a khatma to 100%, reverts a part, and
re-completes it: the completion timestamp must be assigned exactly once and
the log must never grow a duplicate for the same event.
*/
func TestCompletionLifecycle(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()
	id := createEmpty(t, service)

	baseline := len(service.CompletionLog(ctx))
	completeAll(t, service, id)

	k, _ := service.Get(ctx, id)
	assert.Equal(t, khatma.StatusCompleted, k.Status)
	assert.Equal(t, 100, k.Progress)
	require.NotNil(t, k.CompletedAt)
	firstCompletedAt := *k.CompletedAt

	log := service.CompletionLog(ctx)
	require.Len(t, log, baseline+1)
	record := log[0]
	assert.Equal(t, id, record.KhatmaID)
	assert.Equal(t, fmt.Sprintf("%s-%d", id, firstCompletedAt.UnixMilli()), record.ID)
	assert.Len(t, record.Participants, 30)

	// Reverting a part reactivates the khatma but keeps the timestamp.
	require.True(t, service.UpdatePartStatus(ctx, id, 7, khatma.PartAvailable, "", nil))
	k, _ = service.Get(ctx, id)
	assert.Equal(t, khatma.StatusActive, k.Status)
	assert.Equal(t, 97, k.Progress)
	require.NotNil(t, k.CompletedAt)
	assert.Equal(t, firstCompletedAt, *k.CompletedAt)

	// Re-completing does not produce a second record or a new timestamp.
	require.True(t, service.UpdatePartStatus(ctx, id, 7, khatma.PartCompleted, "قارئ 7", nil))
	k, _ = service.Get(ctx, id)
	assert.Equal(t, khatma.StatusCompleted, k.Status)
	assert.Equal(t, firstCompletedAt, *k.CompletedAt)
	assert.Len(t, service.CompletionLog(ctx), baseline+1)
}

/*
TestParticipants verifies deduplication and first-seen ordering across
reserved and completed parts.
*/
func TestParticipants(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()
	id := createEmpty(t, service)

	require.True(t, service.UpdatePartStatus(ctx, id, 1, khatma.PartCompleted, "فاطمة", nil))
	require.True(t, service.UpdatePartStatus(ctx, id, 2, khatma.PartCompleted, "عمر", nil))
	require.True(t, service.UpdatePartStatus(ctx, id, 3, khatma.PartCompleted, "فاطمة", nil))
	require.True(t, service.UpdatePartStatus(ctx, id, 4, khatma.PartReserved, "هدى", nil))

	names, ok := service.Participants(ctx, id)
	require.True(t, ok)
	assert.Equal(t, []string{"فاطمة", "عمر", "هدى"}, names)

	_, ok = service.Participants(ctx, "no-such-khatma")
	assert.False(t, ok)
}

/*
TestSearch exercises the Arabic-aware folded matching.
*/
func TestSearch(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	service.Create(ctx, khatma.CreateInput{Title: "ختمة أهل الخير", CreatedBy: "إبراهيم"})

	// Hamza-insensitive: plain alif matches the hamza form in the title.
	results := service.Search(ctx, "اهل الخير")
	require.Len(t, results, 1)
	assert.Equal(t, "ختمة أهل الخير", results[0].Title)

	// Creator name matches too, hamza-insensitive.
	assert.Len(t, service.Search(ctx, "ابراهيم"), 1)

	// Empty query returns the full listing.
	assert.Len(t, service.Search(ctx, ""), len(service.List(ctx)))

	assert.Empty(t, service.Search(ctx, "لا يوجد"))
}

/*
TestStats aggregates over the seed dataset plus one driven-to-completion
khatma.
*/
func TestStats(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	id := createEmpty(t, service)
	completeAll(t, service, id)

	stats := service.Stats(ctx)
	assert.Equal(t, 3, stats.TotalKhatmas, "two seed khatmas plus the new one")
	assert.Equal(t, 1, stats.CompletedKhatmas)
	assert.Equal(t, 2, stats.ActiveKhatmas)
	// Seed data carries 3 + 15 completed parts.
	assert.Equal(t, 48, stats.CompletedParts)
	assert.Greater(t, stats.Participants, 0)
}

/*
TestSubscribe checks best-effort change notification and cancellation.
*/
func TestSubscribe(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	ch, cancel := service.Subscribe()

	service.Create(ctx, khatma.CreateInput{Title: "ختمة", CreatedBy: "أحمد"})
	select {
	case <-ch:
	default:
		t.Fatal("expected a notification after a mutation")
	}

	// Burst coalescing: many mutations, at most one pending token.
	id := createEmpty(t, service)
	require.True(t, service.UpdatePartStatus(ctx, id, 1, khatma.PartReserved, "أحمد", nil))
	<-ch
	select {
	case <-ch:
		t.Fatal("expected bursts to coalesce into one token")
	default:
	}

	cancel()

	// Cancellation closes the channel so range loops over it terminate.
	_, open := <-ch
	assert.False(t, open, "expected the channel to be closed after cancel")

	// Further mutations and a repeated cancel are safe no-ops.
	service.Create(ctx, khatma.CreateInput{Title: "ختمة أخرى", CreatedBy: "أحمد"})
	cancel()
}
