// Copyright (c) 2026 AtharHuda. All rights reserved.

package reminder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atharhuda/atharhuda/internal/platform/storage"
)

// countingNotifier records deliveries and can be made to fail.
type countingNotifier struct {
	deliveries []string
	tests      int
	fail       bool
}

func (n *countingNotifier) Notify(_ context.Context, personName string, test bool) error {
	if n.fail {
		return fmt.Errorf("push endpoint gone")
	}
	if test {
		n.tests++
		return nil
	}
	n.deliveries = append(n.deliveries, personName)
	return nil
}

func newTestScheduler(t *testing.T) (*Scheduler, *countingNotifier, *storage.MemoryStore) {
	t.Helper()

	store := storage.NewMemoryStore()
	notifier := &countingNotifier{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewScheduler(store, notifier, logger), notifier, store
}

/*
TestNextOccurrence pins the today-or-tomorrow arithmetic.
*/
func TestNextOccurrence(t *testing.T) {
	now := time.Date(2026, time.June, 3, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		value    string
		expected time.Time
	}{
		{"later_today", "20:00", time.Date(2026, time.June, 3, 20, 0, 0, 0, time.UTC)},
		{"earlier_today_rolls_over", "08:00", time.Date(2026, time.June, 4, 8, 0, 0, 0, time.UTC)},
		{"exactly_now_rolls_over", "14:30", time.Date(2026, time.June, 4, 14, 30, 0, 0, time.UTC)},
		{"midnight", "00:00", time.Date(2026, time.June, 4, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := nextOccurrence(now, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, next)
		})
	}

	t.Run("invalid_value", func(t *testing.T) {
		_, err := nextOccurrence(now, "25:99")
		assert.Error(t, err)
	})
}

/*
TestSettingsLifecycle covers save, reload, and degradation on corruption.
*/
func TestSettingsLifecycle(t *testing.T) {
	scheduler, _, store := newTestScheduler(t)
	ctx := context.Background()

	// Nothing stored: the disabled default.
	settings := scheduler.Settings(ctx)
	assert.Equal(t, Settings{PersonName: "", Time: DefaultTime, Enabled: false}, settings)

	saved := Settings{PersonName: "الوالدة", Time: "21:15", Enabled: true}
	require.NoError(t, scheduler.Save(ctx, saved))
	assert.Equal(t, saved, scheduler.Settings(ctx))

	// Corruption degrades to the default and removes the bad payload.
	require.NoError(t, store.Put(ctx, KeySettings, []byte("{broken")))
	assert.Equal(t, DefaultTime, scheduler.Settings(ctx).Time)
	_, err := store.Get(ctx, KeySettings)
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
}

/*
TestDeliver_OncePerDay: a second delivery on the same calendar day is a
no-op; the next day delivers again.
*/
func TestDeliver_OncePerDay(t *testing.T) {
	scheduler, notifier, _ := newTestScheduler(t)
	ctx := context.Background()

	current := time.Date(2026, time.June, 3, 20, 0, 0, 0, time.UTC)
	scheduler.now = func() time.Time { return current }

	require.NoError(t, scheduler.Save(ctx, Settings{PersonName: "الوالد", Time: "20:00", Enabled: true}))
	scheduler.Stop()

	scheduler.deliver(ctx)
	scheduler.deliver(ctx)
	assert.Equal(t, []string{"الوالد"}, notifier.deliveries)

	current = current.AddDate(0, 0, 1)
	scheduler.deliver(ctx)
	assert.Equal(t, []string{"الوالد", "الوالد"}, notifier.deliveries)
}

/*
TestDeliver_FailureIsRetried: a failed delivery leaves the date unrecorded,
so the reminder gets another chance.
*/
func TestDeliver_FailureIsRetried(t *testing.T) {
	scheduler, notifier, store := newTestScheduler(t)
	ctx := context.Background()

	require.NoError(t, scheduler.Save(ctx, Settings{PersonName: "الوالد", Time: "20:00", Enabled: true}))
	scheduler.Stop()

	notifier.fail = true
	scheduler.deliver(ctx)
	_, err := store.Get(ctx, KeyLastSent)
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	notifier.fail = false
	scheduler.deliver(ctx)
	assert.Len(t, notifier.deliveries, 1)
}

/*
TestDeliver_RespectsDisabledAndIncomplete: nothing fires without an enabled,
complete record.
*/
func TestDeliver_RespectsDisabledAndIncomplete(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
	}{
		{"disabled", Settings{PersonName: "الوالد", Time: "20:00", Enabled: false}},
		{"no_name", Settings{PersonName: "", Time: "20:00", Enabled: true}},
		{"bad_time", Settings{PersonName: "الوالد", Time: "8pm", Enabled: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scheduler, notifier, _ := newTestScheduler(t)
			ctx := context.Background()

			require.NoError(t, scheduler.Save(ctx, tt.settings))
			scheduler.Stop()

			scheduler.deliver(ctx)
			assert.Empty(t, notifier.deliveries)
		})
	}
}

/*
TestNextRun reports the armed occurrence only for valid settings.
*/
func TestNextRun(t *testing.T) {
	scheduler, _, _ := newTestScheduler(t)
	ctx := context.Background()

	current := time.Date(2026, time.June, 3, 14, 0, 0, 0, time.UTC)
	scheduler.now = func() time.Time { return current }

	_, ok := scheduler.NextRun(ctx)
	assert.False(t, ok, "unarmed by default")

	require.NoError(t, scheduler.Save(ctx, Settings{PersonName: "الوالدة", Time: "20:00", Enabled: true}))
	scheduler.Stop()

	next, ok := scheduler.NextRun(ctx)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.June, 3, 20, 0, 0, 0, time.UTC), next)

	require.NoError(t, scheduler.Disable(ctx))
	_, ok = scheduler.NextRun(ctx)
	assert.False(t, ok)
}

/*
TestSendTest bypasses the schedule and the daily deduplication.
*/
func TestSendTest(t *testing.T) {
	scheduler, notifier, _ := newTestScheduler(t)
	ctx := context.Background()

	require.NoError(t, scheduler.SendTest(ctx, "سارة"))
	require.NoError(t, scheduler.SendTest(ctx, "سارة"))
	assert.Equal(t, 2, notifier.tests)
	assert.Empty(t, notifier.deliveries)
}
