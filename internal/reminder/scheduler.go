// Copyright (c) 2026 AtharHuda. All rights reserved.

package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/atharhuda/atharhuda/internal/platform/storage"
)

// # Scheduler

// Scheduler owns the reminder settings and the armed timer.
//
// Every settings change rearms the timer; disabled or incomplete settings
// leave it unarmed. The scheduler is safe for concurrent use by the HTTP
// handler and the timer callback.
type Scheduler struct {
	mu       sync.Mutex
	timer    *time.Timer
	store    storage.Store
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
	baseCtx  context.Context
}

// NewScheduler constructs an unarmed scheduler.
func NewScheduler(store storage.Store, notifier Notifier, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		store:    store,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
		baseCtx:  context.Background(),
	}
}

/*
Start arms the timer from the stored settings.

Description: Called once at boot. The given context is used for deliveries
fired by the timer; cancelling it (plus [Scheduler.Stop]) shuts the
reminder down.

Parameters:
  - ctx: context.Context
*/
func (scheduler *Scheduler) Start(ctx context.Context) {
	scheduler.mu.Lock()
	scheduler.baseCtx = ctx
	scheduler.rescheduleLocked()
	scheduler.mu.Unlock()
}

// Stop disarms the timer.
func (scheduler *Scheduler) Stop() {
	scheduler.mu.Lock()
	scheduler.clearTimerLocked()
	scheduler.mu.Unlock()
}

// # Settings

/*
Settings returns the stored reminder configuration, or the disabled default.

Returns:
  - Settings
*/
func (scheduler *Scheduler) Settings(ctx context.Context) Settings {
	return loadSettings(ctx, scheduler.store, scheduler.logger)
}

/*
Save persists new settings and rearms the timer.

Description: The HTTP boundary validates shape (time format, name
presence); the scheduler itself only refuses to arm when the stored record
is disabled or incomplete.

Parameters:
  - ctx: context.Context
  - settings: Settings

Returns:
  - error: Storage write failure
*/
func (scheduler *Scheduler) Save(ctx context.Context, settings Settings) error {
	payload, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	if err := scheduler.store.Put(ctx, KeySettings, payload); err != nil {
		return err
	}

	scheduler.mu.Lock()
	scheduler.rescheduleLocked()
	scheduler.mu.Unlock()

	scheduler.logger.Info("reminder_settings_saved",
		slog.Bool("enabled", settings.Enabled),
		slog.String("time", settings.Time),
	)
	return nil
}

/*
Disable turns the reminder off, keeping the name and time for re-enabling.

Returns:
  - error: Storage write failure
*/
func (scheduler *Scheduler) Disable(ctx context.Context) error {
	current := scheduler.Settings(ctx)
	current.Enabled = false
	return scheduler.Save(ctx, current)
}

/*
SendTest fires an immediate test delivery, bypassing the schedule and the
once-per-day deduplication.

Returns:
  - error: Delivery failure
*/
func (scheduler *Scheduler) SendTest(ctx context.Context, personName string) error {
	return scheduler.notifier.Notify(ctx, personName, true)
}

// NextRun reports when the armed reminder will fire. The zero time and
// false mean the reminder is not armed.
func (scheduler *Scheduler) NextRun(ctx context.Context) (time.Time, bool) {
	settings := scheduler.Settings(ctx)
	if !settings.valid() {
		return time.Time{}, false
	}
	next, err := nextOccurrence(scheduler.now(), settings.Time)
	if err != nil {
		return time.Time{}, false
	}
	return next, true
}

// # Timer Internals

// clearTimerLocked stops and drops the armed timer, if any.
func (scheduler *Scheduler) clearTimerLocked() {
	if scheduler.timer != nil {
		scheduler.timer.Stop()
		scheduler.timer = nil
	}
}

// rescheduleLocked disarms the current timer and arms the next occurrence
// when the stored settings allow it.
func (scheduler *Scheduler) rescheduleLocked() {
	scheduler.clearTimerLocked()

	settings := loadSettings(scheduler.baseCtx, scheduler.store, scheduler.logger)
	if !settings.valid() {
		return
	}

	now := scheduler.now()
	next, err := nextOccurrence(now, settings.Time)
	if err != nil {
		scheduler.logger.Warn("reminder_time_invalid", slog.String("time", settings.Time))
		return
	}

	delay := next.Sub(now)
	scheduler.timer = time.AfterFunc(delay, scheduler.fire)
	scheduler.logger.Info("reminder_armed",
		slog.Time("next", next),
		slog.Duration("in", delay.Round(time.Second)),
	)
}

// fire delivers the daily reminder once per calendar day and rearms.
func (scheduler *Scheduler) fire() {
	scheduler.mu.Lock()
	ctx := scheduler.baseCtx
	scheduler.mu.Unlock()

	scheduler.deliver(ctx)

	scheduler.mu.Lock()
	scheduler.rescheduleLocked()
	scheduler.mu.Unlock()
}

// deliver sends today's reminder unless it was already sent today. The
// date key is recorded only after a successful delivery, so a failed send
// gets another chance at the next occurrence.
func (scheduler *Scheduler) deliver(ctx context.Context) {
	settings := loadSettings(ctx, scheduler.store, scheduler.logger)
	if !settings.valid() {
		return
	}

	today := dateKey(scheduler.now())
	if raw, err := scheduler.store.Get(ctx, KeyLastSent); err == nil && string(raw) == today {
		return
	} else if err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
		scheduler.logger.Warn("reminder_lastsent_read_failed", slog.Any("error", err))
	}

	if err := scheduler.notifier.Notify(ctx, settings.PersonName, false); err != nil {
		scheduler.logger.Warn("reminder_delivery_failed", slog.Any("error", err))
		return
	}

	if err := scheduler.store.Put(ctx, KeyLastSent, []byte(today)); err != nil {
		scheduler.logger.Warn("reminder_lastsent_write_failed", slog.Any("error", err))
	}
}
