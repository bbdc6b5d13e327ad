// Copyright (c) 2026 AtharHuda. All rights reserved.

/*
Package reminder implements the daily dhikr reminder.

A single stored settings record says who the reminder is for, the wall-clock
time it should fire, and whether it is enabled. The [Scheduler] arms a timer
for the next occurrence, delivers through an injected [Notifier], and records
the delivery date so at most one reminder fires per calendar day even across
restarts.
*/
package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/atharhuda/atharhuda/internal/platform/storage"
)

// Storage keys, carried over from the PWA's local-storage schema.
const (
	KeySettings = "tasabeeh-reminder-settings-v1"
	KeyLastSent = "tasabeeh-reminder-last-sent-v1"
)

// DefaultTime is the reminder time offered before the user picks one.
const DefaultTime = "20:00"

// timePattern matches the stored "HH:MM" wall-clock value.
var timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

// Settings is the persisted reminder configuration.
type Settings struct {
	PersonName string `json:"personName"`
	Time       string `json:"time"`
	Enabled    bool   `json:"enabled"`
}

// valid reports whether the settings describe an armable reminder.
func (s Settings) valid() bool {
	return s.Enabled && s.PersonName != "" && timePattern.MatchString(s.Time)
}

// Notifier delivers a reminder to the user.
//
// Implementations push through whatever channel the deployment has (web
// push, a websocket broadcast). The scheduler only cares whether delivery
// succeeded: a failed delivery is retried the next day, not recorded.
type Notifier interface {
	Notify(ctx context.Context, personName string, test bool) error
}

// LogNotifier is the fallback [Notifier]: it writes the reminder to the
// structured log. Useful in development and as a wiring default.
type LogNotifier struct {
	Logger *slog.Logger
}

// Notify logs the reminder text.
func (n *LogNotifier) Notify(_ context.Context, personName string, test bool) error {
	kind := "daily"
	if test {
		kind = "test"
	}
	n.Logger.Info("reminder_notification",
		slog.String("kind", kind),
		slog.String("message", fmt.Sprintf("حان وقت الذكر والدعاء لـ %s ✨", personName)),
	)
	return nil
}

// loadSettings reads the stored settings, degrading to the disabled default
// on absence or corruption. Corrupt payloads are removed.
func loadSettings(ctx context.Context, store storage.Store, logger *slog.Logger) Settings {
	defaults := Settings{PersonName: "", Time: DefaultTime, Enabled: false}

	raw, err := store.Get(ctx, KeySettings)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			logger.Warn("reminder_settings_read_failed", slog.Any("error", err))
		}
		return defaults
	}

	var settings Settings
	if err := json.Unmarshal(raw, &settings); err != nil {
		logger.Warn("reminder_settings_malformed", slog.Any("error", err))
		_ = store.Delete(ctx, KeySettings)
		return defaults
	}

	settings.PersonName = strings.TrimSpace(settings.PersonName)
	if settings.Time == "" {
		settings.Time = DefaultTime
	}
	return settings
}

// nextOccurrence returns the next time the "HH:MM" value comes around after
// now. A time earlier today moves to tomorrow.
func nextOccurrence(now time.Time, value string) (time.Time, error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return time.Time{}, err
	}

	next := time.Date(now.Year(), now.Month(), now.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next, nil
}

// dateKey formats a time as the once-per-day deduplication key.
func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
