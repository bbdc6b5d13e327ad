// Copyright (c) 2026 AtharHuda. All rights reserved.

// Package migration provides a thin wrapper around golang-migrate for
// running database schema migrations.
//
// # Architecture
//
// This package belongs to the Infrastructure layer and is used only by the
// postgres snapshot backend (the sqlite backend creates its single table
// inline). It enforces schema idempotency during application startup.
package migration

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers "pgx5" scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// file source reads .sql files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunUp applies all pending UP migrations.
//
// # Parameters
//   - dsn: A libpq-compatible DSN or postgres:// URL.
//   - migrationsPath: Filesystem path to the migrations directory.
//   - logger: Structured logger for migration events.
func RunUp(dsn string, migrationsPath string, logger *slog.Logger) error {
	// golang-migrate pgx/v5 driver expects "pgx5://" scheme.
	databaseURL := convertToPgx5DSN(dsn)
	sourceURL := "file://" + migrationsPath

	migrator, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}
	defer func() {
		sourceError, dbError := migrator.Close()
		if sourceError != nil {
			logger.Error("migration_source_close_failed", slog.Any("error", sourceError))
		}
		if dbError != nil {
			logger.Error("migration_db_close_failed", slog.Any("error", dbError))
		}
	}()

	// Enable verbose logging via the slog bridge.
	migrator.Log = &migrateLogger{logger: logger}

	currentVersion, isDirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: failed to get current version: %w", err)
	}

	if isDirty {
		return fmt.Errorf("migration: database is in a dirty state at version %d (manual intervention required)", currentVersion)
	}

	logger.Info("migration_started", slog.Int("current_version", int(currentVersion)))

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migration_already_up_to_date")
			return nil
		}
		return fmt.Errorf("migration: up failed: %w", err)
	}

	newVersion, _, _ := migrator.Version()
	logger.Info("migration_successful",
		slog.Int("from_version", int(currentVersion)),
		slog.Int("to_version", int(newVersion)),
	)

	return nil
}

// convertToPgx5DSN rewrites postgres:// and postgresql:// URLs to the pgx5://
// scheme golang-migrate's pgx/v5 driver registers.
func convertToPgx5DSN(dsn string) string {
	const (
		postgresScheme   = "postgres://"
		postgresqlScheme = "postgresql://"
		pgx5Scheme       = "pgx5://"
	)

	switch {
	case len(dsn) >= len(postgresScheme) && dsn[:len(postgresScheme)] == postgresScheme:
		return pgx5Scheme + dsn[len(postgresScheme):]
	case len(dsn) >= len(postgresqlScheme) && dsn[:len(postgresqlScheme)] == postgresqlScheme:
		return pgx5Scheme + dsn[len(postgresqlScheme):]
	default:
		return dsn
	}
}

// migrateLogger bridges golang-migrate's Logger interface onto slog.
type migrateLogger struct {
	logger *slog.Logger
}

// Printf implements [migrate.Logger].
func (l *migrateLogger) Printf(format string, v ...interface{}) {
	l.logger.Info("migration_progress", slog.String("detail", fmt.Sprintf(format, v...)))
}

// Verbose implements [migrate.Logger].
func (l *migrateLogger) Verbose() bool { return false }
