// Package databasetest provides migrated throwaway databases for tests.
package databasetest

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"favorites-server/internal/shared/config"
	"favorites-server/internal/shared/database"

	"github.com/stretchr/testify/require"
)

// DiscardLogs swaps the default slog logger for one that drops everything
// until the test ends. Connect and the migrator log through the default.
func DiscardLogs(t testing.TB) {
	t.Helper()

	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
}

// SQLiteConfig points at a fresh file under the test's temp dir, spelled as
// an absolute sqlite://// URL.
func SQLiteConfig(t testing.TB) config.DatabaseConfig {
	t.Helper()
	DiscardLogs(t)

	return config.DatabaseConfig{
		URL:             "sqlite:///" + filepath.Join(t.TempDir(), "favorites.db"),
		Dialect:         config.DialectSQLite,
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	}
}

// NewSQLite returns a connected, fully migrated SQLite database that is
// closed when the test ends.
func NewSQLite(t testing.TB) *database.DB {
	t.Helper()
	return Migrated(t, SQLiteConfig(t))
}

// Migrated applies all migrations to cfg and connects to it.
func Migrated(t testing.TB, cfg config.DatabaseConfig) *database.DB {
	t.Helper()
	DiscardLogs(t)

	require.NoError(t, database.MigrateUp(cfg))

	db, err := database.Connect(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}
