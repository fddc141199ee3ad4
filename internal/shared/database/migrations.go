package database

import (
	"errors"
	"fmt"
	"log/slog"

	"favorites-server/internal/shared/config"
	"favorites-server/migrations"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Migrator applies the embedded schema for the configured dialect. It owns
// its own connection, which Close releases.
type Migrator struct {
	m       *migrate.Migrate
	dialect config.Dialect
	logger  *slog.Logger
}

func NewMigrator(cfg config.DatabaseConfig) (*Migrator, error) {
	logger := slog.With("component", "migrations", "dialect", cfg.Dialect)

	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	source, err := iofs.New(migrations.FS, string(cfg.Dialect))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to read embedded migrations: %w", err)
	}

	var driver migratedb.Driver
	switch cfg.Dialect {
	case config.DialectPostgres:
		driver, err = migratepostgres.WithInstance(db.DB, &migratepostgres.Config{})
	default:
		driver, err = migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, string(cfg.Dialect), driver)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}

	return &Migrator{m: m, dialect: cfg.Dialect, logger: logger}, nil
}

func (mg *Migrator) Up() error {
	logger := mg.logger.With("operation", "up")
	logger.Info("Starting database migrations")

	if err := mg.m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("Schema already up to date")
			return nil
		}
		logger.Error("Failed to apply migrations", "error", err)
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	logger.Info("All migrations completed successfully")
	return nil
}

func (mg *Migrator) Down() error {
	logger := mg.logger.With("operation", "down")
	logger.Warn("Reverting all database migrations")

	if err := mg.m.Down(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("Nothing to revert")
			return nil
		}
		logger.Error("Failed to revert migrations", "error", err)
		return fmt.Errorf("failed to revert migrations: %w", err)
	}

	logger.Info("Migrations reverted")
	return nil
}

// Version returns 0 when no migration has been applied yet.
func (mg *Migrator) Version() (version uint, dirty bool, err error) {
	version, dirty, err = mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	if srcErr != nil {
		return srcErr
	}
	return dbErr
}

// MigrateUp is the one-shot form used by the server when auto-migrate is on.
func MigrateUp(cfg config.DatabaseConfig) error {
	mg, err := NewMigrator(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := mg.Close(); err != nil {
			mg.logger.Error("Failed to close migrator", "error", err)
		}
	}()

	return mg.Up()
}
