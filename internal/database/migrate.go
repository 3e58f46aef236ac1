package database

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

// MigrationsDir is the migrate source URL, relative to the working directory.
var MigrationsDir = "file://migrations"

// RunMigrations brings the quote journal schema to the latest version.
func RunMigrations(databaseURL string) error {
	return withMigrator(databaseURL, "up", (*migrate.Migrate).Up)
}

// RollbackMigrations drops every journal migration. Tests only.
func RollbackMigrations(databaseURL string) error {
	return withMigrator(databaseURL, "down", (*migrate.Migrate).Down)
}

func withMigrator(databaseURL, direction string, step func(*migrate.Migrate) error) error {
	m, err := migrate.New(MigrationsDir, databaseURL)
	if err != nil {
		return fmt.Errorf("open migration source %s: %w", MigrationsDir, err)
	}
	defer m.Close()

	err = step(m)
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		log.Debug().Str("direction", direction).Msg("quote journal schema unchanged")
		return nil
	case err != nil:
		return fmt.Errorf("migrate %s: %w", direction, err)
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return fmt.Errorf("read schema version: %w", verr)
	}
	log.Info().
		Str("direction", direction).
		Uint("version", version).
		Bool("dirty", dirty).
		Msg("quote journal schema migrated")
	return nil
}
