package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies all pending migrations for the configured driver.
// Each driver has its own migration directory since the schemas differ
// (uuid columns are BINARY(16) on MySQL). Already up to date is not an
// error.
func RunMigrations(logger *slog.Logger, driver, connectionString string) error {
	sourceURL, err := migrationSource(driver)
	if err != nil {
		return err
	}

	logger.Info("running database migrations", slog.String("driver", driver))

	m, err := migrate.New(sourceURL, connectionString)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}

func migrationSource(driver string) (string, error) {
	switch driver {
	case "postgres", "postgresql":
		return "file://migrations/postgresql", nil
	case "mysql":
		return "file://migrations/mysql", nil
	default:
		return "", fmt.Errorf("unsupported database driver: %s", driver)
	}
}
