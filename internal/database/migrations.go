package database

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

var ErrMigrationsUnsupported = errors.New("no SQL migrations for driver, use serve --auto-migrate")

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// RunMigrations applies the embedded SQL migrations for the given driver.
func RunMigrations(ctx context.Context, db *gorm.DB, driver string) error {
	dir, dialect, err := migrationSource(driver)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql handle: %w", err)
	}

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	goose.SetBaseFS(migrationsFS)
	if err := goose.UpContext(ctx, sqlDB, dir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// MigrationStatus logs the applied state of every embedded migration.
func MigrationStatus(ctx context.Context, db *gorm.DB, driver string) error {
	dir, dialect, err := migrationSource(driver)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql handle: %w", err)
	}

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	goose.SetBaseFS(migrationsFS)
	return goose.StatusContext(ctx, sqlDB, dir)
}

func migrationSource(driver string) (dir, dialect string, err error) {
	switch driver {
	case DriverPostgres:
		return "migrations/postgres", "postgres", nil
	case DriverSQLite:
		return "migrations/sqlite", "sqlite3", nil
	case DriverMySQL:
		return "", "", fmt.Errorf("%w: %s", ErrMigrationsUnsupported, driver)
	}
	return "", "", fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
}
