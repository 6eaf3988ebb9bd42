package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// RunMigrations applies all pending migrations, locating the migrations
// directory relative to the working directory.
func RunMigrations(db *sql.DB) error {
	migrationDir, err := findMigrationDir()
	if err != nil {
		return err
	}
	return RunMigrationsWithDir(db, migrationDir)
}

// RunMigrationsWithDir applies all pending migrations from the given directory.
func RunMigrationsWithDir(db *sql.DB, migrationDir string) error {
	if err := prepareGoose(); err != nil {
		return err
	}
	if err := goose.Up(db, migrationDir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Rollback reverts the most recent migration, locating the migrations
// directory relative to the working directory.
func Rollback(db *sql.DB) error {
	migrationDir, err := findMigrationDir()
	if err != nil {
		return err
	}
	return RollbackWithDir(db, migrationDir)
}

// RollbackWithDir reverts the most recent migration from the given directory.
func RollbackWithDir(db *sql.DB, migrationDir string) error {
	if err := prepareGoose(); err != nil {
		return err
	}
	if err := goose.Down(db, migrationDir); err != nil {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}
	return nil
}

// Status prints which migrations have been applied.
func Status(db *sql.DB) error {
	migrationDir, err := findMigrationDir()
	if err != nil {
		return err
	}
	return StatusWithDir(db, migrationDir)
}

// StatusWithDir prints migration status for the given directory.
func StatusWithDir(db *sql.DB, migrationDir string) error {
	if err := prepareGoose(); err != nil {
		return err
	}
	return goose.Status(db, migrationDir)
}

func prepareGoose() error {
	goose.SetBaseFS(nil)
	goose.SetLogger(log.New(os.Stdout, "[migrations] ", log.LstdFlags))
	if err := goose.SetDialect("sqlite"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	return nil
}

func findMigrationDir() (string, error) {
	// The server binary may run from the module root or from cmd/server.
	for _, dir := range []string{
		filepath.Join(".", "migrations"),
		filepath.Join("..", "migrations"),
		"migrations",
	} {
		if _, err := os.Stat(dir); err == nil {
			return dir, nil
		}
	}
	return "", fmt.Errorf("migration directory not found (looked in ./migrations, ../migrations, migrations)")
}
