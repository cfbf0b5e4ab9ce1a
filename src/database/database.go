// Package database owns the sqlite connection and schema migrations for the
// collaborator state: users, sessions, whitelist, audit log and saved
// settings. Transactions and flags never touch it.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/username/amlview/backend/src/logger"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

func InitDB(databasePath string) {
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(on)", databasePath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		logger.L.Error("Could not open sqlite database", "path", databasePath, "error", err)
		os.Exit(1)
	}

	// Single connection: sqlite serializes writers anyway, and one
	// connection avoids SQLITE_BUSY under concurrent audit writes.
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		logger.L.Error("Could not reach sqlite database", "path", databasePath, "error", err)
		os.Exit(1)
	}
	DB = db
	logger.L.Info("Sqlite ready", "path", databasePath, "journalMode", "WAL")
}

func RunMigrations(databasePath string) {
	if DB == nil {
		logger.L.Error("RunMigrations called before InitDB")
		os.Exit(1)
	}

	driver, err := sqlite.WithInstance(DB, &sqlite.Config{})
	if err != nil {
		logger.L.Error("Could not create sqlite migration driver", "error", err)
		os.Exit(1)
	}

	var migrationsSourceURL string
	if os.Getenv("GO_ENV") == "PRO" {
		migrationsSourceURL = "file:///app/db/migrations"
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			logger.L.Error("Could not resolve working directory for migrations", "error", err)
			os.Exit(1)
		}
		localMigrationsPath := filepath.Join(cwd, "db", "migrations")
		migrationsSourceURL = fmt.Sprintf("file://%s", filepath.ToSlash(localMigrationsPath))
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsSourceURL, databasePath, driver)
	if err != nil {
		logger.L.Error("Could not create migration instance", "source", migrationsSourceURL, "error", err)
		os.Exit(1)
	}

	logger.L.Info("Applying schema migrations", "source", migrationsSourceURL)
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.L.Info("Schema already up to date")
			return
		}
		logger.L.Error("Schema migration failed", "error", err)
		os.Exit(1)
	}
	logger.L.Info("Schema migrations applied")
}
