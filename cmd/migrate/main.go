package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"

	"watchboard/internal/config"
	"watchboard/internal/database"
	"watchboard/internal/logger"
	"watchboard/internal/store"
)

const usage = "usage: migrate <up|down [N]|version|import [watchlist.json]>"

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(os.Args[1:]); err != nil {
		logger.Get().Fatalf("Migration error: %v", err)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		return errors.New(usage)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	command := args[0]
	if command == "import" {
		return importFile(dbConfig, args[1:])
	}

	m, err := database.NewMigrate(dbConfig)
	if err != nil {
		return err
	}
	defer database.CloseMigrate(m)

	switch command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration up failed: %w", err)
		}
		logger.Get().Info("Migrations applied successfully")

	case "down":
		steps := 1
		if len(args) > 1 {
			steps, err = strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid step count: %w", err)
			}
		}
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration down failed: %w", err)
		}
		logger.Get().Infof("Rolled back %d migration(s)", steps)

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		logger.Get().Infof("Version: %d, Dirty: %v", version, dirty)

	default:
		return fmt.Errorf("unknown command: %s (%s)", command, usage)
	}

	return nil
}

// importFile copies a watchlist file, in any historical shape, into the SQL
// table, replacing its contents. The source file is only read.
func importFile(dbConfig *database.Config, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	} else {
		appConfig, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		path = appConfig.WatchlistFile
	}
	// Parse before connecting so a bad file never reaches the table.
	if _, err := store.ReadWatchlistFile(path); err != nil {
		return err
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() { _ = dbManager.Close() }()
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	n, err := store.ImportFile(context.Background(), path, store.NewSQLStore(dbManager.DB()))
	if err != nil {
		return err
	}
	logger.Get().Infow("Watchlist imported", "path", path, "items", n)
	return nil
}
