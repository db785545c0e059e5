package cli

import (
	"fmt"
	"log"
	"strings"

	"task-tracker-api/internal/config"
	"task-tracker-api/internal/database"
	"task-tracker-api/internal/manager"
	"task-tracker-api/internal/snapshot"

	"gorm.io/gorm/logger"
)

// openStore opens the snapshot store of a backend. The returned close
// function is always safe to call.
func openStore(backend, path string) (manager.SnapshotStore, func(), error) {
	switch backend {
	case config.BackendCSV:
		return snapshot.NewCSVFile(path), func() {}, nil
	case config.BackendSQLite:
		db, err := database.Open(path, logger.Warn)
		if err != nil {
			return nil, func() {}, err
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Println("failed to close database:", err)
				}
			}
		}
		return database.NewSnapshotStore(db), closeDB, nil
	}
	return nil, func() {}, fmt.Errorf("backend %q has no snapshot store", backend)
}

// buildManager returns the task manager for the configured storage.
func buildManager(cfg config.StorageConfig) (manager.TaskManager, func(), error) {
	if cfg.Backend == config.BackendMemory {
		return manager.NewDefault(), func() {}, nil
	}
	store, closeStore, err := openStore(cfg.Backend, cfg.Path)
	if err != nil {
		return nil, closeStore, err
	}
	m, err := manager.LoadFileBacked(store)
	if err != nil {
		closeStore()
		return nil, func() {}, err
	}
	return m, closeStore, nil
}

// parseTarget splits "backend:path" as used by the convert command.
func parseTarget(s string) (backend, path string, err error) {
	backend, path, ok := strings.Cut(s, ":")
	if !ok || path == "" {
		return "", "", fmt.Errorf("invalid target %q, expected backend:path", s)
	}
	switch backend {
	case config.BackendCSV, config.BackendSQLite:
		return backend, path, nil
	}
	return "", "", fmt.Errorf("invalid target %q: backend must be %s or %s", s, config.BackendCSV, config.BackendSQLite)
}
