package database

import (
	"fmt"
	"log"

	"task-tracker-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens the SQLite database at path and runs migrations
func Open(path string, level logger.LogLevel) (*gorm.DB, error) {
	// Using glebarez/sqlite which is a pure Go implementation (no CGO required)
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// Auto-migrate the schema (it will create tables if they don't exist)
	if err := db.AutoMigrate(&models.TaskRecord{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	log.Println("Database connected and migrated successfully!!!")
	return db, nil
}

// SnapshotStore keeps the snapshot as rows of the task_records table.
type SnapshotStore struct {
	db *gorm.DB
}

// NewSnapshotStore wraps an open, migrated database.
func NewSnapshotStore(db *gorm.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Save replaces the table contents with snap in a single transaction.
func (s *SnapshotStore) Save(snap models.Snapshot) error {
	records := snap.Records()
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.TaskRecord{}).Error; err != nil {
			return fmt.Errorf("clear task records: %w", err)
		}
		if len(records) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(records, 100).Error; err != nil {
			return fmt.Errorf("insert task records: %w", err)
		}
		return nil
	})
}

// Load reads every row ordered by id. An empty table is an empty snapshot.
func (s *SnapshotStore) Load() (models.Snapshot, error) {
	var records []models.TaskRecord
	if err := s.db.Order("id asc").Find(&records).Error; err != nil {
		return models.Snapshot{}, fmt.Errorf("fetch task records: %w", err)
	}
	return models.SnapshotFromRecords(records)
}
