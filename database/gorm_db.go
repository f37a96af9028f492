package database

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lgraf/photos-export/models"
)

// InitHistoryDB opens (and migrates) the local export-history database. This
// database is private to the tool and entirely separate from the Photos
// store, which is only ever opened read-only.
func InitHistoryDB(dataSourceName string) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dataSourceName), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history database directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database %s: %w", dataSourceName, err)
	}

	if err := db.AutoMigrate(&models.ExportRun{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}

	return db, nil
}
