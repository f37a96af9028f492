package repository

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lgraf/photos-export/models"
)

// ExportRunRepository handles database operations for ExportRun entities
type ExportRunRepository struct {
	DB *gorm.DB
}

// NewExportRunRepository creates a new instance of ExportRunRepository
func NewExportRunRepository(db *gorm.DB) *ExportRunRepository {
	return &ExportRunRepository{DB: db}
}

// Create records a finished export run. A missing ID or timestamp is filled
// in here.
func (r *ExportRunRepository) Create(run *models.ExportRun) error {
	if run.ID == "" {
		id, err := uuid.NewRandom()
		if err != nil {
			return fmt.Errorf("failed to generate export run ID: %w", err)
		}
		run.ID = id.String()
	}
	if run.CreatedAt == 0 {
		run.CreatedAt = time.Now().Unix()
	}

	if err := r.DB.Create(run).Error; err != nil {
		return fmt.Errorf("failed to record export run %s: %w", run.ID, err)
	}
	return nil
}

// ListRecent retrieves the most recent export runs, newest first.
func (r *ExportRunRepository) ListRecent(limit int) ([]models.ExportRun, error) {
	var runs []models.ExportRun
	err := r.DB.Order("created_at DESC").Limit(limit).Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list export runs: %w", err)
	}
	return runs, nil
}
