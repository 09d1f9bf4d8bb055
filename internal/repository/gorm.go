package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/relaxmesh/stencil/pkg/model"
	"gorm.io/gorm"
)

// GormResultRepository implements ResultRepository using GORM.
type GormResultRepository struct {
	db *gorm.DB
}

// NewGormResultRepository creates a new GormResultRepository.
func NewGormResultRepository(db *gorm.DB) *GormResultRepository {
	return &GormResultRepository{db: db}
}

// Save persists a benchmark result.
func (r *GormResultRepository) Save(ctx context.Context, result model.Result, archiveURL string) error {
	row := FromModel(result, archiveURL)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to save benchmark run: %w", err)
	}
	return nil
}

// List retrieves the most recent runs, newest first.
func (r *GormResultRepository) List(ctx context.Context, limit int) ([]model.Result, error) {
	var rows []BenchmarkRun

	err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query benchmark runs: %w", err)
	}

	results := make([]model.Result, len(rows))
	for i, row := range rows {
		results[i] = row.ToModel()
	}

	return results, nil
}

// GetByID retrieves a single run by its database ID.
func (r *GormResultRepository) GetByID(ctx context.Context, id int64) (*model.Result, error) {
	var row BenchmarkRun

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("benchmark run not found: %d", id)
		}
		return nil, fmt.Errorf("failed to get benchmark run: %w", err)
	}

	result := row.ToModel()
	return &result, nil
}
