package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"warehouse/loadmap/internal/metrics"
	gormModels "warehouse/loadmap/internal/models/gorm"
)

// LoadMapGormRepository handles load_maps writes and full-record reads
type LoadMapGormRepository struct {
	db      *gorm.DB
	metrics *metrics.MetricsRegistry
}

// NewLoadMapGormRepository creates a new GORM-based load map repository.
// metricsReg may be nil.
func NewLoadMapGormRepository(db *gorm.DB, metricsReg *metrics.MetricsRegistry) *LoadMapGormRepository {
	return &LoadMapGormRepository{db: db, metrics: metricsReg}
}

// GetByID retrieves a load map by its ID. A missing row yields nil, nil.
func (r *LoadMapGormRepository) GetByID(ctx context.Context, id uint) (*gormModels.LoadMap, error) {
	defer r.metrics.ObserveDBQuery("select", time.Now())

	var row gormModels.LoadMap
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch load map: %w", err)
	}

	return &row, nil
}

// Create inserts row and fills in its id and timestamps.
func (r *LoadMapGormRepository) Create(ctx context.Context, row *gormModels.LoadMap) error {
	defer r.metrics.ObserveDBQuery("insert", time.Now())

	row.ID = 0
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to create load map: %w", err)
	}
	return nil
}

// Replace overwrites every column of row id with row's values. It reports
// false when no such row exists.
func (r *LoadMapGormRepository) Replace(ctx context.Context, id uint, row *gormModels.LoadMap) (bool, error) {
	defer r.metrics.ObserveDBQuery("update", time.Now())

	row.ID = id
	row.UpdatedAt = r.db.NowFunc()

	result := r.db.WithContext(ctx).
		Model(&gormModels.LoadMap{}).
		Where("id = ?", id).
		Select("*").
		Omit("id", "created_at").
		Updates(row)

	if result.Error != nil {
		return false, fmt.Errorf("failed to update load map: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Delete removes row id. It reports false when no such row existed.
func (r *LoadMapGormRepository) Delete(ctx context.Context, id uint) (bool, error) {
	defer r.metrics.ObserveDBQuery("delete", time.Now())

	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&gormModels.LoadMap{})

	if result.Error != nil {
		return false, fmt.Errorf("failed to delete load map: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
