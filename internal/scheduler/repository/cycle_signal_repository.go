package repository

import (
	"context"

	"golang-inflection-analyzer/internal/entity"

	"gorm.io/gorm"
)

// CycleSignalRepository defines read access to stored cycle signals.
type CycleSignalRepository interface {
	FindLatest(ctx context.Context, stockCode string, limit int) ([]entity.CycleSignal, error)
	FindLatestPerStock(ctx context.Context) ([]entity.CycleSignal, error)
}

// NewCycleSignalRepository creates a new GORM-based cycle signal repository.
func NewCycleSignalRepository(db *gorm.DB) CycleSignalRepository {
	return &cycleSignalRepository{db: db}
}

type cycleSignalRepository struct {
	db *gorm.DB
}

// FindLatest retrieves the most recent signals for one stock.
func (r *cycleSignalRepository) FindLatest(ctx context.Context, stockCode string, limit int) ([]entity.CycleSignal, error) {
	var signals []entity.CycleSignal
	err := r.db.WithContext(ctx).
		Where("stock_code = ?", stockCode).
		Order("created_at DESC").
		Limit(limit).
		Find(&signals).Error
	if err != nil {
		return nil, err
	}
	return signals, nil
}

// FindLatestPerStock retrieves the most recent signal of every stock.
func (r *cycleSignalRepository) FindLatestPerStock(ctx context.Context) ([]entity.CycleSignal, error) {
	var signals []entity.CycleSignal
	err := r.db.WithContext(ctx).
		Raw(`SELECT DISTINCT ON (stock_code) *
			FROM cycle_signals
			WHERE deleted_at IS NULL
			ORDER BY stock_code, created_at DESC`).
		Scan(&signals).Error
	if err != nil {
		return nil, err
	}
	return signals, nil
}
