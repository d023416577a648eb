package repository

import (
	"context"

	"golang-inflection-analyzer/internal/entity"

	"gorm.io/gorm"
)

// CycleSignalRepository persists analysis results. Reads are served by the
// scheduling service.
type CycleSignalRepository interface {
	Create(ctx context.Context, signal *entity.CycleSignal) error
}

type cycleSignalRepository struct {
	db *gorm.DB
}

func NewCycleSignalRepository(db *gorm.DB) CycleSignalRepository {
	return &cycleSignalRepository{db: db}
}

func (r *cycleSignalRepository) Create(ctx context.Context, signal *entity.CycleSignal) error {
	return r.db.WithContext(ctx).Create(signal).Error
}
