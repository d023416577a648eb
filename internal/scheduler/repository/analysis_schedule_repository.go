package repository

import (
	"context"

	"golang-inflection-analyzer/internal/entity"
	"golang-inflection-analyzer/pkg/utils"

	"gorm.io/gorm"
)

// AnalysisScheduleRepository defines the interface for analysis schedule data operations.
type AnalysisScheduleRepository interface {
	Create(ctx context.Context, schedule *entity.AnalysisSchedule) error
	FindByID(ctx context.Context, id uint) (*entity.AnalysisSchedule, error)
	FindAll(ctx context.Context) ([]entity.AnalysisSchedule, error)
	Update(ctx context.Context, schedule *entity.AnalysisSchedule) error
	Delete(ctx context.Context, id uint) error
	FindDue(ctx context.Context) ([]entity.AnalysisSchedule, error)
}

// NewAnalysisScheduleRepository creates a new GORM-based analysis schedule repository.
func NewAnalysisScheduleRepository(db *gorm.DB) AnalysisScheduleRepository {
	return &analysisScheduleRepository{db: db}
}

type analysisScheduleRepository struct {
	db *gorm.DB
}

// Create creates a new analysis schedule.
func (r *analysisScheduleRepository) Create(ctx context.Context, schedule *entity.AnalysisSchedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

// FindByID retrieves an analysis schedule by its ID.
func (r *analysisScheduleRepository) FindByID(ctx context.Context, id uint) (*entity.AnalysisSchedule, error) {
	var schedule entity.AnalysisSchedule
	if err := r.db.WithContext(ctx).First(&schedule, id).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

// FindAll retrieves all analysis schedules.
func (r *analysisScheduleRepository) FindAll(ctx context.Context) ([]entity.AnalysisSchedule, error) {
	var schedules []entity.AnalysisSchedule
	if err := r.db.WithContext(ctx).Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

// Update updates an analysis schedule.
func (r *analysisScheduleRepository) Update(ctx context.Context, schedule *entity.AnalysisSchedule) error {
	return r.db.WithContext(ctx).Save(schedule).Error
}

// Delete removes an analysis schedule by its ID.
func (r *analysisScheduleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.AnalysisSchedule{}, id).Error
}

// FindDue finds all active schedules that are due to run.
func (r *analysisScheduleRepository) FindDue(ctx context.Context) ([]entity.AnalysisSchedule, error) {
	var schedules []entity.AnalysisSchedule
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND (next_execution IS NULL OR next_execution <= ?)", true, utils.TimeNowKST()).
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}
