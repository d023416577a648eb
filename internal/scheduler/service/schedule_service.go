package service

import (
	"context"
	"fmt"

	"golang-inflection-analyzer/internal/entity"
	"golang-inflection-analyzer/internal/scheduler/dto"
	"golang-inflection-analyzer/internal/scheduler/repository"
	"golang-inflection-analyzer/pkg/logger"
	"golang-inflection-analyzer/pkg/utils"

	"github.com/robfig/cron/v3"
)

// ScheduleService defines the interface for managing analysis schedules.
type ScheduleService interface {
	CreateSchedule(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error)
	GetScheduleByID(ctx context.Context, id uint) (*dto.ScheduleResponse, error)
	GetAllSchedules(ctx context.Context) ([]*dto.ScheduleResponse, error)
	UpdateSchedule(ctx context.Context, id uint, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error)
	DeleteSchedule(ctx context.Context, id uint) error
}

// NewScheduleService creates a new schedule service.
func NewScheduleService(scheduleRepo repository.AnalysisScheduleRepository, logger *logger.Logger) ScheduleService {
	return &scheduleService{
		scheduleRepo: scheduleRepo,
		logger:       logger,
		cronParser:   cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
	}
}

type scheduleService struct {
	scheduleRepo repository.AnalysisScheduleRepository
	logger       *logger.Logger
	cronParser   cron.Parser
}

// CreateSchedule handles the business logic for creating a new schedule.
func (s *scheduleService) CreateSchedule(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	cronSchedule, err := s.cronParser.Parse(req.CronExpression)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", req.CronExpression, err)
	}

	schedule := &entity.AnalysisSchedule{
		Name:           req.Name,
		CronExpression: req.CronExpression,
		Interval:       req.Interval,
		Range:          req.Range,
		IsActive:       req.IsActive,
	}
	schedule.NextExecution.Time = cronSchedule.Next(utils.TimeNowKST())
	schedule.NextExecution.Valid = true

	if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		s.logger.Error("Failed to create schedule", logger.ErrorField(err))
		return nil, err
	}

	s.logger.Info("Schedule created successfully", logger.Field("schedule_id", schedule.ID))
	return s.mapToScheduleResponse(schedule), nil
}

// GetScheduleByID retrieves a schedule by its ID.
func (s *scheduleService) GetScheduleByID(ctx context.Context, id uint) (*dto.ScheduleResponse, error) {
	schedule, err := s.scheduleRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to find schedule", logger.ErrorField(err), logger.Field("schedule_id", id))
		return nil, err
	}
	return s.mapToScheduleResponse(schedule), nil
}

// GetAllSchedules retrieves all schedules.
func (s *scheduleService) GetAllSchedules(ctx context.Context) ([]*dto.ScheduleResponse, error) {
	schedules, err := s.scheduleRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to get all schedules", logger.ErrorField(err))
		return nil, err
	}

	var scheduleResponses []*dto.ScheduleResponse
	for _, schedule := range schedules {
		scheduleResponses = append(scheduleResponses, s.mapToScheduleResponse(&schedule))
	}

	return scheduleResponses, nil
}

// UpdateSchedule handles the business logic for updating an existing schedule.
func (s *scheduleService) UpdateSchedule(ctx context.Context, id uint, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	schedule, err := s.scheduleRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to find schedule for update", logger.ErrorField(err), logger.Field("schedule_id", id))
		return nil, err
	}

	cronSchedule, err := s.cronParser.Parse(req.CronExpression)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", req.CronExpression, err)
	}

	schedule.CronExpression = req.CronExpression
	schedule.Interval = req.Interval
	schedule.Range = req.Range
	schedule.IsActive = req.IsActive
	schedule.NextExecution.Time = cronSchedule.Next(utils.TimeNowKST())
	schedule.NextExecution.Valid = true

	if err := s.scheduleRepo.Update(ctx, schedule); err != nil {
		s.logger.Error("Failed to update schedule", logger.ErrorField(err), logger.Field("schedule_id", id))
		return nil, err
	}

	s.logger.Info("Schedule updated successfully", logger.Field("schedule_id", id))
	return s.mapToScheduleResponse(schedule), nil
}

// DeleteSchedule deletes a schedule by its ID.
func (s *scheduleService) DeleteSchedule(ctx context.Context, id uint) error {
	err := s.scheduleRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("Failed to delete schedule", logger.ErrorField(err), logger.Field("schedule_id", id))
		return err
	}
	s.logger.Info("Schedule deleted successfully", logger.Field("schedule_id", id))
	return nil
}

// mapToScheduleResponse maps an entity.AnalysisSchedule to a dto.ScheduleResponse.
func (s *scheduleService) mapToScheduleResponse(schedule *entity.AnalysisSchedule) *dto.ScheduleResponse {
	return &dto.ScheduleResponse{
		ID:             schedule.ID,
		Name:           schedule.Name,
		CronExpression: schedule.CronExpression,
		Interval:       schedule.Interval,
		Range:          schedule.Range,
		IsActive:       schedule.IsActive,
		NextExecution:  schedule.NextExecution,
		LastExecution:  schedule.LastExecution,
		CreatedAt:      schedule.CreatedAt,
		UpdatedAt:      schedule.UpdatedAt,
	}
}
