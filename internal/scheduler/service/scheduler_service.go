package service

import (
	"context"
	"encoding/json"
	"time"

	"golang-inflection-analyzer/internal/entity"
	"golang-inflection-analyzer/internal/scheduler/config"
	"golang-inflection-analyzer/internal/scheduler/dto"
	"golang-inflection-analyzer/internal/scheduler/repository"
	"golang-inflection-analyzer/pkg/common"
	"golang-inflection-analyzer/pkg/logger"
	"golang-inflection-analyzer/pkg/utils"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

// SchedulerService defines the interface for the analysis dispatch service.
type SchedulerService interface {
	Start(ctx context.Context)
	ProcessSchedules(ctx context.Context)
}

// NewSchedulerService creates a new scheduler service.
func NewSchedulerService(scheduleRepo repository.AnalysisScheduleRepository, stockRepo repository.StockRepository, signalService SignalService, redisClient *redis.Client, logger *logger.Logger, pollingInterval time.Duration, cfg *config.Config) SchedulerService {
	return &schedulerService{
		scheduleRepo:    scheduleRepo,
		stockRepo:       stockRepo,
		signalService:   signalService,
		redisClient:     redisClient,
		logger:          logger,
		pollingInterval: pollingInterval,
		cronParser:      cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
		cfg:             cfg,
	}
}

type schedulerService struct {
	scheduleRepo    repository.AnalysisScheduleRepository
	stockRepo       repository.StockRepository
	signalService   SignalService
	redisClient     *redis.Client
	logger          *logger.Logger
	pollingInterval time.Duration
	cronParser      cron.Parser
	cfg             *config.Config
	digestSchedule  cron.Schedule
	nextDigest      time.Time
}

// Start begins the periodic schedule processing loop.
func (s *schedulerService) Start(ctx context.Context) {
	if s.cfg.Scheduler.DigestCron != "" {
		digestSchedule, err := s.cronParser.Parse(s.cfg.Scheduler.DigestCron)
		if err != nil {
			s.logger.Error("Invalid digest cron expression, digest disabled", logger.ErrorField(err))
		} else {
			s.digestSchedule = digestSchedule
			s.nextDigest = digestSchedule.Next(utils.TimeNowKST())
			s.logger.Info("Signal digest scheduled", logger.Field("next", s.nextDigest))
		}
	}

	ticker := time.NewTicker(s.pollingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler service stopping")
			return
		case <-ticker.C:
			s.ProcessSchedules(ctx)
			s.processDigest(ctx)
		}
	}
}

// processDigest sends the combined signal summary when its cron fires.
func (s *schedulerService) processDigest(ctx context.Context) {
	if s.digestSchedule == nil {
		return
	}
	now := utils.TimeNowKST()
	if now.Before(s.nextDigest) {
		return
	}
	if err := s.signalService.SendDailyDigest(ctx); err != nil {
		s.logger.Error("Failed to send signal digest", logger.ErrorField(err))
	}
	s.nextDigest = s.digestSchedule.Next(now)
}

// ProcessSchedules finds due schedules and enqueues an analysis task for
// every registered stock.
func (s *schedulerService) ProcessSchedules(ctx context.Context) {
	schedules, err := s.scheduleRepo.FindDue(ctx)
	if err != nil {
		s.logger.Error("Failed to find due schedules", logger.ErrorField(err))
		return
	}

	for _, schedule := range schedules {
		s.dispatchSchedule(ctx, schedule)
	}
}

func (s *schedulerService) dispatchSchedule(ctx context.Context, schedule entity.AnalysisSchedule) {
	now := utils.TimeNowKST()

	stocks, err := s.stockRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list stocks", logger.ErrorField(err), logger.Field("schedule_id", schedule.ID))
		return
	}

	published := 0
	for _, stock := range stocks {
		payload, err := json.Marshal(dto.TaskPayload{
			StockCode: stock.Code,
			Interval:  schedule.Interval,
			Range:     schedule.Range,
		})
		if err != nil {
			s.logger.Error("Failed to marshal task payload", logger.ErrorField(err), logger.StringField("stock_code", stock.Code))
			continue
		}

		if err := s.redisClient.XAdd(ctx, &redis.XAddArgs{
			Stream: common.RedisStreamCycleAnalyzer,
			Values: map[string]interface{}{"payload": payload},
			MaxLen: s.cfg.Redis.StreamMaxLen, // Limit the stream size
		}).Err(); err != nil {
			s.logger.Error("Failed to enqueue analysis task", logger.ErrorField(err), logger.StringField("stock_code", stock.Code))
			continue
		}
		published++
	}

	s.logger.Info("Analysis tasks published",
		logger.Field("schedule_id", schedule.ID),
		logger.IntField("published", published),
		logger.IntField("stocks", len(stocks)))

	// Update schedule for next run
	cronSchedule, err := s.cronParser.Parse(schedule.CronExpression)
	if err != nil {
		s.logger.Error("Failed to parse cron expression", logger.ErrorField(err), logger.Field("schedule_id", schedule.ID))
		return
	}

	schedule.LastExecution.Time = now
	schedule.LastExecution.Valid = true
	schedule.NextExecution.Time = cronSchedule.Next(now)
	schedule.NextExecution.Valid = true

	if err := s.scheduleRepo.Update(ctx, &schedule); err != nil {
		s.logger.Error("Failed to update next execution time", logger.ErrorField(err), logger.Field("schedule_id", schedule.ID))
	}
}
