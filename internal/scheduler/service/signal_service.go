package service

import (
	"context"
	"encoding/json"

	analyzerdto "golang-inflection-analyzer/internal/analyzer/dto"
	"golang-inflection-analyzer/internal/entity"
	"golang-inflection-analyzer/internal/scheduler/config"
	"golang-inflection-analyzer/internal/scheduler/dto"
	"golang-inflection-analyzer/internal/scheduler/repository"
	"golang-inflection-analyzer/pkg/common"
	"golang-inflection-analyzer/pkg/logger"
	"golang-inflection-analyzer/pkg/telegram"

	"github.com/redis/go-redis/v9"
)

// SignalService exposes stored cycle signals, manual analysis triggers and
// the combined Telegram digest.
type SignalService interface {
	GetLatestSignals(ctx context.Context, stockCode string, limit int) ([]*dto.CycleSignalResponse, error)
	GetLatestSignalsPerStock(ctx context.Context) ([]*dto.CycleSignalResponse, error)
	TriggerAnalysis(ctx context.Context, req *dto.TriggerAnalysisRequest) error
	SendDailyDigest(ctx context.Context) error
}

// NewSignalService creates a new signal service.
func NewSignalService(signalRepo repository.CycleSignalRepository, redisClient *redis.Client, logger *logger.Logger, cfg *config.Config, notifier telegram.Notifier) SignalService {
	return &signalService{
		signalRepo:  signalRepo,
		redisClient: redisClient,
		logger:      logger,
		cfg:         cfg,
		notifier:    notifier,
	}
}

type signalService struct {
	signalRepo  repository.CycleSignalRepository
	redisClient *redis.Client
	logger      *logger.Logger
	cfg         *config.Config
	notifier    telegram.Notifier
}

// GetLatestSignals retrieves the most recent signals for one stock.
func (s *signalService) GetLatestSignals(ctx context.Context, stockCode string, limit int) ([]*dto.CycleSignalResponse, error) {
	signals, err := s.signalRepo.FindLatest(ctx, stockCode, limit)
	if err != nil {
		s.logger.Error("Failed to get latest signals", logger.ErrorField(err), logger.StringField("stock_code", stockCode))
		return nil, err
	}
	return s.mapToSignalResponses(signals), nil
}

// GetLatestSignalsPerStock retrieves the most recent signal for every stock.
func (s *signalService) GetLatestSignalsPerStock(ctx context.Context) ([]*dto.CycleSignalResponse, error) {
	signals, err := s.signalRepo.FindLatestPerStock(ctx)
	if err != nil {
		s.logger.Error("Failed to get latest signals per stock", logger.ErrorField(err))
		return nil, err
	}
	return s.mapToSignalResponses(signals), nil
}

// TriggerAnalysis enqueues a one-off analysis task.
func (s *signalService) TriggerAnalysis(ctx context.Context, req *dto.TriggerAnalysisRequest) error {
	interval := req.Interval
	if interval == "" {
		interval = s.cfg.Scheduler.DefaultInterval
	}
	rangeData := req.Range
	if rangeData == "" {
		rangeData = s.cfg.Scheduler.DefaultRange
	}

	payload, err := json.Marshal(dto.TaskPayload{
		StockCode: req.StockCode,
		Interval:  interval,
		Range:     rangeData,
	})
	if err != nil {
		return err
	}

	if err := s.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: common.RedisStreamCycleAnalyzer,
		Values: map[string]interface{}{"payload": payload},
		MaxLen: s.cfg.Redis.StreamMaxLen,
	}).Err(); err != nil {
		s.logger.Error("Failed to enqueue analysis task", logger.ErrorField(err), logger.StringField("stock_code", req.StockCode))
		return err
	}

	s.logger.Info("Analysis task enqueued", logger.StringField("stock_code", req.StockCode))
	return nil
}

// SendDailyDigest sends the most recent signal of every stock as one combined
// Telegram summary, split into parts when it exceeds the message limit.
func (s *signalService) SendDailyDigest(ctx context.Context) error {
	signals, err := s.signalRepo.FindLatestPerStock(ctx)
	if err != nil {
		s.logger.Error("Failed to load signals for digest", logger.ErrorField(err))
		return err
	}

	rows := make([]analyzerdto.CycleSignalTelegramResult, 0, len(signals))
	for _, signal := range signals {
		rows = append(rows, analyzerdto.CycleSignalTelegramResult{
			StockCode:      signal.StockCode,
			Recommendation: signal.Recommendation,
			Confidence:     signal.Confidence,
			CombinedScore:  signal.CombinedScore,
			DaysSinceLow:   signal.DaysSinceLow,
		})
	}

	for _, msg := range telegram.FormatCycleSignalsForTelegram(rows) {
		if err := s.notifier.SendMessage(msg); err != nil {
			s.logger.Error("Failed to send digest message", logger.ErrorField(err))
			return err
		}
	}

	s.logger.Info("Daily cycle signal digest sent", logger.IntField("signals", len(signals)))
	return nil
}

func (s *signalService) mapToSignalResponses(signals []entity.CycleSignal) []*dto.CycleSignalResponse {
	responses := make([]*dto.CycleSignalResponse, 0, len(signals))
	for _, signal := range signals {
		responses = append(responses, &dto.CycleSignalResponse{
			ID:             signal.ID,
			StockCode:      signal.StockCode,
			Recommendation: signal.Recommendation,
			Confidence:     signal.Confidence,
			MLScore:        signal.MLScore,
			CycleScore:     signal.CycleScore,
			CombinedScore:  signal.CombinedScore,
			DaysSinceLow:   signal.DaysSinceLow,
			Data:           json.RawMessage(signal.Data),
			CreatedAt:      signal.CreatedAt,
		})
	}
	return responses
}
