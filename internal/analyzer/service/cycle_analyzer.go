package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang-inflection-analyzer/internal/analysis"
	"golang-inflection-analyzer/internal/analyzer/config"
	"golang-inflection-analyzer/internal/analyzer/dto"
	"golang-inflection-analyzer/internal/analyzer/repository"
	"golang-inflection-analyzer/internal/entity"
	"golang-inflection-analyzer/pkg/common"
	"golang-inflection-analyzer/pkg/logger"
	"golang-inflection-analyzer/pkg/telegram"
	"golang-inflection-analyzer/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// CycleAnalyzerService consumes analysis tasks, runs the inflection engine
// and persists/notifies the combined signal.
type CycleAnalyzerService interface {
	ProcessTask(ctx context.Context)
	ProcessRetries(ctx context.Context)
	Analyze(ctx context.Context, stockCode string, interval string, rangeData string) (*dto.AnalysisReport, error)
}

type cycleAnalyzerService struct {
	cfg             *config.Config
	log             *logger.Logger
	redisClient     *redis.Client
	marketData      repository.MarketDataRepository
	predictor       repository.PredictorRepository
	cycleSignalRepo repository.CycleSignalRepository
	telegramBot     telegram.Notifier
	evaluator       *analysis.Evaluator
}

func NewCycleAnalyzerService(cfg *config.Config, log *logger.Logger,
	redisClient *redis.Client,
	marketData repository.MarketDataRepository,
	predictor repository.PredictorRepository,
	cycleSignalRepo repository.CycleSignalRepository,
	telegramBot telegram.Notifier) CycleAnalyzerService {
	return &cycleAnalyzerService{
		cfg:             cfg,
		log:             log,
		redisClient:     redisClient,
		marketData:      marketData,
		predictor:       predictor,
		cycleSignalRepo: cycleSignalRepo,
		telegramBot:     telegramBot,
		evaluator: analysis.NewEvaluator(analysis.Config{
			SwingWindow: cfg.Analyzer.SwingWindow,
			LowLookback: cfg.Analyzer.LowLookback,
			Tolerance:   cfg.Analyzer.Tolerance,
		}),
	}
}

func (s *cycleAnalyzerService) ProcessTask(ctx context.Context) {
	streams, err := s.redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer,
		Streams:  []string{common.RedisStreamCycleAnalyzer, ">"}, // ">" means only new messages
		Count:    1,
		Block:    2 * time.Second, // Block for 2 seconds to allow graceful shutdown
	}).Result()
	if err != nil {
		// Context cancellation and redis.Nil are expected during shutdown or
		// idle periods.
		if err == context.Canceled || err == redis.Nil {
			return
		}
		s.log.Error("Failed to read from stream", logger.ErrorField(err))
		return
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return
	}

	message := streams[0].Messages[0]

	// The task data is expected to be a JSON string in the 'payload' field.
	taskData, ok := message.Values["payload"].(string)
	if !ok {
		s.log.Error("field 'payload' not found or not a string in stream message", logger.Field("message_id", message.ID))
		return
	}

	var streamData dto.StreamDataCycleAnalyzer
	if err := json.Unmarshal([]byte(taskData), &streamData); err != nil {
		s.log.Error("Failed to unmarshal task data", logger.ErrorField(err), logger.Field("message_id", message.ID))
		return
	}

	s.log.Debug("Processing cycle analyzer task", logger.StringField("stock_code", streamData.StockCode))

	if _, err := s.Analyze(ctx, streamData.StockCode, streamData.Interval, streamData.Range); err != nil {
		s.log.Error("Failed to analyze stock cycle", logger.ErrorField(err), logger.Field("message_id", message.ID), logger.StringField("stock_code", streamData.StockCode))
		return
	}
	if err := s.AckNDel(ctx, common.RedisStreamCycleAnalyzer, message.ID); err != nil {
		s.log.Error("Failed to acknowledge and delete cycle analyzer task", logger.ErrorField(err), logger.Field("message_id", message.ID))
		return
	}

	s.log.Debug("Cycle analyzer task processed successfully", logger.StringField("stock_code", streamData.StockCode))
}

// Analyze runs the full pipeline for one stock: fetch OHLCV, evaluate the
// inflection checkpoints, query the classifier and combine, then persist
// and notify. A series without a detectable swing low is reported as
// unavailable, not as an error worth retrying.
func (s *cycleAnalyzerService) Analyze(ctx context.Context, stockCode string, interval string, rangeData string) (*dto.AnalysisReport, error) {
	if interval == "" {
		interval = s.cfg.MarketData.Interval
	}
	if rangeData == "" {
		rangeData = s.cfg.MarketData.Range
	}

	series, err := s.marketData.Get(ctx, dto.GetPriceSeriesParam{
		StockCode: stockCode,
		Interval:  interval,
		Range:     rangeData,
	})
	if err != nil {
		s.log.Error("Failed to get price series", logger.ErrorField(err), logger.StringField("stock_code", stockCode))
		return nil, err
	}

	inflection, err := s.evaluator.AnalyzeInflections(series)
	if err != nil {
		if errors.Is(err, analysis.ErrNoSwingLow) || errors.Is(err, analysis.ErrInsufficientData) {
			s.log.Warn("Cycle analysis unavailable", logger.ErrorField(err), logger.StringField("stock_code", stockCode))
			return nil, nil
		}
		return nil, err
	}

	features, err := analysis.ExtractFeatures(series)
	if err != nil {
		return nil, err
	}

	probability, err := s.predictor.PredictProbabilityOfRise(ctx, stockCode, features)
	if err != nil {
		s.log.Error("Failed to get rise probability", logger.ErrorField(err), logger.StringField("stock_code", stockCode))
		return nil, err
	}
	mlScore := probability * 100

	combined := analysis.CombineSignals(mlScore, inflection.Checkpoints)

	report := &dto.AnalysisReport{
		StockCode:  stockCode,
		Price:      series.Points[series.Len()-1].Close,
		Inflection: inflection,
		Features:   features,
		Combined:   combined,
	}

	dataJSON, err := json.Marshal(report)
	if err != nil {
		s.log.Error("Failed to marshal analysis report", logger.ErrorField(err))
		return nil, err
	}

	err = s.cycleSignalRepo.Create(ctx, &entity.CycleSignal{
		StockCode:      stockCode,
		Recommendation: string(combined.Recommendation),
		Confidence:     string(combined.Confidence),
		MLScore:        combined.MLScore,
		CycleScore:     combined.CycleScore,
		CombinedScore:  combined.CombinedScore,
		DaysSinceLow:   inflection.DaysSinceLow,
		Data:           dataJSON,
	})
	if err != nil {
		s.log.Error("Failed to create cycle signal", logger.ErrorField(err), logger.StringField("stock_code", stockCode))
		return nil, err
	}

	s.log.InfoContext(ctx, "Cycle analysis completed",
		logger.StringField("stock_code", stockCode),
		logger.StringField("recommendation", string(combined.Recommendation)),
		logger.Float64Field("combined_score", combined.CombinedScore),
		logger.IntField("days_since_low", inflection.DaysSinceLow))

	if combined.Recommendation != analysis.Hold {
		activeOffsets := make([]int, 0, len(inflection.ActiveSignals))
		for _, sig := range inflection.ActiveSignals {
			activeOffsets = append(activeOffsets, sig.Offset)
		}
		msg := telegram.FormatCycleSignalMessage(dto.CycleSignalTelegramResult{
			StockCode:      stockCode,
			Recommendation: string(combined.Recommendation),
			Confidence:     string(combined.Confidence),
			CombinedScore:  combined.CombinedScore,
			DaysSinceLow:   inflection.DaysSinceLow,
			ActiveOffsets:  activeOffsets,
		})
		if err := s.telegramBot.SendMessage(msg); err != nil {
			// Notification failure must not fail the analysis.
			s.log.Error("Failed to send telegram message", logger.ErrorField(err), logger.StringField("stock_code", stockCode))
		}
	}

	return report, nil
}

func (s *cycleAnalyzerService) AckNDel(ctx context.Context, streamName string, messageID string) error {
	if err := s.redisClient.XAck(ctx, streamName, common.RedisStreamGroup, messageID).Err(); err != nil {
		s.log.Error("Failed to acknowledge cycle analyzer task", logger.ErrorField(err), logger.Field("message_id", messageID))
		return err
	}
	if err := s.redisClient.XDel(ctx, streamName, messageID).Err(); err != nil {
		s.log.Error("Failed to delete cycle analyzer task", logger.ErrorField(err), logger.Field("message_id", messageID))
		return err
	}
	return nil
}

func (s *cycleAnalyzerService) ProcessRetries(ctx context.Context) {
	msgs, _, err := s.redisClient.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   common.RedisStreamCycleAnalyzer,
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer + "-retry",
		MinIdle:  s.cfg.Analyzer.RedisStreamCycleAnalyzerMaxIdleDuration,
		Start:    "0",
		Count:    1,
	}).Result()

	if err != nil {
		s.log.Error("Failed to claim cycle analyzer task on retry", logger.ErrorField(err))
		return
	}

	if len(msgs) == 0 {
		s.log.Debug("Retry no pending messages found", logger.StringField("stream", common.RedisStreamCycleAnalyzer))
		return
	}

	pendingInfo, err := s.redisClient.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: common.RedisStreamCycleAnalyzer,
		Group:  common.RedisStreamGroup,
		Start:  msgs[0].ID,
		End:    msgs[0].ID,
		Count:  1,
	}).Result()

	if err != nil {
		s.log.Error("Failed to get pending info", logger.ErrorField(err))
		return
	}

	if len(pendingInfo) == 0 {
		s.log.Warn("pending msg not found, but exists on xautoclaim",
			logger.StringField("stream", common.RedisStreamCycleAnalyzer),
			logger.StringField("message_id", msgs[0].ID))
		return
	}

	msg := msgs[0]
	taskData, ok := msg.Values["payload"].(string)
	if !ok {
		s.log.Error("field 'payload' not found or not a string in stream message", logger.Field("message_id", msg.ID))
		return
	}

	var streamData dto.StreamDataCycleAnalyzer
	if err := json.Unmarshal([]byte(taskData), &streamData); err != nil {
		s.log.Error("Failed to unmarshal task data", logger.ErrorField(err), logger.Field("message_id", msg.ID))
		return
	}

	if pendingInfo[0].RetryCount >= int64(s.cfg.Analyzer.RedisStreamCycleAnalyzerMaxRetry) {
		s.log.Error("pending msg retry count exceeded",
			logger.StringField("stream", common.RedisStreamCycleAnalyzer),
			logger.StringField("message_id", msg.ID),
			logger.StringField("stock_code", streamData.StockCode),
			logger.IntField("retry_count", int(pendingInfo[0].RetryCount)),
			logger.IntField("max_retry", s.cfg.Analyzer.RedisStreamCycleAnalyzerMaxRetry),
		)
		msgTelegram := telegram.FormatErrorAlertMessage(utils.TimeNowKST(), fmt.Sprintf("Cycle analyzer task retry count exceeded for stock %s", streamData.StockCode))
		if err := s.telegramBot.SendMessage(msgTelegram); err != nil {
			s.log.Error("Failed to send telegram message retry exceeded", logger.ErrorField(err), logger.StringField("stock_code", streamData.StockCode))
		}
		if err := s.AckNDel(ctx, common.RedisStreamCycleAnalyzer, msg.ID); err != nil {
			s.log.Error("Failed to acknowledge and delete cycle analyzer task", logger.ErrorField(err), logger.Field("message_id", msg.ID))
		}
		return
	}

	if _, err := s.Analyze(ctx, streamData.StockCode, streamData.Interval, streamData.Range); err != nil {
		s.log.Error("Failed to analyze stock cycle on retry", logger.ErrorField(err), logger.Field("message_id", msg.ID), logger.StringField("stock_code", streamData.StockCode))
		return
	}

	if err := s.AckNDel(ctx, common.RedisStreamCycleAnalyzer, msg.ID); err != nil {
		s.log.Error("Failed to acknowledge and delete cycle analyzer task", logger.ErrorField(err), logger.Field("message_id", msg.ID))
		return
	}
	s.log.Info("Retry cycle analyzer task processed successfully", logger.StringField("stock_code", streamData.StockCode))
}
