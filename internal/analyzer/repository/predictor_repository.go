package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang-inflection-analyzer/internal/analysis"
	"golang-inflection-analyzer/internal/analyzer/config"
	"golang-inflection-analyzer/pkg/logger"

	"golang.org/x/time/rate"
)

// PredictorRepository is the trained classifier serving endpoint. The model
// lifecycle lives entirely behind this contract; the analyzer only supplies
// the feature vector and consumes a probability of a near-term rise.
type PredictorRepository interface {
	PredictProbabilityOfRise(ctx context.Context, stockCode string, features analysis.FeatureVector) (float64, error)
}

type predictorRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

type predictRequest struct {
	StockCode    string    `json:"stock_code"`
	FeatureNames []string  `json:"feature_names"`
	Features     []float64 `json:"features"`
}

type predictResponse struct {
	Probability float64 `json:"probability"`
}

// NewPredictorRepository creates the model-serving client.
func NewPredictorRepository(cfg *config.Config, log *logger.Logger) (PredictorRepository, error) {
	if cfg.Predictor.BaseURL == "" {
		return nil, fmt.Errorf("predictor base_url is required")
	}
	maxPerMinute := cfg.Predictor.MaxRequestPerMinute
	if maxPerMinute <= 0 {
		maxPerMinute = 60
	}
	secondsPerRequest := time.Minute / time.Duration(maxPerMinute)
	return &predictorRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}, nil
}

func (r *predictorRepository) PredictProbabilityOfRise(ctx context.Context, stockCode string, features analysis.FeatureVector) (float64, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		r.log.ErrorContext(ctx, "Failed to wait for predictor request limit", logger.ErrorField(err))
		return 0, err
	}

	payload, err := json.Marshal(predictRequest{
		StockCode:    stockCode,
		FeatureNames: analysis.FeatureNames,
		Features:     features.Values(),
	})
	if err != nil {
		return 0, err
	}

	url := r.cfg.Predictor.BaseURL + "/predict"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to call predictor", logger.ErrorField(err), logger.StringField("stock_code", stockCode))
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("predictor status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}

	var prediction predictResponse
	if err := json.Unmarshal(body, &prediction); err != nil {
		return 0, fmt.Errorf("failed to unmarshal predictor response: %w", err)
	}
	if prediction.Probability < 0 || prediction.Probability > 1 {
		return 0, fmt.Errorf("predictor returned probability out of range: %f", prediction.Probability)
	}

	return prediction.Probability, nil
}
