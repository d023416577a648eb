package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang-inflection-analyzer/internal/analysis"
	"golang-inflection-analyzer/internal/analyzer/config"
	"golang-inflection-analyzer/internal/analyzer/dto"
	"golang-inflection-analyzer/pkg/logger"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// MarketDataRepository fetches OHLCV history for a stock code.
type MarketDataRepository interface {
	Get(ctx context.Context, param dto.GetPriceSeriesParam) (*analysis.PriceSeries, error)
}

type marketDataRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
	cache          *gocache.Cache
}

// chartResponse mirrors the Yahoo-style chart API payload.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
					Close  []float64 `json:"close"`
					Volume []int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// NewMarketDataRepository creates a rate-limited, cached chart API client.
func NewMarketDataRepository(cfg *config.Config, log *logger.Logger) (MarketDataRepository, error) {
	if cfg.MarketData.BaseURL == "" {
		return nil, fmt.Errorf("market data base_url is required")
	}
	maxPerMinute := cfg.MarketData.MaxRequestPerMinute
	if maxPerMinute <= 0 {
		maxPerMinute = 60
	}
	secondsPerRequest := time.Minute / time.Duration(maxPerMinute)
	cacheTTL := cfg.MarketData.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &marketDataRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
		cache:          gocache.New(cacheTTL, 2*cacheTTL),
	}, nil
}

func (r *marketDataRepository) Get(ctx context.Context, param dto.GetPriceSeriesParam) (*analysis.PriceSeries, error) {
	cacheKey := fmt.Sprintf("%s:%s:%s", param.StockCode, param.Interval, param.Range)
	if cached, found := r.cache.Get(cacheKey); found {
		return cached.(*analysis.PriceSeries), nil
	}

	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		r.cfg.MarketData.BaseURL, param.StockCode, param.Interval, param.Range)

	body, err := r.sendRequest(ctx, url)
	if err != nil {
		return nil, err
	}

	var response chartResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chart response: %w", err)
	}
	if response.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error: %s (%s)", response.Chart.Error.Description, response.Chart.Error.Code)
	}
	if len(response.Chart.Result) == 0 || len(response.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("chart API returned no data for %s", param.StockCode)
	}

	result := response.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	n := len(result.Timestamp)
	if len(quote.Open) != n || len(quote.High) != n || len(quote.Low) != n ||
		len(quote.Close) != n || len(quote.Volume) != n {
		return nil, fmt.Errorf("chart API returned misaligned columns for %s", param.StockCode)
	}

	points := make([]analysis.PricePoint, 0, n)
	for i, ts := range result.Timestamp {
		if quote.Close[i] <= 0 {
			continue
		}
		points = append(points, analysis.PricePoint{
			Date:   time.Unix(ts, 0).UTC(),
			Open:   quote.Open[i],
			High:   quote.High[i],
			Low:    quote.Low[i],
			Close:  quote.Close[i],
			Volume: quote.Volume[i],
		})
	}

	series, err := analysis.NewPriceSeries(points)
	if err != nil {
		return nil, fmt.Errorf("invalid series for %s: %w", param.StockCode, err)
	}

	r.cache.Set(cacheKey, series, gocache.DefaultExpiration)
	r.log.DebugContext(ctx, "Fetched price series",
		logger.StringField("stock_code", param.StockCode),
		logger.IntField("bars", series.Len()))

	return series, nil
}

func (r *marketDataRepository) sendRequest(ctx context.Context, url string) ([]byte, error) {
	fields := []zap.Field{
		zap.String("url", url),
		zap.Int("max_request_per_minute", r.cfg.MarketData.MaxRequestPerMinute),
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to wait for request limit", fields...)
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to create new http request", fields...)
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to send request to chart API", fields...)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fields = append(fields, zap.Int("status_code", resp.StatusCode))
		r.log.ErrorContext(ctx, "Chart API returned non-OK status", fields...)
		return nil, fmt.Errorf("chart API status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
