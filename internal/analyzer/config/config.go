package config

import (
	"golang-inflection-analyzer/pkg/config"
	"time"
)

// Analyzer holds analyzer-specific configuration.
type Analyzer struct {
	RedisStreamCycleAnalyzerTimeout         time.Duration `mapstructure:"redis_stream_cycle_analyzer_timeout"`
	RedisStreamCycleAnalyzerRetryInterval   time.Duration `mapstructure:"redis_stream_cycle_analyzer_retry_interval"`
	RedisStreamCycleAnalyzerMaxIdleDuration time.Duration `mapstructure:"redis_stream_cycle_analyzer_max_idle_duration"`
	RedisStreamCycleAnalyzerMaxRetry        int           `mapstructure:"redis_stream_cycle_analyzer_max_retry"`

	// Core evaluation policy.
	SwingWindow int `mapstructure:"swing_window"`
	LowLookback int `mapstructure:"low_lookback"`
	Tolerance   int `mapstructure:"tolerance"`
}

// MarketData holds the configuration for the OHLCV chart API.
type MarketData struct {
	BaseURL             string        `mapstructure:"base_url"`
	Interval            string        `mapstructure:"interval"`
	Range               string        `mapstructure:"range"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	CacheTTL            time.Duration `mapstructure:"cache_ttl"`
}

// Predictor holds the configuration for the model-serving endpoint.
type Predictor struct {
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the analysis service.
type Config struct {
	App        config.App      `mapstructure:"app"`
	Logger     config.Logger   `mapstructure:"logger"`
	Database   config.Database `mapstructure:"database"`
	Redis      config.Redis    `mapstructure:"redis"`
	Analyzer   Analyzer        `mapstructure:"analyzer"`
	MarketData MarketData      `mapstructure:"market_data"`
	Predictor  Predictor       `mapstructure:"predictor"`
	Telegram   Telegram        `mapstructure:"telegram"`
}

// Load loads the analyzer configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
