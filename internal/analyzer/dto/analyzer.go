package dto

import "golang-inflection-analyzer/internal/analysis"

// StreamDataCycleAnalyzer is the payload of one analysis task on the Redis
// stream.
type StreamDataCycleAnalyzer struct {
	StockCode string `json:"stock_code"`
	Interval  string `json:"interval"`
	Range     string `json:"range"`
}

// GetPriceSeriesParam selects the OHLCV window fetched from the chart API.
type GetPriceSeriesParam struct {
	StockCode string
	Interval  string
	Range     string
}

// AnalysisReport is the persisted and notified result of one analysis run.
type AnalysisReport struct {
	StockCode  string                       `json:"stock_code"`
	Price      float64                      `json:"price"`
	Inflection *analysis.InflectionAnalysis `json:"inflection"`
	Features   analysis.FeatureVector       `json:"features"`
	Combined   analysis.CombinedSignal      `json:"combined"`
}

// CycleSignalTelegramResult is the flattened per-stock row the Telegram
// formatter renders.
type CycleSignalTelegramResult struct {
	StockCode      string  `json:"stock_code"`
	Recommendation string  `json:"recommendation"`
	Confidence     string  `json:"confidence"`
	CombinedScore  float64 `json:"combined_score"`
	DaysSinceLow   int     `json:"days_since_low"`
	ActiveOffsets  []int   `json:"active_offsets"`
}
