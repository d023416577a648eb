package dto

import (
	"encoding/json"
	"time"
)

// TriggerAnalysisRequest defines the DTO for enqueueing a one-off analysis task.
type TriggerAnalysisRequest struct {
	StockCode string `json:"stock_code"`
	Interval  string `json:"interval"`
	Range     string `json:"range"`
}

// TaskPayload is the message body published to the analysis stream.
type TaskPayload struct {
	StockCode string `json:"stock_code"`
	Interval  string `json:"interval"`
	Range     string `json:"range"`
}

// CycleSignalResponse is the DTO for API responses containing a stored signal.
type CycleSignalResponse struct {
	ID             int64           `json:"id"`
	StockCode      string          `json:"stock_code"`
	Recommendation string          `json:"recommendation"`
	Confidence     string          `json:"confidence"`
	MLScore        float64         `json:"ml_score"`
	CycleScore     float64         `json:"cycle_score"`
	CombinedScore  float64         `json:"combined_score"`
	DaysSinceLow   int             `json:"days_since_low"`
	Data           json.RawMessage `json:"data"`
	CreatedAt      time.Time       `json:"created_at"`
}
