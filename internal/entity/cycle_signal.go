package entity

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CycleSignal struct {
	ID             int64          `json:"id"`
	StockCode      string         `json:"stock_code"`
	Recommendation string         `json:"recommendation"`
	Confidence     string         `json:"confidence"`
	MLScore        float64        `json:"ml_score"`
	CycleScore     float64        `json:"cycle_score"`
	CombinedScore  float64        `json:"combined_score"`
	DaysSinceLow   int            `json:"days_since_low"`
	Data           datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"deleted_at"`
}

func (CycleSignal) TableName() string {
	return "cycle_signals"
}
