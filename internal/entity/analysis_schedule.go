package entity

import (
	"database/sql"
	"time"
)

// AnalysisSchedule drives periodic enqueueing of analysis tasks for every
// registered stock.
type AnalysisSchedule struct {
	ID             uint         `gorm:"primaryKey"`
	Name           string       `gorm:"not null"`
	CronExpression string       `gorm:"not null"`
	Interval       string       `gorm:"not null;default:1d"`
	Range          string       `gorm:"not null;default:2y"`
	IsActive       bool         `gorm:"not null;default:true"`
	LastExecution  sql.NullTime `gorm:"index"`
	NextExecution  sql.NullTime `gorm:"index"`
	CreatedAt      time.Time    `gorm:"autoCreateTime"`
	UpdatedAt      time.Time    `gorm:"autoUpdateTime"`
}

func (AnalysisSchedule) TableName() string {
	return "analysis_schedules"
}
