package dto

import (
	"database/sql"
	"time"
)

// CreateScheduleRequest defines the DTO for creating a new analysis schedule.
type CreateScheduleRequest struct {
	Name           string `json:"name"`
	CronExpression string `json:"cron_expression"`
	Interval       string `json:"interval"`
	Range          string `json:"range"`
	IsActive       bool   `json:"is_active"`
}

// UpdateScheduleRequest defines the DTO for updating an existing analysis schedule.
type UpdateScheduleRequest struct {
	CronExpression string `json:"cron_expression"`
	Interval       string `json:"interval"`
	Range          string `json:"range"`
	IsActive       bool   `json:"is_active"`
}

// ScheduleResponse is the DTO for API responses containing schedule details.
type ScheduleResponse struct {
	ID             uint         `json:"id"`
	Name           string       `json:"name"`
	CronExpression string       `json:"cron_expression"`
	Interval       string       `json:"interval"`
	Range          string       `json:"range"`
	IsActive       bool         `json:"is_active"`
	NextExecution  sql.NullTime `json:"next_execution"`
	LastExecution  sql.NullTime `json:"last_execution"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
