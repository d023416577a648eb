package dto

import "time"

// CreateStockRequest defines the DTO for registering a stock.
type CreateStockRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// StockResponse is the DTO for API responses containing stock details.
type StockResponse struct {
	ID        uint      `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
