package repository

import (
	"context"

	"golang-inflection-analyzer/internal/entity"

	"gorm.io/gorm"
)

// StockRepository defines the interface for stock data operations.
type StockRepository interface {
	Create(ctx context.Context, stock *entity.Stock) error
	FindAll(ctx context.Context) ([]entity.Stock, error)
	FindByCode(ctx context.Context, code string) (*entity.Stock, error)
	Delete(ctx context.Context, id uint) error
}

// NewStockRepository creates a new GORM-based stock repository.
func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

type stockRepository struct {
	db *gorm.DB
}

// Create registers a new stock.
func (r *stockRepository) Create(ctx context.Context, stock *entity.Stock) error {
	return r.db.WithContext(ctx).Create(stock).Error
}

// FindAll retrieves all registered stocks.
func (r *stockRepository) FindAll(ctx context.Context) ([]entity.Stock, error) {
	var stocks []entity.Stock
	if err := r.db.WithContext(ctx).Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// FindByCode retrieves a stock by its code.
func (r *stockRepository) FindByCode(ctx context.Context, code string) (*entity.Stock, error) {
	var stock entity.Stock
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&stock).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

// Delete removes a stock by its ID.
func (r *stockRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Stock{}, id).Error
}
