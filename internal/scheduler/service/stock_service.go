package service

import (
	"context"

	"golang-inflection-analyzer/internal/entity"
	"golang-inflection-analyzer/internal/scheduler/dto"
	"golang-inflection-analyzer/internal/scheduler/repository"
	"golang-inflection-analyzer/pkg/logger"
)

// StockService defines the interface for managing the watched stock list.
type StockService interface {
	CreateStock(ctx context.Context, req *dto.CreateStockRequest) (*dto.StockResponse, error)
	GetAllStocks(ctx context.Context) ([]*dto.StockResponse, error)
	DeleteStock(ctx context.Context, id uint) error
}

// NewStockService creates a new stock service.
func NewStockService(stockRepo repository.StockRepository, logger *logger.Logger) StockService {
	return &stockService{
		stockRepo: stockRepo,
		logger:    logger,
	}
}

type stockService struct {
	stockRepo repository.StockRepository
	logger    *logger.Logger
}

// CreateStock registers a new stock.
func (s *stockService) CreateStock(ctx context.Context, req *dto.CreateStockRequest) (*dto.StockResponse, error) {
	stock := &entity.Stock{
		Code: req.Code,
		Name: req.Name,
	}

	if err := s.stockRepo.Create(ctx, stock); err != nil {
		s.logger.Error("Failed to create stock", logger.ErrorField(err), logger.StringField("code", req.Code))
		return nil, err
	}

	s.logger.Info("Stock created successfully", logger.StringField("code", stock.Code))
	return s.mapToStockResponse(stock), nil
}

// GetAllStocks retrieves all registered stocks.
func (s *stockService) GetAllStocks(ctx context.Context) ([]*dto.StockResponse, error) {
	stocks, err := s.stockRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to get all stocks", logger.ErrorField(err))
		return nil, err
	}

	var stockResponses []*dto.StockResponse
	for _, stock := range stocks {
		stockResponses = append(stockResponses, s.mapToStockResponse(&stock))
	}

	return stockResponses, nil
}

// DeleteStock removes a stock by its ID.
func (s *stockService) DeleteStock(ctx context.Context, id uint) error {
	if err := s.stockRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete stock", logger.ErrorField(err), logger.Field("stock_id", id))
		return err
	}
	s.logger.Info("Stock deleted successfully", logger.Field("stock_id", id))
	return nil
}

// mapToStockResponse maps an entity.Stock to a dto.StockResponse.
func (s *stockService) mapToStockResponse(stock *entity.Stock) *dto.StockResponse {
	return &dto.StockResponse{
		ID:        stock.ID,
		Code:      stock.Code,
		Name:      stock.Name,
		CreatedAt: stock.CreatedAt,
	}
}
