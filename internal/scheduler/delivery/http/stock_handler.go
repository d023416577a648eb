package http

import (
	"net/http"
	"strconv"

	"golang-inflection-analyzer/internal/scheduler/dto"
	"golang-inflection-analyzer/internal/scheduler/service"
	"golang-inflection-analyzer/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StockHandler handles HTTP requests for the watched stock list.
type StockHandler struct {
	stockService service.StockService
	logger       *logger.Logger
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(stockService service.StockService, logger *logger.Logger) *StockHandler {
	return &StockHandler{stockService: stockService, logger: logger}
}

// RegisterRoutes registers the stock routes to the Echo group.
func (h *StockHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateStock)
	g.GET("", h.GetAllStocks)
	g.DELETE("/:id", h.DeleteStock)
}

// CreateStock registers a new stock.
func (h *StockHandler) CreateStock(c echo.Context) error {
	var req dto.CreateStockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.Code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Stock code is required"})
	}

	stockResponse, err := h.stockService.CreateStock(c.Request().Context(), &req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, stockResponse)
}

// GetAllStocks returns all registered stocks.
func (h *StockHandler) GetAllStocks(c echo.Context) error {
	stocks, err := h.stockService.GetAllStocks(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to get all stocks", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get stocks"})
	}
	return c.JSON(http.StatusOK, stocks)
}

// DeleteStock removes a stock by its ID.
func (h *StockHandler) DeleteStock(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid stock ID"})
	}

	if err := h.stockService.DeleteStock(c.Request().Context(), uint(id)); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete stock"})
	}

	return c.NoContent(http.StatusNoContent)
}
