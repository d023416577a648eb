package http

import (
	"net/http"
	"strconv"

	"golang-inflection-analyzer/internal/scheduler/dto"
	"golang-inflection-analyzer/internal/scheduler/service"
	"golang-inflection-analyzer/pkg/logger"

	"github.com/labstack/echo/v4"
)

const defaultSignalLimit = 10

// SignalHandler handles HTTP requests for cycle signals.
type SignalHandler struct {
	signalService service.SignalService
	logger        *logger.Logger
}

// NewSignalHandler creates a new SignalHandler.
func NewSignalHandler(signalService service.SignalService, logger *logger.Logger) *SignalHandler {
	return &SignalHandler{signalService: signalService, logger: logger}
}

// RegisterRoutes registers the signal routes to the Echo group.
func (h *SignalHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetLatestSignalsPerStock)
	g.GET("/:stock_code", h.GetLatestSignals)
	g.POST("/trigger", h.TriggerAnalysis)
}

// GetLatestSignalsPerStock returns the most recent signal for every stock.
func (h *SignalHandler) GetLatestSignalsPerStock(c echo.Context) error {
	signals, err := h.signalService.GetLatestSignalsPerStock(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to get latest signals", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get signals"})
	}
	return c.JSON(http.StatusOK, signals)
}

// GetLatestSignals returns the most recent signals for one stock.
func (h *SignalHandler) GetLatestSignals(c echo.Context) error {
	stockCode := c.Param("stock_code")

	limit := defaultSignalLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid limit"})
		}
		limit = parsed
	}

	signals, err := h.signalService.GetLatestSignals(c.Request().Context(), stockCode, limit)
	if err != nil {
		h.logger.Error("Failed to get latest signals", logger.ErrorField(err), logger.StringField("stock_code", stockCode))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get signals"})
	}
	return c.JSON(http.StatusOK, signals)
}

// TriggerAnalysis enqueues a one-off analysis task for a stock.
func (h *SignalHandler) TriggerAnalysis(c echo.Context) error {
	var req dto.TriggerAnalysisRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.StockCode == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Stock code is required"})
	}

	if err := h.signalService.TriggerAnalysis(c.Request().Context(), &req); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusAccepted, echo.Map{"status": "queued"})
}
