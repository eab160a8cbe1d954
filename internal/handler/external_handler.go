package handler

import (
	"encoding/json"
	"net/http"

	"inventory-service/pkg/config"
	"inventory-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ExternalStockHandler proxies the external stock API with a fixed
// timeout and no retry.
type ExternalStockHandler struct {
	url    string
	client *http.Client
}

// NewExternalStockHandler returns a handler for the configured external stock API
func NewExternalStockHandler(cfg *config.Config) *ExternalStockHandler {
	return &ExternalStockHandler{
		url:    cfg.External.StockURL,
		client: &http.Client{Timeout: cfg.External.Timeout},
	}
}

// FetchExternalStock handles GET /api/stock/external
func (h *ExternalStockHandler) FetchExternalStock(c echo.Context) error {
	log := logger.FromContext(c)

	resp, err := h.client.Get(h.url)
	if err != nil {
		log.Error("Failed to fetch external stock data", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to fetch external stock data",
		})
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Error("External stock API returned an error",
			zap.Int("status", resp.StatusCode))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "External stock API returned an error",
		})
	}

	var data interface{}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		log.Error("Failed to decode external stock data", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to decode external stock data",
		})
	}

	log.Info("Fetched data from external API")
	return c.JSON(http.StatusOK, echo.Map{
		"message": "External stock data fetched",
		"data":    data,
	})
}
